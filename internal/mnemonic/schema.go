// Package mnemonic describes prompt schemas for mnemonic generation and maps
// their parameters onto note fields.
package mnemonic

import (
	"fmt"
	"strings"
)

// FieldKind tells whether a prompt field holds text or a mapping of text.
type FieldKind int

const (
	FieldText FieldKind = iota + 1
	FieldMapping
)

func (k FieldKind) String() string {
	switch k {
	case FieldText:
		return "text"
	case FieldMapping:
		return "mapping"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Field is one named input of a prompt.
// A mapping field lists its entries, which may be mappings themselves.
type Field struct {
	Name        string
	UIName      string
	Explanation string
	Placeholder string
	Kind        FieldKind
	Entries     []Field
}

// Row is an ordered list of fields filled in together.
type Row struct {
	Fields []Field
}

// Section is a row repeated Repeat times.
type Section struct {
	Name        string
	UIName      string
	Explanation string
	Repeat      int
	Row         Row
}

// OneDimensional reports whether the section is a single text field,
// the only shape that can be bound to a note field.
func (s Section) OneDimensional() bool {
	return s.Repeat == 1 && len(s.Row.Fields) == 1 && s.Row.Fields[0].Kind == FieldText
}

// Schema is the ordered set of sections making up a prompt.
// Name identifies the schema in stored associations.
type Schema struct {
	Name            string
	UIName          string
	Description     string
	Explanation     string
	TemplateName    string
	TemplateVersion int
	Sections        []Section
}

// Validate checks the schema structure.
// A field of unsupported kind yields a *PromptFieldTypeError.
func (s *Schema) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: empty schema name", ErrInvalidSchema)
	}

	seen := make(map[string]bool, len(s.Sections))
	for _, section := range s.Sections {
		if section.Name == "" {
			return fmt.Errorf("%w: %s: section without name", ErrInvalidSchema, s.Name)
		}
		if seen[section.Name] {
			return fmt.Errorf("%w: %s: duplicate section %q", ErrInvalidSchema, s.Name, section.Name)
		}
		seen[section.Name] = true

		if section.Repeat < 1 {
			return fmt.Errorf("%w: %s: section %q repeated %d times",
				ErrInvalidSchema, s.Name, section.Name, section.Repeat)
		}
		if len(section.Row.Fields) == 0 {
			return fmt.Errorf("%w: %s: section %q has no fields", ErrInvalidSchema, s.Name, section.Name)
		}
		for _, field := range section.Row.Fields {
			if err := validateField(section.Name+"."+field.Name, field); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateField(path string, f Field) error {
	switch f.Kind {
	case FieldText:
		if len(f.Entries) > 0 {
			return &PromptFieldTypeError{Field: path, Type: "text with entries"}
		}
	case FieldMapping:
		for _, entry := range f.Entries {
			if err := validateField(path+"."+entry.Name, entry); err != nil {
				return err
			}
		}
	default:
		return &PromptFieldTypeError{Field: path, Type: f.Kind.String()}
	}
	return nil
}

// OneDimensionalParams returns, in schema order, the names of the sections
// that can be bound to a note field.
func (s *Schema) OneDimensionalParams() []string {
	var names []string
	for _, section := range s.Sections {
		if section.OneDimensional() {
			names = append(names, section.Name)
		}
	}
	return names
}

// Section returns the section called name.
func (s *Schema) Section(name string) (Section, bool) {
	for _, section := range s.Sections {
		if section.Name == name {
			return section, true
		}
	}
	return Section{}, false
}

// Help returns a markdown description of the schema and of its fields.
func (s *Schema) Help() string {
	var b strings.Builder
	fmt.Fprintf(&b, "### %s\n%s", s.UIName, s.Explanation)
	for _, section := range s.Sections {
		fmt.Fprintf(&b, "\n#### %s\n%s\n", section.UIName, section.Explanation)
		for _, field := range section.Row.Fields {
			fmt.Fprintf(&b, "\n* `%s`: %s", field.UIName, field.Explanation)
		}
	}
	return b.String()
}

// EmptyParams returns the parameters of a blank form: one-dimensional
// sections map to "", other sections map row numbers to their fields.
func (s *Schema) EmptyParams() Params {
	params := make(Params, len(s.Sections))
	for _, section := range s.Sections {
		if section.OneDimensional() {
			params[section.Name] = ""
			continue
		}
		rows := make(map[string]any, section.Repeat)
		for i := range section.Repeat {
			row := make(map[string]any, len(section.Row.Fields))
			for _, field := range section.Row.Fields {
				row[field.Name] = emptyValue(field)
			}
			rows[fmt.Sprint(i)] = row
		}
		params[section.Name] = rows
	}
	return params
}

func emptyValue(f Field) any {
	if f.Kind != FieldMapping {
		return ""
	}
	m := make(map[string]any, len(f.Entries))
	for _, entry := range f.Entries {
		m[entry.Name] = emptyValue(entry)
	}
	return m
}
