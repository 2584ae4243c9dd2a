package mnemonic

import (
	"fmt"
	"slices"

	"github.com/xavierfontaine/omakase/internal/models"
	"github.com/xavierfontaine/omakase/internal/observable"
	"github.com/xavierfontaine/omakase/internal/prefs"
)

// Keys of a (note type, schema) association entry
const (
	KeyPromptNoteAssocs = "prompt_note_assocs"
	KeyGenoutNoteAssocs = "genout_note_assocs"
)

// FieldMapper binds the one-dimensional parameters of a schema, and the
// generation output, to note fields of one note type.
//
// Associations live in the user's preference tree under
// mnemn_note_assocs/<note type>/<schema name>. They are sanitized on
// construction: keys that are no longer eligible parameters are dropped and
// values naming a missing note field are reset to none.
type FieldMapper struct {
	observable.Subject

	schema     *Schema
	noteType   string
	fieldNames []string
	eligible   []string

	entry  prefs.Tree
	params prefs.Tree
}

// NewFieldMapper validates schema, ensures the association entry exists in
// tree and sanitizes it. Schema errors are returned before tree is touched.
func NewFieldMapper(schema *Schema, noteType string, fieldNames []string, tree prefs.Tree) (*FieldMapper, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}

	entry, err := tree.Subtree(prefs.KeyMnemonicAssocs, noteType, schema.Name)
	if err != nil {
		return nil, err
	}
	params, err := entry.Subtree(KeyPromptNoteAssocs)
	if err != nil {
		return nil, err
	}
	if _, ok := entry[KeyGenoutNoteAssocs]; !ok {
		entry[KeyGenoutNoteAssocs] = nil
	}

	m := &FieldMapper{
		schema:     schema,
		noteType:   noteType,
		fieldNames: slices.Clone(fieldNames),
		eligible:   schema.OneDimensionalParams(),
		entry:      entry,
		params:     params,
	}
	m.sanitize()
	return m, nil
}

// Schema returns the mapped schema.
func (m *FieldMapper) Schema() *Schema {
	return m.schema
}

// NoteType returns the mapped note type.
func (m *FieldMapper) NoteType() string {
	return m.noteType
}

// EligibleParams returns the parameters that can be bound, in schema order.
func (m *FieldMapper) EligibleParams() []string {
	return slices.Clone(m.eligible)
}

// GenerationOutputField returns the field receiving the generated text.
func (m *FieldMapper) GenerationOutputField() (string, bool) {
	s, ok := m.entry[KeyGenoutNoteAssocs].(string)
	return s, ok
}

// SetGenerationOutputField binds the generated text to field; an empty field
// unbinds it.
func (m *FieldMapper) SetGenerationOutputField(field string) error {
	value, err := m.fieldValue(field)
	if err != nil {
		return err
	}
	m.entry[KeyGenoutNoteAssocs] = value
	m.Notify()
	return nil
}

// GenerationOutputIsBound reports whether the generated text goes to a field
// that exists on the note.
func (m *FieldMapper) GenerationOutputIsBound() bool {
	field, ok := m.GenerationOutputField()
	return ok && slices.Contains(m.fieldNames, field)
}

// ParameterAssociation returns the field bound to param.
func (m *FieldMapper) ParameterAssociation(param string) (string, bool) {
	s, ok := m.params[param].(string)
	return s, ok
}

// SetParameterAssociation binds param to field; an empty field unbinds it.
func (m *FieldMapper) SetParameterAssociation(param, field string) error {
	if !slices.Contains(m.eligible, param) {
		return fmt.Errorf("%w: %q in %s", ErrUnknownParameter, param, m.schema.Name)
	}
	value, err := m.fieldValue(field)
	if err != nil {
		return err
	}
	m.params[param] = value
	m.Notify()
	return nil
}

// Bind applies several parameter bindings and, when output is not nil, the
// generation output. Everything is checked first: on error nothing changes.
func (m *FieldMapper) Bind(params map[string]string, output *string) error {
	values := make(map[string]any, len(params))
	for param, field := range params {
		if !slices.Contains(m.eligible, param) {
			return fmt.Errorf("%w: %q in %s", ErrUnknownParameter, param, m.schema.Name)
		}
		value, err := m.fieldValue(field)
		if err != nil {
			return err
		}
		values[param] = value
	}

	var outputValue any
	if output != nil {
		value, err := m.fieldValue(*output)
		if err != nil {
			return err
		}
		outputValue = value
	}

	if len(values) == 0 && output == nil {
		return nil
	}
	for param, value := range values {
		m.params[param] = value
	}
	if output != nil {
		m.entry[KeyGenoutNoteAssocs] = outputValue
	}
	m.Notify()
	return nil
}

// Associations returns every eligible parameter with its bound field, ""
// when unbound.
func (m *FieldMapper) Associations() map[string]string {
	out := make(map[string]string, len(m.eligible))
	for _, param := range m.eligible {
		field, _ := m.ParameterAssociation(param)
		out[param] = field
	}
	return out
}

// Prefill returns the values of the bound parameters read from fields.
func (m *FieldMapper) Prefill(fields models.NoteFields) map[string]string {
	out := make(map[string]string)
	for _, param := range m.eligible {
		field, ok := m.ParameterAssociation(param)
		if !ok {
			continue
		}
		if value, ok := fields.Get(field); ok {
			out[param] = value
		}
	}
	return out
}

// Sanitize enforces the association invariants again. It reports whether
// something changed and notifies only in that case.
func (m *FieldMapper) Sanitize() bool {
	changed := m.sanitize()
	if changed {
		m.Notify()
	}
	return changed
}

func (m *FieldMapper) sanitize() bool {
	changed := false

	for param := range m.params {
		if !slices.Contains(m.eligible, param) {
			delete(m.params, param)
			changed = true
		}
	}

	for param, value := range m.params {
		if value != nil && !m.knownField(value) {
			m.params[param] = nil
			changed = true
		}
	}

	if value := m.entry[KeyGenoutNoteAssocs]; value != nil && !m.knownField(value) {
		m.entry[KeyGenoutNoteAssocs] = nil
		changed = true
	}

	return changed
}

// knownField reports whether a stored value names an existing note field.
// Values of another type are treated as stale.
func (m *FieldMapper) knownField(value any) bool {
	s, ok := value.(string)
	return ok && slices.Contains(m.fieldNames, s)
}

func (m *FieldMapper) fieldValue(field string) (any, error) {
	if field == "" {
		return nil, nil
	}
	if !slices.Contains(m.fieldNames, field) {
		return nil, fmt.Errorf("%w: %q on note type %s", ErrUnknownNoteField, field, m.noteType)
	}
	return field, nil
}
