package mnemonic

import (
	"fmt"
	"sync"
)

// Built-in schemas
var (
	SoundTargetComponents = &Schema{
		Name:            "sound_target_components",
		UIName:          "Sound Target Components",
		Description:     "Associate a target concept with the sound of component concepts",
		Explanation:     "Build a reading mnemonic: each sound of the word is tied to a concept.",
		TemplateName:    "reading_mnem",
		TemplateVersion: 0,
		Sections: []Section{
			{
				Name:        "target_concept",
				UIName:      "target concept",
				Explanation: "The concept behind the word under study. For instance, 'voyage' for 旅行.",
				Repeat:      1,
				Row: Row{Fields: []Field{{
					Name:        "target_concept",
					UIName:      "target concept",
					Explanation: "Target concept (e.g., 'voyage', if learning the word 旅行)",
					Placeholder: "Target concept ('voyage')",
					Kind:        FieldText,
				}}},
			},
			{
				Name:   "target_meaning_mnemonic",
				UIName: "target meaning mnemonic",
				Repeat: 1,
				Row: Row{Fields: []Field{{
					Name:        "target_meaning_mnemonic",
					UIName:      "target meaning mnemonic",
					Explanation: "Mnemonic for the target concept (e.g. for 旅行, 'When your family goes, it is on a voyage.')",
					Placeholder: "Target meaning mnemonic ('When your family goes, it is on a voyage')",
					Kind:        FieldText,
				}}},
			},
			{
				Name:   "component",
				UIName: "component",
				Explanation: "The overall reading of the concept is composed into components " +
					"('voyage' → [りょ, こう]). Each of them becomes an association of a concept, " +
					"details about that concept, and a sound.",
				Repeat: 4,
				Row: Row{Fields: []Field{
					{
						Name:        "sound",
						UIName:      "sound",
						Explanation: "The sound associated to the component concept ('りょ')",
						Placeholder: "Sound ('りょ')",
						Kind:        FieldText,
					},
					{
						Name:        "component_concept",
						UIName:      "component concept",
						Explanation: "Concept related to the component ('bath robe')",
						Placeholder: "concept ('bath robe'...)",
						Kind:        FieldText,
					},
					{
						Name:        "component_concept_details",
						UIName:      "component concept details",
						Explanation: "Description of the component concept ('A fancy bath robe, blue as the sea')",
						Placeholder: "details ('A fancy bath robe [..]')",
						Kind:        FieldText,
					},
				}},
			},
		},
	}

	TargetComponents = &Schema{
		Name:            "target_components",
		UIName:          "target & components",
		Description:     "Associate a target to remember with component concepts available during recall",
		TemplateName:    "pure_concepts",
		TemplateVersion: 0,
		Sections: []Section{
			{
				Name:   "target_concept",
				UIName: "target concept",
				Repeat: 1,
				Row: Row{Fields: []Field{{
					Name:   "target_concept",
					UIName: "target concept",
					Kind:   FieldText,
				}}},
			},
			{
				Name:   "component_concepts",
				UIName: "component concepts",
				Repeat: 1,
				Row: Row{Fields: []Field{{
					Name:   "component_concepts",
					UIName: "component concepts",
					Kind:   FieldMapping,
				}}},
			},
		},
	}

	TargetComponentsRevision = &Schema{
		Name:            "target_components_revision",
		UIName:          "improve target & components",
		Description:     "Improve on a 'target & components' mnemonic.",
		TemplateName:    "pure_concepts_revision",
		TemplateVersion: 0,
		Sections: []Section{
			{
				Name:   "mnemonic",
				UIName: "mnemonic",
				Repeat: 1,
				Row: Row{Fields: []Field{{
					Name:   "mnemonic",
					UIName: "mnemonic",
					Kind:   FieldText,
				}}},
			},
		},
	}
)

// Catalog indexes schemas by name and by UI label.
type Catalog struct {
	mu      sync.RWMutex
	order   []*Schema
	byName  map[string]*Schema
	byLabel map[string]*Schema
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		byName:  make(map[string]*Schema),
		byLabel: make(map[string]*Schema),
	}
}

// Register adds a schema after validating it.
func (c *Catalog) Register(s *Schema) error {
	if err := s.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.byName[s.Name]; ok {
		return fmt.Errorf("%w: schema %q already registered", ErrInvalidSchema, s.Name)
	}
	if _, ok := c.byLabel[s.UIName]; ok {
		return fmt.Errorf("%w: label %q already registered", ErrInvalidSchema, s.UIName)
	}
	c.order = append(c.order, s)
	c.byName[s.Name] = s
	c.byLabel[s.UIName] = s
	return nil
}

// MustRegister is like Register but panics on error.
func (c *Catalog) MustRegister(s *Schema) {
	if err := c.Register(s); err != nil {
		panic(err)
	}
}

// ByName returns the schema stored under name.
func (c *Catalog) ByName(name string) (*Schema, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSchema, name)
	}
	return s, nil
}

// ByLabel returns the schema displayed as label.
func (c *Catalog) ByLabel(label string) (*Schema, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.byLabel[label]
	if !ok {
		return nil, fmt.Errorf("%w: label %q", ErrUnknownSchema, label)
	}
	return s, nil
}

// Schemas returns the schemas in registration order.
func (c *Catalog) Schemas() []*Schema {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Schema, len(c.order))
	copy(out, c.order)
	return out
}

// Default returns the catalog of built-in schemas.
func Default() *Catalog {
	c := NewCatalog()
	c.MustRegister(SoundTargetComponents)
	c.MustRegister(TargetComponents)
	c.MustRegister(TargetComponentsRevision)
	return c
}
