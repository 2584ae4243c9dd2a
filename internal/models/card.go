package models

import "slices"

// StudyStatus classifies a card by its scheduling state.
type StudyStatus int

const (
	StudyStatusNew     StudyStatus = 1 // карточка ещё не изучалась
	StudyStatusInStudy StudyStatus = 2 // карточка в процессе изучения
)

// NoteField is one named field of a note.
type NoteField struct {
	Name  string `json:"name"`  // Name имя поля в типе заметки
	Value string `json:"value"` // Value текст поля
}

// NoteFields is an ordered mapping of field name to field text.
// The order is the order of the note type definition.
type NoteFields []NoteField

// Names returns the field names in order.
func (f NoteFields) Names() []string {
	names := make([]string, 0, len(f))
	for _, field := range f {
		names = append(names, field.Name)
	}
	return names
}

// Get returns the text of the field called name.
func (f NoteFields) Get(name string) (string, bool) {
	for _, field := range f {
		if field.Name == name {
			return field.Value, true
		}
	}
	return "", false
}

// Has reports whether a field called name exists.
func (f NoteFields) Has(name string) bool {
	_, ok := f.Get(name)
	return ok
}

// Set overwrites the text of an existing field. It returns false when no
// field is called name; fields are never added this way.
func (f NoteFields) Set(name, value string) bool {
	for i := range f {
		if f[i].Name == name {
			f[i].Value = value
			return true
		}
	}
	return false
}

// Map returns the fields as a plain map.
func (f NoteFields) Map() map[string]string {
	m := make(map[string]string, len(f))
	for _, field := range f {
		m[field.Name] = field.Value
	}
	return m
}

// Clone returns an independent copy.
func (f NoteFields) Clone() NoteFields {
	return slices.Clone(f)
}

// Card represents one flashcard instance backed by a note.
// Several cards may share the same note.
type Card struct {
	NoteFields     NoteFields  `json:"note_fields"`      // NoteFields поля заметки, редактируются вживую
	SortFieldValue string      `json:"sort_field_value"` // SortFieldValue значение поля сортировки
	NoteType       string      `json:"note_type"`        // NoteType имя схемы заметки
	CardID         int64       `json:"card_id"`          // CardID идентификатор карточки
	NoteID         int64       `json:"note_id"`          // NoteID идентификатор заметки
	DueValue       int64       `json:"due_value"`        // DueValue метрика планирования
	StudyStatus    StudyStatus `json:"study_status"`     // StudyStatus new или in-study
}

// Clone creates a deep copy of the card.
func (c *Card) Clone() *Card {
	clone := *c
	clone.NoteFields = c.NoteFields.Clone()
	return &clone
}

// CardIndex points into the current card list. NoCard means no card is selected.
type CardIndex int

// NoCard is the index value used when no card is selected.
const NoCard CardIndex = -1

// Selected reports whether the index designates a card.
func (i CardIndex) Selected() bool {
	return i >= 0
}
