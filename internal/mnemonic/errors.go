package mnemonic

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSchema is returned for structural schema problems other than field types
	ErrInvalidSchema = errors.New("invalid prompt schema")

	// ErrUnknownParameter is returned when a parameter is not eligible for association
	ErrUnknownParameter = errors.New("unknown prompt parameter")

	// ErrUnknownNoteField is returned when a note field does not exist on the note type
	ErrUnknownNoteField = errors.New("unknown note field")

	// ErrUnknownSchema is returned when a schema is not in the catalog
	ErrUnknownSchema = errors.New("unknown mnemonic schema")

	// ErrRowWidth is returned when a row does not have one value per field
	ErrRowWidth = errors.New("row width mismatch")

	// ErrTemplateNotFound is returned when no template is registered for a schema
	ErrTemplateNotFound = errors.New("prompt template not found")
)

// PromptFieldTypeError reports a prompt field or parameter value whose type
// is neither text nor a (nested) mapping of text. It is a programming error.
type PromptFieldTypeError struct {
	Field string
	Type  string
}

func (e *PromptFieldTypeError) Error() string {
	return fmt.Sprintf("field %s is %s, not text or a mapping of text", e.Field, e.Type)
}
