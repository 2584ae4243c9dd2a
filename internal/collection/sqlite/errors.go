package sqlite

import "errors"

var (
	// ErrNoteNotFound indicates that the note does not exist
	ErrNoteNotFound = errors.New("note not found")

	// ErrInvalidCard indicates a card that cannot be imported
	ErrInvalidCard = errors.New("invalid card")
)
