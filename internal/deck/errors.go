package deck

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCardSelected is returned when the current card is read while no card is selected
	ErrNoCardSelected = errors.New("no card selected")

	// ErrStaleCardIndex is matched by *StaleCardIndexError
	ErrStaleCardIndex = errors.New("stale card index")

	// ErrNoDeckSelected is returned by operations needing a selected deck
	ErrNoDeckSelected = errors.New("no deck selected")

	// ErrUnknownDeck is returned when selecting a deck missing from the deck list
	ErrUnknownDeck = errors.New("unknown deck")

	// ErrCardIndexOutOfRange is returned when selecting a card past the end of the list
	ErrCardIndexOutOfRange = errors.New("card index out of range")

	// ErrUnknownNoteField is returned when editing a field the note does not have
	ErrUnknownNoteField = errors.New("unknown note field")
)

// StaleCardIndexError reports a read of the current card at an index the
// card list no longer has. It happens when a reader runs between a card list
// replacement and the index reset.
type StaleCardIndexError struct {
	Index int
	Len   int
}

func (e *StaleCardIndexError) Error() string {
	return fmt.Sprintf("card index %d is stale: %d cards loaded", e.Index, e.Len)
}

// Is makes errors.Is(err, ErrStaleCardIndex) hold.
func (e *StaleCardIndexError) Is(target error) bool {
	return target == ErrStaleCardIndex
}
