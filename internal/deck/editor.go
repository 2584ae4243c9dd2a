package deck

import (
	"context"
	"fmt"

	"github.com/xavierfontaine/omakase/internal/observable"
)

// NoteEditor edits the note fields of the selected card in place.
// Edits are visible at once to every loaded card of the same note and are
// written to the repository by Save. Unsaved edits are dropped with the card
// list when it is replaced.
type NoteEditor struct {
	observable.Subject

	mediator *Mediator
	repo     Repository
	dirty    bool
}

// NewNoteEditor creates an editor working on the selected card of mediator.
func NewNoteEditor(mediator *Mediator, repo Repository) *NoteEditor {
	e := &NoteEditor{mediator: mediator, repo: repo}
	mediator.Slots().CurrentCards.AttachFunc(func() { e.dirty = false })
	return e
}

// SetField sets the text of field name on the selected card's note.
func (e *NoteEditor) SetField(name, value string) error {
	card, err := e.mediator.CurrentCard()
	if err != nil {
		return err
	}
	if !card.NoteFields.Has(name) {
		return fmt.Errorf("%w: %q on note type %s", ErrUnknownNoteField, name, card.NoteType)
	}

	// Одна заметка может стоять за несколькими карточками
	for _, c := range e.mediator.Cards() {
		if c.NoteID == card.NoteID {
			c.NoteFields.Set(name, value)
		}
	}
	e.dirty = true
	e.Notify()
	return nil
}

// Dirty reports whether edits wait for Save.
func (e *NoteEditor) Dirty() bool {
	return e.dirty
}

// Save writes the fields of the selected card's note.
func (e *NoteEditor) Save(ctx context.Context) error {
	card, err := e.mediator.CurrentCard()
	if err != nil {
		return err
	}

	if err := e.repo.SaveNote(ctx, card.NoteID, card.NoteFields.Clone()); err != nil {
		return fmt.Errorf("failed to save note %d: %w", card.NoteID, err)
	}
	e.dirty = false
	return nil
}
