package deck

//go:generate moq -out repository_mock.go . Repository

import (
	"context"

	"github.com/xavierfontaine/omakase/internal/models"
)

// Repository gives access to the decks and cards of the flashcard collection.
type Repository interface {
	// ListDecks returns the deck names visible to user
	ListDecks(ctx context.Context, user string) ([]string, error)

	// GetCards returns the cards of deck matching the filter code
	// Code 0 returns every card
	GetCards(ctx context.Context, user, deck string, filterCode int) ([]*models.Card, error)

	// SaveNote overwrites the fields of a note
	SaveNote(ctx context.Context, noteID int64, fields models.NoteFields) error
}
