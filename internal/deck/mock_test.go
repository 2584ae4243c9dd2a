package deck

import (
	"context"

	"github.com/xavierfontaine/omakase/internal/models"
)

type getCardsCall struct {
	deck string
	code int
}

// mockRepository - in-memory коллекция поверх сгенерированного RepositoryMock
type mockRepository struct {
	*RepositoryMock

	decks    []string
	cards    map[string][]*models.Card
	saved    map[int64]models.NoteFields
	listErr  error
	cardsErr error
	saveErr  error

	// queriesFrom отбрасывает запросы, сделанные до resetQueries
	queriesFrom int
}

func newMockRepository(decks ...string) *mockRepository {
	r := &mockRepository{
		decks: decks,
		cards: make(map[string][]*models.Card),
		saved: make(map[int64]models.NoteFields),
	}
	r.RepositoryMock = &RepositoryMock{
		ListDecksFunc: func(ctx context.Context, user string) ([]string, error) {
			if r.listErr != nil {
				return nil, r.listErr
			}
			return append([]string(nil), r.decks...), nil
		},
		GetCardsFunc: func(ctx context.Context, user, deck string, filterCode int) ([]*models.Card, error) {
			if r.cardsErr != nil {
				return nil, r.cardsErr
			}
			filter, err := models.FilterByCode(filterCode)
			if err != nil {
				return nil, err
			}
			var out []*models.Card
			for _, c := range r.cards[deck] {
				if filter.Matches(c.StudyStatus) {
					out = append(out, c.Clone())
				}
			}
			return out, nil
		},
		SaveNoteFunc: func(ctx context.Context, noteID int64, fields models.NoteFields) error {
			if r.saveErr != nil {
				return r.saveErr
			}
			r.saved[noteID] = fields
			return nil
		},
	}
	return r
}

// queries returns the GetCards calls since the last resetQueries.
func (r *mockRepository) queries() []getCardsCall {
	var out []getCardsCall
	for _, call := range r.GetCardsCalls()[r.queriesFrom:] {
		out = append(out, getCardsCall{deck: call.Deck, code: call.FilterCode})
	}
	return out
}

func (r *mockRepository) resetQueries() {
	r.queriesFrom = len(r.GetCardsCalls())
}

func newCard(id, noteID int64, status models.StudyStatus) *models.Card {
	return &models.Card{
		CardID:      id,
		NoteID:      noteID,
		NoteType:    "Basic",
		StudyStatus: status,
		NoteFields: models.NoteFields{
			{Name: "Front", Value: "front"},
			{Name: "Back", Value: "back"},
		},
	}
}

func last(calls []getCardsCall) getCardsCall {
	if len(calls) == 0 {
		return getCardsCall{}
	}
	return calls[len(calls)-1]
}
