package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierfontaine/omakase/internal/models"
)

func setupTestStorage(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	// Используем in-memory database для тестов
	storage, err := New(ctx, ":memory:")
	require.NoError(t, err)

	cleanup := func() {
		_ = storage.Close()
	}

	return storage, cleanup
}

func testCards() []*models.Card {
	return []*models.Card{
		{
			CardID: 1, NoteID: 100, NoteType: "Basic", DueValue: 3,
			StudyStatus: models.StudyStatusNew,
			NoteFields:  models.NoteFields{{Name: "Front", Value: "旅行"}, {Name: "Back", Value: "voyage"}},
		},
		{
			CardID: 2, NoteID: 100, NoteType: "Basic", DueValue: 1,
			StudyStatus: models.StudyStatusInStudy,
			NoteFields:  models.NoteFields{{Name: "Front", Value: "旅行"}, {Name: "Back", Value: "voyage"}},
		},
		{
			CardID: 3, NoteID: 200, NoteType: "Basic", DueValue: 2,
			StudyStatus:    models.StudyStatusNew,
			SortFieldValue: "custom",
			NoteFields:     models.NoteFields{{Name: "Front", Value: "犬"}, {Name: "Back", Value: "dog"}},
		},
	}
}

func TestNew_File(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "collection.db")

	s, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, s.ImportCards(ctx, "alice", "Japanese", testCards()))
	require.NoError(t, s.Close())

	// Повторное открытие: миграции не применяются второй раз, данные на месте
	s, err = New(ctx, dbPath)
	require.NoError(t, err)
	defer s.Close()

	decks, err := s.ListDecks(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"Japanese"}, decks)
}

func TestListDecks(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	decks, err := s.ListDecks(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, decks)
	assert.NotNil(t, decks)

	require.NoError(t, s.ImportCards(ctx, "alice", "Japanese", nil))
	require.NoError(t, s.ImportCards(ctx, "alice", "German", nil))
	require.NoError(t, s.ImportCards(ctx, "bob", "French", nil))

	decks, err = s.ListDecks(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"German", "Japanese"}, decks)

	decks, err = s.ListDecks(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"French"}, decks)
}

func TestGetCards(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	require.NoError(t, s.ImportCards(ctx, "alice", "Japanese", testCards()))

	tests := []struct {
		name    string
		code    int
		wantIDs []int64
	}{
		{name: "all cards by due", code: models.FilterAll.Code, wantIDs: []int64{2, 3, 1}},
		{name: "new cards", code: models.FilterNew.Code, wantIDs: []int64{3, 1}},
		{name: "cards in study", code: models.FilterInStudy.Code, wantIDs: []int64{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards, err := s.GetCards(ctx, "alice", "Japanese", tt.code)
			require.NoError(t, err)

			ids := make([]int64, 0, len(cards))
			for _, c := range cards {
				ids = append(ids, c.CardID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}

	t.Run("card content", func(t *testing.T) {
		cards, err := s.GetCards(ctx, "alice", "Japanese", models.FilterInStudy.Code)
		require.NoError(t, err)
		require.Len(t, cards, 1)

		card := cards[0]
		assert.Equal(t, int64(100), card.NoteID)
		assert.Equal(t, "Basic", card.NoteType)
		assert.Equal(t, int64(1), card.DueValue)
		assert.Equal(t, models.StudyStatusInStudy, card.StudyStatus)
		assert.Equal(t, "旅行", card.SortFieldValue)
		assert.Equal(t, []string{"Front", "Back"}, card.NoteFields.Names())
	})

	t.Run("explicit sort field kept", func(t *testing.T) {
		cards, err := s.GetCards(ctx, "alice", "Japanese", models.FilterNew.Code)
		require.NoError(t, err)
		assert.Equal(t, "custom", cards[0].SortFieldValue)
	})

	t.Run("other user sees nothing", func(t *testing.T) {
		cards, err := s.GetCards(ctx, "bob", "Japanese", 0)
		require.NoError(t, err)
		assert.Empty(t, cards)
	})

	t.Run("unknown filter code", func(t *testing.T) {
		_, err := s.GetCards(ctx, "alice", "Japanese", 9)
		assert.Error(t, err)
	})
}

func TestSaveNote(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	require.NoError(t, s.ImportCards(ctx, "alice", "Japanese", testCards()))

	fields := models.NoteFields{{Name: "Front", Value: "旅"}, {Name: "Back", Value: "trip"}}
	require.NoError(t, s.SaveNote(ctx, 100, fields))

	// Обе карточки заметки видят изменения
	cards, err := s.GetCards(ctx, "alice", "Japanese", 0)
	require.NoError(t, err)
	for _, c := range cards {
		if c.NoteID != 100 {
			continue
		}
		v, _ := c.NoteFields.Get("Back")
		assert.Equal(t, "trip", v)
		assert.Equal(t, "旅", c.SortFieldValue)
	}

	err = s.SaveNote(ctx, 999, fields)
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestImportCards(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	t.Run("reimport overwrites", func(t *testing.T) {
		require.NoError(t, s.ImportCards(ctx, "alice", "Japanese", testCards()))

		updated := testCards()[:1]
		updated[0].StudyStatus = models.StudyStatusInStudy
		require.NoError(t, s.ImportCards(ctx, "alice", "Japanese", updated))

		cards, err := s.GetCards(ctx, "alice", "Japanese", models.FilterInStudy.Code)
		require.NoError(t, err)
		assert.Len(t, cards, 2)
	})

	t.Run("invalid card rolls back", func(t *testing.T) {
		cards := []*models.Card{
			{CardID: 10, NoteID: 1000, NoteType: "Basic", StudyStatus: models.StudyStatusNew},
			{CardID: 0, NoteID: 1001, NoteType: "Basic"},
		}
		err := s.ImportCards(ctx, "alice", "Broken", cards)
		assert.ErrorIs(t, err, ErrInvalidCard)

		decks, err := s.ListDecks(ctx, "alice")
		require.NoError(t, err)
		assert.NotContains(t, decks, "Broken")
	})
}
