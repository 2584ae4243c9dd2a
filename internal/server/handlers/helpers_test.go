package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xavierfontaine/omakase/internal/mnemonic"
	"github.com/xavierfontaine/omakase/internal/models"
	"github.com/xavierfontaine/omakase/internal/session"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockRepository - коллекция в памяти с одной колодой
type mockRepository struct {
	mu      sync.Mutex
	decks   []string
	cards   map[string][]*models.Card
	saved   map[int64]models.NoteFields
	saveErr error
}

func newMockRepository() *mockRepository {
	fields := func(word, meaning string) models.NoteFields {
		return models.NoteFields{
			{Name: "Word", Value: word},
			{Name: "Meaning", Value: meaning},
			{Name: "Mnemonic", Value: ""},
		}
	}
	return &mockRepository{
		decks: []string{"Japanese", "Korean"},
		cards: map[string][]*models.Card{
			"Japanese": {
				{CardID: 1, NoteID: 10, NoteType: "Vocab", StudyStatus: models.StudyStatusNew, NoteFields: fields("旅行", "voyage")},
				{CardID: 2, NoteID: 20, NoteType: "Vocab", StudyStatus: models.StudyStatusInStudy, NoteFields: fields("犬", "dog")},
			},
		},
		saved: make(map[int64]models.NoteFields),
	}
}

func (r *mockRepository) ListDecks(ctx context.Context, user string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.decks...), nil
}

func (r *mockRepository) GetCards(ctx context.Context, user, deckName string, code int) ([]*models.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	filter, err := models.FilterByCode(code)
	if err != nil {
		return nil, err
	}
	var out []*models.Card
	for _, c := range r.cards[deckName] {
		if filter.Matches(c.StudyStatus) {
			out = append(out, c.Clone())
		}
	}
	return out, nil
}

func (r *mockRepository) SaveNote(ctx context.Context, noteID int64, fields models.NoteFields) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved[noteID] = fields.Clone()
	return nil
}

type testEnv struct {
	repo      *mockRepository
	manager   *session.Manager
	sessions  *SessionHandler
	mnemonics *MnemonicHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := setupTestLogger()
	repo := newMockRepository()
	manager := session.NewManager(session.Options{
		Repository: repo,
		Catalog:    mnemonic.Default(),
		Logger:     logger,
	})
	t.Cleanup(func() { _ = manager.CloseAll(context.Background()) })

	return &testEnv{
		repo:      repo,
		manager:   manager,
		sessions:  NewSessionHandler(logger, manager),
		mnemonics: NewMnemonicHandler(logger, manager, manager.Catalog()),
	}
}

// openSession открывает сессию alice и выбирает первую карточку колоды Japanese
func (e *testEnv) openSession(t *testing.T) string {
	t.Helper()
	s, err := e.manager.Open(context.Background(), "alice")
	require.NoError(t, err)
	require.NoError(t, s.SelectDeck(context.Background(), "Japanese"))
	require.NoError(t, s.SelectCard(0))
	return s.ID()
}

// call вызывает handler напрямую, подставляя значения шаблона пути
func call(t *testing.T, h http.HandlerFunc, method, target string, body any, pathValues map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}
