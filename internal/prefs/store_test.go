package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierfontaine/omakase/internal/storage"
)

// mockBackend - простая in-memory реализация storage.PreferenceStorage
type mockBackend struct {
	docs    map[string][]byte
	getErr  error
	saveErr error
	saves   int
}

func newMockBackend() *mockBackend {
	return &mockBackend{docs: make(map[string][]byte)}
}

func (m *mockBackend) SavePreferences(ctx context.Context, user string, doc []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.docs[user] = doc
	return nil
}

func (m *mockBackend) GetPreferences(ctx context.Context, user string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	doc, ok := m.docs[user]
	if !ok {
		return nil, storage.ErrPreferencesNotFound
	}
	return doc, nil
}

func (m *mockBackend) DeletePreferences(ctx context.Context, user string) error {
	delete(m.docs, user)
	return nil
}

func TestStore_LastSelectedDeck(t *testing.T) {
	store := NewStore(nil, nil)

	_, ok, err := store.LastSelectedDeck("alice")
	require.NoError(t, err)
	assert.False(t, ok)

	notified := 0
	store.LastSelectedDeckPoint("alice").AttachFunc(func() { notified++ })

	store.SetLastSelectedDeck("alice", "Japanese")
	name, ok, err := store.LastSelectedDeck("alice")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Japanese", name)
	assert.Equal(t, 1, notified)

	// Повторное присваивание того же значения тоже уведомляет
	store.SetLastSelectedDeck("alice", "Japanese")
	assert.Equal(t, 2, notified)

	store.SetLastSelectedDeck("alice", "")
	_, ok, err = store.LastSelectedDeck("alice")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 3, notified)
}

func TestStore_FilterPreference_Default(t *testing.T) {
	store := NewStore(nil, nil)

	notified := 0
	store.FilterPoint("alice").AttachFunc(func() { notified++ })

	label, err := store.FilterPreference("alice", "Japanese")
	require.NoError(t, err)
	assert.Equal(t, "all cards", label)

	// Значение по умолчанию сохранено в дереве, без уведомления
	filters, err := store.Tree("alice").Subtree(KeyDeckFilter)
	require.NoError(t, err)
	assert.Equal(t, "all cards", filters["Japanese"])
	assert.Equal(t, 0, notified)
}

func TestStore_SetFilterPreference(t *testing.T) {
	store := NewStore(nil, nil)
	point := store.FilterPoint("alice")

	var seen []string
	point.AttachFunc(func() { seen = append(seen, point.LastChanged()) })

	require.NoError(t, store.SetFilterPreference("alice", "Japanese", "new cards"))
	require.NoError(t, store.SetFilterPreference("alice", "German", "cards in study"))

	label, err := store.FilterPreference("alice", "Japanese")
	require.NoError(t, err)
	assert.Equal(t, "new cards", label)
	assert.Equal(t, []string{"Japanese", "German"}, seen)

	err = store.SetFilterPreference("alice", "Japanese", "bogus")
	assert.ErrorIs(t, err, ErrUnknownFilter)
	assert.Len(t, seen, 2)
}

func TestStore_FilterPreference_HealsUnknownLabel(t *testing.T) {
	store := NewStore(nil, nil)
	store.Tree("alice")[KeyDeckFilter] = map[string]any{"Japanese": "old label"}

	label, err := store.FilterPreference("alice", "Japanese")
	require.NoError(t, err)
	assert.Equal(t, "all cards", label)
}

func TestStore_ShapeErrors(t *testing.T) {
	store := NewStore(nil, nil)
	store.Tree("alice")[KeyDeckFilter] = "corrupted"

	_, err := store.FilterPreference("alice", "Japanese")
	var shapeErr *StorageShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, []string{KeyDeckFilter}, shapeErr.Path)

	err = store.SetFilterPreference("alice", "Japanese", "all cards")
	assert.ErrorAs(t, err, &shapeErr)

	store.Tree("bob")[KeyDeckFilter] = map[string]any{"Japanese": 12.0}
	_, err = store.FilterPreference("bob", "Japanese")
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, []string{KeyDeckFilter, "Japanese"}, shapeErr.Path)

	store.Tree("carol")[KeyLastSelectedDeck] = true
	_, _, err = store.LastSelectedDeck("carol")
	assert.ErrorAs(t, err, &shapeErr)
}

func TestStore_PointsAreShared(t *testing.T) {
	store := NewStore(nil, nil)

	assert.Same(t, store.FilterPoint("alice"), store.FilterPoint("alice"))
	assert.Same(t, store.LastSelectedDeckPoint("alice"), store.LastSelectedDeckPoint("alice"))
	assert.NotSame(t, store.FilterPoint("alice"), store.FilterPoint("bob"))

	name, ok, err := store.LastSelectedDeckPoint("alice").Get()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, name)

	store.LastSelectedDeckPoint("alice").Set("Japanese")
	name, _, _ = store.LastSelectedDeckPoint("alice").Get()
	assert.Equal(t, "Japanese", name)

	require.NoError(t, store.FilterPoint("alice").Set("Japanese", "new cards"))
	label, err := store.FilterPoint("alice").Get("Japanese")
	require.NoError(t, err)
	assert.Equal(t, "new cards", label)
}

func TestStore_LoadAndFlush(t *testing.T) {
	ctx := context.Background()
	backend := newMockBackend()

	store := NewStore(backend, nil)
	require.NoError(t, store.Load(ctx, "alice"))

	store.SetLastSelectedDeck("alice", "Japanese")
	require.NoError(t, store.SetFilterPreference("alice", "Japanese", "new cards"))
	require.NoError(t, store.Flush(ctx, "alice"))
	assert.Equal(t, 1, backend.saves)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(backend.docs["alice"], &doc))
	assert.Equal(t, "Japanese", doc[KeyLastSelectedDeck])

	// Новый store читает сохранённые данные
	reloaded := NewStore(backend, nil)
	require.NoError(t, reloaded.Load(ctx, "alice"))

	name, ok, err := reloaded.LastSelectedDeck("alice")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Japanese", name)

	label, err := reloaded.FilterPreference("alice", "Japanese")
	require.NoError(t, err)
	assert.Equal(t, "new cards", label)
}

func TestStore_LoadErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("backend failure", func(t *testing.T) {
		backend := newMockBackend()
		backend.getErr = errors.New("disk on fire")

		err := NewStore(backend, nil).Load(ctx, "alice")
		assert.ErrorContains(t, err, "disk on fire")
	})

	t.Run("corrupted document", func(t *testing.T) {
		backend := newMockBackend()
		backend.docs["alice"] = []byte("{not json")

		err := NewStore(backend, nil).Load(ctx, "alice")
		assert.Error(t, err)
	})

	for _, doc := range []string{"null", "[]", `"alice"`, "42"} {
		t.Run("document "+doc, func(t *testing.T) {
			backend := newMockBackend()
			backend.docs["alice"] = []byte(doc)
			store := NewStore(backend, nil)

			err := store.Load(ctx, "alice")
			var shapeErr *StorageShapeError
			require.ErrorAs(t, err, &shapeErr)
			assert.Equal(t, "mapping", shapeErr.Expected)

			// Неудачная загрузка не оставляет nil-дерево
			_, err = store.FilterPreference("alice", "A")
			assert.NoError(t, err)
		})
	}

	t.Run("flush failure", func(t *testing.T) {
		backend := newMockBackend()
		backend.saveErr = storage.ErrStorageClosed

		err := NewStore(backend, nil).Flush(ctx, "alice")
		assert.ErrorIs(t, err, storage.ErrStorageClosed)
	})

	t.Run("memory only", func(t *testing.T) {
		store := NewStore(nil, nil)
		assert.NoError(t, store.Load(ctx, "alice"))
		assert.NoError(t, store.Flush(ctx, "alice"))
	})
}
