package boltdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierfontaine/omakase/internal/storage"
)

func createTestStorage(t *testing.T) (*Storage, func()) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)

	cleanup := func() {
		store.Close()
	}

	return store, cleanup
}

func TestSavePreferences(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("save and get", func(t *testing.T) {
		doc := []byte(`{"deck_filter_correspondance":{"Japanese":"new cards"}}`)
		require.NoError(t, store.SavePreferences(ctx, "alice", doc))

		got, err := store.GetPreferences(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, doc, got)
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, store.SavePreferences(ctx, "bob", []byte(`{"a":1}`)))
		require.NoError(t, store.SavePreferences(ctx, "bob", []byte(`{"a":2}`)))

		got, err := store.GetPreferences(ctx, "bob")
		require.NoError(t, err)
		assert.JSONEq(t, `{"a":2}`, string(got))
	})

	t.Run("users are isolated", func(t *testing.T) {
		require.NoError(t, store.SavePreferences(ctx, "carol", []byte(`{"x":"carol"}`)))

		got, err := store.GetPreferences(ctx, "alice")
		require.NoError(t, err)
		assert.NotContains(t, string(got), "carol")
	})
}

func TestGetPreferences_NotFound(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	_, err := store.GetPreferences(context.Background(), "nobody")
	assert.ErrorIs(t, err, storage.ErrPreferencesNotFound)
}

func TestDeletePreferences(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, store.SavePreferences(ctx, "alice", []byte(`{}`)))

	require.NoError(t, store.DeletePreferences(ctx, "alice"))

	_, err := store.GetPreferences(ctx, "alice")
	assert.ErrorIs(t, err, storage.ErrPreferencesNotFound)

	// Повторное удаление
	err = store.DeletePreferences(ctx, "alice")
	assert.ErrorIs(t, err, storage.ErrPreferencesNotFound)
}

func TestPreferences_ClosedStorage(t *testing.T) {
	store, _ := createTestStorage(t)
	require.NoError(t, store.Close())

	ctx := context.Background()

	err := store.SavePreferences(ctx, "alice", []byte(`{}`))
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	_, err = store.GetPreferences(ctx, "alice")
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	err = store.DeletePreferences(ctx, "alice")
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}
