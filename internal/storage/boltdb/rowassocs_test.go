package boltdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierfontaine/omakase/internal/storage"
)

func TestRowAssociations(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("save and get", func(t *testing.T) {
		doc := []byte(`{"0":"kanji"}`)
		require.NoError(t, store.SaveRowAssociations(ctx, "alice", "components", doc))

		got, err := store.GetRowAssociations(ctx, "alice", "components")
		require.NoError(t, err)
		assert.Equal(t, doc, got)
	})

	t.Run("row types are separate", func(t *testing.T) {
		require.NoError(t, store.SaveRowAssociations(ctx, "alice", "targets", []byte(`{"1":"kana"}`)))

		got, err := store.GetRowAssociations(ctx, "alice", "components")
		require.NoError(t, err)
		assert.JSONEq(t, `{"0":"kanji"}`, string(got))
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := store.GetRowAssociations(ctx, "bob", "components")
		assert.ErrorIs(t, err, storage.ErrRowAssociationsNotFound)
	})

	t.Run("unknown row type", func(t *testing.T) {
		_, err := store.GetRowAssociations(ctx, "alice", "unknown")
		assert.ErrorIs(t, err, storage.ErrRowAssociationsNotFound)
	})
}

func TestRowAssociations_ClosedStorage(t *testing.T) {
	store, _ := createTestStorage(t)
	require.NoError(t, store.Close())

	ctx := context.Background()

	err := store.SaveRowAssociations(ctx, "alice", "components", []byte(`{}`))
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	_, err = store.GetRowAssociations(ctx, "alice", "components")
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}
