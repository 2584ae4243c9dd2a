package prefs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_Subtree(t *testing.T) {
	t.Run("creates missing segments", func(t *testing.T) {
		tree := Tree{}

		sub, err := tree.Subtree("a", "b", "c")
		require.NoError(t, err)
		assert.Empty(t, sub)

		sub["leaf"] = "x"
		again, err := tree.Subtree("a", "b", "c")
		require.NoError(t, err)
		assert.Equal(t, "x", again["leaf"])
	})

	t.Run("accepts decoded json mappings", func(t *testing.T) {
		tree, err := decodeTree([]byte(`{"a":{"b":{"leaf":"y"}}}`))
		require.NoError(t, err)

		sub, err := tree.Subtree("a", "b")
		require.NoError(t, err)
		assert.Equal(t, "y", sub["leaf"])

		// Изменения видны через исходное дерево
		sub["leaf"] = "z"
		again, err := tree.Subtree("a", "b")
		require.NoError(t, err)
		assert.Equal(t, "z", again["leaf"])
	})

	t.Run("null segment becomes a mapping", func(t *testing.T) {
		tree := Tree{"a": nil}
		_, err := tree.Subtree("a", "b")
		require.NoError(t, err)
	})

	t.Run("non mapping segment", func(t *testing.T) {
		tree := Tree{"a": Tree{"b": "not a mapping"}}

		_, err := tree.Subtree("a", "b", "c")
		require.Error(t, err)

		var shapeErr *StorageShapeError
		require.True(t, errors.As(err, &shapeErr))
		assert.Equal(t, []string{"a", "b"}, shapeErr.Path)
		assert.Equal(t, "mapping", shapeErr.Expected)
		assert.Equal(t, "string", shapeErr.Found)
		assert.Contains(t, err.Error(), `"a.b"`)
	})
}

func TestTree_String(t *testing.T) {
	tree := Tree{"s": "value", "none": nil, "num": 3.0}

	v, ok, err := tree.String("s")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "value", v)

	_, ok, err = tree.String("none")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = tree.String("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = tree.String("num")
	var shapeErr *StorageShapeError
	assert.ErrorAs(t, err, &shapeErr)
}

func TestTree_SetString(t *testing.T) {
	tree := Tree{}
	tree.SetString("k", "v")
	assert.Equal(t, "v", tree["k"])

	tree.SetString("k", "")
	v, present := tree["k"]
	assert.True(t, present)
	assert.Nil(t, v)
}

func TestTree_Clone(t *testing.T) {
	tree := Tree{"a": map[string]any{"b": "c"}}
	clone := tree.Clone()

	sub, err := clone.Subtree("a")
	require.NoError(t, err)
	sub["b"] = "changed"

	orig, err := tree.Subtree("a")
	require.NoError(t, err)
	assert.Equal(t, "c", orig["b"])
}

func TestDecodeTree_Invalid(t *testing.T) {
	_, err := decodeTree([]byte(`{broken`))
	assert.Error(t, err)

	for _, doc := range []string{`[1,2]`, `null`, `"x"`} {
		tree, err := decodeTree([]byte(doc))
		var shapeErr *StorageShapeError
		require.ErrorAs(t, err, &shapeErr, doc)
		assert.Nil(t, tree)
	}
}
