package mnemonic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	schemas := c.Schemas()
	require.Len(t, schemas, 3)
	assert.Equal(t, "Sound Target Components", schemas[0].UIName)

	s, err := c.ByLabel("target & components")
	require.NoError(t, err)
	assert.Same(t, TargetComponents, s)

	s, err = c.ByName("target_components_revision")
	require.NoError(t, err)
	assert.Equal(t, "improve target & components", s.UIName)

	_, err = c.ByLabel("nope")
	assert.ErrorIs(t, err, ErrUnknownSchema)
	_, err = c.ByName("nope")
	assert.ErrorIs(t, err, ErrUnknownSchema)
}

func TestCatalog_Register(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Register(testSchema()))

	err := c.Register(testSchema())
	assert.ErrorIs(t, err, ErrInvalidSchema)

	other := testSchema()
	other.Name = "other"
	err = c.Register(other)
	assert.ErrorIs(t, err, ErrInvalidSchema, "duplicate label")

	broken := testSchema()
	broken.Name = "broken"
	broken.UIName = "broken"
	broken.Sections[0].Row.Fields[0].Kind = 0
	var typeErr *PromptFieldTypeError
	assert.ErrorAs(t, c.Register(broken), &typeErr)

	assert.Panics(t, func() { c.MustRegister(broken) })
}

func TestBuiltinSchemasAreValid(t *testing.T) {
	for _, s := range []*Schema{SoundTargetComponents, TargetComponents, TargetComponentsRevision} {
		assert.NoError(t, s.Validate(), s.Name)
	}
}
