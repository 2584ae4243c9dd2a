package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteFields(t *testing.T) {
	fields := NoteFields{{Name: "Front", Value: "旅行"}, {Name: "Back", Value: "voyage"}}

	assert.Equal(t, []string{"Front", "Back"}, fields.Names())
	assert.True(t, fields.Has("Back"))
	assert.False(t, fields.Has("Extra"))

	v, ok := fields.Get("Front")
	require.True(t, ok)
	assert.Equal(t, "旅行", v)

	assert.True(t, fields.Set("Back", "trip"))
	assert.False(t, fields.Set("Extra", "x"), "Set never adds fields")
	assert.Equal(t, map[string]string{"Front": "旅行", "Back": "trip"}, fields.Map())
}

func TestCard_CloneIsIndependent(t *testing.T) {
	card := &Card{CardID: 1, NoteID: 2, NoteFields: NoteFields{{Name: "Front", Value: "a"}}}

	clone := card.Clone()
	clone.NoteFields.Set("Front", "b")

	v, _ := card.NoteFields.Get("Front")
	assert.Equal(t, "a", v)
	assert.Equal(t, card.CardID, clone.CardID)
}

func TestCardIndex(t *testing.T) {
	assert.False(t, NoCard.Selected())
	assert.True(t, CardIndex(0).Selected())
}

func TestDeckFilters(t *testing.T) {
	tests := []struct {
		label string
		code  int
	}{
		{label: "all cards", code: 0},
		{label: "new cards", code: 1},
		{label: "cards in study", code: 2},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			f, ok := FilterByLabel(tt.label)
			require.True(t, ok)
			assert.Equal(t, tt.code, f.Code)

			byCode, err := FilterByCode(tt.code)
			require.NoError(t, err)
			assert.Equal(t, f, byCode)
		})
	}

	_, ok := FilterByLabel("suspended")
	assert.False(t, ok)
	_, err := FilterByCode(7)
	assert.Error(t, err)
	assert.Equal(t, FilterAll, DefaultFilter)
	assert.Len(t, DeckFilters(), 3)
}

func TestDeckFilter_Matches(t *testing.T) {
	assert.True(t, FilterAll.Matches(StudyStatusNew))
	assert.True(t, FilterAll.Matches(StudyStatusInStudy))
	assert.True(t, FilterNew.Matches(StudyStatusNew))
	assert.False(t, FilterNew.Matches(StudyStatusInStudy))
	assert.True(t, FilterInStudy.Matches(StudyStatusInStudy))
}
