package models

import "fmt"

// DeckFilter pairs a study status code with its human-readable label.
// Code 0 is not a status: it means "no filter".
type DeckFilter struct {
	Label string
	Code  int
}

// Available deck filters
var (
	FilterAll     = DeckFilter{Code: 0, Label: "all cards"}
	FilterNew     = DeckFilter{Code: int(StudyStatusNew), Label: "new cards"}
	FilterInStudy = DeckFilter{Code: int(StudyStatusInStudy), Label: "cards in study"}
)

// DefaultFilter is the filter applied to a deck seen for the first time.
var DefaultFilter = FilterAll

var deckFilters = []DeckFilter{FilterAll, FilterNew, FilterInStudy}

var filtersByLabel = func() map[string]DeckFilter {
	m := make(map[string]DeckFilter, len(deckFilters))
	for _, f := range deckFilters {
		m[f.Label] = f
	}
	return m
}()

// DeckFilters returns the fixed registry of filters in display order.
func DeckFilters() []DeckFilter {
	out := make([]DeckFilter, len(deckFilters))
	copy(out, deckFilters)
	return out
}

// FilterByLabel looks a filter up by its label.
func FilterByLabel(label string) (DeckFilter, bool) {
	f, ok := filtersByLabel[label]
	return f, ok
}

// FilterByCode looks a filter up by its code.
func FilterByCode(code int) (DeckFilter, error) {
	for _, f := range deckFilters {
		if f.Code == code {
			return f, nil
		}
	}
	return DeckFilter{}, fmt.Errorf("unknown deck filter code %d", code)
}

// Matches reports whether a card with the given status passes the filter.
func (f DeckFilter) Matches(status StudyStatus) bool {
	return f.Code == FilterAll.Code || f.Code == int(status)
}
