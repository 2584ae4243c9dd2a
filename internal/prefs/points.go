package prefs

import "github.com/xavierfontaine/omakase/internal/observable"

// DeckPoint is the observable view of the last selected deck of one user.
type DeckPoint struct {
	observable.Subject
	store *Store
	user  string
}

// Get returns the last selected deck. ok is false when none is selected.
func (p *DeckPoint) Get() (name string, ok bool, err error) {
	return p.store.LastSelectedDeck(p.user)
}

// Set stores the last selected deck and notifies.
func (p *DeckPoint) Set(name string) {
	p.store.SetLastSelectedDeck(p.user, name)
}

// FilterPoint is the observable view of the deck filter preferences of one
// user. A notification concerns a single deck, given by LastChanged.
type FilterPoint struct {
	observable.Subject
	store       *Store
	user        string
	lastChanged string
}

// Get returns the filter label of deck, creating the default if needed.
func (p *FilterPoint) Get(deck string) (string, error) {
	return p.store.FilterPreference(p.user, deck)
}

// Set stores the filter label of deck and notifies.
func (p *FilterPoint) Set(deck, label string) error {
	return p.store.SetFilterPreference(p.user, deck, label)
}

// LastChanged returns the deck whose filter was set last.
func (p *FilterPoint) LastChanged() string {
	return p.lastChanged
}
