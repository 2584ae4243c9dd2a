// Package prefs keeps per-user preferences in a nested mapping and exposes
// them through observable data points.
package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/xavierfontaine/omakase/internal/models"
	"github.com/xavierfontaine/omakase/internal/storage"
)

// Top-level keys of a user tree
const (
	KeyLastSelectedDeck = "last_selected_deck"
	KeyDeckFilter       = "deck_filter_correspondance"
	KeyMnemonicAssocs   = "mnemn_note_assocs"
)

// Store holds the preference trees of all users seen so far.
// A tree belongs to one session: the mutex only guards the maps of the store,
// not the content of a tree.
type Store struct {
	backend storage.PreferenceStorage
	logger  *slog.Logger

	mu           sync.Mutex
	trees        map[string]Tree
	deckPoints   map[string]*DeckPoint
	filterPoints map[string]*FilterPoint
}

// NewStore creates a preference store. backend may be nil, in which case
// preferences live in memory only.
func NewStore(backend storage.PreferenceStorage, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		backend:      backend,
		logger:       logger,
		trees:        make(map[string]Tree),
		deckPoints:   make(map[string]*DeckPoint),
		filterPoints: make(map[string]*FilterPoint),
	}
}

// Load replaces the in-memory tree of user with the persisted one.
// A user without persisted preferences starts with an empty tree.
func (s *Store) Load(ctx context.Context, user string) error {
	if s.backend == nil {
		return nil
	}

	doc, err := s.backend.GetPreferences(ctx, user)
	if err != nil {
		if errors.Is(err, storage.ErrPreferencesNotFound) {
			s.logger.Debug("no stored preferences", "user", user)
			s.setTree(user, Tree{})
			return nil
		}
		return fmt.Errorf("failed to load preferences: %w", err)
	}

	tree, err := decodeTree(doc)
	if err != nil {
		return err
	}
	s.setTree(user, tree)
	s.logger.Debug("preferences loaded", "user", user, "bytes", len(doc))
	return nil
}

// Flush persists the tree of user.
func (s *Store) Flush(ctx context.Context, user string) error {
	if s.backend == nil {
		return nil
	}

	doc, err := json.Marshal(s.Tree(user))
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	if err := s.backend.SavePreferences(ctx, user, doc); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

// Tree returns the live preference tree of user, creating an empty one on
// first access.
func (s *Store) Tree(user string) Tree {
	s.mu.Lock()
	defer s.mu.Unlock()

	tree, ok := s.trees[user]
	if !ok {
		tree = Tree{}
		s.trees[user] = tree
	}
	return tree
}

func (s *Store) setTree(user string, tree Tree) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trees[user] = tree
}

// LastSelectedDeck returns the deck last selected by user.
// ok is false when no deck is selected.
func (s *Store) LastSelectedDeck(user string) (name string, ok bool, err error) {
	return s.Tree(user).String(KeyLastSelectedDeck)
}

// SetLastSelectedDeck stores name as the last selected deck of user; an empty
// name clears it. Observers of the deck point are always notified, even when
// the value does not change.
func (s *Store) SetLastSelectedDeck(user, name string) {
	s.Tree(user).SetString(KeyLastSelectedDeck, name)
	s.LastSelectedDeckPoint(user).Notify()
}

// FilterPreference returns the filter label chosen by user for deck.
// The default label is created and stored on first access, without notifying:
// the effective value does not change.
func (s *Store) FilterPreference(user, deck string) (string, error) {
	filters, err := s.Tree(user).Subtree(KeyDeckFilter)
	if err != nil {
		return "", err
	}

	label, ok, err := filters.String(deck)
	if err != nil {
		return "", &StorageShapeError{
			Path:     []string{KeyDeckFilter, deck},
			Expected: "string",
			Found:    fmt.Sprintf("%T", filters[deck]),
		}
	}

	if !ok {
		filters[deck] = models.DefaultFilter.Label
		return models.DefaultFilter.Label, nil
	}

	if _, known := models.FilterByLabel(label); !known {
		s.logger.Warn("unknown stored filter, resetting to default",
			"user", user, "deck", deck, "label", label)
		filters[deck] = models.DefaultFilter.Label
		return models.DefaultFilter.Label, nil
	}

	return label, nil
}

// SetFilterPreference stores label as the filter of deck and notifies the
// filter point of user.
func (s *Store) SetFilterPreference(user, deck, label string) error {
	if _, ok := models.FilterByLabel(label); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFilter, label)
	}

	filters, err := s.Tree(user).Subtree(KeyDeckFilter)
	if err != nil {
		return err
	}
	filters[deck] = label

	point := s.FilterPoint(user)
	point.lastChanged = deck
	point.Notify()
	return nil
}

// LastSelectedDeckPoint returns the observable last-deck point of user.
// The same instance is returned on every call.
func (s *Store) LastSelectedDeckPoint(user string) *DeckPoint {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.deckPoints[user]
	if !ok {
		p = &DeckPoint{store: s, user: user}
		s.deckPoints[user] = p
	}
	return p
}

// FilterPoint returns the observable filter point of user.
// The same instance is returned on every call.
func (s *Store) FilterPoint(user string) *FilterPoint {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.filterPoints[user]
	if !ok {
		p = &FilterPoint{store: s, user: user}
		s.filterPoints[user] = p
	}
	return p
}
