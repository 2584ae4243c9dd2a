// Package deck keeps the deck list, the selected deck, its filter, the loaded
// cards and the selected card consistent with each other.
package deck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/xavierfontaine/omakase/internal/models"
	"github.com/xavierfontaine/omakase/internal/prefs"
)

// Mediator propagates changes through the slots in a fixed order:
//
//	DeckNames -> LastSelectedDeck -> FilterPreference -> CurrentCards -> CurrentCardIndex
//
// Every step only writes to the slots after it, so a cascade always ends.
// The mediator is not safe for concurrent use: one session drives it.
type Mediator struct {
	slots  *Slots
	repo   Repository
	store  *prefs.Store
	user   string
	logger *slog.Logger

	deckPoint   *prefs.DeckPoint
	filterPoint *prefs.FilterPoint

	// ctx and errs belong to the entry point currently running
	ctx  context.Context
	errs []error
}

// NewMediator wires the cascade between slots and the preference points of
// user. Nothing is loaded until Resync is called.
func NewMediator(slots *Slots, repo Repository, store *prefs.Store, user string, logger *slog.Logger) *Mediator {
	if logger == nil {
		logger = slog.Default()
	}

	m := &Mediator{
		slots:       slots,
		repo:        repo,
		store:       store,
		user:        user,
		logger:      logger.With("user", user),
		deckPoint:   store.LastSelectedDeckPoint(user),
		filterPoint: store.FilterPoint(user),
	}

	slots.DeckNames.AttachFunc(m.onDeckNames)
	m.deckPoint.AttachFunc(m.onLastSelectedDeck)
	m.filterPoint.AttachFunc(m.onFilterPreference)
	slots.CurrentCards.AttachFunc(m.onCurrentCards)

	return m
}

// Slots returns the slots driven by the mediator.
func (m *Mediator) Slots() *Slots {
	return m.slots
}

// User returns the user the mediator works for.
func (m *Mediator) User() string {
	return m.user
}

// Resync reloads the deck list from the repository and cascades from there.
func (m *Mediator) Resync(ctx context.Context) error {
	names, err := m.repo.ListDecks(ctx, m.user)
	if err != nil {
		return fmt.Errorf("failed to list decks: %w", err)
	}

	m.begin(ctx)
	m.slots.DeckNames.Replace(names)
	return m.end()
}

// SelectDeck makes name the selected deck and loads its cards.
func (m *Mediator) SelectDeck(ctx context.Context, name string) error {
	if !slices.Contains(m.slots.DeckNames.Get(), name) {
		return fmt.Errorf("%w: %q", ErrUnknownDeck, name)
	}

	m.begin(ctx)
	m.deckPoint.Set(name)
	return m.end()
}

// SetFilter changes the filter of the selected deck and reloads its cards.
func (m *Mediator) SetFilter(ctx context.Context, label string) error {
	deck, ok, err := m.SelectedDeck()
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoDeckSelected
	}

	m.begin(ctx)
	if err := m.filterPoint.Set(deck, label); err != nil {
		_ = m.end()
		return err
	}
	return m.end()
}

// SelectCard selects the card at index i; models.NoCard clears the selection.
func (m *Mediator) SelectCard(i models.CardIndex) error {
	if i != models.NoCard && (i < 0 || int(i) >= m.slots.CurrentCards.Len()) {
		return fmt.Errorf("%w: %d of %d", ErrCardIndexOutOfRange, i, m.slots.CurrentCards.Len())
	}
	m.slots.CurrentCardIndex.Set(i)
	return nil
}

// DeckNames returns the current deck list.
func (m *Mediator) DeckNames() []string {
	return m.slots.DeckNames.Get()
}

// SelectedDeck returns the selected deck. ok is false when none is selected.
func (m *Mediator) SelectedDeck() (name string, ok bool, err error) {
	return m.deckPoint.Get()
}

// Filter returns the filter label of the selected deck.
func (m *Mediator) Filter() (string, error) {
	deck, ok, err := m.SelectedDeck()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNoDeckSelected
	}
	return m.filterPoint.Get(deck)
}

// Cards returns the loaded cards.
func (m *Mediator) Cards() []*models.Card {
	return m.slots.CurrentCards.Get()
}

// CardIndex returns the selected card index.
func (m *Mediator) CardIndex() models.CardIndex {
	return m.slots.CurrentCardIndex.Get()
}

// CurrentCard returns the selected card. Reading at an index past the end of
// the card list returns a *StaleCardIndexError; the error is logged and the
// caller is expected to display it.
func (m *Mediator) CurrentCard() (*models.Card, error) {
	idx := m.slots.CurrentCardIndex.Get()
	if !idx.Selected() {
		return nil, ErrNoCardSelected
	}

	card, ok := m.slots.CurrentCards.At(int(idx))
	if !ok {
		err := &StaleCardIndexError{Index: int(idx), Len: m.slots.CurrentCards.Len()}
		m.logger.Warn("stale card index", "error", err)
		return nil, err
	}
	return card, nil
}

func (m *Mediator) onDeckNames() {
	names := m.slots.DeckNames.Get()

	current, ok, err := m.deckPoint.Get()
	if err != nil {
		// Испорченное значение не перезаписываем: каскад останавливается
		m.fail(fmt.Errorf("failed to read last selected deck: %w", err))
		m.slots.CurrentCards.Replace(nil)
		return
	}

	switch {
	case len(names) == 0:
		m.deckPoint.Set("")
	case !ok || !slices.Contains(names, current):
		m.deckPoint.Set(names[0])
	default:
		// Переприсваиваем то же значение, чтобы каскад прошёл дальше
		m.deckPoint.Set(current)
	}
}

func (m *Mediator) onLastSelectedDeck() {
	m.deriveCards()
}

func (m *Mediator) onFilterPreference() {
	deck, ok, err := m.deckPoint.Get()
	if err != nil || !ok || deck != m.filterPoint.LastChanged() {
		return
	}
	m.deriveCards()
}

func (m *Mediator) onCurrentCards() {
	m.slots.CurrentCardIndex.Set(models.NoCard)
}

// deriveCards queries the cards of the selected deck with its filter.
// Any failure leaves an empty card list.
func (m *Mediator) deriveCards() {
	deck, ok, err := m.deckPoint.Get()
	if err != nil {
		m.fail(fmt.Errorf("failed to read last selected deck: %w", err))
		m.slots.CurrentCards.Replace(nil)
		return
	}
	if !ok {
		m.slots.CurrentCards.Replace(nil)
		return
	}

	label, err := m.filterPoint.Get(deck)
	if err != nil {
		m.fail(fmt.Errorf("failed to read filter of deck %s: %w", deck, err))
		m.slots.CurrentCards.Replace(nil)
		return
	}
	filter, _ := models.FilterByLabel(label)

	cards, err := m.repo.GetCards(m.context(), m.user, deck, filter.Code)
	if err != nil {
		m.fail(fmt.Errorf("failed to get cards of deck %s: %w", deck, err))
		m.slots.CurrentCards.Replace(nil)
		return
	}

	m.logger.Debug("cards loaded", "deck", deck, "filter", label, "count", len(cards))
	m.slots.CurrentCards.Replace(cards)
}

func (m *Mediator) begin(ctx context.Context) {
	m.ctx = ctx
	m.errs = nil
}

func (m *Mediator) end() error {
	err := errors.Join(m.errs...)
	m.ctx = nil
	m.errs = nil
	return err
}

func (m *Mediator) context() context.Context {
	if m.ctx == nil {
		return context.Background()
	}
	return m.ctx
}

func (m *Mediator) fail(err error) {
	m.logger.Error("cascade step failed", "error", err)
	m.errs = append(m.errs, err)
}
