// Package session ties together, for one user, the deck mediator, the note
// editor and the mnemonic tools working on the selected card.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/xavierfontaine/omakase/internal/debounce"
	"github.com/xavierfontaine/omakase/internal/deck"
	"github.com/xavierfontaine/omakase/internal/mnemonic"
	"github.com/xavierfontaine/omakase/internal/models"
	"github.com/xavierfontaine/omakase/internal/prefs"
	"github.com/xavierfontaine/omakase/internal/storage"
)

// Session is the editing state of one user.
// Methods are safe for concurrent use: they are serialized on a mutex.
type Session struct {
	id   string
	user string

	mediator *deck.Mediator
	editor   *deck.NoteEditor
	store    *prefs.Store
	catalog  *mnemonic.Catalog
	renderer mnemonic.Renderer

	rowStorage    storage.RowAssociationStorage
	clock         clockwork.Clock
	debounceDelay time.Duration
	logger        *slog.Logger

	mu   sync.Mutex
	rows map[string]*mnemonic.RowAssociations
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// User returns the session owner.
func (s *Session) User() string {
	return s.user
}

// State is a snapshot of the session for display.
type State struct {
	ID        string           `json:"id"`
	User      string           `json:"user"`
	Decks     []string         `json:"decks"`
	Deck      string           `json:"deck"`
	Filter    string           `json:"filter"`
	Cards     []*models.Card   `json:"cards"`
	CardIndex models.CardIndex `json:"card_index"`
	Dirty     bool             `json:"dirty"`
}

// State returns a snapshot of the session.
func (s *Session) State() (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state()
}

func (s *Session) state() (*State, error) {
	st := &State{
		ID:        s.id,
		User:      s.user,
		Decks:     s.mediator.DeckNames(),
		Cards:     cloneCards(s.mediator.Cards()),
		CardIndex: s.mediator.CardIndex(),
		Dirty:     s.editor.Dirty(),
	}

	name, ok, err := s.mediator.SelectedDeck()
	if err != nil {
		return nil, err
	}
	if ok {
		st.Deck = name
		if st.Filter, err = s.mediator.Filter(); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// Resync reloads the decks and the cards.
func (s *Session) Resync(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistAfter(ctx, s.mediator.Resync(ctx))
}

// SelectDeck selects a deck and loads its cards.
func (s *Session) SelectDeck(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistAfter(ctx, s.mediator.SelectDeck(ctx, name))
}

// SetFilter changes the filter of the selected deck.
func (s *Session) SetFilter(ctx context.Context, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistAfter(ctx, s.mediator.SetFilter(ctx, label))
}

// SelectCard selects a card of the loaded list.
func (s *Session) SelectCard(i models.CardIndex) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mediator.SelectCard(i)
}

// CurrentCard returns the selected card.
func (s *Session) CurrentCard() (*models.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, err := s.mediator.CurrentCard()
	if err != nil {
		return nil, err
	}
	return card.Clone(), nil
}

// SetField edits a field of the selected card's note.
func (s *Session) SetField(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.SetField(name, value)
}

// SaveNote writes the selected card's note to the collection.
func (s *Session) SaveNote(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.Save(ctx)
}

// Associations describes how a schema is bound to the selected card's note type.
type Associations struct {
	Schema           string            `json:"schema"`
	NoteType         string            `json:"note_type"`
	NoteFields       []string          `json:"note_fields"`
	Parameters       map[string]string `json:"parameters"`
	GenerationOutput string            `json:"generation_output"`
	OutputBound      bool              `json:"output_bound"`
}

// Associations returns the associations of schemaName for the selected card.
// Loading them sanitizes what is stored.
func (s *Session) Associations(ctx context.Context, schemaName string) (*Associations, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mapper, card, err := s.mapper(schemaName)
	if err != nil {
		return nil, err
	}
	if err := s.store.Flush(ctx, s.user); err != nil {
		return nil, err
	}
	return describe(mapper, card), nil
}

// SetAssociations binds parameters and the generation output of schemaName.
// A nil output leaves the generation output unchanged. A rejected binding
// leaves every association unchanged.
func (s *Session) SetAssociations(ctx context.Context, schemaName string, params map[string]string, output *string) (*Associations, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mapper, card, err := s.mapper(schemaName)
	if err != nil {
		return nil, err
	}

	if err := mapper.Bind(params, output); err != nil {
		return nil, err
	}

	if err := s.store.Flush(ctx, s.user); err != nil {
		return nil, err
	}
	return describe(mapper, card), nil
}

// Prompt renders the prompt of schemaName. Parameters bound to note fields
// are taken from the selected card unless given in params.
func (s *Session) Prompt(schemaName string, params mnemonic.Params) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mapper, card, err := s.mapper(schemaName)
	if err != nil {
		return "", err
	}

	merged := mapper.Schema().EmptyParams()
	for param, value := range mapper.Prefill(card.NoteFields) {
		merged[param] = value
	}
	for name, value := range params {
		if str, ok := value.(string); ok && str == "" {
			continue
		}
		merged[name] = value
	}

	return s.renderer.Render(mapper.Schema(), merged)
}

// ApplyOutput writes generated text to the note field bound to the
// generation output of schemaName.
func (s *Session) ApplyOutput(schemaName, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	mapper, _, err := s.mapper(schemaName)
	if err != nil {
		return err
	}
	if !mapper.GenerationOutputIsBound() {
		return ErrOutputNotBound
	}
	field, _ := mapper.GenerationOutputField()
	return s.editor.SetField(field, text)
}

// StoreRow remembers the values of one row of a section.
func (s *Session) StoreRow(ctx context.Context, schemaName, sectionName string, values []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.rowAssociations(ctx, schemaName, sectionName)
	if err != nil {
		return err
	}
	return rows.Store(values)
}

// RetrieveRow returns the row remembered with value at position pos.
func (s *Session) RetrieveRow(ctx context.Context, schemaName, sectionName string, pos int, value string) ([]string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.rowAssociations(ctx, schemaName, sectionName)
	if err != nil {
		return nil, false, err
	}
	row, ok := rows.Retrieve(pos, value)
	return row, ok, nil
}

// close writes everything pending.
func (s *Session) close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rows := range s.rows {
		rows.Flush()
	}
	return s.store.Flush(ctx, s.user)
}

func (s *Session) mapper(schemaName string) (*mnemonic.FieldMapper, *models.Card, error) {
	schema, err := s.catalog.ByName(schemaName)
	if err != nil {
		return nil, nil, err
	}
	card, err := s.mediator.CurrentCard()
	if err != nil {
		return nil, nil, err
	}

	mapper, err := mnemonic.NewFieldMapper(schema, card.NoteType, card.NoteFields.Names(), s.store.Tree(s.user))
	if err != nil {
		return nil, nil, err
	}
	return mapper, card, nil
}

func (s *Session) rowAssociations(ctx context.Context, schemaName, sectionName string) (*mnemonic.RowAssociations, error) {
	schema, err := s.catalog.ByName(schemaName)
	if err != nil {
		return nil, err
	}
	section, ok := schema.Section(sectionName)
	if !ok {
		return nil, fmt.Errorf("%w: %q in %s", ErrUnknownSection, sectionName, schemaName)
	}

	rowType := mnemonic.RowType(schema, section)
	if rows, ok := s.rows[rowType]; ok {
		return rows, nil
	}

	rows := mnemonic.NewRowAssociations(
		s.user, rowType, len(section.Row.Fields),
		s.rowStorage, debounce.New(s.clock, s.debounceDelay), s.logger,
	)
	if err := rows.Load(ctx); err != nil {
		return nil, err
	}
	s.rows[rowType] = rows
	return rows, nil
}

// persistAfter flushes preferences once a mediator operation is done, even
// when it failed half way: the cascade may have stored defaults.
func (s *Session) persistAfter(ctx context.Context, opErr error) error {
	if err := s.store.Flush(ctx, s.user); err != nil {
		s.logger.Error("failed to persist preferences", "error", err)
		if opErr == nil {
			return err
		}
	}
	return opErr
}

func describe(mapper *mnemonic.FieldMapper, card *models.Card) *Associations {
	output, _ := mapper.GenerationOutputField()
	return &Associations{
		Schema:           mapper.Schema().Name,
		NoteType:         card.NoteType,
		NoteFields:       card.NoteFields.Names(),
		Parameters:       mapper.Associations(),
		GenerationOutput: output,
		OutputBound:      mapper.GenerationOutputIsBound(),
	}
}

func cloneCards(cards []*models.Card) []*models.Card {
	out := make([]*models.Card, len(cards))
	for i, c := range cards {
		out[i] = c.Clone()
	}
	return out
}
