package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/xavierfontaine/omakase/internal/debounce"
	"github.com/xavierfontaine/omakase/internal/deck"
	"github.com/xavierfontaine/omakase/internal/mnemonic"
	"github.com/xavierfontaine/omakase/internal/prefs"
	"github.com/xavierfontaine/omakase/internal/storage"
)

// Options configures a Manager.
type Options struct {
	Repository  deck.Repository
	Preferences *prefs.Store
	// RowStorage may be nil: row associations are then kept in memory
	RowStorage    storage.RowAssociationStorage
	Catalog       *mnemonic.Catalog
	Renderer      mnemonic.Renderer
	Clock         clockwork.Clock
	DebounceDelay time.Duration
	Logger        *slog.Logger
}

// Manager opens sessions and finds them by id.
// A user has at most one session: opening again returns the existing one.
type Manager struct {
	opts Options

	mu       sync.Mutex
	sessions map[string]*Session
	byUser   map[string]*Session
}

// NewManager creates a session manager. Missing options get defaults.
func NewManager(opts Options) *Manager {
	if opts.Preferences == nil {
		opts.Preferences = prefs.NewStore(nil, opts.Logger)
	}
	if opts.Catalog == nil {
		opts.Catalog = mnemonic.Default()
	}
	if opts.Renderer == nil {
		opts.Renderer = mnemonic.NewTextRenderer()
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.DebounceDelay <= 0 {
		opts.DebounceDelay = debounce.DefaultDelay
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Manager{
		opts:     opts,
		sessions: make(map[string]*Session),
		byUser:   make(map[string]*Session),
	}
}

// Catalog returns the mnemonic schemas available to sessions.
func (m *Manager) Catalog() *mnemonic.Catalog {
	return m.opts.Catalog
}

// Open returns the session of user, creating it if needed. A new session
// loads the user's preferences and the deck list.
func (m *Manager) Open(ctx context.Context, user string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.byUser[user]; ok {
		m.sessions[s.id] = s
		return s, nil
	}

	if err := m.opts.Preferences.Load(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to load preferences of %s: %w", user, err)
	}

	logger := m.opts.Logger.With("user", user)
	mediator := deck.NewMediator(deck.NewSlots(), m.opts.Repository, m.opts.Preferences, user, logger)

	s := &Session{
		id:            uuid.New().String(),
		user:          user,
		mediator:      mediator,
		editor:        deck.NewNoteEditor(mediator, m.opts.Repository),
		store:         m.opts.Preferences,
		catalog:       m.opts.Catalog,
		renderer:      m.opts.Renderer,
		rowStorage:    m.opts.RowStorage,
		clock:         m.opts.Clock,
		debounceDelay: m.opts.DebounceDelay,
		logger:        logger,
		rows:          make(map[string]*mnemonic.RowAssociations),
	}

	// Ошибка загрузки карточек не мешает открыть сессию: её можно пересинхронизировать
	if err := s.Resync(ctx); err != nil {
		logger.Warn("initial resync failed", "error", err)
	}

	m.sessions[s.id] = s
	m.byUser[user] = s
	logger.Info("session opened", "session_id", s.id)
	return s, nil
}

// Get returns the session with the given id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Close writes the pending data of a session and unregisters its id.
// Observers cannot be detached from the user's preference points, so the
// next Open of the same user registers the same session again.
func (m *Manager) Close(ctx context.Context, id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	return s.close(ctx)
}

// CloseAll writes the pending data of every session.
func (m *Manager) CloseAll(ctx context.Context) error {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.Unlock()

	var errs []error
	for _, s := range sessions {
		if err := s.close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("session %s: %w", s.id, err))
		}
	}
	return errors.Join(errs...)
}
