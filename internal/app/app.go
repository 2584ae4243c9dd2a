// Package app wires the omakase components together.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/xavierfontaine/omakase/internal/collection/sqlite"
	"github.com/xavierfontaine/omakase/internal/config"
	"github.com/xavierfontaine/omakase/internal/mnemonic"
	"github.com/xavierfontaine/omakase/internal/prefs"
	"github.com/xavierfontaine/omakase/internal/server"
	"github.com/xavierfontaine/omakase/internal/session"
	"github.com/xavierfontaine/omakase/internal/storage/boltdb"
)

// App holds the opened storages and the session manager.
type App struct {
	Config     *config.Config
	Logger     *slog.Logger
	Collection *sqlite.Storage
	Sessions   *session.Manager

	prefsDB *boltdb.Storage
}

// New opens the storages named in cfg and builds the session manager.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	prefsDB, err := boltdb.New(ctx, cfg.Storage.PreferencesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open preferences: %w", err)
	}

	collection, err := sqlite.New(ctx, cfg.Storage.CollectionPath)
	if err != nil {
		_ = prefsDB.Close()
		return nil, fmt.Errorf("failed to open collection: %w", err)
	}

	sessions := session.NewManager(session.Options{
		Repository:    collection,
		Preferences:   prefs.NewStore(prefsDB, logger),
		RowStorage:    prefsDB,
		Catalog:       mnemonic.Default(),
		Renderer:      mnemonic.NewTextRenderer(),
		DebounceDelay: cfg.Mnemonic.DebounceDelay,
		Logger:        logger,
	})

	logger.Debug("storages opened",
		slog.String("preferences", cfg.Storage.PreferencesPath),
		slog.String("collection", cfg.Storage.CollectionPath),
	)

	return &App{
		Config:     cfg,
		Logger:     logger,
		Collection: collection,
		Sessions:   sessions,
		prefsDB:    prefsDB,
	}, nil
}

// Server builds the HTTP server over the session manager.
func (a *App) Server() *server.Server {
	return server.New(a.Config.Server, a.Logger, a.Sessions, a.Sessions.Catalog(), Version)
}

// Close writes pending session data and closes the storages.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if err := a.Sessions.CloseAll(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to close sessions: %w", err))
	}
	if err := a.Collection.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close collection: %w", err))
	}
	if err := a.prefsDB.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close preferences: %w", err))
	}
	return errors.Join(errs...)
}
