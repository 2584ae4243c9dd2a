// Package server exposes omakase sessions over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/xavierfontaine/omakase/internal/config"
	"github.com/xavierfontaine/omakase/internal/mnemonic"
	"github.com/xavierfontaine/omakase/internal/server/handlers"
	"github.com/xavierfontaine/omakase/internal/server/middleware"
)

const healthPath = "/api/v1/health"

// RouterDeps are the collaborators of the HTTP routes.
type RouterDeps struct {
	Logger   *slog.Logger
	Sessions handlers.SessionManager
	Catalog  *mnemonic.Catalog
	// OpenLimiter ограничивает открытие сессий; nil снимает ограничение
	OpenLimiter *middleware.RateLimiter
	Version     string
}

// NewRouter builds the API handler with its middleware.
func NewRouter(deps RouterDeps) http.Handler {
	health := handlers.NewHealthHandler(deps.Logger, deps.Version)
	sessions := handlers.NewSessionHandler(deps.Logger, deps.Sessions)
	mnemonics := handlers.NewMnemonicHandler(deps.Logger, deps.Sessions, deps.Catalog)

	var open http.Handler = http.HandlerFunc(sessions.Open)
	if deps.OpenLimiter != nil {
		open = middleware.RateLimit(deps.OpenLimiter, deps.Logger)(open)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+healthPath, health.Health)
	mux.HandleFunc("GET /api/v1/filters", sessions.Filters)
	mux.HandleFunc("GET /api/v1/mnemonics", mnemonics.Schemas)

	mux.Handle("POST /api/v1/sessions", open)
	mux.HandleFunc("GET /api/v1/sessions/{id}", sessions.Get)
	mux.HandleFunc("DELETE /api/v1/sessions/{id}", sessions.Close)
	mux.HandleFunc("POST /api/v1/sessions/{id}/resync", sessions.Resync)
	mux.HandleFunc("PUT /api/v1/sessions/{id}/deck", sessions.SelectDeck)
	mux.HandleFunc("PUT /api/v1/sessions/{id}/filter", sessions.SetFilter)
	mux.HandleFunc("GET /api/v1/sessions/{id}/card", sessions.CurrentCard)
	mux.HandleFunc("PUT /api/v1/sessions/{id}/card", sessions.SelectCard)
	mux.HandleFunc("PUT /api/v1/sessions/{id}/card/fields/{field}", sessions.SetField)
	mux.HandleFunc("POST /api/v1/sessions/{id}/card/save", sessions.SaveNote)

	const mnemonicPath = "/api/v1/sessions/{id}/mnemonics/{schema}"
	mux.HandleFunc("GET "+mnemonicPath+"/associations", mnemonics.Associations)
	mux.HandleFunc("PUT "+mnemonicPath+"/associations", mnemonics.SetAssociations)
	mux.HandleFunc("POST "+mnemonicPath+"/prompt", mnemonics.Prompt)
	mux.HandleFunc("PUT "+mnemonicPath+"/output", mnemonics.ApplyOutput)
	mux.HandleFunc("GET "+mnemonicPath+"/rows/{section}", mnemonics.RetrieveRow)
	mux.HandleFunc("PUT "+mnemonicPath+"/rows/{section}", mnemonics.StoreRow)

	return middleware.Chain(
		middleware.RecoveryMiddleware(deps.Logger),
		middleware.RequestID,
		middleware.LoggingWithSkip(deps.Logger, []string{healthPath}),
	)(mux)
}

// Server is the omakase HTTP server.
type Server struct {
	httpServer      *http.Server
	limiter         *middleware.RateLimiter
	logger          *slog.Logger
	shutdownTimeout time.Duration
}

// New creates a server listening on cfg.Address.
func New(cfg config.ServerConfig, logger *slog.Logger, sessions handlers.SessionManager, catalog *mnemonic.Catalog, version string) *Server {
	limiter := middleware.NewRateLimiter(clockwork.NewRealClock(), cfg.SessionRate, cfg.SessionRateWindow)

	handler := NewRouter(RouterDeps{
		Logger:      logger,
		Sessions:    sessions,
		Catalog:     catalog,
		OpenLimiter: limiter,
		Version:     version,
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Address,
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
		},
		limiter:         limiter,
		logger:          logger,
		shutdownTimeout: cfg.ShutdownTimeout,
	}
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.limiter.Stop()

	errC := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server started", "address", ln.Addr().String())
		errC <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errC:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("HTTP server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	return nil
}
