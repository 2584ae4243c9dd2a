package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/xavierfontaine/omakase/internal/models"
	"github.com/xavierfontaine/omakase/internal/session"
	"github.com/xavierfontaine/omakase/internal/validation"
	"github.com/xavierfontaine/omakase/pkg/api"
)

// SessionManager opens and finds editing sessions.
type SessionManager interface {
	Open(ctx context.Context, user string) (*session.Session, error)
	Get(id string) (*session.Session, error)
	Close(ctx context.Context, id string) error
}

// SessionHandler обрабатывает запросы работы с колодами и карточками
type SessionHandler struct {
	logger   *slog.Logger
	sessions SessionManager
}

// NewSessionHandler создает новый handler сессий
func NewSessionHandler(logger *slog.Logger, sessions SessionManager) *SessionHandler {
	return &SessionHandler{
		logger:   logger,
		sessions: sessions,
	}
}

// Open обрабатывает POST /api/v1/sessions
func (h *SessionHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req api.OpenSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validation.ValidateUsername(req.User); err != nil {
		sendDomainError(h.logger, w, r, err)
		return
	}

	s, err := h.sessions.Open(r.Context(), req.User)
	if err != nil {
		sendDomainError(h.logger, w, r, err)
		return
	}
	h.sendState(w, r, s, http.StatusCreated)
}

// Get обрабатывает GET /api/v1/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	h.sendState(w, r, s, http.StatusOK)
}

// Close обрабатывает DELETE /api/v1/sessions/{id}
func (h *SessionHandler) Close(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Close(r.Context(), r.PathValue("id")); err != nil {
		sendDomainError(h.logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Resync обрабатывает POST /api/v1/sessions/{id}/resync
func (h *SessionHandler) Resync(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := s.Resync(r.Context()); err != nil {
		sendDomainError(h.logger, w, r, err)
		return
	}
	h.sendState(w, r, s, http.StatusOK)
}

// SelectDeck обрабатывает PUT /api/v1/sessions/{id}/deck
func (h *SessionHandler) SelectDeck(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req api.SelectDeckRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validation.ValidateDeckName(req.Deck); err != nil {
		sendDomainError(h.logger, w, r, err)
		return
	}

	if err := s.SelectDeck(r.Context(), req.Deck); err != nil {
		sendDomainError(h.logger, w, r, err)
		return
	}
	h.sendState(w, r, s, http.StatusOK)
}

// SetFilter обрабатывает PUT /api/v1/sessions/{id}/filter
func (h *SessionHandler) SetFilter(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req api.SetFilterRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.SetFilter(r.Context(), req.Filter); err != nil {
		sendDomainError(h.logger, w, r, err)
		return
	}
	h.sendState(w, r, s, http.StatusOK)
}

// SelectCard обрабатывает PUT /api/v1/sessions/{id}/card
func (h *SessionHandler) SelectCard(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req api.SelectCardRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.SelectCard(models.CardIndex(req.Index)); err != nil {
		sendDomainError(h.logger, w, r, err)
		return
	}
	h.sendState(w, r, s, http.StatusOK)
}

// CurrentCard обрабатывает GET /api/v1/sessions/{id}/card
func (h *SessionHandler) CurrentCard(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	h.sendCard(w, r, s)
}

// SetField обрабатывает PUT /api/v1/sessions/{id}/card/fields/{field}
func (h *SessionHandler) SetField(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req api.SetFieldRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.SetField(r.PathValue("field"), req.Value); err != nil {
		sendDomainError(h.logger, w, r, err)
		return
	}
	h.sendCard(w, r, s)
}

// SaveNote обрабатывает POST /api/v1/sessions/{id}/card/save
func (h *SessionHandler) SaveNote(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := s.SaveNote(r.Context()); err != nil {
		sendDomainError(h.logger, w, r, err)
		return
	}
	h.sendState(w, r, s, http.StatusOK)
}

// Filters обрабатывает GET /api/v1/filters
func (h *SessionHandler) Filters(w http.ResponseWriter, r *http.Request) {
	filters := models.DeckFilters()
	resp := make([]api.FilterInfo, 0, len(filters))
	for _, f := range filters {
		resp = append(resp, api.FilterInfo{Label: f.Label, Code: f.Code})
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}

// session находит сессию по {id}; при ошибке ответ уже отправлен
func (h *SessionHandler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, err := h.sessions.Get(r.PathValue("id"))
	if err != nil {
		sendDomainError(h.logger, w, r, err)
		return nil, false
	}
	return s, true
}

func (h *SessionHandler) sendState(w http.ResponseWriter, r *http.Request, s *session.Session, code int) {
	state, err := s.State()
	if err != nil {
		sendDomainError(h.logger, w, r, err)
		return
	}
	sendJSON(h.logger, w, state, code)
}

func (h *SessionHandler) sendCard(w http.ResponseWriter, r *http.Request, s *session.Session) {
	card, err := s.CurrentCard()
	if err != nil {
		sendDomainError(h.logger, w, r, err)
		return
	}
	sendJSON(h.logger, w, card, http.StatusOK)
}
