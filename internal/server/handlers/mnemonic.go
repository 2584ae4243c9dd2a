package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/xavierfontaine/omakase/internal/mnemonic"
	"github.com/xavierfontaine/omakase/pkg/api"
)

// MnemonicHandler обрабатывает запросы генерации мнемоник для выбранной карточки
type MnemonicHandler struct {
	logger   *slog.Logger
	sessions SessionManager
	catalog  *mnemonic.Catalog
}

// NewMnemonicHandler создает новый handler мнемоник
func NewMnemonicHandler(logger *slog.Logger, sessions SessionManager, catalog *mnemonic.Catalog) *MnemonicHandler {
	return &MnemonicHandler{
		logger:   logger,
		sessions: sessions,
		catalog:  catalog,
	}
}

// Schemas обрабатывает GET /api/v1/mnemonics
func (h *MnemonicHandler) Schemas(w http.ResponseWriter, r *http.Request) {
	schemas := h.catalog.Schemas()
	resp := make([]api.SchemaInfo, 0, len(schemas))
	for _, s := range schemas {
		resp = append(resp, api.SchemaInfo{
			Name:        s.Name,
			Label:       s.UIName,
			Description: s.Description,
			Help:        s.Help(),
			Parameters:  s.OneDimensionalParams(),
		})
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Associations обрабатывает GET /api/v1/sessions/{id}/mnemonics/{schema}/associations
func (h *MnemonicHandler) Associations(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Get(r.PathValue("id"))
	if err != nil {
		sendDomainError(h.logger, w, r, err)
		return
	}

	assocs, err := s.Associations(r.Context(), r.PathValue("schema"))
	if err != nil {
		sendDomainError(h.logger, w, r, err)
		return
	}
	sendJSON(h.logger, w, assocs, http.StatusOK)
}

// SetAssociations обрабатывает PUT /api/v1/sessions/{id}/mnemonics/{schema}/associations
func (h *MnemonicHandler) SetAssociations(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Get(r.PathValue("id"))
	if err != nil {
		sendDomainError(h.logger, w, r, err)
		return
	}

	var req api.SetAssociationsRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	assocs, err := s.SetAssociations(r.Context(), r.PathValue("schema"), req.Parameters, req.GenerationOutput)
	if err != nil {
		sendDomainError(h.logger, w, r, err)
		return
	}
	sendJSON(h.logger, w, assocs, http.StatusOK)
}

// Prompt обрабатывает POST /api/v1/sessions/{id}/mnemonics/{schema}/prompt
func (h *MnemonicHandler) Prompt(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Get(r.PathValue("id"))
	if err != nil {
		sendDomainError(h.logger, w, r, err)
		return
	}

	var req api.PromptRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
			return
		}
	}

	prompt, err := s.Prompt(r.PathValue("schema"), mnemonic.Params(req.Params))
	if err != nil {
		sendDomainError(h.logger, w, r, err)
		return
	}
	sendJSON(h.logger, w, api.PromptResponse{Prompt: prompt}, http.StatusOK)
}

// ApplyOutput обрабатывает PUT /api/v1/sessions/{id}/mnemonics/{schema}/output
func (h *MnemonicHandler) ApplyOutput(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Get(r.PathValue("id"))
	if err != nil {
		sendDomainError(h.logger, w, r, err)
		return
	}

	var req api.OutputRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.ApplyOutput(r.PathValue("schema"), req.Text); err != nil {
		sendDomainError(h.logger, w, r, err)
		return
	}

	card, err := s.CurrentCard()
	if err != nil {
		sendDomainError(h.logger, w, r, err)
		return
	}
	sendJSON(h.logger, w, card, http.StatusOK)
}

// StoreRow обрабатывает PUT /api/v1/sessions/{id}/mnemonics/{schema}/rows/{section}
func (h *MnemonicHandler) StoreRow(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Get(r.PathValue("id"))
	if err != nil {
		sendDomainError(h.logger, w, r, err)
		return
	}

	var req api.RowRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.StoreRow(r.Context(), r.PathValue("schema"), r.PathValue("section"), req.Values); err != nil {
		sendDomainError(h.logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RetrieveRow обрабатывает GET /api/v1/sessions/{id}/mnemonics/{schema}/rows/{section}?pos=N&value=V
func (h *MnemonicHandler) RetrieveRow(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Get(r.PathValue("id"))
	if err != nil {
		sendDomainError(h.logger, w, r, err)
		return
	}

	query := r.URL.Query()
	pos, err := strconv.Atoi(query.Get("pos"))
	if err != nil || pos < 0 {
		sendError(h.logger, w, "pos must be a non-negative integer", http.StatusBadRequest)
		return
	}

	values, found, err := s.RetrieveRow(r.Context(), r.PathValue("schema"), r.PathValue("section"), pos, query.Get("value"))
	if err != nil {
		sendDomainError(h.logger, w, r, err)
		return
	}
	sendJSON(h.logger, w, api.RowResponse{Values: values, Found: found}, http.StatusOK)
}
