package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/xavierfontaine/omakase/internal/deck"
	"github.com/xavierfontaine/omakase/internal/mnemonic"
	"github.com/xavierfontaine/omakase/internal/prefs"
	"github.com/xavierfontaine/omakase/internal/session"
	"github.com/xavierfontaine/omakase/internal/validation"
	"github.com/xavierfontaine/omakase/pkg/api"
)

// sendJSON отправляет JSON ответ
func sendJSON(logger *slog.Logger, w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", slog.Any("error", err))
	}
}

// sendError отправляет ответ с ошибкой
func sendError(logger *slog.Logger, w http.ResponseWriter, message string, statusCode int) {
	sendJSON(logger, w, api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}, statusCode)
}

// statusFor maps a domain error to an HTTP status.
func statusFor(err error) int {
	var shapeErr *prefs.StorageShapeError
	var fieldErr *mnemonic.PromptFieldTypeError

	switch {
	case errors.As(err, &shapeErr):
		// битые данные пользователя, клиент тут ничего не исправит
		return http.StatusInternalServerError
	case errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, mnemonic.ErrUnknownSchema):
		return http.StatusNotFound
	case errors.Is(err, deck.ErrNoCardSelected),
		errors.Is(err, deck.ErrNoDeckSelected),
		errors.Is(err, deck.ErrStaleCardIndex),
		errors.Is(err, session.ErrOutputNotBound):
		return http.StatusConflict
	case errors.Is(err, validation.ErrInvalidName),
		errors.Is(err, deck.ErrUnknownDeck),
		errors.Is(err, deck.ErrCardIndexOutOfRange),
		errors.Is(err, deck.ErrUnknownNoteField),
		errors.Is(err, prefs.ErrUnknownFilter),
		errors.Is(err, mnemonic.ErrUnknownParameter),
		errors.Is(err, mnemonic.ErrUnknownNoteField),
		errors.Is(err, mnemonic.ErrRowWidth),
		errors.Is(err, session.ErrUnknownSection),
		errors.As(err, &fieldErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// sendDomainError logs err and answers with the matching status.
// Internal errors are not disclosed to the client.
func sendDomainError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path), slog.Any("error", err))
		sendError(logger, w, "internal server error", code)
		return
	}
	logger.WarnContext(r.Context(), "request rejected",
		slog.String("path", r.URL.Path), slog.Any("error", err))
	sendError(logger, w, err.Error(), code)
}

// decodeJSON читает тело запроса в v
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
