package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/xavierfontaine/omakase/pkg/api"
)

// writeError отвечает JSON телом api.ErrorResponse
func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{
		Error:   http.StatusText(code),
		Message: message,
	})
}
