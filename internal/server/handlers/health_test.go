package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xavierfontaine/omakase/pkg/api"
)

func TestHealthHandler_Health(t *testing.T) {
	handler := NewHealthHandler(setupTestLogger(), "1.2.3")

	w := call(t, handler.Health, http.MethodGet, "/api/v1/health", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	resp := decodeBody[api.HealthResponse](t, w)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
}

func TestHealthHandler_DefaultVersion(t *testing.T) {
	handler := NewHealthHandler(setupTestLogger(), "")

	w := call(t, handler.Health, http.MethodGet, "/api/v1/health", nil, nil)

	resp := decodeBody[api.HealthResponse](t, w)
	assert.Equal(t, "dev", resp.Version)
}
