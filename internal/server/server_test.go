package server_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrimitra/agrimitra/internal/config"
	"github.com/agrimitra/agrimitra/internal/flow"
	"github.com/agrimitra/agrimitra/internal/prompt"
	"github.com/agrimitra/agrimitra/internal/server"
)

func testConfig() *config.Config {
	return &config.Config{
		Host:               "127.0.0.1",
		Port:               9002,
		APIPrefix:          "/api/v1",
		APIKeyHeader:       "X-API-Key",
		APIKeys:            []string{"secret"},
		EnableAuth:         true,
		RateLimitPerMinute: 100,
		MaxUploadBytes:     1 << 20,
		LLMProvider:        config.ProviderGemini,
		LLMTimeout:         5,
	}
}

func newHandler(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	lib, err := prompt.NewLibrary("")
	require.NoError(t, err)
	s, err := server.NewWithRegistry(cfg, flow.Default(&flow.Env{Prompts: lib}))
	require.NoError(t, err)
	return s.Handler()
}

func get(h http.Handler, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestPublicRoutes(t *testing.T) {
	h := newHandler(t, testConfig())

	rr := get(h, "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))

	rr = get(h, "/", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")

	rr = get(h, "/features/weather-forecast", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAPIRequiresKey(t *testing.T) {
	h := newHandler(t, testConfig())

	assert.Equal(t, http.StatusUnauthorized, get(h, "/api/v1/flows", nil).Code)
	assert.Equal(t, http.StatusForbidden, get(h, "/api/v1/flows", map[string]string{"X-API-Key": "nope"}).Code)

	rr := get(h, "/api/v1/flows", map[string]string{"X-API-Key": "secret"})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-RateLimit-Limit"))
}

func TestAPIWithoutAuth(t *testing.T) {
	cfg := testConfig()
	cfg.EnableAuth = false
	h := newHandler(t, cfg)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/flows/weather-forecast", strings.NewReader(`{"location":"Nashik"}`))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	h := newHandler(t, testConfig())
	get(h, "/health", nil)

	rr := get(h, "/metrics", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "agrimitra_http_requests_total")
}
