package httpapi

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	deckcontext "slidedeck/internal/context"
	"slidedeck/internal/services"
	"slidedeck/internal/version"
)

func newTestRegistry(t *testing.T, env deckcontext.MapEnv) *services.Registry {
	t.Helper()
	registry := services.NewRegistry()
	config := services.NewConfigurationService(deckcontext.NewConfigurationSubcontext(env, ""))
	require.NoError(t, registry.RegisterService(config))
	require.NoError(t, registry.RegisterService(services.NewLayoutCatalogService()))
	require.NoError(t, registry.InitializeAll())
	return registry
}

func newTestRouter(t *testing.T, env deckcontext.MapEnv) http.Handler {
	t.Helper()
	router, err := NewRouter(newTestRegistry(t, env))
	require.NoError(t, err)
	return router
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestNewRouter_MissingServices(t *testing.T) {
	_, err := NewRouter(services.NewRegistry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration service")
}

func TestHasRequiredKey(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "user_config.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{"LLM":"anthropic","ANTHROPIC_API_KEY":"sk-ant"}`), 0644))
	badConfigPath := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(badConfigPath, []byte(`{not json`), 0644))

	tests := []struct {
		name     string
		env      deckcontext.MapEnv
		expected bool
	}{
		{
			name:     "empty environment",
			env:      deckcontext.MapEnv{},
			expected: false,
		},
		{
			name:     "default provider with openai key",
			env:      deckcontext.MapEnv{"OPENAI_API_KEY": "sk-1"},
			expected: true,
		},
		{
			name:     "google provider without google key",
			env:      deckcontext.MapEnv{"LLM": "google", "OPENAI_API_KEY": "sk-1"},
			expected: false,
		},
		{
			name:     "credential from user config file",
			env:      deckcontext.MapEnv{"USER_CONFIG_PATH": configPath},
			expected: true,
		},
		{
			name:     "malformed user config falls back to env",
			env:      deckcontext.MapEnv{"USER_CONFIG_PATH": badConfigPath, "OPENAI_API_KEY": "sk-1"},
			expected: true,
		},
		{
			name:     "whitespace credential",
			env:      deckcontext.MapEnv{"LLM": "ollama", "OLLAMA_URL": "   "},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, newTestRouter(t, tt.env), http.MethodGet, "/api/has-required-key", "")

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, map[string]interface{}{"hasKey": tt.expected}, body)
		})
	}
}

func TestHasRequiredKey_ReadsFreshConfiguration(t *testing.T) {
	env := deckcontext.MapEnv{}
	router := newTestRouter(t, env)

	rec := doRequest(t, router, http.MethodGet, "/api/has-required-key", "")
	assert.JSONEq(t, `{"hasKey":false}`, rec.Body.String())

	env["OPENAI_API_KEY"] = "sk-late"
	rec = doRequest(t, router, http.MethodGet, "/api/has-required-key", "")
	assert.JSONEq(t, `{"hasKey":true}`, rec.Body.String())
}

func TestHasRequiredKey_MethodNotAllowed(t *testing.T) {
	rec := doRequest(t, newTestRouter(t, deckcontext.MapEnv{}), http.MethodPost, "/api/has-required-key", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRequestID(t *testing.T) {
	router := newTestRouter(t, deckcontext.MapEnv{})

	rec := doRequest(t, router, http.MethodGet, "/health", "")
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestHealthcheck(t *testing.T) {
	rec := doRequest(t, newTestRouter(t, deckcontext.MapEnv{}), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestVersion(t *testing.T) {
	rec := doRequest(t, newTestRouter(t, deckcontext.MapEnv{}), http.MethodGet, "/api/version", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["version"])
	assert.Equal(t, version.IsDevelopment(), body["development"])
}

func TestServe_StopsOnContextCancel(t *testing.T) {
	registry := newTestRegistry(t, deckcontext.MapEnv{"OPENAI_API_KEY": "sk-1"})

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	address := listener.Addr().String()
	require.NoError(t, listener.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, address, registry)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + address + "/api/has-required-key")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}
