package api

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/stake-plus/portfolio-chat/src/api/config"
	"github.com/stake-plus/portfolio-chat/src/logging"
)

func testConfig(t *testing.T, env map[string]string) config.Config {
	t.Helper()
	if _, ok := env["LLM_API_KEY"]; !ok {
		env["LLM_API_KEY"] = "test-key"
	}
	cfg, err := config.LoadFrom(func(key string) string { return env[key] })
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	return cfg
}

func TestNewCompletionClientProviders(t *testing.T) {
	for _, provider := range []string{"openrouter", "groq", "openai", "anthropic", "deepseek", "xai", "grok", "gemini"} {
		cfg := testConfig(t, map[string]string{"LLM_PROVIDER": provider})
		if _, err := NewCompletionClient(cfg); err != nil {
			t.Errorf("%s: %v", provider, err)
		}
	}

	cfg := testConfig(t, map[string]string{"LLM_PROVIDER": "custom"})
	if _, err := NewCompletionClient(cfg); err == nil {
		t.Error("custom provider without base URL should fail")
	}
	cfg = testConfig(t, map[string]string{"LLM_PROVIDER": "nonexistent"})
	if _, err := NewCompletionClient(cfg); err == nil {
		t.Error("unknown provider should fail")
	}
}

func TestNewChatHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig(t, map[string]string{"DEFAULT_FORMAT": "text"})
	client, err := NewCompletionClient(cfg)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	h, err := NewChatHandler(cfg, client, logging.Discard())
	if err != nil {
		t.Fatalf("handler: %v", err)
	}

	r := gin.New()
	r.POST("/chat", h.Chat)
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"messages":[{"role":"user","content":"Who are you?"}]}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"presentation"`) {
		t.Fatalf("got %d %s", rec.Code, rec.Body.String())
	}
}

func TestNewChatHandlerErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	for name, env := range map[string]map[string]string{
		"bad format":   {"DEFAULT_FORMAT": "xml"},
		"tools file":   {"TOOLS_FILE": missing},
		"persona file": {"PERSONA_FILE": missing},
	} {
		cfg := testConfig(t, env)
		if _, err := NewChatHandler(cfg, nil, logging.Discard()); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
