package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func lookupFrom(env map[string]string) LookupFunc {
	return func(key string) string { return env[key] }
}

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(lookupFrom(map[string]string{"LLM_API_KEY": "k"}))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Port != "8080" || cfg.Provider != "openrouter" || cfg.DefaultFormat != "json" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.RequestTimeout != 30*time.Second || cfg.LLMTimeout != 60*time.Second {
		t.Fatalf("timeouts = %v, %v", cfg.RequestTimeout, cfg.LLMTimeout)
	}
	if cfg.ChunkSize != 24 || cfg.RateLimit != 30 || cfg.RateWindow != time.Minute || cfg.MaxBodyBytes != 1<<20 {
		t.Fatalf("limits = %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{"http://localhost:3000"}) {
		t.Fatalf("origins = %v", cfg.AllowedOrigins)
	}
}

func TestLoadFromProviderKeyFallback(t *testing.T) {
	cfg, err := LoadFrom(lookupFrom(map[string]string{
		"LLM_PROVIDER": "Groq",
		"GROQ_API_KEY": "gsk",
		"CORS_ORIGINS": " https://a.dev, ,https://b.dev ",
	}))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Provider != "groq" || cfg.APIKey != "gsk" {
		t.Fatalf("provider/key = %q/%q", cfg.Provider, cfg.APIKey)
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{"https://a.dev", "https://b.dev"}) {
		t.Fatalf("origins = %v", cfg.AllowedOrigins)
	}
}

func TestLoadFromErrors(t *testing.T) {
	_, err := LoadFrom(lookupFrom(map[string]string{}))
	if err == nil || !strings.Contains(err.Error(), "OPENROUTER_API_KEY") {
		t.Fatalf("missing key err = %v", err)
	}

	_, err = LoadFrom(lookupFrom(map[string]string{
		"LLM_API_KEY":       "k",
		"REQUEST_TIMEOUT":   "soon",
		"STREAM_CHUNK_SIZE": "big",
	}))
	if err == nil || !strings.Contains(err.Error(), "REQUEST_TIMEOUT") || !strings.Contains(err.Error(), "STREAM_CHUNK_SIZE") {
		t.Fatalf("invalid values err = %v", err)
	}

	for _, tc := range []struct {
		key, value string
	}{
		{"RATE_WINDOW", "0s"},
		{"RATE_WINDOW", "-1m"},
		{"REQUEST_TIMEOUT", "0s"},
		{"LLM_TIMEOUT", "-5s"},
		{"MAX_BODY_BYTES", "0"},
	} {
		_, err = LoadFrom(lookupFrom(map[string]string{"LLM_API_KEY": "k", tc.key: tc.value}))
		if err == nil || !strings.Contains(err.Error(), tc.key) {
			t.Errorf("%s=%s err = %v", tc.key, tc.value, err)
		}
	}

	// A zero window is fine when rate limiting is off.
	if _, err = LoadFrom(lookupFrom(map[string]string{"LLM_API_KEY": "k", "RATE_LIMIT": "0", "RATE_WINDOW": "0s"})); err != nil {
		t.Fatalf("disabled limiter err = %v", err)
	}
}
