package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/stake-plus/portfolio-chat/src/api/data"
)

type Config struct {
	Port        string
	TLSCertFile string
	TLSKeyFile  string

	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	LLMTimeout  time.Duration
	Referer     string
	AppTitle    string

	RequestTimeout time.Duration
	DefaultFormat  string
	ChunkSize      int
	MaxBodyBytes   int64

	PersonaFile string
	ToolsFile   string

	AllowedOrigins []string
	RateLimit      int
	RateWindow     time.Duration
	RedisURL       string

	LogLevel string
}

// providerKeyEnv lists the provider-specific API key variables used when
// LLM_API_KEY is unset.
var providerKeyEnv = map[string]string{
	"openrouter": "OPENROUTER_API_KEY",
	"groq":       "GROQ_API_KEY",
	"openai":     "OPENAI_API_KEY",
	"anthropic":  "ANTHROPIC_API_KEY",
	"claude":     "ANTHROPIC_API_KEY",
	"deepseek":   "DEEPSEEK_API_KEY",
	"xai":        "XAI_API_KEY",
	"grok":       "XAI_API_KEY",
	"gemini":     "GEMINI_API_KEY",
	"google":     "GEMINI_API_KEY",
}

// APIKeyEnv names the provider-specific key variable, or "" if there is none.
func APIKeyEnv(provider string) string {
	return providerKeyEnv[strings.ToLower(strings.TrimSpace(provider))]
}

// LookupFunc resolves one environment variable.
type LookupFunc func(key string) string

// Load reads the process environment, with database settings (when loaded)
// taking precedence.
func Load() (Config, error) {
	return LoadFrom(func(key string) string {
		if v := data.GetSetting(strings.ToLower(key)); v != "" {
			return v
		}
		return os.Getenv(key)
	})
}

// LoadFrom builds a Config from lookup. A missing API key is an error.
func LoadFrom(lookup LookupFunc) (Config, error) {
	getenv := func(key, def string) string {
		if v := strings.TrimSpace(lookup(key)); v != "" {
			return v
		}
		return def
	}

	provider := strings.ToLower(getenv("LLM_PROVIDER", "openrouter"))
	apiKey := getenv("LLM_API_KEY", "")
	if apiKey == "" {
		if env := APIKeyEnv(provider); env != "" {
			apiKey = getenv(env, "")
		}
	}
	if apiKey == "" {
		return Config{}, fmt.Errorf("missing env LLM_API_KEY (or %s) for provider %s", providerKeyEnv[provider], provider)
	}

	var errs []string
	parseDuration := func(key, def string) time.Duration {
		d, err := time.ParseDuration(getenv(key, def))
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
		return d
	}
	parseInt := func(key, def string) int {
		n, err := strconv.Atoi(getenv(key, def))
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
		return n
	}

	temp, err := strconv.ParseFloat(getenv("LLM_TEMPERATURE", "0"), 64)
	if err != nil {
		errs = append(errs, fmt.Sprintf("LLM_TEMPERATURE: %v", err))
	}

	cfg := Config{
		Port:           getenv("PORT", "8080"),
		TLSCertFile:    getenv("TLS_CERT_FILE", ""),
		TLSKeyFile:     getenv("TLS_KEY_FILE", ""),
		Provider:       provider,
		APIKey:         apiKey,
		BaseURL:        getenv("LLM_BASE_URL", ""),
		Model:          getenv("LLM_MODEL", ""),
		Temperature:    temp,
		MaxTokens:      parseInt("LLM_MAX_TOKENS", "0"),
		LLMTimeout:     parseDuration("LLM_TIMEOUT", "60s"),
		Referer:        getenv("OPENROUTER_REFERER", ""),
		AppTitle:       getenv("OPENROUTER_TITLE", ""),
		RequestTimeout: parseDuration("REQUEST_TIMEOUT", "30s"),
		DefaultFormat:  getenv("DEFAULT_FORMAT", "json"),
		ChunkSize:      parseInt("STREAM_CHUNK_SIZE", "24"),
		MaxBodyBytes:   int64(parseInt("MAX_BODY_BYTES", "1048576")),
		PersonaFile:    getenv("PERSONA_FILE", ""),
		ToolsFile:      getenv("TOOLS_FILE", ""),
		AllowedOrigins: splitList(getenv("CORS_ORIGINS", "http://localhost:3000")),
		RateLimit:      parseInt("RATE_LIMIT", "30"),
		RateWindow:     parseDuration("RATE_WINDOW", "1m"),
		RedisURL:       getenv("REDIS_URL", ""),
		LogLevel:       getenv("LOG_LEVEL", "info"),
	}
	if cfg.RequestTimeout <= 0 {
		errs = append(errs, "REQUEST_TIMEOUT: must be positive")
	}
	if cfg.LLMTimeout <= 0 {
		errs = append(errs, "LLM_TIMEOUT: must be positive")
	}
	if cfg.MaxBodyBytes <= 0 {
		errs = append(errs, "MAX_BODY_BYTES: must be positive")
	}
	if cfg.RateLimit > 0 && cfg.RateWindow <= 0 {
		errs = append(errs, "RATE_WINDOW: must be positive when RATE_LIMIT is set")
	}
	if len(errs) > 0 {
		return Config{}, fmt.Errorf("invalid config: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
