package core

import (
	"strings"
)

var providerDefaultModels = map[string]string{
	"openrouter": "mistralai/mistral-small-3.2-24b-instruct:free",
	"groq":       "llama-3.3-70b-versatile",
	"openai":     "gpt-4o-mini",
	"anthropic":  "claude-haiku-4-5",
	"deepseek":   "deepseek-chat",
	"xai":        "grok-3-mini",
	"gemini":     "gemini-2.5-flash",
}

var providerBaseURLs = map[string]string{
	"openrouter": "https://openrouter.ai/api/v1",
	"groq":       "https://api.groq.com/openai/v1",
	"openai":     "https://api.openai.com/v1",
	"anthropic":  "https://api.anthropic.com/v1",
	"deepseek":   "https://api.deepseek.com",
	"xai":        "https://api.x.ai/v1",
	"gemini":     "https://generativelanguage.googleapis.com/v1beta/openai",
}

// DefaultModelForProvider returns the baked-in default model for a provider key.
func DefaultModelForProvider(provider string) string {
	return providerDefaultModels[strings.ToLower(strings.TrimSpace(provider))]
}

// DefaultBaseURL returns the chat-completions base URL for a provider key.
func DefaultBaseURL(provider string) string {
	return providerBaseURLs[strings.ToLower(strings.TrimSpace(provider))]
}

// ResolveModelName picks the configured model if provided, otherwise the provider's default.
func ResolveModelName(provider, configuredModel string) string {
	model := strings.TrimSpace(configuredModel)
	if model != "" {
		return model
	}
	if def := DefaultModelForProvider(provider); def != "" {
		return def
	}
	return "unknown"
}

// ResolveBaseURL picks the configured base URL if provided, otherwise the provider's default.
func ResolveBaseURL(provider, configured string) string {
	if u := strings.TrimRight(strings.TrimSpace(configured), "/"); u != "" {
		return u
	}
	return DefaultBaseURL(provider)
}
