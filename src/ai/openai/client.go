package openai

import (
	"fmt"

	"github.com/stake-plus/portfolio-chat/src/ai/core"
	"github.com/stake-plus/portfolio-chat/src/ai/openaicompat"
)

const providerName = "openai"

func init() {
	core.RegisterProvider(providerName, newClient, "openai-compatible", "custom")
}

// newClient serves api.openai.com and any self-hosted endpoint speaking the same API.
// Aliases other than "openai" have no default base URL and must configure one.
func newClient(cfg core.FactoryConfig) (core.Client, error) {
	name := cfg.Provider
	if name == "" {
		name = providerName
	}
	baseURL := core.ResolveBaseURL(name, cfg.BaseURL)
	if baseURL == "" {
		return nil, fmt.Errorf("%s: base URL not configured", name)
	}

	return openaicompat.New(openaicompat.Config{
		Provider: name,
		BaseURL:  baseURL,
		APIKey:   cfg.APIKey,
		Timeout:  cfg.Timeout,
		Defaults: core.Options{
			Model:               core.ResolveModelName(providerName, cfg.Model),
			Temperature:         cfg.Temperature,
			MaxCompletionTokens: cfg.MaxCompletionTokens,
		},
	}), nil
}
