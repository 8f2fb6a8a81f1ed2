// Package gemini uses the OpenAI compatibility layer of the Gemini API rather
// than the native generateContent surface, so streaming and errors behave
// like every other provider.
package gemini

import (
	"github.com/stake-plus/portfolio-chat/src/ai/core"
	"github.com/stake-plus/portfolio-chat/src/ai/openaicompat"
)

const providerName = "gemini"

func init() {
	core.RegisterProvider(providerName, newClient, "google")
}

func newClient(cfg core.FactoryConfig) (core.Client, error) {
	return openaicompat.New(openaicompat.Config{
		Provider: providerName,
		BaseURL:  core.ResolveBaseURL(providerName, cfg.BaseURL),
		APIKey:   cfg.APIKey,
		Timeout:  cfg.Timeout,
		Defaults: core.Options{
			Model:               core.ResolveModelName(providerName, cfg.Model),
			Temperature:         cfg.Temperature,
			MaxCompletionTokens: cfg.MaxCompletionTokens,
		},
	}), nil
}
