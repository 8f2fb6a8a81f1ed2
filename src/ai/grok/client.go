// Package grok registers xAI's Grok models, served from an OpenAI-style endpoint.
package grok

import (
	"github.com/stake-plus/portfolio-chat/src/ai/core"
	"github.com/stake-plus/portfolio-chat/src/ai/openaicompat"
)

const providerName = "xai"

func init() {
	core.RegisterProvider(providerName, newClient, "grok")
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
