package openrouter

import (
	"github.com/stake-plus/portfolio-chat/src/ai/core"
	"github.com/stake-plus/portfolio-chat/src/ai/openaicompat"
)

const providerName = "openrouter"

func init() {
	core.RegisterProvider(providerName, newClient)
}

// newClient adds OpenRouter's optional attribution headers.
func newClient(cfg core.FactoryConfig) (core.Client, error) {
	headers := map[string]string{}
	if referer := core.ExtraString(cfg.Extra, "http_referer", ""); referer != "" {
		headers["HTTP-Referer"] = referer
	}
	if title := core.ExtraString(cfg.Extra, "app_title", ""); title != "" {
		headers["X-Title"] = title
	}

	return openaicompat.New(openaicompat.Config{
		Provider: providerName,
		BaseURL:  core.ResolveBaseURL(providerName, cfg.BaseURL),
		APIKey:   cfg.APIKey,
		Headers:  headers,
		Timeout:  cfg.Timeout,
		Defaults: core.Options{
			Model:               core.ResolveModelName(providerName, cfg.Model),
			Temperature:         cfg.Temperature,
			MaxCompletionTokens: cfg.MaxCompletionTokens,
		},
	}), nil
}
