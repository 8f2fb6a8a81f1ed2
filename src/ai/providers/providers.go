// Package providers links every completion provider into the registry.
package providers

import (
	_ "github.com/stake-plus/portfolio-chat/src/ai/anthropic"
	_ "github.com/stake-plus/portfolio-chat/src/ai/deepseek"
	_ "github.com/stake-plus/portfolio-chat/src/ai/gemini"
	_ "github.com/stake-plus/portfolio-chat/src/ai/grok"
	_ "github.com/stake-plus/portfolio-chat/src/ai/groq"
	_ "github.com/stake-plus/portfolio-chat/src/ai/openai"
	_ "github.com/stake-plus/portfolio-chat/src/ai/openrouter"
)
