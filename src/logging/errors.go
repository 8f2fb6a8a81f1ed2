package logging

import (
	"errors"
	"net/http"
	"strings"

	"github.com/stake-plus/portfolio-chat/src/ai/core"
)

// IsRateLimit reports whether err is a provider-side rate limit.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}
	var upstream *core.UpstreamError
	if errors.As(err, &upstream) && upstream.StatusCode == http.StatusTooManyRequests {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "rate_limit") || strings.Contains(msg, "429")
}
