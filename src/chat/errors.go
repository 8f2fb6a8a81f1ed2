package chat

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/stake-plus/portfolio-chat/src/ai/core"
	"github.com/stake-plus/portfolio-chat/src/logging"
	"github.com/stake-plus/portfolio-chat/src/transport"
)

// ErrRequestTimedOut is the cancellation cause once a request exceeds its ceiling.
var ErrRequestTimedOut = errors.New("chat request timeout exceeded")

// ValidationError is a caller mistake; its message is safe to return.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationError(msg string) error {
	return &ValidationError{Message: msg}
}

// classifyError maps a failure to the envelope sent to the client. Only
// validation messages are echoed; everything else is summarised.
func classifyError(ctx context.Context, err error) transport.ErrorEnvelope {
	var (
		verr      *ValidationError
		upstream  *core.UpstreamError
		malformed *core.MalformedResponseError
	)
	switch {
	case errors.As(err, &verr):
		return transport.ErrorEnvelope{Message: verr.Message, Status: http.StatusBadRequest}
	case errors.Is(err, ErrRequestTimedOut),
		errors.Is(context.Cause(ctx), ErrRequestTimedOut),
		errors.Is(err, context.DeadlineExceeded):
		return transport.ErrorEnvelope{Message: "request timed out", Status: http.StatusGatewayTimeout}
	case errors.As(err, &upstream):
		msg := fmt.Sprintf("completion provider returned status %d", upstream.StatusCode)
		switch {
		case logging.IsRateLimit(err):
			msg = "completion provider is rate limited (status 429), try again shortly"
		case upstream.StatusCode == 0:
			msg = "completion provider reported an error"
		}
		return transport.ErrorEnvelope{Message: msg, Status: http.StatusBadGateway}
	case errors.As(err, &malformed):
		return transport.ErrorEnvelope{Message: "completion provider returned an unexpected response", Status: http.StatusBadGateway}
	case errors.Is(err, core.ErrUpstreamUnavailable):
		return transport.ErrorEnvelope{Message: "completion provider is unreachable", Status: http.StatusBadGateway}
	default:
		return transport.ErrorEnvelope{Message: "internal error", Status: http.StatusInternalServerError}
	}
}
