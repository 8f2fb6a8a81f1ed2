package core

import (
	"errors"
	"fmt"
)

// ErrUpstreamUnavailable marks failures to reach the completion provider at all.
var ErrUpstreamUnavailable = errors.New("completion provider unavailable")

// UpstreamError is returned when the provider answers with a non-2xx status
// or reports an error inside a stream.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: upstream error: %s", e.Provider, e.Body)
	}
	return fmt.Sprintf("%s: upstream status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// MalformedResponseError is returned when a 2xx response does not carry the
// expected completion shape.
type MalformedResponseError struct {
	Provider string
	Reason   string
	Err      error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: malformed response: %s: %v", e.Provider, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: malformed response: %s", e.Provider, e.Reason)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// TruncateBody keeps error bodies readable in logs and client messages.
func TruncateBody(body []byte, limit int) string {
	if limit <= 0 || len(body) <= limit {
		return string(body)
	}
	return string(body[:limit]) + "...(truncated)"
}
