package core

import "context"

// Role identifies the author of a chat turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ParseRole reports whether raw names one of the supported roles.
func ParseRole(raw string) (Role, bool) {
	switch r := Role(raw); r {
	case RoleSystem, RoleUser, RoleAssistant, RoleTool:
		return r, true
	default:
		return "", false
	}
}

// Message represents a single chat turn.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Options controls model behavior; zero values fall back to the client defaults.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int
}

// Client is a provider-agnostic chat-completions gateway.
type Client interface {
	// Complete issues one blocking request and returns the first choice's text.
	Complete(ctx context.Context, messages []Message, opts Options) (string, error)
	// Stream asks the provider for incremental fragments. The caller must Close the stream.
	Stream(ctx context.Context, messages []Message, opts Options) (Stream, error)
}

// Stream is a lazy, forward-only sequence of text fragments.
// It is not restartable and not safe for concurrent use.
type Stream interface {
	// Next advances to the next fragment. It returns false at the end of the
	// stream or on error; check Err to tell them apart.
	Next() bool
	// Text returns the current fragment.
	Text() string
	// Err returns the first error that stopped the stream, if any.
	Err() error
	// Close releases the underlying connection.
	Close() error
}
