package chat

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/stake-plus/portfolio-chat/src/ai/core"
)

type chatRequest struct {
	Messages json.RawMessage `json:"messages"`
	Stream   *bool           `json:"stream"`
	Format   string          `json:"format"`
}

type rawMessage struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

// decodeEnvelope reads the body without looking inside messages yet.
func decodeEnvelope(body io.Reader) (chatRequest, error) {
	var req chatRequest
	if body == nil {
		return req, validationError("Invalid JSON body")
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return req, validationError(fmt.Sprintf("request body exceeds %d bytes", maxBytesErr.Limit))
		}
		return req, fmt.Errorf("read body: %w", err)
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		return req, validationError("Invalid JSON body")
	}
	return req, nil
}

// parseMessages validates the conversation and coerces every content to a string.
// User content is stripped of markup by policy.
func parseMessages(raw json.RawMessage, policy *bluemonday.Policy) ([]core.Message, error) {
	var items []json.RawMessage
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, validationError("`messages` must be an array")
	}
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, validationError("`messages` must be an array")
	}

	out := make([]core.Message, 0, len(items))
	hasUser := false
	for i, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			return nil, validationError(fmt.Sprintf("messages[%d] must be an object", i))
		}
		var m rawMessage
		if err := json.Unmarshal(item, &m); err != nil {
			return nil, validationError(fmt.Sprintf("messages[%d] is invalid", i))
		}
		role, ok := core.ParseRole(m.Role)
		if !ok {
			return nil, validationError(fmt.Sprintf("messages[%d].role %q must be one of system, user, assistant, tool", i, m.Role))
		}
		content := coerceContent(m.Content)
		if role == core.RoleUser {
			hasUser = true
			if policy != nil {
				content = stripMarkup(policy, content)
			}
		}
		out = append(out, core.Message{Role: role, Content: content})
	}
	if !hasUser {
		return nil, validationError("no user message found")
	}
	return out, nil
}

// stripMarkup removes tags but keeps the visitor's text as typed,
// literal entities such as "&amp;" included.
func stripMarkup(policy *bluemonday.Policy, content string) string {
	escaped := strings.ReplaceAll(content, "&", "&amp;")
	return html.UnescapeString(policy.Sanitize(escaped))
}

// coerceContent turns any JSON value into the text the model sees:
// strings verbatim, null as empty, everything else as compact JSON.
func coerceContent(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return string(trimmed)
	}
	return buf.String()
}

// lastUserMessage returns the content of the latest user turn.
func lastUserMessage(messages []core.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == core.RoleUser {
			return messages[i].Content
		}
	}
	return ""
}
