// Package anthropic talks to the Anthropic Messages API, which keeps the
// system prompt outside the message list and streams typed events.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/stake-plus/portfolio-chat/src/ai/core"
	"github.com/stake-plus/portfolio-chat/src/webclient"
)

const (
	providerName     = "anthropic"
	apiVersion       = "2023-06-01"
	defaultMaxTokens = 1024
	maxErrorBody     = 512
)

func init() {
	core.RegisterProvider(providerName, newClient, "claude")
}

type client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	defaults   core.Options
}

func newClient(cfg core.FactoryConfig) (core.Client, error) {
	return newWithHTTPClient(cfg, webclient.NewDefault(cfg.Timeout)), nil
}

func newWithHTTPClient(cfg core.FactoryConfig, httpClient *http.Client) *client {
	return &client{
		endpoint:   core.ResolveBaseURL(providerName, cfg.BaseURL) + "/messages",
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		defaults: core.Options{
			Model:               core.ResolveModelName(providerName, cfg.Model),
			Temperature:         cfg.Temperature,
			MaxCompletionTokens: orInt(cfg.MaxCompletionTokens, defaultMaxTokens),
		},
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model       string    `json:"model"`
	System      string    `json:"system,omitempty"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature,omitempty"`
	Stream      bool      `json:"stream,omitempty"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type messagesResponse struct {
	Content []contentBlock `json:"content"`
}

func (c *client) Complete(ctx context.Context, messages []core.Message, opts core.Options) (string, error) {
	resp, err := c.post(ctx, messages, opts, false)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", transportError(ctx, "read response", err)
	}
	var result messagesResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", &core.MalformedResponseError{Provider: providerName, Reason: "undecodable body", Err: err}
	}

	var b strings.Builder
	found := false
	for _, block := range result.Content {
		if block.Type != "text" {
			continue
		}
		found = true
		b.WriteString(block.Text)
	}
	if !found {
		return "", &core.MalformedResponseError{Provider: providerName, Reason: "no text content"}
	}
	return b.String(), nil
}

func (c *client) Stream(ctx context.Context, messages []core.Message, opts core.Options) (core.Stream, error) {
	resp, err := c.post(ctx, messages, opts, true)
	if err != nil {
		return nil, err
	}
	return core.NewEventStream(resp.Body, decodeEvent), nil
}

type streamEvent struct {
	Type  string `json:"type"`
	Delta struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"delta"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// decodeEvent keeps text deltas and turns error events into upstream errors.
// Message lifecycle events carry no text and are skipped.
func decodeEvent(data []byte) (string, error) {
	var ev streamEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return "", &core.MalformedResponseError{Provider: providerName, Reason: "undecodable stream event", Err: err}
	}
	switch ev.Type {
	case "error":
		msg := "stream error"
		if ev.Error != nil {
			msg = ev.Error.Type + ": " + ev.Error.Message
		}
		return "", &core.UpstreamError{Provider: providerName, Body: msg}
	case "content_block_delta":
		if ev.Delta.Type == "text_delta" {
			return ev.Delta.Text, nil
		}
	}
	return "", nil
}

// split moves system turns into the top-level system field. Tool turns are
// sent as user turns since they carry plain text here.
func split(messages []core.Message) (string, []message) {
	var system []string
	out := make([]message, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case core.RoleSystem:
			system = append(system, m.Content)
		case core.RoleAssistant:
			out = append(out, message{Role: "assistant", Content: m.Content})
		default:
			out = append(out, message{Role: "user", Content: m.Content})
		}
	}
	return strings.Join(system, "\n\n"), out
}

func (c *client) post(ctx context.Context, messages []core.Message, opts core.Options, stream bool) (*http.Response, error) {
	merged := c.merge(opts)
	system, turns := split(messages)
	payload, err := json.Marshal(messagesRequest{
		Model:       merged.Model,
		System:      system,
		Messages:    turns,
		MaxTokens:   merged.MaxCompletionTokens,
		Temperature: merged.Temperature,
		Stream:      stream,
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("anthropic: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)
	if stream {
		req.Header.Set("Accept", "text/event-stream")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(ctx, "request", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody+1))
		return nil, &core.UpstreamError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       core.TruncateBody(body, maxErrorBody),
		}
	}
	return resp, nil
}

func transportError(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("anthropic: %s: %w", op, ctxErr)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("anthropic: %s: %w", op, err)
	}
	return fmt.Errorf("anthropic: %s: %w: %v", op, core.ErrUpstreamUnavailable, err)
}

func (c *client) merge(opts core.Options) core.Options {
	out := c.defaults
	if opts.Model != "" {
		out.Model = opts.Model
	}
	if opts.Temperature != 0 {
		out.Temperature = opts.Temperature
	}
	if opts.MaxCompletionTokens != 0 {
		out.MaxCompletionTokens = opts.MaxCompletionTokens
	}
	return out
}

func orInt(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
