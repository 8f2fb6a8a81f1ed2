// Package openaicompat talks to any OpenAI-style /chat/completions endpoint.
// Provider packages configure it with their base URL, defaults and headers.
package openaicompat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/stake-plus/portfolio-chat/src/ai/core"
	"github.com/stake-plus/portfolio-chat/src/webclient"
)

const maxErrorBody = 512

// Config describes one provider endpoint.
type Config struct {
	Provider   string
	BaseURL    string
	APIKey     string
	Defaults   core.Options
	Headers    map[string]string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client implements core.Client against a chat-completions endpoint.
type Client struct {
	provider   string
	endpoint   string
	apiKey     string
	headers    map[string]string
	httpClient *http.Client
	defaults   core.Options
}

// New builds a client. A nil HTTPClient gets webclient defaults.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = webclient.NewDefault(cfg.Timeout)
	}
	return &Client{
		provider:   cfg.Provider,
		endpoint:   cfg.BaseURL + "/chat/completions",
		apiKey:     cfg.APIKey,
		headers:    cfg.Headers,
		httpClient: httpClient,
		defaults:   cfg.Defaults,
	}
}

type chatRequest struct {
	Model       string         `json:"model"`
	Messages    []core.Message `json:"messages"`
	Stream      bool           `json:"stream"`
	Temperature float64        `json:"temperature,omitempty"`
	MaxTokens   int            `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) Complete(ctx context.Context, messages []core.Message, opts core.Options) (string, error) {
	resp, err := c.post(ctx, messages, opts, false)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", c.transportError(ctx, "read response", err)
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", &core.MalformedResponseError{Provider: c.provider, Reason: "undecodable body", Err: err}
	}
	if len(result.Choices) == 0 {
		return "", &core.MalformedResponseError{Provider: c.provider, Reason: "no choices"}
	}
	content := result.Choices[0].Message.Content
	if content == nil {
		return "", &core.MalformedResponseError{Provider: c.provider, Reason: "choices[0].message.content missing"}
	}
	return *content, nil
}

func (c *Client) Stream(ctx context.Context, messages []core.Message, opts core.Options) (core.Stream, error) {
	resp, err := c.post(ctx, messages, opts, true)
	if err != nil {
		return nil, err
	}
	return core.NewEventStream(resp.Body, c.decodeDelta), nil
}

// wireMessages sends tool turns as user text. Without a tool_call_id the
// upstream rejects role "tool".
func wireMessages(messages []core.Message) []core.Message {
	out := make([]core.Message, len(messages))
	for i, m := range messages {
		if m.Role == core.RoleTool {
			m.Role = core.RoleUser
		}
		out[i] = m
	}
	return out
}

// post sends the request and returns a 2xx response with an open body.
func (c *Client) post(ctx context.Context, messages []core.Message, opts core.Options, stream bool) (*http.Response, error) {
	merged := c.merge(opts)
	payload, err := json.Marshal(chatRequest{
		Model:       merged.Model,
		Messages:    wireMessages(messages),
		Stream:      stream,
		Temperature: merged.Temperature,
		MaxTokens:   merged.MaxCompletionTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: marshal request: %w", c.provider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", c.provider, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if stream {
		req.Header.Set("Accept", "text/event-stream")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportError(ctx, "request", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody+1))
		return nil, &core.UpstreamError{
			Provider:   c.provider,
			StatusCode: resp.StatusCode,
			Body:       core.TruncateBody(body, maxErrorBody),
		}
	}
	return resp, nil
}

// transportError keeps context errors recognisable and tags the rest as unavailability.
func (c *Client) transportError(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s: %s: %w", c.provider, op, ctxErr)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %s: %w", c.provider, op, err)
	}
	return fmt.Errorf("%s: %s: %w: %v", c.provider, op, core.ErrUpstreamUnavailable, err)
}

func (c *Client) merge(opts core.Options) core.Options {
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
