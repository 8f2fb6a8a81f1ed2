package openaicompat

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stake-plus/portfolio-chat/src/ai/core"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{
		Provider: "test",
		BaseURL:  srv.URL,
		APIKey:   "secret",
		Headers:  map[string]string{"X-Title": "portfolio"},
		Defaults: core.Options{Model: "default-model", Temperature: 0.3},
		Timeout:  5 * time.Second,
	})
}

var conversation = []core.Message{
	{Role: core.RoleSystem, Content: "persona"},
	{Role: core.RoleUser, Content: "Tell me a joke"},
}

func TestCompleteSendsRequestAndReturnsContent(t *testing.T) {
	var got chatRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" || r.Method != http.MethodPost {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer secret" {
			t.Errorf("authorization = %q", r.Header.Get("Authorization"))
		}
		if r.Header.Get("X-Title") != "portfolio" {
			t.Errorf("missing extra header")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		_, _ = io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"Why did the gopher cross the road?"}}]}`)
	})

	reply, err := client.Complete(context.Background(), conversation, core.Options{Model: "override"})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if reply != "Why did the gopher cross the road?" {
		t.Fatalf("reply = %q", reply)
	}
	if got.Model != "override" || got.Stream || got.Temperature != 0.3 {
		t.Fatalf("request = %+v", got)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != core.RoleSystem || got.Messages[1].Content != "Tell me a joke" {
		t.Fatalf("messages = %+v", got.Messages)
	}
}

func TestCompleteSendsToolTurnsAsUserText(t *testing.T) {
	var raw map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Errorf("decode: %v", err)
		}
		_, _ = io.WriteString(w, `{"choices":[{"message":{"content":"ok"}}]}`)
	})

	messages := []core.Message{
		{Role: core.RoleTool, Content: "resume text"},
		{Role: core.RoleUser, Content: "thanks"},
	}
	if _, err := client.Complete(context.Background(), messages, core.Options{}); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	turns, _ := raw["messages"].([]any)
	if len(turns) != 2 {
		t.Fatalf("messages = %v", raw["messages"])
	}
	first, _ := turns[0].(map[string]any)
	if first["role"] != "user" || first["content"] != "resume text" {
		t.Fatalf("tool turn sent as %v", first)
	}
	if messages[0].Role != core.RoleTool {
		t.Fatal("caller messages mutated")
	}
}

func TestCompleteErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantUp    int
		wantShape string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"boom"}`, wantUp: 500},
		{name: "rate limited", status: http.StatusTooManyRequests, body: `slow down`, wantUp: 429},
		{name: "not json", status: http.StatusOK, body: `<html>`, wantShape: "undecodable body"},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`, wantShape: "no choices"},
		{name: "null content", status: http.StatusOK, body: `{"choices":[{"message":{"content":null}}]}`, wantShape: "content missing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})
			_, err := client.Complete(context.Background(), conversation, core.Options{})
			if tt.wantUp != 0 {
				var up *core.UpstreamError
				if !errors.As(err, &up) || up.StatusCode != tt.wantUp || up.Body != tt.body {
					t.Fatalf("err = %v", err)
				}
				return
			}
			var bad *core.MalformedResponseError
			if !errors.As(err, &bad) || !strings.Contains(bad.Reason, tt.wantShape) {
				t.Fatalf("err = %v", err)
			}
		})
	}
}

func TestCompleteEmptyContentIsValid(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"choices":[{"message":{"content":""}}]}`)
	})
	reply, err := client.Complete(context.Background(), conversation, core.Options{})
	if err != nil || reply != "" {
		t.Fatalf("reply = %q, err = %v", reply, err)
	}
}

func TestCompleteUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := New(Config{Provider: "test", BaseURL: url, APIKey: "k"})
	_, err := client.Complete(context.Background(), conversation, core.Options{})
	if !errors.Is(err, core.ErrUpstreamUnavailable) {
		t.Fatalf("err = %v", err)
	}
}

func TestCompleteContextCancelled(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := client.Complete(ctx, conversation, core.Options{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v", err)
	}
	if errors.Is(err, core.ErrUpstreamUnavailable) {
		t.Fatal("deadline reported as unavailability")
	}
}

func TestStreamYieldsDeltas(t *testing.T) {
	var streamed bool
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		streamed = req.Stream && r.Header.Get("Accept") == "text/event-stream"

		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = io.WriteString(w, ": OPENROUTER PROCESSING\n\n")
		_, _ = io.WriteString(w, `data: {"choices":[{"delta":{"role":"assistant"}}]}`+"\n\n")
		_, _ = io.WriteString(w, `data: {"choices":[{"delta":{"content":"Hel"}}]}`+"\n\n")
		_, _ = io.WriteString(w, `data: {"choices":[{"delta":{"content":"lo"},"finish_reason":"stop"}]}`+"\n\n")
		_, _ = io.WriteString(w, "data: [DONE]\n\n")
	})

	stream, err := client.Stream(context.Background(), conversation, core.Options{})
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	defer stream.Close()

	var parts []string
	for stream.Next() {
		parts = append(parts, stream.Text())
	}
	if err := stream.Err(); err != nil {
		t.Fatalf("stream err: %v", err)
	}
	if strings.Join(parts, "|") != "Hel|lo" {
		t.Fatalf("parts = %q", parts)
	}
	if !streamed {
		t.Fatal("request was not marked as streaming")
	}
}

func TestStreamMidFlightError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `data: {"choices":[{"delta":{"content":"partial"}}]}`+"\n\n")
		_, _ = io.WriteString(w, `data: {"error":{"message":"provider overloaded","code":502}}`+"\n\n")
	})

	stream, err := client.Stream(context.Background(), conversation, core.Options{})
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	defer stream.Close()

	if !stream.Next() || stream.Text() != "partial" {
		t.Fatalf("first delta = %q", stream.Text())
	}
	if stream.Next() {
		t.Fatal("expected stream to stop on error chunk")
	}
	var up *core.UpstreamError
	if !errors.As(stream.Err(), &up) || up.StatusCode != 502 || up.Body != "provider overloaded" {
		t.Fatalf("err = %v", stream.Err())
	}
}

func TestStreamNon2xx(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
	_, err := client.Stream(context.Background(), conversation, core.Options{})
	var up *core.UpstreamError
	if !errors.As(err, &up) || up.StatusCode != http.StatusUnauthorized {
		t.Fatalf("err = %v", err)
	}
}
