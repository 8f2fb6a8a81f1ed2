package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stake-plus/portfolio-chat/src/ai/core"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return newWithHTTPClient(core.FactoryConfig{APIKey: "sk-ant", BaseURL: srv.URL}, srv.Client())
}

var conversation = []core.Message{
	{Role: core.RoleSystem, Content: "persona"},
	{Role: core.RoleUser, Content: "Tell me a joke"},
	{Role: core.RoleAssistant, Content: "Sure"},
	{Role: core.RoleUser, Content: "Go on"},
}

func TestCompleteMovesSystemPrompt(t *testing.T) {
	var got messagesRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/messages" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "sk-ant" || r.Header.Get("anthropic-version") != apiVersion {
			t.Errorf("headers = %v", r.Header)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = io.WriteString(w, `{"content":[{"type":"text","text":"A "},{"type":"tool_use"},{"type":"text","text":"joke."}]}`)
	})

	reply, err := c.Complete(context.Background(), conversation, core.Options{})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if reply != "A joke." {
		t.Fatalf("reply = %q", reply)
	}
	if got.System != "persona" || len(got.Messages) != 3 || got.Messages[0].Role != "user" || got.Messages[1].Role != "assistant" {
		t.Fatalf("request = %+v", got)
	}
	if got.Model != core.DefaultModelForProvider(providerName) || got.MaxTokens != defaultMaxTokens {
		t.Fatalf("defaults = %s/%d", got.Model, got.MaxTokens)
	}
}

func TestCompleteErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"type":"error","error":{"type":"rate_limit_error"}}`)
	})
	_, err := c.Complete(context.Background(), conversation, core.Options{})
	var up *core.UpstreamError
	if !errors.As(err, &up) || up.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("err = %v", err)
	}

	c = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"content":[]}`)
	})
	_, err = c.Complete(context.Background(), conversation, core.Options{})
	var bad *core.MalformedResponseError
	if !errors.As(err, &bad) {
		t.Fatalf("err = %v", err)
	}
}

func TestStreamTextDeltas(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		events := []string{
			`event: message_start` + "\n" + `data: {"type":"message_start","message":{}}`,
			`event: ping` + "\n" + `data: {"type":"ping"}`,
			`event: content_block_delta` + "\n" + `data: {"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"Hel"}}`,
			`event: content_block_delta` + "\n" + `data: {"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"lo"}}`,
			`event: message_stop` + "\n" + `data: {"type":"message_stop"}`,
		}
		_, _ = io.WriteString(w, strings.Join(events, "\n\n")+"\n\n")
	})

	stream, err := c.Stream(context.Background(), conversation, core.Options{})
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	defer stream.Close()
	var sb strings.Builder
	for stream.Next() {
		sb.WriteString(stream.Text())
	}
	if stream.Err() != nil || sb.String() != "Hello" {
		t.Fatalf("text = %q, err = %v", sb.String(), stream.Err())
	}
}

func TestStreamErrorEvent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `data: {"type":"content_block_delta","delta":{"type":"text_delta","text":"x"}}`+"\n\n")
		_, _ = io.WriteString(w, `data: {"type":"error","error":{"type":"overloaded_error","message":"Overloaded"}}`+"\n\n")
	})
	stream, err := c.Stream(context.Background(), conversation, core.Options{})
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	defer stream.Close()
	for stream.Next() {
	}
	var up *core.UpstreamError
	if !errors.As(stream.Err(), &up) || !strings.Contains(up.Body, "overloaded_error") {
		t.Fatalf("err = %v", stream.Err())
	}
}
