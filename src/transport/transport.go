// Package transport encodes a chat answer onto an HTTP response as plain
// text, JSON, a server-sent event stream or an AI SDK data stream.
package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Format names one response encoding.
type Format string

const (
	FormatText       Format = "text"
	FormatJSON       Format = "json"
	FormatSSE        Format = "sse"
	FormatDataStream Format = "data-stream"
)

// ErrUnknownFormat is returned for unsupported format names.
var ErrUnknownFormat = errors.New("unknown response format")

// ParseFormat accepts the canonical names plus a few common spellings.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "text", "plain", "text/plain":
		return FormatText, nil
	case "json", "application/json":
		return FormatJSON, nil
	case "sse", "event-stream", "text/event-stream":
		return FormatSSE, nil
	case "data-stream", "datastream", "data":
		return FormatDataStream, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, raw)
	}
}

// Resolve picks the encoding for a request. An explicit format wins, then
// the stream flag, then the server default.
func Resolve(format string, stream *bool, def Format) (Format, error) {
	if strings.TrimSpace(format) != "" {
		return ParseFormat(format)
	}
	if stream != nil {
		if *stream {
			return FormatSSE, nil
		}
		return FormatJSON, nil
	}
	if def == "" {
		return FormatJSON, nil
	}
	return def, nil
}

// Streaming reports whether the format delivers chunks incrementally.
func (f Format) Streaming() bool {
	return f == FormatSSE || f == FormatDataStream
}

// ErrorEnvelope is the client-visible form of a failure.
type ErrorEnvelope struct {
	Message string `json:"error"`
	Status  int    `json:"-"`
}

// Writer delivers one answer. Chunks are written in order by a single goroutine.
type Writer interface {
	// Write appends a chunk of the answer.
	Write(chunk string) error
	// Finish completes a successful answer.
	Finish() error
	// Fail reports an error: as a status + body if nothing was sent yet,
	// otherwise as a terminal error frame in the active encoding.
	Fail(env ErrorEnvelope) error
	// Started reports whether response bytes have been committed.
	Started() bool
}

// New returns the Writer for format.
func New(format Format, w http.ResponseWriter) Writer {
	switch format {
	case FormatText:
		return &bufferedWriter{w: w, plain: true}
	case FormatSSE:
		return &eventStreamWriter{w: w}
	case FormatDataStream:
		return &dataStreamWriter{w: w}
	default:
		return &bufferedWriter{w: w}
	}
}

// WriteChunked splits text into slices of size runes so answers that are not
// naturally incremental still arrive as a stream.
func WriteChunked(out Writer, text string, size int) error {
	for _, chunk := range Chunk(text, size) {
		if err := out.Write(chunk); err != nil {
			return err
		}
	}
	return nil
}

// Chunk splits text into pieces of at most size runes.
func Chunk(text string, size int) []string {
	if text == "" {
		return nil
	}
	runes := []rune(text)
	if size <= 0 || len(runes) <= size {
		return []string{text}
	}
	out := make([]string, 0, len(runes)/size+1)
	for start := 0; start < len(runes); start += size {
		end := min(start+size, len(runes))
		out = append(out, string(runes[start:end]))
	}
	return out
}

// WriteError writes env as a JSON body.
func WriteError(w http.ResponseWriter, env ErrorEnvelope) error {
	return writeJSON(w, env.Status, env)
}

func writeJSON(w http.ResponseWriter, status int, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, err = w.Write(body)
	return err
}

func flush(w http.ResponseWriter) {
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
