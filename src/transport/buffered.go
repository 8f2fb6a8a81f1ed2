package transport

import (
	"net/http"
	"strings"
)

// bufferedWriter collects the whole answer and writes it once, as
// {"content": ...} or as a text/plain body.
type bufferedWriter struct {
	w       http.ResponseWriter
	plain   bool
	buf     strings.Builder
	started bool
}

func (b *bufferedWriter) Write(chunk string) error {
	b.buf.WriteString(chunk)
	return nil
}

func (b *bufferedWriter) Finish() error {
	if b.started {
		return nil
	}
	b.started = true
	if b.plain {
		b.w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		b.w.WriteHeader(http.StatusOK)
		_, err := b.w.Write([]byte(b.buf.String()))
		return err
	}
	return writeJSON(b.w, http.StatusOK, struct {
		Content string `json:"content"`
	}{Content: b.buf.String()})
}

func (b *bufferedWriter) Fail(env ErrorEnvelope) error {
	if b.started {
		return nil
	}
	b.started = true
	if b.plain {
		b.w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		b.w.WriteHeader(env.Status)
		_, err := b.w.Write([]byte(env.Message))
		return err
	}
	return WriteError(b.w, env)
}

func (b *bufferedWriter) Started() bool { return b.started }
