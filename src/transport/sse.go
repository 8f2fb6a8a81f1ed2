package transport

import (
	"net/http"
	"strings"
)

const sseDone = "[DONE]"

// eventStreamWriter frames chunks as `data:` events and ends with `data: [DONE]`.
type eventStreamWriter struct {
	w       http.ResponseWriter
	started bool
	closed  bool
}

func (s *eventStreamWriter) start() {
	if s.started {
		return
	}
	s.started = true
	h := s.w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	s.w.WriteHeader(http.StatusOK)
}

func (s *eventStreamWriter) Write(chunk string) error {
	if chunk == "" || s.closed {
		return nil
	}
	s.start()
	return s.emit("", chunk)
}

func (s *eventStreamWriter) Finish() error {
	if s.closed {
		return nil
	}
	s.start()
	s.closed = true
	return s.emit("", sseDone)
}

func (s *eventStreamWriter) Fail(env ErrorEnvelope) error {
	if s.closed {
		return nil
	}
	if !s.started {
		s.started = true
		s.closed = true
		return WriteError(s.w, env)
	}
	s.closed = true
	return s.emit("error", env.Message)
}

func (s *eventStreamWriter) Started() bool { return s.started }

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// emit writes one event. Multi-line payloads become one data line per line,
// which clients join back with newlines. CRLF and bare CR count as line ends.
func (s *eventStreamWriter) emit(event, data string) error {
	var b strings.Builder
	if event != "" {
		b.WriteString("event: ")
		b.WriteString(event)
		b.WriteByte('\n')
	}
	for _, line := range strings.Split(lineEndings.Replace(data), "\n") {
		b.WriteString("data: ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	if _, err := s.w.Write([]byte(b.String())); err != nil {
		return err
	}
	flush(s.w)
	return nil
}
