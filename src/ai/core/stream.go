package core

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	streamDoneMarker  = "[DONE]"
	maxStreamLineSize = 1024 * 1024
)

// DecodeFunc turns one SSE data payload into a text fragment. An empty
// fragment is skipped; an error stops the stream.
type DecodeFunc func(data []byte) (string, error)

// EventStream reads a server-sent event body and yields decoded fragments.
type EventStream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	decode  DecodeFunc

	text string
	err  error
	done bool
}

// NewEventStream wraps body. Closing the stream closes body.
func NewEventStream(body io.ReadCloser, decode DecodeFunc) *EventStream {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 64*1024), maxStreamLineSize)
	return &EventStream{body: body, scanner: scanner, decode: decode}
}

func (s *EventStream) Next() bool {
	if s.done || s.err != nil {
		return false
	}
	for s.scanner.Scan() {
		line := strings.TrimRight(s.scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}
		data, ok := strings.CutPrefix(line, "data:")
		if !ok {
			continue
		}
		data = strings.TrimPrefix(data, " ")
		if data == streamDoneMarker {
			s.done = true
			return false
		}
		text, err := s.decode([]byte(data))
		if err != nil {
			s.err = err
			return false
		}
		if text == "" {
			continue
		}
		s.text = text
		return true
	}
	if err := s.scanner.Err(); err != nil {
		s.err = fmt.Errorf("stream read: %w", err)
		return false
	}
	s.done = true
	return false
}

func (s *EventStream) Text() string { return s.text }

func (s *EventStream) Err() error { return s.err }

func (s *EventStream) Close() error {
	s.done = true
	return s.body.Close()
}
