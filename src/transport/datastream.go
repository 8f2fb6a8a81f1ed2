package transport

import (
	"encoding/json"
	"net/http"
)

// dataStreamWriter speaks the line protocol of the Vercel AI SDK data stream:
// `0:` text parts, `3:` errors and a closing `d:` finish part.
type dataStreamWriter struct {
	w       http.ResponseWriter
	started bool
	closed  bool
}

func (d *dataStreamWriter) start() {
	if d.started {
		return
	}
	d.started = true
	h := d.w.Header()
	h.Set("Content-Type", "text/plain; charset=utf-8")
	h.Set("Cache-Control", "no-cache")
	h.Set("X-Vercel-AI-Data-Stream", "v1")
	h.Set("X-Accel-Buffering", "no")
	d.w.WriteHeader(http.StatusOK)
}

func (d *dataStreamWriter) Write(chunk string) error {
	if chunk == "" || d.closed {
		return nil
	}
	d.start()
	return d.part("0", chunk)
}

func (d *dataStreamWriter) Finish() error {
	if d.closed {
		return nil
	}
	d.start()
	d.closed = true
	return d.part("d", map[string]string{"finishReason": "stop"})
}

func (d *dataStreamWriter) Fail(env ErrorEnvelope) error {
	if d.closed {
		return nil
	}
	if !d.started {
		d.started = true
		d.closed = true
		return WriteError(d.w, env)
	}
	d.closed = true
	if err := d.part("3", env.Message); err != nil {
		return err
	}
	return d.part("d", map[string]string{"finishReason": "error"})
}

func (d *dataStreamWriter) Started() bool { return d.started }

func (d *dataStreamWriter) part(code string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	line := make([]byte, 0, len(code)+len(payload)+2)
	line = append(line, code...)
	line = append(line, ':')
	line = append(line, payload...)
	line = append(line, '\n')
	if _, err := d.w.Write(line); err != nil {
		return err
	}
	flush(d.w)
	return nil
}
