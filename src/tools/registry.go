// Package tools holds the canned answers the chat can give without a model call.
package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownTool is returned by Execute for names that were never registered.
var ErrUnknownTool = errors.New("tool not registered")

// Descriptor describes one parameterless tool.
type Descriptor struct {
	Name        string
	Description string
	Parameters  map[string]any
	Execute     func() (any, error)
}

// ExecutionError wraps a failure raised by a tool generator.
type ExecutionError struct {
	Tool string
	Err  error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("tool %s failed: %v", e.Tool, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// Registry maps tool names to descriptors. It is built once and never
// modified, so concurrent reads need no locking.
type Registry struct {
	tools map[string]Descriptor
	names []string
}

// NewRegistry validates and freezes the given descriptors.
func NewRegistry(descs ...Descriptor) (*Registry, error) {
	r := &Registry{tools: make(map[string]Descriptor, len(descs))}
	for _, d := range descs {
		if d.Name == "" {
			return nil, fmt.Errorf("tool name is empty")
		}
		if d.Execute == nil {
			return nil, fmt.Errorf("tool %s has no generator", d.Name)
		}
		if _, exists := r.tools[d.Name]; exists {
			return nil, fmt.Errorf("tool %s already registered", d.Name)
		}
		if d.Parameters == nil {
			d.Parameters = map[string]any{"type": "object", "properties": map[string]any{}}
		}
		r.tools[d.Name] = d
		r.names = append(r.names, d.Name)
	}
	sort.Strings(r.names)
	return r, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.tools[name]
	return ok
}

// Get fetches a descriptor by name.
func (r *Registry) Get(name string) (Descriptor, bool) {
	d, ok := r.tools[name]
	return d, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Execute runs the named tool. Generator errors and panics come back as
// *ExecutionError.
func (r *Registry) Execute(name string) (result any, err error) {
	d, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = &ExecutionError{Tool: name, Err: fmt.Errorf("panic: %v", rec)}
		}
	}()

	out, err := d.Execute()
	if err != nil {
		return nil, &ExecutionError{Tool: name, Err: err}
	}
	return out, nil
}

// Text normalises a tool result to the string sent to the client.
func Text(result any) (string, error) {
	switch v := result.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("serialise tool result: %w", err)
		}
		return string(b), nil
	}
}
