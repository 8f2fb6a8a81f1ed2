package tools

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Names of the built-in tools.
const (
	Presentation = "presentation"
	Resume       = "resume"
	Contact      = "contact"
	Skills       = "skills"
	Projects     = "projects"
	Experience   = "experience"
	Internship   = "internship"
	Sports       = "sports"
	Crazy        = "crazy"
)

// Content is the static text behind one built-in tool.
type Content struct {
	Description string `yaml:"description"`
	Text        string `yaml:"text"`
}

// PresentationPayload is the structured answer of the presentation tool.
type PresentationPayload struct {
	Presentation string `json:"presentation"`
}

type contentFile struct {
	Tools map[string]Content `yaml:"tools"`
}

// DefaultContent returns a fresh copy of the built-in tool content.
func DefaultContent() map[string]Content {
	out := make(map[string]Content, len(defaultContent))
	for k, v := range defaultContent {
		out[k] = v
	}
	return out
}

// LoadContent merges the YAML file at path over the built-in content.
// An empty path returns the defaults. Unknown tool names are rejected.
func LoadContent(path string) (map[string]Content, error) {
	content := DefaultContent()
	if strings.TrimSpace(path) == "" {
		return content, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tool content: %w", err)
	}
	var file contentFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse tool content %s: %w", path, err)
	}

	for name, override := range file.Tools {
		base, ok := content[name]
		if !ok {
			return nil, fmt.Errorf("tool content %s: unknown tool %q", path, name)
		}
		if s := strings.TrimSpace(override.Description); s != "" {
			base.Description = s
		}
		if s := strings.TrimSpace(override.Text); s != "" {
			base.Text = s
		}
		content[name] = base
	}
	return content, nil
}

// NewBuiltinRegistry builds the registry of canned portfolio answers.
func NewBuiltinRegistry(content map[string]Content) (*Registry, error) {
	names := make([]string, 0, len(content))
	for name := range content {
		names = append(names, name)
	}
	sort.Strings(names)

	descs := make([]Descriptor, 0, len(names))
	for _, name := range names {
		c := content[name]
		text := c.Text
		d := Descriptor{Name: name, Description: c.Description}
		if name == Presentation {
			d.Execute = func() (any, error) { return PresentationPayload{Presentation: text}, nil }
		} else {
			d.Execute = func() (any, error) { return text, nil }
		}
		descs = append(descs, d)
	}
	return NewRegistry(descs...)
}
