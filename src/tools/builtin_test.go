package tools

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tools.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoadContentDefaults(t *testing.T) {
	content, err := LoadContent("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !strings.HasPrefix(content[Skills].Text, "Here's my toolbox") {
		t.Fatalf("skills text = %q", content[Skills].Text)
	}

	// callers get their own copy
	content[Skills] = Content{Text: "changed"}
	if DefaultContent()[Skills].Text == "changed" {
		t.Fatal("DefaultContent shares state")
	}
}

func TestLoadContentOverrides(t *testing.T) {
	path := writeFile(t, `
tools:
  skills:
    text: "Go, mostly."
  contact:
    description: "Reach me"
`)
	content, err := LoadContent(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if content[Skills].Text != "Go, mostly." {
		t.Fatalf("skills text = %q", content[Skills].Text)
	}
	if content[Skills].Description != DefaultContent()[Skills].Description {
		t.Fatal("empty description override should keep default")
	}
	if content[Contact].Description != "Reach me" {
		t.Fatalf("contact description = %q", content[Contact].Description)
	}
	if content[Contact].Text != DefaultContent()[Contact].Text {
		t.Fatal("contact text should keep default")
	}

	r, err := NewBuiltinRegistry(content)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	out, err := r.Execute(Skills)
	if err != nil || out != "Go, mostly." {
		t.Fatalf("execute = %v, %v", out, err)
	}
}

func TestLoadContentErrors(t *testing.T) {
	if _, err := LoadContent(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, err := LoadContent(writeFile(t, "tools: [not, a, map]")); err == nil {
		t.Fatal("expected parse error")
	}
	_, err := LoadContent(writeFile(t, "tools:\n  weather:\n    text: sunny\n"))
	if err == nil || !strings.Contains(err.Error(), `unknown tool "weather"`) {
		t.Fatalf("err = %v", err)
	}
}
