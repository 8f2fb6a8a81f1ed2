// Package prompt prepends the portfolio persona to model-bound conversations.
package prompt

import (
	"fmt"
	"os"
	"strings"

	"github.com/stake-plus/portfolio-chat/src/ai/core"
)

// Assembler owns the persona text. It is immutable and safe for concurrent use.
type Assembler struct {
	persona string
}

// New returns an Assembler for persona; an empty persona selects DefaultPersona.
func New(persona string) *Assembler {
	if strings.TrimSpace(persona) == "" {
		persona = DefaultPersona
	}
	return &Assembler{persona: persona}
}

// Persona returns the system text placed at index 0.
func (a *Assembler) Persona() string { return a.persona }

// Assemble returns a new conversation starting with exactly one persona message.
// Client-supplied system messages are dropped; everything else keeps its order.
func (a *Assembler) Assemble(history []core.Message) []core.Message {
	out := make([]core.Message, 0, len(history)+1)
	out = append(out, core.Message{Role: core.RoleSystem, Content: a.persona})
	for _, m := range history {
		if m.Role == core.RoleSystem {
			continue
		}
		out = append(out, m)
	}
	return out
}

// LoadPersona reads a persona override. An empty path yields DefaultPersona.
func LoadPersona(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultPersona, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read persona: %w", err)
	}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return "", fmt.Errorf("persona file %s is empty", path)
	}
	return text, nil
}
