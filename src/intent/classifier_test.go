package intent

import (
	"regexp"
	"testing"

	"github.com/stake-plus/portfolio-chat/src/tools"
)

func TestClassifyDefaultRules(t *testing.T) {
	tests := []struct {
		text     string
		wantTool string
		wantOK   bool
	}{
		{"What are your skills?", tools.Skills, true},
		{"Can I see your resume?", tools.Resume, true},
		{"send me your CV", tools.Resume, true},
		{"How can I contact you?", tools.Contact, true},
		{"what's your email", tools.Contact, true},
		{"Tell me about your projects", tools.Projects, true},
		{"Who are you?", tools.Presentation, true},
		{"What's the craziest thing you've done?", tools.Crazy, true},
		{"Do you play chess?", tools.Sports, true},
		{"Walk me through your career", tools.Experience, true},
		{"  WHAT IS YOUR TECH STACK  ", tools.Skills, true},
		{"Tell me a joke", "", false},
		{"", "", false},
		{"   ", "", false},
		// word boundaries keep substrings from matching
		{"internationalization is hard", "", false},
		{"the cvs pharmacy", "", false},
	}

	c := Default()
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := c.Classify(tt.text)
			if ok != tt.wantOK || got != tt.wantTool {
				t.Fatalf("Classify(%q) = (%q, %v), want (%q, %v)", tt.text, got, ok, tt.wantTool, tt.wantOK)
			}
		})
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	c := Default()
	got, ok := c.Classify("I need info for an internship project")
	if !ok || got != tools.Internship {
		t.Fatalf("got (%q, %v), want internship", got, ok)
	}

	reordered := New(
		Rule{Pattern: regexp.MustCompile(`\bprojects?\b`), Tool: tools.Projects},
		Rule{Pattern: regexp.MustCompile(`\binternship\b`), Tool: tools.Internship},
	)
	got, ok = reordered.Classify("I need info for an internship project")
	if !ok || got != tools.Projects {
		t.Fatalf("reordered got (%q, %v), want projects", got, ok)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := Default()
	inputs := []string{"Tell me about yourself", "random words", "resume and skills", "Internship?"}
	for _, in := range inputs {
		first, firstOK := c.Classify(in)
		second, secondOK := c.Classify(in)
		if first != second || firstOK != secondOK {
			t.Fatalf("Classify(%q) not stable: (%q,%v) then (%q,%v)", in, first, firstOK, second, secondOK)
		}
	}
}

func TestDefaultRulesTargetBuiltinTools(t *testing.T) {
	registry, err := tools.NewBuiltinRegistry(tools.DefaultContent())
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	for _, r := range DefaultRules() {
		if !registry.Has(r.Tool) {
			t.Fatalf("rule %s points at unregistered tool %q", r.Pattern, r.Tool)
		}
	}
}

func TestRulesReturnsCopy(t *testing.T) {
	c := Default()
	rules := c.Rules()
	rules[0].Tool = "mutated"
	if got := c.Rules()[0].Tool; got == "mutated" {
		t.Fatal("Rules exposed internal slice")
	}
}
