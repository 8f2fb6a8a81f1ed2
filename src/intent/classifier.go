// Package intent maps a visitor's latest message to a canned tool.
package intent

import (
	"regexp"
	"strings"

	"github.com/stake-plus/portfolio-chat/src/tools"
)

// Rule binds a pattern to a tool name.
type Rule struct {
	Pattern *regexp.Regexp
	Tool    string
}

// Classifier evaluates rules top to bottom; the first match wins.
// It has no state and is safe for concurrent use.
type Classifier struct {
	rules []Rule
}

// New returns a classifier over rules, in order.
func New(rules ...Rule) *Classifier {
	return &Classifier{rules: append([]Rule(nil), rules...)}
}

// Default returns the classifier for the built-in tools.
func Default() *Classifier {
	return New(DefaultRules()...)
}

// DefaultRules lists the built-in rules. Internship comes first because its
// questions often also mention projects or work.
func DefaultRules() []Rule {
	return []Rule{
		{regexp.MustCompile(`\bintern(ship)?s?\b`), tools.Internship},
		{regexp.MustCompile(`\b(resume|cv|curriculum vitae)\b`), tools.Resume},
		{regexp.MustCompile(`\b(contact|e-?mail|phone|linkedin|reach (you|out)|get in touch)\b`), tools.Contact},
		{regexp.MustCompile(`\b(skills?|tech ?stack|technolog(y|ies)|good at)\b`), tools.Skills},
		{regexp.MustCompile(`\b(experience|journey|career)\b`), tools.Experience},
		{regexp.MustCompile(`\b(crazy|craziest|wildest|your story)\b`), tools.Crazy},
		{regexp.MustCompile(`\b(sports?|gaming|games?|chess|free ?fire)\b`), tools.Sports},
		{regexp.MustCompile(`\b(who are you|about yourself|introduce yourself|presentation)\b`), tools.Presentation},
		{regexp.MustCompile(`\b(projects?|portfolio)\b`), tools.Projects},
	}
}

// Classify returns the tool for text, or false when the model should answer.
func (c *Classifier) Classify(text string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return "", false
	}
	for _, r := range c.rules {
		if r.Pattern.MatchString(normalized) {
			return r.Tool, true
		}
	}
	return "", false
}

// Rules returns a copy of the rule list in evaluation order.
func (c *Classifier) Rules() []Rule {
	return append([]Rule(nil), c.rules...)
}
