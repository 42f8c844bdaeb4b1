// Package rulegen models the natural-language rule producer as an
// opaque collaborator. A Generator turns free text into one unvalidated
// rule candidate in the same wire shape as hand-written rules; Accept
// pushes a candidate through the same load-time validation as any other
// rule before it may join a rule set. No model call lives here: the
// interface exists so a real producer can be swapped in, and so tests
// can mock it.
package rulegen

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ghostai/ghostscan/internal/rules"
)

// Generator produces a single candidate rule from a free-text policy
// description. The candidate is unvalidated; callers must gate it
// through Accept.
type Generator interface {
	Generate(ctx context.Context, prompt string) (rules.RuleSpec, error)
}

// Accept validates a candidate through the standard load-time checks
// and, on success, adds the resulting rule to the set.
func Accept(set *rules.RuleSet, candidate rules.RuleSpec) error {
	r, err := rules.BuildRule(candidate)
	if err != nil {
		return err
	}
	return set.Add(r)
}

// HeuristicGenerator is the built-in offline producer. It maps policy
// keywords onto canned rule templates, which keeps the CLI usable
// without a model backend.
type HeuristicGenerator struct{}

var ErrEmptyPrompt = errors.New("empty rule description")

func (HeuristicGenerator) Generate(_ context.Context, prompt string) (rules.RuleSpec, error) {
	text := strings.TrimSpace(prompt)
	if text == "" {
		return rules.RuleSpec{}, ErrEmptyPrompt
	}
	lower := strings.ToLower(text)

	spec := rules.RuleSpec{
		Name:        "custom-" + slugify(lower),
		Enabled:     true,
		Threshold:   "medium",
		Description: text,
	}

	switch {
	case containsAny(lower, "aws", "credential", "secret", "token", "api key"):
		spec.Threshold = "high"
		spec.Patterns = []rules.PatternSpec{
			{Type: "aws_key", Regex: `AKIA[0-9A-Z]{16}`},
			{Type: "api_key", Regex: `[A-Za-z0-9]{32,}`},
		}
	case containsAny(lower, "pii", "email", "ssn", "customer", "personal"):
		spec.Patterns = []rules.PatternSpec{
			{Type: "email", Regex: `[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`},
			{Type: "ssn", Regex: `\d{3}-\d{2}-\d{4}`},
		}
	case containsAny(lower, "prompt injection", "jailbreak", "prompt"):
		spec.Threshold = "high"
		spec.Detectors = []string{"ignore_previous_instructions", "system_prompt_leak"}
	case containsAny(lower, "eval", "exec", "risky", "dangerous code"):
		spec.Threshold = "low"
		spec.Patterns = []rules.PatternSpec{
			{Type: "eval", Language: "javascript"},
			{Type: "exec", Language: "python"},
		}
	default:
		// fall back to literal phrase matching on notable words
		words := notableWords(lower)
		if len(words) == 0 {
			return rules.RuleSpec{}, fmt.Errorf("could not derive a rule from %q", prompt)
		}
		spec.Patterns = []rules.PatternSpec{{
			Type:  "phrase",
			Regex: "(?i)" + strings.Join(escapeAll(words), `\s+`),
		}}
	}
	return spec, nil
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "if": true, "in": true, "on": true,
	"any": true, "all": true, "and": true, "or": true, "of": true, "to": true,
	"block": true, "alert": true, "detect": true, "flag": true, "than": true, "more": true,
}

func notableWords(s string) []string {
	var out []string
	for _, w := range strings.Fields(s) {
		w = strings.Trim(w, ".,;:!?\"'")
		if len(w) >= 3 && !stopWords[w] {
			out = append(out, w)
		}
		if len(out) == 4 {
			break
		}
	}
	return out
}

func escapeAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = regexp.QuoteMeta(w)
	}
	return out
}

func slugify(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	lastDash := true
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteRune('-')
			lastDash = true
		}
		if b.Len() >= 32 {
			break
		}
	}
	return strings.Trim(b.String(), "-")
}
