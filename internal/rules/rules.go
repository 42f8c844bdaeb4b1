// Package rules implements the declarative rule model for the scanning
// engine: polymorphic matchers, named rules with severity thresholds,
// ordered rule sets, and per-repository enablement overrides. Rule sets
// are loaded from YAML and fully validated up front; a set that loads
// successfully can always be evaluated without runtime pattern errors.
package rules

import (
	"fmt"
	"regexp"

	"github.com/ghostai/ghostscan/internal/types"
)

// MatcherKind discriminates the matcher union.
type MatcherKind string

const (
	// KindRegex matches a compiled regular expression.
	KindRegex MatcherKind = "regex"
	// KindKeyword matches any phrase of a named keyword detector,
	// case-insensitively.
	KindKeyword MatcherKind = "keyword"
	// KindHeuristic matches a risky construct scoped to one language.
	KindHeuristic MatcherKind = "heuristic"
)

// Matcher is a tagged union over the three matcher variants. Exactly the
// fields for the active Kind are populated; evaluation dispatches
// exhaustively on Kind.
type Matcher struct {
	Kind MatcherKind

	// regex variant
	Type    string // kind label for the pattern, e.g. "api_key", "email"
	Pattern string
	re      *regexp.Regexp

	// keyword variant
	Detector string // name in the keyword detector registry
	phrases  []string

	// heuristic variant
	Language  string
	Construct string
	needle    string
}

// NewRegexMatcher compiles pattern and returns a regex matcher labeled
// with the given type. Compilation failure is reported as
// *InvalidPatternError.
func NewRegexMatcher(typ, pattern string) (Matcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Matcher{}, &InvalidPatternError{Detail: fmt.Sprintf("regex %q", pattern), Err: err}
	}
	return Matcher{Kind: KindRegex, Type: typ, Pattern: pattern, re: re}, nil
}

// NewKeywordMatcher resolves name against the built-in keyword detector
// registry.
func NewKeywordMatcher(name string) (Matcher, error) {
	phrases, ok := PhrasesFor(name)
	if !ok {
		return Matcher{}, &InvalidPatternError{Detail: fmt.Sprintf("unknown keyword detector %q", name)}
	}
	return Matcher{Kind: KindKeyword, Detector: name, phrases: phrases}, nil
}

// NewHeuristicMatcher resolves a (language, construct) pair against the
// built-in heuristic table.
func NewHeuristicMatcher(language, construct string) (Matcher, error) {
	needle, ok := heuristicNeedle(language, construct)
	if !ok {
		return Matcher{}, &InvalidPatternError{Detail: fmt.Sprintf("unknown heuristic %s/%s", language, construct)}
	}
	return Matcher{Kind: KindHeuristic, Language: language, Construct: construct, needle: needle}, nil
}

// Regexp returns the compiled pattern of a regex matcher, nil otherwise.
func (m Matcher) Regexp() *regexp.Regexp { return m.re }

// Phrases returns the phrase list of a keyword matcher.
func (m Matcher) Phrases() []string { return m.phrases }

// Needle returns the scan token of a heuristic matcher.
func (m Matcher) Needle() string { return m.needle }

// Rule is a named bundle of matchers with an enablement flag and a
// policy-assigned severity. Name is the stable identity used by
// overrides and finding grouping.
type Rule struct {
	Name      string
	Enabled   bool
	Threshold types.Severity
	Matchers  []Matcher
}

// Override is a repository-scoped enablement change for one rule.
type Override struct {
	RuleName string
	Enabled  bool
}

// RuleSet holds rules in insertion order plus per-repository overrides.
// Insertion order is preserved for display and for deterministic scan
// output; lookup by name is indexed.
type RuleSet struct {
	rules     []Rule
	byName    map[string]int
	overrides map[string][]Override
}

// NewRuleSet returns an initialised, empty RuleSet.
func NewRuleSet() *RuleSet {
	return &RuleSet{
		byName:    make(map[string]int),
		overrides: make(map[string][]Override),
	}
}

// Add appends a rule. Empty or duplicate names are rejected.
func (rs *RuleSet) Add(r Rule) error {
	if r.Name == "" {
		return &ValidationError{Detail: "rule with empty name"}
	}
	if _, dup := rs.byName[r.Name]; dup {
		return &ValidationError{Detail: fmt.Sprintf("duplicate rule name %q", r.Name)}
	}
	if len(r.Matchers) == 0 {
		return &ValidationError{Detail: fmt.Sprintf("rule %q has no matchers", r.Name)}
	}
	rs.byName[r.Name] = len(rs.rules)
	rs.rules = append(rs.rules, r)
	return nil
}

// Rules returns all rules in insertion order. The returned slice must
// not be mutated.
func (rs *RuleSet) Rules() []Rule { return rs.rules }

// ByName looks up a rule by name.
func (rs *RuleSet) ByName(name string) (Rule, bool) {
	idx, ok := rs.byName[name]
	if !ok {
		return Rule{}, false
	}
	return rs.rules[idx], true
}

// Len returns the number of rules in the set.
func (rs *RuleSet) Len() int { return len(rs.rules) }

// SetOverrides records the override list for a repository, replacing any
// previous entry.
func (rs *RuleSet) SetOverrides(repository string, ovs []Override) {
	rs.overrides[repository] = ovs
}

// Overrides returns the override list for a repository, nil when none.
func (rs *RuleSet) Overrides(repository string) []Override {
	return rs.overrides[repository]
}

// OverriddenRepositories returns the repositories that carry overrides.
func (rs *RuleSet) OverriddenRepositories() []string {
	out := make([]string, 0, len(rs.overrides))
	for repo := range rs.overrides {
		out = append(out, repo)
	}
	return out
}
