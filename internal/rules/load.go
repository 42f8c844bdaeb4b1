package rules

import (
	"errors"
	"fmt"

	"github.com/ghostai/ghostscan/internal/types"
	"gopkg.in/yaml.v3"
)

// PatternSpec is the wire shape of one entry under a rule's "patterns"
// key. Exactly one of Regex or Language decides the variant: a regex
// pattern labeled by Type, or a language heuristic whose construct is
// Type.
type PatternSpec struct {
	Type     string `yaml:"type"`
	Regex    string `yaml:"regex,omitempty"`
	Language string `yaml:"language,omitempty"`
}

// RuleSpec is the unvalidated wire shape of one rule. External producers
// (hand-written YAML, the rule generator) emit RuleSpecs; BuildRule is
// the single validation gate that turns one into a Rule.
type RuleSpec struct {
	Name        string        `yaml:"name"`
	Enabled     bool          `yaml:"enabled"`
	Threshold   string        `yaml:"threshold"`
	Description string        `yaml:"description,omitempty"`
	Patterns    []PatternSpec `yaml:"patterns,omitempty"`
	Detectors   []string      `yaml:"detectors,omitempty"`
}

// RepoOverrideSpec is the wire shape of one entry under
// "overrides.repositories". Each rules entry is a single-key mapping
// from rule name to enabled flag.
type RepoOverrideSpec struct {
	Name  string            `yaml:"name"`
	Rules []map[string]bool `yaml:"rules"`
}

// OverridesSpec groups per-repository overrides.
type OverridesSpec struct {
	Repositories []RepoOverrideSpec `yaml:"repositories,omitempty"`
}

// DocumentSpec is the full rule configuration document.
type DocumentSpec struct {
	Rules     []RuleSpec    `yaml:"rules"`
	Overrides OverridesSpec `yaml:"overrides,omitempty"`
}

// BuildRule validates a RuleSpec and produces a Rule. Any malformed
// regex, unknown threshold, unknown keyword detector or unknown
// heuristic construct is an error; the caller rejects the whole
// document on the first failure.
func BuildRule(spec RuleSpec) (Rule, error) {
	if spec.Name == "" {
		return Rule{}, &ValidationError{Detail: "rule with empty name"}
	}
	threshold, err := parseThreshold(spec.Threshold)
	if err != nil {
		return Rule{}, &ValidationError{Detail: fmt.Sprintf("rule %q: %v", spec.Name, err)}
	}

	matchers := make([]Matcher, 0, len(spec.Patterns)+len(spec.Detectors))
	for _, p := range spec.Patterns {
		var m Matcher
		var err error
		switch {
		case p.Regex != "" && p.Language != "":
			err = &InvalidPatternError{Rule: spec.Name, Detail: fmt.Sprintf("pattern %q sets both regex and language", p.Type)}
		case p.Regex != "":
			m, err = NewRegexMatcher(p.Type, p.Regex)
		case p.Language != "":
			m, err = NewHeuristicMatcher(p.Language, p.Type)
		default:
			err = &InvalidPatternError{Rule: spec.Name, Detail: fmt.Sprintf("pattern %q needs a regex or a language", p.Type)}
		}
		if err != nil {
			return Rule{}, tagRule(err, spec.Name)
		}
		matchers = append(matchers, m)
	}
	for _, name := range spec.Detectors {
		m, err := NewKeywordMatcher(name)
		if err != nil {
			return Rule{}, tagRule(err, spec.Name)
		}
		matchers = append(matchers, m)
	}
	if len(matchers) == 0 {
		return Rule{}, &ValidationError{Detail: fmt.Sprintf("rule %q declares no patterns or detectors", spec.Name)}
	}

	return Rule{
		Name:      spec.Name,
		Enabled:   spec.Enabled,
		Threshold: threshold,
		Matchers:  matchers,
	}, nil
}

// FromSpec validates a whole document and assembles the RuleSet.
// Validation is all-or-nothing: the first invalid rule or override
// rejects the entire document.
func FromSpec(doc DocumentSpec) (*RuleSet, error) {
	rs := NewRuleSet()
	for _, spec := range doc.Rules {
		r, err := BuildRule(spec)
		if err != nil {
			return nil, err
		}
		if err := rs.Add(r); err != nil {
			return nil, err
		}
	}
	for _, repo := range doc.Overrides.Repositories {
		if repo.Name == "" {
			return nil, &ValidationError{Detail: "override entry with empty repository name"}
		}
		var ovs []Override
		for _, entry := range repo.Rules {
			if len(entry) != 1 {
				return nil, &ValidationError{Detail: fmt.Sprintf("override for %q: each rules entry must map exactly one rule name", repo.Name)}
			}
			for name, enabled := range entry {
				ovs = append(ovs, Override{RuleName: name, Enabled: enabled})
			}
		}
		rs.SetOverrides(repo.Name, ovs)
	}
	return rs, nil
}

// Load parses a YAML rule configuration document into a validated
// RuleSet.
func Load(data []byte) (*RuleSet, error) {
	var doc DocumentSpec
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse rule config: %w", err)
	}
	return FromSpec(doc)
}

func parseThreshold(s string) (types.Severity, error) {
	if s == "" {
		return 0, fmt.Errorf("missing threshold")
	}
	return types.ParseSeverity(s)
}

// tagRule attaches the rule name to pattern errors raised while building
// its matchers.
func tagRule(err error, rule string) error {
	var ipe *InvalidPatternError
	if errors.As(err, &ipe) && ipe.Rule == "" {
		ipe.Rule = rule
	}
	return err
}
