package rules

import "fmt"

// InvalidPatternError reports a matcher definition that cannot be
// compiled or resolved. It is raised at load time and rejects the whole
// document; a rule set is never partially loaded.
type InvalidPatternError struct {
	Rule   string // rule name, when known
	Detail string
	Err    error
}

func (e *InvalidPatternError) Error() string {
	msg := "invalid pattern"
	if e.Rule != "" {
		msg = fmt.Sprintf("rule %q: invalid pattern", e.Rule)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvalidPatternError) Unwrap() error { return e.Err }

// ValidationError reports a structurally invalid rule document outside
// of pattern problems (empty names, duplicates, missing matchers).
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string { return "invalid rule config: " + e.Detail }

// UnknownRuleReferenceError reports an override that names a rule absent
// from the base set. It is fatal to any scan of that repository.
type UnknownRuleReferenceError struct {
	Repository string
	RuleName   string
}

func (e *UnknownRuleReferenceError) Error() string {
	return fmt.Sprintf("override for repository %q references unknown rule %q", e.Repository, e.RuleName)
}
