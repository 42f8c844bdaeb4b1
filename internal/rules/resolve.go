package rules

// Resolve computes the effective RuleSet for one repository by applying
// that repository's enablement overrides onto the base set. Only the
// Enabled flag is overridable; matchers and thresholds are inherited
// unchanged. An override naming a rule absent from the base set fails
// with *UnknownRuleReferenceError rather than being dropped.
//
// Resolve is pure and idempotent: the base set is never mutated, and
// resolving an already-resolved set with the same repository yields a
// structurally equal result.
func Resolve(base *RuleSet, repository string) (*RuleSet, error) {
	eff := &RuleSet{
		rules:     make([]Rule, len(base.rules)),
		byName:    make(map[string]int, len(base.byName)),
		overrides: base.overrides,
	}
	copy(eff.rules, base.rules)
	for name, idx := range base.byName {
		eff.byName[name] = idx
	}

	for _, ov := range base.Overrides(repository) {
		idx, ok := eff.byName[ov.RuleName]
		if !ok {
			return nil, &UnknownRuleReferenceError{Repository: repository, RuleName: ov.RuleName}
		}
		eff.rules[idx].Enabled = ov.Enabled
	}
	return eff, nil
}
