package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveNoOverridesIsIdentity(t *testing.T) {
	base := Default()
	eff, err := Resolve(base, "repo-without-overrides")
	require.NoError(t, err)
	assert.Equal(t, base.Rules(), eff.Rules())
}

func TestResolveAppliesEnablementOnly(t *testing.T) {
	base := Default()
	base.SetOverrides("test-repo", []Override{
		{RuleName: "secret-detection", Enabled: false},
		{RuleName: "risky-code", Enabled: true},
	})

	eff, err := Resolve(base, "test-repo")
	require.NoError(t, err)

	secret, _ := eff.ByName("secret-detection")
	assert.False(t, secret.Enabled)
	// everything but the flag is inherited
	baseSecret, _ := base.ByName("secret-detection")
	assert.Equal(t, baseSecret.Threshold, secret.Threshold)
	assert.Equal(t, baseSecret.Matchers, secret.Matchers)

	risky, _ := eff.ByName("risky-code")
	assert.True(t, risky.Enabled)

	// base set untouched
	baseSecret, _ = base.ByName("secret-detection")
	assert.True(t, baseSecret.Enabled)
}

func TestResolveIsIdempotent(t *testing.T) {
	base := Default()
	base.SetOverrides("test-repo", []Override{{RuleName: "secret-detection", Enabled: false}})

	once, err := Resolve(base, "test-repo")
	require.NoError(t, err)
	twice, err := Resolve(once, "test-repo")
	require.NoError(t, err)
	assert.Equal(t, once.Rules(), twice.Rules())
}

func TestResolveUnknownRuleReference(t *testing.T) {
	base := Default()
	base.SetOverrides("test-repo", []Override{{RuleName: "ghost-rule", Enabled: false}})

	eff, err := Resolve(base, "test-repo")
	assert.Nil(t, eff)
	var ure *UnknownRuleReferenceError
	require.ErrorAs(t, err, &ure)
	assert.Equal(t, "test-repo", ure.Repository)
	assert.Equal(t, "ghost-rule", ure.RuleName)
}

func TestRegistries(t *testing.T) {
	assert.Contains(t, KeywordDetectors(), "ignore_previous_instructions")
	assert.Contains(t, KeywordDetectors(), "system_prompt_leak")
	assert.Contains(t, HeuristicConstructs(), "python/exec")
	assert.Contains(t, HeuristicConstructs(), "javascript/eval")
}
