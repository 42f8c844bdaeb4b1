package rulegen

import (
	"context"
	"testing"

	"github.com/ghostai/ghostscan/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeuristicGeneratorAWS(t *testing.T) {
	spec, err := HeuristicGenerator{}.Generate(context.Background(), "Alert on any AWS credentials in config files")
	require.NoError(t, err)
	assert.Equal(t, "high", spec.Threshold)
	assert.NotEmpty(t, spec.Patterns)

	// candidate passes the same load-time gate as hand-written rules
	set := rules.NewRuleSet()
	require.NoError(t, Accept(set, spec))
	_, ok := set.ByName(spec.Name)
	assert.True(t, ok)
}

func TestHeuristicGeneratorPromptInjection(t *testing.T) {
	spec, err := HeuristicGenerator{}.Generate(context.Background(), "Flag prompt injection attempts in user inputs")
	require.NoError(t, err)
	assert.Equal(t, []string{"ignore_previous_instructions", "system_prompt_leak"}, spec.Detectors)

	set := rules.NewRuleSet()
	require.NoError(t, Accept(set, spec))
}

func TestHeuristicGeneratorFallbackPhrase(t *testing.T) {
	spec, err := HeuristicGenerator{}.Generate(context.Background(), "lines touched sql migrations")
	require.NoError(t, err)
	require.Len(t, spec.Patterns, 1)

	set := rules.NewRuleSet()
	require.NoError(t, Accept(set, spec))
}

func TestHeuristicGeneratorEmptyPrompt(t *testing.T) {
	_, err := HeuristicGenerator{}.Generate(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestAcceptRejectsInvalidCandidate(t *testing.T) {
	set := rules.NewRuleSet()
	err := Accept(set, rules.RuleSpec{
		Name: "bad", Enabled: true, Threshold: "high",
		Patterns: []rules.PatternSpec{{Type: "x", Regex: "[broken"}},
	})
	var ipe *rules.InvalidPatternError
	require.ErrorAs(t, err, &ipe)
	assert.Equal(t, 0, set.Len())
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "alert-on-aws", slugify("Alert! on AWS"))
	spec, err := HeuristicGenerator{}.Generate(context.Background(), "detect secrets")
	require.NoError(t, err)
	assert.Equal(t, "custom-detect-secrets", spec.Name)
}
