package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSeverityOrdering(t *testing.T) {
	assert.True(t, SevLow < SevMed)
	assert.True(t, SevMed < SevHigh)
}

func TestParseSeverity(t *testing.T) {
	for _, s := range Severities() {
		got, err := ParseSeverity(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseSeverity("critical")
	assert.Error(t, err)
}

func TestSeverityYAML(t *testing.T) {
	var s Severity
	require.NoError(t, yaml.Unmarshal([]byte(`"high"`), &s))
	assert.Equal(t, SevHigh, s)

	err := yaml.Unmarshal([]byte(`"severe"`), &s)
	assert.Error(t, err)
}

func TestFingerprintStableAcrossRuns(t *testing.T) {
	a := Finding{ID: 1, Repository: "api-gateway", FilePath: "src/db.ts", Line: 42, Detector: "secret-detection", Snippet: "x", CreatedAt: time.Now()}
	b := a
	b.ID = 99
	b.CreatedAt = a.CreatedAt.Add(24 * time.Hour)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	c := a
	c.Line = 43
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}
