package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/ghostai/ghostscan/internal/aggregate"
	"github.com/ghostai/ghostscan/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() []types.Finding {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []types.Finding{
		{ID: 1, FilePath: "src/db.ts", Line: 42, Detector: "secret-detection", Severity: types.SevHigh, Repository: "api-gateway", Snippet: "sk_live_x", CreatedAt: now},
		{ID: 2, FilePath: "src/auth.ts", Line: 128, Detector: "pii-detection", Severity: types.SevMed, Repository: "frontend-app", Snippet: "a@b.io", CreatedAt: now},
	}
}

func TestPrintFindings(t *testing.T) {
	var buf bytes.Buffer
	PrintFindings(&buf, sample(), PrintOptions{NoColor: true, Duration: time.Second, UnitsScanned: 3})
	out := buf.String()

	assert.Contains(t, out, "secret-detection")
	assert.Contains(t, out, "src/db.ts:42")
	assert.Contains(t, out, "high")
	assert.Contains(t, out, "(high: 1, medium: 1, low: 0)")
	assert.Contains(t, out, "Units scanned: 3")
	// sorted by path: auth.ts before db.ts
	assert.Less(t, strings.Index(out, "auth.ts"), strings.Index(out, "db.ts"))
}

func TestPrintFindingsEmpty(t *testing.T) {
	var buf bytes.Buffer
	PrintFindings(&buf, nil, PrintOptions{NoColor: true})
	assert.Contains(t, buf.String(), "No findings")
}

func TestTables(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintSeverityTable(&buf, sample()))
	require.NoError(t, PrintDetectorTable(&buf, sample()))
	require.NoError(t, PrintRepositoryTable(&buf, sample(), aggregate.DefaultRiskThresholds))
	require.NoError(t, PrintTimeline(&buf, sample(), 24*time.Hour))

	out := buf.String()
	assert.Contains(t, out, "secret-detection")
	assert.Contains(t, out, "api-gateway")
	assert.Contains(t, out, "2026-03-01")
}

func TestEnvelopeJSON(t *testing.T) {
	env := NewEnvelope("api-gateway", time.Now(), sample(), []string{"bad.bin"}, false)
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, env))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "api-gateway", decoded["repository"])

	bySev := decoded["bySeverity"].(map[string]any)
	assert.Equal(t, float64(1), bySev["high"])
	assert.Equal(t, float64(0), bySev["low"])
}
