package ghostscan

import (
	"testing"

	"github.com/ghostai/ghostscan/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterFindings(t *testing.T) {
	fs := []types.Finding{
		{Detector: "secret-detection", Severity: types.SevHigh},
		{Detector: "pii-detection", Severity: types.SevMed},
	}

	t.Run("no filters pass through", func(t *testing.T) {
		flagSeverity, flagDetector = "", ""
		out, err := filterFindings(fs)
		require.NoError(t, err)
		assert.Equal(t, fs, out)
	})

	t.Run("by severity", func(t *testing.T) {
		flagSeverity, flagDetector = "high", ""
		defer func() { flagSeverity = "" }()
		out, err := filterFindings(fs)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "secret-detection", out[0].Detector)
	})

	t.Run("invalid severity is an error", func(t *testing.T) {
		flagSeverity, flagDetector = "urgent", ""
		defer func() { flagSeverity = "" }()
		_, err := filterFindings(fs)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "urgent")
	})

	t.Run("by detector", func(t *testing.T) {
		flagSeverity, flagDetector = "", "pii-detection"
		defer func() { flagDetector = "" }()
		out, err := filterFindings(fs)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, types.SevMed, out[0].Severity)
	})
}
