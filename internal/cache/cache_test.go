package cache

import (
	"testing"
	"time"

	"github.com/ghostai/ghostscan/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	assert.Equal(t, "0000000000000000", Hash(nil))
	assert.Len(t, Hash([]byte("abc")), 16)
	assert.Equal(t, Hash([]byte("abc")), Hash([]byte("abc")))
	assert.NotEqual(t, Hash([]byte("abc")), Hash([]byte("abd")))
}

func TestDBRoundTrip(t *testing.T) {
	root := t.TempDir()

	db := DB{Entries: map[string]string{"a.txt": Hash([]byte("a"))}}
	require.NoError(t, Save(root, db))

	loaded, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, db.Entries, loaded.Entries)

	// missing cache yields an empty, usable DB
	empty, err := Load(t.TempDir())
	assert.Error(t, err)
	assert.NotNil(t, empty.Entries)
}

func TestResultsRoundTrip(t *testing.T) {
	root := t.TempDir()
	fs := []types.Finding{{
		ID: 1, FilePath: "a.py", Line: 3, Detector: "secret-detection",
		Severity: types.SevHigh, Repository: "demo", CreatedAt: time.Now().UTC(),
	}}
	require.NoError(t, SaveResults(root, "demo", fs, []string{"bad.bin"}))

	got, err := LoadResults(root)
	require.NoError(t, err)
	assert.Equal(t, "demo", got.Repository)
	assert.Equal(t, 1, got.Count)
	require.Len(t, got.Findings, 1)
	assert.Equal(t, "secret-detection", got.Findings[0].Detector)
	assert.Equal(t, types.SevHigh, got.Findings[0].Severity)
	assert.Equal(t, []string{"bad.bin"}, got.Skipped)
}
