package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLocal(t *testing.T) {
	root := t.TempDir()
	doc := "rules: rules.yml\nthreads: 8\nrisk_high: 50\nno_color: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, ".ghostscan.yml"), []byte(doc), 0o644))

	cfg, err := LoadLocal(root)
	require.NoError(t, err)
	require.NotNil(t, cfg.Rules)
	assert.Equal(t, "rules.yml", *cfg.Rules)
	require.NotNil(t, cfg.Threads)
	assert.Equal(t, 8, *cfg.Threads)
	require.NotNil(t, cfg.RiskHigh)
	assert.Equal(t, 50, *cfg.RiskHigh)
	require.NotNil(t, cfg.NoColor)
	assert.True(t, *cfg.NoColor)
	assert.Nil(t, cfg.Exclude)
}

func TestLoadLocalMissing(t *testing.T) {
	_, err := LoadLocal(t.TempDir())
	assert.Error(t, err)
}

func TestLoadFileBadYAML(t *testing.T) {
	root := t.TempDir()
	p := filepath.Join(root, "bad.yml")
	require.NoError(t, os.WriteFile(p, []byte("threads: [not an int\n"), 0o644))
	_, err := LoadFile(p)
	assert.Error(t, err)
}
