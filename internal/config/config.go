// Package config loads the optional tool configuration file. Fields are
// pointers so the CLI can distinguish "unset" from zero values when
// merging flag, local and global sources.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for ghostscan.
// This is tool configuration (paths, thresholds, output), distinct from
// the rule configuration document owned by the rules package.
type FileConfig struct {
	Rules           *string `yaml:"rules"` // path to the rule config document
	Repository      *string `yaml:"repository"`
	Include         *string `yaml:"include"`
	Exclude         *string `yaml:"exclude"`
	MaxBytes        *int64  `yaml:"max_bytes"`
	Threads         *int    `yaml:"threads"`
	NoColor         *bool   `yaml:"no_color"`
	DefaultExcludes *bool   `yaml:"default_excludes"`
	SnippetRadius   *int    `yaml:"snippet_radius"`

	// aggregate tuning
	RiskMedium  *int    `yaml:"risk_medium"`
	RiskHigh    *int    `yaml:"risk_high"`
	BucketWidth *string `yaml:"bucket_width"` // duration, e.g. "24h"
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a repo-local config file in the given root.
// It supports .ghostscan.yml/.yaml and ghostscan.yml/.yaml.
func LoadLocal(repoRoot string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".ghostscan.yml", ".ghostscan.yaml", "ghostscan.yml", "ghostscan.yaml"} {
		p := filepath.Join(repoRoot, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or
// ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "ghostscan", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}
