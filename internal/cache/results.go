package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/ghostai/ghostscan/internal/types"
)

// ScanResults stores the findings and metadata from the last scan run,
// so aggregate queries (report command) work without rescanning.
type ScanResults struct {
	Findings   []types.Finding `json:"findings"`
	Skipped    []string        `json:"skipped,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
	Repository string          `json:"repository"`
	Count      int             `json:"count"`
}

func resultsPath(root string) string {
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, "ghostscan_last_scan.json")
	}
	return filepath.Join(root, ".ghostscan_last_scan.json")
}

// SaveResults writes the last-scan snapshot for a repo root.
func SaveResults(root, repository string, findings []types.Finding, skipped []string) error {
	results := ScanResults{
		Findings:   findings,
		Skipped:    skipped,
		Timestamp:  time.Now(),
		Repository: repository,
		Count:      len(findings),
	}
	b, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(resultsPath(root), b, 0o644)
}

// LoadResults reads the last-scan snapshot for a repo root.
func LoadResults(root string) (ScanResults, error) {
	var results ScanResults
	b, err := os.ReadFile(resultsPath(root))
	if err != nil {
		return results, err
	}
	if err := json.Unmarshal(b, &results); err != nil {
		return results, err
	}
	return results, nil
}
