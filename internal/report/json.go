package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/ghostai/ghostscan/internal/aggregate"
	"github.com/ghostai/ghostscan/internal/types"
)

// Envelope is the JSON output shape of a scan: the findings plus the
// aggregate views the dashboard consumes, in one document.
type Envelope struct {
	Repository string          `json:"repository"`
	ScannedAt  time.Time       `json:"scannedAt"`
	Findings   []types.Finding `json:"findings"`
	Skipped    []string        `json:"skipped,omitempty"`
	Cancelled  bool            `json:"cancelled,omitempty"`

	BySeverity   map[string]int              `json:"bySeverity"`
	ByDetector   map[string]int              `json:"byDetector"`
	ByRepository []aggregate.RepositoryCount `json:"byRepository"`
}

// NewEnvelope assembles the JSON envelope for a finding collection.
func NewEnvelope(repository string, scannedAt time.Time, findings []types.Finding, skipped []string, cancelled bool) Envelope {
	bySev := map[string]int{}
	for sev, n := range aggregate.CountBySeverity(findings) {
		bySev[sev.String()] = n
	}
	return Envelope{
		Repository:   repository,
		ScannedAt:    scannedAt,
		Findings:     findings,
		Skipped:      skipped,
		Cancelled:    cancelled,
		BySeverity:   bySev,
		ByDetector:   aggregate.CountByDetector(findings),
		ByRepository: aggregate.CountByRepository(findings, aggregate.DefaultRiskThresholds),
	}
}

// WriteJSON emits the envelope as indented JSON.
func WriteJSON(w io.Writer, env Envelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}
