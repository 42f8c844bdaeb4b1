package types

import (
	"encoding/json"
	"fmt"
	"time"

	xxhash "github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"
)

// Severity is the ordered risk classification of a finding.
// The zero value is SevLow; ordering follows the integer values,
// so plain < and > comparisons are meaningful.
type Severity int

const (
	SevLow Severity = iota
	SevMed
	SevHigh
)

// ParseSeverity converts a wire string (low|medium|high) into a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "low":
		return SevLow, nil
	case "medium":
		return SevMed, nil
	case "high":
		return SevHigh, nil
	}
	return SevLow, fmt.Errorf("unknown severity %q (want low, medium or high)", s)
}

func (s Severity) String() string {
	switch s {
	case SevMed:
		return "medium"
	case SevHigh:
		return "high"
	default:
		return "low"
	}
}

// Severities lists all severity values in ascending order.
func Severities() []Severity {
	return []Severity{SevLow, SevMed, SevHigh}
}

func (s Severity) MarshalYAML() (any, error) { return s.String(), nil }

func (s *Severity) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseSeverity(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s Severity) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

func (s *Severity) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseSeverity(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ContentUnit is one blob of text to scan: a file from some repository.
// Units are immutable once handed to the engine. Language is inferred
// from the file name at ingestion time and is lowercase ("python",
// "javascript", ...); empty when unknown.
type ContentUnit struct {
	Repository string
	FilePath   string
	Language   string
	Text       string
}

// Hit is a raw matcher result: a byte offset into the content unit's
// text, the 1-based line holding that offset, and the matched text.
type Hit struct {
	Offset  int
	Line    int
	Matched string
}

// Finding is one normalized detection result. IDs are monotonic within
// a single scan run; CreatedAt is the scan's start time, shared by every
// finding of the run. Findings are immutable after creation.
type Finding struct {
	ID         int64     `json:"id"`
	FilePath   string    `json:"filePath"`
	Line       int       `json:"line"`
	Detector   string    `json:"detector"`
	Severity   Severity  `json:"severity"`
	Repository string    `json:"repository"`
	Snippet    string    `json:"snippet,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Fingerprint returns a stable hex key for the finding that does not
// depend on the per-run ID or timestamp. Storage layers can use it to
// correlate findings across scan runs; the engine itself never does.
func (f Finding) Fingerprint() string {
	h := xxhash.New()
	_, _ = h.WriteString(f.Repository)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(f.FilePath)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(f.Detector)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(fmt.Sprintf("%d", f.Line))
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(f.Snippet)
	return fmt.Sprintf("%016x", h.Sum64())
}
