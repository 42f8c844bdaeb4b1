// Package aggregate answers grouped, read-only queries over a finding
// collection: counts by severity, detector and repository, plus
// gap-free time bucketing for charting. Every query is pure and returns
// zero-valued results for empty input.
package aggregate

import (
	"sort"
	"time"

	"github.com/ghostai/ghostscan/internal/types"
)

// RiskThresholds tunes the repository risk bucketing. A repository with
// more than High findings buckets as high, more than Medium as medium,
// anything else as low.
type RiskThresholds struct {
	Medium int
	High   int
}

// DefaultRiskThresholds mirrors the dashboard defaults: >30 high,
// >15 medium, otherwise low.
var DefaultRiskThresholds = RiskThresholds{Medium: 15, High: 30}

// Bucket classifies a finding count.
func (t RiskThresholds) Bucket(count int) types.Severity {
	switch {
	case count > t.High:
		return types.SevHigh
	case count > t.Medium:
		return types.SevMed
	default:
		return types.SevLow
	}
}

// CountBySeverity returns per-severity counts. Every severity key is
// present, zero-valued when absent from the input.
func CountBySeverity(findings []types.Finding) map[types.Severity]int {
	out := make(map[types.Severity]int, 3)
	for _, s := range types.Severities() {
		out[s] = 0
	}
	for _, f := range findings {
		out[f.Severity]++
	}
	return out
}

// CountByDetector returns per-detector counts.
func CountByDetector(findings []types.Finding) map[string]int {
	out := map[string]int{}
	for _, f := range findings {
		out[f.Detector]++
	}
	return out
}

// RepositoryCount is one repository's finding count with its derived
// risk bucket.
type RepositoryCount struct {
	Repository string         `json:"repository"`
	Count      int            `json:"count"`
	Risk       types.Severity `json:"risk"`
}

// CountByRepository returns per-repository counts with risk buckets,
// sorted by repository name for stable display.
func CountByRepository(findings []types.Finding, thresholds RiskThresholds) []RepositoryCount {
	counts := map[string]int{}
	for _, f := range findings {
		counts[f.Repository]++
	}
	out := make([]RepositoryCount, 0, len(counts))
	for repo, n := range counts {
		out = append(out, RepositoryCount{Repository: repo, Count: n, Risk: thresholds.Bucket(n)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Repository < out[j].Repository })
	return out
}

// TimeBucket is one point of the findings time series.
type TimeBucket struct {
	Start time.Time `json:"start"`
	Count int       `json:"count"`
}

// BucketByTime groups findings into fixed-width buckets by CreatedAt,
// ascending, with empty buckets present as zero-count entries so a
// chart over the result never has gaps. A non-positive width or empty
// input yields nil.
func BucketByTime(findings []types.Finding, width time.Duration) []TimeBucket {
	if width <= 0 || len(findings) == 0 {
		return nil
	}
	counts := map[time.Time]int{}
	var first, last time.Time
	for i, f := range findings {
		b := f.CreatedAt.Truncate(width)
		counts[b]++
		if i == 0 || b.Before(first) {
			first = b
		}
		if i == 0 || b.After(last) {
			last = b
		}
	}
	var out []TimeBucket
	for t := first; !t.After(last); t = t.Add(width) {
		out = append(out, TimeBucket{Start: t, Count: counts[t]})
	}
	return out
}

// TrendPoint extends a time bucket with the percentage change against
// the previous bucket.
type TrendPoint struct {
	Start    time.Time `json:"start"`
	Count    int       `json:"count"`
	DeltaPct float64   `json:"deltaPct"`
}

// Trend derives a trend series from BucketByTime. The delta of each
// bucket is its percentage change versus the preceding bucket; the
// first bucket reports 0, and growth from a zero-count bucket reports
// 100.
func Trend(findings []types.Finding, width time.Duration) []TrendPoint {
	buckets := BucketByTime(findings, width)
	if buckets == nil {
		return nil
	}
	out := make([]TrendPoint, len(buckets))
	for i, b := range buckets {
		p := TrendPoint{Start: b.Start, Count: b.Count}
		if i > 0 {
			prev := buckets[i-1].Count
			switch {
			case prev == 0 && b.Count > 0:
				p.DeltaPct = 100
			case prev > 0:
				p.DeltaPct = 100 * float64(b.Count-prev) / float64(prev)
			}
		}
		out[i] = p
	}
	return out
}
