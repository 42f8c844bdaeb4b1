package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/ghostai/ghostscan/internal/aggregate"
	"github.com/ghostai/ghostscan/internal/types"
	"github.com/olekukonko/tablewriter"
)

// PrintSeverityTable renders the severity breakdown, highest first.
func PrintSeverityTable(w io.Writer, findings []types.Finding) error {
	counts := aggregate.CountBySeverity(findings)
	table := tablewriter.NewWriter(w)
	table.Header("Severity", "Count")
	sevs := types.Severities()
	for i := len(sevs) - 1; i >= 0; i-- {
		if err := table.Append([]string{sevs[i].String(), fmt.Sprintf("%d", counts[sevs[i]])}); err != nil {
			return err
		}
	}
	return table.Render()
}

// PrintDetectorTable renders per-detector counts, sorted by count
// descending then name.
func PrintDetectorTable(w io.Writer, findings []types.Finding) error {
	counts := aggregate.CountByDetector(findings)
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	table := tablewriter.NewWriter(w)
	table.Header("Detector", "Count")
	for _, name := range names {
		if err := table.Append([]string{name, fmt.Sprintf("%d", counts[name])}); err != nil {
			return err
		}
	}
	return table.Render()
}

// PrintRepositoryTable renders per-repository counts with their risk
// bucket.
func PrintRepositoryTable(w io.Writer, findings []types.Finding, thresholds aggregate.RiskThresholds) error {
	table := tablewriter.NewWriter(w)
	table.Header("Repository", "Findings", "Risk")
	for _, rc := range aggregate.CountByRepository(findings, thresholds) {
		if err := table.Append([]string{rc.Repository, fmt.Sprintf("%d", rc.Count), rc.Risk.String()}); err != nil {
			return err
		}
	}
	return table.Render()
}

// PrintTimeline renders the gap-free time series with trend deltas.
func PrintTimeline(w io.Writer, findings []types.Finding, width time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header("Bucket", "Findings", "Trend")
	for _, p := range aggregate.Trend(findings, width) {
		if err := table.Append([]string{
			p.Start.Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", p.Count),
			fmt.Sprintf("%+.1f%%", p.DeltaPct),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}
