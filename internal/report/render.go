// Package report renders findings and aggregate query results for the
// terminal and for JSON consumers. Severity-to-color mapping lives
// here, on the presentation side; the engine only ever sees typed
// severities.
package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/ghostai/ghostscan/internal/aggregate"
	"github.com/ghostai/ghostscan/internal/types"
)

// PrintOptions controls the findings renderer.
type PrintOptions struct {
	NoColor      bool
	Duration     time.Duration
	UnitsScanned int
}

// PrintFindings writes a columnar findings listing sorted by path and
// line, followed by a severity summary footer.
func PrintFindings(w io.Writer, findings []types.Finding, opts PrintOptions) {
	sorted := make([]types.Finding, len(findings))
	copy(sorted, findings)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].FilePath == sorted[j].FilePath {
			return sorted[i].Line < sorted[j].Line
		}
		return sorted[i].FilePath < sorted[j].FilePath
	})

	if len(sorted) == 0 {
		fmt.Fprintln(w, "No findings ✅")
	} else {
		maxDet := 8
		for _, f := range sorted {
			if l := len(f.Detector); l > maxDet {
				maxDet = l
			}
		}
		fmt.Fprintf(w, "Findings: %d\n", len(sorted))
		for _, f := range sorted {
			sev := f.Severity.String()
			if !opts.NoColor {
				sev = colorSeverity(f.Severity)
			}
			fmt.Fprintf(w, "%-6s %-*s %s:%d  %s\n", sev, maxDet, f.Detector, f.FilePath, f.Line, oneLine(f.Snippet))
		}
	}

	bySev := aggregate.CountBySeverity(sorted)
	if opts.Duration > 0 || opts.UnitsScanned > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Findings: %d (high: %d, medium: %d, low: %d)\n",
			len(sorted), bySev[types.SevHigh], bySev[types.SevMed], bySev[types.SevLow])
		if opts.Duration > 0 {
			fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
		}
		if opts.UnitsScanned > 0 {
			fmt.Fprintf(w, "Units scanned: %d\n", opts.UnitsScanned)
		}
	}
}

// PrintSkipped lists units that could not be evaluated.
func PrintSkipped(w io.Writer, skipped []string) {
	if len(skipped) == 0 {
		return
	}
	fmt.Fprintf(w, "Skipped %d unit(s):\n", len(skipped))
	for _, p := range skipped {
		fmt.Fprintf(w, "  %s\n", p)
	}
}

func oneLine(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' {
			r = ' '
		}
		out = append(out, r)
	}
	const max = 80
	if len(out) > max {
		out = append(out[:max-1], '…')
	}
	return string(out)
}

func colorSeverity(s types.Severity) string {
	switch s {
	case types.SevHigh:
		return "\x1b[31mhigh\x1b[0m"
	case types.SevMed:
		return "\x1b[33mmedium\x1b[0m"
	default:
		return "\x1b[32mlow\x1b[0m"
	}
}
