package ghostscan

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ghostai/ghostscan/internal/aggregate"
	"github.com/ghostai/ghostscan/internal/cache"
	"github.com/ghostai/ghostscan/internal/config"
	"github.com/ghostai/ghostscan/internal/report"
	"github.com/spf13/cobra"
)

var (
	flagReportPath  string
	flagBucketWidth time.Duration
)

func init() {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Aggregate queries over the last scan's findings",
		Long:  "Report renders severity, detector, repository and timeline breakdowns from the most recent scan of the given path.",
		RunE:  runReport,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagReportPath, "path", "p", ".", "repository root whose last scan to report on")
	cmd.Flags().DurationVar(&flagBucketWidth, "bucket-width", 24*time.Hour, "time bucket width for the timeline")
}

func runReport(cmd *cobra.Command, _ []string) error {
	abs, _ := filepath.Abs(flagReportPath)

	results, err := cache.LoadResults(abs)
	if err != nil {
		return fmt.Errorf("no previous scan results for %s (run `ghostscan scan` first): %w", abs, err)
	}

	thresholds := aggregate.DefaultRiskThresholds
	width := flagBucketWidth
	if lcfg, err := config.LoadLocal(abs); err == nil {
		if lcfg.RiskMedium != nil {
			thresholds.Medium = *lcfg.RiskMedium
		}
		if lcfg.RiskHigh != nil {
			thresholds.High = *lcfg.RiskHigh
		}
		if lcfg.BucketWidth != nil && !cmd.Flags().Changed("bucket-width") {
			if d, err := time.ParseDuration(*lcfg.BucketWidth); err == nil {
				width = d
			}
		}
	}

	if flagJSON {
		env := report.NewEnvelope(results.Repository, results.Timestamp, results.Findings, results.Skipped, false)
		return report.WriteJSON(os.Stdout, env)
	}

	fmt.Printf("Last scan of %s: %d finding(s) at %s\n\n",
		results.Repository, results.Count, results.Timestamp.Format(time.RFC3339))

	if err := report.PrintSeverityTable(os.Stdout, results.Findings); err != nil {
		return err
	}
	if err := report.PrintDetectorTable(os.Stdout, results.Findings); err != nil {
		return err
	}
	if err := report.PrintRepositoryTable(os.Stdout, results.Findings, thresholds); err != nil {
		return err
	}
	if len(results.Findings) > 0 {
		if err := report.PrintTimeline(os.Stdout, results.Findings, width); err != nil {
			return err
		}
	}
	report.PrintSkipped(os.Stderr, results.Skipped)
	return nil
}
