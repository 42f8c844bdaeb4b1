package ghostscan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ghostai/ghostscan/internal/cache"
	"github.com/ghostai/ghostscan/internal/config"
	"github.com/ghostai/ghostscan/internal/corpus"
	"github.com/ghostai/ghostscan/internal/engine"
	"github.com/ghostai/ghostscan/internal/report"
	"github.com/ghostai/ghostscan/internal/rules"
	"github.com/ghostai/ghostscan/internal/types"
	"github.com/spf13/cobra"
)

var (
	flagPath        string
	flagRepo        string
	flagRules       string
	flagInclude     string
	flagExclude     string
	flagMaxBytes    int64
	flagSeverity    string
	flagDetector    string
	flagIncremental bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a repository's content against the rule set",
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "path to scan")
	cmd.Flags().StringVar(&flagRepo, "repo", "", "repository name for override resolution (default: base of path)")
	cmd.Flags().StringVar(&flagRules, "rules", "", "path to the rule configuration YAML (default: built-in rules)")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 1<<20, "skip files larger than this")
	cmd.Flags().StringVar(&flagSeverity, "severity", "", "only report findings of this severity (low|medium|high)")
	cmd.Flags().StringVar(&flagDetector, "detector", "", "only report findings from this rule")
	cmd.Flags().BoolVar(&flagIncremental, "incremental", false, "skip files unchanged since the previous scan")
}

func runScan(cmd *cobra.Command, _ []string) error {
	abs, _ := filepath.Abs(flagPath)

	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(abs); err == nil {
		lcfg = c
	}

	set, err := loadRuleSet(pickString(flagRules, lcfg.Rules, gcfg.Rules), abs)
	if err != nil {
		return err
	}

	repo := pickString(flagRepo, lcfg.Repository, gcfg.Repository)
	if repo == "" {
		repo = filepath.Base(abs)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := corpus.Options{
		Root:            abs,
		Repository:      repo,
		IncludeGlobs:    pickString(flagInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs:    pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		MaxBytes:        pickInt64(flagMaxBytes, 1<<20, lcfg.MaxBytes, gcfg.MaxBytes),
		DefaultExcludes: true,
	}

	var db cache.DB
	updated := map[string]string{}
	if flagIncremental && !flagNoCache {
		db, _ = cache.Load(abs)
		opts.Skip = func(rel string, data []byte) bool {
			h := cache.Hash(data)
			updated[rel] = h
			return db.Entries[rel] == h
		}
	}

	units, err := corpus.Collect(ctx, opts)
	if err != nil && ctx.Err() == nil {
		return err
	}

	ecfg := engine.Config{
		Threads:       pickInt(flagThreads, lcfg.Threads, gcfg.Threads),
		SnippetRadius: pickInt(0, lcfg.SnippetRadius, gcfg.SnippetRadius),
	}
	res, err := engine.Scan(ctx, ecfg, set, repo, units)
	if err != nil && !errors.Is(err, engine.ErrCancelled) {
		return err
	}

	findings, err := filterFindings(res.Findings)
	if err != nil {
		return err
	}

	var skipped []string
	for _, ue := range res.UnitErrors {
		skipped = append(skipped, ue.FilePath)
	}

	noColor := flagNoColor || pickBool(false, lcfg.NoColor, gcfg.NoColor)
	if flagJSON {
		env := report.NewEnvelope(repo, time.Now(), findings, skipped, res.Cancelled)
		if err := report.WriteJSON(os.Stdout, env); err != nil {
			return err
		}
	} else {
		report.PrintFindings(os.Stdout, findings, report.PrintOptions{
			NoColor:      noColor,
			Duration:     res.Duration,
			UnitsScanned: res.UnitsScanned,
		})
		report.PrintSkipped(os.Stderr, skipped)
		if res.Cancelled {
			fmt.Fprintln(os.Stderr, "scan cancelled; results are partial")
		}
	}

	// persist state for report/incremental runs, unless we were cut short
	if !res.Cancelled {
		_ = cache.SaveResults(abs, repo, findings, skipped)
		if flagIncremental && !flagNoCache {
			if db.Entries == nil {
				db.Entries = map[string]string{}
			}
			for k, v := range updated {
				db.Entries[k] = v
			}
			_ = cache.Save(abs, db)
		}
	}

	return exitOnFailures(findings)
}

// loadRuleSet reads the rule document from path (relative paths resolve
// against the scan root), or falls back to the built-in defaults.
func loadRuleSet(path, root string) (*rules.RuleSet, error) {
	if path == "" {
		return rules.Default(), nil
	}
	if !filepath.IsAbs(path) {
		if _, err := os.Stat(path); err != nil {
			path = filepath.Join(root, path)
		}
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule config: %w", err)
	}
	return rules.Load(b)
}

func filterFindings(fs []types.Finding) ([]types.Finding, error) {
	if flagSeverity == "" && flagDetector == "" {
		return fs, nil
	}
	var wantSev types.Severity
	if flagSeverity != "" {
		s, err := types.ParseSeverity(flagSeverity)
		if err != nil {
			return nil, fmt.Errorf("invalid --severity: %w", err)
		}
		wantSev = s
	}
	var out []types.Finding
	for _, f := range fs {
		if flagSeverity != "" && f.Severity != wantSev {
			continue
		}
		if flagDetector != "" && f.Detector != flagDetector {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

// exitOnFailures maps the fail-on threshold to a non-zero exit code so
// CI gates can consume scan results directly.
func exitOnFailures(fs []types.Finding) error {
	threshold, err := types.ParseSeverity(flagFailOn)
	if err != nil {
		return err
	}
	for _, f := range fs {
		if f.Severity >= threshold {
			os.Exit(1)
		}
	}
	return nil
}
