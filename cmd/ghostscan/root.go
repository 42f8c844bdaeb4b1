package ghostscan

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagJSON    bool
	flagThreads int
	flagNoColor bool
	flagFailOn  string
	flagNoCache bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the ghostscan CLI.
var rootCmd = &cobra.Command{
	Use:           "ghostscan",
	Short:         "Scan repositories against configurable security rules",
	Long:          "Ghostscan evaluates YAML-defined security rules (secrets, PII, prompt injection, risky code) against repository content and reports normalized findings with severity classification.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the ghostscan CLI. It should be called by the main
// package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().IntVar(&flagThreads, "threads", 0, "worker count (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().StringVar(&flagFailOn, "fail-on", "high", "exit non-zero when findings at or above low|medium|high exist")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "disable the incremental content cache")
}
