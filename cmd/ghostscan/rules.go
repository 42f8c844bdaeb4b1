package ghostscan

import (
	"fmt"
	"os"
	"strings"

	"github.com/ghostai/ghostscan/internal/rulegen"
	"github.com/ghostai/ghostscan/internal/rules"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func init() {
	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect, validate and generate rule configuration",
	}
	rootCmd.AddCommand(rulesCmd)

	validateCmd := &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate a rule configuration document",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRulesValidate,
	}
	rulesCmd.AddCommand(validateCmd)

	generateCmd := &cobra.Command{
		Use:   "generate <description>",
		Short: "Generate a candidate rule from a plain-text policy description",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runRulesGenerate,
	}
	rulesCmd.AddCommand(generateCmd)

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the built-in default rule configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Print(rules.DefaultConfig)
			return nil
		},
	}
	rulesCmd.AddCommand(showCmd)
}

func runRulesValidate(cmd *cobra.Command, args []string) error {
	data := []byte(rules.DefaultConfig)
	source := "built-in defaults"
	if len(args) == 1 {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		data = b
		source = args[0]
	}

	set, err := rules.Load(data)
	if err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}

	enabled := 0
	for _, r := range set.Rules() {
		if r.Enabled {
			enabled++
		}
	}
	fmt.Printf("%s: ok (%d rules, %d enabled, overrides for %d repositories)\n",
		source, set.Len(), enabled, len(set.OverriddenRepositories()))
	return nil
}

func runRulesGenerate(cmd *cobra.Command, args []string) error {
	prompt := strings.Join(args, " ")

	var gen rulegen.Generator = rulegen.HeuristicGenerator{}
	spec, err := gen.Generate(cmd.Context(), prompt)
	if err != nil {
		return err
	}

	// the candidate must survive the same gate as hand-written rules
	if err := rulegen.Accept(rules.NewRuleSet(), spec); err != nil {
		return fmt.Errorf("generated rule failed validation: %w", err)
	}

	out, err := yaml.Marshal([]rules.RuleSpec{spec})
	if err != nil {
		return err
	}
	fmt.Println("# append under the top-level `rules:` key")
	fmt.Print(string(out))
	return nil
}
