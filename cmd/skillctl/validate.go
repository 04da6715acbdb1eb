package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/skillctl/skillctl/pkg/presenter"
	"github.com/skillctl/skillctl/pkg/skills/validate"
	"github.com/spf13/cobra"
)

type ValidateConfig struct {
	Dir  string
	JSON bool
}

func NewValidateConfig() *ValidateConfig {
	return &ValidateConfig{
		Dir:  "",
		JSON: false,
	}
}

var validateCmd = &cobra.Command{
	Use:   "validate [registry]",
	Short: "Validate skills against the registry contract",
	Long: `Validate every skill under a registry root (default ./skills), or a
single skill directory with --dir. Checks manifest presence, frontmatter
fields, name/directory agreement, semantic versioning, and the helper
script contract (interpreter declaration, standard-library-only imports).

Validation is per-skill: one broken skill is reported without failing the
rest. The command exits non-zero when any skill fails, so it can gate a
publishing step.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config := getValidateConfigFromFlags(cmd)

		if config.Dir != "" {
			report := validate.Skill(config.Dir)
			summary := &validate.Summary{Reports: []validate.Report{*report}}
			printSummary(summary, config.JSON)
			if !summary.Pass() {
				os.Exit(1)
			}
			return
		}

		root := "./skills"
		if len(args) > 0 {
			root = args[0]
		}

		summary, err := validate.Registry(root)
		if err != nil {
			presenter.Error(err, "Failed to validate registry")
			os.Exit(1)
		}

		printSummary(summary, config.JSON)
		if !summary.Pass() {
			os.Exit(1)
		}
	},
}

func init() {
	defaults := NewValidateConfig()
	validateCmd.Flags().StringP("dir", "d", defaults.Dir, "Validate a single skill directory instead of a registry root")
	validateCmd.Flags().Bool("json", defaults.JSON, "Emit the report as JSON")
	rootCmd.AddCommand(validateCmd)
}

func getValidateConfigFromFlags(cmd *cobra.Command) *ValidateConfig {
	config := NewValidateConfig()
	if dir, err := cmd.Flags().GetString("dir"); err == nil {
		config.Dir = dir
	}
	if jsonOut, err := cmd.Flags().GetBool("json"); err == nil {
		config.JSON = jsonOut
	}
	return config
}

func printSummary(summary *validate.Summary, asJSON bool) {
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(summary)
		return
	}

	for i := range summary.Reports {
		report := &summary.Reports[i]
		if report.Pass() {
			presenter.Success(fmt.Sprintf("%s: pass", report.Skill))
			continue
		}

		presenter.Warning(fmt.Sprintf("%s: %d violation(s)", report.Skill, len(report.Violations)))
		for _, v := range report.Violations {
			presenter.Info(fmt.Sprintf("  %s", v))
		}
	}

	presenter.Separator()
	if summary.Pass() {
		presenter.Success(fmt.Sprintf("%d skill(s) validated, all passing", len(summary.Reports)))
	} else {
		presenter.Warning(fmt.Sprintf("%d of %d skill(s) failed validation", summary.Failed(), len(summary.Reports)))
	}
}
