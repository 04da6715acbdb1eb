// Command skillctl manages and validates a registry of agent skills:
// directories holding a SKILL.md manifest and optional helper scripts.
package main

import (
	"fmt"
	"os"

	"github.com/skillctl/skillctl/pkg/logger"
	"github.com/skillctl/skillctl/pkg/presenter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	viper.SetEnvPrefix("SKILLCTL")
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.skillctl")
	viper.AddConfigPath(".")

	// Config file is optional
	_ = viper.ReadInConfig()
}

var rootCmd = &cobra.Command{
	Use:   "skillctl",
	Short: "Manage and validate agent skill registries",
	Long: `skillctl works with skill registries: directories where every
subdirectory is one skill, identified by a SKILL.md manifest with YAML
frontmatter (name, description, version) and free-text instructions,
plus optional standard-library-only helper scripts.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := logger.SetLogLevel(viper.GetString("log_level")); err != nil {
			return err
		}
		logger.SetLogFormat(viper.GetString("log_format"))
		presenter.SetQuiet(viper.GetBool("quiet"))
		return nil
	},
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

func main() {
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-error output")
	rootCmd.PersistentFlags().StringSlice("registry", nil, "Registry roots to search (overrides defaults)")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	viper.BindPFlag("registries", rootCmd.PersistentFlags().Lookup("registry"))

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
