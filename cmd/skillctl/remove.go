package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/skillctl/skillctl/pkg/presenter"
	"github.com/skillctl/skillctl/pkg/skills"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <skill-name>",
	Short: "Remove an installed skill",
	Long: `Remove an installed skill by name.

Examples:
  skillctl remove xmind
  skillctl remove xmind -g`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		global, _ := cmd.Flags().GetBool("global")
		removeSkillCmd(args[0], global)
	},
}

func init() {
	removeCmd.Flags().BoolP("global", "g", false, "Remove from the global ~/.skillctl/skills registry instead of ./skills")
	rootCmd.AddCommand(removeCmd)
}

func removeSkillCmd(name string, global bool) {
	targetDir, err := registryDir(global)
	if err != nil {
		presenter.Error(err, "Failed to determine registry directory")
		os.Exit(1)
	}

	skillDir := filepath.Join(targetDir, name)

	if _, err := os.Stat(filepath.Join(skillDir, skills.ManifestFileName)); os.IsNotExist(err) {
		location := "local"
		if global {
			location = "global"
		}
		presenter.Error(errors.Errorf("skill '%s' not found in %s registry", name, location), "Skill not found")
		os.Exit(1)
	}

	if err := os.RemoveAll(skillDir); err != nil {
		presenter.Error(err, fmt.Sprintf("Failed to remove skill '%s'", name))
		os.Exit(1)
	}

	presenter.Success(fmt.Sprintf("Removed skill '%s' from %s", name, skillDir))
}
