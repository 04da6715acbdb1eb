package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/skillctl/skillctl/pkg/presenter"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <skill-name>",
	Short: "Show a skill's metadata and instructions",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		showSkillCmd(args[0])
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func showSkillCmd(name string) {
	discovery, err := newDiscovery()
	if err != nil {
		presenter.Error(err, "Failed to initialize skill discovery")
		os.Exit(1)
	}

	skill, err := discovery.GetSkill(name)
	if err != nil {
		presenter.Error(err, "Skill not found")
		os.Exit(1)
	}

	presenter.Section(skill.Name)
	presenter.Info(fmt.Sprintf("Version:     %s", skill.Version))
	presenter.Info(fmt.Sprintf("Directory:   %s", skill.Directory))
	presenter.Info(fmt.Sprintf("Description: %s", skill.Description))
	if len(skill.Scripts) > 0 {
		presenter.Info(fmt.Sprintf("Scripts:     %s", strings.Join(skill.Scripts, ", ")))
	}

	if strings.TrimSpace(skill.Content) != "" {
		presenter.Separator()
		fmt.Println(strings.TrimSpace(skill.Content))
	}
}
