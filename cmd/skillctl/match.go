package main

import (
	"fmt"
	"os"

	"github.com/skillctl/skillctl/pkg/presenter"
	"github.com/skillctl/skillctl/pkg/skills"
	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match <query words...>",
	Short: "Preview which skills a task description would trigger",
	Long: `Rank skills by word overlap between the query and each skill's
description, the way a host picks a skill for a task. This is a local
preview; the actual selection is owned by the host.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		matchSkillsCmd(args)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)
}

func matchSkillsCmd(query []string) {
	discovery, err := newDiscovery()
	if err != nil {
		presenter.Error(err, "Failed to initialize skill discovery")
		os.Exit(1)
	}

	allSkills, err := discovery.DiscoverSkills()
	if err != nil {
		presenter.Error(err, "Failed to discover skills")
		os.Exit(1)
	}

	results := skills.Match(allSkills, query)
	if len(results) == 0 {
		presenter.Info("No skills match the query")
		return
	}

	for _, result := range results {
		presenter.Info(fmt.Sprintf("%-20s score=%d  %s", result.Skill.Name, result.Score, result.Skill.Description))
	}
}
