package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/skillctl/skillctl/pkg/presenter"
	"github.com/skillctl/skillctl/pkg/skills"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all discovered skills",
	Long:  `List every skill discovered across the configured registry roots with its name, version, directory, and description.`,
	Run: func(cmd *cobra.Command, _ []string) {
		patterns, _ := cmd.Flags().GetStringSlice("allow")
		listSkillsCmd(patterns)
	},
}

func init() {
	listCmd.Flags().StringSlice("allow", nil, "Only list skills matching these glob patterns")
	rootCmd.AddCommand(listCmd)
}

func listSkillsCmd(patterns []string) {
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

	allSkills, err = skills.FilterByPatterns(allSkills, patterns)
	if err != nil {
		presenter.Error(err, "Invalid allow pattern")
		os.Exit(1)
	}

	if len(allSkills) == 0 {
		presenter.Info("No skills found")
		return
	}

	names := make([]string, 0, len(allSkills))
	for name := range allSkills {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tVERSION\tDIRECTORY\tDESCRIPTION")
	fmt.Fprintln(tw, "----\t-------\t---------\t-----------")

	for _, name := range names {
		skill := allSkills[name]
		description := skill.Description
		if len(description) > 60 {
			description = description[:57] + "..."
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", skill.Name, skill.Version, skill.Directory, description)
	}
	tw.Flush()
}
