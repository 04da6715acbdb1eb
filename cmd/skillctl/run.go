package main

import (
	"fmt"
	"os"

	"github.com/skillctl/skillctl/pkg/presenter"
	"github.com/skillctl/skillctl/pkg/skills/runner"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <skill-name> <script> [args...]",
	Short: "Run a skill's helper script with session isolation",
	Long: `Invoke a helper script through its declared interpreter. A --session
identifier is injected ahead of the script's own arguments so it can
namespace any temporary files it creates; one is generated when not
supplied.

Examples:
  skillctl run xmind scripts/xmind_tool.py parse roadmap.xmind
  skillctl run xmind scripts/xmind_tool.py --session ci-42 parse roadmap.xmind`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		session, _ := cmd.Flags().GetString("session")
		runScriptCmd(cmd, args[0], args[1], args[2:], session)
	},
}

func init() {
	runCmd.Flags().String("session", "", "Session identifier for temp-file isolation (generated when empty)")
	rootCmd.AddCommand(runCmd)
}

func runScriptCmd(cmd *cobra.Command, skillName, script string, args []string, session string) {
	discovery, err := newDiscovery()
	if err != nil {
		presenter.Error(err, "Failed to initialize skill discovery")
		os.Exit(1)
	}

	skill, err := discovery.GetSkill(skillName)
	if err != nil {
		presenter.Error(err, "Skill not found")
		os.Exit(1)
	}

	r := runner.New()
	usedSession, err := r.Run(cmd.Context(), runner.Invocation{
		Skill:   skill,
		Script:  script,
		Args:    args,
		Session: session,
	})
	if err != nil {
		presenter.Error(err, "Script failed")
		os.Exit(1)
	}

	presenter.Success(fmt.Sprintf("Script finished (session %s)", usedSession))
}
