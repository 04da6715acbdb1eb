package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/skillctl/skillctl/pkg/commitmsg"
	"github.com/skillctl/skillctl/pkg/presenter"
	"github.com/spf13/cobra"
)

var commitCheckCmd = &cobra.Command{
	Use:   "commit-check [message]",
	Short: "Check a commit message against the commit convention",
	Long: `Check a commit message against the '<type>[(scope)]: <message>'
convention used by the commit skill. The message is taken from the
argument, from --file (for use as a commit-msg git hook), or from stdin.

Examples:
  skillctl commit-check "feat(xmind): support legacy format"
  skillctl commit-check --file .git/COMMIT_EDITMSG
  git log -1 --format=%B | skillctl commit-check`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		file, _ := cmd.Flags().GetString("file")
		commitCheckCmdRun(args, file)
	},
}

func init() {
	commitCheckCmd.Flags().StringP("file", "f", "", "Read the commit message from a file")
	rootCmd.AddCommand(commitCheckCmd)
}

func commitCheckCmdRun(args []string, file string) {
	raw, err := readCommitMessage(args, file)
	if err != nil {
		presenter.Error(err, "Failed to read commit message")
		os.Exit(1)
	}

	msg, err := commitmsg.Parse(raw)
	if err != nil {
		presenter.Error(err, "Commit message rejected")
		presenter.Info(fmt.Sprintf("Allowed types: %s", strings.Join(commitmsg.Types(), ", ")))
		os.Exit(1)
	}

	summary := msg.Type
	if msg.Scope != "" {
		summary += "(" + msg.Scope + ")"
	}
	presenter.Success(fmt.Sprintf("Commit message conforms (%s)", summary))
}

func readCommitMessage(args []string, file string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	if len(args) > 0 {
		return args[0], nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
