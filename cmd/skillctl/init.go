package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/skillctl/skillctl/pkg/presenter"
	"github.com/skillctl/skillctl/pkg/skills"
	"github.com/spf13/cobra"
)

type InitConfig struct {
	Registry    string
	Description string
	Scripts     bool
}

func NewInitConfig() *InitConfig {
	return &InitConfig{
		Registry:    "./skills",
		Description: "",
		Scripts:     false,
	}
}

var initCmd = &cobra.Command{
	Use:   "init <skill-name>",
	Short: "Scaffold a new skill directory",
	Long: `Create skills/<name>/SKILL.md with valid frontmatter at version 0.1.0,
and optionally a scripts/ directory with a starter script.

Examples:
  skillctl init commit-push
  skillctl init xmind --scripts --description "Convert XMind files"`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config := getInitConfigFromFlags(cmd)
		initSkillCmd(args[0], config)
	},
}

func init() {
	defaults := NewInitConfig()
	initCmd.Flags().StringP("registry", "r", defaults.Registry, "Registry root to create the skill in")
	initCmd.Flags().String("description", defaults.Description, "Initial description for the manifest")
	initCmd.Flags().Bool("scripts", defaults.Scripts, "Also create a scripts/ directory with a starter script")
	rootCmd.AddCommand(initCmd)
}

func getInitConfigFromFlags(cmd *cobra.Command) *InitConfig {
	config := NewInitConfig()
	if registry, err := cmd.Flags().GetString("registry"); err == nil {
		config.Registry = registry
	}
	if description, err := cmd.Flags().GetString("description"); err == nil {
		config.Description = description
	}
	if scripts, err := cmd.Flags().GetBool("scripts"); err == nil {
		config.Scripts = scripts
	}
	return config
}

func initSkillCmd(name string, config *InitConfig) {
	if err := checkSkillName(name); err != nil {
		presenter.Error(err, "Invalid skill name")
		os.Exit(1)
	}

	dir := filepath.Join(config.Registry, name)
	if _, err := os.Stat(filepath.Join(dir, skills.ManifestFileName)); err == nil {
		presenter.Error(errors.Errorf("skill '%s' already exists at %s", name, dir), "Refusing to overwrite")
		os.Exit(1)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		presenter.Error(err, "Failed to create skill directory")
		os.Exit(1)
	}

	description := config.Description
	if description == "" {
		description = fmt.Sprintf("Describe when the host should use the %s skill", name)
	}

	manifest := fmt.Sprintf(`---
name: %s
description: %s
version: 0.1.0
---

# %s

## When to use

## Instructions
`, name, description, name)

	if err := os.WriteFile(filepath.Join(dir, skills.ManifestFileName), []byte(manifest), 0o644); err != nil {
		presenter.Error(err, "Failed to write manifest")
		os.Exit(1)
	}

	if config.Scripts {
		scriptsDir := filepath.Join(dir, skills.ScriptsDirName)
		if err := os.MkdirAll(scriptsDir, 0o755); err != nil {
			presenter.Error(err, "Failed to create scripts directory")
			os.Exit(1)
		}

		starter := `#!/usr/bin/env python3
"""Helper script. Standard library only; accept --session <id> and keep
any temporary files under a session-specific directory."""

import argparse
import sys


def main():
    parser = argparse.ArgumentParser()
    parser.add_argument("--session", required=True)
    args = parser.parse_args()
    print(f"session {args.session}", file=sys.stderr)


if __name__ == "__main__":
    main()
`
		scriptPath := filepath.Join(scriptsDir, "tool.py")
		if err := os.WriteFile(scriptPath, []byte(starter), 0o755); err != nil {
			presenter.Error(err, "Failed to write starter script")
			os.Exit(1)
		}
	}

	presenter.Success(fmt.Sprintf("Created skill '%s' at %s", name, dir))
}

// checkSkillName enforces directory-safe skill names: lowercase letters,
// digits, and hyphens, starting with a letter.
func checkSkillName(name string) error {
	if name == "" {
		return errors.New("name is empty")
	}
	if name[0] < 'a' || name[0] > 'z' {
		return errors.Errorf("name '%s' must start with a lowercase letter", name)
	}
	for _, r := range name {
		if r != '-' && (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return errors.Errorf("name '%s' may only contain lowercase letters, digits, and hyphens", name)
		}
	}
	if strings.HasSuffix(name, "-") || strings.Contains(name, "--") {
		return errors.Errorf("name '%s' has a dangling or doubled hyphen", name)
	}
	return nil
}
