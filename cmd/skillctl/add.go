package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/skillctl/skillctl/pkg/presenter"
	"github.com/skillctl/skillctl/pkg/skills"
	"github.com/skillctl/skillctl/pkg/skills/validate"
	"github.com/spf13/cobra"
)

type AddConfig struct {
	Global bool
	Dir    string
	Force  bool
}

func NewAddConfig() *AddConfig {
	return &AddConfig{
		Global: false,
		Dir:    "",
		Force:  false,
	}
}

var addCmd = &cobra.Command{
	Use:   "add <repo>",
	Short: "Add skills from a GitHub repository",
	Long: `Add skills from a GitHub repository into a registry root. The
repository should contain directories with SKILL.md files. Each skill is
validated against the registry contract before install; failing skills
are skipped unless --force is given.

  - A repo: orgname/skills (adds all skills)
  - A repo with specific skill: orgname/skills --dir skills/xmind
  - A repo with version: orgname/skills@v0.1.0 (adds from specific tag/branch/sha)

Examples:
  skillctl add orgname/skills
  skillctl add orgname/skills --dir skills/xmind
  skillctl add orgname/skills@main -g`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config := getAddConfigFromFlags(cmd)
		addSkillCmd(args[0], config)
	},
}

func init() {
	defaults := NewAddConfig()
	addCmd.Flags().BoolP("global", "g", defaults.Global, "Install to the global ~/.skillctl/skills registry instead of ./skills")
	addCmd.Flags().StringP("dir", "d", defaults.Dir, "Path to a specific skill directory within the repository")
	addCmd.Flags().Bool("force", defaults.Force, "Install skills even when they fail validation")
	rootCmd.AddCommand(addCmd)
}

func getAddConfigFromFlags(cmd *cobra.Command) *AddConfig {
	config := NewAddConfig()
	if global, err := cmd.Flags().GetBool("global"); err == nil {
		config.Global = global
	}
	if dir, err := cmd.Flags().GetString("dir"); err == nil {
		config.Dir = dir
	}
	if force, err := cmd.Flags().GetBool("force"); err == nil {
		config.Force = force
	}
	return config
}

func registryDir(global bool) (string, error) {
	if global {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "failed to get user home directory")
		}
		return filepath.Join(homeDir, ".skillctl", "skills"), nil
	}
	return "./skills", nil
}

func addSkillCmd(repo string, config *AddConfig) {
	if !isGhCliInstalled() {
		presenter.Error(errors.New("gh CLI is not installed"), "Please install the GitHub CLI (gh) to use this command")
		os.Exit(1)
	}

	repoName, ref := parseRepoAndRef(repo)

	tmpDir, err := os.MkdirTemp("", "skillctl-add-*")
	if err != nil {
		presenter.Error(err, "Failed to create temporary directory")
		os.Exit(1)
	}
	defer os.RemoveAll(tmpDir)

	cloneArgs := []string{"repo", "clone", repoName, tmpDir}
	if ref != "" {
		cloneArgs = append(cloneArgs, "--", "--branch", ref, "--single-branch")
	}

	cmd := exec.Command("gh", cloneArgs...)
	if output, err := cmd.CombinedOutput(); err != nil {
		presenter.Error(errors.Wrapf(err, "output: %s", string(output)), "Failed to clone repository")
		os.Exit(1)
	}

	targetDir, err := registryDir(config.Global)
	if err != nil {
		presenter.Error(err, "Failed to determine registry directory")
		os.Exit(1)
	}

	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		presenter.Error(err, "Failed to create registry directory")
		os.Exit(1)
	}

	var skillDirs []string
	if config.Dir != "" {
		candidate := filepath.Join(tmpDir, config.Dir)
		if _, err := os.Stat(filepath.Join(candidate, skills.ManifestFileName)); os.IsNotExist(err) {
			presenter.Error(errors.Errorf("no %s found at %s", skills.ManifestFileName, config.Dir), "Invalid skill path")
			os.Exit(1)
		}
		skillDirs = []string{candidate}
	} else {
		skillDirs, err = findSkillDirs(tmpDir)
		if err != nil {
			presenter.Error(err, "Failed to find skills in repository")
			os.Exit(1)
		}
	}

	if len(skillDirs) == 0 {
		presenter.Warning("No skills found in the repository")
		return
	}

	installed := 0
	for _, dir := range skillDirs {
		skillName := filepath.Base(dir)
		destDir := filepath.Join(targetDir, skillName)

		if _, err := os.Stat(destDir); err == nil {
			presenter.Warning(fmt.Sprintf("Skill '%s' already exists, skipping", skillName))
			continue
		}

		if report := validate.Skill(dir); !report.Pass() {
			if !config.Force {
				presenter.Warning(fmt.Sprintf("Skill '%s' fails validation, skipping: %v", skillName, report.Err()))
				continue
			}
			presenter.Warning(fmt.Sprintf("Skill '%s' fails validation, installing anyway (--force)", skillName))
		}

		if err := copyDir(dir, destDir); err != nil {
			presenter.Error(err, fmt.Sprintf("Failed to install skill '%s'", skillName))
			continue
		}

		installed++
		presenter.Success(fmt.Sprintf("Installed skill '%s' to %s", skillName, destDir))
	}

	if installed > 0 {
		presenter.Info(fmt.Sprintf("Successfully installed %d skill(s)", installed))
	}
}

func isGhCliInstalled() bool {
	_, err := exec.LookPath("gh")
	return err == nil
}

func parseRepoAndRef(repo string) (string, string) {
	if idx := strings.LastIndex(repo, "@"); idx != -1 {
		return repo[:idx], repo[idx+1:]
	}
	return repo, ""
}

func findSkillDirs(root string) ([]string, error) {
	var skillDirs []string

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() && (info.Name() == ".git" || info.Name() == "node_modules") {
			return filepath.SkipDir
		}

		if !info.IsDir() && info.Name() == skills.ManifestFileName {
			skillDirs = append(skillDirs, filepath.Dir(path))
		}

		return nil
	})

	return skillDirs, err
}

func copyDir(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		destPath := filepath.Join(dst, relPath)

		if info.IsDir() {
			return os.MkdirAll(destPath, info.Mode())
		}

		return copyFile(path, destPath)
	})
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode())
	if err != nil {
		return err
	}
	defer dstFile.Close()

	_, err = io.Copy(dstFile, srcFile)
	return err
}
