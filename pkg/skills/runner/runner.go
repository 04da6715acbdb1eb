// Package runner invokes skill helper scripts as one-shot subprocesses.
// Every invocation carries a session identifier so scripts can namespace
// the temporary files they create; concurrent invocations with distinct
// sessions never collide.
package runner

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/skillctl/skillctl/pkg/logger"
	"github.com/skillctl/skillctl/pkg/scripts"
	"github.com/skillctl/skillctl/pkg/skills"
)

// Runner executes helper scripts of a skill. It holds no state between
// invocations.
type Runner struct {
	stdout io.Writer
	stderr io.Writer
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput redirects the script's stdout and stderr.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// New creates a Runner writing script output to this process's stdout and
// stderr.
func New(opts ...Option) *Runner {
	r := &Runner{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Invocation describes one script run.
type Invocation struct {
	Skill   *skills.Skill
	Script  string   // script path relative to the skill directory
	Args    []string // extra arguments passed after the session flag
	Session string   // session identifier; generated when empty
}

// Run executes the script through its declared interpreter, injecting
// "--session <id>" ahead of the caller's arguments. It returns the session
// identifier actually used.
func (r *Runner) Run(ctx context.Context, inv Invocation) (string, error) {
	if inv.Skill == nil {
		return "", errors.New("invocation has no skill")
	}

	scriptPath, err := resolveScript(inv.Skill, inv.Script)
	if err != nil {
		return "", err
	}

	info, err := scripts.Inspect(scriptPath)
	if err != nil {
		return "", err
	}
	if info.Binary || !info.HasShebang {
		return "", errors.Errorf("script '%s' does not declare an interpreter", inv.Script)
	}

	session := inv.Session
	if session == "" {
		session = uuid.NewString()
	}

	args := append([]string{scriptPath, "--session", session}, inv.Args...)
	cmd := exec.CommandContext(ctx, info.Interpreter, args...)
	cmd.Dir = inv.Skill.Directory
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	logger.G(ctx).WithFields(map[string]interface{}{
		"skill":       inv.Skill.Name,
		"script":      inv.Script,
		"interpreter": info.Interpreter,
		"session":     session,
	}).Debug("Running skill script")

	if err := cmd.Run(); err != nil {
		return session, errors.Wrapf(err, "script '%s' failed", inv.Script)
	}
	return session, nil
}

// resolveScript checks that the script belongs to the skill and returns
// its absolute path. Paths escaping the skill directory are rejected.
func resolveScript(skill *skills.Skill, script string) (string, error) {
	if script == "" {
		return "", errors.New("no script specified")
	}

	cleaned := filepath.Clean(filepath.FromSlash(script))
	if filepath.IsAbs(cleaned) || strings.HasPrefix(cleaned, "..") {
		return "", errors.Errorf("script path '%s' escapes the skill directory", script)
	}

	known := false
	for _, s := range skill.Scripts {
		if filepath.FromSlash(s) == cleaned {
			known = true
			break
		}
	}
	if !known {
		return "", errors.Errorf("skill '%s' has no script '%s'", skill.Name, script)
	}

	return filepath.Abs(filepath.Join(skill.Directory, cleaned))
}
