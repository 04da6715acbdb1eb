package runner

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillctl/skillctl/pkg/skills"
)

func newTestSkill(t *testing.T, scriptName, scriptContent string) *skills.Skill {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "echoer")
	scriptsDir := filepath.Join(dir, skills.ScriptsDirName)
	require.NoError(t, os.MkdirAll(scriptsDir, 0o755))

	manifest := "---\nname: echoer\ndescription: echoes its arguments\nversion: 1.0.0\n---\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, skills.ManifestFileName), []byte(manifest), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(scriptsDir, scriptName), []byte(scriptContent), 0o755))

	skill, err := skills.LoadSkill(dir)
	require.NoError(t, err)
	return skill
}

func TestRunInjectsSession(t *testing.T) {
	skill := newTestSkill(t, "echo.sh", "#!/bin/sh\necho \"$@\"\n")

	var out bytes.Buffer
	r := New(WithOutput(&out, &out))

	session, err := r.Run(context.Background(), Invocation{
		Skill:  skill,
		Script: "scripts/echo.sh",
		Args:   []string{"parse", "map.xmind"},
	})
	require.NoError(t, err)

	_, err = uuid.Parse(session)
	require.NoError(t, err, "generated session should be a UUID")

	assert.Contains(t, out.String(), "--session "+session+" parse map.xmind")
}

func TestRunKeepsCallerSession(t *testing.T) {
	skill := newTestSkill(t, "echo.sh", "#!/bin/sh\necho \"$@\"\n")

	var out bytes.Buffer
	r := New(WithOutput(&out, &out))

	session, err := r.Run(context.Background(), Invocation{
		Skill:   skill,
		Script:  "scripts/echo.sh",
		Session: "session-42",
	})
	require.NoError(t, err)
	assert.Equal(t, "session-42", session)
	assert.Contains(t, out.String(), "--session session-42")
}

func TestRunFailingScript(t *testing.T) {
	skill := newTestSkill(t, "fail.sh", "#!/bin/sh\nexit 3\n")

	var out bytes.Buffer
	r := New(WithOutput(&out, &out))

	_, err := r.Run(context.Background(), Invocation{Skill: skill, Script: "scripts/fail.sh"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scripts/fail.sh' failed")
}

func TestRunRejectsUnknownScript(t *testing.T) {
	skill := newTestSkill(t, "echo.sh", "#!/bin/sh\necho ok\n")

	r := New(WithOutput(&bytes.Buffer{}, &bytes.Buffer{}))

	_, err := r.Run(context.Background(), Invocation{Skill: skill, Script: "scripts/other.sh"})
	assert.ErrorContains(t, err, "has no script")

	_, err = r.Run(context.Background(), Invocation{Skill: skill, Script: ""})
	assert.ErrorContains(t, err, "no script specified")
}

func TestRunRejectsEscapingPaths(t *testing.T) {
	skill := newTestSkill(t, "echo.sh", "#!/bin/sh\necho ok\n")

	r := New(WithOutput(&bytes.Buffer{}, &bytes.Buffer{}))

	for _, path := range []string{"../outside.sh", "/etc/passwd"} {
		_, err := r.Run(context.Background(), Invocation{Skill: skill, Script: path})
		assert.ErrorContains(t, err, "escapes the skill directory", path)
	}
}

func TestRunRequiresInterpreter(t *testing.T) {
	skill := newTestSkill(t, "bare.sh", "echo no shebang\n")

	r := New(WithOutput(&bytes.Buffer{}, &bytes.Buffer{}))

	_, err := r.Run(context.Background(), Invocation{Skill: skill, Script: "scripts/bare.sh"})
	assert.ErrorContains(t, err, "does not declare an interpreter")
}
