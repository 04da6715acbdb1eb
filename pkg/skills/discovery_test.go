package skills

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSkill(t *testing.T, root, name, frontmatter, body string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	content := "---\n" + frontmatter + "---\n\n" + body
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFileName), []byte(content), 0o644))
	return dir
}

func TestNewDiscovery(t *testing.T) {
	t.Run("with default dirs", func(t *testing.T) {
		discovery, err := NewDiscovery()
		require.NoError(t, err)
		assert.Len(t, discovery.RegistryDirs(), 2)
	})

	t.Run("with custom dirs", func(t *testing.T) {
		customDirs := []string{"/tmp/skills1", "/tmp/skills2"}
		discovery, err := NewDiscovery(WithRegistryDirs(customDirs...))
		require.NoError(t, err)
		assert.Equal(t, customDirs, discovery.RegistryDirs())
	})
}

func TestDiscoverSkills(t *testing.T) {
	tmpDir := t.TempDir()

	xmindDir := writeSkill(t, tmpDir, "xmind",
		"name: xmind\ndescription: Convert XMind mind-map files to and from Markdown\nversion: 0.2.0\n",
		"# XMind\n\n## Instructions\nUse the bundled script.\n")
	writeSkill(t, tmpDir, "commit-push",
		"name: commit-push\ndescription: Create well-formed git commits and push\nversion: 1.0.0\n",
		"# Commit and push\n\nSome content here.\n")

	discovery, err := NewDiscovery(WithRegistryDirs(tmpDir))
	require.NoError(t, err)

	skills, err := discovery.DiscoverSkills()
	require.NoError(t, err)
	assert.Len(t, skills, 2)

	xmind, exists := skills["xmind"]
	require.True(t, exists)
	assert.Equal(t, "xmind", xmind.Name)
	assert.Equal(t, "Convert XMind mind-map files to and from Markdown", xmind.Description)
	assert.Equal(t, "0.2.0", xmind.Version)
	assert.Equal(t, xmindDir, xmind.Directory)
	assert.Contains(t, xmind.Content, "# XMind")
	assert.NotContains(t, xmind.Content, "version: 0.2.0")

	commitPush, exists := skills["commit-push"]
	require.True(t, exists)
	assert.Equal(t, "1.0.0", commitPush.Version)
}

func TestDiscoverSkillsPrecedence(t *testing.T) {
	localDir := t.TempDir()
	globalDir := t.TempDir()

	writeSkill(t, localDir, "xmind",
		"name: xmind\ndescription: local copy\nversion: 0.2.0\n", "")
	writeSkill(t, globalDir, "xmind",
		"name: xmind\ndescription: global copy\nversion: 0.1.0\n", "")

	discovery, err := NewDiscovery(WithRegistryDirs(localDir, globalDir))
	require.NoError(t, err)

	skills, err := discovery.DiscoverSkills()
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, "local copy", skills["xmind"].Description)
}

func TestDiscoverSkillsSkipsBrokenManifests(t *testing.T) {
	tmpDir := t.TempDir()

	writeSkill(t, tmpDir, "good",
		"name: good\ndescription: works\nversion: 1.0.0\n", "")

	// A directory without any manifest
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "empty"), 0o755))

	// A manifest without frontmatter
	brokenDir := filepath.Join(tmpDir, "broken")
	require.NoError(t, os.MkdirAll(brokenDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(brokenDir, ManifestFileName), []byte("# no frontmatter\n"), 0o644))

	discovery, err := NewDiscovery(WithRegistryDirs(tmpDir))
	require.NoError(t, err)

	skills, err := discovery.DiscoverSkills()
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Contains(t, skills, "good")
}

func TestDiscoverSkillsWithSymlinks(t *testing.T) {
	tmpDir := t.TempDir()
	registryDir := filepath.Join(tmpDir, "skills")
	require.NoError(t, os.MkdirAll(registryDir, 0o755))

	actualDir := writeSkill(t, filepath.Join(tmpDir, "actual"), "linked",
		"name: linked\ndescription: A skill accessed via symlink\nversion: 0.1.0\n", "")
	require.NoError(t, os.Symlink(actualDir, filepath.Join(registryDir, "linked")))

	discovery, err := NewDiscovery(WithRegistryDirs(registryDir))
	require.NoError(t, err)

	skills, err := discovery.DiscoverSkills()
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, "linked", skills["linked"].Name)
}

func TestLoadSkillCollectsScripts(t *testing.T) {
	tmpDir := t.TempDir()
	dir := writeSkill(t, tmpDir, "xmind",
		"name: xmind\ndescription: mind maps\nversion: 0.2.0\n", "")

	scriptsDir := filepath.Join(dir, ScriptsDirName)
	require.NoError(t, os.MkdirAll(filepath.Join(scriptsDir, "lib"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(scriptsDir, "xmind_tool.py"), []byte("#!/usr/bin/env python3\n"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(scriptsDir, "lib", "helper.py"), []byte("#!/usr/bin/env python3\n"), 0o755))

	skill, err := LoadSkill(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"scripts/lib/helper.py", "scripts/xmind_tool.py"}, skill.Scripts)
}

func TestLoadSkillErrors(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("missing manifest", func(t *testing.T) {
		dir := filepath.Join(tmpDir, "none")
		require.NoError(t, os.MkdirAll(dir, 0o755))
		_, err := LoadSkill(dir)
		assert.ErrorContains(t, err, "failed to read skill manifest")
	})

	t.Run("missing name", func(t *testing.T) {
		dir := writeSkill(t, tmpDir, "unnamed", "description: something\nversion: 1.0.0\n", "")
		_, err := LoadSkill(dir)
		assert.ErrorContains(t, err, "skill name is required")
	})

	t.Run("missing description", func(t *testing.T) {
		dir := writeSkill(t, tmpDir, "silent", "name: silent\nversion: 1.0.0\n", "")
		_, err := LoadSkill(dir)
		assert.ErrorContains(t, err, "skill description is required")
	})
}

func TestParseFrontmatterVersionCoercion(t *testing.T) {
	// Unquoted YAML scalars like 1.5 or 1 decode as numbers; they are
	// rendered back to text so validation can report them as invalid semver.
	metadata, err := ParseFrontmatter([]byte("---\nname: x\ndescription: y\nversion: 1.5\n---\n"))
	require.NoError(t, err)
	assert.Equal(t, "1.5", metadata.Version)

	metadata, err = ParseFrontmatter([]byte("---\nname: x\ndescription: y\nversion: 1\n---\n"))
	require.NoError(t, err)
	assert.Equal(t, "1", metadata.Version)
}

func TestFilterByPatterns(t *testing.T) {
	skills := map[string]*Skill{
		"xmind":       {Name: "xmind"},
		"commit-push": {Name: "commit-push"},
		"commit-lint": {Name: "commit-lint"},
	}

	t.Run("empty allowlist returns all", func(t *testing.T) {
		filtered, err := FilterByPatterns(skills, nil)
		require.NoError(t, err)
		assert.Len(t, filtered, 3)
	})

	t.Run("glob patterns", func(t *testing.T) {
		filtered, err := FilterByPatterns(skills, []string{"commit-*"})
		require.NoError(t, err)
		assert.Len(t, filtered, 2)
		assert.NotContains(t, filtered, "xmind")
	})

	t.Run("exact names", func(t *testing.T) {
		filtered, err := FilterByPatterns(skills, []string{"xmind"})
		require.NoError(t, err)
		assert.Len(t, filtered, 1)
	})

	t.Run("invalid pattern", func(t *testing.T) {
		_, err := FilterByPatterns(skills, []string{"[bad"})
		assert.Error(t, err)
	})
}
