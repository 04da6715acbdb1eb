package skills

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gobwas/glob"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
)

// Discovery handles skill discovery from configured registry roots.
type Discovery struct {
	registryDirs []string
}

// Option is a function that configures a Discovery.
type Option func(*Discovery) error

// WithRegistryDirs sets custom registry roots.
func WithRegistryDirs(dirs ...string) Option {
	return func(d *Discovery) error {
		d.registryDirs = dirs
		return nil
	}
}

// WithDefaultDirs initializes with default registry roots: the repo-local
// skills/ directory (highest precedence) followed by the user-global one.
func WithDefaultDirs() Option {
	return func(d *Discovery) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return errors.Wrap(err, "failed to get user home directory")
		}
		d.registryDirs = []string{
			"./skills",
			filepath.Join(homeDir, ".skillctl", "skills"),
		}
		return nil
	}
}

// NewDiscovery creates a new skill discovery instance.
func NewDiscovery(opts ...Option) (*Discovery, error) {
	d := &Discovery{}

	if len(opts) == 0 {
		opts = []Option{WithDefaultDirs()}
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// RegistryDirs returns the configured registry roots.
func (d *Discovery) RegistryDirs() []string {
	return d.registryDirs
}

// DiscoverSkills finds all loadable skills across the registry roots.
// Earlier roots win on name collisions. Directories whose manifest cannot
// be loaded are skipped; the validator reports those.
func (d *Discovery) DiscoverSkills() (map[string]*Skill, error) {
	skills := make(map[string]*Skill)

	for _, dir := range d.registryDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			entryPath := filepath.Join(dir, entry.Name())

			// os.Stat so symlinked skill directories resolve
			info, err := os.Stat(entryPath)
			if err != nil || !info.IsDir() {
				continue
			}

			skill, err := LoadSkill(entryPath)
			if err != nil {
				continue
			}

			if _, exists := skills[skill.Name]; !exists {
				skills[skill.Name] = skill
			}
		}
	}

	return skills, nil
}

// GetSkill returns a specific skill by name.
func (d *Discovery) GetSkill(name string) (*Skill, error) {
	skills, err := d.DiscoverSkills()
	if err != nil {
		return nil, err
	}

	skill, exists := skills[name]
	if !exists {
		return nil, errors.Errorf("skill '%s' not found", name)
	}

	return skill, nil
}

// ListNames returns the sorted names of all loadable skills.
func (d *Discovery) ListNames() ([]string, error) {
	skills, err := d.DiscoverSkills()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(skills))
	for name := range skills {
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}

// LoadSkill loads a single skill from its directory. The returned skill
// carries the parsed frontmatter, the manifest body, and the relative
// paths of any helper scripts.
func LoadSkill(dir string) (*Skill, error) {
	content, err := os.ReadFile(filepath.Join(dir, ManifestFileName))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read skill manifest")
	}

	metadata, err := ParseFrontmatter(content)
	if err != nil {
		return nil, err
	}

	if metadata.Name == "" {
		return nil, errors.New("skill name is required in frontmatter")
	}
	if metadata.Description == "" {
		return nil, errors.New("skill description is required in frontmatter")
	}

	scripts, err := ListScripts(dir)
	if err != nil {
		return nil, err
	}

	return &Skill{
		Name:        metadata.Name,
		Description: metadata.Description,
		Version:     metadata.Version,
		Directory:   dir,
		Content:     extractBodyContent(string(content)),
		Scripts:     scripts,
	}, nil
}

// ParseFrontmatter extracts the YAML frontmatter from manifest content.
func ParseFrontmatter(content []byte) (*Metadata, error) {
	md := goldmark.New(
		goldmark.WithExtensions(meta.Meta),
	)

	var buf bytes.Buffer
	pctx := parser.NewContext()

	if err := md.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		return nil, errors.Wrap(err, "failed to parse markdown")
	}

	metaData, err := meta.TryGet(pctx)
	if err != nil {
		return nil, errors.Wrap(ErrBadFrontmatter, err.Error())
	}
	if metaData == nil {
		return nil, ErrMissingFrontmatter
	}

	metadata := &Metadata{}
	metadata.Name, _ = metaData["name"].(string)
	metadata.Description, _ = metaData["description"].(string)

	// YAML decodes an unquoted version like 1.5 as a number; render it
	// back to text so the validator can reject it as invalid semver.
	switch v := metaData["version"].(type) {
	case string:
		metadata.Version = v
	case int:
		metadata.Version = strconv.Itoa(v)
	case float64:
		metadata.Version = strconv.FormatFloat(v, 'f', -1, 64)
	}

	return metadata, nil
}

// ListScripts returns the relative paths of all regular files under the
// skill's scripts/ directory, sorted for deterministic output.
func ListScripts(dir string) ([]string, error) {
	scriptsDir := filepath.Join(dir, ScriptsDirName)
	if _, err := os.Stat(scriptsDir); err != nil {
		return nil, nil
	}

	var scripts []string
	err := filepath.WalkDir(scriptsDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		scripts = append(scripts, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list skill scripts")
	}

	sort.Strings(scripts)
	return scripts, nil
}

// extractBodyContent removes YAML frontmatter and returns the body.
func extractBodyContent(content string) string {
	if !strings.HasPrefix(content, "---") {
		return content
	}

	lines := strings.Split(content, "\n")
	frontmatterEnd := -1

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			frontmatterEnd = i
			break
		}
	}

	if frontmatterEnd == -1 {
		return content
	}

	return strings.TrimLeft(strings.Join(lines[frontmatterEnd+1:], "\n"), "\n")
}

// FilterByPatterns filters skills by an allowlist of glob patterns.
// An empty allowlist returns all skills.
func FilterByPatterns(skills map[string]*Skill, patterns []string) (map[string]*Skill, error) {
	if len(patterns) == 0 {
		return skills, nil
	}

	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid skill pattern '%s'", pattern)
		}
		globs = append(globs, g)
	}

	filtered := make(map[string]*Skill)
	for name, skill := range skills {
		for _, g := range globs {
			if g.Match(name) {
				filtered[name] = skill
				break
			}
		}
	}
	return filtered, nil
}
