// Package skills implements the skill registry convention: a registry root
// contains one directory per skill, each holding a SKILL.md manifest with
// YAML frontmatter (name, description, version) followed by free-text
// instructions, and an optional scripts/ directory of helper scripts.
package skills

import "github.com/pkg/errors"

var (
	// ErrMissingFrontmatter indicates a manifest without a frontmatter block.
	ErrMissingFrontmatter = errors.New("missing frontmatter")
	// ErrBadFrontmatter indicates a frontmatter block that is not valid YAML.
	ErrBadFrontmatter = errors.New("unparsable frontmatter")
)

// ManifestFileName is the fixed manifest filename inside a skill directory.
const ManifestFileName = "SKILL.md"

// ScriptsDirName is the optional helper-script directory inside a skill directory.
const ScriptsDirName = "scripts"

// Skill represents a loaded skill with its metadata and instructions.
type Skill struct {
	Name        string   // Unique name from frontmatter, equals the directory base name
	Description string   // Free text the host matches trigger words against
	Version     string   // Semantic version from frontmatter
	Directory   string   // Full path to the skill directory
	Content     string   // SKILL.md body with the frontmatter stripped
	Scripts     []string // Paths of helper scripts, relative to Directory
}

// Metadata represents the YAML frontmatter of a SKILL.md file.
type Metadata struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Version     string `yaml:"version"`
}
