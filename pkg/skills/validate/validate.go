// Package validate implements the skill registry contract checks: manifest
// presence and well-formedness, name/directory agreement, semantic
// versioning, and the helper-script interpreter and dependency policy.
// Validation is read-only and per-skill; one broken skill never fails the
// rest of the registry.
package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/skillctl/skillctl/pkg/scripts"
	"github.com/skillctl/skillctl/pkg/skills"
)

// Code identifies a class of contract violation.
type Code string

const (
	// CodeMissingManifest: no SKILL.md in the skill directory.
	CodeMissingManifest Code = "missing-manifest"
	// CodeBadFrontmatter: frontmatter absent or not a valid YAML mapping.
	CodeBadFrontmatter Code = "unparsable-frontmatter"
	// CodeMissingField: a required frontmatter field is empty.
	CodeMissingField Code = "missing-field"
	// CodeNameMismatch: frontmatter name differs from the directory base name.
	CodeNameMismatch Code = "name-mismatch"
	// CodeInvalidVersion: version is not a valid semantic version.
	CodeInvalidVersion Code = "invalid-version"
	// CodeMissingInterpreter: a script lacks a first-line interpreter directive.
	CodeMissingInterpreter Code = "missing-interpreter"
	// CodeThirdPartyImport: a Python script imports outside the standard library.
	CodeThirdPartyImport Code = "third-party-import"
	// CodeDuplicateName: two registry directories resolve to the same skill name.
	CodeDuplicateName Code = "duplicate-name"
)

// Violation is a single violated constraint.
type Violation struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Code, v.Message)
}

// Report is the validation result for one skill directory.
type Report struct {
	Skill      string      `json:"skill"`
	Directory  string      `json:"directory"`
	Violations []Violation `json:"violations,omitempty"`
}

// Pass reports whether the skill satisfies the registry contract.
func (r *Report) Pass() bool {
	return len(r.Violations) == 0
}

// Err aggregates the violations into a single error, or nil when passing.
func (r *Report) Err() error {
	if r.Pass() {
		return nil
	}

	var result *multierror.Error
	for _, v := range r.Violations {
		result = multierror.Append(result, errors.New(v.String()))
	}
	return result.ErrorOrNil()
}

func (r *Report) add(code Code, format string, args ...any) {
	r.Violations = append(r.Violations, Violation{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	})
}

// Summary is the validation result for a whole registry root.
type Summary struct {
	Root    string   `json:"root"`
	Reports []Report `json:"reports"`
}

// Pass reports whether every skill in the registry passed.
func (s *Summary) Pass() bool {
	for i := range s.Reports {
		if !s.Reports[i].Pass() {
			return false
		}
	}
	return true
}

// Failed returns the number of failing skills.
func (s *Summary) Failed() int {
	failed := 0
	for i := range s.Reports {
		if !s.Reports[i].Pass() {
			failed++
		}
	}
	return failed
}

// Skill validates a single candidate skill directory against the registry
// contract. It never touches anything outside the directory and has no
// side effects.
func Skill(dir string) *Report {
	report := &Report{
		Skill:     filepath.Base(dir),
		Directory: dir,
	}

	validateManifest(dir, report)
	validateScripts(dir, report)

	return report
}

func validateManifest(dir string, report *Report) {
	manifestPath := filepath.Join(dir, skills.ManifestFileName)

	content, err := os.ReadFile(manifestPath)
	if err != nil {
		report.add(CodeMissingManifest, "missing manifest %s", skills.ManifestFileName)
		return
	}

	metadata, err := skills.ParseFrontmatter(content)
	if err != nil {
		report.add(CodeBadFrontmatter, "unparsable frontmatter: %v", err)
		return
	}

	required := []struct {
		field string
		value string
	}{
		{"name", metadata.Name},
		{"description", metadata.Description},
		{"version", metadata.Version},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			report.add(CodeMissingField, "required field '%s' is missing or empty", f.field)
		}
	}

	if metadata.Name != "" && metadata.Name != filepath.Base(dir) {
		report.add(CodeNameMismatch, "name/directory mismatch: manifest says '%s', directory is '%s'",
			metadata.Name, filepath.Base(dir))
	}

	if metadata.Version != "" {
		if _, err := semver.StrictNewVersion(metadata.Version); err != nil {
			report.add(CodeInvalidVersion, "invalid semantic version '%s'", metadata.Version)
		}
	}
}

func validateScripts(dir string, report *Report) {
	scriptPaths, err := skills.ListScripts(dir)
	if err != nil {
		report.add(CodeMissingInterpreter, "cannot inspect scripts: %v", err)
		return
	}

	for _, rel := range scriptPaths {
		info, err := scripts.Inspect(filepath.Join(dir, rel))
		if err != nil {
			report.add(CodeMissingInterpreter, "cannot inspect script '%s': %v", rel, err)
			continue
		}

		if info.Binary {
			report.add(CodeMissingInterpreter, "script '%s' is a binary file, not an interpretable script", rel)
			continue
		}
		if !info.HasShebang {
			report.add(CodeMissingInterpreter, "script '%s' does not declare an interpreter on its first line", rel)
		}

		for _, module := range scripts.ThirdPartyImports(info.Imports) {
			report.add(CodeThirdPartyImport, "script '%s' imports third-party module '%s'", rel, module)
		}
	}
}

// Registry validates every skill directory under a registry root. Files
// directly under the root are ignored; each subdirectory is one candidate
// skill. Duplicate manifest names across directories are reported on every
// directory after the first, in lexical order.
func Registry(root string) (*Summary, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read registry root '%s'", root)
	}

	summary := &Summary{Root: root}
	seenNames := make(map[string]string) // manifest name -> first directory

	var dirs []string
	for _, entry := range entries {
		path := filepath.Join(root, entry.Name())
		info, err := os.Stat(path) // resolve symlinked skill dirs
		if err != nil || !info.IsDir() {
			continue
		}
		dirs = append(dirs, path)
	}
	sort.Strings(dirs)

	for _, dir := range dirs {
		report := Skill(dir)

		if name := manifestName(dir); name != "" {
			if first, dup := seenNames[name]; dup {
				report.add(CodeDuplicateName, "skill name '%s' already used by %s", name, first)
			} else {
				seenNames[name] = dir
			}
		}

		summary.Reports = append(summary.Reports, *report)
	}

	return summary, nil
}

// manifestName returns the frontmatter name of a skill directory, or ""
// when the manifest cannot be parsed. Used for duplicate detection only;
// parse failures are already reported by Skill.
func manifestName(dir string) string {
	content, err := os.ReadFile(filepath.Join(dir, skills.ManifestFileName))
	if err != nil {
		return ""
	}
	metadata, err := skills.ParseFrontmatter(content)
	if err != nil {
		return ""
	}
	return metadata.Name
}
