// Package scripts inspects skill helper scripts for the script contract:
// every script declares its interpreter on the first line, and Python
// scripts must not import anything outside the standard library.
package scripts

import (
	"bufio"
	"bytes"
	_ "embed"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

//go:embed python_stdlib.txt
var pythonStdlibRaw string

var pythonStdlib = func() map[string]struct{} {
	set := make(map[string]struct{})
	for _, line := range strings.Split(pythonStdlibRaw, "\n") {
		name := strings.TrimSpace(line)
		if name == "" || strings.HasPrefix(name, "#") {
			continue
		}
		set[name] = struct{}{}
	}
	return set
}()

// Info describes an inspected script.
type Info struct {
	Path        string   // path the script was read from
	Interpreter string   // interpreter name resolved from the shebang, e.g. "python3"
	HasShebang  bool     // whether the first line is a #! directive
	Binary      bool     // whether the file looks like binary content
	Imports     []string // top-level modules imported, Python scripts only
}

// Inspect reads a script and reports its interpreter declaration and, for
// Python scripts, its top-level imports.
func Inspect(path string) (*Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read script '%s'", path)
	}

	info := &Info{Path: path}

	if IsBinary(data) {
		info.Binary = true
		return info, nil
	}

	firstLine := data
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		firstLine = data[:idx]
	}

	info.Interpreter, info.HasShebang = ParseShebang(string(firstLine))

	if info.HasShebang && strings.Contains(info.Interpreter, "python") {
		info.Imports = PythonImports(data)
	} else if !info.HasShebang && strings.HasSuffix(path, ".py") {
		// Extension fallback so import policy still applies when the
		// interpreter declaration itself is missing.
		info.Imports = PythonImports(data)
	}

	return info, nil
}

// ParseShebang extracts the interpreter name from a shebang line.
// Both "#!/usr/bin/python3" and "#!/usr/bin/env python3" forms resolve to
// "python3".
func ParseShebang(line string) (string, bool) {
	line = strings.TrimRight(line, "\r")
	if !strings.HasPrefix(line, "#!") {
		return "", false
	}

	fields := strings.Fields(strings.TrimSpace(line[2:]))
	if len(fields) == 0 {
		return "", false
	}

	interpreter := filepath.Base(fields[0])
	if interpreter == "env" {
		if len(fields) < 2 {
			return "", false
		}
		interpreter = filepath.Base(fields[1])
	}

	return interpreter, true
}

// IsBinary reports whether the content looks binary, using the NUL-byte
// heuristic over the first 512 bytes.
func IsBinary(data []byte) bool {
	if len(data) > 512 {
		data = data[:512]
	}
	return bytes.IndexByte(data, 0) >= 0
}

var (
	importRe     = regexp.MustCompile(`^\s*import\s+(.+)$`)
	fromImportRe = regexp.MustCompile(`^\s*from\s+([\w.]+)\s+import\b`)
)

// PythonImports returns the sorted set of top-level modules a Python
// source imports. Relative imports are skipped; they always resolve
// within the script's own package.
func PythonImports(src []byte) []string {
	seen := make(map[string]struct{})

	scanner := bufio.NewScanner(bytes.NewReader(src))
	for scanner.Scan() {
		line := scanner.Text()

		if m := fromImportRe.FindStringSubmatch(line); m != nil {
			if top := topLevelModule(m[1]); top != "" {
				seen[top] = struct{}{}
			}
			continue
		}

		if m := importRe.FindStringSubmatch(line); m != nil {
			// "import a.b, c as d" names several modules at once
			for _, part := range strings.Split(m[1], ",") {
				part = strings.TrimSpace(part)
				if idx := strings.Index(part, " as "); idx >= 0 {
					part = part[:idx]
				}
				if top := topLevelModule(part); top != "" {
					seen[top] = struct{}{}
				}
			}
		}
	}

	imports := make([]string, 0, len(seen))
	for name := range seen {
		imports = append(imports, name)
	}
	sort.Strings(imports)
	return imports
}

// topLevelModule reduces a dotted module path to its first component,
// returning "" for relative imports and anything that is not a plain
// module name.
func topLevelModule(module string) string {
	if module == "" || strings.HasPrefix(module, ".") {
		return ""
	}
	top, _, _ := strings.Cut(module, ".")
	for _, r := range top {
		if r != '_' && (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return top
}

// IsStdlibModule reports whether the module ships with the Python
// standard library.
func IsStdlibModule(name string) bool {
	_, ok := pythonStdlib[name]
	return ok
}

// ThirdPartyImports filters an import list down to the modules that are
// not part of the Python standard library.
func ThirdPartyImports(imports []string) []string {
	var thirdParty []string
	for _, name := range imports {
		if !IsStdlibModule(name) {
			thirdParty = append(thirdParty, name)
		}
	}
	return thirdParty
}
