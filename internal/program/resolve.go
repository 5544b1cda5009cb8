package program

import (
	"fmt"
	"os"
	"path/filepath"
)

// resolveAndMerge extracts the raw document from raw, recursively
// resolves and merges every entry of its `includes` list, and returns
// the fully-merged rawDocument plus any non-fatal warnings produced
// along the way (e.g. an include that couldn't be found on any
// candidate path).
func resolveAndMerge(raw map[string]any, baseDir string, searchPaths []string, read ReadFunc, visited map[string]bool) (*rawDocument, []string, error) {
	doc, err := extractRaw(raw)
	if err != nil {
		return nil, nil, err
	}

	var warnings []string

	for _, includePath := range doc.Includes {
		resolvedPath, rawInc, ok := loadInclude(includePath, baseDir, searchPaths, read)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("include %q could not be resolved on any candidate path", includePath))
			continue
		}
		if visited[resolvedPath] {
			warnings = append(warnings, fmt.Sprintf("include %q forms a cycle, skipping", includePath))
			continue
		}
		visited[resolvedPath] = true

		incDoc, incWarnings, err := resolveAndMerge(rawInc, filepath.Dir(resolvedPath), searchPaths, read, visited)
		if err != nil {
			return nil, nil, fmt.Errorf("in included file %q: %w", includePath, err)
		}
		warnings = append(warnings, incWarnings...)
		mergeInto(doc, incDoc)
	}

	return doc, warnings, nil
}

// loadInclude tries each candidate path for includePath in resolution
// order, returning the first one read succeeds on.
func loadInclude(includePath, baseDir string, searchPaths []string, read ReadFunc) (string, map[string]any, bool) {
	for _, candidate := range candidatePaths(includePath, baseDir, searchPaths) {
		if raw, err := read(candidate); err == nil {
			return candidate, raw, true
		}
	}
	return "", nil, false
}

// candidatePaths enumerates include-path candidates in resolution order:
// absolute path, relative to the including file's directory, relative to
// the process working directory, then each module search-path entry.
func candidatePaths(includePath, baseDir string, searchPaths []string) []string {
	var candidates []string

	if filepath.IsAbs(includePath) {
		candidates = append(candidates, includePath)
	}
	if baseDir != "" {
		candidates = append(candidates, filepath.Join(baseDir, includePath))
	}
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, includePath))
	}
	for _, sp := range searchPaths {
		candidates = append(candidates, filepath.Join(sp, includePath))
	}

	return candidates
}

// mergeInto folds an included document into host: class and object maps
// are unioned key-by-key with existing keys winning; top-level function
// names present only in the include are imported; imports lists are
// concatenated.
func mergeInto(host, included *rawDocument) {
	for name, rc := range included.Classes {
		if _, exists := host.Classes[name]; !exists {
			host.Classes[name] = rc
		}
	}
	for name, ctor := range included.Objects {
		if _, exists := host.Objects[name]; !exists {
			host.Objects[name] = ctor
		}
	}
	for name, body := range included.Functions {
		if _, exists := host.Functions[name]; !exists {
			host.Functions[name] = body
		}
	}
	host.Imports = append(host.Imports, included.Imports...)
}
