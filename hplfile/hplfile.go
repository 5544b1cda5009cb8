// Package hplfile is the thin, format-specific edge of the HPL toolchain:
// it decodes a `.hpl` source document (a YAML mapping) into the raw
// map[string]any the format-agnostic internal/program package consumes,
// after running the arrow-function prescan. It is the file-reading edge
// kept outside the lexer/parser/evaluator core, the way a CLI's run
// command stays outside its interpreter package.
package hplfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/hpl-lang/hpl/internal/program"
)

// Decode prescans and YAML-decodes one document's source text into the
// raw mapping shape internal/program expects.
func Decode(src string) (map[string]any, error) {
	prescanned, err := Prescan(src)
	if err != nil {
		return nil, fmt.Errorf("arrow-function prescan: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal([]byte(prescanned), &raw); err != nil {
		return nil, fmt.Errorf("decoding HPL document: %w", err)
	}
	return raw, nil
}

// ReadFile reads path from disk and decodes it.
func ReadFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(string(data))
}

// Load reads the top-level document at path and fully resolves it
// (includes, arrow-function bodies, call directive) into a
// *program.Program, using searchPaths as the include and module
// resolution fallback.
func Load(path string, searchPaths []string) (*program.Program, error) {
	raw, err := ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	baseDir := filepath.Dir(path)
	return program.Build(raw, baseDir, searchPaths, ReadFile)
}

// LoadSource builds a *program.Program directly from in-memory source
// text (used by `hpl run -e` and tests), with baseDir controlling
// relative-include resolution.
func LoadSource(src, baseDir string, searchPaths []string) (*program.Program, error) {
	raw, err := Decode(src)
	if err != nil {
		return nil, err
	}
	return program.Build(raw, baseDir, searchPaths, ReadFile)
}
