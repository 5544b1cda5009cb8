// Package stdlib implements HPL's fixed built-in module set: math, io,
// os, and time as hand-rolled wrappers over the Go standard library, and
// json as a wrapper over gjson/sjson — the "host-ecosystem wrap" layer
// of the module resolution order.
package stdlib

import (
	"io"

	"github.com/hpl-lang/hpl/internal/object"
)

// Builtin returns the first-layer module set: always available,
// regardless of import path configuration.
func Builtin(out io.Writer, in io.Reader, scriptArgs []string) map[string]*object.Module {
	return map[string]*object.Module{
		"math": Math(),
		"io":   IO(out, in),
		"os":   OS(scriptArgs),
		"time": Time(),
	}
}

// Ecosystem returns the second-layer module set: built-in modules backed
// by a wrapped third-party library rather than hand-rolled logic.
func Ecosystem() map[string]*object.Module {
	return map[string]*object.Module{
		"json": JSON(),
	}
}

// Names lists every fixed module name (built-in and ecosystem layers),
// for CLI listing without constructing the modules themselves.
func Names() []string {
	return []string{"math", "io", "os", "time", "json"}
}
