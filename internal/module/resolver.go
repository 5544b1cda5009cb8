// Package module implements HPL's layered module resolution: built-in
// stdlib, then a host-ecosystem wrap, then a script file on the module
// search path, then a compiled-in host-language module, consulted
// identically regardless of which layer ultimately answers.
package module

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hpl-lang/hpl/hplfile"
	"github.com/hpl-lang/hpl/internal/evaluator"
	"github.com/hpl-lang/hpl/internal/hplerr"
	"github.com/hpl-lang/hpl/internal/module/stdlib"
	"github.com/hpl-lang/hpl/internal/object"
	"github.com/hpl-lang/hpl/internal/program"
)

// Resolver implements evaluator.ModuleResolver.
type Resolver struct {
	stdlib      map[string]*object.Module
	ecosystem   map[string]*object.Module
	host        map[string]*object.Module
	searchPaths []string
	out         io.Writer
	in          io.Reader
}

// New builds a Resolver with the fixed built-in and ecosystem module
// sets populated. searchPaths drives script-file resolution (also fed
// by the HPL_MODULE_PATHS env var); out/in are shared with every module
// and script that performs I/O, and scriptArgs feeds the `os` module's
// `args()`.
func New(searchPaths []string, out io.Writer, in io.Reader, scriptArgs []string) *Resolver {
	return &Resolver{
		stdlib:      stdlib.Builtin(out, in, scriptArgs),
		ecosystem:   stdlib.Ecosystem(),
		host:        map[string]*object.Module{},
		searchPaths: searchPaths,
		out:         out,
		in:          in,
	}
}

// RegisterHost adds a compiled-in module to the final resolution layer —
// the host-language-file equivalent: a module implemented directly in Go
// and wired in by the embedding program rather than discovered on disk.
func (r *Resolver) RegisterHost(name string, mod *object.Module) {
	r.host[name] = mod
}

// Resolve implements evaluator.ModuleResolver.
func (r *Resolver) Resolve(name string) (*object.Module, error) {
	if m, ok := r.stdlib[name]; ok {
		return m, nil
	}
	if m, ok := r.ecosystem[name]; ok {
		return m, nil
	}
	if m, err, tried := r.resolveScript(name); tried {
		return m, err
	}
	if m, ok := r.host[name]; ok {
		return m, nil
	}
	return nil, hplerr.NewNoPos(hplerr.Name, "module %q could not be resolved (checked built-in, ecosystem, script-file, and host layers)", name)
}

// resolveScript looks for name.hpl on each search-path entry. tried is
// true as soon as a matching file is found, so a load/init error from
// that file is reported directly rather than falling through to the
// host-language layer.
func (r *Resolver) resolveScript(name string) (*object.Module, error, bool) {
	for _, dir := range r.searchPaths {
		path := filepath.Join(dir, name+".hpl")
		if _, err := os.Stat(path); err != nil {
			continue
		}

		prog, err := hplfile.Load(path, r.searchPaths)
		if err != nil {
			return nil, fmt.Errorf("loading module %q from %s: %w", name, path, err), true
		}

		sub := evaluator.New(prog, r, r.out, r.in)
		if err := sub.Init(); err != nil {
			return nil, fmt.Errorf("initializing module %q: %w", name, err), true
		}

		return wrapScriptModule(name, path, prog, sub), nil, true
	}
	return nil, nil, false
}

// wrapScriptModule exposes every top-level function of a loaded script
// program as a module function, forwarding calls into its own
// sub-evaluator (which keeps its own global scope, objects, and call
// stack, isolated from the importing program's).
func wrapScriptModule(name, path string, prog *program.Program, sub *evaluator.Evaluator) *object.Module {
	fns := make(map[string]object.BuiltinFunction, len(prog.Functions))
	for fname := range prog.Functions {
		fname := fname
		fns[fname] = func(args []object.Value) (object.Value, error) {
			return sub.CallFunction(fname, args)
		}
	}

	return &object.Module{
		Name:        name,
		Description: fmt.Sprintf("script module loaded from %s", path),
		Functions:   fns,
		Constants:   map[string]object.Value{},
	}
}
