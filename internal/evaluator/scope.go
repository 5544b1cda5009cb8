package evaluator

import "github.com/hpl-lang/hpl/internal/object"

// Scope implements HPL's two-level lookup: a per-call local mapping
// backed by a single process-wide global mapping. Variable resolution
// order is strictly local then global; writes prefer the level where the
// name already exists, otherwise create in local.
type Scope struct {
	vars   map[string]object.Value
	parent *Scope // nil for the global scope
}

// NewGlobalScope creates the process-wide global scope.
func NewGlobalScope() *Scope {
	return &Scope{vars: make(map[string]object.Value)}
}

// NewLocalScope creates a fresh local scope for one call, backed by global.
func NewLocalScope(global *Scope) *Scope {
	return &Scope{vars: make(map[string]object.Value), parent: global}
}

// Get resolves name, checking local first then global.
func (s *Scope) Get(name string) (object.Value, bool) {
	if v, ok := s.vars[name]; ok {
		return v, true
	}
	if s.parent != nil {
		return s.parent.Get(name)
	}
	return nil, false
}

// Set writes name to whichever level it already exists in, preferring
// local; if the name exists nowhere yet, it is created in local (or, for
// the global scope itself, in global — there is no level below it).
func (s *Scope) Set(name string, v object.Value) {
	if _, ok := s.vars[name]; ok {
		s.vars[name] = v
		return
	}
	if s.parent != nil {
		if _, ok := s.parent.vars[name]; ok {
			s.parent.vars[name] = v
			return
		}
	}
	s.vars[name] = v
}

// Declare always binds name in this exact scope, regardless of whether it
// already exists at an outer level. Used to bind parameters and the
// explicit `this` entry when setting up a call's local scope.
func (s *Scope) Declare(name string, v object.Value) {
	s.vars[name] = v
}

// IsGlobal reports whether s is the top-level global scope.
func (s *Scope) IsGlobal() bool {
	return s.parent == nil
}

// Snapshot returns every name visible from s (local entries shadowing
// global ones of the same name), for debug/failure-dump tooling.
func (s *Scope) Snapshot() map[string]object.Value {
	out := make(map[string]object.Value)
	if s.parent != nil {
		for k, v := range s.parent.vars {
			out[k] = v
		}
	}
	for k, v := range s.vars {
		out[k] = v
	}
	return out
}
