// Package program implements the outer document handling stage: it
// consumes the already-decoded structured-document mapping, preprocesses
// and parses arrow-function bodies via internal/lexer and internal/parser,
// walks includes with a multi-path resolver, merges modules, and produces
// a Program ready for internal/evaluator.
package program

import (
	"fmt"

	"github.com/hpl-lang/hpl/internal/hplerr"
	"github.com/hpl-lang/hpl/internal/lexer"
	"github.com/hpl-lang/hpl/internal/object"
	"github.com/hpl-lang/hpl/internal/parser"
)

// ImportSpec is one entry of the document's `imports` list.
type ImportSpec struct {
	Module string
	Alias  string // empty if no alias
}

// CallDirective is the parsed `call` directive: NAME or NAME(args...).
type CallDirective struct {
	Name string
	Args []CallArg
}

// CallArgKind distinguishes how a call-directive argument was parsed.
type CallArgKind int

const (
	CallArgInt CallArgKind = iota
	CallArgFloat
	CallArgString
	CallArgIdent
)

type CallArg struct {
	Kind   CallArgKind
	Int    int64
	Float  float64
	String string
	Ident  string
}

// Program is the fully-resolved, fully-parsed environment the evaluator
// runs: classes, objects, and top-level functions, plus imports and an
// optional call directive.
type Program struct {
	Classes   map[string]*object.Class
	Objects   map[string]string // name -> constructor expression, e.g. "Foo()"
	Functions map[string]*object.Function
	Imports   []ImportSpec
	Call      *CallDirective
	Warnings  []string
}

// rawClass is the pre-parse shape of a `classes` entry: a `parent` string
// plus an arbitrary set of method-name -> arrow-function-body-string pairs.
type rawClass struct {
	Parent  string
	Methods map[string]string
}

// rawDocument is the pre-parse shape of one decoded .hpl mapping.
type rawDocument struct {
	Includes  []string
	Imports   []ImportSpec
	Classes   map[string]*rawClass
	Objects   map[string]string
	Functions map[string]string
	Call      string
}

// ReadFunc loads and decodes one included document, returning the raw
// mapping exactly as the document loader would for the top-level file.
// This is the seam between the format-agnostic core and the YAML-backed
// edge implementation in package hplfile.
type ReadFunc func(path string) (map[string]any, error)

// Build runs the full C2 pipeline: extract, resolve includes, merge,
// parse bodies, and wire class inheritance.
//
// baseDir is the directory of the top-level document (used to resolve
// relative includes); searchPaths is the module search-path list, also
// consulted from the HPL_MODULE_PATHS env var; read loads an included
// document given its resolved path.
func Build(raw map[string]any, baseDir string, searchPaths []string, read ReadFunc) (*Program, error) {
	doc, warnings, err := resolveAndMerge(raw, baseDir, searchPaths, read, map[string]bool{})
	if err != nil {
		return nil, err
	}

	prog := &Program{
		Classes:   make(map[string]*object.Class),
		Objects:   doc.Objects,
		Functions: make(map[string]*object.Function),
		Imports:   doc.Imports,
		Warnings:  warnings,
	}

	// First pass: create all Class shells so parent references can be
	// wired regardless of declaration order. Every parent must be
	// declared in the same post-merge document.
	for name, rc := range doc.Classes {
		prog.Classes[name] = &object.Class{Name: name, Methods: make(map[string]*object.Function)}
		_ = rc
	}
	for name, rc := range doc.Classes {
		cls := prog.Classes[name]
		if rc.Parent != "" {
			parent, ok := prog.Classes[rc.Parent]
			if !ok {
				return nil, hplerr.NewNoPos(hplerr.Name, "class %q declares parent %q which is not defined", name, rc.Parent)
			}
			cls.Parent = parent
		}
		for methodName, body := range rc.Methods {
			fn, err := parseFunctionBody(methodName, body)
			if err != nil {
				return nil, err
			}
			cls.Methods[methodName] = fn
		}
	}

	for name, body := range doc.Functions {
		fn, err := parseFunctionBody(name, body)
		if err != nil {
			return nil, err
		}
		prog.Functions[name] = fn
	}

	if doc.Call != "" {
		call, err := parseCallDirective(doc.Call)
		if err != nil {
			return nil, err
		}
		prog.Call = call
	}

	return prog, nil
}

// parseFunctionBody parses one `(params) => { body }` string, as stored
// whole by the document extraction step (see extract.go): it splits off
// the `(params) =>` header with splitArrowFunction and parses the body
// via the lexer and parser (component C3).
func parseFunctionBody(name, src string) (*object.Function, error) {
	params, bodySrc, err := splitArrowFunction(src)
	if err != nil {
		return nil, fmt.Errorf("function %q: %w", name, err)
	}

	l := lexer.New(bodySrc)
	p := parser.New(l)
	block := p.ParseProgram()

	var errs []*hplerr.Error
	errs = append(errs, l.Errors()...)
	errs = append(errs, p.Errors()...)
	if len(errs) > 0 {
		return nil, fmt.Errorf("function %q: %s", name, errs[0].Error())
	}

	return &object.Function{Name: name, Parameters: params, Body: block}, nil
}
