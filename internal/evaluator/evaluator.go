// Package evaluator implements the tree-walking evaluator: it runs a
// *program.Program against the scope, call-stack, and method dispatch
// rules of the language, producing side effects (echo output) and a
// final exit status. A small core type holds shared state (scope, call
// stack, current receiver) with evaluation logic split across statement
// and expression visitor files.
package evaluator

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"

	"github.com/hpl-lang/hpl/internal/hplerr"
	"github.com/hpl-lang/hpl/internal/object"
	"github.com/hpl-lang/hpl/internal/program"
	"github.com/hpl-lang/hpl/internal/token"
)

// ModuleResolver resolves an import by name to a uniform module
// descriptor, trying the layered order: built-in stdlib, host-ecosystem
// wrap, script file, host-language file. Kept as an interface here so
// internal/evaluator does not have to depend on internal/module's
// filesystem/process concerns.
type ModuleResolver interface {
	Resolve(name string) (*object.Module, error)
}

// Evaluator runs one Program to completion.
type Evaluator struct {
	Program *program.Program
	Global  *Scope
	Stack   *CallStack
	This    *object.Object

	resolver ModuleResolver
	out      io.Writer
	in       *bufio.Reader
}

// New builds an Evaluator for prog. resolver may be nil if the program
// imports nothing. out receives echo() output; in feeds input().
func New(prog *program.Program, resolver ModuleResolver, out io.Writer, in io.Reader) *Evaluator {
	return &Evaluator{
		Program:  prog,
		Global:   NewGlobalScope(),
		Stack:    NewCallStack(DefaultMaxDepth),
		resolver: resolver,
		out:      out,
		in:       bufio.NewReader(in),
	}
}

var ctorExprRe = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)\s*\(\s*\)\s*$`)

// Init registers the program's top-level imports and instantiates its
// declared objects, running each zero-argument `init` method in
// alphabetical order of object name. It is split out from Run so a script-file module
// can bring a sub-program's globals and objects to life without also
// triggering its `call`/`main` entry point — only its top-level
// functions are meant to be reachable as module functions.
func (e *Evaluator) Init() error {
	for _, imp := range e.Program.Imports {
		if err := e.registerModule(imp.Module, imp.Alias); err != nil {
			return err
		}
	}

	names := make([]string, 0, len(e.Program.Objects))
	for name := range e.Program.Objects {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ctorExpr := e.Program.Objects[name]
		m := ctorExprRe.FindStringSubmatch(ctorExpr)
		if m == nil {
			return hplerr.NewNoPos(hplerr.Syntactic, "object %q has an unrecognized constructor expression %q (only NAME() is supported)", name, ctorExpr)
		}
		className := m[1]
		class, ok := e.Program.Classes[className]
		if !ok {
			return hplerr.NewNoPos(hplerr.Name, "object %q refers to undeclared class %q", name, className)
		}
		e.Global.Declare(name, object.NewObject(name, class))
	}

	for _, name := range names {
		obj := e.Global.vars[name].(*object.Object)
		if _, _, ok := obj.Class.ResolveMethod("init"); ok {
			if _, err := e.callMethod(obj, "init", nil, token.Position{}); err != nil {
				return err
			}
		}
	}

	return nil
}

// CallFunction invokes a top-level function of this program by name,
// exported so a script-file module can expose its functions to another
// program's evaluator as ordinary module functions.
func (e *Evaluator) CallFunction(name string, args []object.Value) (object.Value, error) {
	fn, ok := e.Program.Functions[name]
	if !ok {
		return nil, hplerr.NewNoPos(hplerr.Name, "undefined function %q", name)
	}
	return e.callFunction(fn, args, token.Position{})
}

// Run performs Init and then dispatches the entry point: the `call`
// directive if present, else a top-level `main` function, else nothing.
func (e *Evaluator) Run() error {
	if err := e.Init(); err != nil {
		return err
	}

	if e.Program.Call != nil {
		return e.runCallDirective(e.Program.Call)
	}
	if fn, ok := e.Program.Functions["main"]; ok {
		_, err := e.callFunction(fn, nil, token.Position{})
		return err
	}
	return nil
}

func (e *Evaluator) runCallDirective(call *program.CallDirective) error {
	fn, ok := e.Program.Functions[call.Name]
	if !ok {
		return hplerr.NewNoPos(hplerr.Name, "call directive names undefined function %q", call.Name)
	}

	args := make([]object.Value, len(call.Args))
	for i, a := range call.Args {
		switch a.Kind {
		case program.CallArgInt:
			args[i] = &object.Integer{Value: a.Int}
		case program.CallArgFloat:
			args[i] = &object.Float{Value: a.Float}
		case program.CallArgString:
			args[i] = &object.String{Value: a.String}
		case program.CallArgIdent:
			v, ok := e.Global.Get(a.Ident)
			if !ok {
				return hplerr.NewNoPos(hplerr.Name, "call directive argument %q is not defined", a.Ident)
			}
			args[i] = v
		}
	}

	_, err := e.callDirectiveFunction(fn, args, token.Position{})
	return err
}

// registerModule resolves name and binds it into the global scope under
// alias (or name, if alias is empty).
func (e *Evaluator) registerModule(name, alias string) error {
	if e.resolver == nil {
		return hplerr.NewNoPos(hplerr.Name, "no module resolver configured, cannot import %q", name)
	}
	mod, err := e.resolver.Resolve(name)
	if err != nil {
		return err
	}
	binding := alias
	if binding == "" {
		binding = name
	}
	e.Global.Declare(binding, mod)
	return nil
}

func (e *Evaluator) echo(v object.Value) {
	fmt.Fprintln(e.out, v.Display())
}
