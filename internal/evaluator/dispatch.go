package evaluator

import (
	"fmt"

	"github.com/hpl-lang/hpl/internal/hplerr"
	"github.com/hpl-lang/hpl/internal/object"
	"github.com/hpl-lang/hpl/internal/token"
)

// callFunction invokes a top-level function: fresh local scope backed by
// the global scope, no `this` binding.
func (e *Evaluator) callFunction(fn *object.Function, args []object.Value, pos token.Position) (object.Value, error) {
	return e.invoke(fn, fn.Name, args, nil, pos)
}

// callDirectiveFunction invokes a top-level function for the `call`
// directive's own binding rule (spec §4.4 Entry), distinct from ordinary
// function calls: extra arguments are dropped and missing ones are
// padded with null rather than raising an arity error.
func (e *Evaluator) callDirectiveFunction(fn *object.Function, args []object.Value, pos token.Position) (object.Value, error) {
	bound := make([]object.Value, len(fn.Parameters))
	for i := range bound {
		if i < len(args) {
			bound[i] = args[i]
		} else {
			bound[i] = object.Nil
		}
	}
	return e.invoke(fn, fn.Name, bound, nil, pos)
}

// callMethod resolves name on obj's class chain and invokes it with
// `this` bound to obj.
func (e *Evaluator) callMethod(obj *object.Object, name string, args []object.Value, pos token.Position) (object.Value, error) {
	fn, owner, ok := obj.Class.ResolveMethod(name)
	if !ok {
		return nil, hplerr.New(hplerr.Name, pos, "object of class %q has no method %q", obj.Class.Name, name)
	}
	frameName := fmt.Sprintf("%s.%s", owner.Name, name)
	return e.invoke(fn, frameName, args, obj, pos)
}

// invoke is the shared call mechanics: arity check, stack-depth guard,
// `this` binding, parameter binding, and body execution. Both the call
// stack push/pop and the `this` save/restore happen via defer so they
// unwind correctly on every exit path, including an error returned from
// deep inside the body.
func (e *Evaluator) invoke(fn *object.Function, frameName string, args []object.Value, this *object.Object, pos token.Position) (object.Value, error) {
	if len(args) != len(fn.Parameters) {
		return nil, hplerr.New(hplerr.Value, pos, "%s expects %d argument(s), got %d", frameName, len(fn.Parameters), len(args))
	}

	if err := e.Stack.Push(frameName, pos); err != nil {
		return nil, err
	}
	defer e.Stack.Pop()

	prevThis := e.This
	e.This = this
	defer func() { e.This = prevThis }()

	local := NewLocalScope(e.Global)
	for i, param := range fn.Parameters {
		local.Declare(param, args[i])
	}

	result, sig, err := e.execBlock(fn.Body, local)
	if err != nil {
		if herr, ok := err.(*hplerr.Error); ok && herr.Trace == nil {
			herr.Trace = e.Stack.Trace()
		}
		return nil, err
	}
	switch sig {
	case sigReturn:
		return result, nil
	case sigBreak, sigContinue:
		return nil, hplerr.New(hplerr.Syntactic, pos, "%s used outside of a loop", sigName(sig))
	default:
		return object.Nil, nil
	}
}

func sigName(s signal) string {
	switch s {
	case sigBreak:
		return "break"
	case sigContinue:
		return "continue"
	default:
		return "return"
	}
}

// callModuleFunction invokes a built-in module function, wrapping any Go
// error it returns as a User error carrying the original message.
func callModuleFunction(fn object.BuiltinFunction, args []object.Value, pos token.Position) (object.Value, error) {
	v, err := fn(args)
	if err != nil {
		if herr, ok := err.(*hplerr.Error); ok {
			return nil, herr
		}
		return nil, hplerr.New(hplerr.User, pos, "%s", err.Error())
	}
	return v, nil
}
