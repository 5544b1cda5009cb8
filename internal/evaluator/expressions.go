package evaluator

import (
	"github.com/hpl-lang/hpl/internal/ast"
	"github.com/hpl-lang/hpl/internal/hplerr"
	"github.com/hpl-lang/hpl/internal/object"
)

func (e *Evaluator) evalExpression(expr ast.Expression, scope *Scope) (object.Value, error) {
	switch n := expr.(type) {

	case *ast.IntegerLiteral:
		return &object.Integer{Value: n.Value}, nil

	case *ast.FloatLiteral:
		return &object.Float{Value: n.Value}, nil

	case *ast.StringLiteral:
		return &object.String{Value: n.Value}, nil

	case *ast.BooleanLiteral:
		return object.BoolValue(n.Value), nil

	case *ast.NullLiteral:
		return object.Nil, nil

	case *ast.VariableReference:
		if n.Name == "this" {
			if e.This == nil {
				return nil, hplerr.New(hplerr.Name, n.Pos(), "this is not bound outside of a method")
			}
			return e.This, nil
		}
		v, ok := scope.Get(n.Name)
		if !ok {
			return nil, hplerr.New(hplerr.Name, n.Pos(), "undefined variable %q", n.Name)
		}
		return v, nil

	case *ast.BinaryOp:
		return e.evalBinaryOp(n, scope)

	case *ast.UnaryOp:
		return e.evalUnaryOp(n, scope)

	case *ast.PostfixIncrement:
		return e.evalIncrement(n.Target, scope)

	case *ast.ArrayLiteral:
		elems := make([]object.Value, len(n.Elements))
		for i, el := range n.Elements {
			v, err := e.evalExpression(el, scope)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return &object.Array{Elements: elems}, nil

	case *ast.ArrayIndex:
		arrVal, err := e.evalExpression(n.Array, scope)
		if err != nil {
			return nil, err
		}
		arr, ok := arrVal.(*object.Array)
		if !ok {
			return nil, hplerr.New(hplerr.Type, n.Array.Pos(), "cannot index a %s", arrVal.Type())
		}
		idxVal, err := e.evalExpression(n.Index, scope)
		if err != nil {
			return nil, err
		}
		idx, ok := idxVal.(*object.Integer)
		if !ok {
			return nil, hplerr.New(hplerr.Type, n.Index.Pos(), "array index must be an integer, got %s", idxVal.Type())
		}
		if idx.Value < 0 || idx.Value >= int64(len(arr.Elements)) {
			return nil, hplerr.New(hplerr.Value, n.Index.Pos(), "array index %d out of range (length %d)", idx.Value, len(arr.Elements))
		}
		return arr.Elements[idx.Value], nil

	case *ast.FunctionCall:
		return e.evalFunctionCall(n, scope)

	case *ast.MethodCall:
		return e.evalMethodCall(n, scope)

	case *ast.PropertyAccess:
		return e.evalPropertyAccess(n, scope)

	default:
		return nil, hplerr.NewNoPos(hplerr.Syntactic, "unsupported expression %T", expr)
	}
}

func (e *Evaluator) evalFunctionCall(n *ast.FunctionCall, scope *Scope) (object.Value, error) {
	args, err := e.evalArgs(n.Arguments, scope)
	if err != nil {
		return nil, err
	}

	if fn, ok := e.Program.Functions[n.Name]; ok {
		return e.callFunction(fn, args, n.Pos())
	}
	if b, ok := builtins[n.Name]; ok {
		return b(e, args, n.Pos())
	}
	return nil, hplerr.New(hplerr.Name, n.Pos(), "undefined function %q", n.Name)
}

func (e *Evaluator) evalMethodCall(n *ast.MethodCall, scope *Scope) (object.Value, error) {
	recv, err := e.evalExpression(n.Receiver, scope)
	if err != nil {
		return nil, err
	}
	args, err := e.evalArgs(n.Arguments, scope)
	if err != nil {
		return nil, err
	}

	switch r := recv.(type) {
	case *object.Object:
		return e.callMethod(r, n.Name, args, n.Pos())
	case *object.Module:
		fn, ok := r.Functions[n.Name]
		if !ok {
			return nil, hplerr.New(hplerr.Name, n.Pos(), "module %q has no function %q", r.Name, n.Name)
		}
		return callModuleFunction(fn, args, n.Pos())
	default:
		return nil, hplerr.New(hplerr.Type, n.Receiver.Pos(), "cannot call a method on a %s", recv.Type())
	}
}

func (e *Evaluator) evalPropertyAccess(n *ast.PropertyAccess, scope *Scope) (object.Value, error) {
	recv, err := e.evalExpression(n.Receiver, scope)
	if err != nil {
		return nil, err
	}

	switch r := recv.(type) {
	case *object.Object:
		if v, ok := r.Attributes[n.Name]; ok {
			return v, nil
		}
		return nil, hplerr.New(hplerr.Name, n.Pos(), "object of class %q has no attribute %q", r.Class.Name, n.Name)
	case *object.Module:
		if v, ok := r.Constants[n.Name]; ok {
			return v, nil
		}
		if fn, ok := r.Functions[n.Name]; ok {
			return &object.BoundFunction{ModuleName: r.Name, Name: n.Name, Fn: fn}, nil
		}
		return nil, hplerr.New(hplerr.Name, n.Pos(), "module %q has no member %q", r.Name, n.Name)
	default:
		return nil, hplerr.New(hplerr.Type, n.Receiver.Pos(), "cannot access a property on a %s", recv.Type())
	}
}

func (e *Evaluator) evalArgs(exprs []ast.Expression, scope *Scope) ([]object.Value, error) {
	args := make([]object.Value, len(exprs))
	for i, a := range exprs {
		v, err := e.evalExpression(a, scope)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

// evalIncrement implements `target++`: reads target's current integer
// value, writes back value+1, and evaluates to the pre-increment value.
func (e *Evaluator) evalIncrement(target ast.Expression, scope *Scope) (object.Value, error) {
	cur, err := e.evalExpression(target, scope)
	if err != nil {
		return nil, err
	}
	old, ok := cur.(*object.Integer)
	if !ok {
		return nil, hplerr.New(hplerr.Type, target.Pos(), "++ requires an integer, got %s", cur.Type())
	}
	next := &object.Integer{Value: old.Value + 1}

	switch t := target.(type) {
	case *ast.VariableReference:
		scope.Set(t.Name, next)
	case *ast.PropertyAccess:
		recv, err := e.evalExpression(t.Receiver, scope)
		if err != nil {
			return nil, err
		}
		obj, ok := recv.(*object.Object)
		if !ok {
			return nil, hplerr.New(hplerr.Type, t.Receiver.Pos(), "cannot assign property on a %s", recv.Type())
		}
		obj.Attributes[t.Name] = next
	case *ast.ArrayIndex:
		arrVal, err := e.evalExpression(t.Array, scope)
		if err != nil {
			return nil, err
		}
		arr, ok := arrVal.(*object.Array)
		if !ok {
			return nil, hplerr.New(hplerr.Type, t.Array.Pos(), "cannot index a %s", arrVal.Type())
		}
		idxVal, err := e.evalExpression(t.Index, scope)
		if err != nil {
			return nil, err
		}
		idx, ok := idxVal.(*object.Integer)
		if !ok || idx.Value < 0 || idx.Value >= int64(len(arr.Elements)) {
			return nil, hplerr.New(hplerr.Value, t.Index.Pos(), "array index out of range")
		}
		arr.Elements[idx.Value] = next
	default:
		return nil, hplerr.New(hplerr.Syntactic, target.Pos(), "++ requires an assignable target")
	}

	return old, nil
}
