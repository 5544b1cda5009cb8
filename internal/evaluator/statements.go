package evaluator

import (
	"github.com/hpl-lang/hpl/internal/ast"
	"github.com/hpl-lang/hpl/internal/hplerr"
	"github.com/hpl-lang/hpl/internal/object"
)

// execBlock runs every statement in block against scope in order,
// stopping as soon as one produces a control-flow signal or an error.
func (e *Evaluator) execBlock(block *ast.Block, scope *Scope) (object.Value, signal, error) {
	for _, stmt := range block.Statements {
		val, sig, err := e.execStatement(stmt, scope)
		if err != nil {
			return nil, sigNone, err
		}
		if sig != sigNone {
			return val, sig, nil
		}
	}
	return nil, sigNone, nil
}

func (e *Evaluator) execStatement(stmt ast.Statement, scope *Scope) (object.Value, signal, error) {
	switch n := stmt.(type) {

	case *ast.Assign:
		return nil, sigNone, e.execAssign(n, scope)

	case *ast.Return:
		if n.Value == nil {
			return object.Nil, sigReturn, nil
		}
		v, err := e.evalExpression(n.Value, scope)
		if err != nil {
			return nil, sigNone, err
		}
		return v, sigReturn, nil

	case *ast.Break:
		return nil, sigBreak, nil

	case *ast.Continue:
		return nil, sigContinue, nil

	case *ast.If:
		cond, err := e.evalExpression(n.Condition, scope)
		if err != nil {
			return nil, sigNone, err
		}
		truth, ok := object.Truthy(cond)
		if !ok {
			return nil, sigNone, hplerr.New(hplerr.Type, n.Condition.Pos(), "if condition must be a boolean, got %s", cond.Type())
		}
		if truth {
			return e.execBlock(n.Consequence, scope)
		}
		if n.Alternative != nil {
			return e.execBlock(n.Alternative, scope)
		}
		return nil, sigNone, nil

	case *ast.While:
		for {
			cond, err := e.evalExpression(n.Condition, scope)
			if err != nil {
				return nil, sigNone, err
			}
			truth, ok := object.Truthy(cond)
			if !ok {
				return nil, sigNone, hplerr.New(hplerr.Type, n.Condition.Pos(), "while condition must be a boolean, got %s", cond.Type())
			}
			if !truth {
				return nil, sigNone, nil
			}
			val, sig, err := e.execBlock(n.Body, scope)
			if err != nil {
				return nil, sigNone, err
			}
			switch sig {
			case sigBreak:
				return nil, sigNone, nil
			case sigReturn:
				return val, sig, nil
			}
		}

	case *ast.For:
		if n.Init != nil {
			if _, _, err := e.execStatement(n.Init, scope); err != nil {
				return nil, sigNone, err
			}
		}
		for {
			if n.Cond != nil {
				cond, err := e.evalExpression(n.Cond, scope)
				if err != nil {
					return nil, sigNone, err
				}
				truth, ok := object.Truthy(cond)
				if !ok {
					return nil, sigNone, hplerr.New(hplerr.Type, n.Cond.Pos(), "for condition must be a boolean, got %s", cond.Type())
				}
				if !truth {
					return nil, sigNone, nil
				}
			}
			val, sig, err := e.execBlock(n.Body, scope)
			if err != nil {
				return nil, sigNone, err
			}
			if sig == sigBreak {
				return nil, sigNone, nil
			}
			if sig == sigReturn {
				return val, sig, nil
			}
			if n.Step != nil {
				if _, _, err := e.execStatement(n.Step, scope); err != nil {
					return nil, sigNone, err
				}
			}
		}

	case *ast.TryCatch:
		val, sig, err := e.execBlock(n.Try, scope)
		if err == nil {
			return val, sig, nil
		}
		herr, ok := err.(*hplerr.Error)
		if !ok {
			return nil, sigNone, err
		}
		scope.Declare(n.CatchName, &object.String{Value: herr.Message})
		return e.execBlock(n.Catch, scope)

	case *ast.Echo:
		v, err := e.evalExpression(n.Value, scope)
		if err != nil {
			return nil, sigNone, err
		}
		e.echo(v)
		return nil, sigNone, nil

	case *ast.ImportStatement:
		if err := e.registerModule(n.Module, n.Alias); err != nil {
			return nil, sigNone, err
		}
		return nil, sigNone, nil

	case *ast.IncrementStatement:
		if _, err := e.evalIncrement(n.Target, scope); err != nil {
			return nil, sigNone, err
		}
		return nil, sigNone, nil

	case *ast.ExpressionStatement:
		if n.Expression == nil {
			return nil, sigNone, nil
		}
		_, err := e.evalExpression(n.Expression, scope)
		return nil, sigNone, err

	default:
		return nil, sigNone, hplerr.NewNoPos(hplerr.Syntactic, "unsupported statement %T", stmt)
	}
}

func (e *Evaluator) execAssign(n *ast.Assign, scope *Scope) error {
	val, err := e.evalExpression(n.Value, scope)
	if err != nil {
		return err
	}

	switch n.Kind {
	case ast.TargetName:
		scope.Set(n.Name, val)
		return nil

	case ast.TargetProperty:
		recv, err := e.evalExpression(n.PropertyReceiver, scope)
		if err != nil {
			return err
		}
		obj, ok := recv.(*object.Object)
		if !ok {
			return hplerr.New(hplerr.Type, n.PropertyReceiver.Pos(), "cannot assign property on a %s", recv.Type())
		}
		obj.Attributes[n.PropertyName] = val
		return nil

	case ast.TargetIndex:
		arrVal, err := e.evalExpression(n.IndexArray, scope)
		if err != nil {
			return err
		}
		arr, ok := arrVal.(*object.Array)
		if !ok {
			return hplerr.New(hplerr.Type, n.IndexArray.Pos(), "cannot index a %s", arrVal.Type())
		}
		idxVal, err := e.evalExpression(n.IndexExpr, scope)
		if err != nil {
			return err
		}
		idx, ok := idxVal.(*object.Integer)
		if !ok {
			return hplerr.New(hplerr.Type, n.IndexExpr.Pos(), "array index must be an integer, got %s", idxVal.Type())
		}
		if idx.Value < 0 || idx.Value >= int64(len(arr.Elements)) {
			return hplerr.New(hplerr.Value, n.IndexExpr.Pos(), "array index %d out of range (length %d)", idx.Value, len(arr.Elements))
		}
		arr.Elements[idx.Value] = val
		return nil

	default:
		return hplerr.NewNoPos(hplerr.Syntactic, "unsupported assignment target")
	}
}
