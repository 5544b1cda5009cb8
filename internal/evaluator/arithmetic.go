package evaluator

import (
	"math"

	"github.com/hpl-lang/hpl/internal/ast"
	"github.com/hpl-lang/hpl/internal/hplerr"
	"github.com/hpl-lang/hpl/internal/object"
)

// evalBinaryOp implements arithmetic, comparison, and logical operator
// rules, including short-circuit evaluation of && and ||: the right
// operand is only evaluated when its value could affect the result.
func (e *Evaluator) evalBinaryOp(n *ast.BinaryOp, scope *Scope) (object.Value, error) {
	if n.Operator == "&&" || n.Operator == "||" {
		return e.evalLogicalOp(n, scope)
	}

	left, err := e.evalExpression(n.Left, scope)
	if err != nil {
		return nil, err
	}
	right, err := e.evalExpression(n.Right, scope)
	if err != nil {
		return nil, err
	}

	switch n.Operator {
	case "+":
		return evalAdd(left, right, n)
	case "-", "*", "/", "%":
		return evalArith(n.Operator, left, right, n)
	case "==":
		return object.BoolValue(valuesEqual(left, right)), nil
	case "!=":
		return object.BoolValue(!valuesEqual(left, right)), nil
	case "<", ">", "<=", ">=":
		return evalCompare(n.Operator, left, right, n)
	default:
		return nil, hplerr.New(hplerr.Syntactic, n.Pos(), "unsupported operator %q", n.Operator)
	}
}

func (e *Evaluator) evalLogicalOp(n *ast.BinaryOp, scope *Scope) (object.Value, error) {
	left, err := e.evalExpression(n.Left, scope)
	if err != nil {
		return nil, err
	}
	lb, ok := object.Truthy(left)
	if !ok {
		return nil, hplerr.New(hplerr.Type, n.Left.Pos(), "%s requires a boolean, got %s", n.Operator, left.Type())
	}

	if n.Operator == "&&" && !lb {
		return object.False, nil
	}
	if n.Operator == "||" && lb {
		return object.True, nil
	}

	right, err := e.evalExpression(n.Right, scope)
	if err != nil {
		return nil, err
	}
	rb, ok := object.Truthy(right)
	if !ok {
		return nil, hplerr.New(hplerr.Type, n.Right.Pos(), "%s requires a boolean, got %s", n.Operator, right.Type())
	}
	return object.BoolValue(rb), nil
}

func (e *Evaluator) evalUnaryOp(n *ast.UnaryOp, scope *Scope) (object.Value, error) {
	v, err := e.evalExpression(n.Right, scope)
	if err != nil {
		return nil, err
	}
	switch n.Operator {
	case "!":
		b, ok := object.Truthy(v)
		if !ok {
			return nil, hplerr.New(hplerr.Type, n.Right.Pos(), "! requires a boolean, got %s", v.Type())
		}
		return object.BoolValue(!b), nil
	default:
		return nil, hplerr.New(hplerr.Syntactic, n.Pos(), "unsupported unary operator %q", n.Operator)
	}
}

// evalAdd implements the `+` overload: numeric addition with int/float
// promotion, or string concatenation (using the uniform display rule)
// whenever either side is a string.
func evalAdd(left, right object.Value, n *ast.BinaryOp) (object.Value, error) {
	_, leftStr := left.(*object.String)
	_, rightStr := right.(*object.String)
	if leftStr || rightStr {
		return &object.String{Value: left.Display() + right.Display()}, nil
	}
	if !object.IsNumeric(left) || !object.IsNumeric(right) {
		return nil, hplerr.New(hplerr.Type, n.Pos(), "+ requires numbers or strings, got %s and %s", left.Type(), right.Type())
	}
	return numericResult(left, right, func(a, b float64) float64 { return a + b }, func(a, b int64) int64 { return a + b }), nil
}

func evalArith(op string, left, right object.Value, n *ast.BinaryOp) (object.Value, error) {
	if !object.IsNumeric(left) || !object.IsNumeric(right) {
		return nil, hplerr.New(hplerr.Type, n.Pos(), "%s requires numbers, got %s and %s", op, left.Type(), right.Type())
	}

	lf, _ := object.AsFloat64(left)
	rf, _ := object.AsFloat64(right)

	switch op {
	case "-":
		return numericResult(left, right, func(a, b float64) float64 { return a - b }, func(a, b int64) int64 { return a - b }), nil
	case "*":
		return numericResult(left, right, func(a, b float64) float64 { return a * b }, func(a, b int64) int64 { return a * b }), nil
	case "/":
		if rf == 0 {
			return nil, hplerr.New(hplerr.Value, n.Pos(), "Division by zero")
		}
		return &object.Float{Value: lf / rf}, nil
	case "%":
		if rf == 0 {
			return nil, hplerr.New(hplerr.Value, n.Pos(), "Division by zero")
		}
		_, leftInt := left.(*object.Integer)
		_, rightInt := right.(*object.Integer)
		if leftInt && rightInt {
			li, ri := int64(lf), int64(rf)
			return &object.Integer{Value: li % ri}, nil
		}
		return &object.Float{Value: math.Mod(lf, rf)}, nil
	}
	return nil, hplerr.New(hplerr.Syntactic, n.Pos(), "unsupported operator %q", op)
}

// numericResult applies floatOp/intOp depending on whether either
// operand is a Float, implementing int/float promotion.
func numericResult(left, right object.Value, floatOp func(a, b float64) float64, intOp func(a, b int64) int64) object.Value {
	_, leftFloat := left.(*object.Float)
	_, rightFloat := right.(*object.Float)
	if leftFloat || rightFloat {
		lf, _ := object.AsFloat64(left)
		rf, _ := object.AsFloat64(right)
		return &object.Float{Value: floatOp(lf, rf)}
	}
	li := left.(*object.Integer).Value
	ri := right.(*object.Integer).Value
	return &object.Integer{Value: intOp(li, ri)}
}

func evalCompare(op string, left, right object.Value, n *ast.BinaryOp) (object.Value, error) {
	if ls, ok := left.(*object.String); ok {
		rs, ok := right.(*object.String)
		if !ok {
			return nil, hplerr.New(hplerr.Type, n.Pos(), "%s requires numbers or strings, got %s and %s", op, left.Type(), right.Type())
		}
		switch op {
		case "<":
			return object.BoolValue(ls.Value < rs.Value), nil
		case ">":
			return object.BoolValue(ls.Value > rs.Value), nil
		case "<=":
			return object.BoolValue(ls.Value <= rs.Value), nil
		case ">=":
			return object.BoolValue(ls.Value >= rs.Value), nil
		}
		return nil, hplerr.New(hplerr.Syntactic, n.Pos(), "unsupported operator %q", op)
	}

	if !object.IsNumeric(left) || !object.IsNumeric(right) {
		return nil, hplerr.New(hplerr.Type, n.Pos(), "%s requires numbers or strings, got %s and %s", op, left.Type(), right.Type())
	}
	lf, _ := object.AsFloat64(left)
	rf, _ := object.AsFloat64(right)

	switch op {
	case "<":
		return object.BoolValue(lf < rf), nil
	case ">":
		return object.BoolValue(lf > rf), nil
	case "<=":
		return object.BoolValue(lf <= rf), nil
	case ">=":
		return object.BoolValue(lf >= rf), nil
	}
	return nil, hplerr.New(hplerr.Syntactic, n.Pos(), "unsupported operator %q", op)
}

// valuesEqual implements == / != across the whole value model: numeric
// values compare by value across int/float, strings and booleans compare
// by value, null equals only null, and arrays/objects/modules compare by
// reference identity.
func valuesEqual(a, b object.Value) bool {
	if object.IsNumeric(a) && object.IsNumeric(b) {
		af, _ := object.AsFloat64(a)
		bf, _ := object.AsFloat64(b)
		return af == bf
	}
	switch av := a.(type) {
	case *object.String:
		bv, ok := b.(*object.String)
		return ok && av.Value == bv.Value
	case *object.Boolean:
		bv, ok := b.(*object.Boolean)
		return ok && av.Value == bv.Value
	case *object.Null:
		_, ok := b.(*object.Null)
		return ok
	case *object.Array:
		bv, ok := b.(*object.Array)
		return ok && av == bv
	case *object.Object:
		bv, ok := b.(*object.Object)
		return ok && av == bv
	case *object.Module:
		bv, ok := b.(*object.Module)
		return ok && av == bv
	default:
		return false
	}
}
