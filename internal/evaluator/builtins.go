package evaluator

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/hpl-lang/hpl/internal/hplerr"
	"github.com/hpl-lang/hpl/internal/object"
	"github.com/hpl-lang/hpl/internal/token"
)

// builtinFn is a free function available by name in every scope. echo
// is a statement (see statements.go) but the rest are ordinary calls
// that a user-declared function of the same name shadows (checked first
// in evalFunctionCall).
type builtinFn func(e *Evaluator, args []object.Value, pos token.Position) (object.Value, error)

var builtins = map[string]builtinFn{
	"len":   builtinLen,
	"int":   builtinInt,
	"str":   builtinStr,
	"type":  builtinType,
	"abs":   builtinAbs,
	"max":   builtinMax,
	"min":   builtinMin,
	"input": builtinInput,
}

func arity(name string, args []object.Value, n int, pos token.Position) error {
	if len(args) != n {
		return hplerr.New(hplerr.Value, pos, "%s expects %d argument(s), got %d", name, n, len(args))
	}
	return nil
}

func builtinLen(_ *Evaluator, args []object.Value, pos token.Position) (object.Value, error) {
	if err := arity("len", args, 1, pos); err != nil {
		return nil, err
	}
	switch v := args[0].(type) {
	case *object.String:
		return &object.Integer{Value: int64(utf8.RuneCountInString(v.Value))}, nil
	case *object.Array:
		return &object.Integer{Value: int64(len(v.Elements))}, nil
	default:
		return nil, hplerr.New(hplerr.Type, pos, "len() requires a string or array, got %s", v.Type())
	}
}

func builtinInt(_ *Evaluator, args []object.Value, pos token.Position) (object.Value, error) {
	if err := arity("int", args, 1, pos); err != nil {
		return nil, err
	}
	switch v := args[0].(type) {
	case *object.Integer:
		return v, nil
	case *object.Float:
		return &object.Integer{Value: int64(v.Value)}, nil
	case *object.Boolean:
		if v.Value {
			return &object.Integer{Value: 1}, nil
		}
		return &object.Integer{Value: 0}, nil
	case *object.String:
		if i, err := strconv.ParseInt(strings.TrimSpace(v.Value), 10, 64); err == nil {
			return &object.Integer{Value: i}, nil
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(v.Value), 64); err == nil {
			return &object.Integer{Value: int64(f)}, nil
		}
		return nil, hplerr.New(hplerr.Value, pos, "cannot convert %q to int", v.Value)
	default:
		return nil, hplerr.New(hplerr.Type, pos, "int() cannot convert a %s", v.Type())
	}
}

func builtinStr(_ *Evaluator, args []object.Value, pos token.Position) (object.Value, error) {
	if err := arity("str", args, 1, pos); err != nil {
		return nil, err
	}
	return &object.String{Value: args[0].Display()}, nil
}

func builtinType(_ *Evaluator, args []object.Value, pos token.Position) (object.Value, error) {
	if err := arity("type", args, 1, pos); err != nil {
		return nil, err
	}
	return &object.String{Value: strings.ToLower(string(args[0].Type()))}, nil
}

func builtinAbs(_ *Evaluator, args []object.Value, pos token.Position) (object.Value, error) {
	if err := arity("abs", args, 1, pos); err != nil {
		return nil, err
	}
	switch v := args[0].(type) {
	case *object.Integer:
		if v.Value < 0 {
			return &object.Integer{Value: -v.Value}, nil
		}
		return v, nil
	case *object.Float:
		if v.Value < 0 {
			return &object.Float{Value: -v.Value}, nil
		}
		return v, nil
	default:
		return nil, hplerr.New(hplerr.Type, pos, "abs() requires a number, got %s", v.Type())
	}
}

func builtinMax(_ *Evaluator, args []object.Value, pos token.Position) (object.Value, error) {
	return minmax("max", args, pos, func(a, b float64) bool { return a > b })
}

func builtinMin(_ *Evaluator, args []object.Value, pos token.Position) (object.Value, error) {
	return minmax("min", args, pos, func(a, b float64) bool { return a < b })
}

func minmax(name string, args []object.Value, pos token.Position, better func(a, b float64) bool) (object.Value, error) {
	if err := arity(name, args, 2, pos); err != nil {
		return nil, err
	}
	a, b := args[0], args[1]
	if !object.IsNumeric(a) || !object.IsNumeric(b) {
		return nil, hplerr.New(hplerr.Type, pos, "%s() requires numbers, got %s and %s", name, a.Type(), b.Type())
	}
	af, _ := object.AsFloat64(a)
	bf, _ := object.AsFloat64(b)
	if better(af, bf) {
		return a, nil
	}
	return b, nil
}

// builtinInput prints an optional prompt (without a trailing newline) and
// reads one line, stripping the trailing newline (and a preceding \r, for
// CRLF input).
func builtinInput(e *Evaluator, args []object.Value, pos token.Position) (object.Value, error) {
	if len(args) > 1 {
		return nil, hplerr.New(hplerr.Value, pos, "input() expects at most 1 argument, got %d", len(args))
	}
	if len(args) == 1 {
		s, ok := args[0].(*object.String)
		if !ok {
			return nil, hplerr.New(hplerr.Type, pos, "input() prompt must be a string, got %s", args[0].Type())
		}
		fmt.Fprint(e.out, s.Value)
	}

	line, err := e.in.ReadString('\n')
	if err != nil && line == "" {
		return &object.String{Value: ""}, nil
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return &object.String{Value: line}, nil
}
