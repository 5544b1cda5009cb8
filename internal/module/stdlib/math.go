package stdlib

import (
	"math"

	"github.com/hpl-lang/hpl/internal/hplerr"
	"github.com/hpl-lang/hpl/internal/object"
)

// Math returns the built-in `math` module: basic numeric functions backed
// directly by the standard library, since no third-party dependency in
// use elsewhere offers a general math surface to wrap (see DESIGN.md).
func Math() *object.Module {
	return &object.Module{
		Name:        "math",
		Description: "basic numeric functions",
		Constants: map[string]object.Value{
			"PI": &object.Float{Value: math.Pi},
			"E":  &object.Float{Value: math.E},
		},
		Functions: map[string]object.BuiltinFunction{
			"sqrt":  mathSqrt,
			"pow":   mathPow,
			"floor": mathFloor,
			"ceil":  mathCeil,
			"round": mathRound,
			"abs":   mathAbs,
		},
	}
}

func oneNumericArg(name string, args []object.Value) (float64, error) {
	if len(args) != 1 {
		return 0, hplerr.NewNoPos(hplerr.Value, "math.%s expects 1 argument, got %d", name, len(args))
	}
	f, ok := object.AsFloat64(args[0])
	if !ok {
		return 0, hplerr.NewNoPos(hplerr.Type, "math.%s requires a number, got %s", name, args[0].Type())
	}
	return f, nil
}

func mathSqrt(args []object.Value) (object.Value, error) {
	f, err := oneNumericArg("sqrt", args)
	if err != nil {
		return nil, err
	}
	if f < 0 {
		return nil, hplerr.NewNoPos(hplerr.Value, "math.sqrt of a negative number %g", f)
	}
	return &object.Float{Value: math.Sqrt(f)}, nil
}

func mathPow(args []object.Value) (object.Value, error) {
	if len(args) != 2 {
		return nil, hplerr.NewNoPos(hplerr.Value, "math.pow expects 2 arguments, got %d", len(args))
	}
	base, ok1 := object.AsFloat64(args[0])
	exp, ok2 := object.AsFloat64(args[1])
	if !ok1 || !ok2 {
		return nil, hplerr.NewNoPos(hplerr.Type, "math.pow requires numbers, got %s and %s", args[0].Type(), args[1].Type())
	}
	return &object.Float{Value: math.Pow(base, exp)}, nil
}

func mathFloor(args []object.Value) (object.Value, error) {
	f, err := oneNumericArg("floor", args)
	if err != nil {
		return nil, err
	}
	return &object.Integer{Value: int64(math.Floor(f))}, nil
}

func mathCeil(args []object.Value) (object.Value, error) {
	f, err := oneNumericArg("ceil", args)
	if err != nil {
		return nil, err
	}
	return &object.Integer{Value: int64(math.Ceil(f))}, nil
}

func mathRound(args []object.Value) (object.Value, error) {
	f, err := oneNumericArg("round", args)
	if err != nil {
		return nil, err
	}
	return &object.Integer{Value: int64(math.Round(f))}, nil
}

func mathAbs(args []object.Value) (object.Value, error) {
	if len(args) != 1 {
		return nil, hplerr.NewNoPos(hplerr.Value, "math.abs expects 1 argument, got %d", len(args))
	}
	switch v := args[0].(type) {
	case *object.Integer:
		if v.Value < 0 {
			return &object.Integer{Value: -v.Value}, nil
		}
		return v, nil
	case *object.Float:
		return &object.Float{Value: math.Abs(v.Value)}, nil
	default:
		return nil, hplerr.NewNoPos(hplerr.Type, "math.abs requires a number, got %s", v.Type())
	}
}
