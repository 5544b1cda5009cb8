package stdlib

import (
	"os"

	"github.com/hpl-lang/hpl/internal/hplerr"
	"github.com/hpl-lang/hpl/internal/object"
)

// OS returns the built-in `os` module: environment and argument access.
// scriptArgs are the arguments passed to the running script, distinct
// from the host CLI's own flags.
func OS(scriptArgs []string) *object.Module {
	argVals := make([]object.Value, len(scriptArgs))
	for i, a := range scriptArgs {
		argVals[i] = &object.String{Value: a}
	}

	return &object.Module{
		Name:        "os",
		Description: "host environment and script argument access",
		Constants: map[string]object.Value{
			"PATHSEP": &object.String{Value: string(os.PathSeparator)},
		},
		Functions: map[string]object.BuiltinFunction{
			"getenv": func(args []object.Value) (object.Value, error) {
				if len(args) != 1 {
					return nil, hplerr.NewNoPos(hplerr.Value, "os.getenv expects 1 argument, got %d", len(args))
				}
				name, ok := args[0].(*object.String)
				if !ok {
					return nil, hplerr.NewNoPos(hplerr.Type, "os.getenv requires a string, got %s", args[0].Type())
				}
				return &object.String{Value: os.Getenv(name.Value)}, nil
			},
			"args": func(args []object.Value) (object.Value, error) {
				if len(args) != 0 {
					return nil, hplerr.NewNoPos(hplerr.Value, "os.args expects 0 arguments, got %d", len(args))
				}
				return &object.Array{Elements: append([]object.Value(nil), argVals...)}, nil
			},
		},
	}
}
