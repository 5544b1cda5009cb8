package stdlib

import (
	"time"

	"github.com/hpl-lang/hpl/internal/hplerr"
	"github.com/hpl-lang/hpl/internal/object"
)

// Time returns the built-in `time` module: read-only clock access. No
// sleep or timer functions are exposed, since the language has no
// concurrency model for them to interact with.
func Time() *object.Module {
	return &object.Module{
		Name:        "time",
		Description: "read-only access to the wall clock",
		Constants:   map[string]object.Value{},
		Functions: map[string]object.BuiltinFunction{
			"now": func(args []object.Value) (object.Value, error) {
				if len(args) != 0 {
					return nil, hplerr.NewNoPos(hplerr.Value, "time.now expects 0 arguments, got %d", len(args))
				}
				return &object.Integer{Value: time.Now().Unix()}, nil
			},
			"nowMillis": func(args []object.Value) (object.Value, error) {
				if len(args) != 0 {
					return nil, hplerr.NewNoPos(hplerr.Value, "time.nowMillis expects 0 arguments, got %d", len(args))
				}
				return &object.Integer{Value: time.Now().UnixMilli()}, nil
			},
		},
	}
}
