package stdlib

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/hpl-lang/hpl/internal/hplerr"
	"github.com/hpl-lang/hpl/internal/object"
)

// IO returns the built-in `io` module: raw read/write functions, distinct
// from the `echo` statement and `input()` builtin in that `io.write`
// never appends a newline and `io.readLine` never prints a prompt.
func IO(out io.Writer, in io.Reader) *object.Module {
	reader := bufio.NewReader(in)
	return &object.Module{
		Name:        "io",
		Description: "unbuffered read/write access to the program's standard streams",
		Constants:   map[string]object.Value{},
		Functions: map[string]object.BuiltinFunction{
			"write": func(args []object.Value) (object.Value, error) {
				if len(args) != 1 {
					return nil, hplerr.NewNoPos(hplerr.Value, "io.write expects 1 argument, got %d", len(args))
				}
				s, ok := args[0].(*object.String)
				if !ok {
					return nil, hplerr.NewNoPos(hplerr.Type, "io.write requires a string, got %s", args[0].Type())
				}
				fmt.Fprint(out, s.Value)
				return object.Nil, nil
			},
			"readLine": func(args []object.Value) (object.Value, error) {
				if len(args) != 0 {
					return nil, hplerr.NewNoPos(hplerr.Value, "io.readLine expects 0 arguments, got %d", len(args))
				}
				line, err := reader.ReadString('\n')
				if err != nil && line == "" {
					return &object.String{Value: ""}, nil
				}
				line = strings.TrimSuffix(line, "\n")
				line = strings.TrimSuffix(line, "\r")
				return &object.String{Value: line}, nil
			},
		},
	}
}
