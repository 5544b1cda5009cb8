package evaluator

import (
	"strings"
	"testing"

	"github.com/hpl-lang/hpl/internal/object"
	"github.com/hpl-lang/hpl/internal/token"
)

func mustEvaluator() *Evaluator {
	return New(nil, nil, &strings.Builder{}, strings.NewReader(""))
}

func TestBuiltinLen(t *testing.T) {
	e := mustEvaluator()
	v, err := builtinLen(e, []object.Value{&object.String{Value: "hello"}}, token.Position{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(*object.Integer).Value != 5 {
		t.Errorf("len(hello) = %v, want 5", v)
	}

	v, err = builtinLen(e, []object.Value{&object.Array{Elements: []object.Value{object.Nil, object.Nil}}}, token.Position{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(*object.Integer).Value != 2 {
		t.Errorf("len([nil, nil]) = %v, want 2", v)
	}

	if _, err := builtinLen(e, []object.Value{&object.Integer{Value: 1}}, token.Position{}); err == nil {
		t.Error("expected a type error for len(1)")
	}
}

func TestBuiltinIntConversions(t *testing.T) {
	e := mustEvaluator()
	tests := []struct {
		arg  object.Value
		want int64
	}{
		{&object.Float{Value: 3.9}, 3},
		{object.BoolValue(true), 1},
		{object.BoolValue(false), 0},
		{&object.String{Value: "42"}, 42},
		{&object.String{Value: "3.7"}, 3},
	}
	for _, tt := range tests {
		v, err := builtinInt(e, []object.Value{tt.arg}, token.Position{})
		if err != nil {
			t.Fatalf("int(%v): unexpected error: %v", tt.arg, err)
		}
		if v.(*object.Integer).Value != tt.want {
			t.Errorf("int(%v) = %v, want %d", tt.arg, v, tt.want)
		}
	}

	if _, err := builtinInt(e, []object.Value{&object.String{Value: "nope"}}, token.Position{}); err == nil {
		t.Error("expected an error converting a non-numeric string")
	}
}

func TestBuiltinStrUsesDisplay(t *testing.T) {
	e := mustEvaluator()
	v, err := builtinStr(e, []object.Value{&object.Integer{Value: 7}}, token.Position{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(*object.String).Value != "7" {
		t.Errorf("str(7) = %q", v.(*object.String).Value)
	}
}

func TestBuiltinType(t *testing.T) {
	e := mustEvaluator()
	v, err := builtinType(e, []object.Value{&object.Integer{Value: 1}}, token.Position{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(*object.String).Value != "integer" {
		t.Errorf("type(1) = %q, want %q", v.(*object.String).Value, "integer")
	}
}

func TestBuiltinAbs(t *testing.T) {
	e := mustEvaluator()
	v, err := builtinAbs(e, []object.Value{&object.Integer{Value: -5}}, token.Position{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(*object.Integer).Value != 5 {
		t.Errorf("abs(-5) = %v", v)
	}

	v, err = builtinAbs(e, []object.Value{&object.Float{Value: -1.5}}, token.Position{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(*object.Float).Value != 1.5 {
		t.Errorf("abs(-1.5) = %v", v)
	}
}

func TestBuiltinMaxMin(t *testing.T) {
	e := mustEvaluator()
	v, err := builtinMax(e, []object.Value{&object.Integer{Value: 3}, &object.Integer{Value: 9}}, token.Position{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(*object.Integer).Value != 9 {
		t.Errorf("max(3, 9) = %v", v)
	}

	v, err = builtinMin(e, []object.Value{&object.Float{Value: 3.5}, &object.Integer{Value: 2}}, token.Position{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := object.AsFloat64(v)
	if got != 2 {
		t.Errorf("min(3.5, 2) = %v", v)
	}
}

func TestBuiltinInputReadsOneLineAndStripsCRLF(t *testing.T) {
	e := New(nil, nil, &strings.Builder{}, strings.NewReader("hello\r\nworld\r\n"))
	v, err := builtinInput(e, nil, token.Position{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(*object.String).Value != "hello" {
		t.Errorf("input() = %q, want %q", v.(*object.String).Value, "hello")
	}
}

func TestBuiltinInputPrintsPrompt(t *testing.T) {
	var out strings.Builder
	e := New(nil, nil, &out, strings.NewReader("x\n"))
	if _, err := builtinInput(e, []object.Value{&object.String{Value: "> "}}, token.Position{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "> " {
		t.Errorf("prompt output = %q, want %q", out.String(), "> ")
	}
}

func TestArityMismatchIsValueError(t *testing.T) {
	e := mustEvaluator()
	_, err := builtinLen(e, []object.Value{}, token.Position{})
	if err == nil {
		t.Fatal("expected an arity error")
	}
	herr, ok := err.(interface{ Error() string })
	if !ok || !strings.Contains(herr.Error(), "expects 1 argument") {
		t.Errorf("error = %v", err)
	}
}
