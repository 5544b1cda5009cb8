package evaluator_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hpl-lang/hpl/internal/evaluator"
	"github.com/hpl-lang/hpl/hplfile"
)

// runScript loads and runs a document from in-memory source, returning
// everything written via echo.
func runScript(t *testing.T, src string) string {
	t.Helper()
	prog, err := hplfile.LoadSource(src, "", nil)
	if err != nil {
		t.Fatalf("LoadSource: %v", err)
	}
	var out bytes.Buffer
	e := evaluator.New(prog, nil, &out, strings.NewReader(""))
	if err := e.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String()
}

func TestArithmeticAndEcho(t *testing.T) {
	src := `main: () => { echo 1 + 2 * 3 }
call: main
`
	if got := runScript(t, src); got != "7\n" {
		t.Errorf("output = %q, want %q", got, "7\n")
	}
}

func TestIntFloatPromotion(t *testing.T) {
	src := `main: () => { echo 1 + 2.5 }
call: main
`
	if got := runScript(t, src); got != "3.5\n" {
		t.Errorf("output = %q, want %q", got, "3.5\n")
	}
}

func TestStringConcatenationViaPlus(t *testing.T) {
	src := `main: () => { echo "count: " + 3 }
call: main
`
	if got := runScript(t, src); got != "count: 3\n" {
		t.Errorf("output = %q, want %q", got, "count: 3\n")
	}
}

func TestDivisionByZeroIsAValueError(t *testing.T) {
	src := `main: () => { echo 1 / 0 }
call: main
`
	prog, err := hplfile.LoadSource(src, "", nil)
	if err != nil {
		t.Fatalf("LoadSource: %v", err)
	}
	var out bytes.Buffer
	e := evaluator.New(prog, nil, &out, strings.NewReader(""))
	err = e.Run()
	if err == nil || !strings.Contains(err.Error(), "Division by zero") {
		t.Fatalf("Run() error = %v, want a Division by zero error", err)
	}
}

func TestIfElse(t *testing.T) {
	src := `main: (n) => {
  if (n > 0) {
    echo "positive"
  } else {
    echo "non-positive"
  }
}
call: main(5)
`
	if got := runScript(t, src); got != "positive\n" {
		t.Errorf("output = %q", got)
	}
}

func TestWhileLoopAccumulates(t *testing.T) {
	src := `main: () => {
  i = 0
  total = 0
  while (i < 5) {
    total = total + i
    i = i + 1
  }
  echo total
}
call: main
`
	if got := runScript(t, src); got != "10\n" {
		t.Errorf("output = %q, want 10", got)
	}
}

func TestForLoopWithBreak(t *testing.T) {
	src := `main: () => {
  for (i = 0; i < 10; i++) {
    if (i == 3) {
      break
    }
    echo i
  }
}
call: main
`
	want := "0\n1\n2\n"
	if got := runScript(t, src); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestTryCatchBindsMessage(t *testing.T) {
	src := `main: () => {
  try {
    echo 1 / 0
  } catch (e) {
    echo "caught: " + e
  }
}
call: main
`
	if got := runScript(t, src); got != "caught: Division by zero\n" {
		t.Errorf("output = %q", got)
	}
}

func TestShortCircuitAndSkipsRightOperand(t *testing.T) {
	src := `guard: () => { echo "evaluated" return true }
main: () => {
  if (false && guard()) {
    echo "unreachable"
  }
  echo "done"
}
call: main
`
	if got := runScript(t, src); got != "done\n" {
		t.Errorf("output = %q, want right operand never evaluated", got)
	}
}

func TestShortCircuitOrSkipsRightOperand(t *testing.T) {
	src := `guard: () => { echo "evaluated" return false }
main: () => {
  if (true || guard()) {
    echo "done"
  }
}
call: main
`
	if got := runScript(t, src); got != "done\n" {
		t.Errorf("output = %q, want right operand never evaluated", got)
	}
}

func TestClassInheritanceAndThisBinding(t *testing.T) {
	src := `
classes:
  Animal:
    speak: () => { echo "..." }
  Dog:
    parent: Animal
    speak: () => { echo this.name + " says woof" }
    init: () => { this.name = "Rex" }
objects:
  d: Dog()
main: () => { d.speak() }
call: main
`
	if got := runScript(t, src); got != "Rex says woof\n" {
		t.Errorf("output = %q", got)
	}
}

func TestArrayLiteralIndexAndAssign(t *testing.T) {
	src := `main: () => {
  nums = [10, 20, 30]
  echo nums[1]
  nums[1] = 99
  echo nums
}
call: main
`
	want := "20\n[10, 99, 30]\n"
	if got := runScript(t, src); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRecursionAndReturn(t *testing.T) {
	src := `fact: (n) => {
  if (n <= 1) {
    return 1
  }
  return n * fact(n - 1)
}
main: () => { echo fact(5) }
call: main
`
	if got := runScript(t, src); got != "120\n" {
		t.Errorf("output = %q, want 120", got)
	}
}

func TestCallDirectiveWithLiteralArguments(t *testing.T) {
	src := `greet: (name, times) => {
  i = 0
  while (i < times) {
    echo "hi " + name
    i++
  }
}
call: greet("Ada", 2)
`
	want := "hi Ada\nhi Ada\n"
	if got := runScript(t, src); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestUndefinedVariableIsNameError(t *testing.T) {
	src := `main: () => { echo missing }
call: main
`
	prog, err := hplfile.LoadSource(src, "", nil)
	if err != nil {
		t.Fatalf("LoadSource: %v", err)
	}
	var out bytes.Buffer
	e := evaluator.New(prog, nil, &out, strings.NewReader(""))
	err = e.Run()
	if err == nil || !strings.Contains(err.Error(), "undefined variable") {
		t.Fatalf("Run() error = %v, want undefined variable error", err)
	}
}

func TestStackOverflowOnUnboundedRecursion(t *testing.T) {
	src := `loop: () => { return loop() }
main: () => { loop() }
call: main
`
	prog, err := hplfile.LoadSource(src, "", nil)
	if err != nil {
		t.Fatalf("LoadSource: %v", err)
	}
	var out bytes.Buffer
	e := evaluator.New(prog, nil, &out, strings.NewReader(""))
	err = e.Run()
	if err == nil || !strings.Contains(err.Error(), "stack overflow") {
		t.Fatalf("Run() error = %v, want stack overflow error", err)
	}
}
