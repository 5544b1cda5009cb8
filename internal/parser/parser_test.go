package parser

import (
	"testing"

	"github.com/hpl-lang/hpl/internal/ast"
	"github.com/hpl-lang/hpl/internal/lexer"
)

func parseBlock(t *testing.T, src string) *ast.Block {
	t.Helper()
	l := lexer.New(src)
	p := New(l)
	block := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, p.Errors())
	}
	return block
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"1 < 2 == 3 < 4", "((1 < 2) == (3 < 4))"},
		{"a && b || c", "((a && b) || c)"},
		{"-1 + 2", "((0 - 1) + 2)"},
		{"!a && b", "((!a) && b)"},
	}

	for _, tt := range tests {
		block := parseBlock(t, tt.input)
		if len(block.Statements) != 1 {
			t.Fatalf("%q: expected 1 statement, got %d", tt.input, len(block.Statements))
		}
		stmt, ok := block.Statements[0].(*ast.ExpressionStatement)
		if !ok {
			t.Fatalf("%q: expected ExpressionStatement, got %T", tt.input, block.Statements[0])
		}
		if got := stmt.Expression.String(); got != tt.want {
			t.Errorf("%q: got %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestAssignmentTargets(t *testing.T) {
	block := parseBlock(t, "x = 1\nthis.y = 2\narr[0] = 3")
	if len(block.Statements) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(block.Statements))
	}

	a0, ok := block.Statements[0].(*ast.Assign)
	if !ok || a0.Kind != ast.TargetName || a0.Name != "x" {
		t.Errorf("statement 0: got %#v", block.Statements[0])
	}

	a1, ok := block.Statements[1].(*ast.Assign)
	if !ok || a1.Kind != ast.TargetProperty || a1.PropertyName != "y" {
		t.Errorf("statement 1: got %#v", block.Statements[1])
	}

	a2, ok := block.Statements[2].(*ast.Assign)
	if !ok || a2.Kind != ast.TargetIndex {
		t.Errorf("statement 2: got %#v", block.Statements[2])
	}
}

func TestIfElseBraceBlock(t *testing.T) {
	block := parseBlock(t, "if (x > 0) { echo 1 } else { echo 2 }")
	stmt, ok := block.Statements[0].(*ast.If)
	if !ok {
		t.Fatalf("expected If, got %T", block.Statements[0])
	}
	if stmt.Alternative == nil {
		t.Fatal("expected an Alternative block")
	}
	if len(stmt.Consequence.Statements) != 1 || len(stmt.Alternative.Statements) != 1 {
		t.Fatalf("expected one statement per branch, got %d/%d",
			len(stmt.Consequence.Statements), len(stmt.Alternative.Statements))
	}
}

func TestIfColonBlock(t *testing.T) {
	block := parseBlock(t, "if (x > 0): echo 1")
	stmt, ok := block.Statements[0].(*ast.If)
	if !ok {
		t.Fatalf("expected If, got %T", block.Statements[0])
	}
	if len(stmt.Consequence.Statements) != 1 {
		t.Fatalf("expected 1 statement in colon block, got %d", len(stmt.Consequence.Statements))
	}
}

func TestIfIndentBlock(t *testing.T) {
	block := parseBlock(t, "if (x > 0)\n  echo 1\n  echo 2")
	stmt, ok := block.Statements[0].(*ast.If)
	if !ok {
		t.Fatalf("expected If, got %T", block.Statements[0])
	}
	if len(stmt.Consequence.Statements) != 2 {
		t.Fatalf("expected 2 statements in indent block, got %d", len(stmt.Consequence.Statements))
	}
}

func TestForLoop(t *testing.T) {
	block := parseBlock(t, "for (i = 0; i < 10; i++) { echo i }")
	stmt, ok := block.Statements[0].(*ast.For)
	if !ok {
		t.Fatalf("expected For, got %T", block.Statements[0])
	}
	if stmt.Init == nil || stmt.Cond == nil || stmt.Step == nil {
		t.Fatal("expected init/cond/step all populated")
	}
}

func TestWhileLoop(t *testing.T) {
	block := parseBlock(t, "while (true) { break }")
	stmt, ok := block.Statements[0].(*ast.While)
	if !ok {
		t.Fatalf("expected While, got %T", block.Statements[0])
	}
	if _, ok := stmt.Body.Statements[0].(*ast.Break); !ok {
		t.Fatalf("expected Break in body, got %T", stmt.Body.Statements[0])
	}
}

func TestTryCatch(t *testing.T) {
	block := parseBlock(t, "try { x = 1 / 0 } catch (e) { echo e }")
	stmt, ok := block.Statements[0].(*ast.TryCatch)
	if !ok {
		t.Fatalf("expected TryCatch, got %T", block.Statements[0])
	}
	if stmt.CatchName != "e" {
		t.Errorf("CatchName = %q, want %q", stmt.CatchName, "e")
	}
}

func TestMethodCallAndPropertyChain(t *testing.T) {
	block := parseBlock(t, "this.items.push(1)")
	stmt, ok := block.Statements[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("expected ExpressionStatement, got %T", block.Statements[0])
	}
	call, ok := stmt.Expression.(*ast.MethodCall)
	if !ok {
		t.Fatalf("expected MethodCall, got %T", stmt.Expression)
	}
	if call.Name != "push" {
		t.Errorf("Name = %q, want %q", call.Name, "push")
	}
	if _, ok := call.Receiver.(*ast.PropertyAccess); !ok {
		t.Errorf("expected receiver to be a PropertyAccess, got %T", call.Receiver)
	}
}

func TestArrayLiteralAndIndex(t *testing.T) {
	block := parseBlock(t, "a = [1, 2, 3]\nb = a[1]")
	assign, ok := block.Statements[0].(*ast.Assign)
	if !ok {
		t.Fatalf("expected Assign, got %T", block.Statements[0])
	}
	lit, ok := assign.Value.(*ast.ArrayLiteral)
	if !ok || len(lit.Elements) != 3 {
		t.Fatalf("expected a 3-element ArrayLiteral, got %#v", assign.Value)
	}

	assign2, ok := block.Statements[1].(*ast.Assign)
	if !ok {
		t.Fatalf("expected Assign, got %T", block.Statements[1])
	}
	if _, ok := assign2.Value.(*ast.ArrayIndex); !ok {
		t.Fatalf("expected ArrayIndex, got %#v", assign2.Value)
	}
}

func TestPostfixIncrementStatement(t *testing.T) {
	block := parseBlock(t, "x++")
	if _, ok := block.Statements[0].(*ast.IncrementStatement); !ok {
		t.Fatalf("expected IncrementStatement, got %T", block.Statements[0])
	}
}

func TestImportWithAlias(t *testing.T) {
	block := parseBlock(t, "import math as m")
	imp, ok := block.Statements[0].(*ast.ImportStatement)
	if !ok {
		t.Fatalf("expected ImportStatement, got %T", block.Statements[0])
	}
	if imp.Module != "math" || imp.Alias != "m" {
		t.Errorf("got Module=%q Alias=%q", imp.Module, imp.Alias)
	}
}

func TestMissingClosingParenIsAnError(t *testing.T) {
	l := lexer.New("if (x > 0 { echo 1 }")
	p := New(l)
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatal("expected at least one syntax error for a missing ')'")
	}
}
