package program

import "testing"

func TestSplitArrowFunction(t *testing.T) {
	params, body, err := splitArrowFunction(`(a, b) => { return a + b }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(params) != 2 || params[0] != "a" || params[1] != "b" {
		t.Errorf("params = %v", params)
	}
	if body != " return a + b " {
		t.Errorf("body = %q", body)
	}
}

func TestSplitArrowFunctionNoParams(t *testing.T) {
	params, body, err := splitArrowFunction(`() => { echo 1 }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(params) != 0 {
		t.Errorf("expected no params, got %v", params)
	}
	if body != " echo 1 " {
		t.Errorf("body = %q", body)
	}
}

func TestSplitArrowFunctionBraceInsideString(t *testing.T) {
	params, body, err := splitArrowFunction(`(x) => { echo "}" }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(params) != 1 {
		t.Errorf("params = %v", params)
	}
	want := ` echo "}" `
	if body != want {
		t.Errorf("body = %q, want %q", body, want)
	}
}

func TestSplitArrowFunctionMissingArrow(t *testing.T) {
	if _, _, err := splitArrowFunction(`(a) { echo a }`); err == nil {
		t.Fatal("expected an error for a missing '=>'")
	}
}

func TestSplitArrowFunctionMissingOpenParen(t *testing.T) {
	if _, _, err := splitArrowFunction(`a => { echo a }`); err == nil {
		t.Fatal("expected an error for a missing leading '('")
	}
}
