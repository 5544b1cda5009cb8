package program

import "testing"

func TestParseCallDirectiveBareName(t *testing.T) {
	call, err := parseCallDirective("main")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if call.Name != "main" || len(call.Args) != 0 {
		t.Errorf("got %#v", call)
	}
}

func TestParseCallDirectiveWithArgs(t *testing.T) {
	call, err := parseCallDirective(`run(1, 2.5, "hi", x)`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if call.Name != "run" || len(call.Args) != 4 {
		t.Fatalf("got %#v", call)
	}
	if call.Args[0].Kind != CallArgInt || call.Args[0].Int != 1 {
		t.Errorf("arg0 = %#v", call.Args[0])
	}
	if call.Args[1].Kind != CallArgFloat || call.Args[1].Float != 2.5 {
		t.Errorf("arg1 = %#v", call.Args[1])
	}
	if call.Args[2].Kind != CallArgString || call.Args[2].String != "hi" {
		t.Errorf("arg2 = %#v", call.Args[2])
	}
	if call.Args[3].Kind != CallArgIdent || call.Args[3].Ident != "x" {
		t.Errorf("arg3 = %#v", call.Args[3])
	}
}

func TestParseCallDirectiveEmptyArgs(t *testing.T) {
	call, err := parseCallDirective("main()")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(call.Args) != 0 {
		t.Errorf("expected no args, got %#v", call.Args)
	}
}
