package program

import (
	"fmt"
	"strings"
	"testing"
)

func TestBuildParsesTopLevelFunctionsAndCall(t *testing.T) {
	raw := map[string]any{
		"main": `() => { echo 1 }`,
		"call": "main",
	}

	prog, err := Build(raw, "", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := prog.Functions["main"]; !ok {
		t.Fatal("expected a main function")
	}
	if prog.Call == nil || prog.Call.Name != "main" {
		t.Fatalf("call directive = %#v", prog.Call)
	}
}

func TestBuildWiresClassInheritanceRegardlessOfOrder(t *testing.T) {
	raw := map[string]any{
		"classes": map[string]any{
			"Dog": map[string]any{
				"parent": "Animal",
				"bark":   `() => { echo "woof" }`,
			},
			"Animal": map[string]any{
				"speak": `() => { echo "..." }`,
			},
		},
	}

	prog, err := Build(raw, "", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dog, ok := prog.Classes["Dog"]
	if !ok {
		t.Fatal("expected Dog class")
	}
	if dog.Parent == nil || dog.Parent.Name != "Animal" {
		t.Fatalf("Dog.Parent = %#v", dog.Parent)
	}
	if _, _, ok := dog.ResolveMethod("speak"); !ok {
		t.Fatal("Dog should inherit speak from Animal")
	}
}

func TestBuildUndeclaredParentIsNameError(t *testing.T) {
	raw := map[string]any{
		"classes": map[string]any{
			"Dog": map[string]any{
				"parent": "Ghost",
			},
		},
	}
	if _, err := Build(raw, "", nil, nil); err == nil {
		t.Fatal("expected an error for an undeclared parent class")
	}
}

func TestBuildObjectsInstantiateDeclaredClasses(t *testing.T) {
	raw := map[string]any{
		"classes": map[string]any{
			"Counter": map[string]any{},
		},
		"objects": map[string]any{
			"c": "Counter()",
		},
	}
	prog, err := Build(raw, "", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prog.Objects["c"] != "Counter()" {
		t.Errorf("Objects[c] = %q", prog.Objects["c"])
	}
}

func TestBuildResolvesIncludes(t *testing.T) {
	included := map[string]any{
		"helper": `() => { echo "from include" }`,
	}
	read := func(path string) (map[string]any, error) {
		if strings.HasSuffix(path, "lib.hpl") {
			return included, nil
		}
		return nil, fmt.Errorf("not found: %s", path)
	}

	raw := map[string]any{
		"includes": []any{"lib.hpl"},
		"main":     `() => { helper() }`,
		"call":     "main",
	}

	prog, err := Build(raw, "", nil, read)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := prog.Functions["helper"]; !ok {
		t.Fatal("expected helper() to be merged in from the include")
	}
}

func TestBuildUnresolvedIncludeIsAWarningNotAnError(t *testing.T) {
	read := func(path string) (map[string]any, error) {
		return nil, fmt.Errorf("missing: %s", path)
	}
	raw := map[string]any{
		"includes": []any{"missing.hpl"},
	}
	prog, err := Build(raw, "", nil, read)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", prog.Warnings)
	}
}
