package hplfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDecodeProducesRawMapping(t *testing.T) {
	src := "main: (x) => { echo x }\ncall: main\n"
	raw, err := Decode(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw["call"] != "main" {
		t.Errorf("raw[call] = %v", raw["call"])
	}
	if raw["main"] != "(x) => { echo x }" {
		t.Errorf("raw[main] = %v", raw["main"])
	}
}

func TestLoadSourceBuildsAProgram(t *testing.T) {
	src := "main: () => { echo 1 }\ncall: main\n"
	prog, err := LoadSource(src, "", nil)
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

func TestLoadReadsFileAndResolvesRelativeIncludes(t *testing.T) {
	dir := t.TempDir()
	libPath := filepath.Join(dir, "lib.hpl")
	if err := os.WriteFile(libPath, []byte("helper: () => { echo \"hi\" }\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	mainPath := filepath.Join(dir, "main.hpl")
	mainSrc := "includes:\n  - lib.hpl\nmain: () => { helper() }\ncall: main\n"
	if err := os.WriteFile(mainPath, []byte(mainSrc), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	prog, err := Load(mainPath, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := prog.Functions["helper"]; !ok {
		t.Fatal("expected helper() to be merged in from the relative include")
	}
}

func TestReadFileMissingPathIsAnError(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.hpl")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
