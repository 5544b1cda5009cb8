// Command hpl-debug is a separate, deliberately low-ceremony entry point
// for diagnosing a failing HPL program: on failure it prints the
// formatted error (kind, message, position and call-stack trace), and,
// when run with --verbose or with HPL_DEBUG=1 in the environment, a
// snapshot of the global scope at the point Run() returned. No source
// line or caret is shown.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hpl-lang/hpl/hplfile"
	"github.com/hpl-lang/hpl/internal/evaluator"
	"github.com/hpl-lang/hpl/internal/hplerr"
	"github.com/hpl-lang/hpl/internal/module"
)

func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmt.Fprintln(os.Stderr, "usage: hpl-debug <file.hpl> [--verbose]")
		os.Exit(2)
	}
	verbose := os.Getenv("HPL_DEBUG") == "1"
	for _, a := range os.Args {
		if a == "--verbose" {
			verbose = true
		}
	}

	filename := os.Args[1]
	searchPaths := []string{filepath.Dir(filename)}
	if env := os.Getenv("HPL_MODULE_PATHS"); env != "" {
		searchPaths = append(searchPaths, strings.Split(env, string(os.PathListSeparator))...)
	}

	prog, err := hplfile.Load(filename, searchPaths)
	if err != nil {
		fmt.Fprintln(os.Stderr, describe(err))
		os.Exit(1)
	}
	for _, w := range prog.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	resolver := module.New(searchPaths, os.Stdout, os.Stdin, os.Args[2:])
	ev := evaluator.New(prog, resolver, os.Stdout, os.Stdin)

	if err := ev.Run(); err != nil {
		fmt.Fprintln(os.Stderr, describe(err))
		if verbose {
			dumpGlobals(ev)
		}
		os.Exit(1)
	}
}

func describe(err error) string {
	if herr, ok := err.(*hplerr.Error); ok {
		return herr.Format()
	}
	return err.Error()
}

func dumpGlobals(ev *evaluator.Evaluator) {
	snap := ev.Global.Snapshot()
	names := make([]string, 0, len(snap))
	for name := range snap {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(os.Stderr, "--- global scope at failure ---")
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %s = %s\n", name, snap[name].Display())
	}
}
