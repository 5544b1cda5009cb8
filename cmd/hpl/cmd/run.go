package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hpl-lang/hpl/hplfile"
	"github.com/hpl-lang/hpl/internal/evaluator"
	"github.com/hpl-lang/hpl/internal/hplerr"
	"github.com/hpl-lang/hpl/internal/module"
	"github.com/hpl-lang/hpl/internal/program"
)

var evalSource string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run an HPL document",
	Long: `Load, resolve, and execute an HPL document.

Examples:
  # Run a document from disk
  hpl run program.hpl

  # Run inline source instead of reading a file
  hpl run -e "main: () => { echo 1 }"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalSource, "eval", "e", "", "run inline document source instead of reading a file")
}

func runScript(cmd *cobra.Command, args []string) error {
	prog, filename, err := loadProgram(args)
	if err != nil {
		return err
	}
	if len(prog.Warnings) > 0 && verbose {
		for _, w := range prog.Warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w)
		}
	}

	resolver := module.New(allSearchPaths(filename), os.Stdout, os.Stdin, args)
	ev := evaluator.New(prog, resolver, os.Stdout, os.Stdin)

	if err := ev.Run(); err != nil {
		return reportRuntimeError(err)
	}
	return nil
}

// loadProgram resolves the run command's input selection: `-e` inline
// document source, or a single file-path argument.
func loadProgram(args []string) (*program.Program, string, error) {
	if evalSource != "" {
		prog, err := hplfile.LoadSource(evalSource, ".", allSearchPaths(""))
		return prog, "<eval>", err
	}
	if len(args) != 1 {
		return nil, "", fmt.Errorf("either provide a file path or use -e for inline source")
	}
	prog, err := hplfile.Load(args[0], allSearchPaths(args[0]))
	return prog, args[0], err
}

// allSearchPaths merges --module-path flags, HPL_MODULE_PATHS, and the
// document's own directory.
func allSearchPaths(filename string) []string {
	var paths []string
	paths = append(paths, searchPaths...)
	if env := os.Getenv("HPL_MODULE_PATHS"); env != "" {
		paths = append(paths, strings.Split(env, string(os.PathListSeparator))...)
	}
	if configured, err := readSearchPathConfig(); err == nil {
		paths = append(paths, configured...)
	}
	if filename != "" && filename != "<eval>" {
		paths = append(paths, filepath.Dir(filename))
	}
	return paths
}

func reportRuntimeError(err error) error {
	if herr, ok := err.(*hplerr.Error); ok {
		fmt.Fprintln(os.Stderr, herr.Format())
		return fmt.Errorf("execution failed")
	}
	return err
}
