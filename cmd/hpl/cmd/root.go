// Package cmd implements the hpl command-line surface: run, lex, parse,
// modules, and version. One cobra.Command per file, all registered onto
// a shared rootCmd in their own init().
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information, set by build flags (-ldflags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"

	verbose     bool
	searchPaths []string
)

var rootCmd = &cobra.Command{
	Use:   "hpl",
	Short: "HPL interpreter",
	Long: `hpl runs HPL programs: structured documents that declare classes,
objects, and top-level functions whose bodies are written in a small
curly/indent-based expression language.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose diagnostic output")
	rootCmd.PersistentFlags().StringSliceVar(&searchPaths, "module-path", nil, "additional module search path (repeatable)")
}
