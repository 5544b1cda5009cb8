package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hpl-lang/hpl/internal/lexer"
	"github.com/hpl-lang/hpl/internal/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a function-body source and print its AST",
	Long: `Parse raw HPL expression-body source (the text inside a
(params) => { ... } value, with the outer braces stripped) and print the
resulting AST, one statement per line.`,
	Args: cobra.MaximumNArgs(1),
	RunE: parseSource,
}

var dumpAST bool

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&evalSource, "eval", "e", "", "parse inline source instead of reading a file")
	parseCmd.Flags().BoolVar(&dumpAST, "dump-ast", true, "print the parsed AST")
}

func parseSource(_ *cobra.Command, args []string) error {
	src, err := readBodySource(args)
	if err != nil {
		return err
	}

	l := lexer.New(src)
	p := parser.New(l)
	block := p.ParseProgram()

	var errs []string
	for _, e := range l.Errors() {
		errs = append(errs, e.Format())
	}
	for _, e := range p.Errors() {
		errs = append(errs, e.Format())
	}
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	if dumpAST {
		fmt.Println(block.String())
	}
	return nil
}
