package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hpl-lang/hpl/internal/lexer"
	"github.com/hpl-lang/hpl/internal/token"
)

var (
	lexShowPos  bool
	lexOnlyErrs bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a function-body source and print the resulting tokens",
	Long: `Tokenize raw HPL expression-body source (the text inside a
(params) => { ... } value, with the outer braces stripped) and print the
resulting token stream. Useful for debugging the lexer independently of
the surrounding YAML document.`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexSource,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&evalSource, "eval", "e", "", "tokenize inline source instead of reading a file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show each token's line:column")
	lexCmd.Flags().BoolVar(&lexOnlyErrs, "only-errors", false, "print only tokens the lexer could not make sense of")
}

func lexSource(_ *cobra.Command, args []string) error {
	src, err := readBodySource(args)
	if err != nil {
		return err
	}

	l := lexer.New(src)
	for {
		tok := l.Next()
		if !lexOnlyErrs || tok.Kind == token.ILLEGAL {
			printToken(tok)
		}
		if tok.Kind == token.EOF {
			break
		}
	}

	if errs := l.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Format())
		}
		return fmt.Errorf("lexing failed with %d error(s)", len(errs))
	}
	return nil
}

func printToken(tok token.Token) {
	out := fmt.Sprintf("[%-12s] %q", tok.Kind, tok.Value)
	if lexShowPos {
		out += fmt.Sprintf(" @%s", tok.Position)
	}
	fmt.Println(out)
}

func readBodySource(args []string) (string, error) {
	if evalSource != "" {
		return evalSource, nil
	}
	if len(args) != 1 {
		return "", fmt.Errorf("either provide a file path or use -e for inline source")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}
