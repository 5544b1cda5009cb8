package hplfile

import (
	"regexp"
	"strings"

	"github.com/hpl-lang/hpl/internal/textscan"
)

// arrowHeader matches a line of the form `IDENT: (PARAMS) => {`, capturing
// the identifier and the column where its value (the parameter list)
// begins.
var arrowHeader = regexp.MustCompile(`(?m)^([ \t]*)([A-Za-z_][A-Za-z0-9_]*)[ \t]*:[ \t]*(\([^()\n]*\)[ \t]*=>[ \t]*\{)`)

// Prescan rewrites every `IDENT: (PARAMS) => { ... }` arrow-function value
// in raw HPL source text into a YAML double-quoted scalar, so the YAML
// decoder that follows never has to interpret the embedded braces as flow
// mapping syntax. Brace-balance tracking skips over string-literal and
// comment contents inside the body, so a `=>` or `}` inside a string
// literal in a method body doesn't confuse the rewrite.
func Prescan(src string) (string, error) {
	var out strings.Builder
	i := 0

	for {
		loc := arrowHeader.FindStringSubmatchIndex(src[i:])
		if loc == nil {
			out.WriteString(src[i:])
			break
		}

		// loc indices are relative to src[i:]; rebase to absolute offsets.
		for j := range loc {
			if loc[j] >= 0 {
				loc[j] += i
			}
		}

		matchStart, _ := loc[0], loc[1]
		valueStart := loc[6] // start of the "(PARAMS) => {" group
		headerEnd := loc[7]  // position right after the matched "{"
		openBrace := headerEnd - 1

		closeBrace, err := textscan.MatchBrace(src, openBrace)
		if err != nil {
			return "", err
		}

		out.WriteString(src[i:matchStart])
		out.WriteString(src[matchStart:valueStart]) // "IDENT: " unchanged
		out.WriteString(quoteYAMLScalar(src[valueStart : closeBrace+1]))

		i = closeBrace + 1
	}

	return out.String(), nil
}

// quoteYAMLScalar renders s as a YAML double-quoted scalar so any
// character inside it (including `{`, `}`, `:`, `#`, newlines) is taken
// literally.
func quoteYAMLScalar(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			// dropped: normalizes CRLF line endings in embedded bodies
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
