package program

import (
	"fmt"
	"strings"

	"github.com/hpl-lang/hpl/internal/textscan"
)

// splitArrowFunction parses "(p1, p2, ...) => { body }" and returns the
// parameter names plus the body text found strictly between the outer
// matching braces (exclusive).
func splitArrowFunction(src string) ([]string, string, error) {
	s := strings.TrimSpace(src)

	if !strings.HasPrefix(s, "(") {
		return nil, "", fmt.Errorf("expected '(' to start parameter list")
	}
	closeParen := strings.Index(s, ")")
	if closeParen == -1 {
		return nil, "", fmt.Errorf("unterminated parameter list")
	}

	paramsSrc := strings.TrimSpace(s[1:closeParen])
	var params []string
	if paramsSrc != "" {
		for _, p := range strings.Split(paramsSrc, ",") {
			name := strings.TrimSpace(p)
			if name != "" {
				params = append(params, name)
			}
		}
	}

	rest := strings.TrimSpace(s[closeParen+1:])
	if !strings.HasPrefix(rest, "=>") {
		return nil, "", fmt.Errorf("expected '=>' after parameter list")
	}
	rest = strings.TrimSpace(rest[2:])

	if !strings.HasPrefix(rest, "{") {
		return nil, "", fmt.Errorf("expected '{' to start function body")
	}

	closeBrace, err := textscan.MatchBrace(rest, 0)
	if err != nil {
		return nil, "", err
	}

	return params, rest[1:closeBrace], nil
}
