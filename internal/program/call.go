package program

import (
	"strconv"
	"strings"
)

// parseCallDirective parses the optional `call` string: `NAME` or
// `NAME(arg1, arg2, …)`. Each argument is parsed greedily as integer,
// then float, then quoted string (outer quotes stripped), else left as
// an identifier name to be looked up at evaluation time.
func parseCallDirective(s string) (*CallDirective, error) {
	s = strings.TrimSpace(s)

	open := strings.IndexByte(s, '(')
	if open == -1 {
		return &CallDirective{Name: s}, nil
	}

	name := strings.TrimSpace(s[:open])
	rest := strings.TrimSpace(s[open:])
	rest = strings.TrimPrefix(rest, "(")
	rest = strings.TrimSuffix(rest, ")")
	rest = strings.TrimSpace(rest)

	call := &CallDirective{Name: name}
	if rest == "" {
		return call, nil
	}

	for _, raw := range strings.Split(rest, ",") {
		arg := strings.TrimSpace(raw)
		call.Args = append(call.Args, parseCallArg(arg))
	}

	return call, nil
}

func parseCallArg(arg string) CallArg {
	if i, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return CallArg{Kind: CallArgInt, Int: i}
	}
	if f, err := strconv.ParseFloat(arg, 64); err == nil {
		return CallArg{Kind: CallArgFloat, Float: f}
	}
	if len(arg) >= 2 && arg[0] == '"' && arg[len(arg)-1] == '"' {
		return CallArg{Kind: CallArgString, String: arg[1 : len(arg)-1]}
	}
	return CallArg{Kind: CallArgIdent, Ident: arg}
}
