// Package hplerr implements HPL's error taxonomy: lexical, syntactic,
// name, type, value and user errors, each carrying a source position and
// formattable with a caret-annotated source line.
package hplerr

import (
	"fmt"
	"strings"

	"github.com/hpl-lang/hpl/internal/token"
)

// Kind identifies one of the six error categories.
type Kind int

const (
	Lexical Kind = iota
	Syntactic
	Name
	Type
	Value
	User
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "LexicalError"
	case Syntactic:
		return "SyntaxError"
	case Name:
		return "NameError"
	case Type:
		return "TypeError"
	case Value:
		return "ValueError"
	case User:
		return "UserError"
	default:
		return "Error"
	}
}

// Error is an HPL diagnostic: a kind, a message, and (when known) the
// source position and file it originated from.
type Error struct {
	Kind    Kind
	Message string
	Pos     token.Position
	HasPos  bool
	File    string
	Source  string

	// Trace is the call-stack snapshot captured at the deepest frame
	// active when this error was first raised, outermost frame first.
	// Left nil for errors raised outside of any call (e.g. directly at
	// top level).
	Trace []string
}

func New(kind Kind, pos token.Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos, HasPos: true}
}

// NewNoPos constructs an error without an associated source position,
// used for errors raised deep inside the evaluator where recovering the
// original token position is not always possible (e.g. built-in argument
// count mismatches raised from Go code).
func NewNoPos(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.HasPos {
		return fmt.Sprintf("%s: %s at %s", e.Kind, e.Message, e.Pos)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Format renders the error with a source-line-and-caret view when both a
// position and the original source text are available.
func (e *Error) Format() string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "Error in %s", e.File)
		if e.HasPos {
			fmt.Fprintf(&sb, ":%d:%d", e.Pos.Line, e.Pos.Column)
		}
		sb.WriteString("\n")
	} else if e.HasPos {
		fmt.Fprintf(&sb, "Error at %d:%d\n", e.Pos.Line, e.Pos.Column)
	}

	if e.HasPos && e.Source != "" {
		lines := strings.Split(e.Source, "\n")
		if e.Pos.Line >= 1 && e.Pos.Line <= len(lines) {
			line := lines[e.Pos.Line-1]
			lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
			sb.WriteString(lineNumStr)
			sb.WriteString(line)
			sb.WriteString("\n")
			col := e.Pos.Column
			if col < 1 {
				col = 1
			}
			sb.WriteString(strings.Repeat(" ", len(lineNumStr)+col-1))
			sb.WriteString("^\n")
		}
	}

	sb.WriteString(e.Kind.String())
	sb.WriteString(": ")
	sb.WriteString(e.Message)

	for _, line := range e.Trace {
		sb.WriteString("\n  at ")
		sb.WriteString(line)
	}

	return sb.String()
}

// WithSource attaches the originating file name and source text, used to
// render a caret-annotated Format() view later.
func (e *Error) WithSource(file, source string) *Error {
	e.File = file
	e.Source = source
	return e
}
