package evaluator

import (
	"fmt"
	"strings"

	"github.com/hpl-lang/hpl/internal/hplerr"
	"github.com/hpl-lang/hpl/internal/token"
)

// DefaultMaxDepth bounds call recursion depth absent an explicit override.
const DefaultMaxDepth = 1024

// Frame is one call-stack entry: the dotted name of the function or
// method being executed and the position of the call that pushed it.
type Frame struct {
	Name string
	Pos  token.Position
}

// CallStack tracks active calls so a runaway recursive script fails with
// a diagnosable stack-overflow error instead of crashing the host
// process.
type CallStack struct {
	frames []Frame
	max    int
}

func NewCallStack(max int) *CallStack {
	if max <= 0 {
		max = DefaultMaxDepth
	}
	return &CallStack{max: max}
}

// Push adds a frame, returning a Value error if doing so would exceed the
// configured maximum depth.
func (cs *CallStack) Push(name string, pos token.Position) error {
	if len(cs.frames) >= cs.max {
		return hplerr.NewNoPos(hplerr.Value, "stack overflow: call depth exceeded %d frames at %s", cs.max, name)
	}
	cs.frames = append(cs.frames, Frame{Name: name, Pos: pos})
	return nil
}

// Pop removes the top frame. Callers push and pop around every call via
// defer, so the stack unwinds correctly regardless of which exit path
// (return, error, or panic recovery further up) ends the call.
func (cs *CallStack) Pop() {
	cs.frames = cs.frames[:len(cs.frames)-1]
}

func (cs *CallStack) Depth() int { return len(cs.frames) }

// Snapshot returns a copy of the current frames, outermost first, for
// diagnostic dumps.
func (cs *CallStack) Snapshot() []Frame {
	out := make([]Frame, len(cs.frames))
	copy(out, cs.frames)
	return out
}

// Trace renders the current frames as "name (position)" strings,
// outermost first, for attaching to a propagating error.
func (cs *CallStack) Trace() []string {
	lines := make([]string, len(cs.frames))
	for i, f := range cs.frames {
		lines[i] = fmt.Sprintf("%s (%s)", f.Name, f.Pos)
	}
	return lines
}

func (cs *CallStack) String() string {
	var sb strings.Builder
	for i := len(cs.frames) - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "  at %s (%s)\n", cs.frames[i].Name, cs.frames[i].Pos)
	}
	return sb.String()
}
