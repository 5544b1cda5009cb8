package evaluator

// signal distinguishes a control-flow exit from a normal fall-through,
// kept as a channel entirely separate from Go's error return so that
// return/break/continue are never mistaken for, or caught by, the
// try/catch machinery that only ever sees *hplerr.Error values.
type signal int

const (
	sigNone signal = iota
	sigReturn
	sigBreak
	sigContinue
)
