package eval

// stackGuard tracks evaluation depth and enforces the configured
// maximum, turning unbounded Go recursion into a catchable StackOverflow
// Error instead of a process crash (spec §4.8). It also accumulates the
// StackFrame trace attached to every Error as it propagates.
type stackGuard struct {
	depth    int
	maxDepth int
	frames   []StackFrame
}

func newStackGuard(maxDepth int) *stackGuard {
	if maxDepth <= 0 {
		maxDepth = 500
	}
	return &stackGuard{maxDepth: maxDepth}
}

// enter pushes frame and checks the depth limit. Callers must call the
// returned leave function exactly once, typically via defer.
func (g *stackGuard) enter(frame StackFrame) (leave func(), overflow *Error) {
	if g.depth >= g.maxDepth {
		return func() {}, newErr(StackOverflow, "max stack frames exceeded (%d)", g.maxDepth)
	}
	g.depth++
	g.frames = append(g.frames, frame)
	return func() {
		g.depth--
		g.frames = g.frames[:len(g.frames)-1]
	}, nil
}

// trace returns a snapshot of the current frames, innermost first, for
// attaching to a freshly-constructed Error.
func (g *stackGuard) trace() []StackFrame {
	out := make([]StackFrame, len(g.frames))
	for i, f := range g.frames {
		out[len(g.frames)-1-i] = f
	}
	return out
}
