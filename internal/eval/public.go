package eval

import "github.com/cwbudde/hollow/internal/obj"

// DisplayString renders v the way `+`-concatenation stringifies a
// non-string scalar operand. Exposed for std.toString.
func (e *Evaluator) DisplayString(v obj.Value) string {
	return e.toDisplayString(v)
}

// CallValue calls fn (already resolved to a Func, typically supplied to
// a native by an earlier argument) with args already forced to
// concrete Values. Used by std.map/filter/foldl and friends, which
// receive their callback as an ordinary argument rather than a literal
// call site.
func (e *Evaluator) CallValue(fn *obj.Func, args []obj.Value) (obj.Value, error) {
	thunks := make([]*obj.Thunk, len(args))
	names := make([]string, len(args))
	for i, a := range args {
		thunks[i] = obj.Resolved(a)
	}
	return e.callFunc(fn, thunks, names, false)
}

// LessValues reports whether a orders strictly before b, using the same
// total order `<` uses. Exposed for std.sort.
func (e *Evaluator) LessValues(a, b obj.Value) (bool, error) {
	c, err := e.compareValues(a, b)
	if err != nil {
		return false, err
	}
	return c < 0, nil
}
