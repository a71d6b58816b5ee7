package eval

import "github.com/cwbudde/hollow/internal/obj"

// TLA is one top-level argument supplied by an embedder (spec §4.7),
// analogous to jsonnet's --tla-str/--tla-code flags.
type TLA struct {
	Name  string
	Value obj.Value
}

// ApplyTLA resolves the root value of a document against top-level
// arguments: if root is a function, it is called with tlas bound by
// name (an unbound required parameter without a matching TLA is an
// error); any other value is returned unchanged only when tlas is
// empty, otherwise it's a NoTopLevelArgsAllowed error.
func (e *Evaluator) ApplyTLA(root obj.Value, tlas []TLA) (obj.Value, error) {
	fn, ok := root.(*obj.Func)
	if !ok {
		if len(tlas) == 0 {
			return root, nil
		}
		return nil, newErr(NoTopLevelArgsAllowed, "top-level arguments given but root value is not a function").withTrace(e)
	}
	argThunks := make([]*obj.Thunk, len(tlas))
	argNames := make([]string, len(tlas))
	for i, t := range tlas {
		argThunks[i] = obj.Resolved(t.Value)
		argNames[i] = t.Name
	}
	return e.callFunc(fn, argThunks, argNames, false)
}
