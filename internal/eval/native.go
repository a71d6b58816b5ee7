package eval

import "github.com/cwbudde/hollow/internal/obj"

// callNative forces every argument (natives are always strict, spec
// §4.5) then invokes the host callback. Arguments bind to the native's
// declared parameters by position only; argument names given at the
// call site are not consulted.
func (e *Evaluator) callNative(fn *obj.Func, argThunks []*obj.Thunk) (obj.Value, error) {
	if len(argThunks) > len(fn.Params) {
		return nil, newErr(TooManyArgsFunctionHas, "native %q takes %d argument(s), got %d", e.interner.String(fn.Name), len(fn.Params), len(argThunks)).withTrace(e)
	}
	args := make([]obj.Value, len(fn.Params))
	for i := range fn.Params {
		if i >= len(argThunks) {
			return nil, newErr(FunctionParameterNotBoundInCall, "native %q missing argument %q", e.interner.String(fn.Name), e.interner.String(fn.Params[i].Name)).withTrace(e)
		}
		v, err := e.force(argThunks[i])
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	v, err := fn.Native(args)
	if err != nil {
		if ee, ok := err.(*Error); ok {
			return nil, ee.withTrace(e)
		}
		return nil, newErr(RuntimeError, "%s", err.Error()).withTrace(e)
	}
	return v, nil
}
