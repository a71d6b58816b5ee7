package eval

import (
	"github.com/cwbudde/hollow/internal/ast"
	"github.com/cwbudde/hollow/internal/obj"
)

func (e *Evaluator) evalFuncLit(n *ast.Func, ctx *obj.Context) *obj.Func {
	return e.evalFuncLitNamed(&n.Params, n.Body, ctx, n.Name)
}

// evalFuncLitNamed builds a closure Func capturing ctx. name is used
// only for diagnostics and stack frames (e.g. the `local f(x) = ...`
// sugar names its function, a bare `function(x) ...` literal doesn't).
func (e *Evaluator) evalFuncLitNamed(params *ast.Params, body ast.Node, ctx *obj.Context, name string) *obj.Func {
	ps := make([]obj.Param, len(params.List))
	for i, p := range params.List {
		param := p
		ps[i] = obj.Param{
			Name:       e.interner.Intern(p.Name),
			HasDefault: p.Default != nil,
		}
		if param.Default != nil {
			def := param.Default
			ps[i].Default = func(paramCtx *obj.Context) (obj.Value, error) {
				return e.Eval(def, paramCtx)
			}
		}
	}
	return &obj.Func{
		FnKind: obj.FuncKindClosure,
		Name:   e.interner.Intern(name),
		Ctx:    ctx,
		Params: ps,
		Body: func(bodyCtx *obj.Context) (obj.Value, error) {
			return e.Eval(body, bodyCtx)
		},
	}
}

func (e *Evaluator) evalApply(n *ast.Apply, ctx *obj.Context) (obj.Value, error) {
	fnVal, err := e.Eval(n.Fn, ctx)
	if err != nil {
		return nil, err
	}
	fn, ok := fnVal.(*obj.Func)
	if !ok {
		return nil, newErr(ValueIsNotIndexable, "called value is not a function, got %s", fnVal.Kind()).withTrace(e)
	}

	frameName := "function"
	if fn.Name != 0 || fn.FnKind != obj.FuncKindIdentity {
		frameName = "function <" + e.interner.String(fn.Name) + ">"
	}
	leave, overflow := e.stack.enter(StackFrame{Name: frameName, Loc: n.Loc()})
	defer leave()
	if overflow != nil {
		return nil, overflow
	}

	argThunks, argNames, err := e.buildArgThunks(n.Args, ctx)
	if err != nil {
		return nil, err
	}
	return e.callFunc(fn, argThunks, argNames, n.TailStrict)
}

// buildArgThunks lazily wraps each call-site argument expression,
// preserving its optional name for named-argument binding.
func (e *Evaluator) buildArgThunks(args []ast.Arg, ctx *obj.Context) ([]*obj.Thunk, []string, error) {
	thunks := make([]*obj.Thunk, len(args))
	names := make([]string, len(args))
	for i, a := range args {
		thunks[i] = e.Thunk(a.Value, ctx)
		names[i] = a.Name
	}
	return thunks, names, nil
}

// callFunc implements the argument binding protocol of spec §4.4:
// positional arguments bind left to right to not-yet-bound parameters,
// named arguments bind by name, remaining parameters take their default
// (evaluated against a context containing every other parameter of the
// same call, bound or defaulting), and any parameter left both unbound
// and without a default is an error.
func (e *Evaluator) callFunc(fn *obj.Func, argThunks []*obj.Thunk, argNames []string, tailStrict bool) (obj.Value, error) {
	if fn.FnKind == obj.FuncKindIdentity {
		if len(argThunks) != 1 {
			return nil, newErr(TooManyArgsFunctionHas, "identity function takes exactly 1 argument, got %d", len(argThunks)).withTrace(e)
		}
		return e.force(argThunks[0])
	}

	if fn.FnKind == obj.FuncKindNative {
		return e.callNative(fn, argThunks)
	}

	bindings := make(map[obj.Symbol]*obj.Thunk, len(fn.Params))
	bound := make([]bool, len(fn.Params))

	positional := 0
	for i, name := range argNames {
		if name != "" {
			continue
		}
		if positional >= len(fn.Params) {
			return nil, newErr(TooManyArgsFunctionHas, "function has %d parameter(s), got more positional arguments", len(fn.Params)).withTrace(e)
		}
		bindings[fn.Params[positional].Name] = argThunks[i]
		bound[positional] = true
		positional++
	}
	for i, name := range argNames {
		if name == "" {
			continue
		}
		sym := e.interner.Intern(name)
		idx := -1
		for pi, p := range fn.Params {
			if p.Name == sym {
				idx = pi
				break
			}
		}
		if idx == -1 {
			return nil, newErr(UnknownFunctionParameter, "function has no parameter named %q", name).withTrace(e)
		}
		if bound[idx] {
			return nil, newErr(BindingParameterASecondTime, "parameter %q bound more than once", name).withTrace(e)
		}
		bindings[sym] = argThunks[i]
		bound[idx] = true
	}

	paramCtx := fn.Ctx.Extend(bindings)
	for i, p := range fn.Params {
		if bound[i] {
			continue
		}
		if !p.HasDefault {
			return nil, newErr(FunctionParameterNotBoundInCall, "parameter %q was not bound and has no default", e.interner.String(p.Name)).withTrace(e)
		}
		def := p.Default
		bindings[p.Name] = obj.NewThunk(func() (obj.Value, error) {
			return def(paramCtx)
		})
	}

	if tailStrict {
		for _, t := range bindings {
			if _, err := e.force(t); err != nil {
				return nil, err
			}
		}
	}

	return fn.Body(paramCtx)
}
