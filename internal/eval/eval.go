// Package eval walks an internal/ast tree against internal/obj values,
// implementing Hollow's lazy, memoizing expression semantics: every
// sub-expression that can be deferred becomes a Thunk, and only
// operators, conditions and native-function boundaries force a value.
package eval

import (
	"github.com/cwbudde/hollow/internal/ast"
	"github.com/cwbudde/hollow/internal/obj"
)

// Resolver locates and loads the source behind an import path. The
// evaluator depends only on this interface; internal/resolver supplies
// the filesystem-backed implementation used by pkg/hollow and cmd/hollow.
type Resolver interface {
	// Resolve maps a literal import path, relative to fromSource, to a
	// canonical identity string used as the file cache key.
	Resolve(path, fromSource string) (string, error)
	// Load returns the raw bytes behind a canonical identity.
	Load(canonical string) ([]byte, error)
}

// Evaluator holds everything evaluation needs beyond the AST and
// Context: the shared identifier interner, the stack-depth guard, the
// import/file cache, and the configured import Resolver. One Evaluator
// corresponds to one Hollow "engine" instance (spec §1); it is not
// goroutine-safe, matching the single-threaded discipline of spec §5.
type Evaluator struct {
	interner *obj.Interner
	stack    *stackGuard
	imports  *importCache
	resolver Resolver
	natives  map[string]*obj.Func

	baseContext *obj.Context
}

// SetBaseContext installs the Context every top-level evaluation and
// import starts from (typically one carrying the std library object,
// spec §4.9). Must be called before any evaluation begins.
func (e *Evaluator) SetBaseContext(ctx *obj.Context) {
	e.baseContext = ctx
}

// Options configures a new Evaluator.
type Options struct {
	MaxStackDepth int
	Resolver      Resolver
}

// New builds an Evaluator sharing interner for identifier interning.
func New(interner *obj.Interner, opts Options) *Evaluator {
	return &Evaluator{
		interner: interner,
		stack:    newStackGuard(opts.MaxStackDepth),
		imports:  newImportCache(),
		resolver: opts.Resolver,
		natives:  make(map[string]*obj.Func),
	}
}

// Interner returns the identifier interner shared by this Evaluator's
// Contexts and Objects.
func (e *Evaluator) Interner() *obj.Interner { return e.interner }

// RegisterNative installs a host callback reachable from Hollow code as
// std.native(name) (spec §4.5).
func (e *Evaluator) RegisterNative(name string, params []string, fn obj.NativeFunc) {
	p := make([]obj.Param, len(params))
	for i, n := range params {
		p[i] = obj.Param{Name: e.interner.Intern(n)}
	}
	e.natives[name] = &obj.Func{FnKind: obj.FuncKindNative, Name: e.interner.Intern(name), Params: p, Native: fn}
}

// Native looks up a previously registered native function by name.
func (e *Evaluator) Native(name string) (*obj.Func, bool) {
	f, ok := e.natives[name]
	return f, ok
}

// Eval strictly evaluates node in ctx, forcing the result to a concrete
// Value. Use Thunk for a lazily deferred evaluation instead.
func (e *Evaluator) Eval(node ast.Node, ctx *obj.Context) (obj.Value, error) {
	switch n := node.(type) {
	case *ast.Null:
		return obj.Null{}, nil
	case *ast.Bool:
		return obj.Bool(n.Value), nil
	case *ast.Number:
		return obj.Num(n.Value), nil
	case *ast.Str:
		return obj.Str(n.Value), nil
	case *ast.Self:
		self := ctx.Self()
		if self == nil {
			return nil, newErr(RuntimeError, "self used outside of an object").withTrace(e)
		}
		return self, nil
	case *ast.Var:
		return e.evalVar(n, ctx)
	case *ast.Local:
		return e.evalLocal(n, ctx)
	case *ast.If:
		return e.evalIf(n, ctx)
	case *ast.Unary:
		return e.evalUnary(n, ctx)
	case *ast.Binary:
		return e.evalBinary(n, ctx)
	case *ast.Array:
		return e.evalArray(n, ctx), nil
	case *ast.ArrayComp:
		return e.evalArrayComp(n, ctx)
	case *ast.Object:
		return e.evalObject(n, ctx)
	case *ast.ObjectComp:
		return e.evalObjectComp(n, ctx)
	case *ast.Index:
		return e.evalIndex(n, ctx)
	case *ast.FieldAccess:
		return e.evalFieldAccess(n, ctx)
	case *ast.Func:
		return e.evalFuncLit(n, ctx), nil
	case *ast.Apply:
		return e.evalApply(n, ctx)
	case *ast.Import:
		return e.evalImport(n, ctx)
	case *ast.Error:
		return e.evalError(n, ctx)
	case *ast.AssertExpr:
		return e.evalAssertExpr(n, ctx)
	default:
		return nil, newErr(RuntimeError, "unhandled AST node %T", node).withTrace(e)
	}
}

// Thunk wraps node's evaluation in ctx as a lazily forced, memoized
// Thunk; used everywhere the spec requires deferred evaluation (array
// elements, object field bodies, function arguments, local bindings).
func (e *Evaluator) Thunk(node ast.Node, ctx *obj.Context) *obj.Thunk {
	return obj.NewThunk(func() (obj.Value, error) {
		return e.Eval(node, ctx)
	})
}

func (e *Error) withTrace(ev *Evaluator) *Error {
	e.Trace = ev.stack.trace()
	return e
}

// force forces t, translating obj's package-private recursion sentinel
// into the public InfiniteRecursionDetected error kind (spec §8 scenario
// 6: `local x = x; x`). Every Thunk.Force call in this package should go
// through here rather than calling t.Force directly.
func (e *Evaluator) force(t *obj.Thunk) (obj.Value, error) {
	v, err := t.Force()
	if err != nil {
		if _, ok := err.(*obj.RecursionError); ok {
			return nil, newErr(InfiniteRecursionDetected, "infinite recursion detected").withTrace(e)
		}
		return nil, err
	}
	return v, nil
}

// resolve resolves field k on o, applying the same recursion-sentinel
// translation as force.
func (e *Evaluator) resolve(o *obj.Object, k obj.Symbol) (obj.Value, error) {
	v, err := o.Resolve(k)
	if err != nil {
		if _, ok := err.(*obj.RecursionError); ok {
			return nil, newErr(InfiniteRecursionDetected, "infinite recursion detected").withTrace(e)
		}
		return nil, err
	}
	return v, nil
}

func (e *Evaluator) loc(n ast.Node) *ast.Location {
	return n.Loc()
}

func (e *Evaluator) evalVar(n *ast.Var, ctx *obj.Context) (obj.Value, error) {
	sym := e.interner.Intern(n.Name)
	t, ok := ctx.Lookup(sym)
	if !ok {
		names := make([]string, 0, 8)
		for _, s := range ctx.Names() {
			names = append(names, e.interner.String(s))
		}
		suggestions := suggestionsFor(n.Name, names)
		msg := "unknown variable: " + n.Name
		if len(suggestions) > 0 {
			msg += " (did you mean " + joinSuggestions(suggestions) + "?)"
		}
		return nil, newErr(VariableIsNotDefined, "%s", msg).withTrace(e)
	}
	return e.force(t)
}

func joinSuggestions(s []string) string {
	out := ""
	for i, v := range s {
		if i > 0 {
			out += ", "
		}
		out += v
	}
	return out
}

func (e *Evaluator) evalLocal(n *ast.Local, ctx *obj.Context) (obj.Value, error) {
	seen := make(map[string]struct{}, len(n.Binds))
	for _, b := range n.Binds {
		if _, dup := seen[b.Name]; dup {
			return nil, newErr(DuplicateLocalVar, "duplicate local var: %s", b.Name).withTrace(e)
		}
		seen[b.Name] = struct{}{}
	}

	bindings := make(map[obj.Symbol]*obj.Thunk, len(n.Binds))
	// bindCtx is the context every bound thunk closes over: it must see
	// its sibling bindings (letrec), so we extend first and fill the map
	// afterward — safe because Thunk closures aren't invoked until Force.
	bindCtx := ctx.Extend(bindings)
	for _, b := range n.Binds {
		sym := e.interner.Intern(b.Name)
		if b.Params != nil {
			bindings[sym] = obj.Resolved(e.evalFuncLitNamed(b.Params, b.Value, bindCtx, b.Name))
		} else {
			bindings[sym] = e.Thunk(b.Value, bindCtx)
		}
	}
	return e.Eval(n.Body, bindCtx)
}

func (e *Evaluator) evalIf(n *ast.If, ctx *obj.Context) (obj.Value, error) {
	cond, err := e.Eval(n.Cond, ctx)
	if err != nil {
		return nil, err
	}
	ok, err := truthy(cond)
	if err != nil {
		return nil, err
	}
	if ok {
		return e.Eval(n.Then, ctx)
	}
	if n.Else == nil {
		return obj.Null{}, nil
	}
	return e.Eval(n.Else, ctx)
}

func (e *Evaluator) evalUnary(n *ast.Unary, ctx *obj.Context) (obj.Value, error) {
	v, err := e.Eval(n.Operand, ctx)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case ast.UnaryMinus:
		num, ok := v.(obj.Num)
		if !ok {
			return nil, newErr(UnaryOperatorDoesNotOperateOnValue, "unary operator - does not operate on %s", v.Kind()).withTrace(e)
		}
		return -num, nil
	case ast.UnaryPlus:
		num, ok := v.(obj.Num)
		if !ok {
			return nil, newErr(UnaryOperatorDoesNotOperateOnValue, "unary operator + does not operate on %s", v.Kind()).withTrace(e)
		}
		return num, nil
	case ast.UnaryNot:
		b, ok := v.(obj.Bool)
		if !ok {
			return nil, newErr(UnaryOperatorDoesNotOperateOnValue, "unary operator ! does not operate on %s", v.Kind()).withTrace(e)
		}
		return !b, nil
	case ast.UnaryBitwiseNot:
		num, ok := v.(obj.Num)
		if !ok {
			return nil, newErr(UnaryOperatorDoesNotOperateOnValue, "unary operator ~ does not operate on %s", v.Kind()).withTrace(e)
		}
		return obj.Num(^int64(num)), nil
	}
	return nil, newErr(RuntimeError, "unknown unary operator").withTrace(e)
}

func (e *Evaluator) evalError(n *ast.Error, ctx *obj.Context) (obj.Value, error) {
	v, err := e.Eval(n.Operand, ctx)
	if err != nil {
		return nil, err
	}
	return nil, newErr(ExplicitError, "%s", e.toDisplayString(v)).withTrace(e)
}

func (e *Evaluator) evalAssertExpr(n *ast.AssertExpr, ctx *obj.Context) (obj.Value, error) {
	if err := e.runAssert(n.Assert, ctx, ctx.Self(), ctx.Super()); err != nil {
		return nil, err
	}
	return e.Eval(n.Rest, ctx)
}
