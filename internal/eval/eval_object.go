package eval

import (
	"github.com/cwbudde/hollow/internal/ast"
	"github.com/cwbudde/hollow/internal/obj"
)

func (e *Evaluator) evalArray(n *ast.Array, ctx *obj.Context) *obj.Arr {
	elems := make([]*obj.Thunk, len(n.Elements))
	for i, el := range n.Elements {
		elems[i] = e.Thunk(el, ctx)
	}
	return &obj.Arr{Elements: elems}
}

func (e *Evaluator) evalArrayComp(n *ast.ArrayComp, ctx *obj.Context) (obj.Value, error) {
	var elems []*obj.Thunk
	err := e.forEachCompBinding(n.Clauses, ctx, func(bindCtx *obj.Context) error {
		elems = append(elems, e.Thunk(n.Body, bindCtx))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &obj.Arr{Elements: elems}, nil
}

// forEachCompBinding drives the cross product of `for`/`if` clauses
// left to right, invoking fn once per surviving binding with a context
// extended by that binding's loop variable.
func (e *Evaluator) forEachCompBinding(clauses []ast.CompClause, ctx *obj.Context, fn func(*obj.Context) error) error {
	if len(clauses) == 0 {
		return fn(ctx)
	}
	clause := clauses[0]
	rest := clauses[1:]
	if clause.IsFor {
		src, err := e.Eval(clause.Expr, ctx)
		if err != nil {
			return err
		}
		arr, ok := src.(*obj.Arr)
		if !ok {
			return newErr(TypeMismatch, "'for' clause source must be an array, got %s", src.Kind()).withTrace(e)
		}
		sym := e.interner.Intern(clause.Var)
		for _, elemThunk := range arr.Elements {
			bindCtx := ctx.Extend(map[obj.Symbol]*obj.Thunk{sym: elemThunk})
			if err := e.forEachCompBinding(rest, bindCtx, fn); err != nil {
				return err
			}
		}
		return nil
	}
	cond, err := e.Eval(clause.Expr, ctx)
	if err != nil {
		return err
	}
	ok, err := truthy(cond)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return e.forEachCompBinding(rest, ctx, fn)
}

func (e *Evaluator) evalObject(n *ast.Object, ctx *obj.Context) (obj.Value, error) {
	// Only statically-named fields can be checked ahead of evaluation;
	// a computed name (f.NameExpr != nil) colliding with another field at
	// runtime is not caught here.
	seen := make(map[string]struct{}, len(n.Fields))
	for _, f := range n.Fields {
		if f.NameExpr != nil {
			continue
		}
		if _, dup := seen[f.Name]; dup {
			return nil, newErr(DuplicateFieldName, "duplicate field name: %s", f.Name).withTrace(e)
		}
		seen[f.Name] = struct{}{}
	}

	assignments := make([]obj.Assignment, 0, len(n.Fields))
	for _, f := range n.Fields {
		field := f
		assignments = append(assignments, e.fieldAssignment(field, ctx))
	}
	asserts := make([]obj.AssertFunc, 0, len(n.Asserts))
	for _, a := range n.Asserts {
		assert := a
		asserts = append(asserts, func(self, super *obj.Object) error {
			return e.runAssert(assert, ctx, self, super)
		})
	}
	return obj.NewObject(assignments, asserts, e.combine), nil
}

func (e *Evaluator) fieldAssignment(f ast.Field, ctx *obj.Context) obj.Assignment {
	name := f.Name
	if f.NameExpr != nil {
		// computed-name fields are evaluated once against ctx and given a
		// fixed Symbol at object-construction time; self/super don't
		// affect the name expression by spec §4.3.
		v, err := e.Eval(f.NameExpr, ctx)
		if err == nil {
			if s, ok := v.(obj.Str); ok {
				name = string(s)
			}
		}
	}
	sym := e.interner.Intern(name)
	vis := visibilityOf(f.Kind)
	value := f.Value
	params := f.Params
	return obj.Assignment{
		Name:       sym,
		Visibility: vis,
		Additive:   f.Additive,
		Compute: func(self, super *obj.Object) (obj.Value, error) {
			fieldCtx := ctx.WithSelfSuper(self, super)
			if params != nil {
				return e.evalFuncLitNamed(params, value, fieldCtx, name), nil
			}
			return e.Eval(value, fieldCtx)
		},
	}
}

func visibilityOf(k ast.FieldKind) obj.Visibility {
	switch k {
	case ast.FieldHidden:
		return obj.Hidden
	case ast.FieldForceVisible:
		return obj.ForceVisible
	default:
		return obj.Visible
	}
}

func (e *Evaluator) runAssert(a ast.Assert, ctx *obj.Context, self, super *obj.Object) error {
	fieldCtx := ctx.WithSelfSuper(self, super)
	cond, err := e.Eval(a.Cond, fieldCtx)
	if err != nil {
		return err
	}
	ok, err := truthy(cond)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	if a.Msg != nil {
		msgV, err := e.Eval(a.Msg, fieldCtx)
		if err != nil {
			return err
		}
		return newErr(AssertionFailed, "assertion failed: %s", e.toDisplayString(msgV)).withTrace(e)
	}
	return newErr(AssertionFailed, "assertion failed").withTrace(e)
}

func (e *Evaluator) evalObjectComp(n *ast.ObjectComp, ctx *obj.Context) (obj.Value, error) {
	type binding struct {
		sym   obj.Symbol
		ctx   *obj.Context
	}
	var bindings []binding
	seen := make(map[obj.Symbol]struct{})
	err := e.forEachCompBinding(n.Clauses, ctx, func(bindCtx *obj.Context) error {
		keyV, err := e.Eval(n.KeyExpr, bindCtx)
		if err != nil {
			return err
		}
		keyStr, ok := keyV.(obj.Str)
		if !ok {
			return newErr(FieldMustBeStringIn, "object comprehension key must be a string, got %s", keyV.Kind()).withTrace(e)
		}
		sym := e.interner.Intern(string(keyStr))
		if _, dup := seen[sym]; dup {
			return newErr(DuplicateFieldName, "duplicate field name: %s", string(keyStr)).withTrace(e)
		}
		seen[sym] = struct{}{}
		bindings = append(bindings, binding{sym: sym, ctx: bindCtx})
		return nil
	})
	if err != nil {
		return nil, err
	}

	valueExpr := n.ValueExpr
	assignments := make([]obj.Assignment, 0, len(bindings))
	for _, b := range bindings {
		bindCtx := b.ctx
		assignments = append(assignments, obj.Assignment{
			Name:       b.sym,
			Visibility: obj.Visible,
			Compute: func(self, super *obj.Object) (obj.Value, error) {
				fieldCtx := bindCtx.WithSelfSuper(self, super)
				return e.Eval(valueExpr, fieldCtx)
			},
		})
	}
	return obj.NewObject(assignments, nil, e.combine), nil
}

func (e *Evaluator) evalIndex(n *ast.Index, ctx *obj.Context) (obj.Value, error) {
	target, err := e.Eval(n.Target, ctx)
	if err != nil {
		return nil, err
	}
	idx, err := e.Eval(n.Index, ctx)
	if err != nil {
		return nil, err
	}
	switch t := target.(type) {
	case *obj.Arr:
		num, ok := idx.(obj.Num)
		if !ok {
			return nil, newErr(ValueIndexError, "array index must be a number, got %s", idx.Kind()).withTrace(e)
		}
		i := int(num)
		if i < 0 || i >= len(t.Elements) {
			return nil, newErr(ArrayBoundsError, "array index %d out of bounds [0,%d)", i, len(t.Elements)).withTrace(e)
		}
		return e.force(t.Elements[i])
	case obj.Str:
		num, ok := idx.(obj.Num)
		if !ok {
			return nil, newErr(ValueIndexError, "string index must be a number, got %s", idx.Kind()).withTrace(e)
		}
		runes := []rune(string(t))
		i := int(num)
		if i < 0 || i >= len(runes) {
			return nil, newErr(ArrayBoundsError, "string index %d out of bounds [0,%d)", i, len(runes)).withTrace(e)
		}
		return obj.Str(string(runes[i])), nil
	case *obj.Object:
		name, ok := idx.(obj.Str)
		if !ok {
			return nil, newErr(CantIndexAnObjectWithNumber, "object index must be a string, got %s", idx.Kind()).withTrace(e)
		}
		sym := e.interner.Intern(string(name))
		if !t.HasField(sym) {
			return nil, e.noSuchFieldErr(t, string(name))
		}
		return e.resolve(t, sym)
	default:
		return nil, newErr(ValueIsNotIndexable, "value of type %s is not indexable", target.Kind()).withTrace(e)
	}
}

func (e *Evaluator) evalFieldAccess(n *ast.FieldAccess, ctx *obj.Context) (obj.Value, error) {
	if _, isSuper := n.Target.(*ast.Super); isSuper {
		super := ctx.Super()
		if super == nil {
			return nil, newErr(RuntimeError, "super used outside of an inherited object").withTrace(e)
		}
		sym := e.interner.Intern(n.Name)
		if !super.HasField(sym) {
			return nil, e.noSuchFieldErr(super, n.Name)
		}
		return e.resolve(super, sym)
	}
	target, err := e.Eval(n.Target, ctx)
	if err != nil {
		return nil, err
	}
	o, ok := target.(*obj.Object)
	if !ok {
		return nil, newErr(AttemptedIndexAnObjectWithString, "field access '.%s' on non-object value of type %s", n.Name, target.Kind()).withTrace(e)
	}
	sym := e.interner.Intern(n.Name)
	if !o.HasField(sym) {
		return nil, e.noSuchFieldErr(o, n.Name)
	}
	return e.resolve(o, sym)
}

func (e *Evaluator) noSuchFieldErr(o *obj.Object, name string) *Error {
	names := o.FieldNames(e.interner, false, false)
	suggestions := suggestionsFor(name, names)
	msg := "field does not exist: " + name
	if len(suggestions) > 0 {
		msg += " (did you mean " + joinSuggestions(suggestions) + "?)"
	}
	return newErr(NoSuchField, "%s", msg).withTrace(e)
}
