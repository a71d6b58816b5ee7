package obj

// Context is an immutable, prefix-shared binding environment mapping
// interned identifiers to thunks, plus the optional self/super objects
// in scope. Extending a context allocates a new frame that chains to its
// parent; lookup walks from innermost out. A child frame never mutates
// its parent, so contexts can be shared freely between closures.
type Context struct {
	parent   *Context
	bindings map[Symbol]*Thunk
	self     *Object
	super    *Object
}

// NewContext returns the empty root context: no bindings, no self/super.
func NewContext() *Context {
	return &Context{}
}

// Extend returns a new frame adding bindings on top of c. The returned
// context inherits c's self/super.
func (c *Context) Extend(bindings map[Symbol]*Thunk) *Context {
	return &Context{parent: c, bindings: bindings, self: c.selfOrNil(), super: c.superOrNil()}
}

// WithSelfSuper returns a new frame that rebinds self/super without
// introducing any new identifier bindings — used when entering a field
// or method body that needs a different object/super pair than its
// lexical context.
func (c *Context) WithSelfSuper(self, super *Object) *Context {
	return &Context{parent: c, self: self, super: super}
}

func (c *Context) selfOrNil() *Object {
	if c == nil {
		return nil
	}
	return c.self
}

func (c *Context) superOrNil() *Object {
	if c == nil {
		return nil
	}
	return c.super
}

// Lookup walks the context chain from innermost to outermost looking for
// sym, returning its thunk and true on success.
func (c *Context) Lookup(sym Symbol) (*Thunk, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if cur.bindings == nil {
			continue
		}
		if t, ok := cur.bindings[sym]; ok {
			return t, true
		}
	}
	return nil, false
}

// Self returns the object bound as `self` in this context, or nil if
// none is bound (evaluating outside of any object).
func (c *Context) Self() *Object {
	return c.selfOrNil()
}

// Super returns the object bound as `super` in this context, or nil if
// none is bound.
func (c *Context) Super() *Object {
	return c.superOrNil()
}

// Names returns every identifier bound anywhere in the context chain,
// innermost shadowing outermost but each symbol reported once. Used to
// build the VariableIsNotDefined suggestion list.
func (c *Context) Names() []Symbol {
	seen := make(map[Symbol]struct{})
	var out []Symbol
	for cur := c; cur != nil; cur = cur.parent {
		for sym := range cur.bindings {
			if _, ok := seen[sym]; ok {
				continue
			}
			seen[sym] = struct{}{}
			out = append(out, sym)
		}
	}
	return out
}
