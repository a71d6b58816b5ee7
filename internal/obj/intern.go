// Package obj implements the core value and data model of the Hollow
// evaluator: lazy thunks, the binding context, the prototype-style object
// composition algebra, and function values. It has no dependency on the
// AST or the expression evaluator — everything here is generic over
// whatever closures the evaluator supplies for field bodies, defaults and
// function bodies.
package obj

// Symbol is an interned string handle. Two symbols compare equal with a
// single integer comparison, which keeps field lookups and context
// bindings cheap regardless of how long the underlying identifier is.
type Symbol int32

// Interner owns the canonical string<->Symbol mapping for one evaluation
// session. It is deliberately not a package-level singleton: per the
// single-threaded, explicit-State discipline, every session (every
// State) owns its own table.
type Interner struct {
	bySymbol []string
	byString map[string]Symbol
}

// NewInterner creates an empty interner.
func NewInterner() *Interner {
	return &Interner{byString: make(map[string]Symbol, 64)}
}

// Intern returns the Symbol for s, assigning a new one on first sight.
func (in *Interner) Intern(s string) Symbol {
	if sym, ok := in.byString[s]; ok {
		return sym
	}
	sym := Symbol(len(in.bySymbol))
	in.bySymbol = append(in.bySymbol, s)
	in.byString[s] = sym
	return sym
}

// String resolves a Symbol back to its backing string. Panics on an
// out-of-range symbol, which would indicate a Symbol leaked from a
// different Interner.
func (in *Interner) String(sym Symbol) string {
	return in.bySymbol[sym]
}
