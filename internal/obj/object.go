package obj

// Visibility controls whether a field participates in iteration,
// manifestation and `==` comparison.
type Visibility uint8

const (
	Visible Visibility = iota
	Hidden
	ForceVisible
)

// FieldFunc computes the value of one field definition given the fully
// resolved self (the object the field was looked up on) and super (the
// slice of the inheritance chain below the layer that owns this
// definition — never the whole chain). The evaluator supplies these as
// closures over an AST expression and a lexical Context.
type FieldFunc func(self, super *Object) (Value, error)

// AssertFunc evaluates one object-level assertion. A non-nil error means
// the assertion failed (or errored); see spec §4.3's "object asserts"
// and §7's AssertionFailed.
type AssertFunc func(self, super *Object) error

// Assignment is one field definition within a single object layer.
type Assignment struct {
	Name       Symbol
	Visibility Visibility
	Additive   bool // true for `+:` fields
	Compute    FieldFunc
}

// Layer is one contribution to an object's composed field set: the
// fields and asserts introduced by a single object literal or
// comprehension, before any `+` composition. Layers are immutable and
// may be shared by many composed Objects, which is why the per-object
// field cache lives on Object rather than on Layer (see Resolve).
type Layer struct {
	Assignments []Assignment
	Asserts     []AssertFunc
}

// Object is a handle over an ordered chain of layers: layers[0] is this
// object's own (outermost, most overriding) layer, and layers[1:] is its
// super chain, ordered from the nearest base to the furthest. `A + B`
// produces a fresh Object whose layers are B's layers (outermost) then
// A's layers (base) — see Compose.
type Object struct {
	layers  []*Layer
	cache   map[Symbol]*fieldCacheEntry
	combine Combiner

	assertState fieldState
	assertErr   error
}

// Combiner implements the `+` algebra between two already-evaluated
// values (spec §4.2). It is supplied by the evaluator rather than owned
// by this package so that the full error taxonomy stays in one place;
// the object model only needs it to resolve `+:` additive fields.
type Combiner func(base, override Value) (Value, error)

type fieldState uint8

const (
	fieldUnresolved fieldState = iota
	fieldResolving
	fieldResolved
	fieldErrored
)

type fieldCacheEntry struct {
	state fieldState
	value Value
	err   error
}

// NewObject builds a fresh, single-layer object from assignments and
// asserts — the result of evaluating one object literal or comprehension.
// combine is the `+` algebra used to resolve any `+:` additive fields
// this object's own layer declares against its (later-composed) base.
func NewObject(assignments []Assignment, asserts []AssertFunc, combine Combiner) *Object {
	return &Object{
		layers:  []*Layer{{Assignments: assignments, Asserts: asserts}},
		cache:   make(map[Symbol]*fieldCacheEntry),
		combine: combine,
	}
}

// Compose implements the inheritance merge `a + b`: the result's chain
// is [b's layers..., a's layers...], giving b's fields priority while
// preserving both objects' asserts.
func Compose(a, b *Object, combine Combiner) *Object {
	layers := make([]*Layer, 0, len(a.layers)+len(b.layers))
	layers = append(layers, b.layers...)
	layers = append(layers, a.layers...)
	return &Object{
		layers:  layers,
		cache:   make(map[Symbol]*fieldCacheEntry),
		combine: combine,
	}
}

// HasField reports whether k is defined anywhere in o's chain,
// regardless of visibility.
func (o *Object) HasField(k Symbol) bool {
	for _, layer := range o.layers {
		for _, a := range layer.Assignments {
			if a.Name == k {
				return true
			}
		}
	}
	return false
}

// VisibleField reports whether k, as seen from the outside, should be
// visible — i.e. the owning assignment (outermost definition) is not
// Hidden, or some layer ForceVisible overrides it.
func (o *Object) VisibleField(k Symbol) bool {
	vis, ok := o.visibilityOf(k)
	return ok && vis != Hidden
}

// visibilityOf returns the effective visibility of field k: the
// outermost (most overriding) definition's visibility, unless any
// layer's definition is ForceVisible, which wins regardless of position.
func (o *Object) visibilityOf(k Symbol) (Visibility, bool) {
	found := false
	var effective Visibility
	for _, layer := range o.layers {
		for _, a := range layer.Assignments {
			if a.Name != k {
				continue
			}
			if !found {
				effective = a.Visibility
				found = true
			}
			if a.Visibility == ForceVisible {
				effective = ForceVisible
			}
		}
	}
	return effective, found
}

// FieldNames returns every field name defined anywhere in the chain,
// deduplicated, in lexicographic-by-codepoint order unless
// preserveOrder is set, in which case it returns first-definition order
// across the merged chain (outermost layer's own declaration order
// first). Hidden fields are excluded unless includeHidden is true.
func (o *Object) FieldNames(in *Interner, preserveOrder, includeHidden bool) []string {
	seen := make(map[Symbol]struct{})
	var syms []Symbol
	for _, layer := range o.layers {
		for _, a := range layer.Assignments {
			if _, ok := seen[a.Name]; ok {
				continue
			}
			seen[a.Name] = struct{}{}
			syms = append(syms, a.Name)
		}
	}

	names := make([]string, 0, len(syms))
	for _, sym := range syms {
		if !includeHidden && !o.VisibleField(sym) {
			continue
		}
		names = append(names, in.String(sym))
	}
	if !preserveOrder {
		sortStrings(names)
	}
	return names
}

// sortStrings sorts in place using codepoint (byte-wise, which is
// codepoint order for valid UTF-8) comparison.
func sortStrings(s []string) {
	// insertion sort is adequate: field counts are small and this keeps
	// the object package free of a sort.Interface allocation per call.
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

// Resolve computes (and memoizes) field k on o, treating o itself as
// `this`. Re-entrant resolution of the same field on the same object
// (a field whose computation reads itself) returns a *RecursionError.
func (o *Object) Resolve(k Symbol) (Value, error) {
	if err := o.checkAsserts(); err != nil {
		return nil, err
	}

	if entry, ok := o.cache[k]; ok {
		switch entry.state {
		case fieldResolving:
			return nil, &RecursionError{}
		case fieldResolved:
			return entry.value, nil
		case fieldErrored:
			return nil, entry.err
		}
	}

	entry := &fieldCacheEntry{state: fieldResolving}
	o.cache[k] = entry

	v, err := o.computeField(k, 0)
	if err != nil {
		entry.state = fieldErrored
		entry.err = err
		return nil, err
	}
	entry.state = fieldResolved
	entry.value = v
	return v, nil
}

// computeField scans layers[from:] for the outermost definition of k and
// evaluates it, recursing into the remaining chain for `+:` fields. self
// is always o (the original `this`); only the chain suffix searched
// shrinks as resolution descends into inherited layers.
func (o *Object) computeField(k Symbol, from int) (Value, error) {
	for i := from; i < len(o.layers); i++ {
		layer := o.layers[i]
		for _, a := range layer.Assignments {
			if a.Name != k {
				continue
			}
			super := &Object{layers: o.layers[i+1:], cache: make(map[Symbol]*fieldCacheEntry), combine: o.combine}
			own, err := a.Compute(o, super)
			if err != nil {
				return nil, err
			}
			if !a.Additive {
				return own, nil
			}
			inherited, err := o.computeField(k, i+1)
			if err != nil {
				// no inherited definition: `+:` on a base layer behaves
				// like a plain field.
				if _, missing := err.(*fieldNotFoundError); missing {
					return own, nil
				}
				return nil, err
			}
			return o.combine(inherited, own)
		}
	}
	return nil, &fieldNotFoundError{name: k}
}

// fieldNotFoundError is an internal sentinel used by computeField's
// recursive search. Resolve itself does not check that k exists; every
// caller of Resolve in this module first confirms the key via HasField
// or takes it from FieldNames, so they never see this sentinel, and the
// evaluator's NoSuchField error is constructed from that check instead.
type fieldNotFoundError struct{ name Symbol }

func (e *fieldNotFoundError) Error() string { return "field not found" }

// checkAsserts runs every layer's asserts, in chain order, the first
// time any field of o is forced. Failure is cached and re-raised on
// every subsequent field access. The spec does not guarantee an
// observable firing order for asserts versus the first field force, so
// running them eagerly here (before computeField) is a valid choice.
func (o *Object) checkAsserts() error {
	switch o.assertState {
	case fieldResolving:
		return nil // asserts are running; a field body they reference must not re-enter them
	case fieldResolved:
		return nil
	case fieldErrored:
		return o.assertErr
	}
	o.assertState = fieldResolving
	for i, layer := range o.layers {
		super := &Object{layers: o.layers[i+1:], cache: make(map[Symbol]*fieldCacheEntry), combine: o.combine}
		for _, assert := range layer.Asserts {
			if err := assert(o, super); err != nil {
				o.assertState = fieldErrored
				o.assertErr = err
				return err
			}
		}
	}
	o.assertState = fieldResolved
	return nil
}
