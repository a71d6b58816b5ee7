package obj

// Func is a callable value: a Hollow closure, a native function, or the
// distinguished identity function (kept as its own variant so it can be
// compared equal only to itself, per the equality rule in spec §4.2).
// This mirrors jrsonnet's FuncVal::{Id, Normal, Builtin} split.
type Func struct {
	FnKind     FuncKind
	Name       Symbol
	Ctx        *Context
	Params     []Param
	Body       BodyFunc
	Native     NativeFunc
	TailStrict bool
}

// Kind implements Value.
func (*Func) Kind() ValueKind { return KindFunc }

// FuncKind distinguishes the three kinds of callable described in spec §4.4.
type FuncKind uint8

const (
	FuncKindIdentity FuncKind = iota
	FuncKindClosure
	FuncKindNative
)

// Identity returns the distinguished identity function value.
func Identity() *Func {
	return &Func{FnKind: FuncKindIdentity}
}

// IsIdentity reports whether f is the distinguished identity function.
// Only this comparison makes two Func values equal (spec §4.2): a
// user-defined `function(x) x` never compares equal to it or to itself.
func (f *Func) IsIdentity() bool {
	return f.FnKind == FuncKindIdentity
}

// Param describes one formal parameter of a closure or native function.
type Param struct {
	Name       Symbol
	HasDefault bool
	Default    DefaultFunc
}

// DefaultFunc evaluates a parameter's default expression against a
// context that contains every other parameter of the same call (bound or
// still-defaulting), implementing the letrec semantics of spec §4.4 step 3.
type DefaultFunc func(params *Context) (Value, error)

// BodyFunc evaluates a closure's body against its fully-bound body
// context (captured context extended with the parameter frame).
type BodyFunc func(bodyCtx *Context) (Value, error)

// NativeFunc is a host-supplied callback. Natives are always strict: by
// the time NativeFunc runs, every argument has already been forced to a
// concrete Value (see spec §4.5).
type NativeFunc func(args []Value) (Value, error)

// ParamsLen reports the number of required (no-default) parameters,
// mirroring jrsonnet's FuncVal::params_len.
func (f *Func) ParamsLen() int {
	if f.FnKind == FuncKindIdentity {
		return 1
	}
	n := 0
	for _, p := range f.Params {
		if !p.HasDefault {
			n++
		}
	}
	return n
}
