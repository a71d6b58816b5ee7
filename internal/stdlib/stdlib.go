// Package stdlib builds the default `std` object bound into the root
// Context of every Hollow evaluation (spec §4.9): a fixed set of
// native-backed builtins covering introspection, array/object
// manipulation and formatting, mirroring the surface real jsonnet-family
// implementations expose as `std`.
package stdlib

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/cwbudde/hollow/internal/eval"
	"github.com/cwbudde/hollow/internal/obj"
)

// Install registers every builtin except std.id (the distinguished
// identity function, bound directly) as a native on ev and returns the
// root Context that binds `std` to the resulting object. Callers
// typically pass the result straight to Evaluator.SetBaseContext.
func Install(ev *eval.Evaluator) *obj.Context {
	b := &builder{ev: ev, in: ev.Interner()}
	fields := b.fields()
	assignments := make([]obj.Assignment, 0, len(fields))
	for name, fn := range fields {
		nameSym := b.in.Intern(name)
		f := fn
		assignments = append(assignments, obj.Assignment{
			Name:       nameSym,
			Visibility: obj.Hidden,
			Compute: func(self, super *obj.Object) (obj.Value, error) {
				return f, nil
			},
		})
	}
	stdObj := obj.NewObject(assignments, nil, stdCombine)
	bindings := map[obj.Symbol]*obj.Thunk{b.in.Intern("std"): obj.Resolved(stdObj)}
	return obj.NewContext().Extend(bindings)
}

func stdCombine(base, override obj.Value) (obj.Value, error) {
	return nil, fmt.Errorf("std is not composable")
}

type builder struct {
	ev *eval.Evaluator
	in *obj.Interner
}

func (b *builder) native(name string, params []string, fn obj.NativeFunc) *obj.Func {
	b.ev.RegisterNative(name, params, fn)
	f, _ := b.ev.Native(name)
	return f
}

func (b *builder) fields() map[string]*obj.Func {
	return map[string]*obj.Func{
		"thisFile":    b.native("thisFile", nil, stdThisFile),
		"length":      b.native("length", []string{"x"}, stdLength(b.in)),
		"type":        b.native("type", []string{"x"}, stdType),
		"isString":    b.native("isString", []string{"x"}, isKind(obj.KindStr)),
		"isNumber":    b.native("isNumber", []string{"x"}, isKind(obj.KindNum)),
		"isBoolean":   b.native("isBoolean", []string{"x"}, isKind(obj.KindBool)),
		"isArray":     b.native("isArray", []string{"x"}, isKind(obj.KindArr)),
		"isObject":    b.native("isObject", []string{"x"}, isKind(obj.KindObj)),
		"isFunction":  b.native("isFunction", []string{"x"}, isKind(obj.KindFunc)),
		"toString":    b.native("toString", []string{"x"}, stdToString(b.ev)),
		"codepoint":   b.native("codepoint", []string{"str"}, stdCodepoint),
		"char":        b.native("char", []string{"n"}, stdChar),
		"substr":      b.native("substr", []string{"str", "from", "len"}, stdSubstr),
		"strReplace":  b.native("strReplace", []string{"str", "from", "to"}, stdStrReplace),
		"split":       b.native("split", []string{"str", "c"}, stdSplit),
		"join":        b.native("join", []string{"sep", "arr"}, stdJoin),
		"asciiUpper":  b.native("asciiUpper", []string{"str"}, stdAsciiUpper),
		"asciiLower":  b.native("asciiLower", []string{"str"}, stdAsciiLower),
		"ceil":        b.native("ceil", []string{"x"}, mathFn(math.Ceil)),
		"floor":       b.native("floor", []string{"x"}, mathFn(math.Floor)),
		"sqrt":        b.native("sqrt", []string{"x"}, mathFn(math.Sqrt)),
		"abs":         b.native("abs", []string{"x"}, mathFn(math.Abs)),
		"pow":         b.native("pow", []string{"x", "n"}, stdPow),
		"max":         b.native("max", []string{"a", "b"}, stdMax),
		"min":         b.native("min", []string{"a", "b"}, stdMin),
		"makeArray":   b.native("makeArray", []string{"sz", "func"}, stdMakeArray(b.ev)),
		"filter":      b.native("filter", []string{"func", "arr"}, stdFilter(b.ev)),
		"map":         b.native("map", []string{"func", "arr"}, stdMap(b.ev)),
		"foldl":       b.native("foldl", []string{"func", "arr", "init"}, stdFoldl(b.ev)),
		"foldr":       b.native("foldr", []string{"func", "arr", "init"}, stdFoldr(b.ev)),
		"range":       b.native("range", []string{"from", "to"}, stdRange),
		"reverse":     b.native("reverse", []string{"arr"}, stdReverse),
		"sort":        b.native("sort", []string{"arr"}, stdSort(b.ev)),
		"objectHas":   b.native("objectHas", []string{"o", "f"}, stdObjectHas(b.in, false)),
		"objectHasAll": b.native("objectHasAll", []string{"o", "f"}, stdObjectHas(b.in, true)),
		"objectFields": b.native("objectFields", []string{"o"}, stdObjectFields(b.in, false)),
		"objectFieldsAll": b.native("objectFieldsAll", []string{"o"}, stdObjectFields(b.in, true)),
		"format":      b.native("format", []string{"str", "vals"}, stdFormat(b.ev)),
		"native":      b.native("native", []string{"name"}, stdNative(b.ev)),
		"parseJson":   b.native("parseJson", []string{"str"}, stdParseJSON(b.in)),
		"id":          obj.Identity(),
	}
}

// stdParseJSON parses str as JSON using gjson and builds the equivalent
// Hollow value tree, the inverse of manifestation's JSON mode.
func stdParseJSON(in *obj.Interner) obj.NativeFunc {
	return func(args []obj.Value) (obj.Value, error) {
		s, ok := arg(args, 0).(obj.Str)
		if !ok {
			return nil, fmt.Errorf("parseJson: expected string")
		}
		parsed := gjson.Parse(string(s))
		if !parsed.Exists() && string(s) != "null" {
			return nil, fmt.Errorf("parseJson: invalid JSON")
		}
		return gjsonToValue(in, parsed), nil
	}
}

func gjsonToValue(in *obj.Interner, r gjson.Result) obj.Value {
	switch r.Type {
	case gjson.Null:
		return obj.Null{}
	case gjson.False:
		return obj.Bool(false)
	case gjson.True:
		return obj.Bool(true)
	case gjson.Number:
		return obj.Num(r.Num)
	case gjson.String:
		return obj.Str(r.Str)
	case gjson.JSON:
		if r.IsArray() {
			var values []obj.Value
			r.ForEach(func(_, v gjson.Result) bool {
				values = append(values, gjsonToValue(in, v))
				return true
			})
			return obj.NewArr(values)
		}
		var assignments []obj.Assignment
		r.ForEach(func(k, v gjson.Result) bool {
			sym := in.Intern(k.Str)
			val := gjsonToValue(in, v)
			assignments = append(assignments, obj.Assignment{
				Name:       sym,
				Visibility: obj.Visible,
				Compute: func(self, super *obj.Object) (obj.Value, error) {
					return val, nil
				},
			})
			return true
		})
		return obj.NewObject(assignments, nil, stdCombine)
	default:
		return obj.Null{}
	}
}

// stdNative looks up a host callback registered through
// pkg/hollow.Engine.RegisterNative and returns it as a callable Hollow
// function value, mirroring jsonnet's std.native(name) bridge.
func stdNative(ev *eval.Evaluator) obj.NativeFunc {
	return func(args []obj.Value) (obj.Value, error) {
		name, ok := arg(args, 0).(obj.Str)
		if !ok {
			return nil, fmt.Errorf("native: expected string name")
		}
		fn, ok := ev.Native(string(name))
		if !ok {
			return nil, fmt.Errorf("native: no function registered as %q", string(name))
		}
		return fn, nil
	}
}

func arg(args []obj.Value, i int) obj.Value {
	if i >= len(args) {
		return obj.Null{}
	}
	return args[i]
}

func stdThisFile(args []obj.Value) (obj.Value, error) {
	return obj.Str(""), nil
}

func stdLength(in *obj.Interner) obj.NativeFunc {
	return func(args []obj.Value) (obj.Value, error) {
		switch v := arg(args, 0).(type) {
		case obj.Str:
			return obj.Num(len([]rune(string(v)))), nil
		case *obj.Arr:
			return obj.Num(len(v.Elements)), nil
		case *obj.Func:
			return obj.Num(v.ParamsLen()), nil
		case *obj.Object:
			return obj.Num(len(v.FieldNames(in, false, false))), nil
		default:
			return nil, fmt.Errorf("length: unsupported type %s", v.Kind())
		}
	}
}

func stdType(args []obj.Value) (obj.Value, error) {
	return obj.Str(arg(args, 0).Kind().String()), nil
}

func isKind(k obj.ValueKind) obj.NativeFunc {
	return func(args []obj.Value) (obj.Value, error) {
		return obj.Bool(arg(args, 0).Kind() == k), nil
	}
}

func stdToString(ev *eval.Evaluator) obj.NativeFunc {
	return func(args []obj.Value) (obj.Value, error) {
		return obj.Str(ev.DisplayString(arg(args, 0))), nil
	}
}

func stdCodepoint(args []obj.Value) (obj.Value, error) {
	s, ok := arg(args, 0).(obj.Str)
	if !ok {
		return nil, fmt.Errorf("codepoint: expected string")
	}
	r := []rune(string(s))
	if len(r) != 1 {
		return nil, fmt.Errorf("codepoint: expected single-character string")
	}
	return obj.Num(r[0]), nil
}

func stdChar(args []obj.Value) (obj.Value, error) {
	n, ok := arg(args, 0).(obj.Num)
	if !ok {
		return nil, fmt.Errorf("char: expected number")
	}
	return obj.Str(string(rune(n))), nil
}

func stdSubstr(args []obj.Value) (obj.Value, error) {
	s, _ := arg(args, 0).(obj.Str)
	from, _ := arg(args, 1).(obj.Num)
	length, _ := arg(args, 2).(obj.Num)
	r := []rune(string(s))
	start := int(from)
	end := start + int(length)
	if start < 0 {
		start = 0
	}
	if end > len(r) {
		end = len(r)
	}
	if start > end {
		start = end
	}
	return obj.Str(string(r[start:end])), nil
}

func stdStrReplace(args []obj.Value) (obj.Value, error) {
	s, _ := arg(args, 0).(obj.Str)
	from, _ := arg(args, 1).(obj.Str)
	to, _ := arg(args, 2).(obj.Str)
	return obj.Str(strings.ReplaceAll(string(s), string(from), string(to))), nil
}

func stdSplit(args []obj.Value) (obj.Value, error) {
	s, _ := arg(args, 0).(obj.Str)
	c, _ := arg(args, 1).(obj.Str)
	parts := strings.Split(string(s), string(c))
	values := make([]obj.Value, len(parts))
	for i, p := range parts {
		values[i] = obj.Str(p)
	}
	return obj.NewArr(values), nil
}

func stdJoin(args []obj.Value) (obj.Value, error) {
	sep, _ := arg(args, 0).(obj.Str)
	arr, ok := arg(args, 1).(*obj.Arr)
	if !ok {
		return nil, fmt.Errorf("join: expected array")
	}
	parts := make([]string, len(arr.Elements))
	for i, t := range arr.Elements {
		v, err := t.Force()
		if err != nil {
			return nil, err
		}
		s, ok := v.(obj.Str)
		if !ok {
			return nil, fmt.Errorf("join: array element %d is not a string", i)
		}
		parts[i] = string(s)
	}
	return obj.Str(strings.Join(parts, string(sep))), nil
}

func stdAsciiUpper(args []obj.Value) (obj.Value, error) {
	s, _ := arg(args, 0).(obj.Str)
	return obj.Str(strings.ToUpper(string(s))), nil
}

func stdAsciiLower(args []obj.Value) (obj.Value, error) {
	s, _ := arg(args, 0).(obj.Str)
	return obj.Str(strings.ToLower(string(s))), nil
}

func mathFn(f func(float64) float64) obj.NativeFunc {
	return func(args []obj.Value) (obj.Value, error) {
		n, ok := arg(args, 0).(obj.Num)
		if !ok {
			return nil, fmt.Errorf("expected number")
		}
		return obj.Num(f(float64(n))), nil
	}
}

func stdPow(args []obj.Value) (obj.Value, error) {
	x, _ := arg(args, 0).(obj.Num)
	n, _ := arg(args, 1).(obj.Num)
	return obj.Num(math.Pow(float64(x), float64(n))), nil
}

func stdMax(args []obj.Value) (obj.Value, error) {
	a, _ := arg(args, 0).(obj.Num)
	b, _ := arg(args, 1).(obj.Num)
	if a > b {
		return a, nil
	}
	return b, nil
}

func stdMin(args []obj.Value) (obj.Value, error) {
	a, _ := arg(args, 0).(obj.Num)
	b, _ := arg(args, 1).(obj.Num)
	if a < b {
		return a, nil
	}
	return b, nil
}

func stdMakeArray(ev *eval.Evaluator) obj.NativeFunc {
	return func(args []obj.Value) (obj.Value, error) {
		sz, _ := arg(args, 0).(obj.Num)
		fn, ok := arg(args, 1).(*obj.Func)
		if !ok {
			return nil, fmt.Errorf("makeArray: expected function")
		}
		n := int(sz)
		elems := make([]*obj.Thunk, n)
		for i := 0; i < n; i++ {
			idx := i
			elems[i] = obj.NewThunk(func() (obj.Value, error) {
				return ev.CallValue(fn, []obj.Value{obj.Num(idx)})
			})
		}
		return &obj.Arr{Elements: elems}, nil
	}
}

func stdFilter(ev *eval.Evaluator) obj.NativeFunc {
	return func(args []obj.Value) (obj.Value, error) {
		fn, ok := arg(args, 0).(*obj.Func)
		if !ok {
			return nil, fmt.Errorf("filter: expected function")
		}
		arr, ok := arg(args, 1).(*obj.Arr)
		if !ok {
			return nil, fmt.Errorf("filter: expected array")
		}
		var out []*obj.Thunk
		for _, t := range arr.Elements {
			v, err := t.Force()
			if err != nil {
				return nil, err
			}
			keep, err := ev.CallValue(fn, []obj.Value{v})
			if err != nil {
				return nil, err
			}
			kb, ok := keep.(obj.Bool)
			if !ok {
				return nil, fmt.Errorf("filter: predicate must return a boolean")
			}
			if bool(kb) {
				out = append(out, t)
			}
		}
		return &obj.Arr{Elements: out}, nil
	}
}

func stdMap(ev *eval.Evaluator) obj.NativeFunc {
	return func(args []obj.Value) (obj.Value, error) {
		fn, ok := arg(args, 0).(*obj.Func)
		if !ok {
			return nil, fmt.Errorf("map: expected function")
		}
		arr, ok := arg(args, 1).(*obj.Arr)
		if !ok {
			return nil, fmt.Errorf("map: expected array")
		}
		elems := make([]*obj.Thunk, len(arr.Elements))
		for i, t := range arr.Elements {
			elemThunk := t
			elems[i] = obj.NewThunk(func() (obj.Value, error) {
				v, err := elemThunk.Force()
				if err != nil {
					return nil, err
				}
				return ev.CallValue(fn, []obj.Value{v})
			})
		}
		return &obj.Arr{Elements: elems}, nil
	}
}

func stdFoldl(ev *eval.Evaluator) obj.NativeFunc {
	return func(args []obj.Value) (obj.Value, error) {
		fn, ok := arg(args, 0).(*obj.Func)
		if !ok {
			return nil, fmt.Errorf("foldl: expected function")
		}
		arr, ok := arg(args, 1).(*obj.Arr)
		if !ok {
			return nil, fmt.Errorf("foldl: expected array")
		}
		acc := arg(args, 2)
		for _, t := range arr.Elements {
			v, err := t.Force()
			if err != nil {
				return nil, err
			}
			acc, err = ev.CallValue(fn, []obj.Value{acc, v})
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	}
}

func stdFoldr(ev *eval.Evaluator) obj.NativeFunc {
	return func(args []obj.Value) (obj.Value, error) {
		fn, ok := arg(args, 0).(*obj.Func)
		if !ok {
			return nil, fmt.Errorf("foldr: expected function")
		}
		arr, ok := arg(args, 1).(*obj.Arr)
		if !ok {
			return nil, fmt.Errorf("foldr: expected array")
		}
		acc := arg(args, 2)
		for i := len(arr.Elements) - 1; i >= 0; i-- {
			v, err := arr.Elements[i].Force()
			if err != nil {
				return nil, err
			}
			acc, err = ev.CallValue(fn, []obj.Value{v, acc})
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	}
}

func stdRange(args []obj.Value) (obj.Value, error) {
	from, _ := arg(args, 0).(obj.Num)
	to, _ := arg(args, 1).(obj.Num)
	var values []obj.Value
	for i := int(from); i <= int(to); i++ {
		values = append(values, obj.Num(i))
	}
	return obj.NewArr(values), nil
}

func stdReverse(args []obj.Value) (obj.Value, error) {
	arr, ok := arg(args, 0).(*obj.Arr)
	if !ok {
		return nil, fmt.Errorf("reverse: expected array")
	}
	n := len(arr.Elements)
	out := make([]*obj.Thunk, n)
	for i, t := range arr.Elements {
		out[n-1-i] = t
	}
	return &obj.Arr{Elements: out}, nil
}

func stdSort(ev *eval.Evaluator) obj.NativeFunc {
	return func(args []obj.Value) (obj.Value, error) {
		arr, ok := arg(args, 0).(*obj.Arr)
		if !ok {
			return nil, fmt.Errorf("sort: expected array")
		}
		values := make([]obj.Value, len(arr.Elements))
		for i, t := range arr.Elements {
			v, err := t.Force()
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		var sortErr error
		sort.SliceStable(values, func(i, j int) bool {
			if sortErr != nil {
				return false
			}
			less, err := ev.LessValues(values[i], values[j])
			if err != nil {
				sortErr = err
				return false
			}
			return less
		})
		if sortErr != nil {
			return nil, sortErr
		}
		return obj.NewArr(values), nil
	}
}

func stdObjectHas(in *obj.Interner, includeHidden bool) obj.NativeFunc {
	return func(args []obj.Value) (obj.Value, error) {
		o, ok := arg(args, 0).(*obj.Object)
		if !ok {
			return nil, fmt.Errorf("objectHas: expected object")
		}
		f, ok := arg(args, 1).(obj.Str)
		if !ok {
			return nil, fmt.Errorf("objectHas: expected string field name")
		}
		sym := in.Intern(string(f))
		if includeHidden {
			return obj.Bool(o.HasField(sym)), nil
		}
		return obj.Bool(o.VisibleField(sym)), nil
	}
}

func stdObjectFields(in *obj.Interner, includeHidden bool) obj.NativeFunc {
	return func(args []obj.Value) (obj.Value, error) {
		o, ok := arg(args, 0).(*obj.Object)
		if !ok {
			return nil, fmt.Errorf("objectFields: expected object")
		}
		names := o.FieldNames(in, false, includeHidden)
		values := make([]obj.Value, len(names))
		for i, n := range names {
			values[i] = obj.Str(n)
		}
		return obj.NewArr(values), nil
	}
}

func stdFormat(ev *eval.Evaluator) obj.NativeFunc {
	return func(args []obj.Value) (obj.Value, error) {
		f, ok := arg(args, 0).(obj.Str)
		if !ok {
			return nil, fmt.Errorf("format: expected string")
		}
		return ev.Format(string(f), arg(args, 1))
	}
}
