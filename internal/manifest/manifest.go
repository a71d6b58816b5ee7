// Package manifest renders evaluated Hollow values into serialized text:
// JSON (the canonical form), YAML, a newline-joined stream of JSON
// documents, and a path-keyed multi-document map — the four output
// modes a jsonnet-family CLI exposes (spec §6, expanded domain stack
// §10).
package manifest

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	goyaml "github.com/goccy/go-yaml"
	"github.com/tidwall/pretty"

	"github.com/cwbudde/hollow/internal/obj"
)

// Error reports a value that cannot be manifested, e.g. a function or a
// Thunk still recursively evaluating.
type Error struct {
	Msg string
}

func (e *Error) Error() string { return e.Msg }

// ToGo converts a fully-evaluated Value into the plain Go value tree
// (map[string]any / []any / string / float64 / bool / nil) that
// encoding/json and goccy/go-yaml both know how to marshal. Hidden
// fields are excluded and object field order is the interner's
// lexicographic order, per spec §3's manifestation invariant.
func ToGo(in *obj.Interner, v obj.Value) (interface{}, error) {
	switch vv := v.(type) {
	case obj.Null:
		return nil, nil
	case obj.Bool:
		return bool(vv), nil
	case obj.Num:
		return float64(vv), nil
	case obj.Str:
		return string(vv), nil
	case *obj.Arr:
		out := make([]interface{}, len(vv.Elements))
		for i, t := range vv.Elements {
			ev, err := t.Force()
			if err != nil {
				return nil, err
			}
			gv, err := ToGo(in, ev)
			if err != nil {
				return nil, err
			}
			out[i] = gv
		}
		return out, nil
	case *obj.Object:
		names := vv.FieldNames(in, false, false)
		out := make(orderedMap, 0, len(names))
		for _, name := range names {
			sym := in.Intern(name)
			fv, err := vv.Resolve(sym)
			if err != nil {
				return nil, err
			}
			gv, err := ToGo(in, fv)
			if err != nil {
				return nil, err
			}
			out = append(out, kv{name, gv})
		}
		return out, nil
	case *obj.Func:
		return nil, &Error{Msg: "tried to manifest a function value"}
	default:
		return nil, &Error{Msg: fmt.Sprintf("cannot manifest value of kind %s", v.Kind())}
	}
}

// kv is one manifested object field; orderedMap is a field list that
// marshals as a JSON object while preserving FieldNames' order, since
// encoding/json's map[string]any would re-sort by Go's map iteration
// (unordered) rather than the spec-mandated lexicographic order that
// FieldNames already produced.
type kv struct {
	Key   string
	Value interface{}
}

type orderedMap []kv

// MarshalJSON implements a stable-order object encoding.
func (m orderedMap) MarshalJSON() ([]byte, error) {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, e := range m {
		if i > 0 {
			sb.WriteByte(',')
		}
		kb, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		sb.Write(kb)
		sb.WriteByte(':')
		sb.Write(vb)
	}
	sb.WriteByte('}')
	return []byte(sb.String()), nil
}

// MarshalYAML implements goccy/go-yaml's ordered-map hook so YAML
// output preserves the same field order as JSON.
func (m orderedMap) MarshalYAML() (interface{}, error) {
	mm := goyaml.MapSlice{}
	for _, e := range m {
		mm = append(mm, goyaml.MapItem{Key: e.Key, Value: e.Value})
	}
	return mm, nil
}

// JSON renders v as JSON, indenting with indent spaces per nesting
// level (0 for compact single-line output), using tidwall/pretty for
// the indentation/padding pass so manifestation matches the exact
// byte-for-byte spacing conventions of jsonnet's default manifester.
func JSON(in *obj.Interner, v obj.Value, indent int) (string, error) {
	gv, err := ToGo(in, v)
	if err != nil {
		return "", err
	}
	raw, err := json.Marshal(gv)
	if err != nil {
		return "", err
	}
	if indent <= 0 {
		return string(pretty.Ugly(raw)), nil
	}
	opts := &pretty.Options{Indent: strings.Repeat(" ", indent), SortKeys: false}
	return string(pretty.PrettyOptions(raw, opts)), nil
}

// YAML renders v as YAML using goccy/go-yaml, preserving field order.
func YAML(in *obj.Interner, v obj.Value) (string, error) {
	gv, err := ToGo(in, v)
	if err != nil {
		return "", err
	}
	out, err := goyaml.Marshal(gv)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Stream renders an array of documents as newline-separated JSON
// objects, the manifestation mode jsonnet calls stream output.
func Stream(in *obj.Interner, v obj.Value, indent int) (string, error) {
	arr, ok := v.(*obj.Arr)
	if !ok {
		return "", &Error{Msg: "stream manifestation requires a top-level array"}
	}
	var sb strings.Builder
	for _, t := range arr.Elements {
		ev, err := t.Force()
		if err != nil {
			return "", err
		}
		doc, err := JSON(in, ev, indent)
		if err != nil {
			return "", err
		}
		sb.WriteString(doc)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// Multi renders a top-level object whose fields are each themselves
// manifested independently, returning a path (field name) to rendered
// document map — the multi-file output mode of jsonnet's -m/--multi.
func Multi(in *obj.Interner, v obj.Value, indent int) (map[string]string, error) {
	o, ok := v.(*obj.Object)
	if !ok {
		return nil, &Error{Msg: "multi manifestation requires a top-level object"}
	}
	names := o.FieldNames(in, false, false)
	out := make(map[string]string, len(names))
	for _, name := range names {
		sym := in.Intern(name)
		fv, err := o.Resolve(sym)
		if err != nil {
			return nil, err
		}
		doc, err := JSON(in, fv, indent)
		if err != nil {
			return nil, err
		}
		out[name] = doc
	}
	return out, nil
}

// MultiPaths returns the sorted field names of a Multi result, useful
// for embedders that need deterministic write order.
func MultiPaths(docs map[string]string) []string {
	names := make([]string, 0, len(docs))
	for k := range docs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
