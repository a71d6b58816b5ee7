package eval

import (
	"fmt"
	"math"

	"github.com/cwbudde/hollow/internal/obj"
)

// combine implements the `+` algebra (spec §4.2) and is handed to every
// obj.Object the evaluator builds, so `+:` additive fields and the
// binary `+` operator share one implementation.
func (e *Evaluator) combine(base, override obj.Value) (obj.Value, error) {
	switch ov := override.(type) {
	case *obj.Object:
		if bv, ok := base.(*obj.Object); ok {
			return obj.Compose(bv, ov, e.combine), nil
		}
		return nil, newErr(BinaryOperatorDoesNotOperateOnValues, "binary operator + does not operate on %s and object", base.Kind())
	case obj.Str:
		return obj.Str(e.toDisplayString(base) + string(ov)), nil
	case *obj.Arr:
		if bv, ok := base.(*obj.Arr); ok {
			elems := make([]*obj.Thunk, 0, len(bv.Elements)+len(ov.Elements))
			elems = append(elems, bv.Elements...)
			elems = append(elems, ov.Elements...)
			return &obj.Arr{Elements: elems}, nil
		}
		return nil, newErr(BinaryOperatorDoesNotOperateOnValues, "binary operator + does not operate on %s and array", base.Kind())
	case obj.Num:
		if bv, ok := base.(obj.Num); ok {
			return bv + ov, nil
		}
		if bs, ok := base.(obj.Str); ok {
			return obj.Str(string(bs) + e.toDisplayString(override)), nil
		}
		return nil, newErr(BinaryOperatorDoesNotOperateOnValues, "binary operator + does not operate on %s and number", base.Kind())
	default:
		return nil, newErr(BinaryOperatorDoesNotOperateOnValues, "binary operator + does not operate on %s and %s", base.Kind(), override.Kind())
	}
}

// toDisplayString renders v the way string concatenation with `+`
// stringifies a non-string operand (numbers without trailing zeros,
// booleans/null as their keyword spelling). Objects and arrays are
// never reached here; they take their own branch in combine/binaryAdd.
func (e *Evaluator) toDisplayString(v obj.Value) string {
	switch vv := v.(type) {
	case obj.Str:
		return string(vv)
	case obj.Num:
		return formatNumber(float64(vv))
	case obj.Bool:
		if vv {
			return "true"
		}
		return "false"
	case obj.Null:
		return "null"
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatNumber(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < 1e15 {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

func (e *Evaluator) binaryAdd(left, right obj.Value) (obj.Value, error) {
	return e.combine(left, right)
}

func (e *Evaluator) binaryNumeric(op string, left, right obj.Value) (obj.Value, error) {
	ln, lok := left.(obj.Num)
	rn, rok := right.(obj.Num)
	if !lok || !rok {
		return nil, newErr(BinaryOperatorDoesNotOperateOnValues, "binary operator %s does not operate on %s and %s", op, left.Kind(), right.Kind())
	}
	switch op {
	case "-":
		return ln - rn, nil
	case "*":
		return ln * rn, nil
	case "/":
		if rn == 0 {
			return nil, newErr(DivisionByZero, "division by zero")
		}
		return ln / rn, nil
	case "%":
		if rn == 0 {
			return nil, newErr(DivisionByZero, "division by zero")
		}
		return obj.Num(math.Mod(float64(ln), float64(rn))), nil
	}
	return nil, newErr(RuntimeError, "unknown numeric operator %s", op)
}

func (e *Evaluator) binaryCompare(op string, left, right obj.Value) (obj.Value, error) {
	c, err := e.compareValues(left, right)
	if err != nil {
		return nil, err
	}
	switch op {
	case "<":
		return obj.Bool(c < 0), nil
	case "<=":
		return obj.Bool(c <= 0), nil
	case ">":
		return obj.Bool(c > 0), nil
	case ">=":
		return obj.Bool(c >= 0), nil
	}
	return nil, newErr(RuntimeError, "unknown comparison operator %s", op)
}

// compareValues imposes a total order on numbers, strings, and arrays
// of comparable elements (lexicographic). Any other pairing, including
// objects and functions, is a TypeMismatch — Hollow has no default
// ordering for them.
func (e *Evaluator) compareValues(left, right obj.Value) (int, error) {
	switch lv := left.(type) {
	case obj.Num:
		rv, ok := right.(obj.Num)
		if !ok {
			return 0, newErr(TypeMismatch, "cannot compare number with %s", right.Kind())
		}
		switch {
		case lv < rv:
			return -1, nil
		case lv > rv:
			return 1, nil
		default:
			return 0, nil
		}
	case obj.Str:
		rv, ok := right.(obj.Str)
		if !ok {
			return 0, newErr(TypeMismatch, "cannot compare string with %s", right.Kind())
		}
		switch {
		case lv < rv:
			return -1, nil
		case lv > rv:
			return 1, nil
		default:
			return 0, nil
		}
	case *obj.Arr:
		rv, ok := right.(*obj.Arr)
		if !ok {
			return 0, newErr(TypeMismatch, "cannot compare array with %s", right.Kind())
		}
		for i := 0; i < len(lv.Elements) && i < len(rv.Elements); i++ {
			lev, err := e.force(lv.Elements[i])
			if err != nil {
				return 0, err
			}
			rev, err := e.force(rv.Elements[i])
			if err != nil {
				return 0, err
			}
			c, err := e.compareValues(lev, rev)
			if err != nil {
				return 0, err
			}
			if c != 0 {
				return c, nil
			}
		}
		return len(lv.Elements) - len(rv.Elements), nil
	default:
		return 0, newErr(TypeMismatch, "values of type %s are not orderable", left.Kind())
	}
}

// valuesEqual implements structural `==`: primitives compare by value,
// arrays/objects compare element/field-wise (hidden fields excluded, per
// spec §4.2), and functions never compare equal, except the identity
// function to itself.
func (e *Evaluator) valuesEqual(left, right obj.Value) (bool, error) {
	if left.Kind() != right.Kind() {
		return false, nil
	}
	switch lv := left.(type) {
	case obj.Null:
		return true, nil
	case obj.Bool:
		return lv == right.(obj.Bool), nil
	case obj.Num:
		return lv == right.(obj.Num), nil
	case obj.Str:
		return lv == right.(obj.Str), nil
	case *obj.Func:
		return lv.IsIdentity() && right.(*obj.Func).IsIdentity(), nil
	case *obj.Arr:
		rv := right.(*obj.Arr)
		if len(lv.Elements) != len(rv.Elements) {
			return false, nil
		}
		for i := range lv.Elements {
			a, err := e.force(lv.Elements[i])
			if err != nil {
				return false, err
			}
			b, err := e.force(rv.Elements[i])
			if err != nil {
				return false, err
			}
			eq, err := e.valuesEqual(a, b)
			if err != nil || !eq {
				return eq, err
			}
		}
		return true, nil
	case *obj.Object:
		rv := right.(*obj.Object)
		lNames := lv.FieldNames(e.interner, false, false)
		rNames := rv.FieldNames(e.interner, false, false)
		if len(lNames) != len(rNames) {
			return false, nil
		}
		for i, n := range lNames {
			if rNames[i] != n {
				return false, nil
			}
			sym := e.interner.Intern(n)
			a, err := e.resolve(lv, sym)
			if err != nil {
				return false, err
			}
			b, err := e.resolve(rv, sym)
			if err != nil {
				return false, err
			}
			eq, err := e.valuesEqual(a, b)
			if err != nil || !eq {
				return eq, err
			}
		}
		return true, nil
	default:
		return false, newErr(TypeMismatch, "values of type %s are not comparable", left.Kind())
	}
}

func truthy(v obj.Value) (bool, error) {
	b, ok := v.(obj.Bool)
	if !ok {
		return false, newErr(TypeMismatch, "condition must be a boolean, got %s", v.Kind())
	}
	return bool(b), nil
}
