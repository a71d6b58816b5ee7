package eval

import (
	"github.com/cwbudde/hollow/internal/ast"
	"github.com/cwbudde/hollow/internal/obj"
)

func (e *Evaluator) evalBinary(n *ast.Binary, ctx *obj.Context) (obj.Value, error) {
	// && and || short-circuit: the right operand is only evaluated (and
	// must only be evaluated) when the left doesn't already decide it.
	if n.Op == ast.BinAnd || n.Op == ast.BinOr {
		left, err := e.Eval(n.Left, ctx)
		if err != nil {
			return nil, err
		}
		lb, err := truthy(left)
		if err != nil {
			return nil, err
		}
		if n.Op == ast.BinAnd && !lb {
			return obj.Bool(false), nil
		}
		if n.Op == ast.BinOr && lb {
			return obj.Bool(true), nil
		}
		right, err := e.Eval(n.Right, ctx)
		if err != nil {
			return nil, err
		}
		return truthyValue(right)
	}

	left, err := e.Eval(n.Left, ctx)
	if err != nil {
		return nil, err
	}
	right, err := e.Eval(n.Right, ctx)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case ast.BinAdd:
		return e.binaryAdd(left, right)
	case ast.BinSub:
		return e.binaryNumeric("-", left, right)
	case ast.BinMul:
		return e.binaryNumeric("*", left, right)
	case ast.BinDiv:
		return e.binaryNumeric("/", left, right)
	case ast.BinMod:
		return e.binaryNumeric("%", left, right)
	case ast.BinEq:
		eq, err := e.valuesEqual(left, right)
		if err != nil {
			return nil, err
		}
		return obj.Bool(eq), nil
	case ast.BinNotEq:
		eq, err := e.valuesEqual(left, right)
		if err != nil {
			return nil, err
		}
		return obj.Bool(!eq), nil
	case ast.BinLt, ast.BinLtEq, ast.BinGt, ast.BinGtEq:
		return e.binaryCompare(binOpText(n.Op), left, right)
	case ast.BinBitAnd, ast.BinBitOr, ast.BinBitXor, ast.BinShl, ast.BinShr:
		return e.binaryBitwise(n.Op, left, right)
	case ast.BinIn:
		return e.binaryIn(left, right)
	}
	return nil, newErr(RuntimeError, "unknown binary operator").withTrace(e)
}

func truthyValue(v obj.Value) (obj.Value, error) {
	b, ok := v.(obj.Bool)
	if !ok {
		return nil, newErr(TypeMismatch, "operand of && / || must be a boolean, got %s", v.Kind())
	}
	return b, nil
}

func binOpText(op ast.BinaryOp) string {
	switch op {
	case ast.BinLt:
		return "<"
	case ast.BinLtEq:
		return "<="
	case ast.BinGt:
		return ">"
	case ast.BinGtEq:
		return ">="
	}
	return "?"
}

func (e *Evaluator) binaryBitwise(op ast.BinaryOp, left, right obj.Value) (obj.Value, error) {
	ln, lok := left.(obj.Num)
	rn, rok := right.(obj.Num)
	if !lok || !rok {
		return nil, newErr(BinaryOperatorDoesNotOperateOnValues, "bitwise operator does not operate on %s and %s", left.Kind(), right.Kind())
	}
	li, ri := int64(ln), int64(rn)
	switch op {
	case ast.BinBitAnd:
		return obj.Num(li & ri), nil
	case ast.BinBitOr:
		return obj.Num(li | ri), nil
	case ast.BinBitXor:
		return obj.Num(li ^ ri), nil
	case ast.BinShl:
		return obj.Num(li << uint(ri)), nil
	case ast.BinShr:
		return obj.Num(li >> uint(ri)), nil
	}
	return nil, newErr(RuntimeError, "unknown bitwise operator")
}

func (e *Evaluator) binaryIn(left, right obj.Value) (obj.Value, error) {
	key, ok := left.(obj.Str)
	if !ok {
		return nil, newErr(TypeMismatch, "left-hand side of 'in' must be a string, got %s", left.Kind())
	}
	o, ok := right.(*obj.Object)
	if !ok {
		return nil, newErr(TypeMismatch, "right-hand side of 'in' must be an object, got %s", right.Kind())
	}
	return obj.Bool(o.HasField(e.interner.Intern(string(key)))), nil
}
