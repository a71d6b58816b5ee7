package hollow

import (
	"strings"
	"testing"

	"github.com/cwbudde/hollow/internal/eval"
)

func evalErr(t *testing.T, code string) *eval.Error {
	t.Helper()
	e := New()
	_, err := e.EvaluateSnippet("t", code)
	if err == nil {
		t.Fatalf("expected an error evaluating %q", code)
	}
	ee, ok := err.(*eval.Error)
	if !ok {
		t.Fatalf("expected *eval.Error, got %#v", err)
	}
	return ee
}

func TestDivisionByZero(t *testing.T) {
	ee := evalErr(t, "1 / 0")
	if ee.Kind != eval.DivisionByZero {
		t.Fatalf("expected DivisionByZero, got %s", ee.Kind)
	}
}

func TestArrayOutOfBounds(t *testing.T) {
	ee := evalErr(t, "[1, 2, 3][10]")
	if ee.Kind != eval.ArrayBoundsError {
		t.Fatalf("expected ArrayBoundsError, got %s", ee.Kind)
	}
}

func TestUndefinedVariable(t *testing.T) {
	ee := evalErr(t, "doesNotExist")
	if ee.Kind != eval.VariableIsNotDefined {
		t.Fatalf("expected VariableIsNotDefined, got %s", ee.Kind)
	}
}

func TestAssertionFailureMessage(t *testing.T) {
	ee := evalErr(t, `assert 1 == 2 : "one is not two"; 0`)
	if ee.Kind != eval.AssertionFailed {
		t.Fatalf("expected AssertionFailed, got %s", ee.Kind)
	}
	if !strings.Contains(ee.Message, "one is not two") {
		t.Fatalf("expected message to contain %q, got %q", "one is not two", ee.Message)
	}
}

func TestExplicitErrorExpression(t *testing.T) {
	ee := evalErr(t, `error "boom"`)
	if ee.Kind != eval.ExplicitError {
		t.Fatalf("expected ExplicitError, got %s", ee.Kind)
	}
}

func TestStackOverflowOnDeepNonTailRecursion(t *testing.T) {
	e := New(WithMaxStackDepth(20))
	_, err := e.EvaluateSnippet("t", `local f(n) = if n <= 0 then 0 else 1 + f(n - 1); f(1000)`)
	if err == nil {
		t.Fatalf("expected StackOverflow error")
	}
	ee, ok := err.(*eval.Error)
	if !ok {
		t.Fatalf("expected *eval.Error, got %#v", err)
	}
	if ee.Kind != eval.StackOverflow {
		t.Fatalf("expected StackOverflow, got %s", ee.Kind)
	}
}

func TestNoSuchFieldError(t *testing.T) {
	ee := evalErr(t, `{a: 1}.b`)
	if ee.Kind != eval.NoSuchField && ee.Kind != eval.FieldNotFound {
		t.Fatalf("expected NoSuchField/FieldNotFound, got %s", ee.Kind)
	}
}

func TestDuplicateLocalVarError(t *testing.T) {
	ee := evalErr(t, `local a = 1, a = 2; a`)
	if ee.Kind != eval.DuplicateLocalVar {
		t.Fatalf("expected DuplicateLocalVar, got %s", ee.Kind)
	}
}

func TestDuplicateLocalVarErrorAcrossSequentialClauses(t *testing.T) {
	ee := evalErr(t, `local a = 1; local a = 2; a`)
	if ee.Kind != eval.DuplicateLocalVar {
		t.Fatalf("expected DuplicateLocalVar, got %s", ee.Kind)
	}
}

func TestDuplicateFieldNameErrorInComprehension(t *testing.T) {
	ee := evalErr(t, `{[k]: k for k in ["a", "a"]}`)
	if ee.Kind != eval.DuplicateFieldName {
		t.Fatalf("expected DuplicateFieldName, got %s", ee.Kind)
	}
}

func TestDuplicateFieldNameErrorInLiteral(t *testing.T) {
	ee := evalErr(t, `{a: 1, a: 2}`)
	if ee.Kind != eval.DuplicateFieldName {
		t.Fatalf("expected DuplicateFieldName, got %s", ee.Kind)
	}
}

func TestFormatTooManyValuesError(t *testing.T) {
	ee := evalErr(t, `std.format("%d", [1, 2])`)
	if ee.Kind != eval.FormatError {
		t.Fatalf("expected FormatError, got %s", ee.Kind)
	}
}

func TestFormatNotEnoughValuesError(t *testing.T) {
	ee := evalErr(t, `std.format("%d %d", [1])`)
	if ee.Kind != eval.FormatError {
		t.Fatalf("expected FormatError, got %s", ee.Kind)
	}
}
