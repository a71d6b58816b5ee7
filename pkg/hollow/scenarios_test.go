package hollow

import (
	"strings"
	"testing"

	"github.com/cwbudde/hollow/internal/eval"
	"github.com/cwbudde/hollow/internal/obj"
)

func mustEval(t *testing.T, code string) obj.Value {
	t.Helper()
	e := New()
	v, err := e.EvaluateSnippet("t", code)
	if err != nil {
		t.Fatalf("EvaluateSnippet(%q): %v", code, err)
	}
	return v
}

func TestScenario1Arithmetic(t *testing.T) {
	v := mustEval(t, "1 + 2")
	n, ok := v.(obj.Num)
	if !ok || n != 3 {
		t.Fatalf("expected Num(3), got %#v", v)
	}

	e := New()
	out, err := e.Manifest(v)
	if err != nil {
		t.Fatalf("Manifest: %v", err)
	}
	if strings.TrimSpace(out) != "3" {
		t.Fatalf("expected manifest %q, got %q", "3", out)
	}
}

func TestScenario2ObjectComposition(t *testing.T) {
	v := mustEval(t, `({a: 1} + {a: 2}).a`)
	if n, ok := v.(obj.Num); !ok || n != 2 {
		t.Fatalf("expected Num(2), got %#v", v)
	}

	v = mustEval(t, `({a: 1} + {a+: 2}).a`)
	if n, ok := v.(obj.Num); !ok || n != 3 {
		t.Fatalf("expected Num(3) from additive field, got %#v", v)
	}
}

func TestScenario3DefaultParamReferencesSibling(t *testing.T) {
	v := mustEval(t, `local f(x, y=x+1) = y; f(10)`)
	if n, ok := v.(obj.Num); !ok || n != 11 {
		t.Fatalf("expected Num(11), got %#v", v)
	}
}

func TestScenario4SelfReference(t *testing.T) {
	v := mustEval(t, `{a: self.b, b: 2}.a`)
	if n, ok := v.(obj.Num); !ok || n != 2 {
		t.Fatalf("expected Num(2), got %#v", v)
	}
}

func TestScenario5ArrayComprehension(t *testing.T) {
	v := mustEval(t, `[i*i for i in [1,2,3]]`)
	arr, ok := v.(*obj.Arr)
	if !ok {
		t.Fatalf("expected *obj.Arr, got %#v", v)
	}
	want := []float64{1, 4, 9}
	if len(arr.Elements) != len(want) {
		t.Fatalf("expected %d elements, got %d", len(want), len(arr.Elements))
	}
	for i, th := range arr.Elements {
		ev, err := th.Force()
		if err != nil {
			t.Fatalf("Force element %d: %v", i, err)
		}
		n, ok := ev.(obj.Num)
		if !ok || float64(n) != want[i] {
			t.Fatalf("element %d: expected %v, got %#v", i, want[i], ev)
		}
	}
}

func TestScenario6SelfReferenceCycleDetected(t *testing.T) {
	e := New()
	_, err := e.EvaluateSnippet("t", `local x = x; x`)
	if err == nil {
		t.Fatalf("expected InfiniteRecursionDetected error")
	}
	ee, ok := err.(*eval.Error)
	if !ok {
		t.Fatalf("expected *eval.Error, got %#v", err)
	}
	if ee.Kind != eval.InfiniteRecursionDetected {
		t.Fatalf("expected InfiniteRecursionDetected, got %s", ee.Kind)
	}
}

func TestMutualRecursionCycleDetected(t *testing.T) {
	e := New()
	_, err := e.EvaluateSnippet("t", `local a = b; local b = a; a`)
	if err == nil {
		t.Fatalf("expected InfiniteRecursionDetected error")
	}
	ee, ok := err.(*eval.Error)
	if !ok {
		t.Fatalf("expected *eval.Error, got %#v", err)
	}
	if ee.Kind != eval.InfiniteRecursionDetected {
		t.Fatalf("expected InfiniteRecursionDetected, got %s", ee.Kind)
	}
}

func TestMutualRecursionAcrossSequentialLocals(t *testing.T) {
	v := mustEval(t, `local isEven(n) = if n == 0 then true else isOdd(n - 1);
local isOdd(n) = if n == 0 then false else isEven(n - 1);
isEven(10)`)
	b, ok := v.(obj.Bool)
	if !ok || !bool(b) {
		t.Fatalf("expected Bool(true), got %#v", v)
	}
}

func TestStdIdIsIdentityAndSelfEqual(t *testing.T) {
	v := mustEval(t, `std.id(42)`)
	n, ok := v.(obj.Num)
	if !ok || n != 42 {
		t.Fatalf("expected Num(42), got %#v", v)
	}
	eq := mustEval(t, `std.id == std.id`)
	b, ok := eq.(obj.Bool)
	if !ok || !bool(b) {
		t.Fatalf("expected std.id == std.id, got %#v", eq)
	}
}

func TestLazinessSkipsOutOfBoundsElements(t *testing.T) {
	v := mustEval(t, `local a = [1, 2, 1/0]; [a[0], a[1]]`)
	arr, ok := v.(*obj.Arr)
	if !ok || len(arr.Elements) != 2 {
		t.Fatalf("expected two-element array, got %#v", v)
	}
}

func TestTopLevelArguments(t *testing.T) {
	e := New()
	e.WithTLA("name", obj.Str("world"))
	v, err := e.EvaluateSnippet("t", `function(name) "hello " + name`)
	if err != nil {
		t.Fatalf("EvaluateSnippet: %v", err)
	}
	s, ok := v.(obj.Str)
	if !ok || string(s) != "hello world" {
		t.Fatalf("expected \"hello world\", got %#v", v)
	}
}
