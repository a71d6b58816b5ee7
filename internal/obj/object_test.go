package obj

import (
	"fmt"
	"testing"
)

func testCombine(base, override Value) (Value, error) {
	bn, bok := base.(Num)
	on, ook := override.(Num)
	if bok && ook {
		return bn + on, nil
	}
	return nil, fmt.Errorf("testCombine: unsupported combination")
}

func constField(name Symbol, v Value, vis Visibility, additive bool) Assignment {
	return Assignment{
		Name:       name,
		Visibility: vis,
		Additive:   additive,
		Compute: func(self, super *Object) (Value, error) {
			return v, nil
		},
	}
}

func TestObjectFieldOverride(t *testing.T) {
	in := NewInterner()
	x := in.Intern("x")

	base := NewObject([]Assignment{constField(x, Num(1), Visible, false)}, nil, testCombine)
	override := NewObject([]Assignment{constField(x, Num(2), Visible, false)}, nil, testCombine)

	composed := Compose(base, override, testCombine)
	v, err := composed.Resolve(x)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if n, ok := v.(Num); !ok || n != 2 {
		t.Fatalf("expected override to win with 2, got %#v", v)
	}
}

func TestObjectAdditiveFieldInherits(t *testing.T) {
	in := NewInterner()
	x := in.Intern("x")

	base := NewObject([]Assignment{constField(x, Num(10), Visible, false)}, nil, testCombine)
	override := NewObject([]Assignment{constField(x, Num(5), Visible, true)}, nil, testCombine)

	composed := Compose(base, override, testCombine)
	v, err := composed.Resolve(x)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if n, ok := v.(Num); !ok || n != 15 {
		t.Fatalf("expected additive combine 10+5=15, got %#v", v)
	}
}

func TestObjectHiddenFieldExcludedFromNames(t *testing.T) {
	in := NewInterner()
	visName := in.Intern("visible")
	hidName := in.Intern("hidden")

	o := NewObject([]Assignment{
		constField(visName, Num(1), Visible, false),
		constField(hidName, Num(2), Hidden, false),
	}, nil, testCombine)

	names := o.FieldNames(in, false, false)
	if len(names) != 1 || names[0] != "visible" {
		t.Fatalf("expected only [visible], got %v", names)
	}

	allNames := o.FieldNames(in, false, true)
	if len(allNames) != 2 {
		t.Fatalf("expected both fields with includeHidden, got %v", allNames)
	}
}

func TestObjectFieldNamesSortedLexicographically(t *testing.T) {
	in := NewInterner()
	b := in.Intern("b")
	a := in.Intern("a")
	c := in.Intern("c")

	o := NewObject([]Assignment{
		constField(b, Num(1), Visible, false),
		constField(a, Num(2), Visible, false),
		constField(c, Num(3), Visible, false),
	}, nil, testCombine)

	names := o.FieldNames(in, false, false)
	if fmt.Sprint(names) != "[a b c]" {
		t.Fatalf("expected sorted [a b c], got %v", names)
	}
}

func TestObjectAssertFailureIsCachedAndReraised(t *testing.T) {
	in := NewInterner()
	x := in.Intern("x")
	calls := 0

	asserts := []AssertFunc{func(self, super *Object) error {
		calls++
		return fmt.Errorf("assertion failed")
	}}
	o := NewObject([]Assignment{constField(x, Num(1), Visible, false)}, asserts, testCombine)

	if _, err := o.Resolve(x); err == nil {
		t.Fatalf("expected assert failure")
	}
	if _, err := o.Resolve(x); err == nil {
		t.Fatalf("expected assert failure to persist on second Resolve")
	}
	if calls != 1 {
		t.Fatalf("expected assert to run once (cached), ran %d times", calls)
	}
}

func TestObjectRecursiveFieldDetected(t *testing.T) {
	in := NewInterner()
	x := in.Intern("x")

	var o *Object
	o = NewObject([]Assignment{{
		Name:       x,
		Visibility: Visible,
		Compute: func(self, super *Object) (Value, error) {
			return self.Resolve(x)
		},
	}}, nil, testCombine)

	if _, err := o.Resolve(x); err == nil {
		t.Fatalf("expected recursion error")
	} else if _, ok := err.(*RecursionError); !ok {
		t.Fatalf("expected *RecursionError, got %#v", err)
	}
}
