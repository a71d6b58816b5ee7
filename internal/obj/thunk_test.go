package obj

import "testing"

func TestThunkMemoizesSuccess(t *testing.T) {
	calls := 0
	th := NewThunk(func() (Value, error) {
		calls++
		return Num(42), nil
	})

	for i := 0; i < 3; i++ {
		v, err := th.Force()
		if err != nil {
			t.Fatalf("Force: %v", err)
		}
		if n, ok := v.(Num); !ok || n != 42 {
			t.Fatalf("expected Num(42), got %#v", v)
		}
	}
	if calls != 1 {
		t.Fatalf("expected closure to run once, ran %d times", calls)
	}
}

func TestThunkMemoizesError(t *testing.T) {
	calls := 0
	boom := &RecursionError{}
	th := NewThunk(func() (Value, error) {
		calls++
		return nil, boom
	})

	if _, err := th.Force(); err != boom {
		t.Fatalf("expected boom error, got %v", err)
	}
	if _, err := th.Force(); err != boom {
		t.Fatalf("expected cached boom error on second Force, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected closure to run once even on error, ran %d times", calls)
	}
}

func TestThunkSelfReferenceDetected(t *testing.T) {
	var th *Thunk
	th = NewThunk(func() (Value, error) {
		return th.Force()
	})

	_, err := th.Force()
	if _, ok := err.(*RecursionError); !ok {
		t.Fatalf("expected *RecursionError, got %#v", err)
	}
}

func TestResolvedThunkIsAlreadyForced(t *testing.T) {
	th := Resolved(Bool(true))
	if !th.Forced() {
		t.Fatalf("expected Resolved thunk to already be Forced")
	}
	v, err := th.Force()
	if err != nil {
		t.Fatalf("Force: %v", err)
	}
	if b, ok := v.(Bool); !ok || !bool(b) {
		t.Fatalf("expected Bool(true), got %#v", v)
	}
}
