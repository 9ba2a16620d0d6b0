package errors

import (
	"strings"
	"testing"
)

func TestNotFittedError(t *testing.T) {
	err := NewNotFittedError("boost.Regressor", "Predict")

	var notFitted *NotFittedError
	if !As(err, &notFitted) {
		t.Fatal("expected NotFittedError to unwrap")
	}
	if notFitted.ModelName != "boost.Regressor" {
		t.Errorf("ModelName = %q, want boost.Regressor", notFitted.ModelName)
	}
	if !strings.Contains(err.Error(), "not fitted") {
		t.Errorf("message %q should mention not fitted", err.Error())
	}
}

func TestDimensionError(t *testing.T) {
	err := NewDimensionError("recipe.Bake", 8, 5, 1)

	var dim *DimensionError
	if !As(err, &dim) {
		t.Fatal("expected DimensionError to unwrap")
	}
	if dim.Expected != 8 || dim.Got != 5 {
		t.Errorf("got %d/%d, want 8/5", dim.Expected, dim.Got)
	}
	if !strings.Contains(err.Error(), "features") {
		t.Errorf("axis 1 message %q should name features", err.Error())
	}
}

func TestValueErrorWrapPreservesType(t *testing.T) {
	inner := NewValueError("tune.Search.Run", "empty grid")
	wrapped := Wrap(inner, "running search")

	var value *ValueError
	if !As(wrapped, &value) {
		t.Fatal("wrapping must preserve the concrete error type")
	}
	if value.Op != "tune.Search.Run" {
		t.Errorf("Op = %q, want tune.Search.Run", value.Op)
	}
}

func TestWarningHandler(t *testing.T) {
	var captured error
	SetWarningHandler(func(w error) { captured = w })
	defer SetWarningHandler(func(error) {})

	warning := NewConvergenceWarning("neural.Classifier", 500, "")
	Warn(warning)

	if captured == nil {
		t.Fatal("handler did not receive the warning")
	}
	var conv *ConvergenceWarning
	if !As(captured, &conv) {
		t.Fatal("expected a ConvergenceWarning")
	}
	if conv.Iterations != 500 {
		t.Errorf("Iterations = %d, want 500", conv.Iterations)
	}
}

func TestConvergenceWarningMessage(t *testing.T) {
	short := NewConvergenceWarning("boost.Trainer", 10, "loss plateaued")
	if !strings.Contains(short.Error(), "loss plateaued") {
		t.Errorf("custom message missing from %q", short.Error())
	}
	generic := NewConvergenceWarning("boost.Trainer", 10, "")
	if !strings.Contains(generic.Error(), "10 iterations") {
		t.Errorf("iteration count missing from %q", generic.Error())
	}
}

func TestRecover(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err, "tune.Search.Run")
		panic("split index out of range")
	}

	err := fn()
	if err == nil {
		t.Fatal("expected recovered panic as error")
	}
	var pe *PanicError
	if !As(err, &pe) {
		t.Fatal("expected PanicError to unwrap")
	}
	if !strings.Contains(err.Error(), "split index out of range") {
		t.Errorf("panic value missing from %q", err.Error())
	}
}

func TestRecoverNoPanic(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err, "tune.Search.Run")
		return nil
	}
	if err := fn(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
