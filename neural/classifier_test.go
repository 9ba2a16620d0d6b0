package neural

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	gerrors "github.com/hikaru-sato/gridfit/pkg/errors"
)

func xorData() (*mat.Dense, *mat.Dense) {
	X := mat.NewDense(4, 2, []float64{
		0, 0,
		0, 1,
		1, 0,
		1, 1,
	})
	y := mat.NewDense(4, 1, []float64{0, 1, 1, 0})
	return X, y
}

func TestClassifierLearnsXOR(t *testing.T) {
	X, y := xorData()

	clf := NewClassifier(Params{
		HiddenUnits:  8,
		LearningRate: 0.5,
		Momentum:     0.9,
		Epochs:       8000,
		Tol:          1e-12,
		Seed:         3,
	})
	if err := clf.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	acc, err := clf.Score(X, y)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if acc != 1.0 {
		t.Errorf("XOR accuracy = %.2f, want 1.0", acc)
	}
}

func TestClassifierDeterministic(t *testing.T) {
	X, y := xorData()

	params := Params{HiddenUnits: 4, Epochs: 200, Seed: 11}
	a := NewClassifier(params)
	b := NewClassifier(params)
	if err := a.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if err := b.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	probA, _ := a.PredictProba(X)
	probB, _ := b.PredictProba(X)
	for i := 0; i < 4; i++ {
		if probA.At(i, 0) != probB.At(i, 0) {
			t.Fatalf("probabilities differ at row %d with the same seed", i)
		}
	}
}

func TestClassifierConvergenceWarning(t *testing.T) {
	X, y := xorData()

	var warned error
	gerrors.SetWarningHandler(func(w error) { warned = w })
	defer gerrors.SetWarningHandler(func(error) {})

	// Far too few epochs to converge on XOR.
	clf := NewClassifier(Params{HiddenUnits: 4, Epochs: 3, Seed: 1})
	if err := clf.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if warned == nil {
		t.Fatal("expected a ConvergenceWarning")
	}
	var cw *gerrors.ConvergenceWarning
	if !gerrors.As(warned, &cw) {
		t.Fatalf("warning type = %T, want *ConvergenceWarning", warned)
	}
	if cw.Iterations != 3 {
		t.Errorf("Iterations = %d, want 3", cw.Iterations)
	}
}

func TestClassifierValidation(t *testing.T) {
	clf := NewClassifier(Params{})

	if _, err := clf.Predict(mat.NewDense(1, 2, nil)); err == nil {
		t.Error("expected NotFittedError before Fit")
	}

	X := mat.NewDense(2, 2, []float64{0, 0, 1, 1})
	if err := clf.Fit(X, mat.NewDense(2, 1, []float64{0, 2})); err == nil {
		t.Error("expected error for labels outside {0, 1}")
	}

	bad := NewClassifier(Params{Activation: "softsign"})
	if err := bad.Fit(X, mat.NewDense(2, 1, []float64{0, 1})); err == nil {
		t.Error("expected error for unknown activation")
	}

	good := NewClassifier(Params{Epochs: 10})
	if err := good.Fit(X, mat.NewDense(2, 1, []float64{0, 1})); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if _, err := good.PredictProba(mat.NewDense(1, 3, nil)); err == nil {
		t.Error("expected DimensionError for wrong width")
	}
}
