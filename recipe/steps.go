package recipe

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/hikaru-sato/gridfit/core/model"
	"github.com/hikaru-sato/gridfit/pkg/errors"
)

// NormalizeStep centers every column to mean zero and scales it to unit
// standard deviation. Columns with near-zero variance keep a scale of 1 to
// avoid division by zero.
type NormalizeStep struct {
	model.BaseEstimator

	// Mean holds the per-column mean learned in Prep.
	Mean []float64

	// Scale holds the per-column standard deviation learned in Prep.
	Scale []float64

	// WithMean controls whether the mean is subtracted.
	WithMean bool

	// WithStd controls whether columns are divided by their deviation.
	WithStd bool

	nFeatures int
}

// Normalize returns a step that centers and scales every column.
func Normalize() *NormalizeStep {
	return &NormalizeStep{WithMean: true, WithStd: true}
}

// Center returns a step that only subtracts the column means.
func Center() *NormalizeStep {
	return &NormalizeStep{WithMean: true, WithStd: false}
}

// ScaleStd returns a step that only divides by the column deviations.
func ScaleStd() *NormalizeStep {
	return &NormalizeStep{WithMean: false, WithStd: true}
}

// Name implements Step.
func (s *NormalizeStep) Name() string {
	switch {
	case s.WithMean && s.WithStd:
		return "normalize"
	case s.WithMean:
		return "center"
	default:
		return "scale"
	}
}

// Prep learns the column means and standard deviations.
func (s *NormalizeStep) Prep(X *mat.Dense) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.Wrap(errors.ErrEmptyData, "NormalizeStep.Prep")
	}

	s.nFeatures = c
	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)

	for j := 0; j < c; j++ {
		if s.WithMean {
			sum := 0.0
			for i := 0; i < r; i++ {
				sum += X.At(i, j)
			}
			s.Mean[j] = sum / float64(r)
		}

		if s.WithStd {
			sumSquares := 0.0
			for i := 0; i < r; i++ {
				diff := X.At(i, j) - s.Mean[j]
				sumSquares += diff * diff
			}
			s.Scale[j] = math.Sqrt(sumSquares / float64(r))
			// Near-constant column: leave it unscaled.
			if math.Abs(s.Scale[j]) < 1e-8 {
				s.Scale[j] = 1.0
			}
		} else {
			s.Scale[j] = 1.0
		}
	}

	s.SetFitted()
	return nil
}

// Bake applies the learned centering and scaling.
func (s *NormalizeStep) Bake(X *mat.Dense) (*mat.Dense, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("NormalizeStep", "Bake")
	}

	r, c := X.Dims()
	if c != s.nFeatures {
		return nil, errors.NewDimensionError("NormalizeStep.Bake", s.nFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, (X.At(i, j)-s.Mean[j])/s.Scale[j])
		}
	}
	return result, nil
}

// RangeStep rescales every column into [0, 1] using the minimum and
// maximum observed in the training data. Values outside the training range
// bake to values outside [0, 1]; they are not clipped.
type RangeStep struct {
	model.BaseEstimator

	// Min holds the per-column minimum learned in Prep.
	Min []float64

	// Max holds the per-column maximum learned in Prep.
	Max []float64

	nFeatures int
}

// Range returns a step that rescales every column into [0, 1].
func Range() *RangeStep {
	return &RangeStep{}
}

// Name implements Step.
func (s *RangeStep) Name() string {
	return "range"
}

// Prep learns the column minima and maxima.
func (s *RangeStep) Prep(X *mat.Dense) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.Wrap(errors.ErrEmptyData, "RangeStep.Prep")
	}

	s.nFeatures = c
	s.Min = make([]float64, c)
	s.Max = make([]float64, c)

	for j := 0; j < c; j++ {
		lo, hi := X.At(0, j), X.At(0, j)
		for i := 1; i < r; i++ {
			v := X.At(i, j)
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		s.Min[j] = lo
		s.Max[j] = hi
	}

	s.SetFitted()
	return nil
}

// Bake applies the learned range scaling.
func (s *RangeStep) Bake(X *mat.Dense) (*mat.Dense, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("RangeStep", "Bake")
	}

	r, c := X.Dims()
	if c != s.nFeatures {
		return nil, errors.NewDimensionError("RangeStep.Bake", s.nFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			span := s.Max[j] - s.Min[j]
			if span < 1e-12 {
				// Constant column maps to the middle of the range.
				result.Set(i, j, 0.5)
				continue
			}
			result.Set(i, j, (X.At(i, j)-s.Min[j])/span)
		}
	}
	return result, nil
}
