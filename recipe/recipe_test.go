package recipe

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	gerrors "github.com/hikaru-sato/gridfit/pkg/errors"
)

func TestNormalizeStep(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 10,
		2, 20,
		3, 30,
		4, 40,
	})

	r := New(Normalize())
	baked, err := r.PrepBake(X)
	require.NoError(t, err)

	// Each baked column has mean ~0 and population std ~1.
	rows, cols := baked.Dims()
	for j := 0; j < cols; j++ {
		sum, sumSq := 0.0, 0.0
		for i := 0; i < rows; i++ {
			sum += baked.At(i, j)
		}
		mean := sum / float64(rows)
		for i := 0; i < rows; i++ {
			d := baked.At(i, j) - mean
			sumSq += d * d
		}
		assert.InDelta(t, 0, mean, 1e-10, "column %d mean", j)
		assert.InDelta(t, 1, math.Sqrt(sumSq/float64(rows)), 1e-10, "column %d std", j)
	}
}

func TestNormalizeConstantColumn(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{7, 7, 7})

	r := New(Normalize())
	baked, err := r.PrepBake(X)
	require.NoError(t, err)

	// Constant column keeps scale 1, so baking yields zeros, not NaN.
	for i := 0; i < 3; i++ {
		assert.False(t, math.IsNaN(baked.At(i, 0)))
		assert.InDelta(t, 0, baked.At(i, 0), 1e-12)
	}
}

func TestRangeStep(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		0, -5,
		5, 0,
		10, 5,
	})

	r := New(Range())
	baked, err := r.PrepBake(X)
	require.NoError(t, err)

	assert.InDelta(t, 0, baked.At(0, 0), 1e-12)
	assert.InDelta(t, 0.5, baked.At(1, 0), 1e-12)
	assert.InDelta(t, 1, baked.At(2, 0), 1e-12)
	assert.InDelta(t, 0, baked.At(0, 1), 1e-12)
	assert.InDelta(t, 1, baked.At(2, 1), 1e-12)
}

func TestBakeAppliesTrainStatistics(t *testing.T) {
	train := mat.NewDense(2, 1, []float64{0, 10})
	test := mat.NewDense(2, 1, []float64{5, 20})

	r := New(Range())
	require.NoError(t, r.Prep(train))

	baked, err := r.Bake(test)
	require.NoError(t, err)

	// Test data is scaled with the training min/max; out-of-range values
	// land outside [0, 1].
	assert.InDelta(t, 0.5, baked.At(0, 0), 1e-12)
	assert.InDelta(t, 2.0, baked.At(1, 0), 1e-12)
}

func TestBakeBeforePrep(t *testing.T) {
	r := New(Normalize())
	_, err := r.Bake(mat.NewDense(1, 1, []float64{1}))
	require.Error(t, err)

	var notFitted *gerrors.NotFittedError
	assert.True(t, gerrors.As(err, &notFitted))
}

func TestBakeWidthMismatch(t *testing.T) {
	r := New(Normalize())
	require.NoError(t, r.Prep(mat.NewDense(2, 2, []float64{1, 2, 3, 4})))

	_, err := r.Bake(mat.NewDense(1, 3, []float64{1, 2, 3}))
	require.Error(t, err)

	var dim *gerrors.DimensionError
	assert.True(t, gerrors.As(err, &dim))
}

func TestChainedSteps(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1, 2, 3})

	r := New(Center(), Range())
	baked, err := r.PrepBake(X)
	require.NoError(t, err)

	// Centering then range-scaling still spans [0, 1] on training data.
	assert.InDelta(t, 0, baked.At(0, 0), 1e-12)
	assert.InDelta(t, 1, baked.At(2, 0), 1e-12)
}
