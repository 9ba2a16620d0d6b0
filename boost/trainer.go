package boost

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/hikaru-sato/gridfit/pkg/errors"
	"github.com/hikaru-sato/gridfit/pkg/log"
)

// Trainer runs the boosting loop. Most callers use the Regressor and
// Classifier wrappers instead of driving a Trainer directly.
type Trainer struct {
	params    Params
	objective Objective

	x         [][]float64
	targets   []float64
	trees     []Tree
	initScore float64
}

// NewTrainer creates a trainer with defaults filled in.
func NewTrainer(params Params) *Trainer {
	return &Trainer{params: params.withDefaults()}
}

// Fit trains the ensemble on X (n×p) and y (n×1).
func (t *Trainer) Fit(X, y mat.Matrix) error {
	rows, cols := X.Dims()
	yRows, yCols := y.Dims()
	if rows == 0 || cols == 0 {
		return errors.Wrap(errors.ErrEmptyData, "boost.Trainer.Fit")
	}
	if yCols != 1 {
		return errors.NewValueError("boost.Trainer.Fit", "y must be a column vector (n×1 matrix)")
	}
	if yRows != rows {
		return errors.NewDimensionError("boost.Trainer.Fit", rows, yRows, 0)
	}

	objective, err := newObjective(t.params.Objective)
	if err != nil {
		return err
	}
	t.objective = objective

	// Copy into row-major slices once; tree building reads features hot.
	t.x = make([][]float64, rows)
	t.targets = make([]float64, rows)
	for i := 0; i < rows; i++ {
		t.x[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			t.x[i][j] = X.At(i, j)
		}
		t.targets[i] = y.At(i, 0)
	}

	t.initScore = t.objective.InitScore(t.targets)
	t.trees = t.trees[:0]

	raw := make([]float64, rows)
	for i := range raw {
		raw[i] = t.initScore
	}

	gradients := make([]float64, rows)
	hessians := make([]float64, rows)
	sampler := rand.New(rand.NewPCG(uint64(t.params.Seed), uint64(t.params.Seed)+1))

	logger := log.GetLoggerWithName("boost.trainer").With(
		log.ModelNameKey, "boost.Trainer",
		log.SamplesKey, rows,
		log.FeaturesKey, cols,
	)

	builder := &treeBuilder{
		x:              t.x,
		gradients:      gradients,
		hessians:       hessians,
		lambda:         t.params.Lambda,
		maxDepth:       t.params.MaxDepth,
		minSamplesLeaf: t.params.MinSamplesLeaf,
	}

	for round := 0; round < t.params.NumRounds; round++ {
		for i := 0; i < rows; i++ {
			gradients[i] = t.objective.Gradient(raw[i], t.targets[i])
			hessians[i] = t.objective.Hessian(raw[i], t.targets[i])
		}

		samples := t.sampleRows(sampler, rows)
		tree := builder.build(samples)
		t.trees = append(t.trees, tree)

		for i := 0; i < rows; i++ {
			raw[i] += t.params.LearningRate * tree.Predict(t.x[i])
		}

		if round%10 == 0 {
			loss := 0.0
			for i := 0; i < rows; i++ {
				loss += t.objective.Loss(raw[i], t.targets[i])
			}
			logger.Debug("boosting progress",
				log.IterationKey, round,
				log.LossKey, loss/float64(rows),
			)
		}
	}

	return nil
}

// sampleRows draws the row subset for one round. With Subsample at 1 every
// row is used.
func (t *Trainer) sampleRows(r *rand.Rand, rows int) []int {
	if t.params.Subsample >= 1.0 {
		samples := make([]int, rows)
		for i := range samples {
			samples[i] = i
		}
		return samples
	}

	keep := int(t.params.Subsample * float64(rows))
	if keep < 2*t.params.MinSamplesLeaf {
		keep = min(rows, 2*t.params.MinSamplesLeaf)
	}
	perm := r.Perm(rows)
	return perm[:keep]
}

// RawPredict returns untransformed ensemble scores for X.
func (t *Trainer) RawPredict(X mat.Matrix) ([]float64, error) {
	rows, cols := X.Dims()
	if len(t.x) == 0 {
		return nil, errors.NewNotFittedError("boost.Trainer", "RawPredict")
	}
	if cols != len(t.x[0]) {
		return nil, errors.NewDimensionError("boost.Trainer.RawPredict", len(t.x[0]), cols, 1)
	}

	row := make([]float64, cols)
	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			row[j] = X.At(i, j)
		}
		score := t.initScore
		for _, tree := range t.trees {
			score += t.params.LearningRate * tree.Predict(row)
		}
		out[i] = score
	}
	return out, nil
}

// Predict returns predictions on the objective's output scale as an n×1
// matrix.
func (t *Trainer) Predict(X mat.Matrix) (*mat.Dense, error) {
	raw, err := t.RawPredict(X)
	if err != nil {
		return nil, err
	}

	out := mat.NewDense(len(raw), 1, nil)
	for i, score := range raw {
		out.Set(i, 0, t.objective.Transform(score))
	}
	return out, nil
}

// NumTrees returns the number of trees in the fitted ensemble.
func (t *Trainer) NumTrees() int {
	return len(t.trees)
}
