package boost

import (
	"gonum.org/v1/gonum/mat"

	"github.com/hikaru-sato/gridfit/core/model"
	"github.com/hikaru-sato/gridfit/metrics"
	"github.com/hikaru-sato/gridfit/pkg/errors"
)

// Classifier is a boosted-tree binary classifier over labels in {0, 1}.
type Classifier struct {
	model.BaseEstimator

	// Params are the training hyperparameters. The objective is forced to
	// binary logistic.
	Params Params

	trainer *Trainer
}

// NewClassifier creates a classifier with the given hyperparameters.
func NewClassifier(params Params) *Classifier {
	params.Objective = ObjectiveLogistic
	return &Classifier{Params: params}
}

// Fit trains the ensemble. Labels must be 0 or 1.
func (c *Classifier) Fit(X, y mat.Matrix) error {
	rows, _ := y.Dims()
	for i := 0; i < rows; i++ {
		if v := y.At(i, 0); v != 0 && v != 1 {
			return errors.NewValueError("boost.Classifier.Fit", "labels must be 0 or 1")
		}
	}

	trainer := NewTrainer(c.Params)
	if err := trainer.Fit(X, y); err != nil {
		return errors.Wrap(err, "boost.Classifier.Fit")
	}
	c.trainer = trainer
	c.SetFitted()
	return nil
}

// PredictProba returns the probability of class 1 as an n×1 matrix.
func (c *Classifier) PredictProba(X mat.Matrix) (*mat.Dense, error) {
	if !c.IsFitted() {
		return nil, errors.NewNotFittedError("boost.Classifier", "PredictProba")
	}
	return c.trainer.Predict(X)
}

// Predict returns {0, 1} labels at the 0.5 probability cutoff.
func (c *Classifier) Predict(X mat.Matrix) (*mat.Dense, error) {
	prob, err := c.PredictProba(X)
	if err != nil {
		return nil, err
	}

	rows, _ := prob.Dims()
	out := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		if prob.At(i, 0) > 0.5 {
			out.Set(i, 0, 1)
		}
	}
	return out, nil
}

// Score returns the accuracy of the predictions on X against y.
func (c *Classifier) Score(X, y mat.Matrix) (float64, error) {
	pred, err := c.Predict(X)
	if err != nil {
		return 0, err
	}

	yVec, err := metrics.ColVec(y)
	if err != nil {
		return 0, err
	}
	predVec, err := metrics.ColVec(pred)
	if err != nil {
		return 0, err
	}
	return metrics.Accuracy(yVec, predVec)
}
