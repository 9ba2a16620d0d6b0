package boost

import (
	"gonum.org/v1/gonum/mat"

	"github.com/hikaru-sato/gridfit/core/model"
	"github.com/hikaru-sato/gridfit/metrics"
	"github.com/hikaru-sato/gridfit/pkg/errors"
)

// Regressor is a boosted-tree regression estimator.
type Regressor struct {
	model.BaseEstimator

	// Params are the training hyperparameters. The objective is forced to
	// L2 regression.
	Params Params

	trainer *Trainer
}

// NewRegressor creates a regressor with the given hyperparameters.
func NewRegressor(params Params) *Regressor {
	params.Objective = ObjectiveL2
	return &Regressor{Params: params}
}

// Fit trains the ensemble.
func (r *Regressor) Fit(X, y mat.Matrix) error {
	trainer := NewTrainer(r.Params)
	if err := trainer.Fit(X, y); err != nil {
		return errors.Wrap(err, "boost.Regressor.Fit")
	}
	r.trainer = trainer
	r.SetFitted()
	return nil
}

// Predict returns predicted target values as an n×1 matrix.
func (r *Regressor) Predict(X mat.Matrix) (*mat.Dense, error) {
	if !r.IsFitted() {
		return nil, errors.NewNotFittedError("boost.Regressor", "Predict")
	}
	return r.trainer.Predict(X)
}

// Score returns the R² of the predictions on X against y.
func (r *Regressor) Score(X, y mat.Matrix) (float64, error) {
	pred, err := r.Predict(X)
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
	return metrics.R2(yVec, predVec)
}
