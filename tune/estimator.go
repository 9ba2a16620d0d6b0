// Package tune implements resampling and hyperparameter grid search:
// train/test splitting, cross-validation folds, cartesian grid expansion
// and a parallel candidate search.
package tune

import (
	"gonum.org/v1/gonum/mat"

	"github.com/hikaru-sato/gridfit/metrics"
	"github.com/hikaru-sato/gridfit/pkg/errors"
)

// Estimator is the contract the search needs from a model: fit on one
// partition, predict on another.
type Estimator interface {
	Fit(X, y mat.Matrix) error
	Predict(X mat.Matrix) (*mat.Dense, error)
}

// ProbabilityEstimator is an Estimator that can also produce class-1
// probabilities. Probability metrics (log-loss, AUC) require it.
type ProbabilityEstimator interface {
	Estimator
	PredictProba(X mat.Matrix) (*mat.Dense, error)
}

// Metric names accepted by Search.
const (
	MetricRMSE     = "rmse"
	MetricMAE      = "mae"
	MetricR2       = "r2"
	MetricAccuracy = "accuracy"
	MetricLogLoss  = "logloss"
	MetricAUC      = "auc"
)

// IsLossMetric reports whether lower values of the metric are better.
func IsLossMetric(name string) bool {
	switch name {
	case MetricRMSE, MetricMAE, MetricLogLoss:
		return true
	default:
		return false
	}
}

// scoreEstimator evaluates a fitted estimator on held-out data.
func scoreEstimator(est Estimator, metric string, X, y mat.Matrix) (float64, error) {
	yVec, err := metrics.ColVec(y)
	if err != nil {
		return 0, err
	}

	switch metric {
	case MetricRMSE, MetricMAE, MetricR2, MetricAccuracy:
		pred, err := est.Predict(X)
		if err != nil {
			return 0, err
		}
		predVec, err := metrics.ColVec(pred)
		if err != nil {
			return 0, err
		}
		switch metric {
		case MetricRMSE:
			return metrics.RMSE(yVec, predVec)
		case MetricMAE:
			return metrics.MAE(yVec, predVec)
		case MetricR2:
			return metrics.R2(yVec, predVec)
		default:
			return metrics.Accuracy(yVec, predVec)
		}

	case MetricLogLoss, MetricAUC:
		probEst, ok := est.(ProbabilityEstimator)
		if !ok {
			return 0, errors.NewValidationError("metric", "estimator cannot produce probabilities", metric)
		}
		prob, err := probEst.PredictProba(X)
		if err != nil {
			return 0, err
		}
		probVec, err := metrics.ColVec(prob)
		if err != nil {
			return 0, err
		}
		if metric == MetricLogLoss {
			return metrics.LogLoss(yVec, probVec)
		}
		return metrics.AUC(yVec, probVec)

	default:
		return 0, errors.NewValidationError("metric", "unknown metric", metric)
	}
}
