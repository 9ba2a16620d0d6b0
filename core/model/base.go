// Package model holds the shared estimator plumbing: the fitted-state
// discipline every estimator and recipe step in gridfit follows.
package model

// State is the training state of an estimator.
type State int

const (
	// NotFitted means Fit has not been called yet.
	NotFitted State = iota
	// Fitted means the estimator holds learned parameters.
	Fitted
)

// BaseEstimator is embedded by every estimator and transformer. It tracks
// whether Fit has completed so Predict/Transform can refuse to run early.
type BaseEstimator struct {
	state State
}

// IsFitted reports whether the estimator has been fitted.
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted marks the estimator as fitted.
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset returns the estimator to the unfitted state.
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
}
