// Package recipe implements declarative preprocessing for tabular data.
//
// A Recipe is an ordered list of steps. Prep learns each step's statistics
// from the training data only; Bake applies the learned transformations to
// any split. Baking before prepping is an error, so test data can never
// leak into the learned statistics.
package recipe

import (
	"gonum.org/v1/gonum/mat"

	"github.com/hikaru-sato/gridfit/core/model"
	"github.com/hikaru-sato/gridfit/pkg/errors"
)

// Step is a single preprocessing step. Prep learns statistics from the
// training data; Bake applies them to new data of the same width.
type Step interface {
	// Name identifies the step in errors and logs.
	Name() string

	// Prep learns the step's statistics from training data.
	Prep(X *mat.Dense) error

	// Bake applies the learned transformation and returns a new matrix.
	Bake(X *mat.Dense) (*mat.Dense, error)
}

// Recipe is an ordered preprocessing specification.
type Recipe struct {
	model.BaseEstimator

	steps []Step
}

// New creates a Recipe from the given steps, applied in order.
func New(steps ...Step) *Recipe {
	return &Recipe{steps: steps}
}

// Steps returns the step list in application order.
func (r *Recipe) Steps() []Step {
	return r.steps
}

// Prep learns every step's statistics from the training data. Each step is
// prepped on the output of the steps before it, matching what Bake will do.
func (r *Recipe) Prep(train *mat.Dense) error {
	rows, cols := train.Dims()
	if rows == 0 || cols == 0 {
		return errors.Wrap(errors.ErrEmptyData, "recipe.Prep")
	}

	current := train
	for _, step := range r.steps {
		if err := step.Prep(current); err != nil {
			return errors.Wrapf(err, "recipe step %s", step.Name())
		}
		baked, err := step.Bake(current)
		if err != nil {
			return errors.Wrapf(err, "recipe step %s", step.Name())
		}
		current = baked
	}

	r.SetFitted()
	return nil
}

// Bake pushes data through every prepped step and returns the result.
func (r *Recipe) Bake(X *mat.Dense) (*mat.Dense, error) {
	if !r.IsFitted() {
		return nil, errors.NewNotFittedError("Recipe", "Bake")
	}

	current := X
	for _, step := range r.steps {
		baked, err := step.Bake(current)
		if err != nil {
			return nil, errors.Wrapf(err, "recipe step %s", step.Name())
		}
		current = baked
	}
	return current, nil
}

// PrepBake preps on the training data and returns it baked, in one call.
func (r *Recipe) PrepBake(train *mat.Dense) (*mat.Dense, error) {
	if err := r.Prep(train); err != nil {
		return nil, err
	}
	return r.Bake(train)
}
