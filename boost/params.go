// Package boost implements gradient-boosted decision trees for regression
// and binary classification. Training is second order: each round fits a
// regression tree to the gradient and hessian of the objective, and leaf
// weights are shrunk by the learning rate.
package boost

// Params holds the tunable training hyperparameters.
type Params struct {
	// NumRounds is the number of boosting rounds (trees).
	NumRounds int

	// LearningRate shrinks each tree's contribution.
	LearningRate float64

	// MaxDepth limits tree depth.
	MaxDepth int

	// MinSamplesLeaf is the minimum number of rows on each side of a split.
	MinSamplesLeaf int

	// Lambda is the L2 regularization applied to leaf weights.
	Lambda float64

	// Subsample is the fraction of rows sampled per round. 1 disables
	// sampling.
	Subsample float64

	// Objective selects the loss: ObjectiveL2 or ObjectiveLogistic.
	Objective string

	// Seed fixes the row sampler.
	Seed int
}

// Objective names.
const (
	ObjectiveL2       = "l2"
	ObjectiveLogistic = "logistic"
)

// withDefaults fills zero values with the defaults.
func (p Params) withDefaults() Params {
	if p.NumRounds == 0 {
		p.NumRounds = 100
	}
	if p.LearningRate == 0 {
		p.LearningRate = 0.1
	}
	if p.MaxDepth == 0 {
		p.MaxDepth = 6
	}
	if p.MinSamplesLeaf == 0 {
		p.MinSamplesLeaf = 5
	}
	if p.Subsample == 0 {
		p.Subsample = 1.0
	}
	if p.Objective == "" {
		p.Objective = ObjectiveL2
	}
	return p
}
