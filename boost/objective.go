package boost

import (
	"math"

	"github.com/hikaru-sato/gridfit/pkg/errors"
)

// Objective defines the loss being optimized. Gradients and hessians are
// taken with respect to the raw (untransformed) score.
type Objective interface {
	// Name returns the objective identifier.
	Name() string

	// Gradient returns the first derivative of the loss at a raw score.
	Gradient(raw, target float64) float64

	// Hessian returns the second derivative of the loss at a raw score.
	Hessian(raw, target float64) float64

	// Loss returns the per-sample loss at a raw score.
	Loss(raw, target float64) float64

	// InitScore returns the constant raw score the ensemble starts from.
	InitScore(targets []float64) float64

	// Transform maps a raw ensemble score onto the prediction scale.
	Transform(raw float64) float64
}

// newObjective resolves an objective name.
func newObjective(name string) (Objective, error) {
	switch name {
	case ObjectiveL2:
		return &l2Objective{}, nil
	case ObjectiveLogistic:
		return &logisticObjective{}, nil
	default:
		return nil, errors.NewValidationError("objective", "unknown objective", name)
	}
}

// l2Objective is squared-error regression.
type l2Objective struct{}

func (o *l2Objective) Name() string { return ObjectiveL2 }

func (o *l2Objective) Gradient(raw, target float64) float64 {
	return raw - target
}

func (o *l2Objective) Hessian(_, _ float64) float64 {
	return 1.0
}

func (o *l2Objective) Loss(raw, target float64) float64 {
	d := raw - target
	return d * d
}

func (o *l2Objective) InitScore(targets []float64) float64 {
	if len(targets) == 0 {
		return 0
	}
	sum := 0.0
	for _, t := range targets {
		sum += t
	}
	return sum / float64(len(targets))
}

func (o *l2Objective) Transform(raw float64) float64 { return raw }

// logisticObjective is binary cross-entropy over labels in {0, 1}. Raw
// scores are log-odds; Transform applies the sigmoid.
type logisticObjective struct{}

func (o *logisticObjective) Name() string { return ObjectiveLogistic }

func (o *logisticObjective) Gradient(raw, target float64) float64 {
	return sigmoid(raw) - target
}

func (o *logisticObjective) Hessian(raw, _ float64) float64 {
	p := sigmoid(raw)
	h := p * (1 - p)
	if h < 1e-16 {
		h = 1e-16
	}
	return h
}

func (o *logisticObjective) Loss(raw, target float64) float64 {
	const eps = 1e-15
	p := math.Min(math.Max(sigmoid(raw), eps), 1-eps)
	if target == 1 {
		return -math.Log(p)
	}
	return -math.Log(1 - p)
}

func (o *logisticObjective) InitScore(targets []float64) float64 {
	if len(targets) == 0 {
		return 0
	}
	pos := 0.0
	for _, t := range targets {
		if t == 1 {
			pos++
		}
	}
	p := pos / float64(len(targets))
	// Clip so a single-class training set still yields a finite score.
	p = math.Min(math.Max(p, 1e-6), 1-1e-6)
	return math.Log(p / (1 - p))
}

func (o *logisticObjective) Transform(raw float64) float64 {
	return sigmoid(raw)
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
