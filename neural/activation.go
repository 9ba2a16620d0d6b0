// Package neural implements a small feed-forward binary classifier: one
// hidden layer trained with full-batch gradient descent, momentum and L2
// weight decay.
package neural

import (
	"math"

	"github.com/hikaru-sato/gridfit/pkg/errors"
)

// Activation names.
const (
	ActivationTanh    = "tanh"
	ActivationSigmoid = "sigmoid"
	ActivationReLU    = "relu"
)

// activation is a hidden-layer nonlinearity with its derivative. The
// derivative is expressed in terms of the activation output where that is
// cheaper.
type activation struct {
	fn    func(x float64) float64
	deriv func(out float64) float64
}

func newActivation(name string) (activation, error) {
	switch name {
	case ActivationTanh, "":
		return activation{
			fn:    math.Tanh,
			deriv: func(out float64) float64 { return 1 - out*out },
		}, nil
	case ActivationSigmoid:
		return activation{
			fn:    sigmoid,
			deriv: func(out float64) float64 { return out * (1 - out) },
		}, nil
	case ActivationReLU:
		return activation{
			fn: func(x float64) float64 { return math.Max(0, x) },
			deriv: func(out float64) float64 {
				if out > 0 {
					return 1
				}
				return 0
			},
		}, nil
	default:
		return activation{}, errors.NewValidationError("activation", "unknown activation", name)
	}
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
