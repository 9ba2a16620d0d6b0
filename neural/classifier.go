package neural

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/hikaru-sato/gridfit/core/model"
	"github.com/hikaru-sato/gridfit/metrics"
	"github.com/hikaru-sato/gridfit/pkg/errors"
	"github.com/hikaru-sato/gridfit/pkg/log"
)

// Params holds the tunable classifier hyperparameters.
type Params struct {
	// HiddenUnits is the width of the single hidden layer.
	HiddenUnits int

	// Activation is the hidden-layer nonlinearity. Default tanh.
	Activation string

	// LearningRate is the gradient descent step size.
	LearningRate float64

	// Momentum is the velocity coefficient. 0 disables momentum.
	Momentum float64

	// WeightDecay is the L2 penalty on the weights.
	WeightDecay float64

	// Epochs is the maximum number of full-batch passes.
	Epochs int

	// Tol stops training early once the loss improvement per epoch falls
	// below it. 0 keeps the default.
	Tol float64

	// Seed fixes the weight initialization.
	Seed int
}

func (p Params) withDefaults() Params {
	if p.HiddenUnits == 0 {
		p.HiddenUnits = 8
	}
	if p.Activation == "" {
		p.Activation = ActivationTanh
	}
	if p.LearningRate == 0 {
		p.LearningRate = 0.5
	}
	if p.Epochs == 0 {
		p.Epochs = 500
	}
	if p.Tol == 0 {
		p.Tol = 1e-6
	}
	return p
}

// Classifier is a feed-forward binary classifier over labels in {0, 1}:
// p input units, one hidden layer, a single sigmoid output unit.
type Classifier struct {
	model.BaseEstimator

	// Params are the training hyperparameters.
	Params Params

	act activation

	// Learned parameters. w1 is p×h, b1 is h, w2 is h, b2 scalar.
	w1 *mat.Dense
	b1 []float64
	w2 []float64
	b2 float64

	nFeatures int
}

// NewClassifier creates a classifier with the given hyperparameters.
func NewClassifier(params Params) *Classifier {
	return &Classifier{Params: params.withDefaults()}
}

// Fit trains the network with full-batch gradient descent. It raises a
// ConvergenceWarning when the epoch budget runs out before the loss
// improvement drops below Tol.
func (c *Classifier) Fit(X, y mat.Matrix) error {
	rows, cols := X.Dims()
	yRows, yCols := y.Dims()
	if rows == 0 || cols == 0 {
		return errors.Wrap(errors.ErrEmptyData, "neural.Classifier.Fit")
	}
	if yCols != 1 {
		return errors.NewValueError("neural.Classifier.Fit", "y must be a column vector (n×1 matrix)")
	}
	if yRows != rows {
		return errors.NewDimensionError("neural.Classifier.Fit", rows, yRows, 0)
	}

	targets := make([]float64, rows)
	for i := 0; i < rows; i++ {
		v := y.At(i, 0)
		if v != 0 && v != 1 {
			return errors.NewValueError("neural.Classifier.Fit", "labels must be 0 or 1")
		}
		targets[i] = v
	}

	act, err := newActivation(c.Params.Activation)
	if err != nil {
		return err
	}
	c.act = act
	c.nFeatures = cols

	h := c.Params.HiddenUnits
	c.initWeights(cols, h)

	// Velocity buffers for momentum.
	vW1 := mat.NewDense(cols, h, nil)
	vB1 := make([]float64, h)
	vW2 := make([]float64, h)
	vB2 := 0.0

	// Work buffers reused across epochs.
	hidden := mat.NewDense(rows, h, nil)
	prob := make([]float64, rows)
	dz2 := make([]float64, rows)
	gW1 := mat.NewDense(cols, h, nil)
	gB1 := make([]float64, h)
	gW2 := make([]float64, h)

	logger := log.GetLoggerWithName("neural.classifier").With(
		log.ModelNameKey, "neural.Classifier",
		log.SamplesKey, rows,
		log.FeaturesKey, cols,
	)

	prevLoss := math.Inf(1)
	converged := false
	epoch := 0

	for ; epoch < c.Params.Epochs; epoch++ {
		// Forward pass.
		for i := 0; i < rows; i++ {
			for u := 0; u < h; u++ {
				z := c.b1[u]
				for j := 0; j < cols; j++ {
					z += X.At(i, j) * c.w1.At(j, u)
				}
				hidden.Set(i, u, c.act.fn(z))
			}
			z2 := c.b2
			for u := 0; u < h; u++ {
				z2 += hidden.At(i, u) * c.w2[u]
			}
			prob[i] = sigmoid(z2)
		}

		loss := c.loss(prob, targets)
		if epoch%50 == 0 {
			logger.Debug("training progress", log.IterationKey, epoch, log.LossKey, loss)
		}
		if math.Abs(prevLoss-loss) < c.Params.Tol {
			converged = true
			break
		}
		prevLoss = loss

		// Backward pass.
		invN := 1 / float64(rows)
		for i := 0; i < rows; i++ {
			dz2[i] = (prob[i] - targets[i]) * invN
		}

		gB2 := 0.0
		for u := 0; u < h; u++ {
			g := c.Params.WeightDecay * c.w2[u]
			for i := 0; i < rows; i++ {
				g += hidden.At(i, u) * dz2[i]
			}
			gW2[u] = g
		}
		for i := 0; i < rows; i++ {
			gB2 += dz2[i]
		}

		gW1.Zero()
		for u := 0; u < h; u++ {
			gB1[u] = 0
		}
		for i := 0; i < rows; i++ {
			for u := 0; u < h; u++ {
				dz1 := dz2[i] * c.w2[u] * c.act.deriv(hidden.At(i, u))
				gB1[u] += dz1
				for j := 0; j < cols; j++ {
					gW1.Set(j, u, gW1.At(j, u)+X.At(i, j)*dz1)
				}
			}
		}
		if c.Params.WeightDecay != 0 {
			for j := 0; j < cols; j++ {
				for u := 0; u < h; u++ {
					gW1.Set(j, u, gW1.At(j, u)+c.Params.WeightDecay*c.w1.At(j, u))
				}
			}
		}

		// Momentum update.
		lr, mom := c.Params.LearningRate, c.Params.Momentum
		for j := 0; j < cols; j++ {
			for u := 0; u < h; u++ {
				v := mom*vW1.At(j, u) - lr*gW1.At(j, u)
				vW1.Set(j, u, v)
				c.w1.Set(j, u, c.w1.At(j, u)+v)
			}
		}
		for u := 0; u < h; u++ {
			vB1[u] = mom*vB1[u] - lr*gB1[u]
			c.b1[u] += vB1[u]
			vW2[u] = mom*vW2[u] - lr*gW2[u]
			c.w2[u] += vW2[u]
		}
		vB2 = mom*vB2 - lr*gB2
		c.b2 += vB2
	}

	if !converged {
		errors.Warn(errors.NewConvergenceWarning("neural.Classifier", c.Params.Epochs, ""))
	}

	c.SetFitted()
	return nil
}

// initWeights seeds Glorot-uniform weights.
func (c *Classifier) initWeights(cols, h int) {
	r := rand.New(rand.NewPCG(uint64(c.Params.Seed), uint64(c.Params.Seed)+1))

	limit1 := math.Sqrt(6 / float64(cols+h))
	c.w1 = mat.NewDense(cols, h, nil)
	for j := 0; j < cols; j++ {
		for u := 0; u < h; u++ {
			c.w1.Set(j, u, (2*r.Float64()-1)*limit1)
		}
	}

	limit2 := math.Sqrt(6 / float64(h+1))
	c.b1 = make([]float64, h)
	c.w2 = make([]float64, h)
	for u := 0; u < h; u++ {
		c.w2[u] = (2*r.Float64() - 1) * limit2
	}
	c.b2 = 0
}

func (c *Classifier) loss(prob, targets []float64) float64 {
	const eps = 1e-15
	var sum float64
	for i, t := range targets {
		p := math.Min(math.Max(prob[i], eps), 1-eps)
		if t == 1 {
			sum -= math.Log(p)
		} else {
			sum -= math.Log(1 - p)
		}
	}
	return sum / float64(len(targets))
}

// PredictProba returns the probability of class 1 as an n×1 matrix.
func (c *Classifier) PredictProba(X mat.Matrix) (*mat.Dense, error) {
	if !c.IsFitted() {
		return nil, errors.NewNotFittedError("neural.Classifier", "PredictProba")
	}

	rows, cols := X.Dims()
	if cols != c.nFeatures {
		return nil, errors.NewDimensionError("neural.Classifier.PredictProba", c.nFeatures, cols, 1)
	}

	h := c.Params.HiddenUnits
	out := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		z2 := c.b2
		for u := 0; u < h; u++ {
			z := c.b1[u]
			for j := 0; j < cols; j++ {
				z += X.At(i, j) * c.w1.At(j, u)
			}
			z2 += c.act.fn(z) * c.w2[u]
		}
		out.Set(i, 0, sigmoid(z2))
	}
	return out, nil
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
