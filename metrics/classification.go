package metrics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/hikaru-sato/gridfit/pkg/errors"
)

// Accuracy computes the fraction of correct label predictions. Labels are
// compared exactly; callers threshold probabilities first.
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("Accuracy", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("Accuracy", n, yPred.Len(), 0)
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// LogLoss computes the binary cross-entropy between labels in {0, 1} and
// predicted probabilities. Probabilities are clipped away from 0 and 1.
func LogLoss(yTrue, prob *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("LogLoss", "empty vector")
	}
	if prob.Len() != n {
		return 0, errors.NewDimensionError("LogLoss", n, prob.Len(), 0)
	}

	const eps = 1e-15
	var loss float64
	for i := 0; i < n; i++ {
		p := math.Min(math.Max(prob.AtVec(i), eps), 1-eps)
		if yTrue.AtVec(i) == 1 {
			loss -= math.Log(p)
		} else {
			loss -= math.Log(1 - p)
		}
	}
	return loss / float64(n), nil
}

// AUC computes the area under the ROC curve by the rank statistic. Tied
// scores contribute half. Degenerate inputs with a single class return 0.5,
// the undefined-metric convention.
func AUC(yTrue, score *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("AUC", "empty vector")
	}
	if score.Len() != n {
		return 0, errors.NewDimensionError("AUC", n, score.Len(), 0)
	}

	var nPos, nNeg float64
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == 1 {
			nPos++
		} else {
			nNeg++
		}
	}
	if nPos == 0 || nNeg == 0 {
		return 0.5, nil
	}

	type scored struct {
		score float64
		pos   bool
	}
	items := make([]scored, n)
	for i := 0; i < n; i++ {
		items[i] = scored{score: score.AtVec(i), pos: yTrue.AtVec(i) == 1}
	}
	sort.Slice(items, func(a, b int) bool { return items[a].score < items[b].score })

	// Sum positive-class ranks with midranks for ties.
	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j < n && items[j].score == items[i].score {
			j++
		}
		mid := float64(i+j-1)/2 + 1
		for k := i; k < j; k++ {
			ranks[k] = mid
		}
		i = j
	}

	var rankSum float64
	for i, it := range items {
		if it.pos {
			rankSum += ranks[i]
		}
	}
	return (rankSum - nPos*(nPos+1)/2) / (nPos * nNeg), nil
}

// ConfusionMatrix holds binary classification counts with class 1 as the
// positive class.
type ConfusionMatrix struct {
	TruePositive  int
	TrueNegative  int
	FalsePositive int
	FalseNegative int
}

// NewConfusionMatrix tallies predictions against labels in {0, 1}.
func NewConfusionMatrix(yTrue, yPred *mat.VecDense) (*ConfusionMatrix, error) {
	n := yTrue.Len()
	if n == 0 {
		return nil, errors.NewValueError("NewConfusionMatrix", "empty vector")
	}
	if yPred.Len() != n {
		return nil, errors.NewDimensionError("NewConfusionMatrix", n, yPred.Len(), 0)
	}

	cm := &ConfusionMatrix{}
	for i := 0; i < n; i++ {
		actual := yTrue.AtVec(i) == 1
		predicted := yPred.AtVec(i) == 1
		switch {
		case actual && predicted:
			cm.TruePositive++
		case !actual && !predicted:
			cm.TrueNegative++
		case !actual && predicted:
			cm.FalsePositive++
		default:
			cm.FalseNegative++
		}
	}
	return cm, nil
}

// Precision returns TP / (TP + FP), or 0 when nothing was predicted
// positive.
func (cm *ConfusionMatrix) Precision() float64 {
	denom := cm.TruePositive + cm.FalsePositive
	if denom == 0 {
		return 0
	}
	return float64(cm.TruePositive) / float64(denom)
}

// Recall returns TP / (TP + FN), or 0 when there are no positive labels.
func (cm *ConfusionMatrix) Recall() float64 {
	denom := cm.TruePositive + cm.FalseNegative
	if denom == 0 {
		return 0
	}
	return float64(cm.TruePositive) / float64(denom)
}

// F1 returns the harmonic mean of precision and recall.
func (cm *ConfusionMatrix) F1() float64 {
	p, r := cm.Precision(), cm.Recall()
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

// Accuracy returns the overall fraction of correct predictions.
func (cm *ConfusionMatrix) Accuracy() float64 {
	total := cm.TruePositive + cm.TrueNegative + cm.FalsePositive + cm.FalseNegative
	if total == 0 {
		return 0
	}
	return float64(cm.TruePositive+cm.TrueNegative) / float64(total)
}

// Threshold converts probabilities into {0, 1} labels at the given cutoff.
func Threshold(prob *mat.VecDense, cutoff float64) *mat.VecDense {
	n := prob.Len()
	labels := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		if prob.AtVec(i) > cutoff {
			labels.SetVec(i, 1)
		}
	}
	return labels
}
