package tune

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// Fold is one train/validation row partition.
type Fold struct {
	TrainIndices []int
	TestIndices  []int
}

// Splitter generates cross-validation folds.
type Splitter interface {
	Split(X, y mat.Matrix) []Fold
	NSplits() int
}

// KFold is a plain k-fold splitter.
type KFold struct {
	Folds   int
	Shuffle bool
	Seed    int
}

// NewKFold creates a k-fold splitter. Fewer than 2 folds falls back to 5.
func NewKFold(folds int, shuffle bool, seed int) *KFold {
	if folds < 2 {
		folds = 5
	}
	return &KFold{Folds: folds, Shuffle: shuffle, Seed: seed}
}

// NSplits returns the number of folds.
func (kf *KFold) NSplits() int { return kf.Folds }

// Split generates train/validation indices for each fold. Remainder rows
// are spread one per fold from the front.
func (kf *KFold) Split(X, _ mat.Matrix) []Fold {
	nSamples, _ := X.Dims()

	indices := make([]int, nSamples)
	for i := range indices {
		indices[i] = i
	}
	if kf.Shuffle {
		r := rand.New(rand.NewPCG(uint64(kf.Seed), uint64(kf.Seed)))
		r.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	folds := make([]Fold, kf.Folds)
	foldSize := nSamples / kf.Folds
	remainder := nSamples % kf.Folds

	current := 0
	for f := 0; f < kf.Folds; f++ {
		testSize := foldSize
		if f < remainder {
			testSize++
		}

		test := make([]int, testSize)
		copy(test, indices[current:current+testSize])

		train := make([]int, 0, nSamples-testSize)
		train = append(train, indices[:current]...)
		train = append(train, indices[current+testSize:]...)

		folds[f] = Fold{TrainIndices: train, TestIndices: test}
		current += testSize
	}

	return folds
}

// StratifiedKFold keeps the class proportions of y in every fold.
type StratifiedKFold struct {
	Folds   int
	Shuffle bool
	Seed    int
}

// NewStratifiedKFold creates a stratified k-fold splitter.
func NewStratifiedKFold(folds int, shuffle bool, seed int) *StratifiedKFold {
	if folds < 2 {
		folds = 5
	}
	return &StratifiedKFold{Folds: folds, Shuffle: shuffle, Seed: seed}
}

// NSplits returns the number of folds.
func (skf *StratifiedKFold) NSplits() int { return skf.Folds }

// Split distributes each class across folds, then builds the train sets as
// the complements.
func (skf *StratifiedKFold) Split(X, y mat.Matrix) []Fold {
	nSamples, _ := X.Dims()

	classIndices := make(map[float64][]int)
	classOrder := []float64{}
	for i := 0; i < nSamples; i++ {
		label := y.At(i, 0)
		if _, seen := classIndices[label]; !seen {
			classOrder = append(classOrder, label)
		}
		classIndices[label] = append(classIndices[label], i)
	}

	if skf.Shuffle {
		r := rand.New(rand.NewPCG(uint64(skf.Seed), uint64(skf.Seed)))
		for _, label := range classOrder {
			indices := classIndices[label]
			r.Shuffle(len(indices), func(i, j int) {
				indices[i], indices[j] = indices[j], indices[i]
			})
		}
	}

	folds := make([]Fold, skf.Folds)

	// Iterate classes in first-seen order so the split is deterministic.
	for _, label := range classOrder {
		indices := classIndices[label]
		nClass := len(indices)
		foldSize := nClass / skf.Folds
		remainder := nClass % skf.Folds

		current := 0
		for f := 0; f < skf.Folds; f++ {
			testSize := foldSize
			if f < remainder {
				testSize++
			}
			for j := 0; j < testSize && current < nClass; j++ {
				folds[f].TestIndices = append(folds[f].TestIndices, indices[current])
				current++
			}
		}
	}

	for f := 0; f < skf.Folds; f++ {
		inTest := make(map[int]bool, len(folds[f].TestIndices))
		for _, idx := range folds[f].TestIndices {
			inTest[idx] = true
		}
		for i := 0; i < nSamples; i++ {
			if !inTest[i] {
				folds[f].TrainIndices = append(folds[f].TrainIndices, i)
			}
		}
	}

	return folds
}

// extractSubset copies the given rows of X and y into new matrices.
func extractSubset(X, y mat.Matrix, indices []int) (*mat.Dense, *mat.Dense) {
	_, xCols := X.Dims()
	_, yCols := y.Dims()

	xSub := mat.NewDense(len(indices), xCols, nil)
	ySub := mat.NewDense(len(indices), yCols, nil)
	for i, idx := range indices {
		for j := 0; j < xCols; j++ {
			xSub.Set(i, j, X.At(idx, j))
		}
		for j := 0; j < yCols; j++ {
			ySub.Set(i, j, y.At(idx, j))
		}
	}
	return xSub, ySub
}
