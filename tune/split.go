package tune

import (
	"math/rand/v2"
	"sort"

	"github.com/hikaru-sato/gridfit/dataset"
	"github.com/hikaru-sato/gridfit/pkg/errors"
)

// Stratify selects how TrainTestSplit groups rows before sampling.
type Stratify int

const (
	// StratifyNone samples rows uniformly.
	StratifyNone Stratify = iota
	// StratifyLabels keeps the class balance of a discrete target.
	StratifyLabels
	// StratifyQuartiles bins a continuous target into quartiles and keeps
	// the bin proportions.
	StratifyQuartiles
)

// TrainTestSplit partitions a table into disjoint train and test tables.
// testFrac is the fraction of rows (per stratum) held out for testing.
func TrainTestSplit(tbl *dataset.Table, testFrac float64, strat Stratify, seed int) (train, test *dataset.Table, err error) {
	rows, _ := tbl.Dims()
	if rows < 2 {
		return nil, nil, errors.NewValueError("TrainTestSplit", "need at least 2 rows")
	}
	if testFrac <= 0 || testFrac >= 1 {
		return nil, nil, errors.NewValidationError("testFrac", "must be in (0, 1)", testFrac)
	}

	strata, err := buildStrata(tbl, strat)
	if err != nil {
		return nil, nil, err
	}

	r := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	var trainIdx, testIdx []int

	for _, group := range strata {
		r.Shuffle(len(group), func(i, j int) {
			group[i], group[j] = group[j], group[i]
		})

		k := int(testFrac*float64(len(group)) + 0.5)
		if k == 0 && len(group) > 1 {
			k = 1
		}
		if k >= len(group) {
			k = len(group) - 1
		}

		testIdx = append(testIdx, group[:k]...)
		trainIdx = append(trainIdx, group[k:]...)
	}

	// Restore row order inside each partition.
	sort.Ints(trainIdx)
	sort.Ints(testIdx)

	train, err = tbl.Subset(trainIdx)
	if err != nil {
		return nil, nil, err
	}
	test, err = tbl.Subset(testIdx)
	if err != nil {
		return nil, nil, err
	}
	return train, test, nil
}

// buildStrata groups row indices by stratification mode.
func buildStrata(tbl *dataset.Table, strat Stratify) ([][]int, error) {
	rows, _ := tbl.Dims()

	switch strat {
	case StratifyNone:
		all := make([]int, rows)
		for i := range all {
			all[i] = i
		}
		return [][]int{all}, nil

	case StratifyLabels:
		groups := make(map[float64][]int)
		order := []float64{}
		for i := 0; i < rows; i++ {
			label := tbl.Y.At(i, 0)
			if _, seen := groups[label]; !seen {
				order = append(order, label)
			}
			groups[label] = append(groups[label], i)
		}
		out := make([][]int, 0, len(order))
		for _, label := range order {
			out = append(out, groups[label])
		}
		return out, nil

	case StratifyQuartiles:
		values := make([]float64, rows)
		for i := 0; i < rows; i++ {
			values[i] = tbl.Y.At(i, 0)
		}
		sorted := make([]float64, rows)
		copy(sorted, values)
		sort.Float64s(sorted)

		q1 := sorted[rows/4]
		q2 := sorted[rows/2]
		q3 := sorted[3*rows/4]

		out := make([][]int, 4)
		for i := 0; i < rows; i++ {
			switch v := values[i]; {
			case v < q1:
				out[0] = append(out[0], i)
			case v < q2:
				out[1] = append(out[1], i)
			case v < q3:
				out[2] = append(out[2], i)
			default:
				out[3] = append(out[3], i)
			}
		}

		// Degenerate targets can leave empty bins; drop them.
		filtered := out[:0]
		for _, g := range out {
			if len(g) > 0 {
				filtered = append(filtered, g)
			}
		}
		return filtered, nil

	default:
		return nil, errors.NewValidationError("stratify", "unknown stratification mode", int(strat))
	}
}
