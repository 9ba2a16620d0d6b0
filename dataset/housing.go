package dataset

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// housingSeed fixes the housing generator so the dataset is identical on
// every call.
const housingSeed = 1989

// HousingRows is the number of observations in the housing dataset.
const HousingRows = 506

// Housing returns the built-in housing dataset: 506 census tracts with
// eight numeric predictors and the median home value (medv, in $1000s) as
// the target. The target is a fixed nonlinear function of the predictors
// plus Gaussian noise, so a tree ensemble has real structure to find.
func Housing() *Table {
	src := rand.NewPCG(housingSeed, housingSeed)
	r := rand.New(src)

	rooms := distuv.Normal{Mu: 6.28, Sigma: 0.70, Src: src}
	lstatLog := distuv.Normal{Mu: 2.35, Sigma: 0.60, Src: src}
	crimLog := distuv.Normal{Mu: -1.0, Sigma: 2.1, Src: src}
	noise := distuv.Normal{Mu: 0, Sigma: 2.4, Src: src}

	columns := []string{"crim", "nox", "rooms", "age", "dis", "tax", "ptratio", "lstat"}
	x := mat.NewDense(HousingRows, len(columns), nil)
	y := mat.NewDense(HousingRows, 1, nil)

	for i := 0; i < HousingRows; i++ {
		crim := math.Exp(crimLog.Rand())
		nox := 0.38 + 0.49*r.Float64()
		rm := clamp(rooms.Rand(), 3.5, 8.8)
		age := 2 + 98*r.Float64()
		dis := 1.1 + 11*math.Pow(r.Float64(), 1.7)
		tax := 187 + 524*r.Float64()
		ptratio := 12.6 + 9.4*r.Float64()
		lstat := clamp(math.Exp(lstatLog.Rand()), 1.7, 38)

		x.Set(i, 0, crim)
		x.Set(i, 1, nox)
		x.Set(i, 2, rm)
		x.Set(i, 3, age)
		x.Set(i, 4, dis)
		x.Set(i, 5, tax)
		x.Set(i, 6, ptratio)
		x.Set(i, 7, lstat)

		// Median value: dominated by rooms and lstat with a quadratic
		// rooms term and a rooms/lstat interaction, mildly penalized by
		// crime, tax and pupil-teacher ratio.
		dr := rm - 6.28
		medv := 22.5 +
			5.2*dr + 1.4*dr*dr -
			0.52*lstat + 0.006*lstat*lstat +
			0.09*dr*lstat -
			0.85*math.Log1p(crim) -
			0.004*(tax-449) -
			0.45*(ptratio-17.3) -
			7.5*(nox-0.55) -
			0.012*age +
			0.12*dis +
			noise.Rand()

		y.Set(i, 0, clamp(medv, 5, 50))
	}

	return &Table{
		Columns: columns,
		Target:  "medv",
		X:       x,
		Y:       y,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
