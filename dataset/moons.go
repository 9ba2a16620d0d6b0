package dataset

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// TwoMoons returns the built-in bivariate classification dataset: two
// interleaved half circles with Gaussian noise. Classes are balanced
// (n/2 each, n rounded up to even) and labeled 0 and 1. Rows are shuffled
// so contiguous splits do not separate the classes.
func TwoMoons(n int, noise float64, seed uint64) *Table {
	if n < 2 {
		n = 2
	}
	if n%2 != 0 {
		n++
	}

	src := rand.NewPCG(seed, seed)
	r := rand.New(src)
	jitter := distuv.Normal{Mu: 0, Sigma: noise, Src: src}

	half := n / 2
	x := mat.NewDense(n, 2, nil)
	y := mat.NewDense(n, 1, nil)

	// Angles span [0, π] inclusive. With one point per moon the span
	// collapses to t = 0.
	step := 0.0
	if half > 1 {
		step = math.Pi / float64(half-1)
	}

	for i := 0; i < half; i++ {
		t := step * float64(i)

		// Outer moon, class 0.
		x.Set(i, 0, math.Cos(t)+jitter.Rand())
		x.Set(i, 1, math.Sin(t)+jitter.Rand())
		y.Set(i, 0, 0)

		// Inner moon, class 1, shifted to interleave with the outer one.
		x.Set(half+i, 0, 1-math.Cos(t)+jitter.Rand())
		x.Set(half+i, 1, 0.5-math.Sin(t)+jitter.Rand())
		y.Set(half+i, 0, 1)
	}

	// Shuffle rows.
	perm := r.Perm(n)
	xs := mat.NewDense(n, 2, nil)
	ys := mat.NewDense(n, 1, nil)
	for i, p := range perm {
		xs.Set(i, 0, x.At(p, 0))
		xs.Set(i, 1, x.At(p, 1))
		ys.Set(i, 0, y.At(p, 0))
	}

	return &Table{
		Columns: []string{"x1", "x2"},
		Target:  "class",
		X:       xs,
		Y:       ys,
	}
}
