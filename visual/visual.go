// Package visual writes the plots the analysis commands produce. Plots are
// rendered headless and saved as PNG files in the run's output directory.
package visual

import (
	"image/color"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/hikaru-sato/gridfit/pkg/errors"
)

var (
	class0Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	class1Color = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

// ObservedVsPredicted writes a scatter of predictions against observed
// values with the identity line.
func ObservedVsPredicted(observed, predicted []float64, path string) error {
	if len(observed) == 0 || len(observed) != len(predicted) {
		return errors.NewValueError("visual.ObservedVsPredicted", "input lengths differ or are zero")
	}

	p := plot.New()
	p.Title.Text = "Observed vs. predicted"
	p.X.Label.Text = "observed"
	p.Y.Label.Text = "predicted"

	pts := make(plotter.XYs, len(observed))
	lo, hi := observed[0], observed[0]
	for i := range observed {
		pts[i].X = observed[i]
		pts[i].Y = predicted[i]
		if observed[i] < lo {
			lo = observed[i]
		}
		if observed[i] > hi {
			hi = observed[i]
		}
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return errors.Wrap(err, "visual.ObservedVsPredicted")
	}
	scatter.GlyphStyle.Radius = vg.Points(2)
	scatter.GlyphStyle.Color = class0Color
	p.Add(scatter)

	identity, err := plotter.NewLine(plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}})
	if err != nil {
		return errors.Wrap(err, "visual.ObservedVsPredicted")
	}
	identity.LineStyle.Color = color.Gray{Y: 128}
	identity.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(identity)

	return save(p, path)
}

// ResidualHistogram writes a histogram of observed minus predicted.
func ResidualHistogram(observed, predicted []float64, path string) error {
	if len(observed) == 0 || len(observed) != len(predicted) {
		return errors.NewValueError("visual.ResidualHistogram", "input lengths differ or are zero")
	}

	residuals := make(plotter.Values, len(observed))
	for i := range observed {
		residuals[i] = observed[i] - predicted[i]
	}

	p := plot.New()
	p.Title.Text = "Residuals"
	p.X.Label.Text = "observed - predicted"
	p.Y.Label.Text = "count"

	hist, err := plotter.NewHist(residuals, 20)
	if err != nil {
		return errors.Wrap(err, "visual.ResidualHistogram")
	}
	hist.FillColor = class0Color
	p.Add(hist)

	return save(p, path)
}

// DecisionBoundary evaluates prob over a grid spanning the data and writes
// the probability surface as a heat map with the labeled points overlaid.
func DecisionBoundary(prob func(x1, x2 float64) float64, X, y *mat.Dense, path string) error {
	rows, cols := X.Dims()
	if rows == 0 || cols != 2 {
		return errors.NewValueError("visual.DecisionBoundary", "X must be an n×2 matrix")
	}

	xMin, xMax := X.At(0, 0), X.At(0, 0)
	yMin, yMax := X.At(0, 1), X.At(0, 1)
	for i := 0; i < rows; i++ {
		xMin = minf(xMin, X.At(i, 0))
		xMax = maxf(xMax, X.At(i, 0))
		yMin = minf(yMin, X.At(i, 1))
		yMax = maxf(yMax, X.At(i, 1))
	}
	// Pad so boundary regions near the extremes stay visible.
	xPad := 0.1 * (xMax - xMin)
	yPad := 0.1 * (yMax - yMin)
	xMin, xMax = xMin-xPad, xMax+xPad
	yMin, yMax = yMin-yPad, yMax+yPad

	const resolution = 120
	grid := &probGrid{
		xMin: xMin, xMax: xMax,
		yMin: yMin, yMax: yMax,
		n: resolution,
		z: make([]float64, resolution*resolution),
	}
	for r := 0; r < resolution; r++ {
		for c := 0; c < resolution; c++ {
			grid.z[r*resolution+c] = prob(grid.X(c), grid.Y(r))
		}
	}

	p := plot.New()
	p.Title.Text = "Decision boundary"
	p.X.Label.Text = "x1"
	p.Y.Label.Text = "x2"

	heat := plotter.NewHeatMap(grid, moreland.SmoothBlueRed().Palette(64))
	p.Add(heat)

	var class0, class1 plotter.XYs
	for i := 0; i < rows; i++ {
		pt := plotter.XY{X: X.At(i, 0), Y: X.At(i, 1)}
		if y.At(i, 0) == 1 {
			class1 = append(class1, pt)
		} else {
			class0 = append(class0, pt)
		}
	}
	for _, group := range []struct {
		pts plotter.XYs
		col color.Color
	}{
		{class0, color.White},
		{class1, color.Black},
	} {
		if len(group.pts) == 0 {
			continue
		}
		scatter, err := plotter.NewScatter(group.pts)
		if err != nil {
			return errors.Wrap(err, "visual.DecisionBoundary")
		}
		scatter.GlyphStyle.Radius = vg.Points(2)
		scatter.GlyphStyle.Color = group.col
		p.Add(scatter)
	}

	return save(p, path)
}

// ROCCurve writes the ROC curve for binary labels and scores, with the
// chance diagonal.
func ROCCurve(yTrue, score []float64, path string) error {
	if len(yTrue) == 0 || len(yTrue) != len(score) {
		return errors.NewValueError("visual.ROCCurve", "input lengths differ or are zero")
	}

	type pair struct {
		score float64
		pos   bool
	}
	pairs := make([]pair, len(yTrue))
	var nPos, nNeg float64
	for i := range yTrue {
		pairs[i] = pair{score: score[i], pos: yTrue[i] == 1}
		if pairs[i].pos {
			nPos++
		} else {
			nNeg++
		}
	}
	if nPos == 0 || nNeg == 0 {
		return errors.NewValueError("visual.ROCCurve", "need both classes present")
	}
	sort.Slice(pairs, func(a, b int) bool { return pairs[a].score > pairs[b].score })

	curve := plotter.XYs{{X: 0, Y: 0}}
	var tp, fp float64
	for _, pr := range pairs {
		if pr.pos {
			tp++
		} else {
			fp++
		}
		curve = append(curve, plotter.XY{X: fp / nNeg, Y: tp / nPos})
	}

	p := plot.New()
	p.Title.Text = "ROC curve"
	p.X.Label.Text = "false positive rate"
	p.Y.Label.Text = "true positive rate"

	line, err := plotter.NewLine(curve)
	if err != nil {
		return errors.Wrap(err, "visual.ROCCurve")
	}
	line.LineStyle.Color = class1Color
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)

	chance, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}})
	if err != nil {
		return errors.Wrap(err, "visual.ROCCurve")
	}
	chance.LineStyle.Color = color.Gray{Y: 128}
	chance.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(chance)

	return save(p, path)
}

func save(p *plot.Plot, path string) error {
	if err := p.Save(6*vg.Inch, 4.5*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "saving plot to %s", path)
	}
	return nil
}

// probGrid adapts an evaluated probability surface to the heat map's grid
// interface.
type probGrid struct {
	xMin, xMax float64
	yMin, yMax float64
	n          int
	z          []float64
}

func (g *probGrid) Dims() (c, r int) { return g.n, g.n }

func (g *probGrid) Z(c, r int) float64 { return g.z[r*g.n+c] }

func (g *probGrid) X(c int) float64 {
	return g.xMin + (g.xMax-g.xMin)*float64(c)/float64(g.n-1)
}

func (g *probGrid) Y(r int) float64 {
	return g.yMin + (g.yMax-g.yMin)*float64(r)/float64(g.n-1)
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
