// Package dataset provides the built-in tabular datasets used by the
// analysis commands. Datasets are generated in memory from fixed seeds,
// so no file parsing or network access is involved and every run sees the
// same data.
package dataset

import (
	"gonum.org/v1/gonum/mat"

	"github.com/hikaru-sato/gridfit/pkg/errors"
)

// Table is a tabular dataset: named predictor columns plus one target
// column. Rows are observations. Tables are transient in-memory values
// with lifetimes bounded to a single run.
type Table struct {
	// Columns are the predictor names, in X column order.
	Columns []string

	// Target is the name of the target column.
	Target string

	// X is the n×p predictor matrix.
	X *mat.Dense

	// Y is the n×1 target column.
	Y *mat.Dense
}

// Dims returns the number of rows and predictor columns.
func (t *Table) Dims() (rows, cols int) {
	return t.X.Dims()
}

// Subset returns a new Table containing the given rows, in order.
func (t *Table) Subset(indices []int) (*Table, error) {
	rows, cols := t.X.Dims()
	for _, idx := range indices {
		if idx < 0 || idx >= rows {
			return nil, errors.NewValueError("Table.Subset", "row index out of range")
		}
	}

	x := mat.NewDense(len(indices), cols, nil)
	y := mat.NewDense(len(indices), 1, nil)
	for i, idx := range indices {
		for j := 0; j < cols; j++ {
			x.Set(i, j, t.X.At(idx, j))
		}
		y.Set(i, 0, t.Y.At(idx, 0))
	}

	return &Table{
		Columns: t.Columns,
		Target:  t.Target,
		X:       x,
		Y:       y,
	}, nil
}

// TargetVec returns the target column as a vector view.
func (t *Table) TargetVec() *mat.VecDense {
	rows, _ := t.Y.Dims()
	v := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		v.SetVec(i, t.Y.At(i, 0))
	}
	return v
}
