// SPDX-License-Identifier: MIT

package ratio

import (
	"fmt"

	"github.com/katalvlaran/leontief/matrix"
)

const (
	opDivide    = "ratio.Divide"
	opDivideVec = "ratio.DivideVec"
	opResolve   = "ratio.Resolve"
)

// Grid is the cell-wise quotient of two equally shaped matrices.
// Cells are stored row-major; a Grid is immutable after Divide returns it.
type Grid struct {
	rows, cols int
	cells      []Ratio
}

// Divide returns the cell-wise ratios num[i,j] / den[i,j].
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch (shapes differ).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Divide(num, den matrix.Matrix) (*Grid, error) {
	if err := matrix.ValidateSameShape(num, den); err != nil {
		return nil, fmt.Errorf("%s: %w", opDivide, err)
	}
	r, c := num.Rows(), num.Cols()
	g := &Grid{rows: r, cols: c, cells: make([]Ratio, r*c)}
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			a, err := num.At(i, j)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", opDivide, err)
			}
			b, err := den.At(i, j)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", opDivide, err)
			}
			g.cells[i*c+j] = Of(a, b)
		}
	}

	return g, nil
}

// Rows returns the row count.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the column count.
func (g *Grid) Cols() int { return g.cols }

// At returns the ratio at (i, j) or matrix.ErrOutOfRange.
func (g *Grid) At(i, j int) (Ratio, error) {
	if i < 0 || i >= g.rows || j < 0 || j >= g.cols {
		return Ratio{}, fmt.Errorf("Grid.At(%d,%d): %w", i, j, matrix.ErrOutOfRange)
	}

	return g.cells[i*g.cols+j], nil
}

// Count returns the number of cells of the given kind.
func (g *Grid) Count(kind Kind) int {
	n := 0
	for _, r := range g.cells {
		if r.Kind == kind {
			n++
		}
	}

	return n
}

// Resolve materializes the grid, mapping ZeroOverZero to zz and DivByZero to dz.
func (g *Grid) Resolve(zz, dz float64) (*matrix.Dense, error) {
	return g.Map(func(_, _ int, r Ratio) float64 { return r.Resolve(zz, dz) })
}

// Map materializes the grid through f, called once per cell in row-major order.
// The resulting matrix obeys the finite-only policy: f must not return NaN or ±Inf.
func (g *Grid) Map(f func(i, j int, r Ratio) float64) (*matrix.Dense, error) {
	out := make([]float64, len(g.cells))
	for k, r := range g.cells {
		out[k] = f(k/g.cols, k%g.cols, r)
	}
	m, err := matrix.NewFromData(g.rows, g.cols, out)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opResolve, err)
	}

	return m, nil
}

// DivideVec returns the element-wise ratios num[i] / den[i].
//
// Errors:
//   - matrix.ErrDimensionMismatch when the lengths differ.
func DivideVec(num, den []float64) ([]Ratio, error) {
	if len(num) != len(den) {
		return nil, fmt.Errorf("%s: len %d != %d: %w", opDivideVec, len(num), len(den), matrix.ErrDimensionMismatch)
	}
	out := make([]Ratio, len(num))
	for i := range num {
		out[i] = Of(num[i], den[i])
	}

	return out, nil
}

// CountVec returns the number of ratios of the given kind.
func CountVec(rs []Ratio, kind Kind) int {
	n := 0
	for _, r := range rs {
		if r.Kind == kind {
			n++
		}
	}

	return n
}

// ResolveVec maps ZeroOverZero to zz and DivByZero to dz.
func ResolveVec(rs []Ratio, zz, dz float64) []float64 {
	out := make([]float64, len(rs))
	for i, r := range rs {
		out[i] = r.Resolve(zz, dz)
	}

	return out
}
