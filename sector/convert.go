// SPDX-License-Identifier: MIT

package sector

import (
	"fmt"

	"github.com/katalvlaran/leontief/matrix"
	"github.com/katalvlaran/leontief/ratio"
)

// Input is one valuation of a year's tables.
type Input struct {
	// Production is the make table, product×sector.
	Production matrix.Matrix
	// Consumption is the use table at basic prices, product×(sector+demand).
	// Its first Production.Cols() columns are intermediate consumption.
	Consumption matrix.Matrix
	// Output holds the sector totals x.
	Output []float64
	// ProductTotals holds q; nil means the row sums of Production.
	ProductTotals []float64
	// Imports is an optional product×(sector+demand) table; when set, Result.Bm is produced.
	Imports matrix.Matrix
}

// Result holds the sector-space system derived from one Input.
type Result struct {
	D, Bn, Bm, A, Y, Z, L *matrix.Dense
	// ProductByProduct is Bn·D.
	ProductByProduct *matrix.Dense
	// Output echoes Input.Output.
	Output []float64
}

// Transactions returns the sector block of the I-O table, Z | Y.
func (r *Result) Transactions() (*matrix.Dense, error) {
	if r.Y == nil {
		return r.Z.Copy(), nil
	}

	return matrix.HConcat(r.Z, r.Y)
}

// Convert builds D, Bn, A, Z, Y and L from in.
//
// Implementation:
//   - Stage 1: shape checks; default the product totals to the make-table row sums.
//   - Stage 2: D from the transposed make table over q, Bn (and Bm) from the
//     intermediate block over x; degenerate coefficients resolve to 0.
//   - Stage 3: A = D·Bn, Y = D·E, Z = A·diag(x), ProductByProduct = Bn·D.
//   - Stage 4: L = (I − A)⁻¹ through matrix.LeontiefInverse.
//
// Errors:
//   - matrix.ErrNilMatrix, ErrShapeMismatch.
//   - ErrSingularLeontief joined with matrix.ErrSingular or matrix.ErrIllConditioned.
//
// Complexity:
//   - Time O(s·p·(s+d) + s³), Space O(s·p + p²).
//
// AI-Hints:
//   - Column sums of Z plus the payment rows reproduce x only when Consumption is at
//     basic prices; feed it purchaser prices and the discrepancy row absorbs margins.
func Convert(in Input) (*Result, error) {
	if err := matrix.ValidateNotNil(in.Production); err != nil {
		return nil, sectorErrorf(fmt.Errorf("production: %w", err))
	}
	if err := matrix.ValidateNotNil(in.Consumption); err != nil {
		return nil, sectorErrorf(fmt.Errorf("consumption: %w", err))
	}
	products, sectors := in.Production.Rows(), in.Production.Cols()
	if in.Consumption.Rows() != products || in.Consumption.Cols() < sectors {
		return nil, sectorErrorf(fmt.Errorf("consumption is %dx%d, want %d rows and at least %d cols: %w",
			in.Consumption.Rows(), in.Consumption.Cols(), products, sectors, ErrShapeMismatch))
	}
	if len(in.Output) != sectors {
		return nil, sectorErrorf(fmt.Errorf("output has %d entries, want %d: %w", len(in.Output), sectors, ErrShapeMismatch))
	}
	if err := matrix.ValidateFiniteVec(in.Output); err != nil {
		return nil, sectorErrorf(fmt.Errorf("output: %w", err))
	}
	q := in.ProductTotals
	if q == nil {
		var err error
		if q, err = matrix.RowSums(in.Production); err != nil {
			return nil, sectorErrorf(err)
		}
	}
	if len(q) != products {
		return nil, sectorErrorf(fmt.Errorf("product totals have %d entries, want %d: %w", len(q), products, ErrShapeMismatch))
	}
	if in.Imports != nil && (in.Imports.Rows() != products || in.Imports.Cols() < sectors) {
		return nil, sectorErrorf(fmt.Errorf("imports are %dx%d: %w", in.Imports.Rows(), in.Imports.Cols(), ErrShapeMismatch))
	}

	prodT, err := matrix.Transpose(in.Production)
	if err != nil {
		return nil, sectorErrorf(err)
	}
	// D[s,p] = make[p,s] / q[p]
	d, err := divideCols(prodT, q)
	if err != nil {
		return nil, sectorErrorf(err)
	}
	cons, err := matrix.ToDense(in.Consumption)
	if err != nil {
		return nil, sectorErrorf(err)
	}
	ic, err := cons.SliceCols(0, sectors)
	if err != nil {
		return nil, sectorErrorf(err)
	}
	bn, err := divideCols(ic, in.Output)
	if err != nil {
		return nil, sectorErrorf(err)
	}

	res := &Result{D: d, Bn: bn, Output: append([]float64(nil), in.Output...)}
	if in.Imports != nil {
		imp, err := matrix.ToDense(in.Imports)
		if err != nil {
			return nil, sectorErrorf(err)
		}
		icm, err := imp.SliceCols(0, sectors)
		if err != nil {
			return nil, sectorErrorf(err)
		}
		if res.Bm, err = divideCols(icm, in.Output); err != nil {
			return nil, sectorErrorf(err)
		}
	}

	if res.A, err = matrix.Mul(d, bn); err != nil {
		return nil, sectorErrorf(err)
	}
	if cons.Cols() > sectors {
		e, err := cons.SliceCols(sectors, cons.Cols())
		if err != nil {
			return nil, sectorErrorf(err)
		}
		if res.Y, err = matrix.Mul(d, e); err != nil {
			return nil, sectorErrorf(err)
		}
	}
	if res.Z, err = matrix.ScaleCols(res.A, in.Output); err != nil {
		return nil, sectorErrorf(err)
	}
	if res.ProductByProduct, err = matrix.Mul(bn, d); err != nil {
		return nil, sectorErrorf(err)
	}
	if res.L, err = matrix.LeontiefInverse(res.A); err != nil {
		return nil, sectorErrorf(fmt.Errorf("%w: %w", ErrSingularLeontief, err))
	}

	return res, nil
}

// divideCols returns m[i,j] / den[j], with degenerate quotients resolved to 0.
func divideCols(m *matrix.Dense, den []float64) (*matrix.Dense, error) {
	if len(den) != m.Cols() {
		return nil, fmt.Errorf("divisor has %d entries, want %d: %w", len(den), m.Cols(), ErrShapeMismatch)
	}
	out := m.Copy()
	if err := out.Apply(func(_, j int, v float64) float64 { return ratio.Of(v, den[j]).Or(0) }); err != nil {
		return nil, err
	}

	return out, nil
}
