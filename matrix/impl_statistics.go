// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide the marginal totals and share normalizations used throughout the
//     Input-Output pipeline as deterministic passes over ew* micro-kernels.
//
// Exposed API (via api.go):
//   - RowSums(X)   -> []float64   // Σ_j X[i,j]
//   - ColSums(X)   -> []float64   // Σ_i X[i,j]
//   - Total(X)     -> float64     // Σ_ij X[i,j]
//   - RowShares(X, inv) -> (Y, sums)   // X[i,j]·inv(Σ_j X[i,j])
//
// Determinism & Performance:
//   - Fixed i→j traversal for all explicit loops.
//   - Dense fast-paths avoid At/Set and operate on row-major flat buffers.

package matrix

const (
	opRowSums   = "RowSums"
	opColSums   = "ColSums"
	opTotal     = "Total"
	opRowShares = "RowShares"
)

// rowSums returns r[i] = Σ_j X[i,j]. O(r*c).
func rowSums(X Matrix) ([]float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opRowSums, err)
	}
	r, c := X.Rows(), X.Cols()
	xv, err := valuesOf(X)
	if err != nil {
		return nil, matrixErrorf(opRowSums, err)
	}
	out := make([]float64, r)
	var i, j, base int
	var s float64
	for i = 0; i < r; i++ {
		s = ZeroSum
		base = i * c
		for j = 0; j < c; j++ {
			s += xv[base+j]
		}
		out[i] = s
	}

	return out, nil
}

// colSums returns c[j] = Σ_i X[i,j]. O(r*c).
func colSums(X Matrix) ([]float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opColSums, err)
	}
	r, c := X.Rows(), X.Cols()
	xv, err := valuesOf(X)
	if err != nil {
		return nil, matrixErrorf(opColSums, err)
	}
	out := make([]float64, c)
	var i, j, base int
	for i = 0; i < r; i++ {
		base = i * c
		for j = 0; j < c; j++ {
			out[j] += xv[base+j]
		}
	}

	return out, nil
}

// total returns Σ_ij X[i,j].
func total(X Matrix) (float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return 0, matrixErrorf(opTotal, err)
	}
	xv, err := valuesOf(X)
	if err != nil {
		return 0, matrixErrorf(opTotal, err)
	}
	s := ZeroSum
	for _, v := range xv {
		s += v
	}

	return s, nil
}

// rowShares scales every row by the reciprocal of its sum.
// Implementation:
//   - Stage 1: compute row sums.
//   - Stage 2: build scale factors inv(sum); the default is 1/sum, with 0 for a zero sum.
//   - Stage 3: apply ewScaleRows.
//
// Behavior highlights:
//   - Under the default rule degenerate rows become all-zero, so a product with no
//     uses allocates nothing.
//   - Rows with a non-zero sum always add up to 1 (up to rounding).
//
// Complexity:
//   - Time O(r*c), Space O(r*c) + O(r).
func rowShares(X Matrix, inv func(float64) float64) (*Dense, []float64, error) {
	sums, err := rowSums(X)
	if err != nil {
		return nil, nil, matrixErrorf(opRowShares, err)
	}
	if inv == nil {
		inv = reciprocalOrZero
	}
	scale := make([]float64, len(sums))
	for i, s := range sums {
		scale[i] = inv(s)
	}
	Y, err := ewScaleRows(X, scale)
	if err != nil {
		return nil, nil, matrixErrorf(opRowShares, err)
	}

	return Y, sums, nil
}

func reciprocalOrZero(s float64) float64 {
	if s == 0 {
		return 0
	}
	return 1.0 / s
}
