// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide small, private element-wise and broadcast kernels (ew*) shared by the
//     public facades in api.go and by the statistics in impl_statistics.go.
//   - Keep all loops deterministic and cache-friendly with Dense fast-paths.
//
// Determinism & Performance:
//   - Fixed loop orders (i→j or flat 0..n-1).
//   - No hidden allocations beyond the output Dense; O(r*c) time and space.
//
// AI-Hints:
//   - ewScaleRows(X, r) is diag(r)·X and ewScaleCols(X, s) is X·diag(s); the balancer
//     and the sector conversion never materialize the diagonal matrices.

package matrix

import (
	"fmt"
	"math"
)

const (
	opScaleRows  = "ScaleRows"
	opScaleCols  = "ScaleCols"
	opSplitSigns = "SplitSigns"
	opZeroCols   = "ZeroCols"
	opAllClose   = "AllClose"
)

// ewScaleCols computes out[i,j] = X[i,j] * scale[j].
// Time: O(r*c). Space: O(r*c). Deterministic i→j loops.
func ewScaleCols(X Matrix, scale []float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opScaleCols, err)
	}
	r, c := X.Rows(), X.Cols()
	if err := ValidateVecLen(scale, c); err != nil {
		return nil, matrixErrorf(opScaleCols, err)
	}
	xv, err := valuesOf(X)
	if err != nil {
		return nil, matrixErrorf(opScaleCols, err)
	}
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(opScaleCols, err)
	}
	var i, j, base int
	for i = 0; i < r; i++ {
		base = i * c
		for j = 0; j < c; j++ {
			out.data[base+j] = xv[base+j] * scale[j]
		}
	}

	return out, nil
}

// ewScaleRows computes out[i,j] = X[i,j] * scale[i].
// Time: O(r*c). Space: O(r*c). Deterministic i→j loops.
func ewScaleRows(X Matrix, scale []float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opScaleRows, err)
	}
	r, c := X.Rows(), X.Cols()
	if err := ValidateVecLen(scale, r); err != nil {
		return nil, matrixErrorf(opScaleRows, err)
	}
	xv, err := valuesOf(X)
	if err != nil {
		return nil, matrixErrorf(opScaleRows, err)
	}
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(opScaleRows, err)
	}
	var i, j, base int
	var sf float64
	for i = 0; i < r; i++ {
		base = i * c
		sf = scale[i] // row scale once per row
		for j = 0; j < c; j++ {
			out.data[base+j] = xv[base+j] * sf
		}
	}

	return out, nil
}

// ewSplitSigns returns P = max(X, 0) and N = max(−X, 0), so that X = P − N.
// Both outputs are non-negative. Time: O(r*c). Space: O(2*r*c).
func ewSplitSigns(X Matrix) (pos, neg *Dense, err error) {
	if err = ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opSplitSigns, err)
	}
	r, c := X.Rows(), X.Cols()
	xv, err := valuesOf(X)
	if err != nil {
		return nil, nil, matrixErrorf(opSplitSigns, err)
	}
	if pos, err = NewDense(r, c); err != nil {
		return nil, nil, matrixErrorf(opSplitSigns, err)
	}
	if neg, err = NewDense(r, c); err != nil {
		return nil, nil, matrixErrorf(opSplitSigns, err)
	}
	for k, v := range xv {
		if v > 0 {
			pos.data[k] = v
		} else if v < 0 {
			neg.data[k] = -v
		}
	}

	return pos, neg, nil
}

// ewZeroCols copies X with the listed columns set to 0.
func ewZeroCols(X Matrix, cols []int) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opZeroCols, err)
	}
	r, c := X.Rows(), X.Cols()
	xv, err := valuesOf(X)
	if err != nil {
		return nil, matrixErrorf(opZeroCols, err)
	}
	out, err := NewFromData(r, c, xv, WithNoValidateNaNInf())
	if err != nil {
		return nil, matrixErrorf(opZeroCols, err)
	}
	out.validateNaNInf = DefaultValidateNaNInf
	for _, j := range cols {
		if j < 0 || j >= c {
			return nil, matrixErrorf(opZeroCols, fmt.Errorf("column %d: %w", j, ErrOutOfRange))
		}
		for i := 0; i < r; i++ {
			out.data[i*c+j] = 0
		}
	}

	return out, nil
}

// ewAllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// Time: O(r*c). Space: O(1). Deterministic.
//
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol| (negative values are normalized).
func ewAllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	if err := ValidateSameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	av, err := valuesOf(a)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	bv, err := valuesOf(b)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	for idx := range av {
		if math.Abs(av[idx]-bv[idx]) > atol+rtol*math.Abs(bv[idx]) {
			return false, nil // early-exit on first violation
		}
	}

	return true, nil
}
