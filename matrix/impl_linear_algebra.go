// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation:
// element-wise addition and subtraction, matrix multiplication, transpose,
// scalar scaling, the Hadamard product and matrix-vector products. All
// functions perform strict fail-fast validation and return clear errors on
// dimension mismatches.
//
// Notes:
//   - Every kernel allocates exactly one result Dense; operands are never mutated.
//   - *Dense operands are read through their flat buffer (fast path); any other
//     Matrix is materialized once through At (fallback), so both paths share the
//     same inner loops and produce bitwise-identical results.

package matrix

import (
	"fmt"
)

// ZeroSum is the initial value of every accumulation.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd       = "Add"
	opSub       = "Sub"
	opMul       = "Mul"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opHadamard  = "Hadamard"
	opMatVec    = "MatVec"
	opVecMat    = "VecMat"
	opInverse   = "Inverse"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// The wrapper keeps a stable "Op: underlying" shape for uniform reporting across facades.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// Implementation:
//   - Stage 1: Wrap using fmt.Errorf("%s: %w", tag, err) to enable errors.Is/As.
//
// Complexity:
//   - Time O(1), Space O(1).
//
// AI-Hints:
//   - Always gate calls with `if err != nil { return nil, matrixErrorf(tag, err) }`.
//   - Keep `tag` to the canonical constants to simplify log/search pipelines.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// valuesOf returns the row-major cells of m.
// For *Dense the backing slice itself is returned: callers MUST treat it as read-only.
// Any other implementation is materialized through At.
func valuesOf(m Matrix) ([]float64, error) {
	if d, ok := m.(*Dense); ok {
		return d.data, nil
	}
	r, c := m.Rows(), m.Cols()
	out := make([]float64, r*c)
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, err
			}
			out[i*c+j] = v
		}
	}

	return out, nil
}

// addSub computes elementwise out = a + sign*b for sign ∈ {+1, -1}.
// Internal helper for Add/Sub to share validation, allocation, and the flat loop.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (wrapped with opTag).
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the new result.
func addSub(a, b Matrix, sign float64, opTag string) (*Dense, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	av, err := valuesOf(a)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	bv, err := valuesOf(b)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	res, err := NewDense(a.Rows(), a.Cols())
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	for k := range res.data {
		res.data[k] = av[k] + sign*bv[k]
	}

	return res, nil
}

// Add returns a + b (same shapes). Complexity: O(r*c).
func Add(a, b Matrix) (*Dense, error) { return addSub(a, b, +1, opAdd) }

// Sub returns a − b (same shapes). Complexity: O(r*c).
func Sub(a, b Matrix) (*Dense, error) { return addSub(a, b, -1, opSub) }

// SubAll returns base − Σ terms, all operands of the same shape.
// Used to strip margins, taxes and imports off a purchaser-price table in one pass.
func SubAll(base Matrix, terms ...Matrix) (*Dense, error) {
	if err := ValidateNotNil(base); err != nil {
		return nil, matrixErrorf(opSub, err)
	}
	bv, err := valuesOf(base)
	if err != nil {
		return nil, matrixErrorf(opSub, err)
	}
	res, err := NewFromData(base.Rows(), base.Cols(), bv)
	if err != nil {
		return nil, matrixErrorf(opSub, err)
	}
	for t, term := range terms {
		if err = ValidateSameShape(base, term); err != nil {
			return nil, matrixErrorf(opSub, fmt.Errorf("term %d: %w", t, err))
		}
		tv, err := valuesOf(term)
		if err != nil {
			return nil, matrixErrorf(opSub, err)
		}
		for k := range res.data {
			res.data[k] -= tv[k]
		}
	}

	return res, nil
}

// Mul performs standard matrix multiplication C = A × B (no aliasing).
// Implementation:
//   - Stage 1: Validate A,B (not nil) and inner dimensions (A.Cols == B.Rows).
//   - Stage 2: i→k→j loop over row-major strides, skipping zero A[i,k].
//
// Behavior highlights:
//   - Deterministic triple loop; no temporary tiles; one allocation for C.
//
// Inputs:
//   - A: left matrix with shape (r × n).
//   - B: right matrix with shape (n × c).
//
// Returns:
//   - *Dense C with shape (r × c).
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Determinism:
//   - Fixed loop order i→k→j independent of data values.
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c). Skipping zero A[i,k] pays off on the sparse
//     production-share matrix D, where most sectors make few products.
//
// AI-Hints:
//   - Keep A as *Dense to avoid the one-off materialization of the fallback.
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	aRows, aCols, bCols := a.Rows(), a.Cols(), b.Cols()
	av, err := valuesOf(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	bv, err := valuesOf(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	res, err := NewDense(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var (
		i, j, k                            int
		aik                                float64
		rowOffsetA, rowOffsetB, rowOffsetR int
	)
	for i = 0; i < aRows; i++ {
		rowOffsetA = i * aCols
		rowOffsetR = i * bCols
		for k = 0; k < aCols; k++ {
			aik = av[rowOffsetA+k]
			if aik == 0 {
				continue
			}
			rowOffsetB = k * bCols
			for j = 0; j < bCols; j++ {
				res.data[rowOffsetR+j] += aik * bv[rowOffsetB+j]
			}
		}
	}

	return res, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
//
// Errors:
//   - ErrNilMatrix.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	r, c := m.Rows(), m.Cols()
	mv, err := valuesOf(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	res, err := NewDense(c, r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			res.data[j*r+i] = mv[i*c+j]
		}
	}

	return res, nil
}

// Scale returns alpha·m.
// Complexity: O(r*c).
func Scale(m Matrix, alpha float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	mv, err := valuesOf(m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	res, err := NewDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	for k := range res.data {
		res.data[k] = alpha * mv[k]
	}

	return res, nil
}

// Hadamard returns the element-wise product a ⊙ b.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Hadamard(a, b Matrix) (*Dense, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}
	av, err := valuesOf(a)
	if err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}
	bv, err := valuesOf(b)
	if err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}
	res, err := NewDense(a.Rows(), a.Cols())
	if err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}
	for k := range res.data {
		res.data[k] = av[k] * bv[k]
	}

	return res, nil
}

// MatVec computes y = m·x.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (len(x) != Cols()).
//
// Complexity:
//   - Time O(r*c), Space O(r).
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	r, c := m.Rows(), m.Cols()
	if err := ValidateVecLen(x, c); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	mv, err := valuesOf(m)
	if err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	y := make([]float64, r)
	var i, j int
	var acc float64
	for i = 0; i < r; i++ {
		acc = ZeroSum
		for j = 0; j < c; j++ {
			acc += mv[i*c+j] * x[j]
		}
		y[i] = acc
	}

	return y, nil
}

// VecMat computes y = xᵀ·m, i.e. y[j] = Σ_i x[i]·m[i,j].
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (len(x) != Rows()).
//
// Complexity:
//   - Time O(r*c), Space O(c).
func VecMat(x []float64, m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opVecMat, err)
	}
	r, c := m.Rows(), m.Cols()
	if err := ValidateVecLen(x, r); err != nil {
		return nil, matrixErrorf(opVecMat, err)
	}
	mv, err := valuesOf(m)
	if err != nil {
		return nil, matrixErrorf(opVecMat, err)
	}
	y := make([]float64, c)
	var i, j int
	for i = 0; i < r; i++ {
		if x[i] == 0 {
			continue
		}
		for j = 0; j < c; j++ {
			y[j] += x[i] * mv[i*c+j]
		}
	}

	return y, nil
}
