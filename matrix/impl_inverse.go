// SPDX-License-Identifier: MIT

package matrix

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Inverse returns m⁻¹ for a square, non-singular m.
//
// Implementation:
//   - Stage 1: ValidateSquare (gonum panics on non-square input, so shape is checked first).
//   - Stage 2: copy m into a gonum mat.Dense and invert via LU with partial pivoting.
//   - Stage 3: classify the gonum condition error and copy the inverse back out.
//
// Behavior highlights:
//   - Exactly singular input (condition number +Inf) yields ErrSingular.
//   - Numerically ill-conditioned input (condition > 1e16) yields ErrIllConditioned,
//     carrying the estimated condition number in the message.
//
// Errors:
//   - ErrNilMatrix, ErrInvalidDimensions, ErrNonSquare, ErrSingular, ErrIllConditioned.
//
// Complexity:
//   - Time O(n³), Space O(n²).
//
// AI-Hints:
//   - For Leontief inverses pass I − A; a column of A summing to ≥ 1 is the usual
//     cause of singularity in real tables.
func Inverse(m Matrix) (*Dense, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	n := m.Rows()
	mv, err := valuesOf(m)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	buf := make([]float64, len(mv))
	copy(buf, mv) // gonum takes ownership of the slice

	var inv mat.Dense
	if err = inv.Inverse(mat.NewDense(n, n, buf)); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) {
			if math.IsInf(float64(cond), 1) {
				return nil, matrixErrorf(opInverse, ErrSingular)
			}

			return nil, matrixErrorf(opInverse, fmt.Errorf("condition number %.3g: %w", float64(cond), ErrIllConditioned))
		}

		return nil, matrixErrorf(opInverse, err)
	}

	res, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			res.data[i*n+j] = inv.At(i, j)
		}
	}
	if err = ValidateFinite(res); err != nil {
		return nil, matrixErrorf(opInverse, ErrSingular)
	}

	return res, nil
}

// LeontiefInverse returns (I − a)⁻¹.
func LeontiefInverse(a Matrix) (*Dense, error) {
	if err := ValidateSquare(a); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	id, err := NewIdentity(a.Rows())
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	diff, err := Sub(id, a)
	if err != nil {
		return nil, err
	}

	return Inverse(diff)
}
