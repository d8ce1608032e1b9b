// SPDX-License-Identifier: MIT

package alloc

import (
	"fmt"

	"github.com/katalvlaran/leontief/matrix"
	"github.com/katalvlaran/leontief/ratio"
)

// MarginAllocation is the outcome of AllocateMargin.
type MarginAllocation struct {
	// Matrix is the allocated margin table (same shape as alpha).
	Matrix *matrix.Dense
	// Partition is the name of the margin-bearing partition used.
	Partition string
	// Column is the supply column that was allocated.
	Column int
	// Pool is Σ supply[k, Column] over the margin-bearing rows k.
	Pool float64
	// Charged is the margin charged on ordinary rows, Σ_j Σ_{i ordinary} Matrix[i,j]
	// before netting.
	Charged float64
	// ZeroPool is true when Pool == 0: every bearing row then received a zero share.
	ZeroPool bool
}

// Unbalanced reports the zero-pool case where ordinary rows still carry margins that no
// bearing row absorbs. Callers should surface it; the allocation itself stays valid.
func (m *MarginAllocation) Unbalanced() bool { return m.ZeroPool && m.Charged != 0 }

// Shares concatenates ic | fd and divides every row by its total.
//
// Implementation:
//   - Stage 1: check ic and fd share the row count; HConcat.
//   - Stage 2: matrix.RowShares scales each row by ratio.Inv(total).Or(0).
//
// Behavior highlights:
//   - A zero-total row (0/0) becomes all zeros; so does a row whose entries cancel out (x/0).
//   - Every other row sums to 1.
//
// Returns:
//   - alpha: the share matrix.  combined: ic | fd.
//
// Errors:
//   - matrix.ErrNilMatrix, ErrShapeMismatch.
//
// Complexity:
//   - Time O(p·(s+d)), Space O(p·(s+d)).
func Shares(ic, fd matrix.Matrix) (alpha, combined *matrix.Dense, err error) {
	if err = matrix.ValidateNotNil(ic); err != nil {
		return nil, nil, allocErrorf(opShares, err)
	}
	if err = matrix.ValidateNotNil(fd); err != nil {
		return nil, nil, allocErrorf(opShares, err)
	}
	if ic.Rows() != fd.Rows() {
		return nil, nil, allocErrorf(opShares, fmt.Errorf("intermediate has %d rows, final demand %d: %w", ic.Rows(), fd.Rows(), ErrShapeMismatch))
	}
	if combined, err = matrix.HConcat(ic, fd); err != nil {
		return nil, nil, allocErrorf(opShares, err)
	}
	if alpha, _, err = matrix.RowShares(combined, shareScale); err != nil {
		return nil, nil, allocErrorf(opShares, err)
	}

	return alpha, combined, nil
}

// shareScale is the row scale of Shares: 1/total, and 0 for a degenerate total.
func shareScale(total float64) float64 { return ratio.Inv(total).Or(0) }

// AllocateInternal distributes input[:, col] over each product's uses: out[p,c] = input[p,col]·alpha[p,c].
//
// Errors:
//   - matrix.ErrNilMatrix, ErrShapeMismatch (row counts), ErrColumnRange.
func AllocateInternal(alpha, input matrix.Matrix, col int) (*matrix.Dense, error) {
	v, err := column(alpha, input, col)
	if err != nil {
		return nil, allocErrorf(opAllocateInternal, err)
	}
	out, err := matrix.ScaleRows(alpha, v)
	if err != nil {
		return nil, allocErrorf(opAllocateInternal, err)
	}

	return out, nil
}

// AllocateMargin distributes a margin column and nets it out of the margin-bearing rows.
//
// Implementation:
//   - Stage 1: out = supply[:, col] ⊗ alpha (as AllocateInternal).
//   - Stage 2: pool = Σ supply[k, col] over bearing rows k; charged[j] = Σ out[i, j]
//     over ordinary rows i.
//   - Stage 3: each bearing row k is overwritten with −share_k·charged[j], where
//     share_k = supply[k, col] / pool, resolved to 0 when the pool is 0.
//
// Behavior highlights:
//   - When the pool is non-zero every column of the result sums to 0: the margin paid
//     on goods is exactly the margin service supplied by the bearing rows.
//   - When the pool is 0, ZeroPool is set and bearing rows are zeroed; Unbalanced()
//     tells whether margins were still charged on ordinary rows.
//
// Errors:
//   - matrix.ErrNilMatrix, ErrShapeMismatch (row counts, partition size), ErrColumnRange.
//
// Complexity:
//   - Time O(p·c), Space O(p·c).
func AllocateMargin(alpha, supply matrix.Matrix, col int, bearing Partition) (*MarginAllocation, error) {
	v, err := column(alpha, supply, col)
	if err != nil {
		return nil, allocErrorf(opAllocateMargin, err)
	}
	if bearing.Rows() != alpha.Rows() {
		return nil, allocErrorf(opAllocateMargin, fmt.Errorf("partition %s covers %d rows, table has %d: %w", bearing.Name(), bearing.Rows(), alpha.Rows(), ErrShapeMismatch))
	}
	out, err := matrix.ScaleRows(alpha, v)
	if err != nil {
		return nil, allocErrorf(opAllocateMargin, err)
	}

	bearingRows := bearing.BearingRows()
	pool := matrix.ZeroSum
	for _, k := range bearingRows {
		pool += v[k]
	}
	ordinary, err := out.Induced(bearing.OrdinaryRows(), seq(out.Cols()))
	if err != nil {
		return nil, allocErrorf(opAllocateMargin, err)
	}
	charged, err := matrix.ColSums(ordinary)
	if err != nil {
		return nil, allocErrorf(opAllocateMargin, err)
	}

	for _, k := range bearingRows {
		share := ratio.Of(v[k], pool).Or(0)
		for j, c := range charged {
			if err = out.Set(k, j, -share*c); err != nil {
				return nil, allocErrorf(opAllocateMargin, err)
			}
		}
	}

	return &MarginAllocation{
		Matrix:    out,
		Partition: bearing.Name(),
		Column:    col,
		Pool:      pool,
		Charged:   matrix.VecSum(charged),
		ZeroPool:  pool == 0,
	}, nil
}

// column validates the operands and returns input[:, col].
func column(alpha, input matrix.Matrix, col int) ([]float64, error) {
	if err := matrix.ValidateNotNil(alpha); err != nil {
		return nil, err
	}
	if err := matrix.ValidateNotNil(input); err != nil {
		return nil, err
	}
	if alpha.Rows() != input.Rows() {
		return nil, fmt.Errorf("alpha has %d rows, input %d: %w", alpha.Rows(), input.Rows(), ErrShapeMismatch)
	}
	if col < 0 || col >= input.Cols() {
		return nil, fmt.Errorf("column %d of %d: %w", col, input.Cols(), ErrColumnRange)
	}
	out := make([]float64, input.Rows())
	for i := range out {
		v, err := input.At(i, col)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}

	return out
}
