// SPDX-License-Identifier: MIT

package matrix

import "fmt"

const opHConcat = "HConcat"

// HConcat places the blocks side by side: [b0 | b1 | ...]. All blocks must share Rows().
//
// Errors:
//   - ErrInvalidDimensions when no block is given.
//   - ErrNilMatrix, ErrDimensionMismatch (row counts differ).
//
// Complexity:
//   - Time O(r*Σc), Space O(r*Σc).
func HConcat(blocks ...Matrix) (*Dense, error) {
	if len(blocks) == 0 {
		return nil, matrixErrorf(opHConcat, ErrInvalidDimensions)
	}
	rows, cols := -1, 0
	for k, b := range blocks {
		if err := ValidateNotNil(b); err != nil {
			return nil, matrixErrorf(opHConcat, fmt.Errorf("block %d: %w", k, err))
		}
		if rows >= 0 && b.Rows() != rows {
			return nil, matrixErrorf(opHConcat, fmt.Errorf("block %d has %d rows, want %d: %w", k, b.Rows(), rows, ErrDimensionMismatch))
		}
		rows = b.Rows()
		cols += b.Cols()
	}
	out, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opHConcat, err)
	}
	offset := 0
	for _, b := range blocks {
		bv, err := valuesOf(b)
		if err != nil {
			return nil, matrixErrorf(opHConcat, err)
		}
		bc := b.Cols()
		for i := 0; i < rows; i++ {
			copy(out.data[i*cols+offset:i*cols+offset+bc], bv[i*bc:(i+1)*bc])
		}
		offset += bc
	}

	return out, nil
}
