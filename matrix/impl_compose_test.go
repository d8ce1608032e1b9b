// SPDX-License-Identifier: MIT
package matrix_test

import (
	"testing"

	"github.com/katalvlaran/leontief/matrix"
	"github.com/stretchr/testify/require"
)

// TestConcat assembles Z | Y from its pieces.
func TestConcat(t *testing.T) {
	z := MustFromRows(t, [][]float64{{1, 2}, {3, 4}})
	y := MustFromRows(t, [][]float64{{5}, {6}})

	top, err := matrix.HConcat(z, hide{y})
	require.NoError(t, err)
	RequireMatrixClose(t, [][]float64{{1, 2, 5}, {3, 4, 6}}, top)

	_, err = matrix.HConcat(z, MustFromRows(t, [][]float64{{7, 8, 9}}))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.HConcat()
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}
