// SPDX-License-Identifier: MIT
package alloc_test

import (
	"testing"

	"github.com/katalvlaran/leontief/matrix"
	"github.com/stretchr/testify/require"
)

const tol = 1e-12

func mustRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(t, err)

	return m
}

func requireRowsClose(t *testing.T, want [][]float64, got *matrix.Dense) {
	t.Helper()
	g := got.ToRows()
	require.Len(t, g, len(want))
	for i := range want {
		require.Len(t, g[i], len(want[i]))
		for j := range want[i] {
			require.InDeltaf(t, want[i][j], g[i][j], tol, "cell (%d,%d)", i, j)
		}
	}
}
