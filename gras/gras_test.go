// SPDX-License-Identifier: MIT
package gras_test

import (
	"errors"
	"math"
	"testing"

	"github.com/katalvlaran/leontief/gras"
	"github.com/katalvlaran/leontief/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(t, err)

	return m
}

func requireSums(t *testing.T, m *matrix.Dense, rows, cols []float64, delta float64) {
	t.Helper()
	rs, err := matrix.RowSums(m)
	require.NoError(t, err)
	cs, err := matrix.ColSums(m)
	require.NoError(t, err)
	for i := range rows {
		assert.InDeltaf(t, rows[i], rs[i], delta, "row %d", i)
	}
	for j := range cols {
		assert.InDeltaf(t, cols[j], cs[j], delta, "col %d", j)
	}
}

// TestBalance_FeasiblePositive balances an all-positive 3×3 matrix to consistent totals.
func TestBalance_FeasiblePositive(t *testing.T) {
	in := mustRows(t, [][]float64{{10, 0, 5}, {0, 20, 0}, {5, 0, 15}})
	u := []float64{20, 20, 20}
	v := []float64{15, 20, 25}

	res, err := gras.Balance(in, u, v)
	require.NoError(t, err)
	assert.Less(t, res.Iterations, 50)
	requireSums(t, res.Matrix, u, v, 1e-6)

	// zero pattern is kept
	for _, ij := range [][2]int{{0, 1}, {1, 0}, {1, 2}, {2, 1}} {
		x, _ := res.Matrix.At(ij[0], ij[1])
		assert.Zero(t, x)
	}
	assert.InDelta(t, 11.388125803, mustAt(t, res.Matrix, 0, 0), 1e-6)
	assert.InDelta(t, 16.388125785, mustAt(t, res.Matrix, 2, 2), 1e-6)
	assert.Len(t, res.RowMultipliers, 3)
	assert.Len(t, res.ColMultipliers, 3)

	// input untouched
	assert.Equal(t, [][]float64{{10, 0, 5}, {0, 20, 0}, {5, 0, 15}}, in.ToRows())
}

// TestBalance_NegativeCellKeepsSign balances a matrix with negative entries.
func TestBalance_NegativeCellKeepsSign(t *testing.T) {
	in := mustRows(t, [][]float64{{10, -5}, {-2, 8}})
	u := []float64{6, 8}
	v := []float64{8, 6}

	res, err := gras.Balance(in, u, v)
	require.NoError(t, err)
	requireSums(t, res.Matrix, u, v, 1e-8)

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			orig := mustAt(t, in, i, j)
			got := mustAt(t, res.Matrix, i, j)
			assert.Equalf(t, math.Signbit(orig), math.Signbit(got), "sign of (%d,%d)", i, j)
		}
	}
	assert.InDelta(t, -4.0, mustAt(t, res.Matrix, 0, 1), 1e-9)
}

// TestBalance_IncompatibleTargetsFlipSign takes the linear fallback on a negative-only
// row with positive targets: the column multipliers go negative and the cells flip.
func TestBalance_IncompatibleTargetsFlipSign(t *testing.T) {
	in := mustRows(t, [][]float64{{-2, -1}})
	u := []float64{3}
	v := []float64{2, 1}

	res, err := gras.Balance(in, u, v)
	require.NoError(t, err)
	requireSums(t, res.Matrix, u, v, 1e-12)
	assert.InDelta(t, 2.0, mustAt(t, res.Matrix, 0, 0), 1e-12)
	assert.InDelta(t, 1.0, mustAt(t, res.Matrix, 0, 1), 1e-12)
	assert.InDelta(t, -1.0, res.ColMultipliers[0], 1e-12)
	assert.InDelta(t, -1.0, res.ColMultipliers[1], 1e-12)
}

// TestBalance_Idempotent re-balancing an already balanced matrix is a fixed point.
func TestBalance_Idempotent(t *testing.T) {
	in := mustRows(t, [][]float64{{1, 2, 0}, {3, -1, 4}, {0, 5, 6}})
	u, err := matrix.RowSums(in)
	require.NoError(t, err)
	v, err := matrix.ColSums(in)
	require.NoError(t, err)

	res, err := gras.Balance(in, u, v)
	require.NoError(t, err)
	assert.LessOrEqual(t, res.Iterations, 2)
	ok, err := matrix.AllClose(in, res.Matrix, matrix.WithTolerance(0, 1e-8))
	require.NoError(t, err)
	assert.True(t, ok)
}

// TestBalance_Infeasible reports non-convergence when totals disagree.
func TestBalance_Infeasible(t *testing.T) {
	in := mustRows(t, [][]float64{{10, 0, 5}, {0, 20, 0}, {5, 0, 15}})

	res, err := gras.Balance(in, []float64{20, 20, 20}, []float64{20, 20, 30}, gras.WithMaxIterations(10))
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, gras.ErrNotConverged)

	var nce *gras.NonConvergenceError
	require.True(t, errors.As(err, &nce))
	assert.Equal(t, 10, nce.Iterations)
}

// TestBalance_ZeroTargets covers the linear fallback for rows without positive weight.
func TestBalance_ZeroTargets(t *testing.T) {
	in := mustRows(t, [][]float64{{0, 0}, {2, 2}})

	res, err := gras.Balance(in, []float64{0, 6}, []float64{3, 3})
	require.NoError(t, err)
	requireSums(t, res.Matrix, []float64{0, 6}, []float64{3, 3}, 1e-8)
	for _, v := range res.Matrix.Values() {
		assert.False(t, math.IsNaN(v))
	}
}

// TestBalance_Validation covers shape, finiteness and option errors.
func TestBalance_Validation(t *testing.T) {
	in := mustRows(t, [][]float64{{1, 2}, {3, 4}})

	tests := []struct {
		name    string
		m       matrix.Matrix
		u, v    []float64
		opts    []gras.Option
		wantErr error
	}{
		{"nil matrix", nil, []float64{1}, []float64{1}, nil, matrix.ErrNilMatrix},
		{"short rows", in, []float64{1}, []float64{1, 2}, nil, gras.ErrShapeMismatch},
		{"long cols", in, []float64{1, 2}, []float64{1, 2, 3}, nil, gras.ErrShapeMismatch},
		{"nan target", in, []float64{math.NaN(), 2}, []float64{1, 2}, nil, matrix.ErrNaNInf},
		{"zero tolerance", in, []float64{3, 7}, []float64{4, 6}, []gras.Option{gras.WithTolerance(0)}, gras.ErrInvalidOptions},
		{"zero cap", in, []float64{3, 7}, []float64{4, 6}, []gras.Option{gras.WithMaxIterations(0)}, gras.ErrInvalidOptions},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := gras.Balance(tc.m, tc.u, tc.v, tc.opts...)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

// TestDefaultOptions pins the documented defaults.
func TestDefaultOptions(t *testing.T) {
	o := gras.DefaultOptions()
	assert.Equal(t, 1e-8, o.Tolerance)
	assert.Equal(t, 10000, o.MaxIterations)
}

func mustAt(t *testing.T, m *matrix.Dense, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}
