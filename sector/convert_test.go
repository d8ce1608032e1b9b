// SPDX-License-Identifier: MIT
package sector_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/leontief/matrix"
	"github.com/katalvlaran/leontief/sector"
	"github.com/stretchr/testify/assert"
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
	require.NotNil(t, got)
	g := got.ToRows()
	require.Len(t, g, len(want))
	for i := range want {
		require.Len(t, g[i], len(want[i]))
		for j := range want[i] {
			require.InDeltaf(t, want[i][j], g[i][j], tol, "cell (%d,%d)", i, j)
			require.False(t, math.IsNaN(g[i][j]))
		}
	}
}

// twoByTwo has product 1 with zero production.
func twoByTwo(t *testing.T) sector.Input {
	return sector.Input{
		Production:  mustRows(t, [][]float64{{8, 2}, {0, 0}}),
		Consumption: mustRows(t, [][]float64{{1, 0.5, 3}, {2, 1, 1}}),
		Output:      []float64{8, 2},
	}
}

// TestConvert_ZeroProductionProduct checks an unproduced product yields zero coefficients, not NaN.
func TestConvert_ZeroProductionProduct(t *testing.T) {
	res, err := sector.Convert(twoByTwo(t))
	require.NoError(t, err)

	requireRowsClose(t, [][]float64{{0.8, 0}, {0.2, 0}}, res.D)
	requireRowsClose(t, [][]float64{{0.125, 0.25}, {0.25, 0.5}}, res.Bn)
	requireRowsClose(t, [][]float64{{0.1, 0.2}, {0.025, 0.05}}, res.A)
	requireRowsClose(t, [][]float64{{0.8, 0.4}, {0.2, 0.1}}, res.Z)
	requireRowsClose(t, [][]float64{{2.4}, {0.6}}, res.Y)
	requireRowsClose(t, [][]float64{{0.15, 0}, {0.3, 0}}, res.ProductByProduct)
	requireRowsClose(t, [][]float64{{0.95 / 0.85, 0.2 / 0.85}, {0.025 / 0.85, 0.9 / 0.85}}, res.L)
	assert.Nil(t, res.Bm)

	tx, err := res.Transactions()
	require.NoError(t, err)
	requireRowsClose(t, [][]float64{{0.8, 0.4, 2.4}, {0.2, 0.1, 0.6}}, tx)
}

// TestConvert_MarketSharesSumToOne checks every produced product's D column sums to 1.
func TestConvert_MarketSharesSumToOne(t *testing.T) {
	in := sector.Input{
		Production:  mustRows(t, [][]float64{{5, 1, 0}, {0, 4, 2}, {1, 0, 7}}),
		Consumption: mustRows(t, [][]float64{{1, 1, 1, 3, 0}, {0, 1, 2, 2, 1}, {2, 0, 1, 4, 1}}),
		Output:      []float64{6, 5, 9},
		Imports:     mustRows(t, [][]float64{{0.6, 0, 0, 1, 0}, {0, 0.5, 0, 0, 0}, {0, 0, 0.9, 0, 0}}),
	}
	res, err := sector.Convert(in)
	require.NoError(t, err)

	cols, err := matrix.ColSums(res.D)
	require.NoError(t, err)
	for p, c := range cols {
		assert.InDeltaf(t, 1.0, c, tol, "product %d", p)
	}
	requireRowsClose(t, [][]float64{{0.1, 0, 0}, {0, 0.1, 0}, {0, 0, 0.1}}, res.Bm)
	require.Equal(t, 3, res.Y.Rows())
	require.Equal(t, 2, res.Y.Cols())

	// L·(I−A) = I
	id, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	ima, err := matrix.Sub(id, res.A)
	require.NoError(t, err)
	prod, err := matrix.Mul(res.L, ima)
	require.NoError(t, err)
	ok, err := matrix.AllClose(prod, id, matrix.WithTolerance(0, 1e-9))
	require.NoError(t, err)
	assert.True(t, ok)
}

// TestConvert_ExplicitProductTotals uses q from the caller rather than the make-table row sums.
func TestConvert_ExplicitProductTotals(t *testing.T) {
	in := twoByTwo(t)
	in.ProductTotals = []float64{20, 0}

	res, err := sector.Convert(in)
	require.NoError(t, err)
	requireRowsClose(t, [][]float64{{0.4, 0}, {0.1, 0}}, res.D)
}

// TestConvert_SingularLeontief reports I − A singular with both sentinels.
func TestConvert_SingularLeontief(t *testing.T) {
	in := sector.Input{
		Production:  mustRows(t, [][]float64{{1, 0}, {0, 1}}),
		Consumption: mustRows(t, [][]float64{{1, 0}, {0, 1}}),
		Output:      []float64{1, 1},
	}
	_, err := sector.Convert(in)
	require.Error(t, err)
	assert.ErrorIs(t, err, sector.ErrSingularLeontief)
	assert.ErrorIs(t, err, matrix.ErrSingular)
}

// TestConvert_ShapeErrors covers every dimension check.
func TestConvert_ShapeErrors(t *testing.T) {
	base := twoByTwo(t)
	tests := []struct {
		name    string
		mutate  func(in *sector.Input)
		wantErr error
	}{
		{"nil production", func(in *sector.Input) { in.Production = nil }, matrix.ErrNilMatrix},
		{"consumption rows", func(in *sector.Input) { in.Consumption = mustRows(t, [][]float64{{1, 2, 3}}) }, sector.ErrShapeMismatch},
		{"consumption cols", func(in *sector.Input) { in.Consumption = mustRows(t, [][]float64{{1}, {2}}) }, sector.ErrShapeMismatch},
		{"output length", func(in *sector.Input) { in.Output = []float64{1} }, sector.ErrShapeMismatch},
		{"output nan", func(in *sector.Input) { in.Output = []float64{1, math.NaN()} }, matrix.ErrNaNInf},
		{"product totals", func(in *sector.Input) { in.ProductTotals = []float64{1, 2, 3} }, sector.ErrShapeMismatch},
		{"imports", func(in *sector.Input) { in.Imports = mustRows(t, [][]float64{{1}}) }, sector.ErrShapeMismatch},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := base
			tc.mutate(&in)
			_, err := sector.Convert(in)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}
