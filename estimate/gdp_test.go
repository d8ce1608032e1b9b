// SPDX-License-Identifier: MIT
package estimate_test

import (
	"testing"

	"github.com/katalvlaran/leontief/estimate"
	"github.com/katalvlaran/leontief/layout"
	"github.com/katalvlaran/leontief/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// indexedTable fills every cell with 100·row + col so each GDP entry names its cells.
func indexedTable(t *testing.T, rows, cols int) *estimate.Table {
	t.Helper()
	m, err := matrix.NewDense(rows, cols)
	require.NoError(t, err)
	require.NoError(t, m.Apply(func(i, j int, _ float64) float64 { return float64(100*i + j) }))

	return &estimate.Table{Matrix: m}
}

// TestGDP_ReadsTablePositions pins every component to its cell.
func TestGDP_ReadsTablePositions(t *testing.T) {
	g, err := estimate.GDP(indexedTable(t, 15, 11), tinyLayout())
	require.NoError(t, err)

	want := estimate.GDPBreakdown{
		Output:           210,
		ProductTaxes:     410 + 510 + 610 + 710,
		Intermediate:     802,
		Compensation:     1002,
		OperatingSurplus: 1102,
		Exports:          803,
		Government:       804,
		NPISH:            805,
		Households:       806,
		GFCF:             807,
		StockChange:      808,
		Imports:          310,
	}
	want.Production = want.Output + want.ProductTaxes - want.Intermediate
	want.NetTaxes = want.ProductTaxes + 1202
	want.Income = want.Compensation + want.OperatingSurplus + want.NetTaxes
	want.Expenditure = 803 + 804 + 805 + 806 + 807 + 808 - 310
	assert.Equal(t, want, g)

	assert.Len(t, g.Values(), len(estimate.GDPLabels))
	assert.Equal(t, g.Production, g.Values()[0])
	assert.Equal(t, g.Exports, g.Values()[15])
}

// TestGDP_SplitExports sums both export columns of the retropolated class.
func TestGDP_SplitExports(t *testing.T) {
	l, err := layout.Preset("51")
	require.NoError(t, err)
	r, c := l.GDPRows(), l.GDPCols()

	g, err := estimate.GDP(indexedTable(t, r.Discrepancy+1, c.Total+1), l)
	require.NoError(t, err)

	row := float64(100 * r.TotalUses)
	assert.Equal(t, 2*row+float64(c.FinalDemand)+float64(c.FinalDemand+1), g.Exports)
	assert.Equal(t, row+float64(c.FinalDemand+2), g.Government)
	otherTaxes := float64(100*(r.ValueAdded+8)+c.IntermediateTotal) + float64(100*(r.ValueAdded+9)+c.IntermediateTotal)
	assert.Equal(t, g.ProductTaxes+otherTaxes, g.NetTaxes)
}

// TestGDP_ShapeMismatch rejects a table of another class.
func TestGDP_ShapeMismatch(t *testing.T) {
	_, err := estimate.GDP(indexedTable(t, 14, 11), tinyLayout())
	assert.ErrorIs(t, err, layout.ErrTableShape)

	_, err = estimate.GDP(nil, tinyLayout())
	assert.ErrorIs(t, err, estimate.ErrMissingTable)
}
