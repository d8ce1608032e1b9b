// SPDX-License-Identifier: MIT
package estimate_test

import (
	"sync"
	"testing"

	"github.com/katalvlaran/leontief/estimate"
	"github.com/katalvlaran/leontief/layout"
	"github.com/katalvlaran/leontief/matrix"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

// tinyLayout is a 3-product, 2-sector class: product 0 is a good, product 1 the
// trade service, product 2 the transport service.
func tinyLayout() layout.Layout {
	return layout.Layout{
		Class:          "tiny",
		Products:       3,
		Sectors:        2,
		DemandCols:     6,
		SupplyCols:     7,
		ValueAddedRows: 5,
		TradeRows:      layout.Range{First: 1, Last: 1},
		TransportRows:  layout.Range{First: 2, Last: 2},
		Supply: layout.SupplyColumns{
			TradeMargin: 1, TransportMargin: 2, ImportTax: 3, IPI: 4, ICMS: 5, OtherTaxes: 6, Taxes: 6,
		},
		Demand: layout.DemandColumns{
			Exports: []int{0}, Government: 1, NPISH: 2, Households: 3, GFCF: 4, StockChange: 5,
		},
		ValueAdded: layout.ValueAddedRows{
			Compensation: 1, OperatingSurplus: 2, TotalProduction: 4, OtherTaxes: []int{3},
		},
	}
}

func mustRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(t, err)

	return m
}

// tinyTables is consistent: value-added row 0 equals output less intermediate
// consumption, so the rebuilt output matches and the discrepancy row is zero.
func tinyTables(t *testing.T) estimate.Tables {
	t.Helper()

	return estimate.Tables{
		Intermediate: mustRows(t, [][]float64{
			{10, 20},
			{4, 6},
			{2, 3},
		}),
		FinalDemand: mustRows(t, [][]float64{
			{5, 0, 0, 30, 10, 5},
			{0, 0, 0, 10, 0, 0},
			{1, 0, 0, 4, 0, 0},
		}),
		ValueAdded: mustRows(t, [][]float64{
			{24, 31},
			{10, 15},
			{12, 14},
			{2, 2},
			{40, 60},
		}),
		Supply: mustRows(t, [][]float64{
			{60, 8, 4, 1, 2, 3, 1},
			{30, -8, 0, 0, 0, 1, 0},
			{10, 0, -4, 0, 0, 0, 0},
		}),
		Production: mustRows(t, [][]float64{
			{40, 20},
			{0, 30},
			{0, 10},
		}),
		Imports: mustRows(t, [][]float64{{6}, {0}, {1}}),
	}
}

func requireVecClose(t *testing.T, want, got []float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.InDeltaf(t, want[i], got[i], tol, "entry %d", i)
	}
}

// recorder is an Observer that remembers every event.
type recorder struct {
	mu     sync.Mutex
	events map[string]float64
}

func (r *recorder) ZeroMarginPool(partition string, charged float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.events == nil {
		r.events = map[string]float64{}
	}
	r.events[partition] = charged
}
