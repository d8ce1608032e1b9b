// SPDX-License-Identifier: MIT
package deflate_test

import (
	"sync"
	"testing"
	"time"

	"github.com/katalvlaran/leontief/deflate"
	"github.com/katalvlaran/leontief/estimate"
	"github.com/katalvlaran/leontief/layout"
	"github.com/katalvlaran/leontief/matrix"
	"github.com/katalvlaran/leontief/ratio"
	"github.com/stretchr/testify/require"
)

const tol = 1e-6

// tinyLayout is 3 products and 2 sectors; product 1 is trade, product 2 transport.
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

// scaled multiplies every table by f.
func scaled(t *testing.T, in estimate.Tables, f float64) estimate.Tables {
	t.Helper()
	s := func(m *matrix.Dense) *matrix.Dense {
		out, err := matrix.Scale(m, f)
		require.NoError(t, err)
		return out
	}

	return estimate.Tables{
		Intermediate: s(in.Intermediate),
		FinalDemand:  s(in.FinalDemand),
		ValueAdded:   s(in.ValueAdded),
		Supply:       s(in.Supply),
		Production:   s(in.Production),
		Imports:      s(in.Imports),
		Labels:       in.Labels,
	}
}

// inflating builds n consecutive years from 2000; year k is the base tables grown by
// growth^k, and its prior-year tables are year k at the previous year's prices.
func inflating(t *testing.T, n int, growth float64) []deflate.YearInput {
	t.Helper()
	out := make([]deflate.YearInput, n)
	level := 1.0
	for k := range out {
		out[k] = deflate.YearInput{Year: 2000 + k, Current: scaled(t, tinyTables(t), level)}
		if k > 0 {
			prior := scaled(t, tinyTables(t), level/growth)
			out[k].Prior = &prior
		}
		level *= growth
	}

	return out
}

func requireVecClose(t *testing.T, want, got []float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.InDeltaf(t, want[i], got[i], tol, "entry %d", i)
	}
}

func requireDenseClose(t *testing.T, want, got *matrix.Dense) {
	t.Helper()
	ok, err := matrix.AllClose(want, got, matrix.WithTolerance(0, tol))
	require.NoError(t, err)
	require.Truef(t, ok, "want\n%v\ngot\n%v", want, got)
}

// recorder is a deflate.Observer remembering every event.
type recorder struct {
	mu           sync.Mutex
	balanced     map[string]int
	notConverged []string
	degenerate   map[string]int
	years        []int
}

func newRecorder() *recorder {
	return &recorder{balanced: map[string]int{}, degenerate: map[string]int{}}
}

func (r *recorder) ZeroMarginPool(string, float64) {}

func (r *recorder) Balanced(series string, iterations int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.balanced[series] += iterations
}

func (r *recorder) NotConverged(series string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notConverged = append(r.notConverged, series)
}

func (r *recorder) Degenerate(series, stage string, kind ratio.Kind, cells int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.degenerate[series+"/"+stage+"/"+kind.String()] += cells
}

func (r *recorder) YearDone(year int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.years = append(r.years, year)
}
