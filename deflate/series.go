// SPDX-License-Identifier: MIT

package deflate

import (
	"github.com/katalvlaran/leontief/estimate"
	"github.com/katalvlaran/leontief/matrix"
	"github.com/katalvlaran/leontief/ratio"
	"github.com/katalvlaran/leontief/sector"
)

// Names of the deflated series, used in logs, metrics and Degeneracy.
const (
	SeriesProduction    = "production"
	SeriesConsumption   = "consumption"
	SeriesSectorOutput  = "sector_output"
	SeriesProductOutput = "product_output"
	SeriesDemand        = "demand"
	SeriesAggregate     = "aggregate"
)

// Degeneracy stages.
const (
	// DegeneracyMarkdown counts cells re-estimated before balancing.
	DegeneracyMarkdown = "markdown"
	// DegeneracyResidual counts deflators still degenerate after balancing, set to 1.
	DegeneracyResidual = "residual"
)

// Valuation is one year's structural series at one set of prices.
type Valuation struct {
	// Consumption is the basic-price use table, product×(sector+demand).
	Consumption *matrix.Dense
	// Production is the transposed make table, sector×product.
	Production *matrix.Dense
	// SectorOutput, ProductOutput and Demand are per sector, product and use column.
	SectorOutput  []float64
	ProductOutput []float64
	Demand        []float64
	// Aggregate is total output at basic prices.
	Aggregate float64
	// Sector is the sector-space conversion of this valuation.
	Sector *sector.Result
}

// Indices holds one value per cell of every structural series, either the
// year-on-year deflators or the chained index.
type Indices struct {
	Consumption   *matrix.Dense
	Production    *matrix.Dense
	SectorOutput  []float64
	ProductOutput []float64
	Demand        []float64
	Aggregate     float64
}

// Degeneracy counts cells of one kind in one series.
type Degeneracy struct {
	Series string
	Stage  string
	Kind   ratio.Kind
	Cells  int
}

// YearResult is one year of the chained series.
type YearResult struct {
	Year int
	// Current is at the year's own prices.
	Current *Valuation
	// PriorYearObserved is the year at the previous year's prices, as supplied.
	PriorYearObserved *Valuation
	// PriorYearAdjusted is PriorYearObserved after markdown and balancing; the
	// deflators are taken against it. For the base year both are the current valuation.
	PriorYearAdjusted *Valuation
	// Deflated is at base-year prices.
	Deflated *Valuation
	// Deflators are the year-on-year ratios; nil for the base year.
	Deflators *Indices
	// Index is the chained index, 100 everywhere for the base year.
	Index *Indices
	// Iterations of the two GRAS runs, keyed by series.
	Iterations map[string]int
	Degenerate []Degeneracy
}

// Series is the ordered result of a pipeline run.
type Series struct {
	Years  []YearResult
	Labels estimate.Labels
}

// Totals are the per-year sums of the deflated series.
type Totals struct {
	Year          int
	Production    float64
	Consumption   float64
	SectorOutput  float64
	ProductOutput float64
	Demand        float64
	Aggregate     float64
}

// Totals sums every deflated series per year. Deflated production and the deflated
// aggregate agree up to rounding.
func (s *Series) Totals() []Totals {
	out := make([]Totals, 0, len(s.Years))
	for _, y := range s.Years {
		d := y.Deflated
		prod, _ := matrix.Total(d.Production)
		cons, _ := matrix.Total(d.Consumption)
		out = append(out, Totals{
			Year:          y.Year,
			Production:    prod,
			Consumption:   cons,
			SectorOutput:  matrix.VecSum(d.SectorOutput),
			ProductOutput: matrix.VecSum(d.ProductOutput),
			Demand:        matrix.VecSum(d.Demand),
			Aggregate:     d.Aggregate,
		})
	}

	return out
}

// Year returns the result for year y.
func (s *Series) Year(y int) (*YearResult, bool) {
	for i := range s.Years {
		if s.Years[i].Year == y {
			return &s.Years[i], true
		}
	}

	return nil, false
}
