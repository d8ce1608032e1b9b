// SPDX-License-Identifier: MIT

package estimate

import (
	"context"
	"fmt"

	"github.com/katalvlaran/leontief/internal/logger"
	"github.com/katalvlaran/leontief/layout"
	"github.com/katalvlaran/leontief/sector"
)

// Result is everything one single-year estimate produces.
type Result struct {
	*Decomposition
	Sector *sector.Result
	Table  *Table
	GDP    GDPBreakdown
	Labels Labels
}

// Estimate runs the single-year flow: BasicPrices, sector.Convert with the value-added
// total production row as sector output, AssembleTable and GDP.
//
// Errors:
//   - everything BasicPrices returns; ErrMissingTable without value added;
//     sector.ErrSingularLeontief.
func Estimate(ctx context.Context, t Tables, l layout.Layout, opts ...Option) (*Result, error) {
	o := newOptions(opts...)
	if t.ValueAdded == nil {
		return nil, estimateErrorf(opEstimate, fmt.Errorf("%s: %w", layout.ValueAdded, ErrMissingTable))
	}
	labels, err := t.Labels.resolve(l)
	if err != nil {
		return nil, estimateErrorf(opEstimate, err)
	}
	dec, err := BasicPrices(ctx, t, l, opts...)
	if err != nil {
		return nil, estimateErrorf(opEstimate, err)
	}
	x, err := t.ValueAdded.Row(l.ValueAdded.TotalProduction)
	if err != nil {
		return nil, estimateErrorf(opEstimate, err)
	}
	conv, err := sector.Convert(sector.Input{
		Production:  t.Production,
		Consumption: dec.Basic,
		Output:      x,
		Imports:     dec.Imports,
	})
	if err != nil {
		return nil, estimateErrorf(opEstimate, err)
	}
	table, err := AssembleTable(l, dec, conv, t.ValueAdded, labels)
	if err != nil {
		return nil, estimateErrorf(opEstimate, err)
	}
	gdp, err := GDP(table, l)
	if err != nil {
		return nil, estimateErrorf(opEstimate, err)
	}

	o.log.Info(ctx, "estimate complete",
		logger.String("class", l.Class),
		logger.Float64("gdp_production", gdp.Production),
		logger.Float64("gdp_income", gdp.Income),
		logger.Float64("gdp_expenditure", gdp.Expenditure),
	)

	return &Result{Decomposition: dec, Sector: conv, Table: table, GDP: gdp, Labels: labels}, nil
}
