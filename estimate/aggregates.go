// SPDX-License-Identifier: MIT

package estimate

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/leontief/layout"
	"github.com/katalvlaran/leontief/matrix"
)

// ProductAggregates are per-product totals of one year, all at the tables' valuation.
type ProductAggregates struct {
	Exports    []float64
	Government []float64
	// Households includes NPISH consumption.
	Households []float64
	GFCF       []float64
	// Taxes is the supply column l.Supply.Taxes.
	Taxes   []float64
	Imports []float64
	// NationalSupply is domestic output at basic prices (make-table row sums).
	NationalSupply []float64
	// TotalSupplyBasic adds imports.
	TotalSupplyBasic []float64
	// TotalSupplyPurchaser adds every supply column on top of TotalSupplyBasic.
	TotalSupplyPurchaser []float64
}

// AggregateNames names the series in the order Series returns them.
var AggregateNames = []string{
	"Exports", "Government consumption", "Household and NPISH consumption",
	"GFCF", "Taxes less subsidies", "Imports",
	"National supply (basic prices)", "Total supply (basic prices)", "Total supply (purchaser prices)",
}

// Series returns the aggregates in the order of AggregateNames.
func (a ProductAggregates) Series() [][]float64 {
	return [][]float64{
		a.Exports, a.Government, a.Households, a.GFCF, a.Taxes, a.Imports,
		a.NationalSupply, a.TotalSupplyBasic, a.TotalSupplyPurchaser,
	}
}

// Aggregates compiles the per-product series of one year. ValueAdded is not needed.
func Aggregates(t Tables, l layout.Layout) (ProductAggregates, error) {
	if err := l.Validate(); err != nil {
		return ProductAggregates{}, estimateErrorf(opAggregates, err)
	}
	if err := t.Validate(l); err != nil {
		return ProductAggregates{}, estimateErrorf(opAggregates, err)
	}
	col := func(m *matrix.Dense, j int) []float64 {
		v, _ := m.Col(j)
		return v
	}

	var a ProductAggregates
	exports := make([][]float64, 0, len(l.Demand.Exports))
	for _, j := range l.Demand.Exports {
		exports = append(exports, col(t.FinalDemand, j))
	}
	var err error
	if a.Exports, err = matrix.VecAdd(exports...); err != nil {
		return ProductAggregates{}, estimateErrorf(opAggregates, err)
	}
	a.Government = col(t.FinalDemand, l.Demand.Government)
	if a.Households, err = matrix.VecAdd(col(t.FinalDemand, l.Demand.Households), col(t.FinalDemand, l.Demand.NPISH)); err != nil {
		return ProductAggregates{}, estimateErrorf(opAggregates, err)
	}
	a.GFCF = col(t.FinalDemand, l.Demand.GFCF)
	a.Taxes = col(t.Supply, l.Supply.Taxes)
	a.Imports = col(t.Imports, 0)

	if a.NationalSupply, err = matrix.RowSums(t.Production); err != nil {
		return ProductAggregates{}, estimateErrorf(opAggregates, err)
	}
	if a.TotalSupplyBasic, err = matrix.VecAdd(a.NationalSupply, a.Imports); err != nil {
		return ProductAggregates{}, estimateErrorf(opAggregates, err)
	}
	supply, err := matrix.RowSums(t.Supply)
	if err != nil {
		return ProductAggregates{}, estimateErrorf(opAggregates, err)
	}
	if a.TotalSupplyPurchaser, err = matrix.VecAdd(a.TotalSupplyBasic, supply); err != nil {
		return ProductAggregates{}, estimateErrorf(opAggregates, err)
	}

	return a, nil
}

// Compilation is a set of product×year matrices, one per aggregate.
type Compilation struct {
	Years  []int
	Names  []string
	Series []*matrix.Dense
}

// YearLabels renders Years as column captions.
func (c *Compilation) YearLabels() []string {
	out := make([]string, len(c.Years))
	for i, y := range c.Years {
		out[i] = strconv.Itoa(y)
	}

	return out
}

// CompileAggregates stacks the yearly aggregates column by column: Series[k] holds
// aggregate AggregateNames[k] with one column per entry of years.
func CompileAggregates(years []int, aggs []ProductAggregates) (*Compilation, error) {
	if len(years) == 0 {
		return nil, estimateErrorf(opCompile, ErrNoYears)
	}
	if len(years) != len(aggs) {
		return nil, estimateErrorf(opCompile, fmt.Errorf("%d years, %d aggregates: %w", len(years), len(aggs), matrix.ErrDimensionMismatch))
	}
	products := len(aggs[0].NationalSupply)

	out := &Compilation{Years: append([]int(nil), years...), Names: append([]string(nil), AggregateNames...)}
	for k := range AggregateNames {
		m, err := matrix.NewDense(products, len(years))
		if err != nil {
			return nil, estimateErrorf(opCompile, err)
		}
		for y, a := range aggs {
			series := a.Series()[k]
			if len(series) != products {
				return nil, estimateErrorf(opCompile, fmt.Errorf("year %d %s: %d products, want %d: %w",
					years[y], AggregateNames[k], len(series), products, matrix.ErrDimensionMismatch))
			}
			for p, v := range series {
				if err = m.Set(p, y, v); err != nil {
					return nil, estimateErrorf(opCompile, err)
				}
			}
		}
		out.Series = append(out.Series, m)
	}

	return out, nil
}
