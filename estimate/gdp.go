// SPDX-License-Identifier: MIT

package estimate

import (
	"fmt"

	"github.com/katalvlaran/leontief/layout"
)

// GDPBreakdown holds GDP by the production, income and expenditure approaches.
type GDPBreakdown struct {
	// Production approach: Output + ProductTaxes − Intermediate.
	Production, Output, ProductTaxes, Intermediate float64
	// Income approach: Compensation + OperatingSurplus + NetTaxes.
	Income, Compensation, OperatingSurplus, NetTaxes float64
	// Expenditure approach: final demand components + Exports − Imports.
	Expenditure, Households, Government, NPISH, GFCF, StockChange, Imports, Exports float64
}

// GDPLabels names the entries of GDPBreakdown.Values, in the same order.
var GDPLabels = []string{
	"GDP (production)", "Output", "Product taxes", "Intermediate consumption",
	"GDP (income)", "Compensation of employees", "Operating surplus and mixed income", "Net taxes on production and imports",
	"GDP (expenditure)", "Household consumption", "Government consumption", "NPISH consumption",
	"Gross fixed capital formation", "Change in inventories", "Imports", "Exports",
}

// Values flattens the breakdown in the order of GDPLabels.
func (g GDPBreakdown) Values() []float64 {
	return []float64{
		g.Production, g.Output, g.ProductTaxes, g.Intermediate,
		g.Income, g.Compensation, g.OperatingSurplus, g.NetTaxes,
		g.Expenditure, g.Households, g.Government, g.NPISH, g.GFCF, g.StockChange, g.Imports, g.Exports,
	}
}

// GDP reads the three GDP approaches off an assembled table.
//
// Production uses the national-use grand total as output, the four product-tax
// rows at the grand-total column, and the total-uses row at the intermediate total.
// Income uses the compensation, operating-surplus and other-production-tax rows of
// value added at the intermediate total. Expenditure uses the total-uses row at the
// final demand columns of l.Demand, less imports at the grand total.
func GDP(t *Table, l layout.Layout) (GDPBreakdown, error) {
	if t == nil || t.Matrix == nil {
		return GDPBreakdown{}, estimateErrorf(opGDP, ErrMissingTable)
	}
	r, c := l.GDPRows(), l.GDPCols()
	if t.Matrix.Rows() != r.Discrepancy+1 || t.Matrix.Cols() != c.Total+1 {
		return GDPBreakdown{}, estimateErrorf(opGDP, fmt.Errorf("table is %dx%d, class %s wants %dx%d: %w",
			t.Matrix.Rows(), t.Matrix.Cols(), l.Class, r.Discrepancy+1, c.Total+1, layout.ErrTableShape))
	}
	at := func(i, j int) float64 {
		v, _ := t.Matrix.At(i, j)
		return v
	}
	demand := func(col int) float64 { return at(r.TotalUses, c.FinalDemand+col) }
	va := func(row int) float64 { return at(r.ValueAdded+row, c.IntermediateTotal) }

	var g GDPBreakdown
	g.Output = at(r.NationalUse, c.Total)
	for _, row := range r.Taxes() {
		g.ProductTaxes += at(row, c.Total)
	}
	g.Intermediate = at(r.TotalUses, c.IntermediateTotal)
	g.Production = g.Output + g.ProductTaxes - g.Intermediate

	g.Compensation = va(l.ValueAdded.Compensation)
	g.OperatingSurplus = va(l.ValueAdded.OperatingSurplus)
	g.NetTaxes = g.ProductTaxes
	for _, row := range l.ValueAdded.OtherTaxes {
		g.NetTaxes += va(row)
	}
	g.Income = g.Compensation + g.OperatingSurplus + g.NetTaxes

	for _, col := range l.Demand.Exports {
		g.Exports += demand(col)
	}
	g.Government = demand(l.Demand.Government)
	g.NPISH = demand(l.Demand.NPISH)
	g.Households = demand(l.Demand.Households)
	g.GFCF = demand(l.Demand.GFCF)
	g.StockChange = demand(l.Demand.StockChange)
	g.Imports = at(r.Imports, c.Total)
	g.Expenditure = g.Exports + g.Government + g.NPISH + g.Households + g.GFCF + g.StockChange - g.Imports

	return g, nil
}
