// SPDX-License-Identifier: MIT

package estimate

import (
	"context"

	"github.com/katalvlaran/leontief/alloc"
	"github.com/katalvlaran/leontief/internal/logger"
	"github.com/katalvlaran/leontief/layout"
	"github.com/katalvlaran/leontief/matrix"
)

// Decomposition is a purchaser-price use table split into its allocated pieces.
// Every matrix is product×(sector+demand) unless noted.
type Decomposition struct {
	// Alpha is the share matrix without stock change; AlphaDomestic also drops exports.
	Alpha, AlphaDomestic *matrix.Dense
	// Uses is [intermediate | final demand] at purchaser prices.
	Uses *matrix.Dense

	TradeMargin, TransportMargin *alloc.MarginAllocation

	IPI, ICMS, OtherTaxes *matrix.Dense
	Imports, ImportTax    *matrix.Dense

	// Basic is Uses minus every allocated piece: domestic flows at basic prices.
	Basic *matrix.Dense
	// Production is the make table the decomposition was built with, product×sector.
	Production *matrix.Dense
}

// Payments returns the five payment-sector matrices in table order:
// imports, import tax, IPI, ICMS, other taxes.
func (d *Decomposition) Payments() []*matrix.Dense {
	return []*matrix.Dense{d.Imports, d.ImportTax, d.IPI, d.ICMS, d.OtherTaxes}
}

// SectorOutput returns the make-table column sums (output per sector).
func (d *Decomposition) SectorOutput() ([]float64, error) { return matrix.ColSums(d.Production) }

// ProductOutput returns the make-table row sums (output per product).
func (d *Decomposition) ProductOutput() ([]float64, error) { return matrix.RowSums(d.Production) }

// Demand returns the column sums of the basic-price uses.
func (d *Decomposition) Demand() ([]float64, error) { return matrix.ColSums(d.Basic) }

// BasicPrices strips margins, product taxes and imports out of the use table.
//
// Implementation:
//   - Stage 1: validate layout and tables; build the trade and transport partitions.
//   - Stage 2: alpha from [intermediate | demand] with the stock-change column zeroed.
//   - Stage 3: margins via alloc.AllocateMargin; IPI, ICMS, other taxes via
//     alloc.AllocateInternal, all on alpha.
//   - Stage 4: AlphaDomestic additionally zeroes the export columns; imports (import
//     vector column 0) and import tax are allocated on it.
//   - Stage 5: Basic = Uses − margins − taxes − imports − import tax. Uses keeps the
//     original stock-change column.
//
// Behavior highlights:
//   - A margin partition with no margin supply is reported through the Observer and
//     logged; the decomposition still completes.
//
// Errors:
//   - layout.ErrInvalidLayout, layout.ErrTableShape, ErrMissingTable, alloc errors.
//
// Complexity:
//   - Time O(p·(s+d)) per allocated column, Space O(p·(s+d)) per kept matrix.
func BasicPrices(ctx context.Context, t Tables, l layout.Layout, opts ...Option) (*Decomposition, error) {
	o := newOptions(opts...)
	if err := l.Validate(); err != nil {
		return nil, estimateErrorf(opBasicPrices, err)
	}
	if err := t.Validate(l); err != nil {
		return nil, estimateErrorf(opBasicPrices, err)
	}
	trade, err := l.TradePartition()
	if err != nil {
		return nil, estimateErrorf(opBasicPrices, err)
	}
	transport, err := l.TransportPartition()
	if err != nil {
		return nil, estimateErrorf(opBasicPrices, err)
	}

	d := &Decomposition{Production: t.Production.Copy()}

	demand, err := matrix.ZeroCols(t.FinalDemand, l.Demand.StockChange)
	if err != nil {
		return nil, estimateErrorf(opBasicPrices, err)
	}
	if d.Alpha, _, err = alloc.Shares(t.Intermediate, demand); err != nil {
		return nil, estimateErrorf(opBasicPrices, err)
	}
	if d.TradeMargin, err = alloc.AllocateMargin(d.Alpha, t.Supply, l.Supply.TradeMargin, trade); err != nil {
		return nil, estimateErrorf(opBasicPrices, err)
	}
	if d.TransportMargin, err = alloc.AllocateMargin(d.Alpha, t.Supply, l.Supply.TransportMargin, transport); err != nil {
		return nil, estimateErrorf(opBasicPrices, err)
	}
	if d.IPI, err = alloc.AllocateInternal(d.Alpha, t.Supply, l.Supply.IPI); err != nil {
		return nil, estimateErrorf(opBasicPrices, err)
	}
	if d.ICMS, err = alloc.AllocateInternal(d.Alpha, t.Supply, l.Supply.ICMS); err != nil {
		return nil, estimateErrorf(opBasicPrices, err)
	}
	if d.OtherTaxes, err = alloc.AllocateInternal(d.Alpha, t.Supply, l.Supply.OtherTaxes); err != nil {
		return nil, estimateErrorf(opBasicPrices, err)
	}

	domestic, err := matrix.ZeroCols(demand, l.Demand.Exports...)
	if err != nil {
		return nil, estimateErrorf(opBasicPrices, err)
	}
	if d.AlphaDomestic, _, err = alloc.Shares(t.Intermediate, domestic); err != nil {
		return nil, estimateErrorf(opBasicPrices, err)
	}
	if d.Imports, err = alloc.AllocateInternal(d.AlphaDomestic, t.Imports, 0); err != nil {
		return nil, estimateErrorf(opBasicPrices, err)
	}
	if d.ImportTax, err = alloc.AllocateInternal(d.AlphaDomestic, t.Supply, l.Supply.ImportTax); err != nil {
		return nil, estimateErrorf(opBasicPrices, err)
	}

	if d.Uses, err = matrix.HConcat(t.Intermediate, t.FinalDemand); err != nil {
		return nil, estimateErrorf(opBasicPrices, err)
	}
	d.Basic, err = matrix.SubAll(d.Uses,
		d.TradeMargin.Matrix, d.TransportMargin.Matrix,
		d.IPI, d.ICMS, d.OtherTaxes,
		d.Imports, d.ImportTax,
	)
	if err != nil {
		return nil, estimateErrorf(opBasicPrices, err)
	}

	for _, m := range []*alloc.MarginAllocation{d.TradeMargin, d.TransportMargin} {
		reportMargin(ctx, o, m)
	}

	return d, nil
}

func reportMargin(ctx context.Context, o options, m *alloc.MarginAllocation) {
	if !m.ZeroPool {
		return
	}
	o.observer.ZeroMarginPool(m.Partition, m.Charged)
	fields := []logger.Field{
		logger.String("partition", m.Partition),
		logger.Int("supply_column", m.Column),
		logger.Float64("charged", m.Charged),
	}
	if m.Unbalanced() {
		o.log.Warn(ctx, "margin charged with no margin supply; basic prices keep the surplus", fields...)
		return
	}
	o.log.Debug(ctx, "empty margin pool", fields...)
}
