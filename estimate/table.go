// SPDX-License-Identifier: MIT

package estimate

import (
	"fmt"

	"github.com/katalvlaran/leontief/layout"
	"github.com/katalvlaran/leontief/matrix"
	"github.com/katalvlaran/leontief/sector"
)

// Row and column captions of the assembled table.
var (
	paymentNames = []string{"Imports", "Import tax", "IPI", "ICMS", "Other net taxes"}

	captionNationalUse  = "National use"
	captionTotalUses    = "Total uses"
	captionDiscrepancy  = "Discrepancy"
	captionIntermediate = "Intermediate total"
	captionFinalDemand  = "Final demand"
	captionTotalDemand  = "Total demand"
)

// Table is an assembled I-O table with its labels and row/column positions.
type Table struct {
	Matrix    *matrix.Dense
	RowLabels []string
	ColLabels []string
	Rows      layout.TableRows
	Cols      layout.TableCols
	sectors   int
}

// Discrepancy returns, per sector, published output minus the output rebuilt from
// the table: x − (ColSums(Z) + intermediate payments + first value-added row).
func (t *Table) Discrepancy() ([]float64, error) {
	row, err := t.Matrix.Row(t.Rows.Discrepancy)
	if err != nil {
		return nil, err
	}

	return row[:t.sectors], nil
}

// At reads a cell; the table is always in range for its own Rows/Cols positions.
func (t *Table) At(i, j int) (float64, error) { return t.Matrix.At(i, j) }

// AssembleTable lays out the symmetric I-O table.
//
// Implementation:
//   - Upper block, one row per sector: Z, Z row total, Y, Y row total, total demand.
//     The national-use row (column sums of the block) closes it.
//   - Payment rows: imports, import tax, IPI, ICMS, other taxes, each as
//     [intermediate cols, total, demand cols, total, grand total].
//   - Total-uses row: payment rows plus national use.
//   - Value-added rows: [row, row total, zeros, row total].
//   - Discrepancy row: [x − rebuilt output, its sum, zeros, its sum], where x is the
//     value-added total production row.
//
// Errors:
//   - ErrMissingTable (nil value added), ErrLabels, matrix shape errors.
//
// Complexity:
//   - Time O(p·(s+d) + v·s), Space O((s+v)·(s+d)).
func AssembleTable(l layout.Layout, dec *Decomposition, conv *sector.Result, valueAdded *matrix.Dense, labels Labels) (*Table, error) {
	if dec == nil || conv == nil || valueAdded == nil {
		return nil, estimateErrorf(opAssemble, fmt.Errorf("decomposition, conversion and value added are required: %w", ErrMissingTable))
	}
	if err := l.CheckShape(layout.ValueAdded, valueAdded); err != nil {
		return nil, estimateErrorf(opAssemble, err)
	}
	lb, err := labels.resolve(l)
	if err != nil {
		return nil, estimateErrorf(opAssemble, err)
	}
	s, nd := l.Sectors, l.DemandCols
	if conv.Z == nil || conv.Y == nil || conv.Z.Cols() != s || conv.Y.Cols() != nd {
		return nil, estimateErrorf(opAssemble, fmt.Errorf("conversion does not match class %s: %w", l.Class, layout.ErrTableShape))
	}

	rows := make([][]float64, 0, s+7+l.ValueAddedRows+1)

	zTot, err := matrix.RowSums(conv.Z)
	if err != nil {
		return nil, estimateErrorf(opAssemble, err)
	}
	yTot, err := matrix.RowSums(conv.Y)
	if err != nil {
		return nil, estimateErrorf(opAssemble, err)
	}
	for i := 0; i < s; i++ {
		z, _ := conv.Z.Row(i)
		y, _ := conv.Y.Row(i)
		row := append(z, zTot[i])
		row = append(row, y...)
		rows = append(rows, append(row, yTot[i], zTot[i]+yTot[i]))
	}
	upper, err := matrix.NewFromRows(rows)
	if err != nil {
		return nil, estimateErrorf(opAssemble, err)
	}
	national, err := matrix.ColSums(upper)
	if err != nil {
		return nil, estimateErrorf(opAssemble, err)
	}
	rows = append(rows, national)

	totalUses := append([]float64(nil), national...)
	rebuilt, err := matrix.ColSums(conv.Z)
	if err != nil {
		return nil, estimateErrorf(opAssemble, err)
	}
	for k, m := range dec.Payments() {
		row, err := paymentRow(m, s)
		if err != nil {
			return nil, estimateErrorf(opAssemble, fmt.Errorf("%s: %w", paymentNames[k], err))
		}
		rows = append(rows, row)
		for j := range totalUses {
			totalUses[j] += row[j]
		}
		for j := 0; j < s; j++ {
			rebuilt[j] += row[j]
		}
	}
	rows = append(rows, totalUses)

	for i := 0; i < l.ValueAddedRows; i++ {
		va, _ := valueAdded.Row(i)
		rows = append(rows, padded(va, nd))
	}

	x, err := valueAdded.Row(l.ValueAdded.TotalProduction)
	if err != nil {
		return nil, estimateErrorf(opAssemble, err)
	}
	first, _ := valueAdded.Row(0)
	diff := make([]float64, s)
	for j := range diff {
		diff[j] = x[j] - (rebuilt[j] + first[j])
	}
	rows = append(rows, padded(diff, nd))

	m, err := matrix.NewFromRows(rows)
	if err != nil {
		return nil, estimateErrorf(opAssemble, err)
	}

	rowLabels := append(append([]string(nil), lb.Sectors...), captionNationalUse)
	rowLabels = append(rowLabels, paymentNames...)
	rowLabels = append(rowLabels, captionTotalUses)
	rowLabels = append(rowLabels, lb.ValueAdded...)
	rowLabels = append(rowLabels, captionDiscrepancy)

	colLabels := append(append([]string(nil), lb.Sectors...), captionIntermediate)
	colLabels = append(colLabels, lb.Demand...)
	colLabels = append(colLabels, captionFinalDemand, captionTotalDemand)

	return &Table{
		Matrix:    m,
		RowLabels: rowLabels,
		ColLabels: colLabels,
		Rows:      l.GDPRows(),
		Cols:      l.GDPCols(),
		sectors:   s,
	}, nil
}

// paymentRow lays out one allocated matrix as
// [intermediate col sums, their total, demand col sums, their total, grand total].
func paymentRow(m *matrix.Dense, sectors int) ([]float64, error) {
	cs, err := matrix.ColSums(m)
	if err != nil {
		return nil, err
	}
	ic := matrix.VecSum(cs[:sectors])
	fd := matrix.VecSum(cs[sectors:])
	row := append(append([]float64(nil), cs[:sectors]...), ic)
	row = append(row, cs[sectors:]...)

	return append(row, fd, ic+fd), nil
}

// padded lays out a sector row as [v, Σv, zeros for every demand column and its total, Σv].
func padded(v []float64, demandCols int) []float64 {
	sum := matrix.VecSum(v)
	row := append(append([]float64(nil), v...), sum)
	row = append(row, make([]float64, demandCols+1)...)

	return append(row, sum)
}
