// SPDX-License-Identifier: MIT
package workbook_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/katalvlaran/leontief/internal/workbook"
	"github.com/katalvlaran/leontief/layout"
	"github.com/katalvlaran/leontief/matrix"
)

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

// fill writes data at (row0, col0), 0-based, with row labels one column to the left
// and column labels two rows above.
func fill(t *testing.T, f *excelize.File, sheet string, row0, col0 int, data [][]float64, rowLabels, colLabels []string) {
	t.Helper()
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	set := func(row, col int, v interface{}) {
		cell, err := excelize.CoordinatesToCellName(col+1, row+1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, cell, v))
	}
	for j, l := range colLabels {
		set(row0-2, col0+j, l)
	}
	for i, line := range data {
		if rowLabels != nil {
			set(row0+i, col0-1, rowLabels[i])
		}
		for j, v := range line {
			set(row0+i, col0+j, v)
		}
	}
}

func seq(rows, cols int, base float64) [][]float64 {
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
		for j := range out[i] {
			out[i][j] = base + float64(10*i+j)
		}
	}

	return out
}

func writeTRU(t *testing.T, dir string) (uses, resources string) {
	t.Helper()
	g := workbook.GridFor("tiny")
	products := []string{"Grain", "Trade", "Transport"}

	u := excelize.NewFile()
	defer func() { _ = u.Close() }()
	fill(t, u, workbook.SheetIntermediate, g.FirstRow, g.FirstCol, seq(3, 2, 1), products, []string{"Farming", "Services\nand more"})
	fill(t, u, workbook.SheetFinalDemand, g.FirstRow, g.FirstCol, seq(3, 6, 100), nil, []string{"X", "G", "N", "H", "I", "S"})
	fill(t, u, workbook.SheetValueAdded, g.FirstRow, g.ValueAddedFirstCol, seq(5, 2, 200), []string{"VA", "W", "EOB", "T", "VBP"}, nil)
	uses = filepath.Join(dir, "uses.xlsx")
	require.NoError(t, u.SaveAs(uses))

	r := excelize.NewFile()
	defer func() { _ = r.Close() }()
	fill(t, r, workbook.SheetSupply, g.FirstRow, g.SupplyFirstCol, seq(3, 7, 300), nil, []string{"PB", "MC", "MT", "II", "IPI", "ICMS", "OI"})
	fill(t, r, workbook.SheetProduction, g.FirstRow, g.FirstCol, seq(3, 2, 400), nil, nil)
	fill(t, r, workbook.SheetImports, g.FirstRow, g.FirstCol, seq(3, 1, 500), nil, nil)
	resources = filepath.Join(dir, "resources.xlsx")
	require.NoError(t, r.SaveAs(resources))

	return uses, resources
}

func TestReader_Read(t *testing.T) {
	uses, resources := writeTRU(t, t.TempDir())

	tables, err := workbook.NewReader(tinyLayout()).Read(uses, resources)
	require.NoError(t, err)

	assert.Equal(t, seq(3, 2, 1), tables.Intermediate.ToRows())
	assert.Equal(t, seq(3, 6, 100), tables.FinalDemand.ToRows())
	assert.Equal(t, seq(5, 2, 200), tables.ValueAdded.ToRows())
	assert.Equal(t, seq(3, 7, 300), tables.Supply.ToRows())
	assert.Equal(t, seq(3, 2, 400), tables.Production.ToRows())
	assert.Equal(t, seq(3, 1, 500), tables.Imports.ToRows())

	assert.Equal(t, []string{"Grain", "Trade", "Transport"}, tables.Labels.Products)
	assert.Equal(t, []string{"Farming", "Services and more"}, tables.Labels.Sectors)
	assert.Equal(t, []string{"X", "G", "N", "H", "I", "S"}, tables.Labels.Demand)
	assert.Equal(t, []string{"VA", "W", "EOB", "T", "VBP"}, tables.Labels.ValueAdded)
	assert.Len(t, tables.Labels.Supply, 7)
	require.NoError(t, tables.Validate(tinyLayout()))
}

func TestReader_Errors(t *testing.T) {
	dir := t.TempDir()
	uses, resources := writeTRU(t, dir)

	t.Run("missing file", func(t *testing.T) {
		_, err := workbook.NewReader(tinyLayout()).Read(filepath.Join(dir, "none.xlsx"), resources)
		assert.ErrorIs(t, err, workbook.ErrOpen)
	})
	t.Run("block past the sheet", func(t *testing.T) {
		l := tinyLayout()
		l.ValueAddedRows = 40
		_, err := workbook.NewReader(l).Read(uses, resources)
		assert.ErrorIs(t, err, workbook.ErrSheet)
	})
	t.Run("missing sheet", func(t *testing.T) {
		_, err := workbook.NewReader(tinyLayout()).Read(resources, resources)
		assert.ErrorIs(t, err, workbook.ErrSheet)
	})
	t.Run("text in a number cell", func(t *testing.T) {
		f, err := excelize.OpenFile(uses)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(workbook.SheetIntermediate, "D7", "n/a"))
		bad := filepath.Join(dir, "bad.xlsx")
		require.NoError(t, f.SaveAs(bad))
		require.NoError(t, f.Close())

		_, err = workbook.NewReader(tinyLayout()).Read(bad, resources)
		assert.ErrorIs(t, err, workbook.ErrCell)
	})
}

func TestGridFor(t *testing.T) {
	assert.Equal(t, 1, workbook.GridFor(layout.ClassRetropolated).FirstCol)
	assert.Equal(t, 2, workbook.GridFor("68").FirstCol)
	assert.Equal(t, 2, workbook.GridFor("68").SupplyFirstCol)
}

func TestWriter_RoundTrip(t *testing.T) {
	a, err := matrix.NewFromRows([][]float64{{1.5, -2}, {0, 4.25}, {7, 8}})
	require.NoError(t, err)
	col, err := workbook.Column("Output", "total", []float64{3, 4}, []string{"s1", "s2"})
	require.NoError(t, err)

	w := workbook.NewWriter("run-42")
	defer func() { _ = w.Close() }()
	require.NoError(t, w.AddAll(
		workbook.Sheet{Name: "A", Matrix: a, RowLabels: []string{"p1", "p2", "p3"}, ColLabels: []string{"s1", "s2"}},
		col,
	))
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, w.SaveAs(path))

	got, err := workbook.ReadSheet(path, "A")
	require.NoError(t, err)
	assert.Equal(t, a.ToRows(), got.Matrix.ToRows())
	assert.Equal(t, []string{"p1", "p2", "p3"}, got.RowLabels)
	assert.Equal(t, []string{"s1", "s2"}, got.ColLabels)

	out, err := workbook.ReadSheet(path, "Output")
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{3}, {4}}, out.Matrix.ToRows())

	id, err := workbook.RunID(path)
	require.NoError(t, err)
	assert.Equal(t, "run-42", id)
}

func TestWriter_Errors(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	tests := []struct {
		name  string
		sheet workbook.Sheet
	}{
		{"empty name", workbook.Sheet{Matrix: m}},
		{"long name", workbook.Sheet{Name: "a name that is far too long for a sheet", Matrix: m}},
		{"row labels", workbook.Sheet{Name: "R", Matrix: m, RowLabels: []string{"x"}}},
		{"column labels", workbook.Sheet{Name: "C", Matrix: m, ColLabels: []string{"x", "y", "z"}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := workbook.NewWriter("id")
			defer func() { _ = w.Close() }()
			assert.ErrorIs(t, w.Add(tc.sheet), workbook.ErrSheet)
		})
	}

	t.Run("duplicate", func(t *testing.T) {
		w := workbook.NewWriter("id")
		defer func() { _ = w.Close() }()
		require.NoError(t, w.Add(workbook.Sheet{Name: "M", Matrix: m}))
		assert.ErrorIs(t, w.Add(workbook.Sheet{Name: "M", Matrix: m}), workbook.ErrSheet)
	})
	t.Run("nothing to save", func(t *testing.T) {
		w := workbook.NewWriter("id")
		defer func() { _ = w.Close() }()
		assert.ErrorIs(t, w.SaveAs(filepath.Join(t.TempDir(), "x.xlsx")), workbook.ErrSheet)
	})
}
