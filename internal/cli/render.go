// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/katalvlaran/leontief/deflate"
	"github.com/katalvlaran/leontief/estimate"
	"github.com/katalvlaran/leontief/layout"
)

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	if title != "" {
		t.SetTitle(title)
	}

	return t
}

// numbers right-aligns and formats columns from..to, 1-based.
func numbers(t table.Writer, format string, from, to int) {
	cfgs := make([]table.ColumnConfig, 0, to-from+1)
	for n := from; n <= to; n++ {
		cfgs = append(cfgs, table.ColumnConfig{
			Number:      n,
			Align:       text.AlignRight,
			Transformer: text.NewNumberTransformer(format),
		})
	}
	t.SetColumnConfigs(cfgs)
}

func renderGDP(w io.Writer, year int, g estimate.GDPBreakdown) {
	t := newTable(w, fmt.Sprintf("GDP %d", year))
	t.AppendHeader(table.Row{"Component", "Value"})
	for i, v := range g.Values() {
		if i > 0 && i%4 == 0 && i < 12 {
			t.AppendSeparator()
		}
		t.AppendRow(table.Row{estimate.GDPLabels[i], v})
	}
	numbers(t, "%.2f", 2, 2)
	t.Render()
}

func renderTotals(w io.Writer, s *deflate.Series) {
	t := newTable(w, "Deflated totals")
	header := table.Row{"Year"}
	for _, h := range totalsHeader {
		header = append(header, h)
	}
	t.AppendHeader(header)
	for i, tt := range s.Totals() {
		row := table.Row{tt.Year}
		for _, v := range totalsRow(tt) {
			row = append(row, v)
		}
		t.AppendRow(append(row, s.Years[i].Index.Aggregate))
	}
	numbers(t, "%.2f", 2, len(header))
	t.Render()
}

func renderBalance(w io.Writer, sheet string, iterations int, rowGap, colGap float64) {
	t := newTable(w, "GRAS")
	t.AppendHeader(table.Row{"Sheet", "Iterations", "Max row gap", "Max column gap"})
	t.AppendRow(table.Row{sheet, iterations, rowGap, colGap})
	numbers(t, "%.3g", 3, 4)
	t.Render()
}

func renderLayouts(w io.Writer, ls []layout.Layout) {
	t := newTable(w, "Table-size classes")
	t.AppendHeader(table.Row{"Class", "Products", "Sectors", "Demand cols", "Supply cols", "VA rows", "Trade rows", "Transport rows"})
	for _, l := range ls {
		t.AppendRow(table.Row{
			l.Class, l.Products, l.Sectors, l.DemandCols, l.SupplyCols, l.ValueAddedRows,
			fmt.Sprintf("%d-%d", l.TradeRows.First, l.TradeRows.Last),
			fmt.Sprintf("%d-%d", l.TransportRows.First, l.TransportRows.Last),
		})
	}
	t.Render()
}
