// SPDX-License-Identifier: MIT
package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/katalvlaran/leontief/internal/cli"
	"github.com/katalvlaran/leontief/internal/workbook"
)

const tinyConfig = `
log_level: error
table_class: ""
layout:
  class: tiny
  products: 3
  sectors: 2
  demand_cols: 6
  supply_cols: 7
  value_added_rows: 5
  trade_rows: {first: 1, last: 1}
  transport_rows: {first: 2, last: 2}
  supply: {trade_margin: 1, transport_margin: 2, import_tax: 3, ipi: 4, icms: 5, other_taxes: 6, taxes: 6}
  demand: {exports: [0], government: 1, npish: 2, households: 3, gfcf: 4, stock_change: 5}
  value_added: {compensation: 1, operating_surplus: 2, total_production: 4, other_taxes: [3]}
`

// tinyTRU is a consistent year of the tiny class, keyed by sheet.
func tinyTRU() map[string][][]float64 {
	return map[string][][]float64{
		workbook.SheetIntermediate: {{10, 20}, {4, 6}, {2, 3}},
		workbook.SheetFinalDemand: {
			{5, 0, 0, 30, 10, 5},
			{0, 0, 0, 10, 0, 0},
			{1, 0, 0, 4, 0, 0},
		},
		workbook.SheetValueAdded: {{24, 31}, {10, 15}, {12, 14}, {2, 2}, {40, 60}},
		workbook.SheetSupply: {
			{60, 8, 4, 1, 2, 3, 1},
			{30, -8, 0, 0, 0, 1, 0},
			{10, 0, -4, 0, 0, 0, 0},
		},
		workbook.SheetProduction: {{40, 20}, {0, 30}, {0, 10}},
		workbook.SheetImports:    {{6}, {0}, {1}},
	}
}

// writeYear stores the tiny tables scaled by f as uses<suffix>_<year>.xlsx and
// resources<suffix>_<year>.xlsx under dir.
func writeYear(t *testing.T, dir, suffix string, year int, f float64) {
	t.Helper()
	g := workbook.GridFor("tiny")
	files := map[string][]string{
		"uses":      {workbook.SheetIntermediate, workbook.SheetFinalDemand, workbook.SheetValueAdded},
		"resources": {workbook.SheetSupply, workbook.SheetProduction, workbook.SheetImports},
	}
	data := tinyTRU()
	for prefix, sheets := range files {
		x := excelize.NewFile()
		for _, sheet := range sheets {
			_, err := x.NewSheet(sheet)
			require.NoError(t, err)
			col0 := g.FirstCol
			switch sheet {
			case workbook.SheetValueAdded:
				col0 = g.ValueAddedFirstCol
			case workbook.SheetSupply:
				col0 = g.SupplyFirstCol
			}
			for i, line := range data[sheet] {
				for j, v := range line {
					cell, err := excelize.CoordinatesToCellName(col0+j+1, g.FirstRow+i+1)
					require.NoError(t, err)
					require.NoError(t, x.SetCellValue(sheet, cell, v*f))
				}
			}
		}
		name := prefix + suffix + "_" + strconv.Itoa(year) + ".xlsx"
		require.NoError(t, x.SaveAs(filepath.Join(dir, name)))
		require.NoError(t, x.Close())
	}
}

// project creates an input directory with the tiny config and returns the config
// path and the output directory.
func project(t *testing.T) (dir, cfg, out string) {
	t.Helper()
	dir = t.TempDir()
	cfg = filepath.Join(dir, "leontief.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(tinyConfig+"input_dir: "+strconv.Quote(dir)+"\n"), 0o600))

	return dir, cfg, filepath.Join(dir, "out")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())

	return buf.String(), err
}
