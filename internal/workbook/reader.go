// SPDX-License-Identifier: MIT

package workbook

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/katalvlaran/leontief/estimate"
	"github.com/katalvlaran/leontief/layout"
	"github.com/katalvlaran/leontief/matrix"
)

var (
	// ErrOpen indicates a workbook that could not be opened or saved.
	ErrOpen = errors.New("workbook: open")

	// ErrSheet indicates a missing sheet or a block that runs past the sheet.
	ErrSheet = errors.New("workbook: sheet")

	// ErrCell indicates a cell that does not hold a number.
	ErrCell = errors.New("workbook: cell")
)

// Sheet names of the published supply-use workbooks.
const (
	SheetIntermediate = "CI"
	SheetFinalDemand  = "demanda"
	SheetValueAdded   = "VA"
	SheetSupply       = "oferta"
	SheetProduction   = "producao"
	SheetImports      = "importacao"
)

// Grid locates the data blocks of a supply-use workbook, 0-based. Row labels sit in
// the column before a block and column labels two rows above it.
type Grid struct {
	FirstRow           int
	FirstCol           int
	SupplyFirstCol     int
	ValueAddedFirstCol int
}

// GridFor returns the sheet geometry published for class.
func GridFor(class string) Grid {
	g := Grid{FirstRow: 5, FirstCol: 2, SupplyFirstCol: 2, ValueAddedFirstCol: 1}
	if class == layout.ClassRetropolated {
		g.FirstCol = 1
	}

	return g
}

// Reader loads supply-use workbooks for one layout.
type Reader struct {
	layout layout.Layout
	grid   Grid
}

// NewReader returns a Reader using the sheet geometry of l.Class.
func NewReader(l layout.Layout) *Reader {
	return &Reader{layout: l, grid: GridFor(l.Class)}
}

// WithGrid returns a copy of r reading blocks at g.
func (r *Reader) WithGrid(g Grid) *Reader {
	out := *r
	out.grid = g
	return &out
}

// block is one rectangular read.
type block struct {
	sheet     string
	table     layout.Table
	col       int
	rowLabels *[]string
	colLabels *[]string
	dst       **matrix.Dense
}

// Read loads the uses workbook (intermediate consumption, final demand, value added)
// and the resources workbook (supply, production, imports) of one year.
//
// Errors: ErrOpen, ErrSheet, ErrCell, layout.ErrTableShape.
func (r *Reader) Read(usesPath, resourcesPath string) (estimate.Tables, error) {
	var t estimate.Tables
	g := r.grid
	uses := []block{
		{SheetIntermediate, layout.Intermediate, g.FirstCol, &t.Labels.Products, &t.Labels.Sectors, &t.Intermediate},
		{SheetFinalDemand, layout.FinalDemand, g.FirstCol, nil, &t.Labels.Demand, &t.FinalDemand},
		{SheetValueAdded, layout.ValueAdded, g.ValueAddedFirstCol, &t.Labels.ValueAdded, nil, &t.ValueAdded},
	}
	resources := []block{
		{SheetSupply, layout.Supply, g.SupplyFirstCol, nil, &t.Labels.Supply, &t.Supply},
		{SheetProduction, layout.Production, g.FirstCol, nil, nil, &t.Production},
		{SheetImports, layout.Imports, g.FirstCol, nil, nil, &t.Imports},
	}
	if err := r.readFile(usesPath, uses); err != nil {
		return estimate.Tables{}, err
	}
	if err := r.readFile(resourcesPath, resources); err != nil {
		return estimate.Tables{}, err
	}

	return t, nil
}

func (r *Reader) readFile(path string, blocks []block) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOpen, path, err)
	}
	defer func() { _ = f.Close() }()

	for _, b := range blocks {
		rows, cols := r.layout.Shape(b.table)
		cells, err := f.GetRows(b.sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return fmt.Errorf("%w: %s[%s]: %w", ErrSheet, path, b.sheet, err)
		}
		m, err := readBlock(cells, r.grid.FirstRow, b.col, rows, cols)
		if err != nil {
			return fmt.Errorf("%s[%s]: %w", path, b.sheet, err)
		}
		if err = r.layout.CheckShape(b.table, m); err != nil {
			return err
		}
		*b.dst = m
		if b.rowLabels != nil {
			*b.rowLabels = labelsDown(cells, r.grid.FirstRow, b.col-1, rows)
		}
		if b.colLabels != nil && r.grid.FirstRow >= 2 {
			*b.colLabels = labelsAcross(cells, r.grid.FirstRow-2, b.col, cols)
		}
	}

	return nil
}

// readBlock parses rows×cols numbers starting at (row0, col0). Empty cells are 0.
func readBlock(cells [][]string, row0, col0, rows, cols int) (*matrix.Dense, error) {
	if len(cells) < row0+rows {
		return nil, fmt.Errorf("%d rows from row %d, sheet has %d: %w", rows, row0+1, len(cells), ErrSheet)
	}
	m, err := matrix.NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	for i := 0; i < rows; i++ {
		line := cells[row0+i]
		for j := 0; j < cols; j++ {
			v, err := parseCell(cellAt(line, col0+j))
			if err != nil {
				name, _ := excelize.CoordinatesToCellName(col0+j+1, row0+i+1)
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			if err = m.Set(i, j, v); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

func parseCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrCell)
	}

	return v, nil
}

func cellAt(line []string, col int) string {
	if col < 0 || col >= len(line) {
		return ""
	}
	return line[col]
}

// labelsDown reads n labels down column col; nil when all are blank.
func labelsDown(cells [][]string, row0, col, n int) []string {
	out := make([]string, n)
	for i := range out {
		if row0+i < len(cells) {
			out[i] = cleanLabel(cellAt(cells[row0+i], col))
		}
	}

	return nilIfBlank(out)
}

// labelsAcross reads n labels along row; nil when all are blank.
func labelsAcross(cells [][]string, row, col0, n int) []string {
	if row >= len(cells) {
		return nil
	}
	out := make([]string, n)
	for j := range out {
		out[j] = cleanLabel(cellAt(cells[row], col0+j))
	}

	return nilIfBlank(out)
}

func nilIfBlank(labels []string) []string {
	for _, l := range labels {
		if l != "" {
			return labels
		}
	}

	return nil
}

func cleanLabel(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ReadSheet loads a sheet written by Writer: column labels in row 1, row labels in
// column A, numbers from B2 to the last non-empty row and column.
func ReadSheet(path, sheet string) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrOpen, path, err)
	}
	defer func() { _ = f.Close() }()

	cells, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %s[%s]: %w", ErrSheet, path, sheet, err)
	}
	width := 0
	for _, line := range cells {
		width = max(width, len(line))
	}
	if len(cells) < 2 || width < 2 {
		return nil, fmt.Errorf("%s[%s]: no data below the header: %w", path, sheet, ErrSheet)
	}
	rows, cols := len(cells)-1, width-1
	m, err := readBlock(cells, 1, 1, rows, cols)
	if err != nil {
		return nil, fmt.Errorf("%s[%s]: %w", path, sheet, err)
	}

	return &Sheet{
		Name:      sheet,
		Matrix:    m,
		RowLabels: labelsDown(cells, 1, 0, rows),
		ColLabels: labelsAcross(cells, 0, 1, cols),
	}, nil
}
