// SPDX-License-Identifier: MIT

package workbook

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/katalvlaran/leontief/matrix"
)

// MaxSheetName is the longest sheet name the format allows.
const MaxSheetName = 31

// Sheet is one labelled matrix. Nil label slices are left blank.
type Sheet struct {
	Name      string
	Matrix    *matrix.Dense
	RowLabels []string
	ColLabels []string
}

// Column returns a one-column sheet holding v.
func Column(name, header string, v []float64, rowLabels []string) (Sheet, error) {
	m, err := matrix.NewColumn(v)
	if err != nil {
		return Sheet{}, err
	}

	return Sheet{Name: name, Matrix: m, RowLabels: rowLabels, ColLabels: []string{header}}, nil
}

// Writer accumulates sheets in a new workbook.
type Writer struct {
	f      *excelize.File
	runID  string
	sheets int
}

// NewWriter starts an empty workbook stamped with runID.
func NewWriter(runID string) *Writer {
	return &Writer{f: excelize.NewFile(), runID: runID}
}

// Add writes s as a new sheet: column labels in row 1, row labels in column A and the
// matrix from B2, with the header row and label column frozen.
//
// Errors: ErrSheet for an empty, overlong or duplicate name, or labels that do not
// match the matrix.
func (w *Writer) Add(s Sheet) error {
	if s.Name == "" || len(s.Name) > MaxSheetName {
		return fmt.Errorf("name %q: %w", s.Name, ErrSheet)
	}
	if s.Matrix == nil {
		return fmt.Errorf("%s: %w", s.Name, matrix.ErrNilMatrix)
	}
	rows, cols := s.Matrix.Shape()
	if s.RowLabels != nil && len(s.RowLabels) != rows {
		return fmt.Errorf("%s: %d row labels for %d rows: %w", s.Name, len(s.RowLabels), rows, ErrSheet)
	}
	if s.ColLabels != nil && len(s.ColLabels) != cols {
		return fmt.Errorf("%s: %d column labels for %d columns: %w", s.Name, len(s.ColLabels), cols, ErrSheet)
	}
	if idx, _ := w.f.GetSheetIndex(s.Name); idx >= 0 && w.sheets > 0 {
		return fmt.Errorf("%s: duplicate: %w", s.Name, ErrSheet)
	}

	if w.sheets == 0 {
		if err := w.f.SetSheetName(w.f.GetSheetName(0), s.Name); err != nil {
			return fmt.Errorf("%s: %w", s.Name, err)
		}
	} else if _, err := w.f.NewSheet(s.Name); err != nil {
		return fmt.Errorf("%s: %w", s.Name, err)
	}
	w.sheets++

	header := make([]interface{}, cols+1)
	header[0] = ""
	for j := 0; j < cols; j++ {
		header[j+1] = label(s.ColLabels, j)
	}
	if err := w.f.SetSheetRow(s.Name, "A1", &header); err != nil {
		return fmt.Errorf("%s: %w", s.Name, err)
	}
	for i := 0; i < rows; i++ {
		vals, err := s.Matrix.Row(i)
		if err != nil {
			return err
		}
		line := make([]interface{}, cols+1)
		line[0] = label(s.RowLabels, i)
		for j, v := range vals {
			line[j+1] = v
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err = w.f.SetSheetRow(s.Name, cell, &line); err != nil {
			return fmt.Errorf("%s: %w", s.Name, err)
		}
	}

	return w.f.SetPanes(s.Name, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      1,
		TopLeftCell: "B2",
		ActivePane:  "bottomRight",
	})
}

// AddAll adds every sheet in order.
func (w *Writer) AddAll(sheets ...Sheet) error {
	for _, s := range sheets {
		if err := w.Add(s); err != nil {
			return err
		}
	}

	return nil
}

// SaveAs stamps the document properties and writes the workbook to path.
func (w *Writer) SaveAs(path string) error {
	if w.sheets == 0 {
		return fmt.Errorf("%s: no sheets: %w", path, ErrSheet)
	}
	err := w.f.SetDocProps(&excelize.DocProperties{
		Creator:     "leontief",
		Identifier:  w.runID,
		Created:     time.Now().UTC().Format(time.RFC3339),
		Description: "run " + w.runID,
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOpen, path, err)
	}
	if err = w.f.SaveAs(path); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOpen, path, err)
	}

	return nil
}

// Close releases the workbook.
func (w *Writer) Close() error { return w.f.Close() }

// RunID reads the run identifier stamped by SaveAs.
func RunID(path string) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrOpen, path, err)
	}
	defer func() { _ = f.Close() }()

	props, err := f.GetDocProps()
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrOpen, path, err)
	}

	return props.Identifier, nil
}

func label(labels []string, i int) string {
	if i < len(labels) {
		return labels[i]
	}
	return ""
}
