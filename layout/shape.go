// SPDX-License-Identifier: MIT

package layout

import (
	"fmt"

	"github.com/katalvlaran/leontief/matrix"
)

// Table names one sheet of the TRU input.
type Table int

const (
	Intermediate Table = iota
	FinalDemand
	ValueAdded
	Supply
	Production
	Imports
)

var tableNames = [...]string{"intermediate", "final_demand", "value_added", "supply", "production", "imports"}

func (t Table) String() string {
	if t < 0 || int(t) >= len(tableNames) {
		return fmt.Sprintf("table(%d)", int(t))
	}

	return tableNames[t]
}

// Shape returns the (rows, cols) the layout expects for t.
func (l Layout) Shape(t Table) (rows, cols int) {
	switch t {
	case Intermediate, Production:
		return l.Products, l.Sectors
	case FinalDemand:
		return l.Products, l.DemandCols
	case ValueAdded:
		return l.ValueAddedRows, l.Sectors
	case Supply:
		return l.Products, l.SupplyCols
	case Imports:
		return l.Products, 1
	}

	return 0, 0
}

// CheckShape fails with ErrTableShape unless m has the shape l expects for t.
func (l Layout) CheckShape(t Table, m matrix.Matrix) error {
	if err := matrix.ValidateNotNil(m); err != nil {
		return layoutErrorf(opCheckShape, fmt.Errorf("%s: %w", t, err))
	}
	rows, cols := l.Shape(t)
	if m.Rows() != rows || m.Cols() != cols {
		return layoutErrorf(opCheckShape, fmt.Errorf("%s is %dx%d, class %s wants %dx%d: %w",
			t, m.Rows(), m.Cols(), l.Class, rows, cols, ErrTableShape))
	}

	return nil
}
