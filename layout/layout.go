// SPDX-License-Identifier: MIT

package layout

import (
	"fmt"

	"github.com/katalvlaran/leontief/alloc"
)

// Range is an inclusive row range [First, Last].
type Range struct {
	First int `koanf:"first"`
	Last  int `koanf:"last"`
}

// Rows expands the range.
func (r Range) Rows() []int {
	if r.Last < r.First {
		return nil
	}
	out := make([]int, 0, r.Last-r.First+1)
	for i := r.First; i <= r.Last; i++ {
		out = append(out, i)
	}

	return out
}

// SupplyColumns are column indices into the supply (offer) sheet.
type SupplyColumns struct {
	TradeMargin     int `koanf:"trade_margin"`
	TransportMargin int `koanf:"transport_margin"`
	ImportTax       int `koanf:"import_tax"`
	IPI             int `koanf:"ipi"`
	ICMS            int `koanf:"icms"`
	OtherTaxes      int `koanf:"other_taxes"`
	// Taxes is the column compiled as "taxes less subsidies" by the product aggregates.
	Taxes int `koanf:"taxes"`
}

// DemandColumns are column indices into the final demand sheet.
type DemandColumns struct {
	Exports     []int `koanf:"exports"`
	Government  int   `koanf:"government"`
	NPISH       int   `koanf:"npish"`
	Households  int   `koanf:"households"`
	GFCF        int   `koanf:"gfcf"`
	StockChange int   `koanf:"stock_change"`
}

// ValueAddedRows are row indices into the value-added sheet.
type ValueAddedRows struct {
	Compensation     int   `koanf:"compensation"`
	OperatingSurplus int   `koanf:"operating_surplus"`
	TotalProduction  int   `koanf:"total_production"`
	OtherTaxes       []int `koanf:"other_taxes"`
}

// Layout is one table-size class.
type Layout struct {
	Class          string         `koanf:"class"`
	Products       int            `koanf:"products"`
	Sectors        int            `koanf:"sectors"`
	DemandCols     int            `koanf:"demand_cols"`
	SupplyCols     int            `koanf:"supply_cols"`
	ValueAddedRows int            `koanf:"value_added_rows"`
	TradeRows      Range          `koanf:"trade_rows"`
	TransportRows  Range          `koanf:"transport_rows"`
	Supply         SupplyColumns  `koanf:"supply"`
	Demand         DemandColumns  `koanf:"demand"`
	ValueAdded     ValueAddedRows `koanf:"value_added"`
}

// Validate checks that every index of l falls inside the table it points into and
// that the margin-bearing ranges are disjoint.
//
// Errors:
//   - ErrInvalidLayout, with the offending field in the message.
func (l Layout) Validate() error {
	fail := func(format string, args ...any) error {
		return layoutErrorf(opValidate, fmt.Errorf("%s: %s: %w", l.Class, fmt.Sprintf(format, args...), ErrInvalidLayout))
	}
	switch {
	case l.Products <= 0 || l.Sectors <= 0:
		return fail("products=%d sectors=%d", l.Products, l.Sectors)
	case l.DemandCols <= 0 || l.SupplyCols <= 0 || l.ValueAddedRows <= 0:
		return fail("demand_cols=%d supply_cols=%d value_added_rows=%d", l.DemandCols, l.SupplyCols, l.ValueAddedRows)
	}

	for name, r := range map[string]Range{"trade_rows": l.TradeRows, "transport_rows": l.TransportRows} {
		if r.First < 0 || r.Last < r.First || r.Last >= l.Products {
			return fail("%s [%d,%d] outside %d products", name, r.First, r.Last, l.Products)
		}
	}
	if l.TradeRows.First <= l.TransportRows.Last && l.TransportRows.First <= l.TradeRows.Last {
		return fail("trade_rows and transport_rows overlap")
	}

	s := l.Supply
	if err := distinctIn(l.SupplyCols, s.TradeMargin, s.TransportMargin, s.ImportTax, s.IPI, s.ICMS, s.OtherTaxes); err != nil {
		return fail("supply: %v", err)
	}
	if s.Taxes < 0 || s.Taxes >= l.SupplyCols {
		return fail("supply.taxes %d outside %d columns", s.Taxes, l.SupplyCols)
	}

	d := l.Demand
	if len(d.Exports) == 0 {
		return fail("demand.exports is empty")
	}
	cols := append(append([]int(nil), d.Exports...), d.Government, d.NPISH, d.Households, d.GFCF, d.StockChange)
	if err := distinctIn(l.DemandCols, cols...); err != nil {
		return fail("demand: %v", err)
	}

	v := l.ValueAdded
	rows := append([]int{v.Compensation, v.OperatingSurplus, v.TotalProduction}, v.OtherTaxes...)
	if err := distinctIn(l.ValueAddedRows, rows...); err != nil {
		return fail("value_added: %v", err)
	}

	return nil
}

// TradePartition marks the trade product rows as margin-bearing.
func (l Layout) TradePartition() (alloc.Partition, error) {
	return l.partition("trade", l.TradeRows)
}

// TransportPartition marks the transport product rows as margin-bearing.
func (l Layout) TransportPartition() (alloc.Partition, error) {
	return l.partition("transport", l.TransportRows)
}

func (l Layout) partition(name string, r Range) (alloc.Partition, error) {
	p, err := alloc.NewRangePartition(name, l.Products, r.First, r.Last)
	if err != nil {
		return alloc.Partition{}, layoutErrorf(opPartition, err)
	}

	return p, nil
}

// Uses is the width of the combined use table, sectors plus final demand.
func (l Layout) Uses() int { return l.Sectors + l.DemandCols }

// TableRows locates the rows of an assembled I-O table (see estimate.AssembleTable).
type TableRows struct {
	// NationalUse is the column-sum row of the sector block.
	NationalUse int
	// Imports, then ImportTax, IPI, ICMS and OtherTaxes follow NationalUse.
	Imports    int
	ImportTax  int
	IPI        int
	ICMS       int
	OtherTaxes int
	// TotalUses is national use plus every payment row.
	TotalUses int
	// ValueAdded is the first value-added row.
	ValueAdded int
	// Discrepancy is the last row.
	Discrepancy int
}

// Taxes returns the four product-tax rows, in table order.
func (r TableRows) Taxes() []int { return []int{r.ImportTax, r.IPI, r.ICMS, r.OtherTaxes} }

// GDPRows returns the row positions of the assembled I-O table.
func (l Layout) GDPRows() TableRows {
	s := l.Sectors

	return TableRows{
		NationalUse: s,
		Imports:     s + 1,
		ImportTax:   s + 2,
		IPI:         s + 3,
		ICMS:        s + 4,
		OtherTaxes:  s + 5,
		TotalUses:   s + 6,
		ValueAdded:  s + 7,
		Discrepancy: s + 7 + l.ValueAddedRows,
	}
}

// TableCols locates the columns of an assembled I-O table.
type TableCols struct {
	// IntermediateTotal follows the sector columns.
	IntermediateTotal int
	// FinalDemand is the first final demand column.
	FinalDemand int
	// FinalDemandTotal and Total close the row.
	FinalDemandTotal int
	Total            int
}

// GDPCols returns the column positions of the assembled I-O table.
func (l Layout) GDPCols() TableCols {
	s := l.Sectors

	return TableCols{
		IntermediateTotal: s,
		FinalDemand:       s + 1,
		FinalDemandTotal:  s + 1 + l.DemandCols,
		Total:             s + 2 + l.DemandCols,
	}
}

// distinctIn checks that every index is in [0, n) and none repeats.
func distinctIn(n int, idx ...int) error {
	seen := make(map[int]bool, len(idx))
	for _, i := range idx {
		if i < 0 || i >= n {
			return fmt.Errorf("index %d outside [0,%d)", i, n)
		}
		if seen[i] {
			return fmt.Errorf("index %d used twice", i)
		}
		seen[i] = true
	}

	return nil
}
