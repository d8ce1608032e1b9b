// SPDX-License-Identifier: MIT

package layout

import (
	"fmt"
	"sort"
)

// Common dimensions of the published tables.
const (
	DefaultDemandCols     = 6
	DefaultSupplyCols     = 7
	DefaultValueAddedRows = 14
)

// ClassRetropolated is the 107×51 class of the retropolated series, published in a
// narrower sheet format.
const ClassRetropolated = "51"

var presets = map[string]Layout{
	"12": standard("12", 12, 12, Range{5, 5}, Range{6, 6}),
	"20": standard("20", 20, 20, Range{6, 6}, Range{7, 7}),
	ClassRetropolated: retropolated(),
	"68": standard("68", 128, 68, Range{92, 93}, Range{94, 97}),
}

func standard(class string, products, sectors int, trade, transport Range) Layout {
	return Layout{
		Class:          class,
		Products:       products,
		Sectors:        sectors,
		DemandCols:     DefaultDemandCols,
		SupplyCols:     DefaultSupplyCols,
		ValueAddedRows: DefaultValueAddedRows,
		TradeRows:      trade,
		TransportRows:  transport,
		Supply: SupplyColumns{
			TradeMargin:     1,
			TransportMargin: 2,
			ImportTax:       3,
			IPI:             4,
			ICMS:            5,
			OtherTaxes:      6,
			Taxes:           6,
		},
		Demand: DemandColumns{
			Exports:     []int{0},
			Government:  1,
			NPISH:       2,
			Households:  3,
			GFCF:        4,
			StockChange: 5,
		},
		ValueAdded: ValueAddedRows{
			Compensation:     1,
			OperatingSurplus: 7,
			TotalProduction:  DefaultValueAddedRows - 2,
			OtherTaxes:       []int{10, 11},
		},
	}
}

// retropolated is the 51-sector class: exports split in two columns, supply
// columns shifted left by one, a shorter value-added block.
func retropolated() Layout {
	l := standard(ClassRetropolated, 107, 51, Range{88, 88}, Range{89, 90})
	l.DemandCols = DefaultDemandCols + 1
	l.ValueAddedRows = 12
	l.Supply = SupplyColumns{
		TradeMargin:     0,
		TransportMargin: 1,
		ImportTax:       2,
		IPI:             3,
		ICMS:            4,
		OtherTaxes:      5,
		Taxes:           6,
	}
	l.Demand = DemandColumns{
		Exports:     []int{0, 1},
		Government:  2,
		NPISH:       3,
		Households:  4,
		GFCF:        5,
		StockChange: 6,
	}
	l.ValueAdded = ValueAddedRows{
		Compensation:     1,
		OperatingSurplus: 7,
		TotalProduction:  10,
		OtherTaxes:       []int{8, 9},
	}

	return l
}

// Preset returns a copy of the named table-size class.
func Preset(class string) (Layout, error) {
	l, ok := presets[class]
	if !ok {
		return Layout{}, layoutErrorf(opPreset, fmt.Errorf("%q (known: %v): %w", class, Classes(), ErrUnknownClass))
	}
	l.Demand.Exports = append([]int(nil), l.Demand.Exports...)
	l.ValueAdded.OtherTaxes = append([]int(nil), l.ValueAdded.OtherTaxes...)

	return l, nil
}

// Classes lists the preset names in ascending order.
func Classes() []string {
	out := make([]string, 0, len(presets))
	for k := range presets {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) < len(out[j])
		}
		return out[i] < out[j]
	})

	return out
}
