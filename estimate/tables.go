// SPDX-License-Identifier: MIT

package estimate

import (
	"fmt"

	"github.com/katalvlaran/leontief/layout"
	"github.com/katalvlaran/leontief/matrix"
)

// Tables are the TRU sheets of one year at one valuation.
type Tables struct {
	// Intermediate is intermediate consumption at purchaser prices, product×sector.
	Intermediate *matrix.Dense
	// FinalDemand is product×demand at purchaser prices.
	FinalDemand *matrix.Dense
	// ValueAdded is value-added row×sector. Only Estimate needs it.
	ValueAdded *matrix.Dense
	// Supply holds the margin and tax columns, product×supply.
	Supply *matrix.Dense
	// Production is the make table, product×sector.
	Production *matrix.Dense
	// Imports is the product×1 import vector.
	Imports *matrix.Dense

	Labels Labels
}

// Labels name the rows and columns of the sheets. Nil lists are generated.
type Labels struct {
	Products   []string
	Sectors    []string
	Demand     []string
	Supply     []string
	ValueAdded []string
}

// Validate checks every present sheet against l. ValueAdded may be nil.
func (t Tables) Validate(l layout.Layout) error {
	required := []struct {
		kind layout.Table
		m    *matrix.Dense
	}{
		{layout.Intermediate, t.Intermediate},
		{layout.FinalDemand, t.FinalDemand},
		{layout.Supply, t.Supply},
		{layout.Production, t.Production},
		{layout.Imports, t.Imports},
	}
	for _, r := range required {
		if r.m == nil {
			return fmt.Errorf("%s: %w", r.kind, ErrMissingTable)
		}
		if err := l.CheckShape(r.kind, r.m); err != nil {
			return err
		}
	}
	if t.ValueAdded != nil {
		if err := l.CheckShape(layout.ValueAdded, t.ValueAdded); err != nil {
			return err
		}
	}

	return nil
}

// resolve fills nil label lists with generated names and checks the others.
func (lb Labels) resolve(l layout.Layout) (Labels, error) {
	var err error
	out := lb
	if out.Products, err = labelsOr(lb.Products, "products", "P", l.Products); err != nil {
		return Labels{}, err
	}
	if out.Sectors, err = labelsOr(lb.Sectors, "sectors", "S", l.Sectors); err != nil {
		return Labels{}, err
	}
	if out.Demand, err = labelsOr(lb.Demand, "demand", "D", l.DemandCols); err != nil {
		return Labels{}, err
	}
	if out.Supply, err = labelsOr(lb.Supply, "supply", "O", l.SupplyCols); err != nil {
		return Labels{}, err
	}
	if out.ValueAdded, err = labelsOr(lb.ValueAdded, "value added", "VA", l.ValueAddedRows); err != nil {
		return Labels{}, err
	}

	return out, nil
}

func labelsOr(given []string, what, prefix string, n int) ([]string, error) {
	if given == nil {
		out := make([]string, n)
		for i := range out {
			out[i] = fmt.Sprintf("%s%d", prefix, i+1)
		}
		return out, nil
	}
	if len(given) != n {
		return nil, fmt.Errorf("%s: %d labels for %d entries: %w", what, len(given), n, ErrLabels)
	}

	return append([]string(nil), given...), nil
}
