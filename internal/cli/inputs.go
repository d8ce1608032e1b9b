// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/leontief/deflate"
	"github.com/katalvlaran/leontief/estimate"
	"github.com/katalvlaran/leontief/internal/logger"
	"github.com/katalvlaran/leontief/internal/workbook"
)

// readLimit caps the workbooks parsed at once.
const readLimit = 4

func (a *app) readCurrent(year int) (estimate.Tables, error) {
	uses, resources := a.cfg.CurrentTables(year)
	t, err := workbook.NewReader(a.layout).Read(uses, resources)
	if err != nil {
		return estimate.Tables{}, fmt.Errorf("year %d: %w", year, err)
	}

	return t, nil
}

func (a *app) readPrior(year int) (estimate.Tables, error) {
	uses, resources := a.cfg.PriorTables(year)
	t, err := workbook.NewReader(a.layout).Read(uses, resources)
	if err != nil {
		return estimate.Tables{}, fmt.Errorf("year %d at prior-year prices: %w", year, err)
	}

	return t, nil
}

// readYears loads the current tables of every year and, when withPrior is set, the
// prior-year tables of every year after the first.
func (a *app) readYears(ctx context.Context, years []int, withPrior bool) ([]deflate.YearInput, error) {
	out := make([]deflate.YearInput, len(years))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(readLimit)
	for i, y := range years {
		i, y := i, y
		out[i].Year = y
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t, err := a.readCurrent(y)
			if err != nil {
				return err
			}
			out[i].Current = t
			return nil
		})
		if !withPrior || i == 0 {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t, err := a.readPrior(y)
			if err != nil {
				return err
			}
			out[i].Prior = &t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	a.log.Info(ctx, "tables read", logger.Int("years", len(years)), logger.Any("prior", withPrior))

	return out, nil
}
