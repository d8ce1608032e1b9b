// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/leontief/deflate"
	"github.com/katalvlaran/leontief/internal/workbook"
	"github.com/katalvlaran/leontief/matrix"
)

func newDeflateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deflate",
		Short: "Deflate a run of years to base-year prices",
		Long: `Reads every year from first_year to last_year at current prices and, after
the base year, at the previous year's prices; chains the GRAS-balanced deflators
and writes MIPs_Deflated_<class>.xlsx. Prints the per-year deflated totals.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			years := a.cfg.Years()
			if len(years) == 0 {
				return fmt.Errorf("%w: --first-year is required", ErrUsage)
			}
			inputs, err := a.readYears(ctx, years, true)
			if err != nil {
				return err
			}

			opts := []deflate.Option{
				deflate.WithLogger(a.log),
				deflate.WithObserver(a.metrics),
				deflate.WithBalancerOptions(a.cfg.BalancerOptions()...),
			}
			if a.cfg.Sequential {
				opts = append(opts, deflate.WithSequential())
			}
			p, err := deflate.New(a.layout, opts...)
			if err != nil {
				return err
			}
			series, err := p.Run(ctx, inputs)
			if err != nil {
				return err
			}

			sheets, err := deflateSheets(series)
			if err != nil {
				return err
			}
			path, err := a.save(ctx, fmt.Sprintf("MIPs_Deflated_%s.xlsx", a.layout.Class), sheets)
			if err != nil {
				return err
			}

			renderTotals(cmd.OutOrStdout(), series)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "written %s\n", path)
			return nil
		},
	}
	cmd.Flags().Int("first-year", 0, "base year")
	cmd.Flags().Int("last-year", 0, "last year (default: first-year)")

	return cmd
}

// deflateSheets writes, per year and valuation, both product-space matrices and the
// sector-space I-O table Z | Y, then the deflated Leontief inverse; a totals sheet
// closes the workbook.
func deflateSheets(s *deflate.Series) ([]workbook.Sheet, error) {
	lb := s.Labels
	uses := useLabels(lb.Sectors, lb.Demand)

	var sheets []workbook.Sheet
	for _, y := range s.Years {
		for _, v := range []struct {
			suffix string
			val    *deflate.Valuation
		}{
			{"", y.Current},
			{"PY", y.PriorYearObserved},
			{"PYAdj", y.PriorYearAdjusted},
			{"Defl", y.Deflated},
		} {
			mip, err := v.val.Sector.Transactions()
			if err != nil {
				return nil, fmt.Errorf("year %d: %w", y.Year, err)
			}
			sheets = append(sheets,
				workbook.Sheet{Name: fmt.Sprintf("%d_Cons%s", y.Year, v.suffix), Matrix: v.val.Consumption, RowLabels: lb.Products, ColLabels: uses},
				workbook.Sheet{Name: fmt.Sprintf("%d_Prod%s", y.Year, v.suffix), Matrix: v.val.Production, RowLabels: lb.Sectors, ColLabels: lb.Products},
				workbook.Sheet{Name: fmt.Sprintf("%d_MIP%s", y.Year, v.suffix), Matrix: mip, RowLabels: lb.Sectors, ColLabels: uses},
			)
		}
		sheets = append(sheets, workbook.Sheet{
			Name: fmt.Sprintf("%d_L", y.Year), Matrix: y.Deflated.Sector.L, RowLabels: lb.Sectors, ColLabels: lb.Sectors,
		})
	}

	totals := s.Totals()
	m, err := matrix.NewDense(len(totals), len(totalsHeader))
	if err != nil {
		return nil, err
	}
	years := make([]string, len(totals))
	for i, t := range totals {
		years[i] = fmt.Sprint(t.Year)
		for j, v := range append(totalsRow(t), s.Years[i].Index.Aggregate) {
			if err = m.Set(i, j, v); err != nil {
				return nil, err
			}
		}
	}

	return append(sheets, workbook.Sheet{Name: "Totals", Matrix: m, RowLabels: years, ColLabels: totalsHeader}), nil
}

var totalsHeader = []string{"Production", "Consumption", "Sector output", "Product output", "Demand", "Aggregate", "Aggregate index"}

func totalsRow(t deflate.Totals) []float64 {
	return []float64{t.Production, t.Consumption, t.SectorOutput, t.ProductOutput, t.Demand, t.Aggregate}
}

// useLabels captions the sector and demand columns together, or leaves them blank
// unless both are known.
func useLabels(sectors, demand []string) []string {
	if sectors == nil || demand == nil {
		return nil
	}
	return append(append([]string(nil), sectors...), demand...)
}
