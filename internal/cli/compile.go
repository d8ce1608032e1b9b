// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/leontief/estimate"
	"github.com/katalvlaran/leontief/internal/workbook"
)

func newCompileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile per-product aggregates across years",
		Long: `Reads the current-price tables of every year from first_year to last_year and
writes one product×year sheet per aggregate to Aggregates_<class>.xlsx.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			years := a.cfg.Years()
			if len(years) == 0 {
				return fmt.Errorf("%w: --first-year is required", ErrUsage)
			}
			inputs, err := a.readYears(ctx, years, false)
			if err != nil {
				return err
			}

			aggs := make([]estimate.ProductAggregates, len(inputs))
			for i, in := range inputs {
				if aggs[i], err = estimate.Aggregates(in.Current, a.layout); err != nil {
					return fmt.Errorf("year %d: %w", in.Year, err)
				}
			}
			c, err := estimate.CompileAggregates(years, aggs)
			if err != nil {
				return err
			}

			products := inputs[0].Current.Labels.Products
			sheets := make([]workbook.Sheet, len(c.Names))
			for k, name := range c.Names {
				sheets[k] = workbook.Sheet{Name: name, Matrix: c.Series[k], RowLabels: products, ColLabels: c.YearLabels()}
			}
			path, err := a.save(ctx, fmt.Sprintf("Aggregates_%s.xlsx", a.layout.Class), sheets)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "written %s (%d aggregates, %d years)\n", path, len(c.Names), len(years))
			return nil
		},
	}
	cmd.Flags().Int("first-year", 0, "first year")
	cmd.Flags().Int("last-year", 0, "last year (default: first-year)")

	return cmd
}
