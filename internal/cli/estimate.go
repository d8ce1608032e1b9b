// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/leontief/estimate"
	"github.com/katalvlaran/leontief/internal/workbook"
	"github.com/katalvlaran/leontief/matrix"
)

func newEstimateCmd(a *app) *cobra.Command {
	var year int
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the I-O table of one year",
		Long: `Strips the year's uses to basic prices, converts them to sector space and
assembles the I-O table. Writes MIP_<class>_<year>.xlsx with every intermediate
matrix and prints the GDP breakdown.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if year == 0 {
				year = a.cfg.FirstYear
			}
			if year == 0 {
				return fmt.Errorf("%w: --year or first_year is required", ErrUsage)
			}

			tables, err := a.readCurrent(year)
			if err != nil {
				return err
			}
			res, err := estimate.Estimate(ctx, tables, a.layout,
				estimate.WithLogger(a.log),
				estimate.WithObserver(a.metrics),
			)
			if err != nil {
				return fmt.Errorf("year %d: %w", year, err)
			}
			sheets, err := estimateSheets(res)
			if err != nil {
				return err
			}
			path, err := a.save(ctx, fmt.Sprintf("MIP_%s_%d.xlsx", a.layout.Class, year), sheets)
			if err != nil {
				return err
			}

			renderGDP(cmd.OutOrStdout(), year, res.GDP)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "written %s\n", path)
			return nil
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "year to estimate (default: first_year)")

	return cmd
}

// estimateSheets lays out every matrix of a single-year estimate.
func estimateSheets(res *estimate.Result) ([]workbook.Sheet, error) {
	lb := res.Labels
	uses := useLabels(lb.Sectors, lb.Demand)
	sheets := []workbook.Sheet{
		{Name: "MIP", Matrix: res.Table.Matrix, RowLabels: res.Table.RowLabels, ColLabels: res.Table.ColLabels},
	}
	productByUse := []struct {
		name string
		m    *matrix.Dense
	}{
		{"Uses", res.Uses},
		{"Basic", res.Basic},
		{"TradeMargin", res.TradeMargin.Matrix},
		{"TransportMargin", res.TransportMargin.Matrix},
		{"IPI", res.IPI},
		{"ICMS", res.ICMS},
		{"OtherTaxes", res.OtherTaxes},
		{"Imports", res.Imports},
		{"ImportTax", res.ImportTax},
		{"Alpha", res.Alpha},
	}
	for _, s := range productByUse {
		sheets = append(sheets, workbook.Sheet{Name: s.name, Matrix: s.m, RowLabels: lb.Products, ColLabels: uses})
	}

	conv := res.Sector
	sheets = append(sheets,
		workbook.Sheet{Name: "Production", Matrix: res.Production, RowLabels: lb.Products, ColLabels: lb.Sectors},
		workbook.Sheet{Name: "D", Matrix: conv.D, RowLabels: lb.Sectors, ColLabels: lb.Products},
		workbook.Sheet{Name: "Bn", Matrix: conv.Bn, RowLabels: lb.Products, ColLabels: lb.Sectors},
		workbook.Sheet{Name: "A", Matrix: conv.A, RowLabels: lb.Sectors, ColLabels: lb.Sectors},
		workbook.Sheet{Name: "Z", Matrix: conv.Z, RowLabels: lb.Sectors, ColLabels: lb.Sectors},
		workbook.Sheet{Name: "L", Matrix: conv.L, RowLabels: lb.Sectors, ColLabels: lb.Sectors},
	)
	if conv.Bm != nil {
		sheets = append(sheets, workbook.Sheet{Name: "Bm", Matrix: conv.Bm, RowLabels: lb.Products, ColLabels: lb.Sectors})
	}
	if conv.Y != nil {
		sheets = append(sheets, workbook.Sheet{Name: "Y", Matrix: conv.Y, RowLabels: lb.Sectors, ColLabels: lb.Demand})
	}
	gdp, err := workbook.Column("GDP", "value", res.GDP.Values(), estimate.GDPLabels)
	if err != nil {
		return nil, err
	}

	return append(sheets, gdp), nil
}
