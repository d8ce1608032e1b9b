// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/leontief/gras"
	"github.com/katalvlaran/leontief/internal/logger"
	"github.com/katalvlaran/leontief/internal/workbook"
	"github.com/katalvlaran/leontief/matrix"
)

// seriesSheet labels GRAS runs of the balance command in metrics.
const seriesSheet = "sheet"

func newBalanceCmd(a *app) *cobra.Command {
	var input, sheet string
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Balance a sheet onto its margins with GRAS",
		Long: `Reads a labelled sheet whose last column holds the row targets and whose last
row holds the column targets, balances the remaining block and writes it to
<input>_balanced.xlsx in the output directory.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if input == "" || sheet == "" {
				return fmt.Errorf("%w: --input and --sheet are required", ErrUsage)
			}
			s, err := workbook.ReadSheet(input, sheet)
			if err != nil {
				return err
			}
			core, rows, cols, err := splitMargins(s.Matrix)
			if err != nil {
				return fmt.Errorf("%s: %w", sheet, err)
			}

			res, err := gras.Balance(core, rows, cols, a.cfg.BalancerOptions()...)
			if err != nil {
				if errors.Is(err, gras.ErrNotConverged) {
					a.metrics.NotConverged(seriesSheet)
				}
				return fmt.Errorf("%s: %w", sheet, err)
			}
			a.metrics.Balanced(seriesSheet, res.Iterations)

			gotRows, err := matrix.RowSums(res.Matrix)
			if err != nil {
				return err
			}
			gotCols, err := matrix.ColSums(res.Matrix)
			if err != nil {
				return err
			}
			rowGap, _ := matrix.MaxAbsDiff(gotRows, rows)
			colGap, _ := matrix.MaxAbsDiff(gotCols, cols)
			a.log.Info(ctx, "sheet balanced",
				logger.String("sheet", sheet),
				logger.Int("iterations", res.Iterations),
				logger.Float64("row_gap", rowGap),
				logger.Float64("col_gap", colGap),
			)

			out := workbook.Sheet{
				Name:      sheet,
				Matrix:    res.Matrix,
				RowLabels: head(s.RowLabels, core.Rows()),
				ColLabels: head(s.ColLabels, core.Cols()),
			}
			name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + "_balanced.xlsx"
			path, err := a.save(ctx, name, []workbook.Sheet{out})
			if err != nil {
				return err
			}

			renderBalance(cmd.OutOrStdout(), sheet, res.Iterations, rowGap, colGap)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "written %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "workbook holding the sheet")
	cmd.Flags().StringVar(&sheet, "sheet", "", "sheet to balance")

	return cmd
}

// splitMargins separates the last column (row targets) and the last row (column
// targets) from the block they frame.
func splitMargins(m *matrix.Dense) (core *matrix.Dense, rows, cols []float64, err error) {
	r, c := m.Shape()
	if r < 2 || c < 2 {
		return nil, nil, nil, fmt.Errorf("%dx%d sheet has no block inside its margins: %w", r, c, ErrUsage)
	}
	if core, err = m.SliceRows(0, r-1); err != nil {
		return nil, nil, nil, err
	}
	if rows, err = core.Col(c - 1); err != nil {
		return nil, nil, nil, err
	}
	if core, err = core.SliceCols(0, c-1); err != nil {
		return nil, nil, nil, err
	}
	last, err := m.Row(r - 1)
	if err != nil {
		return nil, nil, nil, err
	}

	return core, rows, last[:c-1], nil
}

func head(labels []string, n int) []string {
	if len(labels) < n {
		return nil
	}
	return labels[:n]
}
