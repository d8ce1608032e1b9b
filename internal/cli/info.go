// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/leontief/layout"
)

func newLayoutsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layouts",
		Short: "List the preset table-size classes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var ls []layout.Layout
			for _, c := range layout.Classes() {
				l, err := layout.Preset(c)
				if err != nil {
					return err
				}
				ls = append(ls, l)
			}
			renderLayouts(cmd.OutOrStdout(), ls)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "leontief v%s (%s)\n", Version, GitCommit)
		},
	}
}
