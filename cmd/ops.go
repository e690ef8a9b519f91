package main

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/Troublor/erebus-infoflow/analysis/info_flow"
)

var opsCmd = &cobra.Command{
	Use:   "ops",
	Short: "List the operations the engine understands",
	Run: func(cmd *cobra.Command, args []string) {
		for _, line := range opListing() {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
	},
}

func opListing() []string {
	return lo.Map(info_flow.AllOps(), func(id info_flow.OpID, _ int) string {
		shape, _ := id.Shape()
		widths := lo.Map(shape, func(w info_flow.ArgWidth, _ int) string {
			return fmt.Sprintf("u%d", w)
		})
		return fmt.Sprintf("%d\t%s(%s)", uint16(id), id, strings.Join(widths, ","))
	})
}
