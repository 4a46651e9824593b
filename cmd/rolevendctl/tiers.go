package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rolevend/rolevend/pkg/model"
)

// tiersCmd represents the tiers command
var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "List the available permission tiers",
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "TIER\tMAX DURATION\tDESCRIPTION")
		for _, tier := range model.PermissionTierValues() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", tier, tier.MaxDuration(), tier.Description())
		}
		_ = w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(tiersCmd)
}
