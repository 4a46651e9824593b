package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status <project> <session-id>",
	Short: "Show the status of a role session",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Bad configuration: %v\n", err)
			os.Exit(1)
		}

		vendor, _, err := buildVendor(cmd.Context(), cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to wire vending stack: %v\n", err)
			os.Exit(1)
		}

		view, err := vendor.GetStatus(cmd.Context(), args[0], args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status lookup failed: %v\n", err)
			os.Exit(1)
		}

		out, _ := json.MarshalIndent(view, "", "  ")
		fmt.Println(string(out))
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
