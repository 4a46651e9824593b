package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rolevend/rolevend/pkg/model"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List a requester's role sessions",
	Long: `List a requester's role sessions, newest first.

Example:
  rolevendctl list --status active`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Bad configuration: %v\n", err)
			os.Exit(1)
		}

		var statusFilter *model.SessionStatus
		if raw, _ := cmd.Flags().GetString("status"); raw != "" {
			status, err := model.SessionStatusString(raw)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Unknown status %q\n", raw)
				os.Exit(1)
			}
			statusFilter = &status
		}

		vendor, _, err := buildVendor(cmd.Context(), cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to wire vending stack: %v\n", err)
			os.Exit(1)
		}

		requesterFlag, _ := cmd.Flags().GetString("requester")
		views, err := vendor.ListSessions(cmd.Context(), requesterID(requesterFlag), statusFilter)
		if err != nil {
			fmt.Fprintf(os.Stderr, "List failed: %v\n", err)
			os.Exit(1)
		}

		out, _ := json.MarshalIndent(views, "", "  ")
		fmt.Println(string(out))
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().String("requester", "", "requester id (defaults to $USER)")
	listCmd.Flags().String("status", "", "filter by status (pending, active, expired, revoked, failed)")
}
