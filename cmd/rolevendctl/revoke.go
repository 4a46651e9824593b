package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// revokeCmd represents the revoke command
var revokeCmd = &cobra.Command{
	Use:   "revoke <project> <session-id>",
	Short: "Revoke an active role session",
	Long: `Revoke an active role session ahead of its expiry.

The session record transitions to REVOKED and the provisioned role is torn
down. Terminal sessions cannot be revoked.`,
	Args: cobra.ExactArgs(2),
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

		if err := vendor.Revoke(cmd.Context(), args[0], args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Revoke failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Session %s revoked\n", args[1])
	},
}

func init() {
	rootCmd.AddCommand(revokeCmd)
}
