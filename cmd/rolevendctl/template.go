package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// templateCmd represents the template command
var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage policy templates",
	Long:  `Manage the per-tier access policy templates.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'template' requires a subcommand (load, show, watch)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(templateCmd)
}
