package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rolevend/rolevend/pkg/config"
)

var rootCmd = &cobra.Command{
	Use:   "rolevendctl",
	Short: "Temporary cloud role vending service",
	Long: `rolevendctl manages the role vending service: it runs the API server,
migrates the database, and vends, inspects and revokes temporary role
sessions from the command line.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", config.DefaultConfigPath, "directory containing "+config.ConfigFileName)
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	dir, _ := cmd.Flags().GetString("config")
	return config.Load(dir)
}
