package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/rolevend/rolevend/pkg/server"
	"github.com/rolevend/rolevend/pkg/server/endpoints"
	"github.com/rolevend/rolevend/pkg/server/middleware"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the role vending API server",
	Long: `Run the role vending API server.

To run the server requires the environment variables ROLEVEND_TOKEN_KEY and
DATABASE_URL.

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Validate required environment variables first (fail fast)
		tokenKey, ok := os.LookupEnv("ROLEVEND_TOKEN_KEY")
		if !ok || tokenKey == "" {
			fmt.Fprintln(os.Stderr, "ROLEVEND_TOKEN_KEY environment variable is required")
			os.Exit(1)
		}
		if os.Getenv("DATABASE_URL") == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Bad configuration: %v\n", err)
			os.Exit(1)
		}
		if bind, _ := cmd.Flags().GetString("bind-address"); bind != "" {
			cfg.BindAddress = bind
		}
		if port, _ := cmd.Flags().GetInt("port"); port != 0 {
			cfg.Port = port
		}

		// Run migrations unless --no-migrate is set
		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Println("Running database migrations...")
			if err := runMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		vendor, templates, err := buildVendor(cmd.Context(), cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to wire vending stack: %v\n", err)
			os.Exit(1)
		}

		authn := middleware.NewAuthenticator([]byte(tokenKey))
		s := server.NewServer(vendor, templates, authn, cfg)
		endpoints.RegisterAll(s)

		log.Printf("Running server at http://%s:%d...\n", cfg.BindAddress, cfg.Port)
		log.Fatal(s.Start())
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().IntP("port", "p", 0, "server listen port (overrides config)")
	serverCmd.Flags().StringP("bind-address", "b", "", "server bind address (overrides config)")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}
