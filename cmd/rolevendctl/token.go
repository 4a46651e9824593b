package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rolevend/rolevend/pkg/server/middleware"
)

// tokenCmd represents the token command
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage API bearer tokens",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'token' requires a subcommand (generate)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

// tokenGenerateCmd represents the token generate command
var tokenGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an API bearer token",
	Long: `Generate a signed bearer token for the API.

Requires the ROLEVEND_TOKEN_KEY environment variable, the same shared key
the server validates against.

Example:
  rolevendctl token generate --requester alice --department Engineering --mfa`,
	Run: func(cmd *cobra.Command, args []string) {
		tokenKey, ok := os.LookupEnv("ROLEVEND_TOKEN_KEY")
		if !ok || tokenKey == "" {
			fmt.Fprintln(os.Stderr, "ROLEVEND_TOKEN_KEY environment variable is required")
			os.Exit(1)
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Bad configuration: %v\n", err)
			os.Exit(1)
		}

		requesterFlag, _ := cmd.Flags().GetString("requester")
		department, _ := cmd.Flags().GetString("department")
		mfa, _ := cmd.Flags().GetBool("mfa")

		authn := middleware.NewAuthenticator([]byte(tokenKey))
		token, err := authn.IssueToken(
			requesterID(requesterFlag),
			department,
			mfa,
			time.Duration(cfg.TokenTTL)*time.Second,
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to sign token: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(token)
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenGenerateCmd)

	tokenGenerateCmd.Flags().String("requester", "", "requester id (defaults to $USER)")
	tokenGenerateCmd.Flags().String("department", "", "requester department claim")
	tokenGenerateCmd.Flags().Bool("mfa", false, "mark the token as MFA-authenticated")
}
