package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rolevend/rolevend/pkg/model"
)

// requestCmd represents the request command
var requestCmd = &cobra.Command{
	Use:   "request <project>",
	Short: "Request a temporary role and print credentials",
	Long: `Request a temporary role for a project.

The session is provisioned, activated and, unless --no-credentials is set,
immediately exchanged for credentials printed in the chosen output format.

Example:
  rolevendctl request data-pipeline --tier developer --duration 4 \
      --justification "debugging ingest failures" --output env`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runRequest(cmd, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Request failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(requestCmd)

	requestCmd.Flags().String("tier", model.TierReadOnly.String(), "permission tier (read-only, developer, admin, break-glass)")
	requestCmd.Flags().IntP("duration", "d", 1, "session duration in hours")
	requestCmd.Flags().StringP("justification", "j", "", "reason for the request (required)")
	requestCmd.Flags().String("requester", "", "requester id (defaults to $USER)")
	requestCmd.Flags().String("source-address", "", "request source IP, for network-restricted deployments")
	requestCmd.Flags().Bool("mfa", false, "mark the request as MFA-authenticated")
	requestCmd.Flags().StringP("output", "o", "env", "credential output format: env, aws-config or json")
	requestCmd.Flags().String("profile", "temp-role", "profile name for aws-config output")
	requestCmd.Flags().String("session-name", "", "assumed-role session name")
	requestCmd.Flags().Bool("no-credentials", false, "provision the session without issuing credentials")
	_ = requestCmd.MarkFlagRequired("justification")
}

func runRequest(cmd *cobra.Command, project string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	tierName, _ := cmd.Flags().GetString("tier")
	tier, err := model.PermissionTierString(tierName)
	if err != nil {
		return err
	}

	duration, _ := cmd.Flags().GetInt("duration")
	justification, _ := cmd.Flags().GetString("justification")
	requesterFlag, _ := cmd.Flags().GetString("requester")

	req, err := model.NewRoleRequest(project, requesterID(requesterFlag), tier, duration, justification)
	if err != nil {
		return err
	}
	req.SourceAddress, _ = cmd.Flags().GetString("source-address")
	req.MFAUsed, _ = cmd.Flags().GetBool("mfa")

	vendor, _, err := buildVendor(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	session, err := vendor.RequestRole(cmd.Context(), req)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Session %s active (tier %s, expires %s)\n",
		session.SessionID, session.Tier, session.ExpiresAt)

	if noCreds, _ := cmd.Flags().GetBool("no-credentials"); noCreds {
		return nil
	}

	sessionName, _ := cmd.Flags().GetString("session-name")
	creds, err := vendor.IssueCredentials(cmd.Context(), session.ProjectID, session.SessionID, sessionName)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	switch output {
	case "env":
		fmt.Println(creds.ShellExports(cfg.Region))
	case "aws-config":
		profile, _ := cmd.Flags().GetString("profile")
		fmt.Println(creds.ConfigBlock(profile, cfg.Region))
	case "json":
		out, err := creds.JSON(cfg.Region)
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
	return nil
}
