package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rolevend/rolevend/pkg/model"
	"github.com/rolevend/rolevend/pkg/policy"
	"github.com/rolevend/rolevend/pkg/vending/store"
)

// templateShowCmd represents the template show command
var templateShowCmd = &cobra.Command{
	Use:   "show <tier>",
	Short: "Show the policy template for a tier",
	Long: `Show the policy template a tier currently renders with.

Prints the stored template when one has been loaded, otherwise the
compiled-in default for the tier.

Example:
  rolevendctl template show developer`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := showTemplate(cmd, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to show template: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	templateCmd.AddCommand(templateShowCmd)
}

func showTemplate(cmd *cobra.Command, tierName string) error {
	tier, err := model.PermissionTierString(tierName)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	_, templates, err := buildVendor(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	tmpl, err := templates.GetTemplate(cmd.Context(), tier)
	if err != nil {
		if !errors.Is(err, store.ErrTemplateNotFound) {
			return err
		}
		fallback, ok := policy.DefaultTemplate(tier)
		if !ok {
			return fmt.Errorf("no template for tier %s", tier)
		}
		tmpl = &fallback
		fmt.Fprintf(os.Stderr, "No stored template for tier %s, showing the compiled-in default\n", tier)
	}

	fmt.Fprintf(os.Stderr, "Tier: %s  Name: %s  Version: %s\n", tmpl.Tier, tmpl.Name, tmpl.Version)
	fmt.Println(tmpl.Content)
	return nil
}
