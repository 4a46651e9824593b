package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rolevend/rolevend/pkg/model"
	"github.com/rolevend/rolevend/pkg/policy"
)

// templateLoadCmd represents the template load command
var templateLoadCmd = &cobra.Command{
	Use:   "load <tier> <file>",
	Short: "Load a policy template for a tier",
	Long: `Load a policy template from a file and store it for a tier.

The document is structurally validated before it is stored; a broken
template is rejected rather than rendered against a live request later.

Example:
  rolevendctl template load developer policies/developer.json`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := loadTemplate(cmd, args[0], args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load template: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	templateCmd.AddCommand(templateLoadCmd)

	templateLoadCmd.Flags().String("name", "", "template display name (defaults to the file name)")
	templateLoadCmd.Flags().String("version", "", "template version label")
}

func loadTemplate(cmd *cobra.Command, tierName, filename string) error {
	tier, err := model.PermissionTierString(tierName)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	if _, err := policy.ParseDocument(string(content)); err != nil {
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

	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		name = filename
	}
	version, _ := cmd.Flags().GetString("version")

	tmpl := &model.PolicyTemplate{
		Tier:      tier,
		Name:      name,
		Content:   string(content),
		Variables: policy.Placeholders(string(content)),
		Version:   version,
	}
	if err := templates.PutTemplate(cmd.Context(), tmpl); err != nil {
		return err
	}

	fmt.Printf("Loaded template for tier %s from %s\n", tier, filename)
	return nil
}
