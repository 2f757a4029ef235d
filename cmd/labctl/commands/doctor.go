package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/IBM/vmware-l4-automation/cmd/labctl/handlers"
)

// Doctor returns the command for diagnosing the environment.
//
// It resolves the director site and VDC and verifies that every catalog
// item source object exists in Cloud Object Storage.
func Doctor(v *viper.Viper, g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose settings, environment and image sources",
		Long: `Diagnose the labctl setup.

  - Validates settings and the lab definition
  - Resolves the director site, VDC and public IP
  - Checks every catalog item source in Cloud Object Storage

Set LABCTL_COS_ACCESS_KEY and LABCTL_COS_SECRET_KEY when the image bucket
is not public.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context(), v, g.configPath)
		},
	}
}
