package commands

import (
	"github.com/spf13/cobra"

	"github.com/IBM/vmware-l4-automation/cmd/labctl/handlers"
	"github.com/IBM/vmware-l4-automation/internal/config"
)

// Init returns the command for interactively creating labctl.yaml.
//
// Flags:
//
//	--output, -o: Path to output file (default "labctl.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a settings file",
		Long: `Interactively create a labctl settings file.

The wizard asks for the region, director site, VDC, resource group and
lab. The API key is never written to the file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", config.SettingsFileName, "Output file path")

	return cmd
}
