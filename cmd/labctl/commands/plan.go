package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/IBM/vmware-l4-automation/cmd/labctl/handlers"
)

// Plan returns the command that shows what apply would do.
func Plan(v *viper.Viper, g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show the actions apply would take",
		Long: `Resolve the environment, probe the lab resources and print the
actions an apply would take. Nothing is created.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Plan(cmd.Context(), v, g.configPath)
		},
	}
}
