package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/IBM/vmware-l4-automation/cmd/labctl/handlers"
)

// Apply returns the command for deploying or converging a lab.
//
// Optional flags:
//
//	--task-timeout: Deadline for all asynchronous tasks (default: $LABCTL_TIMEOUT_TASK_WAIT or 30m)
//	--poll-interval: Task polling interval (default: $LABCTL_TASK_POLL_INTERVAL or 1s)
//	--tfvars-out: Write the workspace variables to this file
//	--metrics-textfile: Write run metrics in Prometheus text format
//	--verify-sources: Check catalog item sources in COS first
//
// Environment variables:
//
//	IBMCLOUD_API_KEY: IBM Cloud API key (required unless --api-key is set)
func Apply(v *viper.Viper, g *globalFlags) *cobra.Command {
	var opts handlers.ApplyOptions

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Create the missing lab resources",
		Long: `Create or converge the lab environment.

This command resolves the director site and VDC, probes which lab
resources already exist, and creates only what is missing: the image
catalog and its items, the Schematics workspace and the public IP
allocation. Running it again after a partial failure picks up where the
previous run stopped.

The command exits non-zero when any action failed.

Examples:
  # Deploy the default lab using labctl.yaml
  labctl apply

  # Deploy to an explicit site
  labctl apply -r us-south -s my-site -v my-vdc

  # Keep the Terraform variables for a local run
  labctl apply --tfvars-out lab.auto.tfvars`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Apply(cmd.Context(), v, g.configPath, opts)
		},
	}

	cmd.Flags().DurationVar(&opts.TaskTimeout, "task-timeout", 0, "Deadline for all asynchronous tasks of the run")
	cmd.Flags().DurationVar(&opts.PollInterval, "poll-interval", 0, "Interval between task status polls")
	cmd.Flags().StringVar(&opts.TFVarsOut, "tfvars-out", "", "Write workspace variables to this file (0600)")
	cmd.Flags().StringVar(&opts.MetricsTextfile, "metrics-textfile", "", "Write run metrics to this file")
	cmd.Flags().BoolVar(&opts.VerifySources, "verify-sources", false, "Verify catalog item sources before applying")

	return cmd
}
