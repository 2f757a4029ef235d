// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/IBM/vmware-l4-automation/internal/config"
)

// globalFlags are shared by every command that talks to IBM Cloud.
type globalFlags struct {
	configPath string
}

// settingFlags maps persistent flags onto settings keys.
var settingFlags = map[string]string{
	"api-key":        config.KeyAPIKey,
	"region":         config.KeyRegion,
	"site":           config.KeySite,
	"vdc":            config.KeyVDC,
	"resource-group": config.KeyResourceGroup,
	"lab":            config.KeyLab,
	"labs-file":      config.KeyLabsFile,
	"log-level":      config.KeyLogLevel,
	"log-format":     config.KeyLogFormat,
}

// Root returns the root command for the labctl CLI.
//
// Settings resolve in order: flags, LABCTL_* environment variables
// (IBMCLOUD_API_KEY for the key), labctl.yaml, defaults.
func Root() *cobra.Command {
	v := config.NewViper()
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "labctl",
		Short:         "Provision VCF as a Service lab environments on IBM Cloud",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&g.configPath, "config", "c", "", "Path to settings file (default: labctl.yaml)")
	pf.String("api-key", "", "IBM Cloud API key (default: $IBMCLOUD_API_KEY)")
	pf.StringP("region", "r", "", "IBM Cloud region of the director site")
	pf.StringP("site", "s", "", "Director site name")
	pf.StringP("vdc", "v", "", "Virtual data center name")
	pf.String("resource-group", "", "Resource group ID for the Schematics workspace")
	pf.String("lab", config.DefaultLab, "Lab to deploy")
	pf.String("labs-file", "", "YAML file with additional lab definitions")
	pf.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	pf.String("log-format", "auto", "Log format (auto, console, json)")
	bindFlags(v, pf)

	cmd.AddCommand(Init())
	cmd.AddCommand(Plan(v, g))
	cmd.AddCommand(Apply(v, g))
	cmd.AddCommand(Doctor(v, g))
	cmd.AddCommand(Version())

	return cmd
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) {
	for name, key := range settingFlags {
		_ = v.BindPFlag(key, fs.Lookup(name))
	}
}
