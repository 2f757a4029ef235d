package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/IBM/vmware-l4-automation/internal/environment"
)

// Doctor checks that the configured environment can be resolved and that
// every catalog item source of the lab exists. Both checks always run.
func Doctor(ctx context.Context, v *viper.Viper, configPath string) error {
	rt, err := prepare(v, configPath)
	if err != nil {
		return err
	}

	fmt.Printf("Lab:    %s\n", rt.lab.Name)
	fmt.Printf("Region: %s\n\n", rt.settings.Region)

	env, _, resolveErr := rt.resolve(ctx)
	if resolveErr == nil {
		printEnvironment(env)
	} else {
		fmt.Printf("Environment: %v\n\n", resolveErr)
	}

	return errors.Join(resolveErr, rt.verifySources(ctx))
}

// printEnvironment prints the non-secret parts of env.
func printEnvironment(env *environment.Environment) {
	fmt.Println("Environment")
	fmt.Println("-----------")
	fmt.Printf("  Director site:  %s (%s)\n", env.SiteName, env.SiteID)
	fmt.Printf("  VDC:            %s (%s)\n", env.VDCName, env.VDCID)
	fmt.Printf("  Director URL:   %s\n", env.DirectorURL)
	fmt.Printf("  Organization:   %s\n", env.OrgName)
	fmt.Printf("  Resource group: %s\n", env.ResourceGroup)
	fmt.Printf("  Public IP:      %s\n", env.PublicIP)
	fmt.Println()
}
