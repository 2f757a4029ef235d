package wizard

import (
	"context"
	"regexp"
	"strings"

	"github.com/charmbracelet/huh"
)

var labNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// runSiteGroup prompts for the region, director site and VDC.
func runSiteGroup(ctx context.Context, result *WizardResult) error {
	if result.Region == "" {
		result.Region = Regions[0].Value
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Region").
				Description("IBM Cloud region of the director site").
				Options(RegionsToOptions()...).
				Value(&result.Region),
			huh.NewInput().
				Title("Director Site").
				Description("Name of the VCF as a Service director site").
				Placeholder("my-site").
				Value(&result.Site).
				Validate(validateRequired(errSiteRequired)),
			huh.NewInput().
				Title("Virtual Data Center").
				Description("Name of the VDC on that site").
				Placeholder("my-vdc").
				Value(&result.VDC).
				Validate(validateRequired(errVDCRequired)),
			huh.NewInput().
				Title("Resource Group (Optional)").
				Description("Resource group ID for the Schematics workspace. Leave empty for the account default.").
				Value(&result.ResourceGroup),
		).Title("Director Site"),
	).RunWithContext(ctx)
}

// runLabGroup prompts for the lab to deploy and an optional labs file.
func runLabGroup(ctx context.Context, labs []string, result *WizardResult) error {
	if result.Lab == "" && len(labs) > 0 {
		result.Lab = labs[0]
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Lab").
				Description("Lab to deploy").
				Options(LabsToOptions(labs)...).
				Value(&result.Lab),
			huh.NewInput().
				Title("Labs File (Optional)").
				Description("YAML file with additional lab definitions").
				Placeholder("labs.yaml").
				Value(&result.LabsFile),
		).Title("Lab"),
	).RunWithContext(ctx)
}

func validateRequired(errEmpty error) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errEmpty
		}
		return nil
	}
}

func validateLabName(name string) error {
	if name == "" {
		return errLabRequired
	}
	if !labNameRegex.MatchString(name) {
		return errLabInvalid
	}
	return nil
}
