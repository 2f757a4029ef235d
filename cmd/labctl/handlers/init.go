package handlers

import (
	"context"
	"fmt"

	"github.com/IBM/vmware-l4-automation/internal/config"
	"github.com/IBM/vmware-l4-automation/internal/config/wizard"
)

// Factory function variables for init - can be replaced in tests.
var (
	wizardFileExists       = wizard.FileExists
	wizardConfirmOverwrite = wizard.ConfirmOverwrite
	wizardRunWizard        = wizard.RunWizard
	wizardBuildSettings    = wizard.BuildSettings
	wizardWriteSettings    = wizard.WriteSettings
)

// Init runs the settings wizard and writes the result to outputPath.
func Init(ctx context.Context, outputPath string) error {
	if wizardFileExists(outputPath) {
		ok, err := wizardConfirmOverwrite(outputPath)
		if err != nil {
			return fmt.Errorf("failed to confirm overwrite: %w", err)
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	printWelcome()

	result, err := wizardRunWizard(ctx, config.DefaultRegistry())
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	settings, err := wizardBuildSettings(result)
	if err != nil {
		return fmt.Errorf("invalid answers: %w", err)
	}

	if err := wizardWriteSettings(settings, outputPath); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	printInitSuccess(outputPath, settings)
	return nil
}

func printWelcome() {
	fmt.Println()
	fmt.Println("labctl - VCF as a Service labs")
	fmt.Println("==============================")
	fmt.Println()
	fmt.Println("This wizard records the director site and lab to deploy.")
	fmt.Println("Your API key is not stored; export IBMCLOUD_API_KEY instead.")
	fmt.Println()
}

func printInitSuccess(outputPath string, s *config.Settings) {
	fmt.Println()
	fmt.Println("Settings saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Summary")
	fmt.Println("-------")
	fmt.Printf("  Region:   %s\n", s.Region)
	fmt.Printf("  Site:     %s\n", s.Site)
	fmt.Printf("  VDC:      %s\n", s.VDC)
	fmt.Printf("  Lab:      %s\n", s.Lab)
	if s.ResourceGroup != "" {
		fmt.Printf("  Resource group: %s\n", s.ResourceGroup)
	}
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Println("  1. Set your IBM Cloud API key:")
	fmt.Println("     export IBMCLOUD_API_KEY=<your-key>")
	fmt.Println()
	fmt.Println("  2. Preview the changes:")
	fmt.Printf("     labctl plan --config %s\n", outputPath)
	fmt.Println()
	fmt.Println("  3. Deploy the lab:")
	fmt.Printf("     labctl apply --config %s\n", outputPath)
	fmt.Println()
}
