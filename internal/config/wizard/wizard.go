package wizard

import (
	"context"
	"fmt"
	"strings"

	"github.com/IBM/vmware-l4-automation/internal/config"
)

// WizardResult holds the answers from the interactive wizard.
type WizardResult struct {
	Region        string
	Site          string
	VDC           string
	ResourceGroup string
	Lab           string
	LabsFile      string
}

// RunWizard runs the interactive wizard, offering the labs known to the
// registry. The context is used for cancellation support (e.g., Ctrl+C).
func RunWizard(ctx context.Context, registry *config.Registry) (*WizardResult, error) {
	result := &WizardResult{}

	if err := runSiteGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("director site: %w", err)
	}

	if err := runLabGroup(ctx, registry.Names(), result); err != nil {
		return nil, fmt.Errorf("lab: %w", err)
	}

	return result, nil
}

// BuildSettings converts wizard answers into settings. The API key is left
// empty.
func BuildSettings(result *WizardResult) (*config.Settings, error) {
	s := &config.Settings{
		Region:        strings.TrimSpace(result.Region),
		Site:          strings.TrimSpace(result.Site),
		VDC:           strings.TrimSpace(result.VDC),
		ResourceGroup: strings.TrimSpace(result.ResourceGroup),
		Lab:           strings.TrimSpace(result.Lab),
		LabsFile:      strings.TrimSpace(result.LabsFile),
	}

	if err := validateRequired(errSiteRequired)(s.Site); err != nil {
		return nil, err
	}
	if err := validateRequired(errVDCRequired)(s.VDC); err != nil {
		return nil, err
	}
	if err := validateLabName(s.Lab); err != nil {
		return nil, err
	}

	return s, nil
}
