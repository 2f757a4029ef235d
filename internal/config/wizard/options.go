package wizard

import (
	"slices"

	"github.com/charmbracelet/huh"
)

// RegionOption is an IBM Cloud region hosting VCF as a Service.
type RegionOption struct {
	Value       string
	Label       string
	Description string
}

// Regions lists the regions offered in the wizard.
var Regions = []RegionOption{
	{Value: "us-south", Label: "us-south", Description: "Dallas, USA"},
	{Value: "us-east", Label: "us-east", Description: "Washington DC, USA"},
	{Value: "ca-tor", Label: "ca-tor", Description: "Toronto, Canada"},
	{Value: "eu-de", Label: "eu-de", Description: "Frankfurt, Germany"},
	{Value: "eu-gb", Label: "eu-gb", Description: "London, United Kingdom"},
	{Value: "jp-tok", Label: "jp-tok", Description: "Tokyo, Japan"},
	{Value: "au-syd", Label: "au-syd", Description: "Sydney, Australia"},
}

// RegionsToOptions converts Regions to huh select options.
func RegionsToOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(Regions))
	for i, r := range Regions {
		opts[i] = huh.NewOption(r.Label+" - "+r.Description, r.Value)
	}
	return opts
}

// IsKnownRegion reports whether region is one of Regions.
func IsKnownRegion(region string) bool {
	return slices.ContainsFunc(Regions, func(r RegionOption) bool { return r.Value == region })
}

// LabsToOptions converts lab names to huh select options.
func LabsToOptions(names []string) []huh.Option[string] {
	opts := make([]huh.Option[string], len(names))
	for i, name := range names {
		opts[i] = huh.NewOption(name, name)
	}
	return opts
}
