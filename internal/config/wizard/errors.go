package wizard

import "errors"

// Validation errors for the interactive wizard.
var (
	errSiteRequired = errors.New("director site name is required")
	errVDCRequired  = errors.New("virtual data center name is required")
	errLabRequired  = errors.New("lab name is required")
	errLabInvalid   = errors.New("lab name must be lowercase alphanumeric with '-' or '_'")
)
