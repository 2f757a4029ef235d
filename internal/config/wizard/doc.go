// Package wizard provides the interactive `labctl init` flow.
//
// RunWizard asks for the director site coordinates and the lab to deploy
// using charmbracelet/huh forms. BuildSettings turns the answers into
// config.Settings and WriteSettings stores them as labctl.yaml. The API key
// is never written; it is read from IBMCLOUD_API_KEY at run time.
package wizard
