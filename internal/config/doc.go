// Package config holds the process-wide, read-only configuration: the lab
// registry, operator settings, and timeouts.
//
// A [Registry] is built once at start-up from the built-in lab definitions
// plus an optional YAML file and is passed explicitly to the components
// that need it. [Settings] are bound through viper from flags, environment
// and an optional labctl.yaml. [Timeouts] come from LABCTL_* environment
// variables.
package config
