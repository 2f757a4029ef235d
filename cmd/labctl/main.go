// Package main is the entry point for the labctl CLI.
//
// labctl provisions VCF as a Service lab environments on IBM Cloud: an
// image catalog in Cloud Director, a Schematics workspace and a public IP
// allocation. Runs are idempotent and converge on the lab definition.
//
// Commands: init, plan, apply, doctor, version.
//
// For detailed usage information, run:
//
//	labctl --help
package main

import (
	"fmt"
	"os"

	"github.com/IBM/vmware-l4-automation/cmd/labctl/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
