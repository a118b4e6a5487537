// Package main provides the command-line entry point for running smpl
// models, in the same spirit as akita's own cmd packages: a thin cobra
// wrapper meant to be copied and extended per model, not a generic
// simulation runner.
package main

import (
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

var rootCmd = &cobra.Command{
	Use:   "smpl",
	Short: "smpl runs discrete-event simulation models built on the kernel package.",
	Long: `smpl runs discrete-event simulation models built on the kernel ` +
		`package. The built-in "run" subcommand drives the single-server ` +
		`queue tutorial model under cmd/smpl/examples; copy that model's ` +
		`shape to build your own.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
