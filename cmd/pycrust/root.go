// Package main provides the entry point for the pycrust CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for pycrust.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pycrust",
		Short: "Evaluate planetary interior models against observed gravity",
		Long: `pycrust ingests radial interior models of terrestrial bodies (Mars, Moon),
locates the base of an assumed lithosphere in each profile, and computes how
much of the observed degree-2 zonal gravity a hydrostatic interior beneath
that lithosphere would produce.

Observed gravity and topography enter as spherical-harmonic coefficient
files; the hydrostatic shape itself is computed by an external solver
process configured per body.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewEvaluateCmd())
	cmd.AddCommand(NewInspectCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
