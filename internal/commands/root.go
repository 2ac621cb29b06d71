package commands

import (
	"github.com/spf13/cobra"

	kindling "github.com/kindling-cli/kindling"
	"github.com/kindling-cli/kindling/internal/config"
	"github.com/kindling-cli/kindling/internal/output"
)

// RootCmd creates and returns the root command for the Kindling CLI
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "kindling",
		Short: "Scaffold web projects from presets and plugins",
		Long: `Kindling scaffolds web application projects from composable plugins.

Pick a built-in preset, save your own, or pull one straight from a
GitHub repository, and Kindling will:
• Write the project manifest and initialize git
• Run every plugin's generator in order
• Install dependencies with npm, yarn, or pnpm
• Produce a README and the initial commit`,
		Version: kindling.Version,
		// Errors surface once, styled, at the top level.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
			config.Load()
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")

	return cmd
}
