package main

import (
	"os"

	"github.com/kindling-cli/kindling/internal/commands"
	"github.com/kindling-cli/kindling/internal/output"
)

func main() {
	rootCmd := commands.RootCmd()

	rootCmd.AddCommand(commands.CreateCmd())
	rootCmd.AddCommand(commands.PresetsCmd())

	if err := rootCmd.Execute(); err != nil {
		output.Error(err.Error())
		os.Exit(1)
	}
}
