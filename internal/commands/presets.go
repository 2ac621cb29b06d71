package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kindling-cli/kindling/internal/config"
	"github.com/kindling-cli/kindling/internal/output"
	"github.com/kindling-cli/kindling/internal/preset"
)

// PresetsCmd creates and returns the 'presets' command listing every
// resolvable preset.
func PresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			saved, err := config.SavedPresets()
			if err != nil {
				output.Warn(fmt.Sprintf("Ignoring saved presets: %v", err))
				saved = nil
			}

			builtins := preset.Builtins()
			store := preset.NewStore(saved, nil)

			output.Info("Available presets:")
			for _, name := range store.Names() {
				p, ok := builtins[name]
				origin := "built-in"
				if sp, savedOk := saved[name]; savedOk {
					p, ok = sp, true
					origin = "saved"
				}
				if !ok {
					continue
				}
				output.Step(fmt.Sprintf("%s (%s): %s", name, origin, strings.Join(p.Plugins.IDs(), ", ")))
			}
			return nil
		},
	}
}
