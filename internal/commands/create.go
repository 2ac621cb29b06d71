package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/kindling-cli/kindling/internal/creator"
)

// Valid npm package names: lowercase, starting alphanumeric, with dots,
// hyphens, and underscores allowed after.
var projectNameRe = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// CreateCmd creates and returns the 'create' command for scaffolding
// projects.
func CreateCmd() *cobra.Command {
	var (
		presetName     string
		clone          bool
		noGit          bool
		force          bool
		dryRun         bool
		packageManager string
		dir            string
	)

	cmd := &cobra.Command{
		Use:   "create [project-name]",
		Short: "Create a new project",
		Long: `Creates a new project scaffolded by plugins.

With no flags, an interactive interview picks the preset and features.
A preset can also be named directly, including a GitHub "owner/repo"
reference:

  kindling create myapp
  kindling create myapp --preset full
  kindling create myapp --preset someuser/some-preset --clone`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if !projectNameRe.MatchString(name) {
				return fmt.Errorf("invalid project name %q: must be lowercase and start with a letter or digit", name)
			}

			target := dir
			if target == "" {
				cwd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("resolving working directory: %w", err)
				}
				target = filepath.Join(cwd, name)
			}

			if !dryRun {
				if err := os.MkdirAll(target, 0755); err != nil {
					return fmt.Errorf("creating project directory: %w", err)
				}
			}

			c := creator.New(name, target, creator.Options{
				PresetName:     presetName,
				Clone:          clone,
				SkipGit:        noGit,
				Force:          force,
				DryRun:         dryRun,
				PackageManager: packageManager,
			})

			return c.Create(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&presetName, "preset", "p", "", "Skip prompts and use a saved, built-in, or remote preset")
	cmd.Flags().BoolVar(&clone, "clone", false, "Use git clone when fetching remote presets")
	cmd.Flags().BoolVar(&noGit, "no-git", false, "Skip git initialization")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite conflicting files in the target directory")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report the planned operations without writing anything")
	cmd.Flags().StringVarP(&packageManager, "package-manager", "m", "", "Package manager to use when installing dependencies")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Target directory (defaults to ./<project-name>)")

	return cmd
}
