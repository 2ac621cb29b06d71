// Package creator drives the creation workflow: preset resolution,
// workspace and git initialization, plugin resolution, generation,
// dependency installation, hook execution, README emission, and the
// initial commit.
//
// The workflow is strictly sequential. Every external effect is awaited
// to completion before the next step starts, and no step begins before
// the previous one's side effects are durable.
package creator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kindling-cli/kindling/internal/config"
	"github.com/kindling-cli/kindling/internal/generator"
	"github.com/kindling-cli/kindling/internal/hooks"
	"github.com/kindling-cli/kindling/internal/interview"
	"github.com/kindling-cli/kindling/internal/output"
	"github.com/kindling-cli/kindling/internal/plugin"
	"github.com/kindling-cli/kindling/internal/pm"
	"github.com/kindling-cli/kindling/internal/preset"
	"github.com/kindling-cli/kindling/internal/vcs"
)

// PresetSource resolves presets by name and lists the available names.
type PresetSource interface {
	Resolve(ctx context.Context, name string, clone bool) (*preset.Preset, error)
	Names() []string
}

// Installer installs the dependencies declared in the manifest.
type Installer interface {
	Name() string
	Install(ctx context.Context) error
}

// GitClient covers the git operations the workflow performs.
type GitClient interface {
	Detected() bool
	Init(ctx context.Context) error
	AddAll(ctx context.Context) error
	Commit(ctx context.Context, message string) error
}

// PluginResolver turns a preset's plugin map into the invocation list.
type PluginResolver interface {
	ResolveAll(plugins *preset.PluginMap) ([]plugin.Resolved, error)
}

// Options is the flag surface of one creation run.
type Options struct {
	// Preset is a directly-supplied preset. When set, the interview and
	// the preset store are bypassed entirely.
	Preset *preset.Preset

	// PresetName resolves through the store: saved, built-in, or remote
	// ("owner/repo").
	PresetName string

	// Clone fetches remote presets via git clone instead of a single
	// file download.
	Clone bool

	// SkipGit disables git init and the initial commit.
	SkipGit bool

	// DryRun reports operations without mutating the filesystem.
	DryRun bool

	// Force overwrites conflicting files in the target directory.
	Force bool

	// PackageManager is the explicit CLI choice. Highest precedence.
	PackageManager string
}

// Context is the per-run state shared with collaborators. It is owned
// exclusively by one Creator for the duration of one Create call.
type Context struct {
	Name           string
	Dir            string
	PackageManager string
	Hooks          *hooks.Registry
}

// Creator executes one creation run.
type Creator struct {
	name string
	dir  string
	opts Options

	store    PresetSource
	prompter interview.Prompter
	registry *plugin.Registry
	resolver PluginResolver
	git      GitClient
	detector pm.Detector

	newInstaller func(dir, bin string) Installer
	installEnv   func() bool

	savedPM     string
	interviewPM string

	hooks       *hooks.Registry
	subscribers []func(Event)
	warnings    []string
}

// New wires a creator with the real collaborators. name is the project
// name, dir the target directory.
func New(name, dir string, opts Options) *Creator {
	saved, err := config.SavedPresets()
	if err != nil {
		output.Warn(fmt.Sprintf("Ignoring saved presets: %v", err))
		saved = nil
	}

	registry := plugin.Builtin()
	prompter := interview.TerminalPrompter{}

	return &Creator{
		name:     name,
		dir:      dir,
		opts:     opts,
		store:    preset.NewStore(saved, preset.NewGitHubLoader()),
		prompter: prompter,
		registry: registry,
		resolver: plugin.NewResolver(registry, prompter),
		git:      vcs.NewClient(dir),
		detector: pm.NewHostDetector(),
		newInstaller: func(dir, bin string) Installer {
			return pm.NewManager(dir, bin)
		},
		installEnv: installSuppressed,
		savedPM:    config.PackageManager(),
		hooks:      hooks.New(),
	}
}

// installSuppressed reports whether the test/debug environment signal
// disables real dependency installation.
func installSuppressed() bool {
	v := os.Getenv("KINDLING_SKIP_INSTALL")
	return v == "1" || v == "true"
}

// Create runs the workflow. Steps execute strictly in order; all fatal
// errors unwind to the caller. The one designed partial-failure point is
// the initial commit, which degrades to a warning.
func (c *Creator) Create(ctx context.Context) error {
	// Step 1: preset acquisition. Validation failures abort before any
	// filesystem mutation.
	p, err := c.acquirePreset(ctx)
	if err != nil {
		return err
	}

	// Step 2: package manager selection. Pure precedence, no side effect.
	pmChoice := c.choosePackageManager()

	cctx := &Context{Name: c.name, Dir: c.dir, PackageManager: pmChoice, Hooks: c.hooks}
	output.Info(fmt.Sprintf("Creating project %s in %s", cctx.Name, cctx.Dir))

	// Step 3: workspace initialization — the first filesystem mutation.
	manifest := generator.NewManifest(c.name)
	if !c.opts.DryRun {
		if err := c.writeManifest(manifest); err != nil {
			return err
		}
	}

	// Step 4: optional git init. Failure here is fatal.
	gitInited := false
	if !c.opts.SkipGit && !c.opts.DryRun && c.git.Detected() {
		c.publish(Event{Name: EventGitInit})
		if err := c.git.Init(ctx); err != nil {
			return err
		}
		gitInited = true
	}

	// Step 5: plugin resolution and generator invocation.
	resolved, err := c.resolver.ResolveAll(p.Plugins)
	if err != nil {
		return err
	}

	invocations := make([]generator.Invocation, 0, len(resolved))
	for _, r := range resolved {
		invocations = append(invocations, generator.Invocation{
			ID:      r.ID,
			Apply:   r.Apply,
			Options: r.Options,
		})
	}

	gen := generator.New(c.dir, manifest, invocations, c.hooks, generator.Opts{
		DryRun: c.opts.DryRun,
		Force:  c.opts.Force,
	})
	manifest, err = gen.Invoke(ctx)
	if err != nil {
		return err
	}

	// Step 6: dependency installation, skipped under the test/debug
	// environment signal.
	c.publish(Event{Name: EventPluginsInstall})
	if !c.opts.DryRun && !c.installEnv() {
		installer := c.newInstaller(c.dir, pmChoice)
		if err := installer.Install(ctx); err != nil {
			return err
		}
	}

	if !c.opts.DryRun {
		// Step 7: hooks, in insertion order, fail-fast.
		if err := c.hooks.RunAll(ctx); err != nil {
			return err
		}

		// Step 8: README emission.
		if err := c.writeREADME(manifest, pmChoice); err != nil {
			return err
		}
	}

	// Step 9: initial commit — the one tolerated partial failure.
	if gitInited {
		if err := c.commitAll(ctx); err != nil {
			c.warn(fmt.Sprintf("Initial commit failed: %v — commit manually once git is configured", err))
		}
	}

	// Step 10: completion report.
	c.report(pmChoice)
	return nil
}

// acquirePreset returns a validated deep copy of the preset for this
// run: supplied directly, resolved by name, or chosen interactively.
func (c *Creator) acquirePreset(ctx context.Context) (*preset.Preset, error) {
	var (
		p   *preset.Preset
		err error
	)

	switch {
	case c.opts.Preset != nil:
		p = c.opts.Preset
	case c.opts.PresetName != "":
		p, err = c.store.Resolve(ctx, c.opts.PresetName, c.opts.Clone)
	default:
		p, err = c.runInterview(ctx)
	}
	if err != nil {
		return nil, err
	}

	// Defensive copy: plugins mutate their options in memory, and a
	// saved or remote original must never be corrupted.
	copied := p.Clone()
	if err := preset.Validate(copied); err != nil {
		return nil, err
	}
	return copied, nil
}

// choosePackageManager applies the precedence: explicit flag, interview
// answer (only asked when no flag and nothing saved), saved config,
// environment detection.
func (c *Creator) choosePackageManager() string {
	if c.opts.PackageManager != "" {
		return c.opts.PackageManager
	}
	if c.interviewPM != "" {
		return c.interviewPM
	}
	return pm.Choose("", c.savedPM, c.detector)
}

func (c *Creator) writeManifest(m *generator.Manifest) error {
	data, err := m.JSON()
	if err != nil {
		return err
	}

	op := &generator.WriteFileOp{
		Path:    filepath.Join(c.dir, "package.json"),
		Content: data,
		Mode:    0644,
	}
	ctx := context.Background()
	if err := op.Validate(ctx, c.opts.Force); err != nil {
		return err
	}
	return op.Execute(ctx)
}

func (c *Creator) commitAll(ctx context.Context) error {
	if err := c.git.AddAll(ctx); err != nil {
		return err
	}
	return c.git.Commit(ctx, "init")
}

func (c *Creator) warn(msg string) {
	c.warnings = append(c.warnings, msg)
}

func (c *Creator) report(pmChoice string) {
	output.Success(fmt.Sprintf("Created project %s", c.name))
	for _, w := range c.warnings {
		output.Warn(w)
	}
	output.Info("Next steps:")
	output.Step(fmt.Sprintf("cd %s", c.name))
	if c.installEnv() || c.opts.DryRun {
		output.Step(fmt.Sprintf("%s install", pmChoice))
	}
	output.Step(fmt.Sprintf("%s run serve", pmChoice))
}
