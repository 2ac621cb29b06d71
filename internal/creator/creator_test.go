package creator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kindling-cli/kindling/internal/generator"
	"github.com/kindling-cli/kindling/internal/hooks"
	"github.com/kindling-cli/kindling/internal/interview"
	"github.com/kindling-cli/kindling/internal/plugin"
	"github.com/kindling-cli/kindling/internal/preset"
)

type fakeStore struct {
	presets map[string]*preset.Preset
}

func (f *fakeStore) Resolve(ctx context.Context, name string, clone bool) (*preset.Preset, error) {
	if p, ok := f.presets[name]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q", preset.ErrPresetNotFound, name)
}

func (f *fakeStore) Names() []string {
	names := make([]string, 0, len(f.presets))
	for name := range f.presets {
		names = append(names, name)
	}
	return names
}

type fakeInstaller struct {
	bin   string
	calls int
	err   error
}

func (f *fakeInstaller) Name() string { return f.bin }

func (f *fakeInstaller) Install(ctx context.Context) error {
	f.calls++
	return f.err
}

type fakeGit struct {
	detected  bool
	inits     int
	adds      int
	commits   int
	initErr   error
	commitErr error
}

func (f *fakeGit) Detected() bool { return f.detected }

func (f *fakeGit) Init(ctx context.Context) error {
	f.inits++
	return f.initErr
}

func (f *fakeGit) AddAll(ctx context.Context) error {
	f.adds++
	return nil
}

func (f *fakeGit) Commit(ctx context.Context, message string) error {
	f.commits++
	return f.commitErr
}

type fakeDetector struct {
	yarn bool
	pnpm string
}

func (f fakeDetector) HasYarn() bool { return f.yarn }

func (f fakeDetector) PnpmVersion() (string, bool) { return f.pnpm, f.pnpm != "" }

type nopPrompter struct{}

func (nopPrompter) Ask(questions []interview.Question) (interview.Answers, error) {
	return interview.Answers{}, nil
}

// testRegistry holds two plugins: plugin-a writes a file and adds a
// dependency, plugin-b adds a dev dependency and registers a hook that
// writes a file after generation.
func testRegistry(t *testing.T) *plugin.Registry {
	t.Helper()

	reg := plugin.NewRegistry()
	require.NoError(t, reg.Register(&plugin.Plugin{
		ID: "plugin-a",
		Apply: func(api *generator.API) error {
			api.AddDependency("left-pad", "^1.3.0")
			api.AddScript("serve", "vite")
			api.WriteFile("src/a.txt", []byte("from plugin-a"))
			return nil
		},
	}))
	require.NoError(t, reg.Register(&plugin.Plugin{
		ID: "plugin-b",
		Apply: func(api *generator.API) error {
			api.AddDevDependency("eslint", "^9.0.0")
			dir := api.Dir()
			api.OnInvokeDone(func(ctx context.Context) error {
				return os.WriteFile(filepath.Join(dir, "hook.txt"), []byte("from hook"), 0644)
			})
			return nil
		},
	}))
	return reg
}

func basicPreset() *preset.Preset {
	p := preset.New()
	p.Plugins.Set("plugin-a", preset.Options{})
	p.Plugins.Set("plugin-b", preset.Options{})
	return p
}

type creatorEnv struct {
	creator   *Creator
	dir       string
	git       *fakeGit
	installer *fakeInstaller
}

func newTestCreator(t *testing.T, opts Options) *creatorEnv {
	t.Helper()

	dir := t.TempDir()
	reg := testRegistry(t)
	git := &fakeGit{detected: true}
	installer := &fakeInstaller{bin: "npm"}

	c := &Creator{
		name:     "demo",
		dir:      dir,
		opts:     opts,
		store:    &fakeStore{presets: map[string]*preset.Preset{"basic": basicPreset()}},
		prompter: nopPrompter{},
		registry: reg,
		resolver: plugin.NewResolver(reg, nopPrompter{}),
		git:      git,
		detector: fakeDetector{},
		newInstaller: func(dir, bin string) Installer {
			installer.bin = bin
			return installer
		},
		installEnv: func() bool { return false },
		hooks:      hooks.New(),
	}

	return &creatorEnv{creator: c, dir: dir, git: git, installer: installer}
}

func TestCreate_FullWorkflow(t *testing.T) {
	env := newTestCreator(t, Options{PresetName: "basic"})

	var events []string
	env.creator.Subscribe(func(e Event) { events = append(events, e.Name) })

	require.NoError(t, env.creator.Create(context.Background()))

	// Manifest holds both plugins' contributions.
	manifest, err := os.ReadFile(filepath.Join(env.dir, "package.json"))
	require.NoError(t, err)
	assert.Contains(t, string(manifest), "left-pad")
	assert.Contains(t, string(manifest), "eslint")

	// Plugin file, hook file, and README all landed.
	for _, name := range []string{"src/a.txt", "hook.txt", "README.md"} {
		_, err := os.Stat(filepath.Join(env.dir, name))
		assert.NoError(t, err, "%s should exist", name)
	}

	readme, err := os.ReadFile(filepath.Join(env.dir, "README.md"))
	require.NoError(t, err)
	assert.Contains(t, string(readme), "# demo")
	assert.Contains(t, string(readme), "npm install")
	assert.Contains(t, string(readme), "npm run serve")

	assert.Equal(t, 1, env.git.inits)
	assert.Equal(t, 1, env.git.adds)
	assert.Equal(t, 1, env.git.commits)
	assert.Equal(t, 1, env.installer.calls)
	assert.Equal(t, []string{EventGitInit, EventPluginsInstall}, events)
}

func TestCreate_SkipGit(t *testing.T) {
	env := newTestCreator(t, Options{PresetName: "basic", SkipGit: true})

	var events []string
	env.creator.Subscribe(func(e Event) { events = append(events, e.Name) })

	require.NoError(t, env.creator.Create(context.Background()))

	assert.Equal(t, 0, env.git.inits)
	assert.Equal(t, 0, env.git.commits)
	assert.NotContains(t, events, EventGitInit)

	// Everything else still happens.
	_, err := os.Stat(filepath.Join(env.dir, "README.md"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(env.dir, "package.json"))
	assert.NoError(t, err)
}

func TestCreate_GitNotDetected(t *testing.T) {
	env := newTestCreator(t, Options{PresetName: "basic"})
	env.git.detected = false

	require.NoError(t, env.creator.Create(context.Background()))
	assert.Equal(t, 0, env.git.inits)
	assert.Equal(t, 0, env.git.commits)
}

func TestCreate_CommitFailureDegradesToWarning(t *testing.T) {
	env := newTestCreator(t, Options{PresetName: "basic"})
	env.git.commitErr = errors.New("committer identity unknown")

	require.NoError(t, env.creator.Create(context.Background()))

	require.Len(t, env.creator.warnings, 1)
	assert.Contains(t, env.creator.warnings[0], "Initial commit failed")

	// The project is complete regardless.
	_, err := os.Stat(filepath.Join(env.dir, "README.md"))
	assert.NoError(t, err)
}

func TestCreate_GitInitFailureIsFatal(t *testing.T) {
	env := newTestCreator(t, Options{PresetName: "basic"})
	env.git.initErr = errors.New("permission denied")

	err := env.creator.Create(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
}

func TestCreate_HookFailureAborts(t *testing.T) {
	env := newTestCreator(t, Options{PresetName: "basic"})
	env.creator.hooks.OnInvokeDone(func(ctx context.Context) error {
		return errors.New("hook exploded")
	})

	err := env.creator.Create(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hook exploded")

	// The README is written after hooks, so it must not exist.
	_, statErr := os.Stat(filepath.Join(env.dir, "README.md"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestCreate_InstallFailureIsFatal(t *testing.T) {
	env := newTestCreator(t, Options{PresetName: "basic"})
	env.installer.err = errors.New("registry unreachable")

	err := env.creator.Create(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry unreachable")
}

func TestCreate_InstallSkippedByEnv(t *testing.T) {
	env := newTestCreator(t, Options{PresetName: "basic"})
	env.creator.installEnv = func() bool { return true }

	require.NoError(t, env.creator.Create(context.Background()))
	assert.Equal(t, 0, env.installer.calls)
}

func TestCreate_DryRunTouchesNothing(t *testing.T) {
	env := newTestCreator(t, Options{PresetName: "basic", DryRun: true})

	require.NoError(t, env.creator.Create(context.Background()))

	entries, err := os.ReadDir(env.dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.Equal(t, 0, env.git.inits)
	assert.Equal(t, 0, env.installer.calls)
}

func TestCreate_UnknownPreset(t *testing.T) {
	env := newTestCreator(t, Options{PresetName: "ghost"})

	err := env.creator.Create(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, preset.ErrPresetNotFound)

	entries, readErr := os.ReadDir(env.dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "nothing may be written before preset resolution succeeds")
}

func TestCreate_InvalidPresetAbortsBeforeWriting(t *testing.T) {
	env := newTestCreator(t, Options{Preset: preset.New()})

	err := env.creator.Create(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, preset.ErrInvalidPreset)

	entries, readErr := os.ReadDir(env.dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestCreate_SuppliedPresetIsNotMutated(t *testing.T) {
	supplied := basicPreset()
	env := newTestCreator(t, Options{Preset: supplied})

	require.NoError(t, env.creator.Create(context.Background()))

	// The workflow operated on a deep copy.
	assert.Equal(t, []string{"plugin-a", "plugin-b"}, supplied.Plugins.IDs())
	opts, _ := supplied.Plugins.Get("plugin-a")
	assert.Empty(t, opts)
}

func TestCreate_UnknownPluginDegradesToNoop(t *testing.T) {
	p := basicPreset()
	p.Plugins.Set("ghost-plugin", preset.Options{})

	env := newTestCreator(t, Options{Preset: p})
	require.NoError(t, env.creator.Create(context.Background()))

	// The known plugins still ran.
	_, err := os.Stat(filepath.Join(env.dir, "src", "a.txt"))
	assert.NoError(t, err)
}

func TestChoosePackageManager_Precedence(t *testing.T) {
	env := newTestCreator(t, Options{PackageManager: "pnpm"})
	env.creator.savedPM = "yarn"
	env.creator.interviewPM = "npm"
	assert.Equal(t, "pnpm", env.creator.choosePackageManager())

	env.creator.opts.PackageManager = ""
	assert.Equal(t, "npm", env.creator.choosePackageManager())

	env.creator.interviewPM = ""
	assert.Equal(t, "yarn", env.creator.choosePackageManager())

	env.creator.savedPM = ""
	// Nothing configured and the fake detector finds nothing: npm.
	assert.Equal(t, "npm", env.creator.choosePackageManager())
}
