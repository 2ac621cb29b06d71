package generator

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/kindling-cli/kindling/internal/hooks"
)

// ApplyFn is a plugin's generator entry point. It receives an API scoped
// to the plugin and queues manifest changes, file writes, and hooks.
type ApplyFn func(api *API) error

// Invocation pairs a plugin's generator entry point with its resolved
// options. Invocations are applied strictly in slice order.
type Invocation struct {
	ID      string
	Apply   ApplyFn
	Options map[string]any
}

// Opts configures a generation run.
type Opts struct {
	DryRun bool
	Force  bool
}

// Generator turns an ordered invocation list into project files. Plugins
// queue operations through the API; nothing touches the disk until every
// plugin has been applied and the whole batch validated.
type Generator struct {
	dir         string
	manifest    *Manifest
	invocations []Invocation
	hooks       *hooks.Registry
	renderer    *Renderer
	ops         []Operation
	opts        Opts
}

// New creates a generator for one creation run. The manifest and hook
// registry are shared with the workflow: plugins mutate both.
func New(dir string, manifest *Manifest, invocations []Invocation, reg *hooks.Registry, opts Opts) *Generator {
	return &Generator{
		dir:         dir,
		manifest:    manifest,
		invocations: invocations,
		hooks:       reg,
		renderer:    NewRenderer(),
		opts:        opts,
	}
}

// Invoke applies every plugin in order, then executes the queued file
// operations plus the final manifest rewrite. Returns the manifest with
// all plugin contributions merged.
func (g *Generator) Invoke(ctx context.Context) (*Manifest, error) {
	for _, inv := range g.invocations {
		api := &API{gen: g, id: inv.ID, options: inv.Options}
		if err := inv.Apply(api); err != nil {
			return nil, fmt.Errorf("plugin %s: %w", inv.ID, err)
		}
	}

	// The manifest was written before generation started; rewrite it with
	// the dependencies plugins injected.
	data, err := g.manifest.JSON()
	if err != nil {
		return nil, err
	}
	g.ops = append(g.ops, &WriteFileOp{
		Path:      filepath.Join(g.dir, "package.json"),
		Content:   data,
		Mode:      0644,
		Overwrite: true,
	})

	execOpts := ExecuteOptions{DryRun: g.opts.DryRun, Force: g.opts.Force}
	if err := Execute(ctx, g.ops, execOpts); err != nil {
		return nil, err
	}

	return g.manifest, nil
}

// Report summarizes what the run produced, one line per operation.
func (g *Generator) Report() []string {
	lines := make([]string, 0, len(g.ops))
	for _, op := range g.ops {
		lines = append(lines, op.Description())
	}
	return lines
}

// API is the surface a plugin sees during invocation. All mutations are
// queued against the shared manifest and operation list; the plugin never
// writes to disk directly.
type API struct {
	gen     *Generator
	id      string
	options map[string]any
}

// ID returns the invoked plugin's identifier.
func (a *API) ID() string { return a.id }

// Dir returns the project root directory. Hooks run after generation and
// write through it directly.
func (a *API) Dir() string { return a.gen.dir }

// Options returns the plugin's resolved options (raw preset options or
// interview answers).
func (a *API) Options() map[string]any { return a.options }

// Option returns a single option value.
func (a *API) Option(name string) (any, bool) {
	v, ok := a.options[name]
	return v, ok
}

// AddDependency records a runtime dependency on the shared manifest.
func (a *API) AddDependency(name, version string) {
	a.gen.manifest.AddDependency(name, version)
}

// AddDevDependency records a development dependency on the shared manifest.
func (a *API) AddDevDependency(name, version string) {
	a.gen.manifest.AddDevDependency(name, version)
}

// AddScript records a manifest script entry.
func (a *API) AddScript(name, command string) {
	a.gen.manifest.AddScript(name, command)
}

// WriteFile queues a file write relative to the project root.
func (a *API) WriteFile(relPath string, content []byte) {
	a.gen.ops = append(a.gen.ops, &WriteFileOp{
		Path:    filepath.Join(a.gen.dir, relPath),
		Content: content,
		Mode:    0644,
	})
}

// RenderFile renders a template and queues the result as a file write
// relative to the project root.
func (a *API) RenderFile(relPath, tmpl string, data any) error {
	content, err := a.gen.renderer.RenderString(a.id+":"+relPath, tmpl, data)
	if err != nil {
		return err
	}
	a.WriteFile(relPath, content)
	return nil
}

// OnInvokeDone registers a callback to run after generation, in the
// per-plugin hook list.
func (a *API) OnInvokeDone(cb hooks.Callback) {
	a.gen.hooks.OnInvokeDone(cb)
}

// OnAnyInvokeDone registers a callback in the global hook list, which
// runs after every per-plugin callback.
func (a *API) OnAnyInvokeDone(cb hooks.Callback) {
	a.gen.hooks.OnAnyInvokeDone(cb)
}
