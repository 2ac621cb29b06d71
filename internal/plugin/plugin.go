// Package plugin defines the scaffolding plugins and resolves a preset's
// plugin set into the ordered invocation list the generator consumes.
//
// Plugins are looked up in an explicit registry keyed by id, populated at
// startup from the built-in set. A lookup miss degrades to a no-op
// generator so one missing plugin never blows up the whole scaffold.
package plugin

import (
	"github.com/kindling-cli/kindling/internal/generator"
	"github.com/kindling-cli/kindling/internal/interview"
)

// Plugin is a unit of scaffolding logic: a generator entry point plus
// optional interactive configuration.
type Plugin struct {
	// ID is the identifier presets refer to.
	ID string

	// Description is a short human-readable summary.
	Description string

	// Feature is the label shown in the manual feature multi-select.
	// Empty means the plugin is not offered as a selectable feature.
	Feature string

	// Questions is the plugin's interactive options schema. It runs as a
	// scoped sub-interview when a preset entry sets "prompts": true, and
	// is injected into the main interview on the manual path.
	Questions []interview.Question

	// Apply is the generator entry point.
	Apply generator.ApplyFn
}

// Resolved is one plugin ready for invocation: a loaded generator
// function (a no-op when the id could not be resolved) and a plain
// options map (raw preset options or interview answers).
type Resolved struct {
	ID      string
	Apply   generator.ApplyFn
	Options map[string]any
}

// NoopApply is the generator used for plugins that could not be
// resolved. It contributes nothing.
func NoopApply(api *generator.API) error { return nil }
