package plugin

import (
	"fmt"

	"github.com/kindling-cli/kindling/internal/interview"
	"github.com/kindling-cli/kindling/internal/output"
	"github.com/kindling-cli/kindling/internal/preset"
)

// Resolver turns a preset's ordered plugin map into the invocation list.
type Resolver struct {
	registry *Registry
	prompter interview.Prompter
}

// NewResolver creates a resolver. The prompter runs per-plugin
// sub-interviews for entries that request prompts.
func NewResolver(registry *Registry, prompter interview.Prompter) *Resolver {
	return &Resolver{registry: registry, prompter: prompter}
}

// ResolveAll resolves every plugin in the map, preserving input order.
// The result has exactly one entry per input id.
//
// A registry miss degrades to a no-op generator with a warning — a
// missing plugin must not blow up the entire scaffold. A prompt failure
// is an error: without answers the plugin cannot be configured.
func (r *Resolver) ResolveAll(plugins *preset.PluginMap) ([]Resolved, error) {
	resolved := make([]Resolved, 0, plugins.Len())

	for _, id := range plugins.IDs() {
		rawOpts, _ := plugins.Get(id)

		apply := NoopApply
		var questions []interview.Question
		if p, ok := r.registry.Get(id); ok {
			apply = p.Apply
			questions = p.Questions
		} else {
			output.Warn(fmt.Sprintf("Plugin %q is not available; its generator will be skipped", id))
		}

		opts := cleanOptions(rawOpts)

		if wantsPrompts(rawOpts) && len(questions) > 0 {
			answers, err := r.prompter.Ask(questions)
			if err != nil {
				return nil, fmt.Errorf("prompting for plugin %s: %w", id, err)
			}
			opts = map[string]any(answers)
		}

		resolved = append(resolved, Resolved{ID: id, Apply: apply, Options: opts})
	}

	return resolved, nil
}

// wantsPrompts reports whether the raw options request the plugin's
// interactive sub-interview.
func wantsPrompts(opts preset.Options) bool {
	v, ok := opts[preset.PromptsKey].(bool)
	return ok && v
}

// cleanOptions copies the raw options without the resolver control keys,
// leaving a plain settings map ready for the generator.
func cleanOptions(opts preset.Options) map[string]any {
	clean := make(map[string]any, len(opts))
	for k, v := range opts {
		if k == preset.PromptsKey || k == preset.IsPresetKey {
			continue
		}
		clean[k] = v
	}
	return clean
}
