package creator

import (
	"context"
	"fmt"
	"strings"

	"github.com/kindling-cli/kindling/internal/input"
	"github.com/kindling-cli/kindling/internal/interview"
	"github.com/kindling-cli/kindling/internal/pm"
	"github.com/kindling-cli/kindling/internal/preset"
)

const manualChoice = "manual"

// runInterview drives the interactive preset flow. On a non-interactive
// stdin it falls back to the default preset without asking anything.
func (c *Creator) runInterview(ctx context.Context) (*preset.Preset, error) {
	if !input.Interactive() {
		return c.store.Resolve(ctx, preset.Default, false)
	}

	questions := c.buildInterview()
	answers, err := c.prompter.Ask(questions)
	if err != nil {
		return nil, fmt.Errorf("interview failed: %w", err)
	}

	if v, ok := answers["packageManager"].(string); ok && v != "" {
		c.interviewPM = v
	}

	choice, _ := answers["preset"].(string)
	if choice != manualChoice {
		return c.store.Resolve(ctx, choice, c.opts.Clone)
	}
	return c.presetFromAnswers(answers), nil
}

// buildInterview assembles the full question sequence: the preset select
// intro, feature questions injected by the registered plugins (asked only
// on the manual path when the feature was picked), and the package
// manager outro (asked only when neither a flag nor saved config decides
// and the host has an alternative to npm).
func (c *Creator) buildInterview() []interview.Question {
	features := c.registry.Features()
	featureLabels := make([]string, 0, len(features))
	for _, f := range features {
		featureLabels = append(featureLabels, f.Feature)
	}

	intro := []interview.Question{
		{
			Name:    "preset",
			Type:    interview.Select,
			Message: "Please pick a preset",
			Choices: append(c.store.Names(), manualChoice),
			Default: preset.Default,
		},
		{
			Name:    "features",
			Type:    interview.MultiSelect,
			Message: "Check the features needed for your project",
			Choices: featureLabels,
			When:    whenManual,
		},
	}

	var injected []interview.Question
	for _, f := range features {
		feature := f.Feature
		for _, q := range f.Questions {
			scoped := q
			scoped.Name = f.ID + ":" + q.Name
			inner := q.When
			scoped.When = func(a interview.Answers) bool {
				if !whenManual(a) || !featureSelected(a, feature) {
					return false
				}
				return inner == nil || inner(scopedAnswers(a, f.ID))
			}
			injected = append(injected, scoped)
		}
	}

	var outro []interview.Question
	if c.opts.PackageManager == "" && c.savedPM == "" && pm.HasAlternative(c.detector) {
		outro = append(outro, interview.Question{
			Name:    "packageManager",
			Type:    interview.Select,
			Message: "Pick the package manager to use when installing dependencies",
			Choices: []string{pm.NPM, pm.Yarn, pm.PNPM},
			Default: pm.NPM,
		})
	}

	return interview.Build(intro, injected, outro)
}

func whenManual(a interview.Answers) bool {
	choice, _ := a["preset"].(string)
	return choice == manualChoice
}

func featureSelected(a interview.Answers, feature string) bool {
	selected, _ := a["features"].([]string)
	for _, s := range selected {
		if s == feature {
			return true
		}
	}
	return false
}

// scopedAnswers strips the "id:" namespace so a plugin's own When
// predicates see the names its Questions declared.
func scopedAnswers(a interview.Answers, id string) interview.Answers {
	prefix := id + ":"
	scoped := make(interview.Answers)
	for name, v := range a {
		if rest, ok := strings.CutPrefix(name, prefix); ok {
			scoped[rest] = v
		}
	}
	return scoped
}

// presetFromAnswers builds a one-off preset from the manual path: babel
// always, plus each selected feature plugin configured with its scoped
// answers.
func (c *Creator) presetFromAnswers(answers interview.Answers) *preset.Preset {
	plugins := preset.NewPluginMap()
	plugins.Set("babel", preset.Options{})

	for _, f := range c.registry.Features() {
		if !featureSelected(answers, f.Feature) {
			continue
		}
		opts := preset.Options{}
		for name, v := range scopedAnswers(answers, f.ID) {
			opts[name] = v
		}
		plugins.Set(f.ID, opts)
	}

	return &preset.Preset{Plugins: plugins}
}
