package creator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kindling-cli/kindling/internal/hooks"
	"github.com/kindling-cli/kindling/internal/interview"
	"github.com/kindling-cli/kindling/internal/plugin"
	"github.com/kindling-cli/kindling/internal/preset"
)

func interviewCreator(t *testing.T, opts Options) *Creator {
	t.Helper()
	return &Creator{
		name:     "demo",
		dir:      t.TempDir(),
		opts:     opts,
		store:    &fakeStore{presets: map[string]*preset.Preset{"default": basicPreset()}},
		registry: plugin.Builtin(),
		detector: fakeDetector{yarn: true},
		hooks:    hooks.New(),
	}
}

func questionNames(qs []interview.Question) []string {
	names := make([]string, len(qs))
	for i, q := range qs {
		names[i] = q.Name
	}
	return names
}

func TestBuildInterview_Assembly(t *testing.T) {
	c := interviewCreator(t, Options{})

	qs := c.buildInterview()
	names := questionNames(qs)

	assert.Equal(t, "preset", names[0])
	assert.Equal(t, "features", names[1])
	assert.Contains(t, names, "router:historyMode")
	assert.Contains(t, names, "eslint:config")
	assert.Equal(t, "packageManager", names[len(names)-1])

	// The preset choices end with the manual escape hatch.
	assert.Equal(t, manualChoice, qs[0].Choices[len(qs[0].Choices)-1])
}

func TestBuildInterview_NoOutroWhenDecided(t *testing.T) {
	c := interviewCreator(t, Options{PackageManager: "yarn"})
	assert.NotContains(t, questionNames(c.buildInterview()), "packageManager")

	c = interviewCreator(t, Options{})
	c.savedPM = "pnpm"
	assert.NotContains(t, questionNames(c.buildInterview()), "packageManager")
}

func TestBuildInterview_NoOutroWithoutAlternative(t *testing.T) {
	// Only npm on the host: there is no choice to offer.
	c := interviewCreator(t, Options{})
	c.detector = fakeDetector{}
	assert.NotContains(t, questionNames(c.buildInterview()), "packageManager")

	c.detector = fakeDetector{pnpm: "8.6.2"}
	assert.Contains(t, questionNames(c.buildInterview()), "packageManager")

	// Ancient pnpm does not count as an alternative.
	c.detector = fakeDetector{pnpm: "2.17.0"}
	assert.NotContains(t, questionNames(c.buildInterview()), "packageManager")
}

func TestBuildInterview_FeatureQuestionsGated(t *testing.T) {
	c := interviewCreator(t, Options{})

	var routerQ interview.Question
	for _, q := range c.buildInterview() {
		if q.Name == "router:historyMode" {
			routerQ = q
		}
	}
	require.NotNil(t, routerQ.When)

	// Hidden on a named preset.
	assert.False(t, routerQ.When(interview.Answers{"preset": "default"}))

	// Hidden on manual when the feature was not picked.
	assert.False(t, routerQ.When(interview.Answers{
		"preset":   manualChoice,
		"features": []string{"TypeScript"},
	}))

	// Shown on manual with the feature picked.
	assert.True(t, routerQ.When(interview.Answers{
		"preset":   manualChoice,
		"features": []string{"Client-side routing"},
	}))
}

func TestBuildInterview_FeaturesQuestionOnlyOnManual(t *testing.T) {
	c := interviewCreator(t, Options{})

	var featuresQ interview.Question
	for _, q := range c.buildInterview() {
		if q.Name == "features" {
			featuresQ = q
		}
	}
	require.NotNil(t, featuresQ.When)
	assert.False(t, featuresQ.When(interview.Answers{"preset": "full"}))
	assert.True(t, featuresQ.When(interview.Answers{"preset": manualChoice}))
}

func TestPresetFromAnswers(t *testing.T) {
	c := interviewCreator(t, Options{})

	answers := interview.Answers{
		"preset":             manualChoice,
		"features":           []string{"Client-side routing", "Linting (ESLint)"},
		"router:historyMode": false,
		"eslint:config":      "strict",
	}

	p := c.presetFromAnswers(answers)

	assert.Equal(t, []string{"babel", "router", "eslint"}, p.Plugins.IDs())

	routerOpts, _ := p.Plugins.Get("router")
	assert.Equal(t, false, routerOpts["historyMode"])

	eslintOpts, _ := p.Plugins.Get("eslint")
	assert.Equal(t, "strict", eslintOpts["config"])

	require.NoError(t, preset.Validate(p))
}

func TestScopedAnswers(t *testing.T) {
	scoped := scopedAnswers(interview.Answers{
		"router:historyMode": true,
		"eslint:config":      "base",
		"preset":             manualChoice,
	}, "router")

	assert.Equal(t, interview.Answers{"historyMode": true}, scoped)
}
