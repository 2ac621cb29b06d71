package generator_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kindling-cli/kindling/internal/generator"
)

func TestNewManifest(t *testing.T) {
	m := generator.NewManifest("demo")

	assert.Equal(t, "demo", m.Name)
	assert.Equal(t, generator.ManifestVersion, m.Version)
	assert.True(t, m.Private)
	assert.NotNil(t, m.Dependencies)
}

func TestManifest_JSON(t *testing.T) {
	m := generator.NewManifest("demo")
	m.AddDevDependency("eslint", "^9.0.0")
	m.AddScript("lint", "eslint .")

	data, err := m.JSON()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "\n"))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	// dependencies is always present, even when empty
	assert.Contains(t, decoded, "dependencies")
	assert.Equal(t, "demo", decoded["name"])
}
