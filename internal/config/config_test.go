package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavedPresetsFrom_MissingFile(t *testing.T) {
	presets, err := savedPresetsFrom(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Nil(t, presets)
}

func TestSavedPresetsFrom_ParsesPresets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
packageManager: yarn
presets:
  mine:
    plugins:
      typescript: {}
      eslint:
        config: strict
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	presets, err := savedPresetsFrom(path)
	require.NoError(t, err)
	require.Contains(t, presets, "mine")

	// Plugin order survives the YAML round-trip.
	assert.Equal(t, []string{"typescript", "eslint"}, presets["mine"].Plugins.IDs())

	opts, ok := presets["mine"].Plugins.Get("eslint")
	require.True(t, ok)
	assert.Equal(t, "strict", opts["config"])
}

func TestSavedPresetsFrom_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("presets: [not a mapping"), 0644))

	_, err := savedPresetsFrom(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestSavedPresetsFrom_NoPresetsSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("packageManager: pnpm\n"), 0644))

	presets, err := savedPresetsFrom(path)
	require.NoError(t, err)
	assert.Empty(t, presets)
}
