// Package config reads the persisted Kindling options store
// (~/.kindling/config.yaml): the preferred package manager and any saved
// presets. The creation core treats the store as read-only.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/kindling-cli/kindling/internal/preset"
)

const (
	dirName   = ".kindling"
	fileName  = "config"
	fileType  = "yaml"
	envPrefix = "KINDLING"
)

// Dir returns the path to the Kindling config directory (~/.kindling/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", dirName)
	}
	return filepath.Join(home, dirName)
}

// FilePath returns the full path to the config file
// (~/.kindling/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// Load initializes viper to read the config file and environment.
// A missing config file is not an error.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

// PackageManager returns the configured package manager, or empty when
// none is saved.
func PackageManager() string {
	return viper.GetString("packageManager")
}

// SavedPresets parses the presets section of the config file. The file
// is re-read with yaml.v3 rather than through viper because plugin order
// inside each preset is significant and viper flattens mappings.
func SavedPresets() (map[string]*preset.Preset, error) {
	return savedPresetsFrom(FilePath())
}

func savedPresetsFrom(path string) (map[string]*preset.Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var cfg struct {
		Presets map[string]*preset.Preset `yaml:"presets"`
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return cfg.Presets, nil
}
