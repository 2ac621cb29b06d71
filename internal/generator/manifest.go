package generator

import (
	"encoding/json"
	"fmt"
)

// ManifestVersion is the fixed version every scaffolded project starts at.
const ManifestVersion = "0.1.0"

// Manifest is the project manifest (package.json). The workflow writes a
// minimal manifest before generation; plugins extend it through the
// generator API and the final state is written back after generation.
type Manifest struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Private         bool              `json:"private"`
	Scripts         map[string]string `json:"scripts,omitempty"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
}

// NewManifest returns the minimal manifest for a fresh project: name,
// fixed initial version, private flag, empty dependency map.
func NewManifest(name string) *Manifest {
	return &Manifest{
		Name:         name,
		Version:      ManifestVersion,
		Private:      true,
		Dependencies: map[string]string{},
	}
}

// JSON renders the manifest as indented JSON with a trailing newline.
func (m *Manifest) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling manifest: %w", err)
	}
	return append(data, '\n'), nil
}

// AddDependency records a runtime dependency.
func (m *Manifest) AddDependency(name, version string) {
	if m.Dependencies == nil {
		m.Dependencies = map[string]string{}
	}
	m.Dependencies[name] = version
}

// AddDevDependency records a development dependency.
func (m *Manifest) AddDevDependency(name, version string) {
	if m.DevDependencies == nil {
		m.DevDependencies = map[string]string{}
	}
	m.DevDependencies[name] = version
}

// AddScript records a manifest script entry.
func (m *Manifest) AddScript(name, command string) {
	if m.Scripts == nil {
		m.Scripts = map[string]string{}
	}
	m.Scripts[name] = command
}
