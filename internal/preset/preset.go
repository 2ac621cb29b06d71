// Package preset models the named plugin bundles that describe project
// templates, and resolves them from built-in, saved, and remote sources.
package preset

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Options is one plugin's raw configuration from a preset or CLI flags.
//
// Two keys have meaning to the resolver: "prompts" (bool) requests the
// plugin's interactive sub-interview, and "_isPreset" marks options that
// came from a preset rather than direct flags (display only).
type Options map[string]any

// PromptsKey requests interactive configuration for a plugin.
const PromptsKey = "prompts"

// IsPresetKey marks options that originate from a preset.
const IsPresetKey = "_isPreset"

// PluginMap is an ordered mapping of plugin id to raw options. Order is
// significant: generators run in this order and later plugins may depend
// on files written by earlier ones. Both JSON and YAML round-trips
// preserve key insertion order.
type PluginMap struct {
	order []string
	items map[string]Options
}

// NewPluginMap returns an empty plugin map.
func NewPluginMap() *PluginMap {
	return &PluginMap{items: make(map[string]Options)}
}

// Set adds or replaces a plugin entry. New ids append to the order.
func (m *PluginMap) Set(id string, opts Options) {
	if m.items == nil {
		m.items = make(map[string]Options)
	}
	if _, exists := m.items[id]; !exists {
		m.order = append(m.order, id)
	}
	if opts == nil {
		opts = Options{}
	}
	m.items[id] = opts
}

// Get returns the options for a plugin id.
func (m *PluginMap) Get(id string) (Options, bool) {
	opts, ok := m.items[id]
	return opts, ok
}

// IDs returns the plugin ids in insertion order.
func (m *PluginMap) IDs() []string {
	ids := make([]string, len(m.order))
	copy(ids, m.order)
	return ids
}

// Len returns the number of plugins.
func (m *PluginMap) Len() int {
	return len(m.order)
}

// UnmarshalJSON decodes an object while recording key order.
func (m *PluginMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("plugins must be an object")
	}

	m.order = nil
	m.items = make(map[string]Options)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("plugin id must be a string")
		}

		var opts Options
		if err := dec.Decode(&opts); err != nil {
			return fmt.Errorf("options for plugin %q must be an object: %w", key, err)
		}
		m.Set(key, opts)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON encodes the map in insertion order.
func (m *PluginMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range m.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.items[id])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes a mapping node while recording key order.
func (m *PluginMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("plugins must be a mapping")
	}

	m.order = nil
	m.items = make(map[string]Options)

	for i := 0; i < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valNode := value.Content[i+1]

		var opts Options
		if valNode.Tag != "!!null" {
			if err := valNode.Decode(&opts); err != nil {
				return fmt.Errorf("options for plugin %q must be a mapping: %w", keyNode.Value, err)
			}
		}
		m.Set(keyNode.Value, opts)
	}
	return nil
}

// MarshalYAML encodes the map as a mapping node in insertion order.
func (m *PluginMap) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, id := range m.order {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: id}
		valNode := &yaml.Node{}
		if err := valNode.Encode(map[string]any(m.items[id])); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}

// Clone returns a deep copy.
func (m *PluginMap) Clone() *PluginMap {
	clone := NewPluginMap()
	for _, id := range m.order {
		clone.Set(id, copyOptions(m.items[id]))
	}
	return clone
}

// Preset is a named, serializable bundle of plugin ids and their options
// describing a project template. Presets are immutable once resolved:
// the creation workflow operates on a deep copy so in-memory mutation by
// plugins never corrupts a saved or remote original.
type Preset struct {
	Plugins        *PluginMap
	UseConfigFiles bool
	Router         bool

	// Extras preserves fields this version does not model, so saved and
	// remote presets survive a round-trip.
	Extras map[string]any
}

// New returns an empty preset.
func New() *Preset {
	return &Preset{Plugins: NewPluginMap()}
}

// Clone returns a deep copy of the preset.
func (p *Preset) Clone() *Preset {
	clone := &Preset{
		UseConfigFiles: p.UseConfigFiles,
		Router:         p.Router,
	}
	if p.Plugins != nil {
		clone.Plugins = p.Plugins.Clone()
	} else {
		clone.Plugins = NewPluginMap()
	}
	if p.Extras != nil {
		clone.Extras = make(map[string]any, len(p.Extras))
		for k, v := range p.Extras {
			clone.Extras[k] = copyValue(v)
		}
	}
	return clone
}

// UnmarshalJSON decodes a preset, routing unknown fields into Extras.
func (p *Preset) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("preset must be an object: %w", err)
	}

	p.Plugins = NewPluginMap()
	for key, raw := range fields {
		switch key {
		case "plugins":
			if err := p.Plugins.UnmarshalJSON(raw); err != nil {
				return err
			}
		case "useConfigFiles":
			if err := json.Unmarshal(raw, &p.UseConfigFiles); err != nil {
				return fmt.Errorf("useConfigFiles: %w", err)
			}
		case "router":
			if err := json.Unmarshal(raw, &p.Router); err != nil {
				return fmt.Errorf("router: %w", err)
			}
		default:
			var v any
			if err := json.Unmarshal(raw, &v); err != nil {
				return fmt.Errorf("field %q: %w", key, err)
			}
			if p.Extras == nil {
				p.Extras = make(map[string]any)
			}
			p.Extras[key] = v
		}
	}
	return nil
}

// MarshalJSON encodes the preset. Top-level key order is not significant;
// plugin order is preserved by PluginMap.
func (p *Preset) MarshalJSON() ([]byte, error) {
	fields := map[string]any{
		"plugins": p.Plugins,
	}
	if p.UseConfigFiles {
		fields["useConfigFiles"] = true
	}
	if p.Router {
		fields["router"] = true
	}
	for k, v := range p.Extras {
		fields[k] = v
	}
	return json.Marshal(fields)
}

// UnmarshalYAML decodes a preset from a mapping node.
func (p *Preset) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("preset must be a mapping")
	}

	p.Plugins = NewPluginMap()
	for i := 0; i < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valNode := value.Content[i+1]

		switch keyNode.Value {
		case "plugins":
			if err := p.Plugins.UnmarshalYAML(valNode); err != nil {
				return err
			}
		case "useConfigFiles":
			if err := valNode.Decode(&p.UseConfigFiles); err != nil {
				return fmt.Errorf("useConfigFiles: %w", err)
			}
		case "router":
			if err := valNode.Decode(&p.Router); err != nil {
				return fmt.Errorf("router: %w", err)
			}
		default:
			var v any
			if err := valNode.Decode(&v); err != nil {
				return fmt.Errorf("field %q: %w", keyNode.Value, err)
			}
			if p.Extras == nil {
				p.Extras = make(map[string]any)
			}
			p.Extras[keyNode.Value] = v
		}
	}
	return nil
}

// MarshalYAML encodes the preset as a mapping.
func (p *Preset) MarshalYAML() (any, error) {
	fields := map[string]any{
		"plugins": p.Plugins,
	}
	if p.UseConfigFiles {
		fields["useConfigFiles"] = true
	}
	if p.Router {
		fields["router"] = true
	}
	for k, v := range p.Extras {
		fields[k] = v
	}
	return fields, nil
}

func copyOptions(opts Options) Options {
	clone := make(Options, len(opts))
	for k, v := range opts {
		clone[k] = copyValue(v)
	}
	return clone
}

func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, inner := range val {
			m[k] = copyValue(inner)
		}
		return m
	case Options:
		return map[string]any(copyOptions(val))
	case []any:
		s := make([]any, len(val))
		for i, inner := range val {
			s[i] = copyValue(inner)
		}
		return s
	default:
		return val
	}
}
