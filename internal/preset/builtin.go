package preset

// Built-in preset names.
const (
	Default = "default"
	Full    = "full"
)

// Builtins returns the fixed named presets offered in the intro prompt.
// A fresh value is built on every call so callers can never corrupt the
// originals.
func Builtins() map[string]*Preset {
	def := New()
	def.Plugins.Set("babel", Options{IsPresetKey: true})
	def.Plugins.Set("eslint", Options{IsPresetKey: true, "config": "base"})

	full := New()
	full.Router = true
	full.UseConfigFiles = true
	full.Plugins.Set("babel", Options{IsPresetKey: true})
	full.Plugins.Set("typescript", Options{IsPresetKey: true})
	full.Plugins.Set("router", Options{IsPresetKey: true, "historyMode": true})
	full.Plugins.Set("eslint", Options{IsPresetKey: true, "config": "recommended"})

	return map[string]*Preset{
		Default: def,
		Full:    full,
	}
}
