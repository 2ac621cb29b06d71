package preset

import "errors"

var (
	// ErrPresetNotFound is returned when a preset name matches neither a
	// built-in, a saved preset, nor a remote reference.
	ErrPresetNotFound = errors.New("preset not found")

	// ErrInvalidPreset is returned when a preset fails schema validation
	// (missing or malformed plugins map).
	ErrInvalidPreset = errors.New("invalid preset")

	// ErrFetchFailed is returned when a remote preset cannot be fetched.
	ErrFetchFailed = errors.New("failed to fetch remote preset")
)
