package preset

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kindling-cli/kindling/internal/output"
)

// RemoteLoader fetches a preset from a remote "owner/repo" reference.
// Implementations may perform network I/O; errors propagate as fetch
// failures and abort the creation run.
type RemoteLoader interface {
	Load(ctx context.Context, ref string, clone bool) (*Preset, error)
}

// Store resolves presets by name from three sources: built-in presets,
// presets saved in the local options store, and remote references.
type Store struct {
	builtins map[string]*Preset
	saved    map[string]*Preset
	remote   RemoteLoader
}

// NewStore creates a store over the given saved presets. saved may be
// nil when the options store holds none.
func NewStore(saved map[string]*Preset, remote RemoteLoader) *Store {
	return &Store{
		builtins: Builtins(),
		saved:    saved,
		remote:   remote,
	}
}

// Resolve returns the preset for name. Saved presets shadow built-ins;
// names containing a slash are treated as "owner/repo" remote references
// and fetched (cloned when clone is set). The returned preset is a shared
// reference — the workflow deep-copies before mutating.
//
// An unknown name fails with ErrPresetNotFound listing the available
// names; it is never silently ignored.
func (s *Store) Resolve(ctx context.Context, name string, clone bool) (*Preset, error) {
	if p, ok := s.saved[name]; ok {
		return p, nil
	}
	if p, ok := s.builtins[name]; ok {
		return p, nil
	}

	if strings.Contains(name, "/") {
		output.Info(fmt.Sprintf("Fetching remote preset %s...", name))
		p, err := s.remote.Load(ctx, name, clone)
		if err != nil {
			return nil, fmt.Errorf("%w %s: %w", ErrFetchFailed, name, err)
		}
		output.Verbose(fmt.Sprintf("Fetched remote preset %s", name))
		return p, nil
	}

	return nil, fmt.Errorf("%w: %q (available: %s)",
		ErrPresetNotFound, name, strings.Join(s.Names(), ", "))
}

// Names returns every resolvable preset name, sorted, built-ins first.
func (s *Store) Names() []string {
	builtin := make([]string, 0, len(s.builtins))
	for name := range s.builtins {
		builtin = append(builtin, name)
	}
	sort.Strings(builtin)

	saved := make([]string, 0, len(s.saved))
	for name := range s.saved {
		if _, isBuiltin := s.builtins[name]; isBuiltin {
			continue
		}
		saved = append(saved, name)
	}
	sort.Strings(saved)

	return append(builtin, saved...)
}
