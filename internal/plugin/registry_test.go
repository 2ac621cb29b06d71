package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Register(t *testing.T) {
	reg := NewRegistry()

	require.NoError(t, reg.Register(testPlugin("babel")))
	assert.True(t, reg.Has("babel"))
	assert.Equal(t, 1, reg.Size())

	err := reg.Register(testPlugin("babel"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestRegistry_RegisterInvalid(t *testing.T) {
	reg := NewRegistry()

	require.Error(t, reg.Register(nil))
	require.Error(t, reg.Register(&Plugin{ID: ""}))
	require.Error(t, reg.Register(&Plugin{ID: "no-apply"}))
}

func TestRegistry_IDsRegistrationOrder(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(testPlugin("zeta")))
	require.NoError(t, reg.Register(testPlugin("alpha")))
	require.NoError(t, reg.Register(testPlugin("mid")))

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, reg.IDs())
}

func TestRegistry_Features(t *testing.T) {
	reg := NewRegistry()

	hidden := testPlugin("hidden")
	require.NoError(t, reg.Register(hidden))

	feature := testPlugin("router")
	feature.Feature = "Client-side routing"
	require.NoError(t, reg.Register(feature))

	features := reg.Features()
	require.Len(t, features, 1)
	assert.Equal(t, "router", features[0].ID)
}

func TestBuiltin(t *testing.T) {
	reg := Builtin()

	for _, id := range []string{"babel", "typescript", "router", "eslint"} {
		assert.True(t, reg.Has(id), "built-in plugin %q missing", id)
	}
}
