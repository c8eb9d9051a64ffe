package register

import (
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/toolreg/internal/registry"
)

// Top-level functions so name derivation sees real identifiers.
func Shout(s string) string   { return strings.ToUpper(s) + "!" }
func Whisper(s string) string { return strings.ToLower(s) }

func TestTool_ImmediateDefaults(t *testing.T) {
	reg := registry.New()

	err := Tool(reg, Shout, Options{Kind: registry.KindFilter, Mode: ModeImmediate})
	require.NoError(t, err)

	got, ok := reg.Lookup("shout", registry.KindFilter)
	require.True(t, ok, "default name is the lower-cased function identifier")
	assert.Equal(t, "general", got.Group, "group defaults to general")
	assert.Equal(t, "func(string) string", got.Signature)
}

func TestTool_NameOverride(t *testing.T) {
	reg := registry.New()

	err := Tool(reg, Shout, Options{
		Kind: registry.KindFilter,
		Name: "exclaim",
		Mode: ModeImmediate,
	})
	require.NoError(t, err)

	_, ok := reg.Lookup("shout", registry.KindFilter)
	assert.False(t, ok)
	got, ok := reg.Lookup("exclaim", registry.KindFilter)
	require.True(t, ok)
	assert.Equal(t, "exclaim", got.Name)
}

func TestTool_AnonymousNeedsName(t *testing.T) {
	reg := registry.New()

	err := Tool(reg, func(s string) string { return s }, Options{
		Kind: registry.KindFilter,
		Mode: ModeImmediate,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "explicit name")

	err = Tool(reg, func(s string) string { return s }, Options{
		Kind: registry.KindFilter,
		Name: "identity",
		Mode: ModeImmediate,
	})
	require.NoError(t, err)
}

func TestTool_NotAFunction(t *testing.T) {
	reg := registry.New()

	err := Tool(reg, "not callable", Options{Kind: registry.KindFilter, Mode: ModeImmediate})
	require.Error(t, err)
	assert.ErrorIs(t, err, registry.ErrInvalidTool)
}

func TestTool_DuplicateChainsCause(t *testing.T) {
	reg := registry.New()

	require.NoError(t, Tool(reg, Shout, Options{Kind: registry.KindFilter, Mode: ModeImmediate}))

	err := Tool(reg, Whisper, Options{
		Kind: registry.KindFilter,
		Name: "shout",
		Mode: ModeImmediate,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, registry.ErrDuplicateTool)
	assert.Contains(t, err.Error(), "shout", "error names the callable")
}

func TestTool_DeferredParksWithoutRegistry(t *testing.T) {
	reg := registry.New()

	err := Tool(reg, Whisper, Options{
		Kind:  registry.KindFilter,
		Group: "text",
		Mode:  ModeDeferred,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, reg.Len(), "deferred registration must not touch the registry")

	opts, ok := Take(Whisper)
	require.True(t, ok)
	assert.Equal(t, "text", opts.Group)

	_, ok = Take(Whisper)
	assert.False(t, ok, "a pending record is consumed exactly once")
}

func TestTool_DeferredNilRegistry(t *testing.T) {
	err := Tool(nil, Whisper, Options{Kind: registry.KindFilter, Mode: ModeDeferred})
	require.NoError(t, err)
	_, ok := Take(Whisper)
	require.True(t, ok)
}

func TestTool_ImmediateNilRegistry(t *testing.T) {
	err := Tool(nil, Whisper, Options{Kind: registry.KindFilter, Mode: ModeImmediate})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no registry")
}

func TestTool_LastDecorationWins(t *testing.T) {
	require.NoError(t, Tool(nil, Whisper, Options{
		Kind:  registry.KindFilter,
		Group: "first",
		Mode:  ModeDeferred,
	}))
	require.NoError(t, Tool(nil, Whisper, Options{
		Kind:  registry.KindFilter,
		Group: "second",
		Mode:  ModeDeferred,
	}))

	opts, ok := Take(Whisper)
	require.True(t, ok)
	assert.Equal(t, "second", opts.Group)
}

func TestTool_AmbientMode(t *testing.T) {
	reg := registry.New()

	// Outside any scope, ambient means immediate.
	require.NoError(t, Tool(reg, Shout, Options{Kind: registry.KindFilter}))
	assert.Equal(t, 1, reg.Len())

	scope := EnterDeferred()
	require.NoError(t, Tool(reg, Whisper, Options{Kind: registry.KindFilter}))
	scope.Exit()

	assert.Equal(t, 1, reg.Len(), "decoration inside the scope must defer")
	_, ok := Take(Whisper)
	assert.True(t, ok)
}

func TestTool_ExplicitModeBeatsAmbient(t *testing.T) {
	reg := registry.New()

	scope := EnterDeferred()
	defer scope.Exit()

	require.NoError(t, Tool(reg, Shout, Options{
		Kind: registry.KindFilter,
		Mode: ModeImmediate,
	}))
	assert.Equal(t, 1, reg.Len(), "explicit immediate wins over the ambient scope")
}

func TestTool_NestedScopes(t *testing.T) {
	reg := registry.New()

	outer := EnterDeferred()
	require.NoError(t, Tool(reg, Shout, Options{Kind: registry.KindFilter}))

	inner := EnterDeferred()
	require.NoError(t, Tool(reg, Whisper, Options{Kind: registry.KindFilter}))
	inner.Exit()
	outer.Exit()

	assert.Equal(t, 0, reg.Len(), "both decorations inside the scopes deferred")
	_, ok := Take(Shout)
	assert.True(t, ok)
	_, ok = Take(Whisper)
	assert.True(t, ok)

	// After the outermost exit, ambient decorations register immediately.
	require.NoError(t, Tool(reg, Shout, Options{Kind: registry.KindFilter}))
	assert.Equal(t, 1, reg.Len())
}

func TestDefer_PanicsOnNonCallable(t *testing.T) {
	assert.Panics(t, func() {
		Defer(42, Options{Kind: registry.KindFilter})
	})
}

// Deferring then finalizing must produce the same entry as registering
// immediately with identical metadata.
func TestDeferredImmediateEquivalence(t *testing.T) {
	opts := Options{
		Kind:        registry.KindFilter,
		Group:       "text",
		Icon:        "mdi:volume-high",
		Description: "Upper-case with emphasis.",
	}

	immediate := registry.New()
	direct := opts
	direct.Mode = ModeImmediate
	require.NoError(t, Tool(immediate, Shout, direct))

	viaDefer := registry.New()
	parked := opts
	parked.Mode = ModeDeferred
	require.NoError(t, Tool(viaDefer, Shout, parked))
	finalized, ok := Take(Shout)
	require.True(t, ok)
	finalized.Mode = ModeImmediate
	require.NoError(t, Tool(viaDefer, Shout, finalized))

	want, ok := immediate.Lookup("shout", registry.KindFilter)
	require.True(t, ok)
	got, ok := viaDefer.Lookup("shout", registry.KindFilter)
	require.True(t, ok)
	assert.Empty(t, cmp.Diff(want, got, cmpopts.IgnoreFields(registry.Tool{}, "Fn")))
	assert.Equal(t, reflect.ValueOf(want.Fn).Pointer(), reflect.ValueOf(got.Fn).Pointer())
}
