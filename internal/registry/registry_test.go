package registry

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTool(name string, kind Kind) *Tool {
	return &Tool{
		Name:  name,
		Kind:  kind,
		Fn:    strings.ToUpper,
		Group: "text",
	}
}

func TestRegister_RoundTrip(t *testing.T) {
	t.Parallel()

	reg := New()
	in := &Tool{
		Name:             "upper",
		Kind:             KindFilter,
		Fn:               strings.ToUpper,
		Group:            "text",
		Description:      "Convert a string to uppercase.",
		Icon:             "mdi:format-letter-case-upper",
		Aliases:          []string{"uppercase"},
		RequiredPackages: []string{"strings"},
		Examples: map[string]Example{
			"basic": {Template: `{{ "hello" | upper }}`, Title: "Basic", Markdown: true},
		},
		Meta:      map[string]string{"stability": "stable"},
		Signature: "func(string) string",
	}
	require.NoError(t, reg.Register(in, false))

	got, ok := reg.Lookup("upper", KindFilter)
	require.True(t, ok)

	diff := cmp.Diff(in, got, cmpopts.IgnoreFields(Tool{}, "Fn"))
	assert.Empty(t, diff, "registered metadata should round-trip unchanged")

	fn, ok := got.Fn.(func(string) string)
	require.True(t, ok)
	assert.Equal(t, "HELLO", fn("hello"))
}

func TestRegister_AliasLookup(t *testing.T) {
	t.Parallel()

	reg := New()
	tool := newTool("upper", KindFilter)
	tool.Aliases = []string{"uppercase", "uc"}
	require.NoError(t, reg.Register(tool, false))

	for _, name := range []string{"upper", "uppercase", "uc"} {
		got, ok := reg.Lookup(name, KindFilter)
		require.True(t, ok, "lookup via %q", name)
		assert.Equal(t, "upper", got.Name)
	}

	// Aliases resolve to the canonical entry, they are not entries themselves.
	assert.Equal(t, 1, reg.Len())
}

func TestRegister_DuplicateRejected(t *testing.T) {
	t.Parallel()

	reg := New()
	first := newTool("upper", KindFilter)
	first.Description = "the first one"
	require.NoError(t, reg.Register(first, false))

	second := newTool("upper", KindFilter)
	err := reg.Register(second, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateTool)

	// The first registration stays intact.
	got, ok := reg.Lookup("upper", KindFilter)
	require.True(t, ok)
	assert.Equal(t, "the first one", got.Description)
}

func TestRegister_DuplicateViaAlias(t *testing.T) {
	t.Parallel()

	reg := New()
	first := newTool("upper", KindFilter)
	first.Aliases = []string{"uc"}
	require.NoError(t, reg.Register(first, false))

	// A new tool whose canonical name collides with an existing alias.
	second := newTool("uc", KindFilter)
	err := reg.Register(second, false)
	assert.ErrorIs(t, err, ErrDuplicateTool)
}

func TestRegister_Overwrite(t *testing.T) {
	t.Parallel()

	reg := New()
	require.NoError(t, reg.Register(newTool("upper", KindFilter), false))

	replacement := newTool("upper", KindFilter)
	replacement.Description = "replacement"
	require.NoError(t, reg.Register(replacement, true))

	got, ok := reg.Lookup("upper", KindFilter)
	require.True(t, ok)
	assert.Equal(t, "replacement", got.Description)
	assert.Equal(t, 1, reg.Len())
}

func TestRegister_SameNameDifferentKind(t *testing.T) {
	t.Parallel()

	reg := New()
	require.NoError(t, reg.Register(newTool("upper", KindFilter), false))
	require.NoError(t, reg.Register(newTool("upper", KindTest), false))

	assert.Equal(t, 2, reg.Len())
	assert.Len(t, reg.OfKind(KindFilter), 1)
	assert.Len(t, reg.OfKind(KindTest), 1)
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	reg := New()

	err := reg.Register(&Tool{Kind: KindFilter, Fn: strings.ToUpper}, false)
	assert.ErrorIs(t, err, ErrInvalidTool, "missing name")

	err = reg.Register(&Tool{Name: "x", Kind: Kind("widget"), Fn: strings.ToUpper}, false)
	assert.ErrorIs(t, err, ErrInvalidTool, "unknown kind")

	err = reg.Register(&Tool{Name: "x", Kind: KindFilter}, false)
	assert.ErrorIs(t, err, ErrInvalidTool, "nil callable")

	err = reg.Register(&Tool{Name: "x", Kind: KindFilter, Fn: 42}, false)
	assert.ErrorIs(t, err, ErrInvalidTool, "non-function callable")

	assert.Equal(t, 0, reg.Len())
}

func TestAll_Sorted(t *testing.T) {
	t.Parallel()

	reg := New()
	require.NoError(t, reg.Register(newTool("zebra", KindFilter), false))
	require.NoError(t, reg.Register(newTool("alpha", KindFunction), false))
	require.NoError(t, reg.Register(newTool("alpha", KindFilter), false))

	var keys []Key
	for _, tool := range reg.All() {
		keys = append(keys, tool.Key())
	}
	want := []Key{
		{Name: "alpha", Kind: KindFilter},
		{Name: "zebra", Kind: KindFilter},
		{Name: "alpha", Kind: KindFunction},
	}
	assert.Equal(t, want, keys)
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	kind, err := ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, KindFilter, kind, "empty kind defaults to filter")

	kind, err = ParseKind("test")
	require.NoError(t, err)
	assert.Equal(t, KindTest, kind)

	_, err = ParseKind("widget")
	assert.Error(t, err)
}
