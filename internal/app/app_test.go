package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/toolreg/internal/namespace"
	"github.com/vk/toolreg/internal/registry"
)

func textNamespace() *namespace.Namespace {
	return &namespace.Namespace{
		Path:    "text",
		Members: map[string]any{"upper": strings.ToUpper},
		RegisterTools: func(r *registry.Registry) error {
			return r.Register(&registry.Tool{
				Name:  "upper",
				Kind:  registry.KindFilter,
				Fn:    strings.ToUpper,
				Group: "text",
			}, false)
		},
	}
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	_, err := NewConfig(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one source")

	cfg, err := NewConfig(Config{Sources: []string{"text"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"text"}, cfg.Sources)
}

func TestRun_LoadsNamespaceSource(t *testing.T) {
	testApp, logBuffer := SetupAppTest(t, &Config{
		Sources:   []string{"text"},
		LogFormat: "text",
	}, textNamespace())

	require.NoError(t, testApp.Run(context.Background()))

	assert.True(t, testApp.Registry().Has("upper", registry.KindFilter))
	assert.Contains(t, logBuffer.String(), "All sources loaded.")

	out := logBuffer.String()
	assert.Contains(t, out, "1 tools registered")
	assert.Contains(t, out, "upper")
}

func TestRun_LoadsTableSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tools.toml")
	require.NoError(t, os.WriteFile(path,
		[]byte("[shout]\nfn = \"text.upper\"\ngroup = \"text\"\n"), 0644))

	testApp, _ := SetupAppTest(t, &Config{
		Sources:   []string{path},
		LogFormat: "text",
	}, textNamespace())

	require.NoError(t, testApp.Run(context.Background()))
	assert.True(t, testApp.Registry().Has("shout", registry.KindFilter))
}

func TestRun_ReportsFailedSources(t *testing.T) {
	testApp, logBuffer := SetupAppTest(t, &Config{
		Sources:   []string{"ghost.one", "text", "ghost.two"},
		LogFormat: "text",
	}, textNamespace())

	err := testApp.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load 2 of 3 sources")
	assert.Contains(t, err.Error(), "ghost.one, ghost.two", "failed sources are listed sorted")

	// The good source still loaded.
	assert.True(t, testApp.Registry().Has("upper", registry.KindFilter))
	assert.Contains(t, logBuffer.String(), "Failed to load source.")
}

func TestNewApp_DefaultsToCoreNamespaces(t *testing.T) {
	testApp, _ := SetupAppTest(t, &Config{
		Sources:   []string{"text"},
		LogFormat: "text",
	})

	require.NoError(t, testApp.Run(context.Background()))
	assert.Greater(t, testApp.Registry().Len(), 0, "core text namespace registers tools")
}

func TestNewApp_DuplicateNamespacePanics(t *testing.T) {
	assert.Panics(t, func() {
		NewApp(&SafeBuffer{}, &Config{
			Sources:   []string{"text"},
			LogFormat: "text",
			LogLevel:  "warn",
		}, textNamespace(), textNamespace())
	})
}
