// Package serialize provides the builtin serialization tools.
//
// The namespace carries both registration mechanisms at once: the JSON
// helpers are deferred decorations finalized by a module scan, the TOML
// helpers are registered imperatively by the RegisterTools hook. Because the
// dispatcher routes hook-bearing namespaces to the plugin loader, loading
// "serialize" through the dispatcher registers only the TOML tools; the JSON
// members finalize when the namespace is loaded as a module directly.
package serialize

import (
	"encoding/json"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/vk/toolreg/internal/namespace"
	"github.com/vk/toolreg/internal/register"
	"github.com/vk/toolreg/internal/registry"
)

// DumpJSON renders a value as indented JSON.
func DumpJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// LoadJSON parses a JSON document.
func LoadJSON(data string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return nil, err
	}
	return v, nil
}

// DumpTOML renders a value as a TOML document.
func DumpTOML(v any) (string, error) {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(v); err != nil {
		return "", err
	}
	return b.String(), nil
}

// LoadTOML parses a TOML document into a nested mapping.
func LoadTOML(data string) (map[string]any, error) {
	var v map[string]any
	if err := toml.Unmarshal([]byte(data), &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Namespace builds the "serialize" namespace.
func Namespace() *namespace.Namespace {
	register.Defer(DumpJSON, register.Options{
		Kind:  registry.KindFilter,
		Name:  "dump_json",
		Group: "serialize",
		Icon:  "mdi:code-json",
		Examples: map[string]registry.Example{
			"basic": {Template: `{{ data | dump_json }}`, Title: "Basic", Markdown: true},
		},
	})
	register.Defer(LoadJSON, register.Options{
		Kind:  registry.KindFilter,
		Name:  "load_json",
		Group: "serialize",
		Icon:  "mdi:code-json",
	})

	return &namespace.Namespace{
		Path: "serialize",
		Doc:  "Serialization filters for JSON and TOML.",
		Members: map[string]any{
			"dump_json": DumpJSON,
			"load_json": LoadJSON,
			"dump_toml": DumpTOML,
			"load_toml": LoadTOML,
		},
		RegisterTools: registerTools,
	}
}

func registerTools(reg *registry.Registry) error {
	if err := register.Tool(reg, DumpTOML, register.Options{
		Kind:             registry.KindFilter,
		Name:             "dump_toml",
		Group:            "serialize",
		Icon:             "mdi:file-cog",
		Mode:             register.ModeImmediate,
		RequiredPackages: []string{"github.com/pelletier/go-toml/v2"},
	}); err != nil {
		return err
	}
	return register.Tool(reg, LoadTOML, register.Options{
		Kind:             registry.KindFilter,
		Name:             "load_toml",
		Group:            "serialize",
		Icon:             "mdi:file-cog",
		Mode:             register.ModeImmediate,
		RequiredPackages: []string{"github.com/pelletier/go-toml/v2"},
	})
}
