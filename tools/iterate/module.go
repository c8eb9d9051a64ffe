// Package iterate provides the builtin sequence tools. The namespace
// registers imperatively through the RegisterTools hook, plugin-style.
package iterate

import (
	"fmt"

	"github.com/vk/toolreg/internal/namespace"
	"github.com/vk/toolreg/internal/register"
	"github.com/vk/toolreg/internal/registry"
)

// Batched splits items into consecutive chunks of at most n elements.
func Batched(items []any, n int) ([][]any, error) {
	if n < 1 {
		return nil, fmt.Errorf("batch size must be at least 1, got %d", n)
	}
	var out [][]any
	for len(items) > n {
		out = append(out, items[:n])
		items = items[n:]
	}
	if len(items) > 0 {
		out = append(out, items)
	}
	return out, nil
}

// Unique returns items with duplicates removed, keeping first occurrences.
func Unique(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// Flatten collapses a nested map into a single level, joining keys with sep.
func Flatten(m map[string]any, sep string) map[string]any {
	if sep == "" {
		sep = "/"
	}
	out := make(map[string]any)
	flattenInto(out, m, sep, "")
	return out
}

func flattenInto(out map[string]any, m map[string]any, sep, prefix string) {
	for key, val := range m {
		full := key
		if prefix != "" {
			full = prefix + sep + key
		}
		if nested, ok := val.(map[string]any); ok {
			flattenInto(out, nested, sep, full)
			continue
		}
		out[full] = val
	}
}

// Namespace builds the "iterate" namespace.
func Namespace() *namespace.Namespace {
	return &namespace.Namespace{
		Path: "iterate",
		Doc:  "Sequence and mapping filters.",
		Members: map[string]any{
			"batched": Batched,
			"unique":  Unique,
			"flatten": Flatten,
		},
		RegisterTools: registerTools,
	}
}

func registerTools(reg *registry.Registry) error {
	entries := []struct {
		fn   any
		opts register.Options
	}{
		{Batched, register.Options{
			Kind:  registry.KindFilter,
			Group: "iter",
			Icon:  "mdi:view-grid",
			Examples: map[string]registry.Example{
				"basic": {Template: `{{ [1, 2, 3, 4] | batched(2) }}`, Title: "Basic"},
			},
		}},
		{Unique, register.Options{
			Kind:  registry.KindFilter,
			Group: "iter",
			Icon:  "mdi:filter-variant-remove",
		}},
		{Flatten, register.Options{
			Kind:        registry.KindFilter,
			Group:       "iter",
			Icon:        "mdi:arrow-collapse-vertical",
			Description: "Flatten a nested mapping into a single level.",
		}},
	}
	for _, entry := range entries {
		entry.opts.Mode = register.ModeImmediate
		if err := register.Tool(reg, entry.fn, entry.opts); err != nil {
			return err
		}
	}
	return nil
}
