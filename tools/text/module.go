// Package text provides the builtin string manipulation tools.
package text

import (
	"regexp"
	"strings"

	"github.com/vk/toolreg/internal/namespace"
	"github.com/vk/toolreg/internal/register"
	"github.com/vk/toolreg/internal/registry"
)

var caseBoundary = regexp.MustCompile(`(?:^|[_\s-])+([a-zA-Z])`)

// RemoveSuffix removes the given suffix from text, if present.
func RemoveSuffix(text, suffix string) string {
	return strings.TrimSuffix(text, suffix)
}

// RemovePrefix removes the given prefix from text, if present.
func RemovePrefix(text, prefix string) string {
	return strings.TrimPrefix(text, prefix)
}

// LStrip strips the given cutset from the beginning of text. An empty
// cutset strips whitespace.
func LStrip(text, cutset string) string {
	if cutset == "" {
		return strings.TrimLeft(text, " \t\n\r")
	}
	return strings.TrimLeft(text, cutset)
}

// RStrip strips the given cutset from the end of text. An empty cutset
// strips whitespace.
func RStrip(text, cutset string) string {
	if cutset == "" {
		return strings.TrimRight(text, " \t\n\r")
	}
	return strings.TrimRight(text, cutset)
}

// SnakeCase converts CamelCase or mixed text to snake_case.
func SnakeCase(text string) string {
	var b strings.Builder
	for i, r := range text {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		if r == ' ' || r == '-' {
			b.WriteByte('_')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CamelCase converts snake_case, kebab-case or spaced text to lowerCamelCase.
func CamelCase(text string) string {
	out := caseBoundary.ReplaceAllStringFunc(text, func(m string) string {
		return strings.ToUpper(m[len(m)-1:])
	})
	if out == "" {
		return out
	}
	return strings.ToLower(out[:1]) + out[1:]
}

// Namespace builds the "text" namespace. All members carry deferred
// registrations; their metadata is applied when the namespace is loaded as
// a module.
func Namespace() *namespace.Namespace {
	register.Defer(RemoveSuffix, register.Options{
		Kind:  registry.KindFilter,
		Group: "text",
		Icon:  "mdi:format-letter-ends-with",
		Examples: map[string]registry.Example{
			"basic": {Template: `{{ "acccc" | removesuffix("c") }}`, Title: "Basic"},
		},
	})
	register.Defer(RemovePrefix, register.Options{
		Kind:  registry.KindFilter,
		Group: "text",
		Icon:  "mdi:format-letter-starts-with",
		Examples: map[string]registry.Example{
			"basic": {Template: `{{ "ccca" | removeprefix("c") }}`, Title: "Basic"},
		},
	})
	register.Defer(LStrip, register.Options{
		Kind:  registry.KindFilter,
		Group: "text",
		Icon:  "mdi:format-align-left",
		Examples: map[string]registry.Example{
			"basic": {Template: `{{ " abc" | lstrip }}`, Title: "Basic"},
		},
	})
	register.Defer(RStrip, register.Options{
		Kind:  registry.KindFilter,
		Group: "text",
		Icon:  "mdi:format-align-right",
		Examples: map[string]registry.Example{
			"basic": {Template: `{{ "abc " | rstrip }}`, Title: "Basic"},
		},
	})
	register.Defer(SnakeCase, register.Options{
		Kind:        registry.KindFilter,
		Name:        "snake_case",
		Group:       "text",
		Icon:        "mdi:format-letter-case",
		Description: "Convert a string to snake_case.",
		Examples: map[string]registry.Example{
			"basic": {Template: `{{ "fooBar" | snake_case }}`, Title: "Basic"},
		},
	})
	register.Defer(CamelCase, register.Options{
		Kind:        registry.KindFilter,
		Name:        "camel_case",
		Group:       "text",
		Icon:        "mdi:format-letter-case",
		Description: "Convert a string to lowerCamelCase.",
		Examples: map[string]registry.Example{
			"basic": {Template: `{{ "foo_bar" | camel_case }}`, Title: "Basic"},
		},
	})

	return &namespace.Namespace{
		Path: "text",
		Doc:  "String manipulation filters.",
		Members: map[string]any{
			"removesuffix": RemoveSuffix,
			"removeprefix": RemovePrefix,
			"lstrip":       LStrip,
			"rstrip":       RStrip,
			"snake_case":   SnakeCase,
			"camel_case":   CamelCase,
		},
	}
}
