package registry

import (
	"fmt"
	"reflect"
)

// Kind classifies what a registered callable is to the consuming template
// engine.
type Kind string

const (
	KindFilter   Kind = "filter"
	KindTest     Kind = "test"
	KindFunction Kind = "function"
)

// ParseKind converts a string from a declaration table into a Kind. The
// empty string defaults to KindFilter, matching declarative tables where
// most entries are filters.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case "":
		return KindFilter, nil
	case KindFilter, KindTest, KindFunction:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown tool kind %q", s)
	}
}

// Example is one labeled usage example attached to a tool.
type Example struct {
	// Template is the input string or expression demonstrating the tool.
	Template string
	// Title labels the example.
	Title string
	// Description explains what the example shows.
	Description string
	// Markdown marks the template for rendering as rich text.
	Markdown bool
}

// Key is the identity of a tool inside a Registry.
type Key struct {
	Name string
	Kind Kind
}

func (k Key) String() string {
	return string(k.Kind) + "/" + k.Name
}

// Tool holds one registered callable and its metadata. Tools are built once
// at registration time and never mutated afterwards.
type Tool struct {
	Name             string
	Kind             Kind
	Fn               any
	Group            string
	Description      string
	Icon             string
	Aliases          []string
	RequiredPackages []string
	Examples         map[string]Example
	// Meta holds free-form key/value metadata from declaration tables.
	Meta map[string]string
	// Signature is the callable's reflected type, e.g. "func(string) string".
	Signature string
}

// Key returns the tool's registry identity.
func (t *Tool) Key() Key {
	return Key{Name: t.Name, Kind: t.Kind}
}

// Validate checks that the tool can be stored: it needs a name, a known
// kind and a callable Fn.
func (t *Tool) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidTool)
	}
	switch t.Kind {
	case KindFilter, KindTest, KindFunction:
	default:
		return fmt.Errorf("%w: unknown kind %q for %q", ErrInvalidTool, t.Kind, t.Name)
	}
	if t.Fn == nil {
		return fmt.Errorf("%w: %q has no callable", ErrInvalidTool, t.Name)
	}
	if reflect.TypeOf(t.Fn).Kind() != reflect.Func {
		return fmt.Errorf("%w: %q is backed by a %T, not a function", ErrInvalidTool, t.Name, t.Fn)
	}
	return nil
}
