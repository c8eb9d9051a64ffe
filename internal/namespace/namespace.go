// Package namespace holds the declarative index of loadable namespaces.
//
// A namespace is the unit the module and plugin loaders operate on: a dotted
// path naming a set of public member callables, optionally with an explicit
// RegisterTools hook for imperative registration. The index replaces an
// import mechanism: whether a source "exists" is a pure table lookup, never
// a partial load.
package namespace

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vk/toolreg/internal/registry"
)

// Hook is the reserved registration entry point a namespace may expose.
// Invoking it performs imperative registrations against the given registry.
type Hook func(reg *registry.Registry) error

// Namespace describes one loadable namespace.
type Namespace struct {
	// Path is the dotted identifier the dispatcher accepts as a source.
	Path string
	// Doc is a one-line description shown in listings.
	Doc string
	// Members maps public member names to their callables.
	Members map[string]any
	// RegisterTools, when non-nil, marks the namespace as a plugin.
	RegisterTools Hook
}

// MemberNames returns the member names in sorted order so scans are
// deterministic.
func (ns *Namespace) MemberNames() []string {
	names := make([]string, 0, len(ns.Members))
	for name := range ns.Members {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Index is the set of namespaces known to one application instance.
type Index struct {
	namespaces map[string]*Namespace
}

// NewIndex creates an empty Index.
func NewIndex() *Index {
	return &Index{namespaces: make(map[string]*Namespace)}
}

// Register adds a namespace to the index. Registering the same path twice
// is a programmer error and panics, as is an empty path.
func (ix *Index) Register(ns *Namespace) {
	if ns.Path == "" {
		panic("namespace with empty path")
	}
	if _, exists := ix.namespaces[ns.Path]; exists {
		panic(fmt.Sprintf("namespace %q already registered", ns.Path))
	}
	ix.namespaces[ns.Path] = ns
}

// Lookup returns the namespace registered under the given path.
func (ix *Index) Lookup(path string) (*Namespace, bool) {
	ns, ok := ix.namespaces[path]
	return ns, ok
}

// Has reports whether a path is registered.
func (ix *Index) Has(path string) bool {
	_, ok := ix.namespaces[path]
	return ok
}

// Paths returns all registered namespace paths, sorted.
func (ix *Index) Paths() []string {
	paths := make([]string, 0, len(ix.namespaces))
	for path := range ix.namespaces {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Resolve turns a dotted callable reference from a declaration table into a
// callable. "text.upper" resolves member "upper" of namespace "text";
// namespace paths may themselves contain dots, the longest registered
// prefix wins. References that match no namespace fall back to the builtin
// table, so bare references like "repr" work out of the box.
func (ix *Index) Resolve(ref string) (any, error) {
	for i := strings.LastIndex(ref, "."); i > 0; i = strings.LastIndex(ref[:i], ".") {
		nsPath, member := ref[:i], ref[i+1:]
		ns, ok := ix.namespaces[nsPath]
		if !ok {
			continue
		}
		fn, ok := ns.Members[member]
		if !ok {
			return nil, fmt.Errorf("namespace %q has no member %q", nsPath, member)
		}
		return fn, nil
	}
	if fn, ok := builtins[ref]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("unresolvable callable reference %q", ref)
}
