package registry

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrDuplicateTool is returned when a (name, kind) identity is already
	// taken and no overwrite was requested.
	ErrDuplicateTool = errors.New("tool already registered")

	// ErrInvalidTool is returned when a tool fails validation.
	ErrInvalidTool = errors.New("invalid tool")
)

// Registry maps (name, kind) identities to tools. Aliases occupy keys of
// their own and resolve to the canonical entry on lookup.
type Registry struct {
	tools   map[Key]*Tool
	aliases map[Key]Key
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		tools:   make(map[Key]*Tool),
		aliases: make(map[Key]Key),
	}
}

// Register stores the tool under its identity and every alias. Without
// overwrite, any occupied key (canonical or alias) fails the registration
// and leaves the existing entries untouched.
func (r *Registry) Register(t *Tool, overwrite bool) error {
	if err := t.Validate(); err != nil {
		return err
	}

	keys := make([]Key, 0, 1+len(t.Aliases))
	keys = append(keys, t.Key())
	for _, alias := range t.Aliases {
		if alias == "" {
			return fmt.Errorf("%w: %q declares an empty alias", ErrInvalidTool, t.Name)
		}
		keys = append(keys, Key{Name: alias, Kind: t.Kind})
	}

	if !overwrite {
		for _, key := range keys {
			if r.occupied(key) {
				return fmt.Errorf("%w: %s", ErrDuplicateTool, key)
			}
		}
	}

	r.tools[t.Key()] = t
	for _, alias := range t.Aliases {
		r.aliases[Key{Name: alias, Kind: t.Kind}] = t.Key()
	}
	return nil
}

func (r *Registry) occupied(key Key) bool {
	if _, ok := r.tools[key]; ok {
		return true
	}
	_, ok := r.aliases[key]
	return ok
}

// Lookup returns the tool registered under the given name and kind,
// resolving aliases to their canonical entry.
func (r *Registry) Lookup(name string, kind Kind) (*Tool, bool) {
	key := Key{Name: name, Kind: kind}
	if t, ok := r.tools[key]; ok {
		return t, true
	}
	if canonical, ok := r.aliases[key]; ok {
		t, ok := r.tools[canonical]
		return t, ok
	}
	return nil, false
}

// Has reports whether the exact identity is taken, alias keys included.
func (r *Registry) Has(name string, kind Kind) bool {
	return r.occupied(Key{Name: name, Kind: kind})
}

// All returns every canonical tool, sorted by kind then name.
func (r *Registry) All() []*Tool {
	out := make([]*Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// OfKind returns all canonical tools of one kind, sorted by name.
func (r *Registry) OfKind(kind Kind) []*Tool {
	var out []*Tool
	for _, t := range r.tools {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len counts canonical entries; aliases are not counted.
func (r *Registry) Len() int {
	return len(r.tools)
}
