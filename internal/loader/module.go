package loader

import (
	"context"

	"github.com/vk/toolreg/internal/ctxlog"
	"github.com/vk/toolreg/internal/namespace"
	"github.com/vk/toolreg/internal/register"
	"github.com/vk/toolreg/internal/registry"
)

// ModuleLoader loads tools from registered namespaces. It finalizes every
// member carrying a pending registration and then honors the namespace's
// RegisterTools hook if one is present, so both mechanisms can coexist.
type ModuleLoader struct {
	reg    *registry.Registry
	index  *namespace.Index
	loaded loadedSet
}

// NewModuleLoader creates a ModuleLoader registering into reg and resolving
// sources against index.
func NewModuleLoader(reg *registry.Registry, index *namespace.Index) *ModuleLoader {
	return &ModuleLoader{reg: reg, index: index, loaded: loadedSet{}}
}

// Name implements Loader.
func (l *ModuleLoader) Name() string { return "module" }

// CanLoad claims any registered namespace path. A pure index lookup; no
// import-like side effects.
func (l *ModuleLoader) CanLoad(source string) bool {
	return l.index.Has(source)
}

// Load scans the namespace's public members and finalizes each pending
// registration through the immediate path. One bad member is logged and
// skipped so it does not abort the rest of the module; the module still
// counts as loaded. A failing RegisterTools hook fails the load.
func (l *ModuleLoader) Load(ctx context.Context, source string) error {
	logger := ctxlog.FromContext(ctx)

	if l.loaded.has(source) {
		logger.Debug("Module already loaded, skipping.", "source", source)
		return nil
	}

	ns, ok := l.index.Lookup(source)
	if !ok {
		return &Error{Loader: l.Name(), Source: source, Kind: ErrSourceLoad}
	}

	finalized := 0
	for _, name := range ns.MemberNames() {
		fn := ns.Members[name]
		opts, pending := register.Take(fn)
		if !pending {
			continue
		}
		if opts.Name == "" {
			opts.Name = name
		}
		opts.Mode = register.ModeImmediate
		if err := register.Tool(l.reg, fn, opts); err != nil {
			logger.Error("Failed to finalize deferred tool, skipping member.",
				"namespace", source, "member", name, "error", err)
			continue
		}
		finalized++
	}

	if ns.RegisterTools != nil {
		if err := ns.RegisterTools(l.reg); err != nil {
			return &Error{Loader: l.Name(), Source: source, Kind: ErrRegistration, Err: err}
		}
	}

	l.loaded.mark(source)
	logger.Info("Module loaded.", "source", source, "finalized", finalized)
	return nil
}
