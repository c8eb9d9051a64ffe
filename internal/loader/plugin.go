package loader

import (
	"context"

	"github.com/vk/toolreg/internal/ctxlog"
	"github.com/vk/toolreg/internal/namespace"
	"github.com/vk/toolreg/internal/registry"
)

// PluginLoader loads namespaces that expose the explicit RegisterTools
// hook. It only invokes the hook and never scans for decorated members;
// winning over the ModuleLoader for hook-bearing namespaces is purely a
// dispatcher ordering concern.
type PluginLoader struct {
	reg    *registry.Registry
	index  *namespace.Index
	loaded loadedSet
}

// NewPluginLoader creates a PluginLoader registering into reg and resolving
// sources against index.
func NewPluginLoader(reg *registry.Registry, index *namespace.Index) *PluginLoader {
	return &PluginLoader{reg: reg, index: index, loaded: loadedSet{}}
}

// Name implements Loader.
func (l *PluginLoader) Name() string { return "plugin" }

// CanLoad claims registered namespaces exposing the RegisterTools hook.
func (l *PluginLoader) CanLoad(source string) bool {
	ns, ok := l.index.Lookup(source)
	return ok && ns.RegisterTools != nil
}

// Load invokes the namespace's registration hook once.
func (l *PluginLoader) Load(ctx context.Context, source string) error {
	logger := ctxlog.FromContext(ctx)

	if l.loaded.has(source) {
		logger.Debug("Plugin already loaded, skipping.", "source", source)
		return nil
	}

	ns, ok := l.index.Lookup(source)
	if !ok || ns.RegisterTools == nil {
		return &Error{Loader: l.Name(), Source: source, Kind: ErrSourceLoad}
	}

	if err := ns.RegisterTools(l.reg); err != nil {
		return &Error{Loader: l.Name(), Source: source, Kind: ErrRegistration, Err: err}
	}

	l.loaded.mark(source)
	logger.Info("Plugin loaded.", "source", source)
	return nil
}
