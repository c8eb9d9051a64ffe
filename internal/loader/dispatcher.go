package loader

import (
	"context"
	"errors"

	"github.com/vk/toolreg/internal/ctxlog"
	"github.com/vk/toolreg/internal/namespace"
	"github.com/vk/toolreg/internal/registry"
)

// Dispatcher probes its loaders in a fixed priority order and delegates a
// source to the first one that claims it.
//
// Priority is part of the contract: table files beat plugin namespaces beat
// plain namespaces. A namespace exposing the RegisterTools hook is therefore
// always handled as a plugin, never scanned for decorated members; ties are
// resolved by this order alone, never by any notion of specificity.
type Dispatcher struct {
	loaders []Loader
}

// NewDispatcher builds a dispatcher with one loader of each kind, wired to
// the given registry and namespace index, in priority order.
func NewDispatcher(reg *registry.Registry, index *namespace.Index) *Dispatcher {
	return &Dispatcher{
		loaders: []Loader{
			NewTableLoader(reg, index),
			NewPluginLoader(reg, index),
			NewModuleLoader(reg, index),
		},
	}
}

// Loaders exposes the probing order, highest priority first.
func (d *Dispatcher) Loaders() []Loader {
	return d.loaders
}

// Load delegates the source to the first loader claiming it. Failures of
// the matched loader come back as *Error naming the source and loader with
// the cause chained; an unclaimed source yields ErrNoSuitableLoader.
func (d *Dispatcher) Load(ctx context.Context, source string) error {
	logger := ctxlog.FromContext(ctx)

	for _, l := range d.loaders {
		if !l.CanLoad(source) {
			continue
		}
		logger.Debug("Dispatching source to loader.", "source", source, "loader", l.Name())
		if err := l.Load(ctx, source); err != nil {
			var lerr *Error
			if errors.As(err, &lerr) {
				return err
			}
			return &Error{Loader: l.Name(), Source: source, Kind: ErrSourceLoad, Err: err}
		}
		return nil
	}

	return &Error{Source: source, Kind: ErrNoSuitableLoader}
}

// LoadMany loads the sources strictly in the given order. A failing source
// is logged and does not stop the remaining ones; the returned map holds
// the error for every failed source, so callers can tell what failed
// without scraping logs. An empty map means full success.
func (d *Dispatcher) LoadMany(ctx context.Context, sources []string) map[string]error {
	logger := ctxlog.FromContext(ctx)

	failed := make(map[string]error)
	for _, source := range sources {
		if err := d.Load(ctx, source); err != nil {
			logger.Error("Failed to load source.", "source", source, "error", err)
			failed[source] = err
		}
	}
	return failed
}
