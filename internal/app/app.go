package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/vk/toolreg/internal/ctxlog"
	"github.com/vk/toolreg/internal/loader"
	"github.com/vk/toolreg/internal/namespace"
	"github.com/vk/toolreg/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle: one logger, one registry, one namespace index, one dispatcher.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	registry   *registry.Registry
	index      *namespace.Index
	dispatcher *loader.Dispatcher
}

// NewApp is the constructor for the main application. When no namespaces
// are given, the builtin core namespaces are registered. A duplicate
// namespace path is a programmer error and panics during construction.
func NewApp(outW io.Writer, cfg *Config, namespaces ...*namespace.Namespace) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	if len(namespaces) == 0 {
		namespaces = coreNamespaces()
	}
	index := namespace.NewIndex()
	for _, ns := range namespaces {
		index.Register(ns)
	}
	logger.Debug("Namespaces registered.", "count", len(namespaces))

	reg := registry.New()
	return &App{
		outW:       outW,
		logger:     logger,
		config:     cfg,
		registry:   reg,
		index:      index,
		dispatcher: loader.NewDispatcher(reg, index),
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Dispatcher returns the application's dispatcher. This is primarily for testing.
func (a *App) Dispatcher() *loader.Dispatcher {
	return a.dispatcher
}

// Run loads all configured sources and prints a summary of the registered
// tools. Failed sources do not stop the remaining ones; they are reported
// together in the returned error.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "sources", a.config.Sources)

	failed := a.dispatcher.LoadMany(ctx, a.config.Sources)

	a.printSummary()

	if len(failed) > 0 {
		sources := make([]string, 0, len(failed))
		for source := range failed {
			sources = append(sources, source)
		}
		sort.Strings(sources)
		return fmt.Errorf("failed to load %d of %d sources: %s",
			len(failed), len(a.config.Sources), strings.Join(sources, ", "))
	}

	a.logger.Info("All sources loaded.", "tools", a.registry.Len())
	return nil
}

func (a *App) printSummary() {
	tools := a.registry.All()
	fmt.Fprintf(a.outW, "%d tools registered\n", len(tools))
	for _, t := range tools {
		line := fmt.Sprintf("  %-10s %-20s group=%s", t.Kind, t.Name, t.Group)
		if len(t.Aliases) > 0 {
			line += " aliases=" + strings.Join(t.Aliases, ",")
		}
		fmt.Fprintln(a.outW, line)
	}
}
