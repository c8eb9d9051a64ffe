package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/vk/toolreg/internal/ctxlog"
	"github.com/vk/toolreg/internal/fsutil"
	"github.com/vk/toolreg/internal/namespace"
	"github.com/vk/toolreg/internal/register"
	"github.com/vk/toolreg/internal/registry"
)

// tableExtensions are the structured-table formats the TableLoader claims.
var tableExtensions = []string{".toml", ".hcl"}

// declaration is the format-agnostic form of one table entry, shared by the
// TOML and HCL codecs.
type declaration struct {
	name             string
	fn               string
	kind             string
	group            string
	icon             string
	description      string
	aliases          []string
	requiredPackages []string
	examples         map[string]registry.Example
	meta             map[string]string
}

// TableLoader loads tools declared in structured table files. Each entry
// names a callable by dotted reference; the reference is resolved through
// the namespace index and registered with the declared metadata, defaulting
// to the filter kind.
type TableLoader struct {
	reg    *registry.Registry
	index  *namespace.Index
	loaded loadedSet
}

// NewTableLoader creates a TableLoader registering into reg and resolving
// callable references against index.
func NewTableLoader(reg *registry.Registry, index *namespace.Index) *TableLoader {
	return &TableLoader{reg: reg, index: index, loaded: loadedSet{}}
}

// Name implements Loader.
func (l *TableLoader) Name() string { return "table" }

// CanLoad claims existing files with a table extension, and directories
// containing at least one such file. Classification is by extension and a
// cheap existence check; no file is parsed here.
func (l *TableLoader) CanLoad(source string) bool {
	if slices.Contains(tableExtensions, filepath.Ext(source)) {
		info, err := os.Stat(source)
		return err == nil && info.Mode().IsRegular()
	}
	info, err := os.Stat(source)
	if err != nil || !info.IsDir() {
		return false
	}
	files, err := fsutil.FindFilesByExtensions(source, tableExtensions...)
	return err == nil && len(files) > 0
}

// Load parses every table file under the source and registers the declared
// tools. All declarations are parsed and resolved before the first
// registration, so a malformed or unresolvable entry fails the whole source
// without touching the registry.
func (l *TableLoader) Load(ctx context.Context, source string) error {
	logger := ctxlog.FromContext(ctx)

	id, err := filepath.Abs(source)
	if err != nil {
		return &Error{Loader: l.Name(), Source: source, Kind: ErrSourceLoad, Err: err}
	}
	if l.loaded.has(id) {
		logger.Debug("Table source already loaded, skipping.", "source", source)
		return nil
	}

	files, err := l.tableFiles(source)
	if err != nil {
		return &Error{Loader: l.Name(), Source: source, Kind: ErrSourceLoad, Err: err}
	}
	if len(files) == 0 {
		logger.Warn("No table files found in source.", "source", source)
		l.loaded.mark(id)
		return nil
	}

	var decls []declaration
	for _, file := range files {
		fileDecls, err := parseTableFile(file)
		if err != nil {
			return &Error{Loader: l.Name(), Source: source, Kind: ErrSourceLoad, Err: err}
		}
		decls = append(decls, fileDecls...)
	}

	// Resolve everything up front: one bad reference fails the source
	// before any entry is registered.
	type resolved struct {
		fn   any
		opts register.Options
	}
	pending := make([]resolved, 0, len(decls))
	for _, decl := range decls {
		if decl.fn == "" {
			err := fmt.Errorf("tool %q: missing fn reference", decl.name)
			return &Error{Loader: l.Name(), Source: source, Kind: ErrSourceLoad, Err: err}
		}
		kind, err := registry.ParseKind(decl.kind)
		if err != nil {
			return &Error{Loader: l.Name(), Source: source, Kind: ErrSourceLoad,
				Err: fmt.Errorf("tool %q: %w", decl.name, err)}
		}
		fn, err := l.index.Resolve(decl.fn)
		if err != nil {
			return &Error{Loader: l.Name(), Source: source, Kind: ErrSourceLoad,
				Err: fmt.Errorf("tool %q: %w", decl.name, err)}
		}
		pending = append(pending, resolved{fn: fn, opts: register.Options{
			Kind:             kind,
			Name:             decl.name,
			Group:            decl.group,
			Mode:             register.ModeImmediate,
			Icon:             decl.icon,
			Description:      decl.description,
			Aliases:          decl.aliases,
			RequiredPackages: decl.requiredPackages,
			Examples:         decl.examples,
			Meta:             decl.meta,
		}})
	}

	for _, entry := range pending {
		if err := register.Tool(l.reg, entry.fn, entry.opts); err != nil {
			return &Error{Loader: l.Name(), Source: source, Kind: ErrRegistration, Err: err}
		}
		logger.Debug("Registered tool from table.", "tool", entry.opts.Name, "source", source)
	}

	l.loaded.mark(id)
	logger.Info("Table source loaded.", "source", source, "tools", len(pending))
	return nil
}

// tableFiles expands a source path into the list of table files it covers.
func (l *TableLoader) tableFiles(source string) ([]string, error) {
	info, err := os.Stat(source)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return fsutil.FindFilesByExtensions(source, tableExtensions...)
	}
	if !slices.Contains(tableExtensions, filepath.Ext(source)) {
		return nil, fmt.Errorf("%s is not a table file", source)
	}
	return []string{source}, nil
}

// parseTableFile dispatches to the codec matching the file extension.
func parseTableFile(path string) ([]declaration, error) {
	switch filepath.Ext(path) {
	case ".toml":
		return parseTOMLTable(path)
	case ".hcl":
		return parseHCLTable(path)
	default:
		return nil, fmt.Errorf("unsupported table format %q", filepath.Ext(path))
	}
}

// tomlEntry is the TOML shape of one table section.
type tomlEntry struct {
	Fn               string                 `toml:"fn"`
	Type             string                 `toml:"type"`
	Group            string                 `toml:"group"`
	Icon             string                 `toml:"icon"`
	Description      string                 `toml:"description"`
	Aliases          []string               `toml:"aliases"`
	RequiredPackages []string               `toml:"required_packages"`
	Meta             map[string]string      `toml:"meta"`
	Examples         map[string]tomlExample `toml:"examples"`
}

type tomlExample struct {
	Template    string `toml:"template"`
	Title       string `toml:"title"`
	Description string `toml:"description"`
	Markdown    bool   `toml:"markdown"`
}

func parseTOMLTable(path string) ([]declaration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc map[string]tomlEntry
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse TOML file %s: %w", path, err)
	}

	names := make([]string, 0, len(doc))
	for name := range doc {
		names = append(names, name)
	}
	sort.Strings(names)

	decls := make([]declaration, 0, len(doc))
	for _, name := range names {
		entry := doc[name]
		decl := declaration{
			name:             name,
			fn:               entry.Fn,
			kind:             entry.Type,
			group:            entry.Group,
			icon:             entry.Icon,
			description:      entry.Description,
			aliases:          entry.Aliases,
			requiredPackages: entry.RequiredPackages,
			meta:             entry.Meta,
		}
		if len(entry.Examples) > 0 {
			decl.examples = make(map[string]registry.Example, len(entry.Examples))
			for label, ex := range entry.Examples {
				decl.examples[label] = registry.Example{
					Template:    ex.Template,
					Title:       ex.Title,
					Description: ex.Description,
					Markdown:    ex.Markdown,
				}
			}
		}
		decls = append(decls, decl)
	}
	return decls, nil
}
