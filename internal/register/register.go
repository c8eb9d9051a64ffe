package register

import (
	"fmt"
	"reflect"
	"regexp"
	"runtime"
	"strings"

	"github.com/vk/toolreg/internal/registry"
)

// Mode selects when a registration takes effect.
type Mode int

const (
	// ModeAmbient defers exactly when the innermost ambient scope says so.
	// This is the zero value, so plain Options default to ambient behavior.
	ModeAmbient Mode = iota
	// ModeImmediate registers into the Registry synchronously.
	ModeImmediate
	// ModeDeferred parks the options for a later namespace scan.
	ModeDeferred
)

// Options configures one registration.
type Options struct {
	// Kind of the tool. Required; there is no default at this layer, the
	// table loader applies its own filter default before calling in.
	Kind registry.Kind
	// Name overrides the tool name. Empty means "derive from the callable".
	Name string
	// Group labels the tool's display category.
	Group string
	// Mode resolves deferred-vs-immediate; see the Mode constants.
	Mode Mode
	// Overwrite allows replacing an existing (name, kind) entry.
	Overwrite bool

	Icon             string
	Description      string
	Aliases          []string
	RequiredPackages []string
	Examples         map[string]registry.Example
	Meta             map[string]string
}

// anonymousFn matches the synthesized name segments the runtime gives
// closures, e.g. "func1" or "func2.1".
var anonymousFn = regexp.MustCompile(`^func\d+(\.\d+)*$`)

// Tool registers fn according to opts.
//
// The effective mode is resolved once, at call time: an explicit Mode wins,
// ModeAmbient consults the ambient scope. Deferred calls never touch reg
// (which may then be nil) and overwrite any earlier pending record for the
// same callable. Immediate calls build the metadata record and store it,
// returning an error naming the callable when construction, validation or
// insertion fails.
func Tool(reg *registry.Registry, fn any, opts Options) error {
	if _, ok := callableID(fn); !ok {
		return fmt.Errorf("register %q: %w: not a function", displayName(fn, opts), registry.ErrInvalidTool)
	}

	deferred := opts.Mode == ModeDeferred
	if opts.Mode == ModeAmbient {
		deferred = ambientDeferred()
	}

	if deferred {
		setPending(fn, opts)
		return nil
	}

	if reg == nil {
		return fmt.Errorf("register %q: no registry for immediate registration", displayName(fn, opts))
	}

	t, err := build(fn, opts)
	if err != nil {
		return fmt.Errorf("register %q: %w", displayName(fn, opts), err)
	}
	if err := reg.Register(t, opts.Overwrite); err != nil {
		return fmt.Errorf("register %q: %w", t.Name, err)
	}
	return nil
}

// Defer parks a pending registration for fn regardless of the ambient
// state. It panics on a non-callable: namespaces are constructed from
// static declarations, so that is a programmer error.
func Defer(fn any, opts Options) {
	opts.Mode = ModeDeferred
	if err := Tool(nil, fn, opts); err != nil {
		panic(err)
	}
}

// build constructs the immutable Tool record from a callable and options.
func build(fn any, opts Options) (*registry.Tool, error) {
	name := opts.Name
	if name == "" {
		derived, err := funcName(fn)
		if err != nil {
			return nil, err
		}
		name = derived
	}

	group := opts.Group
	if group == "" {
		group = "general"
	}

	return &registry.Tool{
		Name:             name,
		Kind:             opts.Kind,
		Fn:               fn,
		Group:            group,
		Description:      opts.Description,
		Icon:             opts.Icon,
		Aliases:          opts.Aliases,
		RequiredPackages: opts.RequiredPackages,
		Examples:         opts.Examples,
		Meta:             opts.Meta,
		Signature:        reflect.TypeOf(fn).String(),
	}, nil
}

// funcName derives the default tool name from the function's own
// identifier: the last path segment, lower-cased. Closures have no usable
// identifier and need an explicit name.
func funcName(fn any) (string, error) {
	pc, ok := callableID(fn)
	if !ok {
		return "", fmt.Errorf("cannot derive a name for a non-function value, set Options.Name")
	}
	rf := runtime.FuncForPC(pc)
	if rf == nil {
		return "", fmt.Errorf("cannot derive a name for the callable, set Options.Name")
	}

	full := rf.Name()
	full = strings.TrimSuffix(full, "-fm") // bound method values
	if i := strings.LastIndex(full, "/"); i >= 0 {
		full = full[i+1:]
	}
	if i := strings.LastIndex(full, "."); i >= 0 {
		full = full[i+1:]
	}
	if full == "" || anonymousFn.MatchString(full) {
		return "", fmt.Errorf("anonymous function needs an explicit name, set Options.Name")
	}
	return strings.ToLower(full), nil
}

// displayName is a best-effort identity for error messages before a proper
// name has been resolved.
func displayName(fn any, opts Options) string {
	if opts.Name != "" {
		return opts.Name
	}
	if name, err := funcName(fn); err == nil {
		return name
	}
	return fmt.Sprintf("%T", fn)
}
