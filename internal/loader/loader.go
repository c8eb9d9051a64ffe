package loader

import (
	"context"
	"errors"
	"fmt"
)

// Loader is the capability contract every source-kind loader implements.
type Loader interface {
	// Name identifies the loader in logs and errors.
	Name() string
	// CanLoad reports whether this loader claims the source. It must not
	// mutate state and must not fail on well-formed-but-unmatched input.
	CanLoad(source string) bool
	// Load materializes the source and registers its tools. Loading an
	// already-loaded source is a no-op. Failures come back as *Error.
	Load(ctx context.Context, source string) error
}

// Failure taxonomy. Every *Error wraps exactly one of these sentinels, so
// errors.Is classifies any failure the package produces.
var (
	// ErrNoSuitableLoader: no loader claimed the source.
	ErrNoSuitableLoader = errors.New("no suitable loader")

	// ErrSourceLoad: a claimed source could not be materialized (parse
	// error, missing file, unresolvable callable reference).
	ErrSourceLoad = errors.New("source load failed")

	// ErrRegistration: a tool could not be constructed or inserted.
	ErrRegistration = errors.New("tool registration failed")
)

// Error is the single error surface of the loading subsystem. It names the
// source and loader involved and chains both the taxonomy sentinel and the
// underlying cause.
type Error struct {
	Loader string // empty when no loader was involved
	Source string
	Kind   error // one of the sentinels above
	Err    error // underlying cause, may be nil
}

func (e *Error) Error() string {
	who := e.Loader
	if who == "" {
		who = "dispatcher"
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: source %q: %v", who, e.Source, e.Kind)
	}
	return fmt.Sprintf("%s: source %q: %v: %v", who, e.Source, e.Kind, e.Err)
}

// Unwrap exposes the sentinel and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// loadedSet tracks the source identifiers a loader has already processed.
type loadedSet map[string]struct{}

func (s loadedSet) has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s loadedSet) mark(id string) {
	s[id] = struct{}{}
}
