// Package loader materializes tools from heterogeneous sources.
//
// A Loader recognizes one source kind via CanLoad, a pure predicate that
// may probe existence but never partially loads, and registers everything
// the source declares via Load. Each loader remembers the sources it has
// processed; loading a source twice is a guaranteed no-op.
//
// The Dispatcher owns one loader of each kind in a fixed priority order:
// table files first, then plugin namespaces, then plain namespaces. The
// first CanLoad match is used exclusively; ordering, not specificity, is
// the contract.
//
// Loaders and the Dispatcher are not safe for concurrent use; loading is a
// single-goroutine startup activity.
package loader
