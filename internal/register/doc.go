// Package register turns plain Go functions into registry tools.
//
// Tool is the single entry point. In immediate mode it builds the metadata
// record and stores it in a Registry right away; in deferred mode it parks
// the options in a side-table keyed by the callable's identity, to be picked
// up later when the owning namespace is loaded. Whether a call defers is
// decided by an explicit Mode, or, when the mode is left ambient, by the
// innermost EnterDeferred scope active at call time.
//
// The pending side-table and the ambient scope stack are process-wide and
// unguarded: registration is a startup, single-goroutine activity. Callers
// needing concurrent registration must serialize access themselves.
package register
