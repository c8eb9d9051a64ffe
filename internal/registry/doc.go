// Package registry is the canonical store of tool metadata.
//
// A Tool is a named, typed callable (a template filter, test or plain
// function) together with the metadata describing it: group, icon, aliases,
// usage examples and free-form key/value pairs. The Registry maps the
// (name, kind) identity to exactly one Tool; registration is the only
// mutator, and a duplicate identity is rejected unless the caller asks for
// an overwrite explicitly.
//
// The Registry is not safe for concurrent use. Loading happens once, on a
// single goroutine, during application startup; callers that need anything
// else must add their own mutual exclusion around it.
package registry
