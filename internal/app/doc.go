// Package app wires the registry, the namespace index and the dispatcher
// into one application instance with an isolated logger, and runs the
// load-then-report lifecycle for the CLI.
package app
