package register

// deferStack is the ambient registration context: a stack of "currently
// deferring?" flags. The bottom element is the process default and is never
// popped.
var deferStack = []bool{false}

// Scope is the handle returned by EnterDeferred. Its Exit restores the
// previous ambient state and is effective exactly once, so it is safe to
// run via defer on every exit path, panics included.
type Scope struct {
	exited bool
}

// EnterDeferred pushes deferred mode onto the ambient context. Every Tool
// call with ModeAmbient made before the matching Exit parks a pending
// registration instead of touching the registry.
func EnterDeferred() *Scope {
	deferStack = append(deferStack, true)
	return &Scope{}
}

// Exit restores the ambient state active before EnterDeferred. Calling it
// again is a no-op.
func (s *Scope) Exit() {
	if s.exited {
		return
	}
	s.exited = true
	deferStack = deferStack[:len(deferStack)-1]
}

// ambientDeferred reports the innermost ambient flag.
func ambientDeferred() bool {
	return deferStack[len(deferStack)-1]
}
