package register

import "reflect"

// pendingTable maps callable identities to their deferred registration
// options. An explicit side-table keeps finalization an auditable lookup
// instead of attribute probing on the callable itself.
var pendingTable = map[uintptr]Options{}

// callableID derives the identity key for a function value. Two references
// to the same top-level function share one identity.
func callableID(fn any) (uintptr, bool) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return 0, false
	}
	return v.Pointer(), true
}

func setPending(fn any, opts Options) bool {
	id, ok := callableID(fn)
	if !ok {
		return false
	}
	pendingTable[id] = opts
	return true
}

// Pending reports the parked options for a callable without consuming them.
func Pending(fn any) (Options, bool) {
	id, ok := callableID(fn)
	if !ok {
		return Options{}, false
	}
	opts, ok := pendingTable[id]
	return opts, ok
}

// Take consumes the parked options for a callable. A second Take for the
// same callable finds nothing; each deferred decoration is finalized once.
func Take(fn any) (Options, bool) {
	id, ok := callableID(fn)
	if !ok {
		return Options{}, false
	}
	opts, ok := pendingTable[id]
	if ok {
		delete(pendingTable, id)
	}
	return opts, ok
}
