package syncpoint

// An Edge declares a happens-before relationship between two named points:
// firing the Successor blocks until the Predecessor has fired. A point may
// appear as the successor of many edges (all predecessors must clear before
// it proceeds) and as the predecessor of many edges.
type Edge struct {
	Predecessor string
	Successor   string
}

// Dep builds a dependency Edge. It reads better than a composite literal
// when loading a graph of more than a couple of edges.
func Dep(predecessor, successor string) Edge {
	return Edge{Predecessor: predecessor, Successor: successor}
}

// A Callback is invoked when its point fires, after the point's predecessors
// have cleared and before the point itself is marked cleared. It runs with
// the coordinator's lock released, so it may fire other points or reconfigure
// the coordinator without deadlocking.
//
// The callback is the only party that interprets the firing's arguments; the
// coordinator passes them through untouched. Asserting an argument to the
// wrong type is the callback author's bug, not a recoverable condition.
type Callback func(*Firing)

// A Firing is the per-invocation view handed to a [Callback]: the point that
// fired, the opaque arguments the call site passed to Fire, and a slot for an
// override value flowing back to the call site.
//
// A Firing is only valid for the duration of the callback invocation.
type Firing struct {
	// Point is the name the call site fired, including any index suffix
	// appended by FireIndexed.
	Point string

	// Args holds the opaque arguments passed to Fire, in order. It may be
	// empty. Callbacks typically assert elements to pointer types and write
	// through them to mutate state at the call site.
	Args []any

	override   any
	overridden bool
}

// Return records v as the override value reported by the Fire call that
// triggered this callback. The call site sees overridden == true and may
// early-return (a void override, conventionally Return(nil)) or substitute v
// for its normal result (a value override).
//
// Calling Return again replaces the previously recorded value.
func (f *Firing) Return(v any) {
	f.override = v
	f.overridden = true
}
