// Package syncpoint provides deterministic control over goroutine
// interleavings in tests. Production code declares named synchronization
// points; tests impose a happens-before ordering between points across
// goroutines and attach callbacks that inspect or mutate state when a point
// is reached. Race conditions that normally depend on scheduler luck become
// reproducible on every run.
//
// # Points and Dependencies
//
// A point is an immutable string naming a program location, fired with
// [Coordinator.Fire] (or the package-level [Fire] in instrumented builds).
// Dependencies are loaded wholesale before a test runs:
//
//	points := syncpoint.New()
//	points.LoadGraph([]syncpoint.Edge{
//	    syncpoint.Dep("compact:done", "read:start"),
//	})
//	points.Enable()
//
// Firing a successor blocks the calling goroutine until every one of its
// predecessors has fired at least once since the graph was loaded. Points
// with no declared predecessors never block. Once a point has cleared it
// stays cleared until [Coordinator.LoadGraph], [Coordinator.LoadGraphAndMarkers],
// or [Coordinator.ResetClearedPoints] discards the state.
//
// The coordinator performs no cycle detection and has no timeouts: a cyclic
// graph, or a predecessor that never fires, blocks all participants forever.
// That is a configuration error of the test, bounded externally by the test
// framework's own timeout, and is deliberate: silently timing out would mask
// the race the test is trying to pin down.
//
// # Markers
//
// A marker is a dependency edge with goroutine affinity: after a goroutine
// fires the marker predecessor, the marked successor proceeds only on that
// same goroutine. Any other goroutine firing the successor is suppressed:
// the call returns immediately without clearing the point and without running
// its callback. Firing the marker again re-arms suppression against the
// latest marking goroutine; when several goroutines race to fire the same
// marker, the last writer wins.
//
// # Callbacks and Overrides
//
// At most one callback is registered per point with
// [Coordinator.SetCallback]; setting a callback replaces any prior one. The
// callback receives a [Firing] carrying the opaque arguments passed to Fire.
// The coordinator never interprets the arguments; only the callback does.
// Callbacks run with the coordinator's lock released, so a callback may fire
// other points or reconfigure the coordinator without deadlocking itself.
//
// A callback may call [Firing.Return] to hand an override value back to the
// call site. Fire reports the override, letting instrumented code bail out
// early or substitute a result:
//
//	func (db *DB) version() string {
//	    if v, ok := points.Fire("db:version"); ok {
//	        return v.(string)
//	    }
//	    return db.release
//	}
//
// [Coordinator.ClearCallback] and [Coordinator.ClearAllCallbacks] block until
// every in-flight callback has returned, so a cleared callback is never
// running (and never fires again) once the clearing call returns.
//
// # Instrumented and Production Builds
//
// The package-level functions ([Fire], [Enable], [SetCallback], and friends)
// operate on a shared coordinator and exist in two build flavours selected by
// the syncpoint build tag. With -tags syncpoint they delegate to the shared
// coordinator returned by Default. Without the tag they compile to empty
// functions with no state and no allocations, so production binaries pay
// nothing for the instrumentation left in their code paths. The [Coordinator]
// type itself is always available for tests that prefer an explicit instance.
//
// Building with -tags deadlock additionally swaps the coordinator's internal
// mutex for a deadlock-detecting one (see the syncutil subpackage), which
// helps diagnose a misconfigured graph during development.
package syncpoint
