//go:build !syncpoint

package syncpoint

// Active reports whether this binary was built with the syncpoint build tag,
// i.e. whether the package-level functions operate on a real coordinator.
const Active = false

// Without the syncpoint build tag the package-level entry points are empty
// functions: no coordinator is ever allocated, no lock is ever taken, and
// calls at instrumented sites compile down to nothing. The Coordinator type
// remains available for tests that construct their own instance.

// Enable is a no-op in uninstrumented builds.
func Enable() {}

// Disable is a no-op in uninstrumented builds.
func Disable() {}

// LoadGraph is a no-op in uninstrumented builds.
func LoadGraph(dependencies []Edge) {}

// LoadGraphAndMarkers is a no-op in uninstrumented builds.
func LoadGraphAndMarkers(dependencies, markers []Edge) {}

// SetCallback is a no-op in uninstrumented builds.
func SetCallback(point string, cb Callback) {}

// ClearCallback is a no-op in uninstrumented builds.
func ClearCallback(point string) {}

// ClearAllCallbacks is a no-op in uninstrumented builds.
func ClearAllCallbacks() {}

// ResetClearedPoints is a no-op in uninstrumented builds.
func ResetClearedPoints() {}

// Fire is a no-op in uninstrumented builds; it never blocks, never runs a
// callback, and never reports an override.
func Fire(point string, args ...any) (override any, overridden bool) {
	return nil, false
}

// FireIndexed is a no-op in uninstrumented builds.
func FireIndexed(point string, index int, args ...any) (override any, overridden bool) {
	return nil, false
}
