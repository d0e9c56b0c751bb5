//go:build syncpoint

package syncpoint

import "sync"

// Active reports whether this binary was built with the syncpoint build tag,
// i.e. whether the package-level functions operate on a real coordinator.
const Active = true

var (
	defaultOnce sync.Once
	defaultCoor *Coordinator
)

// Default returns the process-wide Coordinator shared by the package-level
// functions, creating it on first use. It exists only in instrumented builds;
// production code should stick to the package-level functions, which
// disappear entirely without the build tag.
func Default() *Coordinator {
	defaultOnce.Do(func() { defaultCoor = New() })
	return defaultCoor
}

// Enable turns on point processing for the shared coordinator.
func Enable() { Default().Enable() }

// Disable turns off point processing for the shared coordinator.
func Disable() { Default().Disable() }

// LoadGraph replaces the shared coordinator's dependency graph.
func LoadGraph(dependencies []Edge) { Default().LoadGraph(dependencies) }

// LoadGraphAndMarkers replaces the shared coordinator's dependency graph and
// marker edges.
func LoadGraphAndMarkers(dependencies, markers []Edge) {
	Default().LoadGraphAndMarkers(dependencies, markers)
}

// SetCallback registers a callback for point on the shared coordinator.
func SetCallback(point string, cb Callback) { Default().SetCallback(point, cb) }

// ClearCallback removes point's callback from the shared coordinator,
// waiting for in-flight callbacks to finish.
func ClearCallback(point string) { Default().ClearCallback(point) }

// ClearAllCallbacks removes every callback from the shared coordinator,
// waiting for in-flight callbacks to finish.
func ClearAllCallbacks() { Default().ClearAllCallbacks() }

// ResetClearedPoints forgets which of the shared coordinator's points have
// fired.
func ResetClearedPoints() { Default().ResetClearedPoints() }

// Fire fires the named point on the shared coordinator. See
// [Coordinator.Fire].
func Fire(point string, args ...any) (override any, overridden bool) {
	return Default().Fire(point, args...)
}

// FireIndexed fires the point named by appending the decimal index to point
// on the shared coordinator. See [Coordinator.FireIndexed].
func FireIndexed(point string, index int, args ...any) (override any, overridden bool) {
	return Default().FireIndexed(point, index, args...)
}
