package syncpoint

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/petermattis/goid"
	"github.com/rs/zerolog"

	"github.com/notorious-go/syncpoint/syncutil"
)

// A Coordinator owns the synchronization-graph state and arbitrates the
// firing of points: which points have cleared, which goroutine most recently
// marked each marked successor, and which callbacks are registered. All of
// its methods are safe for concurrent use.
//
// A Coordinator is created with [New] and lives as long as the test harness
// that owns it. There is no teardown; state is discarded by loading a fresh
// graph or resetting the cleared points between tests.
type Coordinator struct {
	// Fast-path gate: checked before taking the lock so that a disabled
	// coordinator adds a single atomic load to the instrumented code path.
	enabled atomic.Bool

	mu   syncutil.Mutex
	cond *sync.Cond

	// The dependency graph, indexed both ways: predecessors drives the
	// blocking check in Fire, successors records the reverse edges loaded
	// alongside it. markers maps a marker predecessor to the successors it
	// marks, and markedBy maps each marked successor to the goroutine that
	// most recently fired its marker.
	successors   map[string][]string
	predecessors map[string][]string
	markers      map[string][]string
	markedBy     map[string]int64

	callbacks map[string]Callback
	// Number of callbacks currently executing outside the lock. Removal of
	// callbacks waits for this to drain; insertion does not.
	running int

	cleared map[string]struct{}

	log zerolog.Logger
}

// An Option configures a Coordinator constructed by [New].
type Option func(*Coordinator)

// WithLogger attaches a trace logger to the coordinator. Every firing,
// suppression, and clearing is logged at trace level with the point name and
// the calling goroutine, which turns a hung or misbehaving scenario into a
// readable interleaving log. The default logger discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Coordinator) { c.log = log }
}

// New constructs a Coordinator with an empty graph, no callbacks, and
// processing disabled.
func New(opts ...Option) *Coordinator {
	c := &Coordinator{
		successors:   make(map[string][]string),
		predecessors: make(map[string][]string),
		markers:      make(map[string][]string),
		markedBy:     make(map[string]int64),
		callbacks:    make(map[string]Callback),
		cleared:      make(map[string]struct{}),
		log:          zerolog.Nop(),
	}
	c.cond = syncutil.NewCond(&c.mu)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enable turns on point processing. Until it is called, and after [Disable],
// firing any point is a complete no-op. Enable is idempotent.
func (c *Coordinator) Enable() {
	c.enabled.Store(true)
}

// Disable turns off point processing. It does not wake goroutines already
// blocked in [Coordinator.Fire]; it only short-circuits subsequent calls.
func (c *Coordinator) Disable() {
	c.enabled.Store(false)
}

// LoadGraph replaces the entire dependency graph with the given edges. All
// previously loaded edges, marker records, and cleared points are discarded
// atomically; a partially loaded graph is never observable. Goroutines
// blocked in Fire re-evaluate their wait against the new graph.
//
// The edges are not validated: a cyclic graph loads fine and then blocks
// every participant at Fire, which is the caller's configuration error.
func (c *Coordinator) LoadGraph(dependencies []Edge) {
	c.LoadGraphAndMarkers(dependencies, nil)
}

// LoadGraphAndMarkers is [Coordinator.LoadGraph] with an additional set of
// marker edges. A marker edge constrains its successor to the goroutine that
// most recently fired its predecessor; it also counts as an ordinary
// dependency edge, so a marked successor always waits for its marker
// predecessor to clear.
func (c *Coordinator) LoadGraphAndMarkers(dependencies, markers []Edge) {
	c.mu.Lock()
	c.successors = make(map[string][]string)
	c.predecessors = make(map[string][]string)
	c.markers = make(map[string][]string)
	c.markedBy = make(map[string]int64)
	c.cleared = make(map[string]struct{})
	for _, d := range dependencies {
		c.successors[d.Predecessor] = append(c.successors[d.Predecessor], d.Successor)
		c.predecessors[d.Successor] = append(c.predecessors[d.Successor], d.Predecessor)
	}
	for _, m := range markers {
		c.successors[m.Predecessor] = append(c.successors[m.Predecessor], m.Successor)
		c.predecessors[m.Successor] = append(c.predecessors[m.Successor], m.Predecessor)
		c.markers[m.Predecessor] = append(c.markers[m.Predecessor], m.Successor)
	}
	c.mu.Unlock()

	// Wake everything: waiters must re-check their condition against the new
	// graph rather than assume graph stability across a reload.
	c.cond.Broadcast()
	c.log.Trace().
		Int("dependencies", len(dependencies)).
		Int("markers", len(markers)).
		Msg("sync point graph loaded")
}

// SetCallback registers cb to run whenever point fires, replacing any
// previously registered callback for that point. It never blocks, even while
// other callbacks are executing.
func (c *Coordinator) SetCallback(point string, cb Callback) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.callbacks[point] = cb
}

// ClearCallback removes the callback registered for point, if any. It blocks
// until every callback currently executing has returned, so once it returns
// the cleared callback is guaranteed not to be running and will never run
// again. This is the place for a test to safely tear down state its
// callbacks capture.
func (c *Coordinator) ClearCallback(point string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.running > 0 {
		c.cond.Wait()
	}
	delete(c.callbacks, point)
}

// ClearAllCallbacks removes every registered callback, with the same
// wait-for-in-flight guarantee as [Coordinator.ClearCallback].
func (c *Coordinator) ClearAllCallbacks() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.running > 0 {
		c.cond.Wait()
	}
	c.callbacks = make(map[string]Callback)
}

// ResetClearedPoints forgets which points have fired, leaving the graph and
// the callback registry intact. It lets a loaded graph be replayed without
// reconfiguring dependencies between iterations of a test.
func (c *Coordinator) ResetClearedPoints() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cleared = make(map[string]struct{})
}

// Fire fires the named point from the calling goroutine.
//
// When processing is disabled, Fire returns immediately and touches no state.
// Otherwise the call records the calling goroutine against every successor
// the point marks, returns silently if the point itself is marked by a
// different goroutine, and then blocks until every predecessor of the point
// has cleared. Once unblocked it invokes the point's callback (if one is
// registered) with args, marks the point cleared, and wakes all waiters.
//
// The returned override is the value recorded by the callback via
// [Firing.Return], with overridden reporting whether Return was called at
// all. A suppressed or disabled firing reports no override.
func (c *Coordinator) Fire(point string, args ...any) (override any, overridden bool) {
	if !c.enabled.Load() {
		return nil, false
	}
	gid := goid.Get()

	c.mu.Lock()
	for _, marked := range c.markers[point] {
		// Last writer wins: a marker fired again re-arms its successors
		// against the latest marking goroutine.
		c.markedBy[marked] = gid
	}

	if c.suppressed(point, gid) {
		c.mu.Unlock()
		c.log.Trace().Str("point", point).Int64("goroutine", gid).Msg("sync point suppressed by marker")
		return nil, false
	}

	for !c.predecessorsCleared(point) {
		c.cond.Wait()
		// A marker fired while this goroutine was blocked can disable the
		// point for it; re-check before proceeding.
		if c.suppressed(point, gid) {
			c.mu.Unlock()
			c.log.Trace().Str("point", point).Int64("goroutine", gid).Msg("sync point suppressed by marker")
			return nil, false
		}
	}

	if cb, ok := c.callbacks[point]; ok {
		// The callback runs with the lock released so it can fire other
		// points or reconfigure the coordinator. The running counter keeps
		// ClearCallback and ClearAllCallbacks from removing entries while
		// any callback is in flight.
		c.running++
		c.mu.Unlock()
		f := Firing{Point: point, Args: args}
		cb(&f)
		override, overridden = f.override, f.overridden
		c.mu.Lock()
		c.running--
	}

	c.cleared[point] = struct{}{}
	unblocks := c.successors[point]
	c.mu.Unlock()

	// Broadcast rather than signal: any newly cleared point may unblock any
	// subset of waiters, and the drained running counter may release a
	// pending callback removal.
	c.cond.Broadcast()
	c.log.Trace().
		Str("point", point).
		Int64("goroutine", gid).
		Bool("override", overridden).
		Strs("unblocks", unblocks).
		Msg("sync point cleared")
	return override, overridden
}

// FireIndexed fires the point named by appending the decimal index to point.
// It parametrizes call sites that are reached once per shard, worker, or
// retry, letting a test target one instance:
//
//	syncpoint.FireIndexed("compact:worker:", workerID)
func (c *Coordinator) FireIndexed(point string, index int, args ...any) (override any, overridden bool) {
	return c.Fire(point+strconv.Itoa(index), args...)
}

// suppressed reports whether point is marked by a goroutine other than gid.
// Callers must hold c.mu.
func (c *Coordinator) suppressed(point string, gid int64) bool {
	marked, ok := c.markedBy[point]
	return ok && marked != gid
}

// predecessorsCleared reports whether every predecessor of point has fired
// since the graph was loaded. Callers must hold c.mu.
func (c *Coordinator) predecessorsCleared(point string) bool {
	for _, pred := range c.predecessors[point] {
		if _, ok := c.cleared[pred]; !ok {
			return false
		}
	}
	return true
}
