//go:build deadlock

// Package syncutil provides the mutex primitives used by the coordinator,
// with optional deadlock detection. Build with -tags deadlock to swap the
// standard library mutexes for github.com/sasha-s/go-deadlock while
// diagnosing a hung dependency graph during development.
package syncutil

import (
	"sync"
	"time"

	deadlock "github.com/sasha-s/go-deadlock"
)

// DeadlockEnabled is true if the deadlock detector is enabled.
const DeadlockEnabled = true

func init() {
	// A sync point graph legitimately parks goroutines in cond.Wait, which
	// releases the lock; only lock acquisitions that stall this long are
	// reported.
	deadlock.Opts.DeadlockTimeout = 30 * time.Second
}

// A Mutex is a mutual exclusion lock with deadlock detection.
type Mutex = deadlock.Mutex

// An RWMutex is a reader/writer mutual exclusion lock with deadlock
// detection.
type RWMutex = deadlock.RWMutex

// NewCond returns a new sync.Cond with Locker l.
func NewCond(l sync.Locker) *sync.Cond {
	return sync.NewCond(l)
}
