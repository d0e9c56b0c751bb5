//go:build !deadlock

// Package syncutil provides the mutex primitives used by the coordinator,
// with optional deadlock detection. Build with -tags deadlock to swap the
// standard library mutexes for github.com/sasha-s/go-deadlock while
// diagnosing a hung dependency graph during development.
package syncutil

import "sync"

// DeadlockEnabled is true if the deadlock detector is enabled.
const DeadlockEnabled = false

// A Mutex is a mutual exclusion lock.
type Mutex = sync.Mutex

// An RWMutex is a reader/writer mutual exclusion lock.
type RWMutex = sync.RWMutex

// NewCond returns a new sync.Cond with Locker l.
func NewCond(l sync.Locker) *sync.Cond {
	return sync.NewCond(l)
}
