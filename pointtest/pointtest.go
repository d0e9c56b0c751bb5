// Package pointtest provides utilities for asserting the order in which
// synchronization points fire across goroutines. The package offers a
// concurrency-safe order recorder and a framework for verifying that an
// observed firing order satisfies the happens-before constraints a test
// declared on its coordinator.
//
// # Example Usage
//
// Record tokens from callbacks or from the code between firings, then verify
// the constraints once all goroutines have joined:
//
//	var rec pointtest.Recorder
//	points.SetCallback("user:create", func(*syncpoint.Firing) { rec.Record("create") })
//	points.SetCallback("user:login", func(*syncpoint.Firing) { rec.Record("login") })
//
//	// ... run the scenario ...
//
//	pointtest.Check(t, []pointtest.Event{
//	    {Token: "create"},
//	    {Token: "login", Dependencies: []string{"create"}},
//	}, rec.Tokens())
//
// The check fails if "login" was recorded before "create", or if either token
// was never recorded at all.
package pointtest

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

// A Recorder collects tokens in the order they are observed. It is safe for
// concurrent use, so callbacks running on different goroutines can append to
// the same Recorder.
//
// The zero value is ready to use.
type Recorder struct {
	mu     sync.Mutex
	tokens []string
}

// Record appends token to the observed order.
func (r *Recorder) Record(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens = append(r.tokens, token)
}

// Tokens returns a copy of the tokens recorded so far, in observation order.
func (r *Recorder) Tokens() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.tokens))
	copy(out, r.tokens)
	return out
}

// Join returns the recorded tokens concatenated with sep, which makes
// whole-order assertions read as a single string comparison:
//
//	require.Equal(t, "first->second->third", rec.Join("->"))
func (r *Recorder) Join(sep string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return strings.Join(r.tokens, sep)
}

// Check verifies that the observed order of tokens satisfies the dependency
// constraints declared by every event. Any violation is reported as a test
// error.
func Check(t *testing.T, events []Event, tokens []string) {
	t.Helper()
	for _, event := range events {
		event.Check(t, tokens)
	}
}

// Event represents a step in a concurrent scenario whose firing order is
// constrained by a dependency graph loaded into a coordinator.
//
// Each event has a token that identifies it in the recorded order and a list
// of dependencies naming the tokens that must have been recorded before it.
// The declared dependencies should mirror the graph the scenario loaded, so
// that a Check failure points directly at the edge that was violated.
type Event struct {
	// Token is a unique identifier for this event, used to locate it in the
	// recorded order and to verify dependency constraints against it.
	Token string

	// Dependencies lists the tokens of events that must have been recorded
	// before this event. Check verifies that each one appears earlier in the
	// observed order.
	Dependencies []string
}

// Check verifies that all of this event's dependencies were recorded before
// this event in the given observed order.
//
// This method will verify that:
//   - This event's token appears in the recorded list of tokens.
//   - All dependencies listed in Dependencies appear before Token in the list.
//
// Any violations of the dependency constraints will be reported as test
// errors.
func (e Event) Check(t *testing.T, tokens []string) {
	t.Helper()
	for _, v := range e.violations(tokens) {
		t.Error(v)
	}
}

// violations returns one message per constraint the observed order breaks: a
// token that was never recorded, or a dependency not recorded before it. An
// empty result means the order satisfies this event.
func (e Event) violations(tokens []string) []string {
	eventIndex, ok := e.index(tokens)
	if !ok {
		return []string{fmt.Sprintf("event %v was not recorded", e.Token)}
	}

	var out []string
	for _, dep := range e.Dependencies {
		found := false
		for i := 0; i < eventIndex; i++ {
			if tokens[i] == dep {
				found = true
				break
			}
		}
		if !found {
			out = append(out, fmt.Sprintf("event %v: dependency %v was not recorded before it", e.Token, dep))
		}
	}
	return out
}

// Finds the index of this event's token in the given slice of tokens.
func (e Event) index(tokens []string) (index int, found bool) {
	for i, token := range tokens {
		if token == e.Token {
			return i, true
		}
	}
	return 0, false
}
