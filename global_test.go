//go:build syncpoint

package syncpoint_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/notorious-go/syncpoint"
)

// The tests in this file run only with -tags syncpoint, where the
// package-level functions operate on the shared coordinator. They clean up
// the shared state they touch, since the coordinator outlives each test.
func TestGlobalFacade(t *testing.T) {
	require.True(t, syncpoint.Active)
	require.Same(t, syncpoint.Default(), syncpoint.Default())

	calls := 0
	syncpoint.SetCallback("global:point", func(*syncpoint.Firing) { calls++ })
	syncpoint.Enable()
	t.Cleanup(func() {
		syncpoint.Disable()
		syncpoint.ClearAllCallbacks()
		syncpoint.LoadGraph(nil)
	})

	syncpoint.Fire("global:point")
	require.Equal(t, 1, calls)

	syncpoint.FireIndexed("global:point:", 7)
	require.Equal(t, 1, calls, "indexed firing targets a distinct point name")

	syncpoint.Disable()
	syncpoint.Fire("global:point")
	require.Equal(t, 1, calls)

	syncpoint.Enable()
	syncpoint.ClearCallback("global:point")
	syncpoint.Fire("global:point")
	require.Equal(t, 1, calls)
}

func TestGlobalFacadeGraph(t *testing.T) {
	syncpoint.LoadGraph([]syncpoint.Edge{
		syncpoint.Dep("global:first", "global:second"),
	})
	syncpoint.Enable()
	t.Cleanup(func() {
		syncpoint.Disable()
		syncpoint.LoadGraph(nil)
	})

	done := make(chan struct{})
	go func() {
		syncpoint.Fire("global:second")
		close(done)
	}()
	syncpoint.Fire("global:first")
	<-done

	syncpoint.ResetClearedPoints()
	done = make(chan struct{})
	go func() {
		syncpoint.Fire("global:second")
		close(done)
	}()
	syncpoint.Fire("global:first")
	<-done
}
