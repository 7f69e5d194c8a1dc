//go:build integration
// +build integration

package integration_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/humphreyyy/sitzplatz"
	"github.com/humphreyyy/sitzplatz/internal/logger"
	"github.com/humphreyyy/sitzplatz/store"
	sittest "github.com/humphreyyy/sitzplatz/testing"
)

// waitForKind drains monitor events until the wanted kind arrives.
func waitForKind(t *testing.T, events <-chan store.Event, want store.EventKind) {
	t.Helper()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case event, ok := <-events:
			require.True(t, ok, "monitor closed while waiting for %s", want)
			if event.Kind == want {
				return
			}
		case <-deadline:
			t.Fatalf("no %s event within deadline", want)
		}
	}
}

// TestFollower_ReloadOnMonitorEvents verifies the read-only follow
// flow: a monitor event, a Reload, and the writer's changes appear.
func TestFollower_ReloadOnMonitorEvents(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	dir := t.TempDir()
	ctx, cancel := context.WithTimeout(t.Context(), 15*time.Second)
	defer cancel()

	cfgW := sitzplatz.TestConfig()
	writer, err := sitzplatz.OpenDir(ctx, dir, &cfgW, "editor@host-a",
		sitzplatz.WithLogger(logger.NewTest(t)))
	require.NoError(t, err)
	defer writer.Close()

	seedPlan(t, writer, 4, 3)

	cfgR := sitzplatz.TestConfig()
	follower, err := sitzplatz.OpenDirReadOnly(ctx, dir, &cfgR)
	require.NoError(t, err)
	defer follower.Close()

	monitor := store.NewMonitor(dir, store.WithDebounce(20*time.Millisecond))
	require.NoError(t, monitor.Start(ctx))
	defer monitor.Stop()

	events, unsubscribe := monitor.Subscribe()
	defer unsubscribe()

	_, err = writer.PlanWeek(ctx, "2025-W43")
	require.NoError(t, err)

	waitForKind(t, events, store.EventSnapshotChanged)
	require.NoError(t, follower.Reload(ctx))
	require.Len(t, follower.Snapshot().AssignmentsFor("2025-W43"), 21) // 3 seats x 7 days

	// The editor leaving frees the lease.
	require.NoError(t, writer.Close())
	waitForKind(t, events, store.EventLeaseRemoved)

	_, held, err := follower.Holder()
	require.NoError(t, err)
	require.False(t, held)
}

// TestFollower_SeesExternalWrites verifies that document replacements
// made outside any session still reach a follower through the monitor.
func TestFollower_SeesExternalWrites(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	dir := t.TempDir()
	ctx, cancel := context.WithTimeout(t.Context(), 15*time.Second)
	defer cancel()

	cfgR := sitzplatz.TestConfig()
	follower, err := sitzplatz.OpenDirReadOnly(ctx, dir, &cfgR)
	require.NoError(t, err)
	defer follower.Close()
	require.Empty(t, follower.Snapshot().Occupants)

	monitor := store.NewMonitor(dir, store.WithDebounce(20*time.Millisecond))
	require.NoError(t, monitor.Start(ctx))
	defer monitor.Stop()

	events, unsubscribe := monitor.Subscribe()
	defer unsubscribe()

	// An external tool replaces the document through its own store.
	external, err := store.NewFile(dir)
	require.NoError(t, err)
	require.NoError(t, external.Save(ctx, sittest.Snapshot(3, 2)))

	waitForKind(t, events, store.EventSnapshotChanged)
	require.NoError(t, follower.Reload(ctx))
	require.Len(t, follower.Snapshot().Occupants, 3)
	require.Len(t, follower.Snapshot().Resources, 2)
}
