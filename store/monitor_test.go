package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testMonitor(t *testing.T, dir string) *Monitor {
	t.Helper()

	mon := NewMonitor(dir, WithDebounce(10*time.Millisecond))
	require.NoError(t, mon.Start(context.Background()))
	t.Cleanup(func() {
		if mon.Running() {
			require.NoError(t, mon.Stop())
		}
	})

	return mon
}

func waitEvent(t *testing.T, ch <-chan Event) Event {
	t.Helper()

	select {
	case ev, ok := <-ch:
		require.True(t, ok, "event channel closed before event arrived")

		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for store event")

		return Event{}
	}
}

func TestMonitorLifecycle(t *testing.T) {
	t.Parallel()

	mon := NewMonitor(t.TempDir())

	require.ErrorIs(t, mon.Stop(), ErrMonitorNotStarted)
	require.False(t, mon.Running())

	require.NoError(t, mon.Start(context.Background()))
	require.True(t, mon.Running())
	require.ErrorIs(t, mon.Start(context.Background()), ErrMonitorAlreadyStarted)

	require.NoError(t, mon.Stop())
	require.False(t, mon.Running())
	require.ErrorIs(t, mon.Stop(), ErrMonitorNotStarted)
}

func TestMonitorStartMissingDir(t *testing.T) {
	t.Parallel()

	mon := NewMonitor(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, mon.Start(context.Background()))
	require.False(t, mon.Running())
}

func TestMonitorSnapshotChange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mon := testMonitor(t, dir)

	ch, unsubscribe := mon.Subscribe()
	defer unsubscribe()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.json"), []byte("{}"), 0o644))

	ev := waitEvent(t, ch)
	require.Equal(t, EventSnapshotChanged, ev.Kind)
	require.Equal(t, "data.json", filepath.Base(ev.Path))
	require.False(t, ev.At.IsZero())
}

func TestMonitorLeaseEvents(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mon := testMonitor(t, dir)

	ch, unsubscribe := mon.Subscribe()
	defer unsubscribe()

	lock := filepath.Join(dir, "data.lock")
	require.NoError(t, os.WriteFile(lock, []byte(`{"user":"alice"}`), 0o644))

	ev := waitEvent(t, ch)
	require.Equal(t, EventLeaseChanged, ev.Kind)

	require.NoError(t, os.Remove(lock))

	ev = waitEvent(t, ch)
	require.Equal(t, EventLeaseRemoved, ev.Kind)
}

func TestMonitorIgnoresUnrelatedFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mon := testMonitor(t, dir)

	ch, unsubscribe := mon.Subscribe()
	defer unsubscribe()

	// Temp files from atomic writes and stray files stay silent.
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".data-12345"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".lease-99"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644))

	select {
	case ev := <-ch:
		t.Fatalf("unexpected event %s for %s", ev.Kind, ev.Path)
	case <-time.After(100 * time.Millisecond):
	}

	// The watch loop is still alive for real changes.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.json"), []byte("{}"), 0o644))
	ev := waitEvent(t, ch)
	require.Equal(t, EventSnapshotChanged, ev.Kind)
}

func TestMonitorWatchedNameOverride(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mon := NewMonitor(dir,
		WithDebounce(10*time.Millisecond),
		WithWatchedNames("plan.json", "plan.lock"))
	require.NoError(t, mon.Start(context.Background()))
	defer mon.Stop()

	ch, unsubscribe := mon.Subscribe()
	defer unsubscribe()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "plan.json"), []byte("{}"), 0o644))

	ev := waitEvent(t, ch)
	require.Equal(t, EventSnapshotChanged, ev.Kind)
	require.Equal(t, "plan.json", filepath.Base(ev.Path))
}

func TestMonitorUnsubscribeClosesChannel(t *testing.T) {
	t.Parallel()

	mon := testMonitor(t, t.TempDir())

	ch, unsubscribe := mon.Subscribe()
	unsubscribe()

	_, ok := <-ch
	require.False(t, ok)

	// A second unsubscribe is harmless.
	unsubscribe()
}

func TestMonitorStopClosesSubscribers(t *testing.T) {
	t.Parallel()

	mon := testMonitor(t, t.TempDir())

	ch, unsubscribe := mon.Subscribe()
	defer unsubscribe()

	require.NoError(t, mon.Stop())

	_, ok := <-ch
	require.False(t, ok)
}

func TestMonitorContextCancellation(t *testing.T) {
	t.Parallel()

	mon := NewMonitor(t.TempDir(), WithDebounce(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, mon.Start(ctx))
	require.True(t, mon.Running())

	cancel()

	require.Eventually(t, func() bool {
		return !mon.Running()
	}, 2*time.Second, 10*time.Millisecond)
}

func TestMonitorEventKindString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "snapshot", EventSnapshotChanged.String())
	require.Equal(t, "lease", EventLeaseChanged.String())
	require.Equal(t, "lease_removed", EventLeaseRemoved.String())
	require.Equal(t, "unknown", EventKind(99).String())
}
