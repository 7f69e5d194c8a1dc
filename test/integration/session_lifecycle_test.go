//go:build integration
// +build integration

package integration_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/humphreyyy/sitzplatz"
	"github.com/humphreyyy/sitzplatz/lease"
	sittest "github.com/humphreyyy/sitzplatz/testing"
	"github.com/humphreyyy/sitzplatz/types"
)

// seedPlan commits a fixture floor plan and roster.
func seedPlan(t *testing.T, session *sitzplatz.Session, occupants, seats int) {
	t.Helper()

	err := session.Commit(t.Context(), func(snap *sitzplatz.StateSnapshot) error {
		snap.Groups, snap.Resources = sittest.FloorPlan(seats)
		snap.Occupants = sittest.Roster(occupants)

		return nil
	})
	require.NoError(t, err)
}

// TestSession_PlanSurvivesReopen verifies that a planned week persists
// across sessions and that continuity picks it up, while undo history
// stays session-local.
func TestSession_PlanSurvivesReopen(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	dir := t.TempDir()
	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Second)
	defer cancel()

	cfg := sitzplatz.TestConfig()
	session, err := sitzplatz.OpenDir(ctx, dir, &cfg, "planner@host-a",
		sitzplatz.WithLogger(sittest.NewTestLogger(t)))
	require.NoError(t, err)

	seedPlan(t, session, 6, 4)

	result, err := session.PlanWeek(ctx, "2025-W43")
	require.NoError(t, err)
	require.Len(t, result.Assignments(), 28)      // 4 seats x 7 days
	require.Equal(t, 14, result.TotalConflicts()) // 2 unseated x 7 days

	require.NoError(t, session.Close())

	// A new session finds the plan but starts its history fresh.
	cfg2 := sitzplatz.TestConfig()
	next, err := sitzplatz.OpenDir(ctx, dir, &cfg2, "planner@host-b")
	require.NoError(t, err)
	defer next.Close()

	require.Len(t, next.Snapshot().AssignmentsFor("2025-W43"), 28)
	require.False(t, next.CanUndo())
	require.ErrorIs(t, next.Undo(ctx), sitzplatz.ErrNothingToUndo)

	// Continuity: whoever held a seat in W43 keeps it in W44.
	res2, err := next.PlanWeek(ctx, "2025-W44")
	require.NoError(t, err)

	prevMonday := map[string]string{}
	for _, a := range result.Days[types.Monday].Assignments {
		prevMonday[a.OccupantID] = a.ResourceID
	}
	require.NotEmpty(t, prevMonday)
	for _, a := range res2.Days[types.Monday].Assignments {
		if held, ok := prevMonday[a.OccupantID]; ok {
			require.Equal(t, held, a.ResourceID, "occupant %s lost a held seat", a.OccupantID)
		}
	}
}

// TestSession_LeaseHandoff verifies exclusive write access: a second
// writer is denied while the lease is held and admitted after Close.
func TestSession_LeaseHandoff(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	dir := t.TempDir()
	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Second)
	defer cancel()

	cfgA := sitzplatz.TestConfig()
	first, err := sitzplatz.OpenDir(ctx, dir, &cfgA, "alice@host-a")
	require.NoError(t, err)

	cfgB := sitzplatz.TestConfig()
	_, err = sitzplatz.OpenDir(ctx, dir, &cfgB, "bob@host-b")
	require.ErrorIs(t, err, sitzplatz.ErrAccessDenied)

	denied, ok := types.AsAccessDenied(err)
	require.True(t, ok)
	require.Equal(t, "alice@host-a", denied.Holder.Identity)

	// Read-only access is never blocked.
	cfgRO := sitzplatz.TestConfig()
	reader, err := sitzplatz.OpenDirReadOnly(ctx, dir, &cfgRO)
	require.NoError(t, err)
	defer reader.Close()

	require.NoError(t, first.Close())

	second, err := sitzplatz.OpenDir(ctx, dir, &cfgB, "bob@host-b")
	require.NoError(t, err)
	defer second.Close()

	seedPlan(t, second, 2, 2)
	require.Equal(t, "bob@host-b", second.Snapshot().Meta.ModifiedBy)
}

// TestSession_StaleLeaseTakeover verifies that an abandoned claim is
// reclaimed on open and then kept fresh by the background keeper.
func TestSession_StaleLeaseTakeover(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	dir := t.TempDir()
	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Second)
	defer cancel()

	// A holder that last refreshed a minute ago, far past the test
	// config's two second timeout.
	ghostClock := sittest.NewClock(time.Now().Add(-time.Minute))
	ghost := lease.New(filepath.Join(dir, "data.lock"),
		lease.WithClock(ghostClock.NowFunc()))
	_, err := ghost.Acquire("ghost@crashed")
	require.NoError(t, err)

	reclaimed := make(chan string, 1)
	cfg := sitzplatz.TestConfig()
	session, err := sitzplatz.OpenDir(ctx, dir, &cfg, "alice@host-a",
		sitzplatz.WithHooks(&sitzplatz.Hooks{
			OnLeaseReclaimed: func(_ context.Context, previous sitzplatz.LeaseInfo) error {
				reclaimed <- previous.Identity

				return nil
			},
		}))
	require.NoError(t, err)
	defer session.Close()

	select {
	case identity := <-reclaimed:
		require.Equal(t, "ghost@crashed", identity)
	case <-time.After(3 * time.Second):
		t.Fatal("reclaim hook never fired")
	}

	// The keeper refreshes in the background, so the claim stays young.
	time.Sleep(2 * cfg.Lease.RefreshInterval)

	holder, held, err := session.Holder()
	require.NoError(t, err)
	require.True(t, held)
	require.Equal(t, "alice@host-a", holder.Identity)
	require.Less(t, time.Since(holder.AcquiredAt), cfg.Lease.Timeout)
}
