package testing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/humphreyyy/sitzplatz/types"
	"github.com/humphreyyy/sitzplatz/validate"
)

func TestSnapshotIsValid(t *testing.T) {
	snap := Snapshot(8, 6)

	require.Len(t, snap.Occupants, 8)
	require.Len(t, snap.Resources, 6)
	require.Len(t, snap.Groups, 1)
	require.Empty(t, snap.Assignments)

	report, err := validate.All(snap, types.DateOf(time.Now()))
	require.NoError(t, err)
	require.True(t, report.OK(), "fixture should validate cleanly: %v", report.Strings())
}

func TestFloorPlanSeatsInsideRoom(t *testing.T) {
	groups, resources := FloorPlan(12)
	room := groups[0]

	for _, seat := range resources {
		require.True(t, room.Contains(seat.X, seat.Y), "seat %s outside room", seat.ID)
	}
}

func TestFixtureIDsSortStably(t *testing.T) {
	_, resources := FloorPlan(11)
	for i := 1; i < len(resources); i++ {
		require.Less(t, resources[i-1].ID, resources[i].ID)
	}

	occupants := Roster(11)
	for i := 1; i < len(occupants); i++ {
		require.Less(t, occupants[i-1].ID, occupants[i].ID)
		require.Less(t, occupants[i-1].Name, occupants[i].Name)
	}
}
