package testing

import (
	"fmt"

	"github.com/humphreyyy/sitzplatz/types"
)

// FloorPlan returns a single-room plan with the given number of seats.
// Seat IDs are zero-padded ("seat-01") so string order matches numeric
// order, which keeps planner output deterministic in assertions.
func FloorPlan(seats int) ([]types.Group, []types.Resource) {
	groups := []types.Group{
		{ID: "room-a", Name: "Room A", X: 0, Y: 0, Width: float64(60*seats + 40), Height: 120},
	}

	resources := make([]types.Resource, 0, seats)
	for i := range seats {
		resources = append(resources, types.Resource{
			ID:      fmt.Sprintf("seat-%02d", i+1),
			GroupID: "room-a",
			Number:  i + 1,
			X:       float64(40 + 60*i),
			Y:       40,
		})
	}

	return groups, resources
}

// Roster returns the given number of full-week occupants with stable,
// zero-padded IDs and names.
func Roster(size int) []types.Occupant {
	occupants := make([]types.Occupant, 0, size)
	for i := range size {
		occupants = append(occupants, types.Occupant{
			ID:      fmt.Sprintf("occ-%02d", i+1),
			Name:    fmt.Sprintf("Occupant %02d", i+1),
			Pattern: types.EveryDay(),
		})
	}

	return occupants
}

// Snapshot returns a complete document combining Roster and FloorPlan,
// with no assignments yet.
func Snapshot(occupants, seats int) *types.StateSnapshot {
	snap := types.NewStateSnapshot()
	snap.Groups, snap.Resources = FloorPlan(seats)
	snap.Occupants = Roster(occupants)

	return snap
}
