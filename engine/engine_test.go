package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/humphreyyy/sitzplatz/types"
	"github.com/humphreyyy/sitzplatz/validate"
)

const week43 = types.Week("2025-W43")

var monday43 = types.NewDate(2025, 10, 20)

func windowSeat(id string) types.Resource {
	return types.Resource{ID: id, Properties: map[string]bool{"window": true}}
}

func plainSeat(id string) types.Resource {
	return types.Resource{ID: id}
}

func mondayOccupant(id, name string, requirements ...string) types.Occupant {
	return types.Occupant{
		ID:           id,
		Name:         name,
		Pattern:      types.DaysOf(types.Monday),
		Requirements: requirements,
	}
}

func TestAssignDayPreferenceLadder(t *testing.T) {
	t.Parallel()

	eng := New()

	// Two seats for three attendees: requirement holders match first in
	// name order, the plain seat goes to the unfussy one, and whoever
	// is left records a conflict.
	occupants := []types.Occupant{
		mondayOccupant("occ-alice", "Alice", "window"),
		mondayOccupant("occ-bob", "Bob"),
		mondayOccupant("occ-carol", "Carol", "window"),
	}
	resources := []types.Resource{windowSeat("seat-1"), plainSeat("seat-2")}

	result := eng.AssignDay(occupants, resources, week43, types.Monday, monday43, nil)

	require.Equal(t, []types.Assignment{
		{OccupantID: "occ-alice", ResourceID: "seat-1", Week: week43, Weekday: types.Monday},
		{OccupantID: "occ-bob", ResourceID: "seat-2", Week: week43, Weekday: types.Monday},
	}, result.Assignments)
	require.Equal(t, []string{"occ-carol"}, result.Conflicts)
	require.Len(t, result.Assignments, 2)
	require.Equal(t, types.Monday, result.Weekday)
	require.Equal(t, monday43, result.Date)
}

func TestAssignDayContinuity(t *testing.T) {
	t.Parallel()

	eng := New()

	t.Run("holder keeps the held seat", func(t *testing.T) {
		t.Parallel()

		occupants := []types.Occupant{
			mondayOccupant("occ-adam", "Adam"),
			mondayOccupant("occ-zoe", "Zoe"),
		}
		resources := []types.Resource{plainSeat("seat-1"), plainSeat("seat-2")}
		carryover := []types.Assignment{
			{OccupantID: "occ-zoe", ResourceID: "seat-2", Week: "2025-W42", Weekday: types.Monday},
		}

		result := eng.AssignDay(occupants, resources, week43, types.Monday, monday43, carryover)

		// Zoe goes first despite sorting after Adam alphabetically.
		require.Equal(t, []types.Assignment{
			{OccupantID: "occ-zoe", ResourceID: "seat-2", Week: week43, Weekday: types.Monday},
			{OccupantID: "occ-adam", ResourceID: "seat-1", Week: week43, Weekday: types.Monday},
		}, result.Assignments)
	})

	t.Run("holder beats newcomer for the last seat", func(t *testing.T) {
		t.Parallel()

		occupants := []types.Occupant{
			mondayOccupant("occ-adam", "Adam"),
			mondayOccupant("occ-zoe", "Zoe"),
		}
		resources := []types.Resource{plainSeat("seat-1")}
		carryover := []types.Assignment{
			{OccupantID: "occ-zoe", ResourceID: "seat-1", Week: "2025-W42", Weekday: types.Monday},
		}

		result := eng.AssignDay(occupants, resources, week43, types.Monday, monday43, carryover)

		require.Equal(t, "occ-zoe", result.Assignments[0].OccupantID)
		require.Equal(t, []string{"occ-adam"}, result.Conflicts)
	})

	t.Run("vanished held seat falls back to matching", func(t *testing.T) {
		t.Parallel()

		occupants := []types.Occupant{mondayOccupant("occ-1", "Mia", "window")}
		resources := []types.Resource{plainSeat("seat-1"), windowSeat("seat-2")}
		carryover := []types.Assignment{
			{OccupantID: "occ-1", ResourceID: "seat-9", Week: "2025-W42", Weekday: types.Monday},
		}

		result := eng.AssignDay(occupants, resources, week43, types.Monday, monday43, carryover)

		require.Empty(t, result.Conflicts)
		require.Equal(t, "seat-2", result.Assignments[0].ResourceID)
	})

	t.Run("other weekdays never hint", func(t *testing.T) {
		t.Parallel()

		occupants := []types.Occupant{mondayOccupant("occ-1", "Mia")}
		resources := []types.Resource{plainSeat("seat-1"), plainSeat("seat-2")}
		carryover := []types.Assignment{
			{OccupantID: "occ-1", ResourceID: "seat-2", Week: "2025-W42", Weekday: types.Friday},
		}

		result := eng.AssignDay(occupants, resources, week43, types.Monday, monday43, carryover)

		require.Equal(t, "seat-1", result.Assignments[0].ResourceID)
	})
}

func TestAssignDayRequirementMatching(t *testing.T) {
	t.Parallel()

	eng := New()

	// seat-3 satisfies both requirements, seat-2 one, seat-1 none.
	resources := []types.Resource{
		plainSeat("seat-1"),
		windowSeat("seat-2"),
		{ID: "seat-3", Properties: map[string]bool{"window": true, "outlet": true}},
	}
	occupants := []types.Occupant{
		mondayOccupant("occ-a", "Ann", "window", "outlet"),
		mondayOccupant("occ-b", "Ben", "window", "outlet"),
		mondayOccupant("occ-c", "Cem", "window", "outlet"),
	}

	result := eng.AssignDay(occupants, resources, week43, types.Monday, monday43, nil)

	require.Empty(t, result.Conflicts)
	require.Equal(t, "seat-3", result.Assignments[0].ResourceID) // full match
	require.Equal(t, "seat-2", result.Assignments[1].ResourceID) // partial match
	require.Equal(t, "seat-1", result.Assignments[2].ResourceID) // fallback
}

func TestAssignDayActiveSet(t *testing.T) {
	t.Parallel()

	eng := New()

	occupants := []types.Occupant{
		{ID: "occ-1", Name: "Attending", Pattern: types.EveryDay()},
		{ID: "occ-2", Name: "TuesdayOnly", Pattern: types.DaysOf(types.Tuesday)},
		{ID: "occ-3", Name: "Departed", Pattern: types.EveryDay(), ValidUntil: types.NewDate(2025, 9, 30)},
		{ID: "occ-4", Name: "Future", Pattern: types.EveryDay(), ValidFrom: types.NewDate(2025, 11, 1)},
	}
	resources := []types.Resource{plainSeat("seat-1")}

	result := eng.AssignDay(occupants, resources, week43, types.Monday, monday43, nil)

	require.Len(t, result.Assignments, 1)
	require.Equal(t, "occ-1", result.Assignments[0].OccupantID)
	require.Empty(t, result.Conflicts)
}

func TestAssignDayDuplicateNamesTieBreakOnID(t *testing.T) {
	t.Parallel()

	eng := New()

	occupants := []types.Occupant{
		mondayOccupant("occ-2", "Sam"),
		mondayOccupant("occ-1", "Sam"),
	}
	resources := []types.Resource{plainSeat("seat-1")}

	result := eng.AssignDay(occupants, resources, week43, types.Monday, monday43, nil)

	require.Equal(t, "occ-1", result.Assignments[0].OccupantID)
	require.Equal(t, []string{"occ-2"}, result.Conflicts)
}

func TestAssignDayLeavesInputsIntact(t *testing.T) {
	t.Parallel()

	eng := New()

	occupants := []types.Occupant{
		mondayOccupant("occ-zoe", "Zoe"),
		mondayOccupant("occ-adam", "Adam"),
	}
	resources := []types.Resource{plainSeat("seat-2"), plainSeat("seat-1")}

	result := eng.AssignDay(occupants, resources, week43, types.Monday, monday43, nil)

	// Placement scans seats by ID regardless of input order.
	require.Equal(t, "seat-1", result.Assignments[0].ResourceID)

	// Caller slices keep their original order.
	require.Equal(t, "occ-zoe", occupants[0].ID)
	require.Equal(t, "seat-2", resources[0].ID)
}

func TestAssignDayEmptyPool(t *testing.T) {
	t.Parallel()

	eng := New()

	occupants := []types.Occupant{
		mondayOccupant("occ-1", "Ann"),
		mondayOccupant("occ-2", "Ben"),
	}

	result := eng.AssignDay(occupants, nil, week43, types.Monday, monday43, nil)

	require.Empty(t, result.Assignments)
	require.Equal(t, []string{"occ-1", "occ-2"}, result.Conflicts)
}

func TestAssignDayEmptyWorld(t *testing.T) {
	t.Parallel()

	eng := New()

	result := eng.AssignDay(nil, nil, week43, types.Monday, monday43, nil)

	require.Empty(t, result.Assignments)
	require.Empty(t, result.Conflicts)
}

func TestAssignDayConflictsMatchCapacityShortfall(t *testing.T) {
	t.Parallel()

	eng := New()

	occupants := []types.Occupant{
		mondayOccupant("occ-1", "Ann"),
		mondayOccupant("occ-2", "Ben"),
		mondayOccupant("occ-3", "Cem"),
		mondayOccupant("occ-4", "Dee"),
		{ID: "occ-5", Name: "Eli", Pattern: types.DaysOf(types.Tuesday)},
	}
	resources := []types.Resource{plainSeat("seat-1"), plainSeat("seat-2")}

	// The capacity advisory predicts exactly how many occupants the
	// planner will fail to place on that day.
	capacity := validate.Capacity(occupants, resources, types.Monday, monday43)
	result := eng.AssignDay(occupants, resources, week43, types.Monday, monday43, nil)

	require.Equal(t, capacity.Excess, len(result.Conflicts))
	require.Equal(t, capacity.ActiveOccupants,
		len(result.Assignments)+len(result.Conflicts))
}

func TestAssignWeek(t *testing.T) {
	t.Parallel()

	eng := New()

	t.Run("malformed week identifier", func(t *testing.T) {
		t.Parallel()

		_, err := eng.AssignWeek(nil, nil, "someweek", nil)
		require.ErrorIs(t, err, types.ErrInvalidWeek)
	})

	t.Run("plans seven independent days with dates", func(t *testing.T) {
		t.Parallel()

		occupants := []types.Occupant{
			{ID: "occ-1", Name: "Ann", Pattern: types.EveryDay()},
		}
		resources := []types.Resource{plainSeat("seat-1")}

		result, err := eng.AssignWeek(occupants, resources, week43, nil)
		require.NoError(t, err)
		require.Equal(t, week43, result.Week)

		for _, day := range types.Weekdays() {
			require.Len(t, result.Days[day].Assignments, 1)
			require.Equal(t, day, result.Days[day].Weekday)
			require.Equal(t, monday43.AddDays(int(day)), result.Days[day].Date)
		}
		require.Equal(t, types.NewDate(2025, 10, 26), result.Days[types.Sunday].Date)

		require.Len(t, result.Assignments(), types.NumWeekdays)
		require.Zero(t, result.TotalConflicts())
	})

	t.Run("carryover applies per weekday", func(t *testing.T) {
		t.Parallel()

		occupants := []types.Occupant{
			{ID: "occ-1", Name: "Ann", Pattern: types.DaysOf(types.Monday, types.Tuesday)},
		}
		resources := []types.Resource{plainSeat("seat-1"), plainSeat("seat-2")}
		previous := []types.Assignment{
			{OccupantID: "occ-1", ResourceID: "seat-2", Week: "2025-W42", Weekday: types.Monday},
		}

		result, err := eng.AssignWeek(occupants, resources, week43, previous)
		require.NoError(t, err)

		// Monday keeps the held seat, Tuesday has no hint and takes the
		// lowest ID.
		require.Equal(t, "seat-2", result.Days[types.Monday].Assignments[0].ResourceID)
		require.Equal(t, "seat-1", result.Days[types.Tuesday].Assignments[0].ResourceID)
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		t.Parallel()

		occupants := []types.Occupant{
			{ID: "occ-3", Name: "Cem", Pattern: types.EveryDay(), Requirements: []string{"window"}},
			{ID: "occ-1", Name: "Ann", Pattern: types.DaysOf(types.Monday, types.Wednesday)},
			{ID: "occ-2", Name: "Ben", Pattern: types.EveryDay(), Requirements: []string{"outlet"}},
		}
		resources := []types.Resource{
			windowSeat("seat-2"),
			plainSeat("seat-3"),
			{ID: "seat-1", Properties: map[string]bool{"outlet": true}},
		}
		previous := []types.Assignment{
			{OccupantID: "occ-2", ResourceID: "seat-3", Week: "2025-W42", Weekday: types.Thursday},
		}

		first, err := eng.AssignWeek(occupants, resources, week43, previous)
		require.NoError(t, err)
		second, err := eng.AssignWeek(occupants, resources, week43, previous)
		require.NoError(t, err)

		require.Equal(t, first, second)
	})
}

func TestAssignWeekNeverDoubleBooks(t *testing.T) {
	t.Parallel()

	eng := New()

	occupants := []types.Occupant{
		{ID: "occ-1", Name: "Ann", Pattern: types.EveryDay(), Requirements: []string{"window"}},
		{ID: "occ-2", Name: "Ben", Pattern: types.EveryDay()},
		{ID: "occ-3", Name: "Cem", Pattern: types.DaysOf(types.Monday, types.Wednesday, types.Friday)},
		{ID: "occ-4", Name: "Dee", Pattern: types.EveryDay(), Requirements: []string{"outlet"}},
		{ID: "occ-5", Name: "Eli", Pattern: types.DaysOf(types.Tuesday, types.Thursday)},
	}
	resources := []types.Resource{
		windowSeat("seat-1"),
		plainSeat("seat-2"),
		{ID: "seat-3", Properties: map[string]bool{"outlet": true}},
	}

	result, err := eng.AssignWeek(occupants, resources, week43, nil)
	require.NoError(t, err)

	for _, day := range types.Weekdays() {
		dayResult := result.Days[day]

		seenResource := make(map[string]bool)
		seenOccupant := make(map[string]bool)
		for _, a := range dayResult.Assignments {
			require.False(t, seenResource[a.ResourceID],
				"resource %s assigned twice on %s", a.ResourceID, day)
			require.False(t, seenOccupant[a.OccupantID],
				"occupant %s placed twice on %s", a.OccupantID, day)
			seenResource[a.ResourceID] = true
			seenOccupant[a.OccupantID] = true
		}

		active := 0
		for _, occ := range occupants {
			if occ.AvailableOn(day) {
				active++
			}
		}
		require.Equal(t, active, len(dayResult.Assignments)+len(dayResult.Conflicts),
			"placement accounting on %s", day)
	}
}

func BenchmarkAssignDay(b *testing.B) {
	eng := New()

	occupants := make([]types.Occupant, 0, 200)
	for i := range 200 {
		occ := types.Occupant{
			ID:      fmt.Sprintf("occ-%03d", i),
			Name:    fmt.Sprintf("Occupant %03d", i),
			Pattern: types.EveryDay(),
		}
		if i%3 == 0 {
			occ.Requirements = []string{"window"}
		}
		occupants = append(occupants, occ)
	}
	resources := make([]types.Resource, 0, 150)
	for i := range 150 {
		res := types.Resource{ID: fmt.Sprintf("seat-%03d", i)}
		if i%2 == 0 {
			res.Properties = map[string]bool{"window": true}
		}
		resources = append(resources, res)
	}

	for b.Loop() {
		eng.AssignDay(occupants, resources, week43, types.Monday, monday43, nil)
	}
}
