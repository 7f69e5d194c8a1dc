package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/humphreyyy/sitzplatz/types"
)

func TestStatistics(t *testing.T) {
	t.Parallel()

	eng := New()

	t.Run("aggregates the two-seat scenario", func(t *testing.T) {
		t.Parallel()

		occupants := []types.Occupant{
			mondayOccupant("occ-alice", "Alice", "window"),
			mondayOccupant("occ-bob", "Bob"),
			mondayOccupant("occ-carol", "Carol", "window"),
		}
		resources := []types.Resource{windowSeat("seat-1"), plainSeat("seat-2")}

		result, err := eng.AssignWeek(occupants, resources, week43, nil)
		require.NoError(t, err)

		stats := eng.Statistics(result, occupants, resources)
		require.Equal(t, 2, stats.Placements)
		require.Equal(t, 1, stats.Conflicts)
		require.Equal(t, 1, stats.DaysWithConflicts)
		require.Equal(t, 2, stats.ResourceCount)
		require.Equal(t, 3, stats.OccupantCount)

		// 2 placements over 2 seats x 7 days.
		require.InDelta(t, 14.29, stats.OccupancyRate, 0.001)
		// 1 conflict over 3 attending occupant-days.
		require.InDelta(t, 33.33, stats.ConflictRate, 0.001)
	})

	t.Run("zero denominators never divide", func(t *testing.T) {
		t.Parallel()

		stats := eng.Statistics(&WeekResult{Week: week43}, nil, nil)
		require.Zero(t, stats.OccupancyRate)
		require.Zero(t, stats.ConflictRate)
		require.Zero(t, stats.Placements)
		require.Zero(t, stats.DaysWithConflicts)
	})

	t.Run("counts days with conflicts not conflicts", func(t *testing.T) {
		t.Parallel()

		// Two occupants on Monday and Tuesday against one seat: one
		// conflict each day.
		occupants := []types.Occupant{
			{ID: "occ-1", Name: "Ann", Pattern: types.DaysOf(types.Monday, types.Tuesday)},
			{ID: "occ-2", Name: "Ben", Pattern: types.DaysOf(types.Monday, types.Tuesday)},
		}
		resources := []types.Resource{plainSeat("seat-1")}

		result, err := eng.AssignWeek(occupants, resources, week43, nil)
		require.NoError(t, err)

		stats := eng.Statistics(result, occupants, resources)
		require.Equal(t, 2, stats.Conflicts)
		require.Equal(t, 2, stats.DaysWithConflicts)
		// 2 conflicts over 4 attending occupant-days.
		require.InDelta(t, 50.0, stats.ConflictRate, 0.001)
	})
}

func TestDayStatistics(t *testing.T) {
	t.Parallel()

	eng := New()

	t.Run("full house is one hundred percent", func(t *testing.T) {
		t.Parallel()

		occupants := []types.Occupant{
			mondayOccupant("occ-1", "Ann"),
			mondayOccupant("occ-2", "Ben"),
		}
		resources := []types.Resource{plainSeat("seat-1"), plainSeat("seat-2")}

		day := eng.AssignDay(occupants, resources, week43, types.Monday, monday43, nil)
		stats := eng.DayStatistics(day, resources)

		require.Equal(t, types.Monday, stats.Weekday)
		require.Equal(t, 2, stats.Placements)
		require.Zero(t, stats.Conflicts)
		require.InDelta(t, 100.0, stats.OccupancyRate, 0.001)
	})

	t.Run("empty pool reports zero", func(t *testing.T) {
		t.Parallel()

		stats := eng.DayStatistics(DayResult{Weekday: types.Monday}, nil)
		require.Zero(t, stats.OccupancyRate)
		require.Zero(t, stats.Placements)
	})
}

func TestRound2(t *testing.T) {
	t.Parallel()

	require.InDelta(t, 33.33, round2(100.0/3.0), 0.0001)
	require.InDelta(t, 14.29, round2(2.0/14.0*100), 0.0001)
	require.InDelta(t, 66.67, round2(200.0/3.0), 0.0001)
	require.Zero(t, round2(0))
}
