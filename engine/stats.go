package engine

import (
	"math"

	"github.com/humphreyyy/sitzplatz/types"
)

// Stats aggregates a full week's placement outcome.
//
// Rates are percentages rounded to two decimals; an empty resource
// pool or roster yields zero rates rather than division errors.
type Stats struct {
	// Placements is the total number of assignments across all days.
	Placements int `json:"placements"`

	// Conflicts is the total number of unplaced occupant-days.
	Conflicts int `json:"conflicts"`

	// OccupancyRate is placements over the week's resource-day capacity
	// (resources times seven days), as a percentage.
	OccupancyRate float64 `json:"occupancy_rate"`

	// DaysWithConflicts counts the weekdays with at least one conflict.
	DaysWithConflicts int `json:"days_with_conflicts"`

	// ConflictRate is conflicts over attending occupant-days (the sum
	// of pattern days across the roster), as a percentage.
	ConflictRate float64 `json:"conflict_rate"`

	// ResourceCount is the size of the resource pool.
	ResourceCount int `json:"resource_count"`

	// OccupantCount is the size of the roster.
	OccupantCount int `json:"occupant_count"`
}

// DayStats is the per-day occupancy breakdown.
type DayStats struct {
	// Weekday is the measured day.
	Weekday types.Weekday `json:"weekday"`

	// Placements is the number of assignments on the day.
	Placements int `json:"placements"`

	// Conflicts is the number of unplaced occupants on the day.
	Conflicts int `json:"conflicts"`

	// OccupancyRate is placements over the resource pool size, as a
	// percentage rounded to two decimals.
	OccupancyRate float64 `json:"occupancy_rate"`
}

// Statistics aggregates a week result against the full roster and
// resource pool. Pure aggregation over the inputs; it never fails.
//
// Parameters:
//   - result: Completed week plan
//   - occupants: Full roster, attending or not
//   - resources: Full resource pool
//
// Returns:
//   - Stats: Aggregated counts and rates
func (e *Engine) Statistics(result *WeekResult, occupants []types.Occupant, resources []types.Resource) Stats {
	stats := Stats{
		ResourceCount: len(resources),
		OccupantCount: len(occupants),
	}

	for _, day := range result.Days {
		stats.Placements += len(day.Assignments)
		stats.Conflicts += len(day.Conflicts)
		if len(day.Conflicts) > 0 {
			stats.DaysWithConflicts++
		}
	}

	if capacity := len(resources) * types.NumWeekdays; capacity > 0 {
		stats.OccupancyRate = round2(float64(stats.Placements) / float64(capacity) * 100)
	}

	occupantDays := 0
	for _, o := range occupants {
		occupantDays += o.Pattern.Count()
	}
	if occupantDays > 0 {
		stats.ConflictRate = round2(float64(stats.Conflicts) / float64(occupantDays) * 100)
	}

	e.metrics.RecordOccupancyRate(stats.OccupancyRate)

	return stats
}

// DayStatistics measures a single day's occupancy.
//
// Parameters:
//   - day: Completed day plan
//   - resources: Full resource pool
//
// Returns:
//   - DayStats: Per-day counts and occupancy
func (e *Engine) DayStatistics(day DayResult, resources []types.Resource) DayStats {
	stats := DayStats{
		Weekday:    day.Weekday,
		Placements: len(day.Assignments),
		Conflicts:  len(day.Conflicts),
	}
	if len(resources) > 0 {
		stats.OccupancyRate = round2(float64(stats.Placements) / float64(len(resources)) * 100)
	}

	return stats
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
