package engine

import "github.com/humphreyyy/sitzplatz/types"

// DayResult is the outcome of planning a single weekday.
type DayResult struct {
	// Weekday is the planned day.
	Weekday types.Weekday

	// Date is the calendar date of the planned day.
	Date types.Date

	// Assignments lists the successful placements in placement order.
	Assignments []types.Assignment

	// Conflicts lists the IDs of occupants that attended but received
	// no resource, in placement order.
	Conflicts []string
}

// WeekResult is the outcome of planning all seven days of one week.
type WeekResult struct {
	// Week identifies the planned week.
	Week types.Week

	// Days holds one result per weekday, indexed by types.Weekday.
	Days [types.NumWeekdays]DayResult
}

// Assignments flattens the per-day placements in weekday order,
// ready to replace the week's records in a snapshot.
func (r *WeekResult) Assignments() []types.Assignment {
	var out []types.Assignment
	for _, day := range r.Days {
		out = append(out, day.Assignments...)
	}

	return out
}

// TotalConflicts counts the unplaced occupant-days across the week.
func (r *WeekResult) TotalConflicts() int {
	n := 0
	for _, day := range r.Days {
		n += len(day.Conflicts)
	}

	return n
}
