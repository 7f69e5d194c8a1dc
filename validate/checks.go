package validate

import (
	"fmt"

	"github.com/humphreyyy/sitzplatz/types"
)

// GroupOverlap reports every pair of groups sharing interior area.
//
// The test is a separating-axis check over unordered pairs, symmetric
// by construction: identical rectangles overlap, rectangles touching
// only along an edge or corner do not.
//
// Parameters:
//   - groups: Floor plan groups in document order
//
// Returns:
//   - []Issue: One violation per overlapping pair (i before j)
func GroupOverlap(groups []types.Group) []Issue {
	var issues []Issue
	for i := range groups {
		for j := i + 1; j < len(groups); j++ {
			if !groups[i].Overlaps(groups[j]) {
				continue
			}
			issues = append(issues, Issue{
				Kind:     KindGroupOverlap,
				Severity: Violation,
				Message:  fmt.Sprintf("group %q overlaps group %q", groups[i].ID, groups[j].ID),
				Subjects: []string{groups[i].ID, groups[j].ID},
			})
		}
	}

	return issues
}

// ResourceContainment reports resources that name a missing group or
// lie outside their group's rectangle. Bounds are inclusive: a resource
// exactly on the edge is contained.
func ResourceContainment(resources []types.Resource, groups []types.Group) []Issue {
	byID := make(map[string]types.Group, len(groups))
	for _, g := range groups {
		byID[g.ID] = g
	}

	var issues []Issue
	for _, r := range resources {
		group, ok := byID[r.GroupID]
		if !ok {
			issues = append(issues, Issue{
				Kind:     KindUnknownGroup,
				Severity: Violation,
				Message:  fmt.Sprintf("resource %q references unknown group %q", r.ID, r.GroupID),
				Subjects: []string{r.ID, r.GroupID},
			})

			continue
		}
		if !group.Contains(r.X, r.Y) {
			issues = append(issues, Issue{
				Kind:     KindResourceOutsideGroup,
				Severity: Violation,
				Message:  fmt.Sprintf("resource %q lies outside group %q", r.ID, group.ID),
				Subjects: []string{r.ID, group.ID},
			})
		}
	}

	return issues
}

// OccupantIntervals reports occupants whose validity interval is
// inverted: a set ValidUntil earlier than ValidFrom. Open-ended bounds
// never invert.
func OccupantIntervals(occupants []types.Occupant) []Issue {
	var issues []Issue
	for _, o := range occupants {
		if o.ValidUntil.IsZero() || !o.ValidUntil.Before(o.ValidFrom) {
			continue
		}
		issues = append(issues, Issue{
			Kind:     KindIntervalInverted,
			Severity: Violation,
			Message: fmt.Sprintf("occupant %q validity ends %s before it starts %s",
				o.ID, o.ValidUntil, o.ValidFrom),
			Subjects: []string{o.ID},
		})
	}

	return issues
}

// AssignmentConflicts reports duplicate placements within a
// (week, weekday) slot: the same resource occupied twice, or the same
// occupant seated twice. Each extra occurrence yields one violation, in
// document order.
func AssignmentConflicts(assignments []types.Assignment) []Issue {
	type slotKey struct {
		slot string
		id   string
	}
	seenResource := make(map[slotKey]bool, len(assignments))
	seenOccupant := make(map[slotKey]bool, len(assignments))

	var issues []Issue
	for _, a := range assignments {
		slot := a.SlotKey()

		rk := slotKey{slot: slot, id: a.ResourceID}
		if seenResource[rk] {
			issues = append(issues, Issue{
				Kind:     KindDuplicateResource,
				Severity: Violation,
				Message:  fmt.Sprintf("resource %q assigned more than once in %s", a.ResourceID, slot),
				Subjects: []string{a.ResourceID},
			})
		}
		seenResource[rk] = true

		ok := slotKey{slot: slot, id: a.OccupantID}
		if seenOccupant[ok] {
			issues = append(issues, Issue{
				Kind:     KindDuplicateOccupant,
				Severity: Violation,
				Message:  fmt.Sprintf("occupant %q assigned more than once in %s", a.OccupantID, slot),
				Subjects: []string{a.OccupantID},
			})
		}
		seenOccupant[ok] = true
	}

	return issues
}

// AssignmentReferences reports assignments naming records absent from
// the snapshot, and assignments with malformed slots (unparseable week
// or out-of-range weekday).
func AssignmentReferences(assignments []types.Assignment, occupants []types.Occupant, resources []types.Resource) []Issue {
	occupantIDs := make(map[string]bool, len(occupants))
	for _, o := range occupants {
		occupantIDs[o.ID] = true
	}
	resourceIDs := make(map[string]bool, len(resources))
	for _, r := range resources {
		resourceIDs[r.ID] = true
	}

	var issues []Issue
	for _, a := range assignments {
		if !a.Week.Valid() || !a.Weekday.Valid() {
			issues = append(issues, Issue{
				Kind:     KindInvalidSlot,
				Severity: Violation,
				Message:  fmt.Sprintf("assignment for occupant %q has invalid slot %q/%d", a.OccupantID, a.Week, int(a.Weekday)),
				Subjects: []string{a.OccupantID},
			})
		}
		if !occupantIDs[a.OccupantID] {
			issues = append(issues, Issue{
				Kind:     KindUnknownOccupant,
				Severity: Violation,
				Message:  fmt.Sprintf("assignment %s names unknown occupant %q", a.Key(), a.OccupantID),
				Subjects: []string{a.OccupantID},
			})
		}
		if !resourceIDs[a.ResourceID] {
			issues = append(issues, Issue{
				Kind:     KindUnknownResource,
				Severity: Violation,
				Message:  fmt.Sprintf("assignment %s names unknown resource %q", a.Key(), a.ResourceID),
				Subjects: []string{a.ResourceID},
			})
		}
	}

	return issues
}

// CapacityReport summarizes occupant demand against resource supply for
// one day.
type CapacityReport struct {
	// Weekday is the examined day.
	Weekday types.Weekday

	// Date is the concrete date used for validity filtering.
	Date types.Date

	// ActiveOccupants counts occupants available on the weekday and
	// active on the date.
	ActiveOccupants int

	// ResourceCount is the total number of resources.
	ResourceCount int

	// Excess is max(0, ActiveOccupants-ResourceCount): the number of
	// occupants that cannot possibly receive a resource.
	Excess int
}

// Issue converts the report into an advisory finding.
// Reports with no excess yield no issue.
func (c CapacityReport) Issue() (Issue, bool) {
	if c.Excess == 0 {
		return Issue{}, false
	}

	return Issue{
		Kind:     KindCapacityExceeded,
		Severity: Advisory,
		Message: fmt.Sprintf("%s (%s): %d active occupants exceed %d resources by %d",
			c.Weekday, c.Date, c.ActiveOccupants, c.ResourceCount, c.Excess),
	}, true
}

// Capacity computes the demand/supply balance for one day.
//
// Capacity findings are always advisory: the engine degrades gracefully
// by reporting unplaceable occupants as conflicts, so excess demand
// never blocks persistence.
//
// Parameters:
//   - occupants: Full roster; filtered by weekday pattern and validity
//   - resources: Full floor plan resource list
//   - day: Weekday to examine
//   - date: Concrete date of that weekday, for validity filtering
func Capacity(occupants []types.Occupant, resources []types.Resource, day types.Weekday, date types.Date) CapacityReport {
	active := 0
	for _, o := range occupants {
		if o.AvailableOn(day) && o.ActiveOn(date) {
			active++
		}
	}

	excess := active - len(resources)
	if excess < 0 {
		excess = 0
	}

	return CapacityReport{
		Weekday:         day,
		Date:            date,
		ActiveOccupants: active,
		ResourceCount:   len(resources),
		Excess:          excess,
	}
}
