package types

import (
	"maps"
	"slices"
	"time"
)

// SnapshotMeta carries bookkeeping stamped on every persisted snapshot.
type SnapshotMeta struct {
	// ModifiedAt is the time of the last accepted mutation.
	ModifiedAt time.Time `json:"modified_at"`

	// ModifiedBy is the identity of the session that made it.
	ModifiedBy string `json:"modified_by,omitempty"`
}

// StateSnapshot is the complete persisted document: floor plan, roster
// and all assignments.
//
// A well-formed snapshot has all four sections non-nil (empty slices
// are fine). A nil section means the document is structurally
// incomplete, which loading and committing treat as a hard error
// rather than a validation finding.
type StateSnapshot struct {
	// Groups are the floor plan regions.
	Groups []Group `json:"groups"`

	// Resources are the assignable seats.
	Resources []Resource `json:"resources"`

	// Occupants are the roster members.
	Occupants []Occupant `json:"occupants"`

	// Assignments are all placements across all weeks.
	Assignments []Assignment `json:"assignments"`

	// Meta is the modification stamp.
	Meta SnapshotMeta `json:"meta"`
}

// NewStateSnapshot returns an empty snapshot with all sections present.
func NewStateSnapshot() *StateSnapshot {
	return &StateSnapshot{
		Groups:      []Group{},
		Resources:   []Resource{},
		Occupants:   []Occupant{},
		Assignments: []Assignment{},
	}
}

// MissingSections returns the names of nil top-level sections, in
// document order. A complete snapshot returns an empty result.
func (s *StateSnapshot) MissingSections() []string {
	var missing []string
	if s.Groups == nil {
		missing = append(missing, "groups")
	}
	if s.Resources == nil {
		missing = append(missing, "resources")
	}
	if s.Occupants == nil {
		missing = append(missing, "occupants")
	}
	if s.Assignments == nil {
		missing = append(missing, "assignments")
	}

	return missing
}

// Clone returns a deep copy. Nested maps and slices are copied, so
// mutating the clone never affects the original. Nil sections stay nil.
func (s *StateSnapshot) Clone() *StateSnapshot {
	if s == nil {
		return nil
	}

	out := &StateSnapshot{Meta: s.Meta}
	if s.Groups != nil {
		out.Groups = slices.Clone(s.Groups)
	}
	if s.Resources != nil {
		out.Resources = make([]Resource, len(s.Resources))
		for i, r := range s.Resources {
			r.Properties = maps.Clone(r.Properties)
			out.Resources[i] = r
		}
	}
	if s.Occupants != nil {
		out.Occupants = make([]Occupant, len(s.Occupants))
		for i, o := range s.Occupants {
			o.Requirements = slices.Clone(o.Requirements)
			out.Occupants[i] = o
		}
	}
	if s.Assignments != nil {
		out.Assignments = slices.Clone(s.Assignments)
	}

	return out
}

// GroupByID looks up a group by ID.
func (s *StateSnapshot) GroupByID(id string) (Group, bool) {
	for _, g := range s.Groups {
		if g.ID == id {
			return g, true
		}
	}

	return Group{}, false
}

// ResourceByID looks up a resource by ID.
func (s *StateSnapshot) ResourceByID(id string) (Resource, bool) {
	for _, r := range s.Resources {
		if r.ID == id {
			return r, true
		}
	}

	return Resource{}, false
}

// OccupantByID looks up an occupant by ID.
func (s *StateSnapshot) OccupantByID(id string) (Occupant, bool) {
	for _, o := range s.Occupants {
		if o.ID == id {
			return o, true
		}
	}

	return Occupant{}, false
}

// AssignmentsFor returns all assignments of the given week, in
// document order.
func (s *StateSnapshot) AssignmentsFor(week Week) []Assignment {
	var out []Assignment
	for _, a := range s.Assignments {
		if a.Week == week {
			out = append(out, a)
		}
	}

	return out
}

// DayAssignments returns the assignments of one (week, weekday) slot,
// in document order.
func (s *StateSnapshot) DayAssignments(week Week, day Weekday) []Assignment {
	var out []Assignment
	for _, a := range s.Assignments {
		if a.Week == week && a.Weekday == day {
			out = append(out, a)
		}
	}

	return out
}

// ReplaceWeek removes every assignment of the given week and appends
// the replacement batch.
func (s *StateSnapshot) ReplaceWeek(week Week, assignments []Assignment) {
	kept := make([]Assignment, 0, len(s.Assignments)+len(assignments))
	for _, a := range s.Assignments {
		if a.Week != week {
			kept = append(kept, a)
		}
	}
	s.Assignments = append(kept, assignments...)
}

// SetAssignment inserts the assignment, replacing any existing
// placement of the same occupant in the same (week, weekday) slot.
func (s *StateSnapshot) SetAssignment(a Assignment) {
	for i := range s.Assignments {
		if s.Assignments[i].Week == a.Week &&
			s.Assignments[i].Weekday == a.Weekday &&
			s.Assignments[i].OccupantID == a.OccupantID {
			s.Assignments[i] = a

			return
		}
	}
	s.Assignments = append(s.Assignments, a)
}

// RemoveAssignment deletes the placement of the given occupant in the
// given slot. Reports whether a placement was removed.
func (s *StateSnapshot) RemoveAssignment(week Week, day Weekday, occupantID string) bool {
	for i := range s.Assignments {
		if s.Assignments[i].Week == week &&
			s.Assignments[i].Weekday == day &&
			s.Assignments[i].OccupantID == occupantID {
			s.Assignments = slices.Delete(s.Assignments, i, i+1)

			return true
		}
	}

	return false
}
