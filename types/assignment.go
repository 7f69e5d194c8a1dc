package types

import "fmt"

// Assignment places one occupant on one resource for a single weekday
// of a single week.
//
// Within a (week, weekday) slot each occupant and each resource may
// appear at most once. The library validates this rather than enforcing
// it structurally, so externally produced documents surface duplicates
// as violations instead of silently losing records.
type Assignment struct {
	// OccupantID names the placed occupant.
	OccupantID string `json:"occupant_id"`

	// ResourceID names the occupied resource.
	ResourceID string `json:"resource_id"`

	// Week is the ISO week the placement applies to.
	Week Week `json:"week"`

	// Weekday is the day within the week.
	Weekday Weekday `json:"weekday"`
}

// SlotKey returns the "week/weekday" key shared by all assignments
// of one day.
func (a Assignment) SlotKey() string {
	return fmt.Sprintf("%s/%s", a.Week, a.Weekday)
}

// Key returns the canonical "week/weekday/occupant" identifier.
// Unique within a valid snapshot.
func (a Assignment) Key() string {
	return fmt.Sprintf("%s/%s/%s", a.Week, a.Weekday, a.OccupantID)
}
