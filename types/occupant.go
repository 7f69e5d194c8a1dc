package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// WeekPattern records which weekdays an occupant attends.
//
// Indexed by Weekday (Monday first). The JSON form is an object keyed
// by lowercase day names, e.g. {"monday": true, ..., "sunday": false};
// day names missing from the object default to false and unknown keys
// are skipped.
type WeekPattern [NumWeekdays]bool

// EveryDay returns a pattern with all seven days present.
func EveryDay() WeekPattern {
	var p WeekPattern
	for i := range p {
		p[i] = true
	}

	return p
}

// DaysOf returns a pattern with exactly the given days present.
// Out-of-range days are ignored.
func DaysOf(days ...Weekday) WeekPattern {
	var p WeekPattern
	for _, d := range days {
		if d.Valid() {
			p[d] = true
		}
	}

	return p
}

// On reports whether the pattern includes the given day.
// Out-of-range days report false.
func (p WeekPattern) On(day Weekday) bool {
	if !day.Valid() {
		return false
	}

	return p[day]
}

// Set marks the given day present or absent. Out-of-range days are ignored.
func (p *WeekPattern) Set(day Weekday, present bool) {
	if day.Valid() {
		p[day] = present
	}
}

// Count returns the number of days present in the pattern.
func (p WeekPattern) Count() int {
	n := 0
	for _, present := range p {
		if present {
			n++
		}
	}

	return n
}

// Days returns the present days in ISO order.
func (p WeekPattern) Days() []Weekday {
	days := make([]Weekday, 0, NumWeekdays)
	for i, present := range p {
		if present {
			days = append(days, Weekday(i))
		}
	}

	return days
}

// MarshalJSON emits the object form with all seven day keys in ISO order.
func (p WeekPattern) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, name := range weekdayNames {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%q:%t", name, p[i])
	}
	b.WriteByte('}')

	return b.Bytes(), nil
}

// UnmarshalJSON reads the object form. Missing days default to false;
// unknown keys are skipped.
func (p *WeekPattern) UnmarshalJSON(data []byte) error {
	var raw map[string]bool
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var pattern WeekPattern
	for name, present := range raw {
		day, err := ParseWeekday(name)
		if err != nil {
			continue
		}
		pattern[day] = present
	}
	*p = pattern

	return nil
}

// Occupant is a roster member eligible for resource assignment.
type Occupant struct {
	// ID uniquely identifies the occupant across the snapshot.
	ID string `json:"id"`

	// Name is the display name. Assignment ordering sorts by Name,
	// so stable names keep week-to-week placement deterministic.
	Name string `json:"name"`

	// Pattern records the weekdays the occupant attends.
	Pattern WeekPattern `json:"pattern"`

	// ValidFrom is the first date the occupant is active.
	// The zero (open-ended) date places no lower bound.
	ValidFrom Date `json:"valid_from"`

	// ValidUntil is the last date the occupant is active (inclusive).
	// The zero (open-ended) date keeps the occupant active indefinitely.
	ValidUntil Date `json:"valid_until"`

	// Requirements lists resource property names the occupant prefers,
	// e.g. "window" or "outlet". Matching is best-effort: the engine
	// prefers resources satisfying all of them, then any, then any
	// free resource.
	Requirements []string `json:"requirements,omitempty"`
}

// AvailableOn reports whether the occupant attends on the given weekday.
func (o Occupant) AvailableOn(day Weekday) bool {
	return o.Pattern.On(day)
}

// ActiveOn reports whether the date falls inside the occupant's
// validity interval. Both bounds are inclusive; open-ended bounds
// always pass.
func (o Occupant) ActiveOn(date Date) bool {
	if date.Before(o.ValidFrom) {
		return false
	}
	if !o.ValidUntil.IsZero() && date.After(o.ValidUntil) {
		return false
	}

	return true
}

// HasRequirement reports whether the occupant lists the given requirement.
func (o Occupant) HasRequirement(name string) bool {
	return slices.Contains(o.Requirements, name)
}
