package types

import (
	"fmt"
	"time"
)

// Weekday identifies a day of the ISO week, Monday first.
//
// The zero value is Monday. Weekdays serialize as lowercase English
// names ("monday" ... "sunday"), which is also the key format used by
// WeekPattern in persisted documents.
type Weekday int

const (
	// Monday is the first day of the ISO week.
	Monday Weekday = iota

	// Tuesday is the second day of the ISO week.
	Tuesday

	// Wednesday is the third day of the ISO week.
	Wednesday

	// Thursday is the fourth day of the ISO week.
	Thursday

	// Friday is the fifth day of the ISO week.
	Friday

	// Saturday is the sixth day of the ISO week.
	Saturday

	// Sunday is the last day of the ISO week.
	Sunday
)

// NumWeekdays is the number of days in a week.
const NumWeekdays = 7

var weekdayNames = [NumWeekdays]string{
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
}

// Weekdays returns all weekdays in ISO order (Monday through Sunday).
//
// The result is a fresh slice on each call, safe for the caller to modify.
func Weekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// ParseWeekday converts a lowercase English day name to a Weekday.
//
// Parameters:
//   - name: Day name such as "monday" (case-sensitive)
//
// Returns:
//   - Weekday: The parsed weekday
//   - error: ErrInvalidWeekday if the name is not a known day
func ParseWeekday(name string) (Weekday, error) {
	for i, n := range weekdayNames {
		if n == name {
			return Weekday(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, name)
}

// Valid reports whether the weekday is within the Monday..Sunday range.
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

// String returns the lowercase English name of the weekday ("unknown" if out of range).
func (d Weekday) String() string {
	if !d.Valid() {
		return "unknown"
	}

	return weekdayNames[d]
}

// TimeWeekday converts to the standard library's time.Weekday
// (which starts the week on Sunday).
func (d Weekday) TimeWeekday() time.Weekday {
	if d == Sunday {
		return time.Sunday
	}

	return time.Weekday(d + 1)
}

// WeekdayOf converts a time.Weekday to the ISO-ordered Weekday.
func WeekdayOf(wd time.Weekday) Weekday {
	if wd == time.Sunday {
		return Sunday
	}

	return Weekday(wd - 1)
}

// MarshalText implements encoding.TextMarshaler using the lowercase name.
func (d Weekday) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWeekday, int(d))
	}

	return []byte(weekdayNames[d]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler from a lowercase name.
func (d *Weekday) UnmarshalText(text []byte) error {
	parsed, err := ParseWeekday(string(text))
	if err != nil {
		return err
	}
	*d = parsed

	return nil
}
