package types

import (
	"fmt"
	"time"
)

// dateLayout is the wire format for concrete dates.
const dateLayout = "2006-01-02"

// openEnded is the wire sentinel for an unbounded date.
const openEnded = "ongoing"

// Date is a civil calendar date without time-of-day or location.
//
// The zero value means "open-ended" and serializes as the sentinel
// string "ongoing". An open-ended ValidUntil keeps an occupant active
// indefinitely; an open-ended ValidFrom places no lower bound.
type Date struct {
	// Year is the calendar year (e.g., 2025).
	Year int

	// Month is the calendar month, January = 1.
	Month time.Month

	// Day is the day of the month, starting at 1.
	Day int
}

// NewDate builds a Date from its components. No range checking is
// performed; use Valid to verify calendar correctness.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf extracts the civil date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()

	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a "2006-01-02" date string.
//
// The empty string and the sentinel "ongoing" parse to the zero
// (open-ended) Date.
//
// Returns:
//   - Date: The parsed date
//   - error: ErrInvalidDate for any other malformed input
func ParseDate(s string) (Date, error) {
	if s == "" || s == openEnded {
		return Date{}, nil
	}

	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	return DateOf(t), nil
}

// IsZero reports whether the date is the open-ended sentinel.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Valid reports whether the date exists on the calendar.
// The zero (open-ended) date is valid.
func (d Date) Valid() bool {
	if d.IsZero() {
		return true
	}
	if d.Month < time.January || d.Month > time.December || d.Day < 1 {
		return false
	}

	return DateOf(d.Time()) == d
}

// Time returns the date at midnight UTC. The zero date maps to the
// zero time.Time.
func (d Date) Time() time.Time {
	if d.IsZero() {
		return time.Time{}
	}

	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Before reports whether d is strictly earlier than o.
// Open-ended dates are not ordered; Before is false when either side is zero.
func (d Date) Before(o Date) bool {
	if d.IsZero() || o.IsZero() {
		return false
	}
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}

	return d.Day < o.Day
}

// After reports whether d is strictly later than o.
// Open-ended dates are not ordered; After is false when either side is zero.
func (d Date) After(o Date) bool {
	return o.Before(d)
}

// Equal reports whether both dates name the same day (or are both open-ended).
func (d Date) Equal(o Date) bool {
	return d == o
}

// AddDays returns the date n days later (earlier for negative n),
// normalized across month and year boundaries.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// Weekday returns the ISO weekday the date falls on.
func (d Date) Weekday() Weekday {
	return WeekdayOf(d.Time().Weekday())
}

// String returns "2006-01-02", or "ongoing" for the zero date.
func (d Date) String() string {
	if d.IsZero() {
		return openEnded
	}

	return d.Time().Format(dateLayout)
}

// MarshalText implements encoding.TextMarshaler using String.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler via ParseDate.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed

	return nil
}
