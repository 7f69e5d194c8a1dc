package types

import (
	"fmt"
	"regexp"
	"strconv"
)

// Week identifies an ISO-8601 calendar week in the "2025-W43" form.
//
// Weeks follow the ISO rules: week 1 is the week containing January 4,
// and every week runs Monday through Sunday. A Week is the scheduling
// unit of the library; assignments are keyed by (week, weekday).
type Week string

var weekIDPattern = regexp.MustCompile(`^(\d{4})-W(\d{2})$`)

// NewWeek formats a year and ISO week number as a Week identifier.
//
// The result is syntactically well formed for any inputs in range;
// use Valid to verify the week exists in that year's calendar.
func NewWeek(year, week int) Week {
	return Week(fmt.Sprintf("%04d-W%02d", year, week))
}

// WeekOf returns the ISO week containing the given date.
// The zero (open-ended) date yields the empty Week.
func WeekOf(d Date) Week {
	if d.IsZero() {
		return ""
	}
	y, w := d.Time().ISOWeek()

	return NewWeek(y, w)
}

// Parse splits the identifier into its year and ISO week number.
//
// Returns:
//   - year: Four-digit year
//   - week: Week number in 1..53
//   - err: ErrInvalidWeek when the format or range is wrong
func (w Week) Parse() (year, week int, err error) {
	m := weekIDPattern.FindStringSubmatch(string(w))
	if m == nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidWeek, string(w))
	}
	year, _ = strconv.Atoi(m[1])
	week, _ = strconv.Atoi(m[2])
	if week < 1 || week > 53 {
		return 0, 0, fmt.Errorf("%w: week number %d out of range", ErrInvalidWeek, week)
	}

	return year, week, nil
}

// Valid reports whether the identifier names a week that exists on the
// calendar. Week 53 is only valid in long ISO years.
func (w Week) Valid() bool {
	_, err := w.Monday()

	return err == nil
}

// Monday returns the date of the week's first day.
//
// The computation anchors on January 4, which is always inside ISO
// week 1, then verifies the result round-trips to the same identifier.
// Week 53 of a 52-week year fails that check.
func (w Week) Monday() (Date, error) {
	year, week, err := w.Parse()
	if err != nil {
		return Date{}, err
	}

	jan4 := NewDate(year, 1, 4)
	week1Monday := jan4.AddDays(-int(jan4.Weekday()))
	monday := week1Monday.AddDays((week - 1) * NumWeekdays)

	if WeekOf(monday) != NewWeek(year, week) {
		return Date{}, fmt.Errorf("%w: %04d has no week %02d", ErrInvalidWeek, year, week)
	}

	return monday, nil
}

// DateOf returns the date of the given weekday within the week.
func (w Week) DateOf(day Weekday) (Date, error) {
	if !day.Valid() {
		return Date{}, fmt.Errorf("%w: %d", ErrInvalidWeekday, int(day))
	}
	monday, err := w.Monday()
	if err != nil {
		return Date{}, err
	}

	return monday.AddDays(int(day)), nil
}

// Next returns the following calendar week.
func (w Week) Next() (Week, error) {
	monday, err := w.Monday()
	if err != nil {
		return "", err
	}

	return WeekOf(monday.AddDays(NumWeekdays)), nil
}

// Prev returns the preceding calendar week.
func (w Week) Prev() (Week, error) {
	monday, err := w.Monday()
	if err != nil {
		return "", err
	}

	return WeekOf(monday.AddDays(-NumWeekdays)), nil
}

// String returns the raw identifier.
func (w Week) String() string {
	return string(w)
}
