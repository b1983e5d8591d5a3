package domain

import (
	"fmt"
	"time"
)

// dayLayout is the wire and storage format for calendar days.
const dayLayout = "2006-01-02"

// Day is a calendar date with day granularity in the user's local time.
// It is the unit meal entries and weight observations are keyed by.
type Day string

// Today returns the current calendar day in local time.
func Today() Day {
	return DayOf(time.Now())
}

// DayOf truncates a timestamp to its local calendar day.
func DayOf(t time.Time) Day {
	return Day(t.Format(dayLayout))
}

// ParseDay parses a YYYY-MM-DD string into a Day.
// Returns ErrInvalidDay if the string is not a valid calendar date.
func ParseDay(s string) (Day, error) {
	if _, err := time.Parse(dayLayout, s); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDay, s)
	}
	return Day(s), nil
}

// Validate checks that the day holds a well-formed calendar date.
func (d Day) Validate() error {
	_, err := ParseDay(string(d))
	return err
}

// Time returns the day as a time.Time at local midnight.
func (d Day) Time() time.Time {
	t, err := time.ParseInLocation(dayLayout, string(d), time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Before reports whether d falls before other in calendar order.
// The lexicographic order of the layout matches chronological order.
func (d Day) Before(other Day) bool {
	return d < other
}

func (d Day) String() string {
	return string(d)
}
