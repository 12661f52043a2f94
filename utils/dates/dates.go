package dates

import (
	"strings"
	"time"
)

// Layout is the wire format for calendar dates.
const Layout = "2006-01-02"

var location = time.UTC

// SetLocation sets the zone whose wall clock decides what "today" is.
// A nil loc resets it to UTC.
func SetLocation(loc *time.Location) {
	if loc == nil {
		loc = time.UTC
	}
	location = loc
}

// Location returns the zone set by SetLocation.
func Location() *time.Location {
	return location
}

// Today returns the calendar date of now in the configured zone, as UTC
// midnight like every other stored date.
func Today(now time.Time) time.Time {
	return Truncate(now.In(location))
}

// Parse converts a YYYY-MM-DD string into a UTC midnight time. Empty or
// malformed input yields nil rather than an error.
func Parse(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	t, err := time.ParseInLocation(Layout, value, time.UTC)
	if err != nil {
		return nil
	}
	return &t
}

// Format renders d as YYYY-MM-DD, or "" for nil.
func Format(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(Layout)
}

// Truncate drops the time of day, keeping the calendar date of t.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MonthStart returns the first day of the month containing t.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole calendar days from start to end; negative when end
// precedes start.
func DaysBetween(start, end time.Time) int {
	return int(Truncate(end).Sub(Truncate(start)).Hours() / 24)
}
