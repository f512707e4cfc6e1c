package util

import (
	"math"
	"strings"
	"time"
)

// dateLayouts are tried in order. Year-only strings are deliberately absent:
// a bare year is not a date.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"2006-01",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"January 2006",
	"Jan 2006",
}

// ParseDate parses the supported date formats and returns the date in UTC
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// DaysBetween returns the absolute distance between two dates in days
func DaysBetween(a, b time.Time) float64 {
	return math.Abs(a.Sub(b).Hours() / 24)
}

// DaysOutsideRange returns 0 when t falls inside [start,end], else the
// distance in days to the nearest bound. A zero bound is open.
func DaysOutsideRange(t, start, end time.Time) float64 {
	if !start.IsZero() && t.Before(start) {
		return DaysBetween(t, start)
	}
	if !end.IsZero() && t.After(end) {
		return DaysBetween(t, end)
	}
	return 0
}
