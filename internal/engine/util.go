package engine

import (
	"fmt"
	"time"
)

// parseISOInZone parses an ISO-8601 timestamp. A timestamp with no offset is
// assumed to already be in loc, matching the contract's "naive timestamps
// are the user's local time" convention; an explicit offset is converted
// into loc.
func parseISOInZone(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	if t, err := time.ParseInLocation(time.RFC3339, s, loc); err == nil {
		return t.In(loc), nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t.In(loc), nil
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// isoWeekday returns the weekday of t with Monday=0 .. Sunday=6, matching
// the day-index convention the activeDays policy field uses.
func isoWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
