package model

import (
	"fmt"
	"time"
)

// DateInterval is a half-open date range [Start, End).  The End date is
// exclusive: the night of End is not occupied, so a stay checking out on a
// given morning and a stay checking in the same day never overlap.  Both
// bounds are expected to be canonical midnight-UTC values produced by
// NormalizeDate.
type DateInterval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether the two half-open intervals share at least one
// night.  The test is symmetric and excludes touching boundaries.
func (i DateInterval) Overlaps(other DateInterval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Valid reports whether the interval has strictly positive length.
func (i DateInterval) Valid() bool {
	return i.Start.Before(i.End)
}

// Nights returns the number of occupied nights in the interval.
func (i DateInterval) Nights() int {
	return int(i.End.Sub(i.Start) / (24 * time.Hour))
}

// NormalizeDate truncates a timestamp to midnight UTC.  Every date entering
// the system passes through here exactly once, at the boundary; all interval
// comparisons afterwards run on canonical values so time-of-day or timezone
// drift cannot produce spurious overlaps.
func NormalizeDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a calendar date from a request payload.  Plain dates
// ("2006-01-02") and full RFC 3339 timestamps are both accepted; the result
// is always normalized to midnight UTC.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return NormalizeDate(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return NormalizeDate(t), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
