package domain

import "time"

// TimeRange is a half-open interval [Start, End) in UTC.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange builds a range and rejects End <= Start.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !end.After(start) {
		return TimeRange{}, NewValidationError(MsgInvalidTimeRange)
	}
	return TimeRange{Start: start.UTC(), End: end.UTC()}, nil
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Empty or inverted ranges never overlap anything.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	if !aEnd.After(aStart) || !bEnd.After(bStart) {
		return false
	}
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

func (r TimeRange) Overlaps(other TimeRange) bool {
	return Overlaps(r.Start, r.End, other.Start, other.End)
}

func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Contains reports whether t lies inside the range (end exclusive).
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// DateOf truncates t to its UTC calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayRange returns the UTC day containing date as a TimeRange.
func DayRange(date time.Time) TimeRange {
	start := DateOf(date)
	return TimeRange{Start: start, End: start.AddDate(0, 0, 1)}
}
