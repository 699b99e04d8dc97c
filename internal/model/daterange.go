package model

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used by requests, file names and flags.
const DateLayout = "2006-01-02"

// DefaultUTCOffsetHours is ERCOT's standard-time offset (CST).
const DefaultUTCOffsetHours = -6

// ReferenceZone returns the fixed-offset zone hour axes are built in.
// A fixed offset means every calendar day has exactly 24 hours.
func ReferenceZone(offsetHours int) *time.Location {
	name := fmt.Sprintf("UTC%+03d:00", offsetHours)
	if offsetHours == 0 {
		name = "UTC"
	}
	return time.FixedZone(name, offsetHours*3600)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// DateRange is an inclusive range of calendar dates. Only the year, month
// and day of its bounds are significant.
// The zero DateRange is empty.
type DateRange struct {
	start time.Time
	end   time.Time
	valid bool
}

// NewDateRange takes the calendar date of each bound (in that bound's own
// location) and fails with ErrInvalidRange when start is after end.
func NewDateRange(start, end time.Time) (DateRange, error) {
	s := civilDate(start)
	e := civilDate(end)
	if s.After(e) {
		return DateRange{}, fmt.Errorf("%w: start %s is after end %s",
			ErrInvalidRange, s.Format(DateLayout), e.Format(DateLayout))
	}
	return DateRange{start: s, end: e, valid: true}, nil
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Start is the first date, as midnight UTC.
func (r DateRange) Start() time.Time { return r.start }

// End is the last date, as midnight UTC.
func (r DateRange) End() time.Time { return r.end }

// Days is the number of calendar days in the range, counting both ends.
func (r DateRange) Days() int {
	if !r.valid {
		return 0
	}
	return int(r.end.Sub(r.start).Hours()/24) + 1
}

// Hours enumerates every hour from 00:00 on the start date to 23:00 on the
// end date, in loc. The axis is built by elapsed hours from local midnight of
// the start date, so it is strictly increasing even in a zone with DST.
func (r DateRange) Hours(loc *time.Location) []time.Time {
	n := 24 * r.Days()
	if n == 0 {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := r.start.Date()
	first := time.Date(y, m, d, 0, 0, 0, 0, loc)
	out := make([]time.Time, n)
	for i := range out {
		out[i] = first.Add(time.Duration(i) * time.Hour)
	}
	return out
}

func (r DateRange) String() string {
	return r.start.Format(DateLayout) + "_to_" + r.end.Format(DateLayout)
}
