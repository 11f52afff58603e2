package tracker

import (
	"time"
	_ "time/tzdata" // zones resolve without a system zoneinfo
)

// DateLayout is the layout of calendar-date strings.
const DateLayout = "2006-01-02"

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock in UTC at millisecond precision, the
// resolution timestamps are persisted with.
var SystemClock = ClockFunc(func() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
})

// Calendar maps instants to calendar dates in a fixed zone.
type Calendar struct {
	loc *time.Location
}

// NewCalendar returns a calendar for loc; nil means UTC.
func NewCalendar(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{loc: loc}
}

// Location returns the calendar's zone.
func (c Calendar) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

// Date returns the YYYY-MM-DD date of t in the calendar's zone.
func (c Calendar) Date(t time.Time) string {
	return t.In(c.Location()).Format(DateLayout)
}
