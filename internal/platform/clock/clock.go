// Package clock provides an injectable wall-clock so components that need
// "now" can be tested deterministically instead of reading the system clock.
package clock

import "time"

// Clock yields the current time in the application time zone.
type Clock interface {
	// Now returns the current instant.
	Now() time.Time
	// Today returns the current calendar date at midnight UTC.
	Today() time.Time
}

type realClock struct {
	loc *time.Location
}

// New returns a Clock bound to the given IANA time zone name. An unknown or
// empty name falls back to UTC.
func New(tz string) Clock {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	return &realClock{loc: loc}
}

func (c *realClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *realClock) Today() time.Time {
	now := c.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// Fixed is a Clock pinned to a single instant, for tests.
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now() time.Time {
	return f.Instant
}

func (f Fixed) Today() time.Time {
	return time.Date(f.Instant.Year(), f.Instant.Month(), f.Instant.Day(), 0, 0, 0, 0, time.UTC)
}
