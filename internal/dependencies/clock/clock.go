package clock

import "time"

// Clock provides time operations that can be mocked for testing
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// DateIn formats the clock's current calendar date in loc as YYYY-MM-DD.
// A nil location means UTC.
func DateIn(c Clock, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return c.Now().In(loc).Format("2006-01-02")
}
