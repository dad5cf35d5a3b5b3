package clock

import "time"

// Clock is the single source of time for the application. Components that
// need "now" or "today" take a Clock instead of calling time.Now, so tests
// can freeze or advance time.
type Clock interface {
	Now() time.Time
	Today(zone *time.Location) time.Time
}

// SystemClock reads the operating system clock.
type SystemClock struct{}

func NewSystemClock() SystemClock {
	return SystemClock{}
}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Today returns midnight of the current date in the given zone.
// A nil zone means UTC.
func (c SystemClock) Today(zone *time.Location) time.Time {
	return Midnight(c.Now(), zone)
}

// Midnight truncates t to midnight of its date in the given zone.
func Midnight(t time.Time, zone *time.Location) time.Time {
	if zone == nil {
		zone = time.UTC
	}
	y, m, d := t.In(zone).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, zone)
}
