package testutil

import (
	"time"

	"github.com/strataapp/strata/internal/clock"
)

// FrozenClock reports a fixed instant until advanced. Tests drive day
// boundaries by calling Advance instead of sleeping.
type FrozenClock struct {
	Instant time.Time
}

func NewFrozenClock(t time.Time) *FrozenClock {
	return &FrozenClock{Instant: t}
}

func (c *FrozenClock) Now() time.Time {
	return c.Instant
}

func (c *FrozenClock) Today(zone *time.Location) time.Time {
	return clock.Midnight(c.Instant, zone)
}

func (c *FrozenClock) Advance(d time.Duration) {
	c.Instant = c.Instant.Add(d)
}
