package testutil

import (
	"sync"
	"time"
)

// Clock hands out strictly increasing timestamps so ordering by creation
// time is deterministic in tests.
type Clock struct {
	mu   sync.Mutex
	next time.Time
	step time.Duration
}

func NewClock(start time.Time) *Clock {
	return &Clock{next: start, step: time.Second}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.next
	c.next = c.next.Add(c.step)
	return t
}
