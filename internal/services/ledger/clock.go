package ledger

import (
	"sync"
	"time"
)

// Timestamps are stored with microsecond precision.
const tick = time.Microsecond

// monotonicClock hands out strictly increasing UTC timestamps, so two appends
// in one process never share a timestamp even if the wall clock stalls or
// steps backwards.
type monotonicClock struct {
	mu   sync.Mutex
	now  func() time.Time
	last time.Time
}

func newMonotonicClock(now func() time.Time) *monotonicClock {
	return &monotonicClock{now: now}
}

func (c *monotonicClock) Next() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.now().UTC().Truncate(tick)
	if !t.After(c.last) {
		t = c.last.Add(tick)
	}
	c.last = t
	return t
}
