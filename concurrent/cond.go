package concurrent

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// TimeoutCond is a condition variable whose waits can be bounded by a timeout.
// Unlike sync.Cond it only supports Broadcast, every waiter is released.
type TimeoutCond struct {
	L      sync.Locker
	clock  clockwork.Clock
	signal chan struct{}
}

// NewTimeoutCond returns a cond bound to l. A nil clock means the real clock.
func NewTimeoutCond(l sync.Locker, clock clockwork.Clock) *TimeoutCond {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &TimeoutCond{L: l, clock: clock, signal: make(chan struct{})}
}

// Wait must be called with L held. It unlocks L, blocks until Broadcast and
// locks L again before returning.
func (c *TimeoutCond) Wait() {
	// read signal while L is still held, Broadcast swaps it under L
	ch := c.signal
	c.L.Unlock()
	defer c.L.Lock()
	<-ch
}

// WaitWithTimeout is Wait bounded by timeout. It returns the time left and
// whether the wait ended because of a Broadcast.
func (c *TimeoutCond) WaitWithTimeout(timeout time.Duration) (time.Duration, bool) {
	ch := c.signal
	c.L.Unlock()
	defer c.L.Lock()
	begin := c.clock.Now()
	timer := c.clock.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-ch:
		remain := timeout - c.clock.Since(begin)
		if remain < 0 {
			remain = 0
		}
		return remain, true
	case <-timer.Chan():
		return 0, false
	}
}

// Broadcast wakes all goroutines waiting on c. It must be called with L held.
func (c *TimeoutCond) Broadcast() {
	close(c.signal)
	c.signal = make(chan struct{})
}
