package trellis

import "time"

// Timer is a pending callback on a Timers clock.
type Timer struct {
	when    time.Duration
	fn      func()
	clock   *Timers
	stopped bool
}

// Stop cancels the timer. Returns false if it already fired or was stopped.
func (t *Timer) Stop() bool {
	if t == nil || t.stopped {
		return false
	}
	t.stopped = true
	return t.clock.remove(t)
}

// Timers is a virtual clock advanced by the scene's frame loop. Callbacks run
// synchronously inside Advance on the caller's goroutine, one at a time and in
// deadline order, so nothing they touch needs locking.
type Timers struct {
	now     time.Duration
	pending []*Timer // sorted by deadline, then scheduling order
}

// Now returns the clock's current time since creation.
func (c *Timers) Now() time.Duration {
	return c.now
}

// Len returns the number of pending timers.
func (c *Timers) Len() int {
	return len(c.pending)
}

// AfterFunc schedules fn to run once d has elapsed on this clock.
func (c *Timers) AfterFunc(d time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	t := &Timer{when: c.now + d, fn: fn, clock: c}
	i := len(c.pending)
	for i > 0 && c.pending[i-1].when > t.when {
		i--
	}
	c.pending = append(c.pending, nil)
	copy(c.pending[i+1:], c.pending[i:])
	c.pending[i] = t
	return t
}

// Advance moves the clock forward by dt, firing every timer whose deadline
// falls within the window. Timers scheduled by a callback fire in the same
// call if their deadline is also within the window.
func (c *Timers) Advance(dt time.Duration) {
	end := c.now + dt
	for len(c.pending) > 0 && c.pending[0].when <= end {
		t := c.pending[0]
		copy(c.pending, c.pending[1:])
		c.pending[len(c.pending)-1] = nil
		c.pending = c.pending[:len(c.pending)-1]
		c.now = t.when
		t.stopped = true
		t.fn()
	}
	c.now = end
}

func (c *Timers) remove(t *Timer) bool {
	for i, p := range c.pending {
		if p == t {
			copy(c.pending[i:], c.pending[i+1:])
			c.pending[len(c.pending)-1] = nil
			c.pending = c.pending[:len(c.pending)-1]
			return true
		}
	}
	return false
}
