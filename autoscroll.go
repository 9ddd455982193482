package trellis

// AutoscrollScheduler scrolls a container while a drag hovers near its edge.
// It has two states, stopped and running. Cancellation is soft: Stop clears
// the active container and the next scheduled tick observes that and performs
// the transition to stopped. After Stop, at most one further tick fires, and
// that tick never scrolls.
type AutoscrollScheduler struct {
	timers *Timers
	opts   *DragOptions

	running    bool
	active     *Node
	session    *DragSession
	tickedOnce bool
}

// NewAutoscrollScheduler creates a stopped scheduler on the given clock.
func NewAutoscrollScheduler(timers *Timers, opts *DragOptions) *AutoscrollScheduler {
	return &AutoscrollScheduler{timers: timers, opts: opts}
}

// Running reports whether a tick is scheduled.
func (a *AutoscrollScheduler) Running() bool {
	return a.running
}

// Active returns the container being scrolled, or nil once a stop has been
// requested.
func (a *AutoscrollScheduler) Active() *Node {
	return a.active
}

// Start arms autoscroll for session over region. While running it does
// nothing, even with a stop pending; that tick stops the scheduler and the
// next position update starts it afresh. With a zero axis vector it only
// resets the first-tick flag. Otherwise the scheduler starts and ticks once
// synchronously without scrolling.
func (a *AutoscrollScheduler) Start(session *DragSession, region *Region) {
	if a.running {
		return
	}
	if session.Axes().IsZero() {
		a.tickedOnce = false
		return
	}
	a.running = true
	a.active = region.Container
	a.session = session
	a.tickedOnce = false
	logger.Debug("autoscroll started", "container", region.Container.Name)
	a.tick()
}

// Stop requests a soft stop. The scheduler stays running until its next tick.
func (a *AutoscrollScheduler) Stop(session *DragSession) {
	if !a.running {
		return
	}
	a.active = nil
}

// Switch replaces the active container without a stop/start cycle. Used when
// the pointer jumps straight from one region to another.
func (a *AutoscrollScheduler) Switch(container *Node) {
	if !a.running || a.active == nil {
		return
	}
	a.active = container
}

// tick runs one scheduler step.
func (a *AutoscrollScheduler) tick() {
	if a.active == nil {
		a.running = false
		a.tickedOnce = false
		a.session = nil
		logger.Debug("autoscroll stopped")
		return
	}
	first := !a.tickedOnce
	if !first {
		axes := a.session.Axes()
		c := a.active
		applied := c.ScrollBy(float64(axes.X)*a.opts.ScrollDelta, float64(axes.Y)*a.opts.ScrollDelta)
		a.session.scrolled(c, applied)
	}
	a.tickedOnce = true
	delay := a.opts.ScrollInterval
	if first {
		delay = a.opts.ScrollDelay
	}
	a.timers.AfterFunc(delay, a.tick)
}
