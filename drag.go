package trellis

import "math"

// DragPhase is the lifecycle state of a DragSession.
type DragPhase uint8

const (
	DragIdle     DragPhase = iota // no pointer captured
	DragDragging                  // overlay follows the pointer
)

func (p DragPhase) String() string {
	if p == DragDragging {
		return "dragging"
	}
	return "idle"
}

// DragHandlers are the host callbacks a session consults. A nil slot falls
// back to the default documented on the field.
type DragHandlers struct {
	// OnHoverEnter decides whether region accepts the dragged element. A
	// rejected region is neither hovered nor droppable for that update.
	// Default: accept every region.
	OnHoverEnter func(s *DragSession, r *Region) bool
	// OnHoverExit runs when a previously accepted region is left.
	// Default: nothing.
	OnHoverExit func(s *DragSession, r *Region)
	// OnDrop runs first when the session resolves onto an accepted region.
	// Default: nothing.
	OnDrop func(s *DragSession, r *Region, offset Vec2)
	// OnInsertElement moves the source into the drop target.
	// Default: reparent the source under the region's container.
	OnInsertElement func(s *DragSession, r *Region, offset Vec2)
	// OnPositionElement positions the source inside the drop target. offset is
	// relative to the container's content box.
	// Default: place the source at offset, shifted by the container padding.
	OnPositionElement func(s *DragSession, r *Region, offset Vec2)
	// OnDragEnd runs on every Stop after any drop callbacks and before the
	// overlay starts its return animation.
	// Default: nothing.
	OnDragEnd func(s *DragSession)
}

func (h DragHandlers) withDefaults() DragHandlers {
	if h.OnHoverEnter == nil {
		h.OnHoverEnter = func(*DragSession, *Region) bool { return true }
	}
	if h.OnHoverExit == nil {
		h.OnHoverExit = func(*DragSession, *Region) {}
	}
	if h.OnDrop == nil {
		h.OnDrop = func(*DragSession, *Region, Vec2) {}
	}
	if h.OnInsertElement == nil {
		h.OnInsertElement = defaultInsertElement
	}
	if h.OnPositionElement == nil {
		h.OnPositionElement = defaultPositionElement
	}
	if h.OnDragEnd == nil {
		h.OnDragEnd = func(*DragSession) {}
	}
	return h
}

func defaultInsertElement(s *DragSession, r *Region, _ Vec2) {
	src, c := s.source, r.Container
	if src.Parent == c {
		return
	}
	if isAncestor(src, c) {
		logger.Debug("drop into own subtree ignored", "source", src.Name, "container", c.Name)
		return
	}
	c.AddChild(src)
}

func defaultPositionElement(s *DragSession, r *Region, offset Vec2) {
	c := r.Container
	s.source.SetPosition(offset.X+c.Padding.Left, offset.Y+c.Padding.Top)
}

// DragConfig configures a draggable source.
type DragConfig struct {
	// Regions holds the drop targets. Nil creates an empty index.
	Regions *RegionIndex
	// Handle, when set, restricts pointer presses that start the drag to the
	// handle node's box. The handle is usually a descendant of the source.
	Handle *Node
	// Handlers are the host callbacks.
	Handlers DragHandlers
	// Options overrides the scene's drag options for this source.
	Options *DragOptions
}

// DragEvent is a drag-and-drop notification forwarded to the scene's EventSink.
type DragEvent struct {
	Kind EventKind
	// Source is the ID of the dragged node.
	Source uint32
	// Target is the ID of the region owner, or 0.
	Target uint32
	// Region is the region involved, or -1.
	Region RegionID
	// X and Y are the pointer position in document coordinates.
	X, Y float64
	// Offset is the drop offset for EventDrop.
	Offset Vec2
	// From and To are the indices for EventReorder.
	From, To int
}

// EventSink receives every DragEvent the scene produces. The ecs package
// provides a donburi-backed implementation.
type EventSink interface {
	EmitEvent(event DragEvent)
}

// DragSession coordinates one draggable source: overlay creation, region
// queries, autoscroll and drop resolution. At most one drag per source is in
// progress at a time.
type DragSession struct {
	scene    *Scene
	source   *Node
	handle   *Node
	regions  *RegionIndex
	handlers DragHandlers
	opts     *DragOptions
	scroller *AutoscrollScheduler

	phase   DragPhase
	pointer Vec2
	delta   Vec2
	initial Vec2
	margin  Vec2
	extent  Vec2
	axes    Axes
	overlay *Node

	// hovered is the accepted region the pointer is over. scrollRegion is the
	// region whose container autoscroll was last computed against.
	hovered      *Region
	scrollRegion *Region

	returning Animation
}

// MakeDraggable registers n as a drag source and returns its session. Calling
// it again for the same node returns the existing session unchanged.
func (s *Scene) MakeDraggable(n *Node, cfg DragConfig) *DragSession {
	if sess, ok := s.sessions[n.ID]; ok {
		return sess
	}
	opts := cfg.Options
	if opts == nil {
		opts = &s.config.Drag
	}
	regions := cfg.Regions
	if regions == nil {
		regions = NewRegionIndex()
	}
	sess := &DragSession{
		scene:    s,
		source:   n,
		handle:   cfg.Handle,
		regions:  regions,
		handlers: cfg.Handlers.withDefaults(),
		opts:     opts,
		scroller: NewAutoscrollScheduler(&s.timers, opts),
	}
	n.Draggable = true
	s.sessions[n.ID] = sess
	if cfg.Handle != nil {
		s.handles.TrackWith(cfg.Handle, nil, n, RegionFlags{IsHandle: true})
	}
	return sess
}

// Session returns the drag session registered for n, or nil.
func (s *Scene) Session(n *Node) *DragSession {
	return s.sessions[n.ID]
}

// Source returns the dragged node.
func (s *DragSession) Source() *Node { return s.source }

// Regions returns the drop target index.
func (s *DragSession) Regions() *RegionIndex { return s.regions }

// Phase returns the current lifecycle state.
func (s *DragSession) Phase() DragPhase { return s.phase }

// Hovered returns the accepted region under the pointer, or nil.
func (s *DragSession) Hovered() *Region { return s.hovered }

// Axes returns the current autoscroll axis vector.
func (s *DragSession) Axes() Axes { return s.axes }

// Overlay returns the floating copy of the source while dragging.
func (s *DragSession) Overlay() *Node { return s.overlay }

// Delta returns the pointer's offset from the source origin at Start.
func (s *DragSession) Delta() Vec2 { return s.delta }

// Margin returns half the source's margin on each axis.
func (s *DragSession) Margin() Vec2 { return s.margin }

// Pointer returns the last pointer position seen, in document coordinates.
func (s *DragSession) Pointer() Vec2 { return s.pointer }

// Autoscroll returns the session's autoscroll scheduler.
func (s *DragSession) Autoscroll() *AutoscrollScheduler { return s.scroller }

// Start begins a drag with the pointer at p (document coordinates). It returns
// false without side effects if a drag is already in progress.
func (s *DragSession) Start(p Vec2) bool {
	if s.phase == DragDragging {
		logger.Debug("drag start rejected", "source", s.source.Name)
		return false
	}
	if s.returning != nil {
		// Finish the previous drop's return so only one overlay exists.
		s.returning.Stop()
		s.returning = nil
	}
	src := s.source
	origin := src.Offset()
	outer := src.OuterSize(false)
	withMargin := src.OuterSize(true)

	s.delta = p.Sub(origin)
	s.initial = origin
	s.extent = outer
	s.margin = Vec2{(withMargin.X - outer.X) / 2, (withMargin.Y - outer.Y) / 2}
	s.overlay = s.scene.newOverlay(src)
	s.hovered, s.scrollRegion = nil, nil
	s.axes = Axes{}
	s.phase = DragDragging

	logger.Debug("drag start", "source", src.Name, "x", p.X, "y", p.Y)
	s.emit(EventDragStart, nil, p)
	s.UpdatePosition(p)
	return true
}

// UpdatePosition moves the overlay to follow the pointer at p, refreshes the
// hovered region and the autoscroll axes, and starts or stops autoscroll.
func (s *DragSession) UpdatePosition(p Vec2) {
	if s.phase != DragDragging {
		return
	}
	s.pointer = p
	s.overlay.SetPosition(p.X-s.delta.X, p.Y-s.delta.Y)
	s.emit(EventDragMove, nil, p)

	r := s.regions.FindBeneath(p, s.source)

	// Autoscroll follows the nearest scrollable region; a region whose
	// container cannot scroll defers to the topmost one that can.
	sr := r
	if sr != nil && !canScroll(sr.Container) {
		sr = s.regions.FindBeneathFunc(p, func(c *Region) bool { return canScroll(c.Container) }, s.source)
	}
	if sr != nil && s.scrollRegion != nil && sr != s.scrollRegion {
		// A direct jump between regions: no stop/start cycle, the scheduler
		// would miss the transition.
		s.scroller.Switch(sr.Container)
	}
	s.scrollRegion = sr
	s.axes = Axes{}
	if sr != nil {
		s.axes = s.axesFor(sr, p)
	}

	target := r
	if target != nil && (target.ScrollOnly || target.IsHandle) {
		target = nil
	}
	if target != s.hovered {
		if prev := s.hovered; prev != nil {
			s.hovered = nil
			s.handlers.OnHoverExit(s, prev)
			s.emit(EventHoverExit, prev, p)
		}
		if target != nil && s.handlers.OnHoverEnter(s, target) {
			s.hovered = target
			s.emit(EventHoverEnter, target, p)
		}
	}

	if sr != nil && !s.axes.IsZero() {
		s.scroller.Start(s, sr)
	} else {
		s.scroller.Stop(s)
	}
}

// Stop ends the drag with the pointer at p. If an accepted drop target lies
// beneath p the drop callbacks run with the clamped drop offset. The overlay
// is always animated back to the source's document position from before the
// drag and removed.
func (s *DragSession) Stop(p Vec2) {
	if s.phase != DragDragging {
		return
	}
	s.pointer = p
	s.scroller.Stop(s)

	r := s.regions.FindBeneath(p, s.source)
	accepted := false
	if r != nil && !r.ScrollOnly && !r.IsHandle {
		accepted = r == s.hovered || s.handlers.OnHoverEnter(s, r)
	}
	if accepted {
		off := s.DropOffset(r, p)
		logger.Debug("drop", "source", s.source.Name, "target", r.Owner.Name, "x", off.X, "y", off.Y)
		s.handlers.OnDrop(s, r, off)
		s.handlers.OnInsertElement(s, r, off)
		s.handlers.OnPositionElement(s, r, off)
		s.regions.RecalculateSubset(s.source)
		ev := s.event(EventDrop, r, p)
		ev.Offset = off
		s.scene.emit(ev)
	}
	if prev := s.hovered; prev != nil {
		s.hovered = nil
		s.handlers.OnHoverExit(s, prev)
		s.emit(EventHoverExit, prev, p)
	}
	s.handlers.OnDragEnd(s)

	s.scrollRegion = nil
	s.axes = Axes{}
	s.phase = DragIdle
	overlay := s.overlay
	s.overlay = nil
	anim := s.scene.animator.AnimateReturn(overlay, s.initial, func() {
		overlay.RemoveFromParent()
		s.returning = nil
	})
	if !anim.Done() {
		s.returning = anim
	}
	s.emit(EventDragEnd, r, p)
}

// DropOffset maps the overlay position for pointer p into r's container
// content box and clamps it to [0, containerExtent - elementExtent - margin]
// on each axis. The result is never negative.
func (s *DragSession) DropOffset(r *Region, p Vec2) Vec2 {
	c := r.Container
	local := p.Sub(s.delta)
	if !c.viewport {
		local = local.Sub(c.Offset()).Add(c.Scroll())
	}
	local.X -= c.Padding.Left
	local.Y -= c.Padding.Top

	ext := contentExtent(c)
	hi := ext.Sub(s.extent).Sub(s.margin)
	return Vec2{clampDropOffset(local.X, hi.X), clampDropOffset(local.Y, hi.Y)}
}

func clampDropOffset(v, hi float64) float64 {
	return math.Max(math.Min(v, hi), 0)
}

// contentExtent is the size of c's content box, including scrolled-away
// content.
func contentExtent(c *Node) Vec2 {
	return Vec2{
		math.Max(c.Width, c.ContentWidth) - c.Padding.Horizontal(),
		math.Max(c.Height, c.ContentHeight) - c.Padding.Vertical(),
	}
}

// axesFor computes the autoscroll vector for pointer p over r: -1 within the
// edge threshold of the near edge, +1 within it of the far edge.
func (s *DragSession) axesFor(r *Region, p Vec2) Axes {
	q := s.regions.CorrectedPoint(r, p)
	t := s.opts.EdgeThreshold
	return Axes{
		X: edgeAxis(q.X, r.Bounds.X, t),
		Y: edgeAxis(q.Y, r.Bounds.Y, t),
	}
}

func edgeAxis(v float64, b Range, threshold float64) int {
	switch {
	case v < b.Min+threshold:
		return -1
	case v > b.Max-threshold:
		return 1
	default:
		return 0
	}
}

// canScroll reports whether c has anything to scroll on either axis.
func canScroll(c *Node) bool {
	m := c.MaxScroll()
	return m.X > 0 || m.Y > 0
}

// scrolled re-runs the position update after autoscroll moved c by applied.
// Scrolling the viewport moves the document under a stationary pointer, so
// the pointer's document position shifts by the same amount.
func (s *DragSession) scrolled(c *Node, applied Vec2) {
	p := s.pointer
	if c.viewport {
		p = p.Add(applied)
	}
	s.UpdatePosition(p)
}

func (s *DragSession) event(kind EventKind, r *Region, p Vec2) DragEvent {
	ev := DragEvent{Kind: kind, Source: s.source.ID, Region: -1, X: p.X, Y: p.Y}
	if r != nil {
		ev.Region = r.ID
		ev.Target = r.Owner.ID
	}
	return ev
}

func (s *DragSession) emit(kind EventKind, r *Region, p Vec2) {
	s.scene.emit(s.event(kind, r, p))
}
