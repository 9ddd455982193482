package trellis

import (
	"testing"
	"time"
)

// newViewportDrag builds a 400x300 viewport over a 2000px tall document with a
// draggable box and a region tracking the viewport itself.
func newViewportDrag(t *testing.T) (*Scene, *DragSession) {
	t.Helper()
	s := NewScene(400, 300)
	s.Root().ContentHeight = 2000
	box := NewNode("box", 40, 40)
	box.SetPosition(50, 50)
	s.Root().AddChild(box)

	ri := NewRegionIndex()
	ri.Track(s.Root(), nil, nil)
	return s, s.MakeDraggable(box, DragConfig{Regions: ri})
}

func TestAutoscrollTiming(t *testing.T) {
	s, sess := newViewportDrag(t)
	opts := s.Config().Drag
	root := s.Root()
	clock := s.Timers()

	// Pointer within the edge threshold of the viewport's bottom edge.
	sess.Start(Vec2{70, 290})
	if sess.Axes() != (Axes{0, 1}) {
		t.Fatalf("Axes = %v, want (0, 1)", sess.Axes())
	}
	sched := sess.Autoscroll()
	if !sched.Running() {
		t.Fatal("scheduler should be running")
	}
	if root.ScrollY != 0 {
		t.Fatal("the synchronous first tick must not scroll")
	}

	clock.Advance(opts.ScrollDelay - time.Millisecond)
	if root.ScrollY != 0 {
		t.Fatalf("scrolled before ScrollDelay: %v", root.ScrollY)
	}
	clock.Advance(time.Millisecond)
	if root.ScrollY != opts.ScrollDelta {
		t.Fatalf("ScrollY = %v after ScrollDelay, want %v", root.ScrollY, opts.ScrollDelta)
	}
	// Scrolling the viewport shifts the pointer's document position.
	if got := sess.Pointer(); got != (Vec2{70, 290 + opts.ScrollDelta}) {
		t.Errorf("Pointer = %v, want shifted by the scroll", got)
	}

	for i := 2; i <= 4; i++ {
		clock.Advance(opts.ScrollInterval)
		if want := float64(i) * opts.ScrollDelta; root.ScrollY != want {
			t.Fatalf("tick %d: ScrollY = %v, want %v", i, root.ScrollY, want)
		}
	}

	// Moving away from the edge requests a soft stop.
	scrolled := root.ScrollY
	sess.UpdatePosition(Vec2{70, 150 + scrolled})
	if sched.Active() != nil {
		t.Fatal("Stop should clear the active container")
	}
	if !sched.Running() {
		t.Fatal("scheduler stays running until its next tick")
	}

	clock.Advance(opts.ScrollInterval)
	if sched.Running() {
		t.Error("the tick after Stop should stop the scheduler")
	}
	if root.ScrollY != scrolled {
		t.Errorf("the tick after Stop scrolled: %v != %v", root.ScrollY, scrolled)
	}
	clock.Advance(time.Second)
	if root.ScrollY != scrolled || clock.Len() != 0 {
		t.Error("no ticks expected after the scheduler stopped")
	}
}

func TestAutoscrollZeroAxesDoesNotStart(t *testing.T) {
	_, sess := newViewportDrag(t)
	sess.Start(Vec2{200, 150})
	if sess.Axes() != (Axes{}) {
		t.Fatalf("Axes = %v, want zero", sess.Axes())
	}
	if sess.Autoscroll().Running() {
		t.Error("scheduler should not run with zero axes")
	}
}

func TestAutoscrollStartIgnoredDuringSoftStop(t *testing.T) {
	s, sess := newViewportDrag(t)
	opts := s.Config().Drag
	clock := s.Timers()
	root := s.Root()
	sess.Start(Vec2{70, 290})
	clock.Advance(opts.ScrollDelay)
	y := root.ScrollY

	// Leave the edge and come straight back before the next tick.
	sess.UpdatePosition(Vec2{70, 150 + y})
	sess.UpdatePosition(Vec2{70, 290 + y})
	sched := sess.Autoscroll()
	if sched.Active() != nil {
		t.Fatal("Start must not re-arm a scheduler with a pending stop")
	}

	clock.Advance(opts.ScrollInterval)
	if root.ScrollY != y {
		t.Fatalf("the tick after Stop scrolled: %v -> %v", y, root.ScrollY)
	}
	if sched.Running() {
		t.Fatal("the tick after Stop should stop the scheduler")
	}

	// The next update restarts with a full ScrollDelay.
	sess.UpdatePosition(Vec2{70, 290 + y})
	if !sched.Running() || sched.Active() != root {
		t.Fatal("scheduler should restart on the next update")
	}
	clock.Advance(opts.ScrollDelay - time.Millisecond)
	if root.ScrollY != y {
		t.Fatalf("restart scrolled before ScrollDelay: %v -> %v", y, root.ScrollY)
	}
	clock.Advance(time.Millisecond)
	if root.ScrollY != y+opts.ScrollDelta {
		t.Errorf("ScrollY = %v, want %v after ScrollDelay", root.ScrollY, y+opts.ScrollDelta)
	}
}

func TestAutoscrollNewDragAfterEdgeDrop(t *testing.T) {
	s, sess := newViewportDrag(t)
	opts := s.Config().Drag
	clock := s.Timers()
	root := s.Root()
	sess.Start(Vec2{70, 290})
	clock.Advance(opts.ScrollDelay)
	y := root.ScrollY

	sess.Stop(Vec2{70, 290 + y})
	clock.Advance(opts.ScrollInterval / 2)
	sess.Start(Vec2{70, 290 + y})
	if root.ScrollY != y {
		t.Fatalf("new drag scrolled immediately: %v -> %v", y, root.ScrollY)
	}
	clock.Advance(opts.ScrollInterval)
	if root.ScrollY != y {
		t.Fatalf("new drag scrolled after %v (< ScrollDelay %v): %v -> %v",
			opts.ScrollInterval, opts.ScrollDelay, y, root.ScrollY)
	}
}

func TestAutoscrollSwitchOnDirectJump(t *testing.T) {
	s := NewScene(400, 300)
	a := NewNode("a", 100, 100)
	a.ContentHeight = 500
	b := NewNode("b", 100, 100)
	b.ContentHeight = 500
	b.SetPosition(200, 0)
	box := NewNode("box", 20, 20)
	box.SetPosition(0, 200)
	s.Root().AddChild(a)
	s.Root().AddChild(b)
	s.Root().AddChild(box)

	ri := NewRegionIndex()
	ri.Track(a, nil, nil)
	ri.Track(b, nil, nil)
	sess := s.MakeDraggable(box, DragConfig{Regions: ri})

	sess.Start(Vec2{10, 210})
	sess.UpdatePosition(Vec2{50, 90})
	sched := sess.Autoscroll()
	if sched.Active() != a {
		t.Fatalf("Active = %v, want a", sched.Active())
	}
	sess.UpdatePosition(Vec2{250, 90})
	if sched.Active() != b {
		t.Fatalf("Active = %v, want b after a direct jump", sched.Active())
	}

	s.Timers().Advance(s.Config().Drag.ScrollDelay)
	if a.ScrollY != 0 || b.ScrollY != s.Config().Drag.ScrollDelta {
		t.Errorf("scroll a=%v b=%v, want only b scrolled", a.ScrollY, b.ScrollY)
	}
}

func TestAutoscrollNonScrollableDefersToScrollableRegion(t *testing.T) {
	s := NewScene(400, 300)
	list := NewContainer("list", LayoutColumn)
	list.SetSize(100, 100)
	for i := 0; i < 10; i++ {
		list.AddChild(NewNode("item", 100, 40))
	}
	list.Relayout()
	box := NewNode("box", 20, 20)
	box.SetPosition(200, 200)
	s.Root().AddChild(list)
	s.Root().AddChild(box)

	ri := NewRegionIndex()
	ri.TrackWith(list, nil, nil, RegionFlags{ScrollOnly: true})
	for _, c := range list.Children() {
		ri.Track(c, nil, nil)
	}
	sess := s.MakeDraggable(box, DragConfig{Regions: ri})
	sess.Start(Vec2{210, 210})
	sess.UpdatePosition(Vec2{50, 95})

	if sess.Hovered() == nil || sess.Hovered().Owner != list.ChildAt(2) {
		t.Errorf("hovered should be the third item")
	}
	if sess.Axes() != (Axes{0, 1}) {
		t.Errorf("Axes = %v, want (0, 1) from the list's edge", sess.Axes())
	}
	if sess.Autoscroll().Active() != list {
		t.Errorf("Active = %v, want list", sess.Autoscroll().Active())
	}
}
