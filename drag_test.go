package trellis

import "testing"

// recordingSink collects every event the scene emits.
type recordingSink struct {
	events []DragEvent
}

func (r *recordingSink) EmitEvent(ev DragEvent) { r.events = append(r.events, ev) }

func (r *recordingSink) kinds() []EventKind {
	out := make([]EventKind, 0, len(r.events))
	for _, ev := range r.events {
		if ev.Kind != EventDragMove {
			out = append(out, ev.Kind)
		}
	}
	return out
}

// newDropScene builds an 800x600 scene with a 200x150 drop target at
// (100, 100) and a 50x40 source with a margin of 10 at the origin. The return
// animation is instantaneous.
func newDropScene(t *testing.T, handlers DragHandlers) (*Scene, *Node, *Node, *DragSession) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Drag.ReturnDuration = 0
	s := NewSceneWithConfig(cfg, 800, 600)

	target := NewNode("target", 200, 150)
	target.SetPosition(100, 100)
	box := NewNode("box", 50, 40)
	box.Margin = Insets{Top: 10, Right: 10, Bottom: 10, Left: 10}
	s.Root().AddChild(target)
	s.Root().AddChild(box)

	ri := NewRegionIndex()
	ri.Track(target, nil, nil)
	sess := s.MakeDraggable(box, DragConfig{Regions: ri, Handlers: handlers})
	return s, target, box, sess
}

func TestDragStartRejectedWhileDragging(t *testing.T) {
	_, _, _, sess := newDropScene(t, DragHandlers{})
	if !sess.Start(Vec2{5, 5}) {
		t.Fatal("first Start should succeed")
	}
	overlay := sess.Overlay()
	if sess.Start(Vec2{6, 6}) {
		t.Error("Start while dragging should be rejected")
	}
	if sess.Overlay() != overlay || sess.Delta() != (Vec2{5, 5}) {
		t.Error("rejected Start must not touch session state")
	}
}

func TestDragStartState(t *testing.T) {
	s, _, box, sess := newDropScene(t, DragHandlers{})
	sess.Start(Vec2{5, 5})

	if sess.Phase() != DragDragging {
		t.Errorf("Phase = %v, want dragging", sess.Phase())
	}
	if sess.Margin() != (Vec2{10, 10}) {
		t.Errorf("Margin = %v, want (10, 10)", sess.Margin())
	}
	o := sess.Overlay()
	if o == nil || o.Parent != s.Overlays() {
		t.Fatal("overlay should live on the overlay layer")
	}
	if o.Width != box.Width || o.Height != box.Height {
		t.Error("overlay should match the source size")
	}

	sess.UpdatePosition(Vec2{405, 305})
	if o.X != 400 || o.Y != 300 {
		t.Errorf("overlay at (%v, %v), want (400, 300)", o.X, o.Y)
	}
}

func TestDropOffsetClamping(t *testing.T) {
	_, target, _, sess := newDropScene(t, DragHandlers{})
	sess.Start(Vec2{5, 5})
	r := sess.Regions().Lookup(target)

	// hi = container extent - element extent - margin = (140, 100).
	tests := []struct {
		p    Vec2
		want Vec2
	}{
		{Vec2{105, 105}, Vec2{0, 0}},
		{Vec2{100, 100}, Vec2{0, 0}},
		{Vec2{125, 135}, Vec2{20, 30}},
		{Vec2{245, 205}, Vec2{140, 100}},
		{Vec2{300, 250}, Vec2{140, 100}},
	}
	for _, tt := range tests {
		if got := sess.DropOffset(r, tt.p); got != tt.want {
			t.Errorf("DropOffset(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}

	for x := 100.0; x <= 300; x += 10 {
		for y := 100.0; y <= 250; y += 10 {
			got := sess.DropOffset(r, Vec2{x, y})
			if got.X < 0 || got.X > 140 || got.Y < 0 || got.Y > 100 {
				t.Fatalf("DropOffset(%v, %v) = %v out of [0, (140, 100)]", x, y, got)
			}
		}
	}
}

func TestDropOffsetOversizedElement(t *testing.T) {
	_, target, box, sess := newDropScene(t, DragHandlers{})
	box.SetSize(250, 200)
	sess.Start(Vec2{5, 5})
	r := sess.Regions().Lookup(target)
	for x := 100.0; x <= 300; x += 25 {
		for y := 100.0; y <= 250; y += 25 {
			if got := sess.DropOffset(r, Vec2{x, y}); got != (Vec2{}) {
				t.Fatalf("DropOffset(%v, %v) = %v, want zero", x, y, got)
			}
		}
	}
}

func TestDropOffsetScrolledContainer(t *testing.T) {
	_, target, _, sess := newDropScene(t, DragHandlers{})
	target.ContentHeight = 600
	target.Padding = Insets{Top: 4, Left: 6}
	target.SetScroll(0, 200)
	sess.Start(Vec2{5, 5})
	sess.Regions().RecalculateAll()
	r := sess.Regions().Lookup(target)

	// Overlay at (150, 120): local (50, 20), + scroll 200, - padding (6, 4).
	if got := sess.DropOffset(r, Vec2{155, 125}); got != (Vec2{44, 216}) {
		t.Errorf("DropOffset = %v, want (44, 216)", got)
	}
}

func TestDropDefaultInsertAndPosition(t *testing.T) {
	s, target, box, sess := newDropScene(t, DragHandlers{})
	sess.Start(Vec2{5, 5})
	sess.UpdatePosition(Vec2{125, 135})
	sess.Stop(Vec2{125, 135})

	if box.Parent != target {
		t.Fatal("default insert should reparent the source into the target")
	}
	if box.X != 20 || box.Y != 30 {
		t.Errorf("box at (%v, %v), want (20, 30)", box.X, box.Y)
	}
	if sess.Phase() != DragIdle {
		t.Error("session should be idle after Stop")
	}
	if s.Overlays().NumChildren() != 0 {
		t.Error("overlay should be removed once the return animation completes")
	}
}

func TestDropReturnsOverlayToOriginalPosition(t *testing.T) {
	_, _, box, sess := newDropScene(t, DragHandlers{})
	sess.Start(Vec2{5, 5})
	sess.UpdatePosition(Vec2{125, 135})
	overlay := sess.Overlay()
	sess.Stop(Vec2{125, 135})

	if got := box.Offset(); got != (Vec2{120, 130}) {
		t.Fatalf("box dropped at %v, want (120, 130)", got)
	}
	if overlay.X != 0 || overlay.Y != 0 {
		t.Errorf("overlay returned to (%v, %v), want the pre-drag position (0, 0)", overlay.X, overlay.Y)
	}
}

func TestDropCallbackOrder(t *testing.T) {
	var calls []string
	h := DragHandlers{
		OnDrop:            func(*DragSession, *Region, Vec2) { calls = append(calls, "drop") },
		OnInsertElement:   func(*DragSession, *Region, Vec2) { calls = append(calls, "insert") },
		OnPositionElement: func(*DragSession, *Region, Vec2) { calls = append(calls, "position") },
		OnHoverExit:       func(*DragSession, *Region) { calls = append(calls, "exit") },
		OnDragEnd:         func(*DragSession) { calls = append(calls, "end") },
	}
	_, _, box, sess := newDropScene(t, h)
	sess.Start(Vec2{5, 5})
	sess.UpdatePosition(Vec2{150, 150})
	sess.Stop(Vec2{150, 150})

	want := []string{"drop", "insert", "position", "exit", "end"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("calls = %v, want %v", calls, want)
			break
		}
	}
	if box.Parent == nil || box.Parent.Name != "viewport" {
		t.Error("custom insert handler should replace the default")
	}
}

func TestHoverRejected(t *testing.T) {
	dropped := false
	h := DragHandlers{
		OnHoverEnter: func(*DragSession, *Region) bool { return false },
		OnDrop:       func(*DragSession, *Region, Vec2) { dropped = true },
	}
	s, _, box, sess := newDropScene(t, h)
	sink := &recordingSink{}
	s.SetEventSink(sink)

	sess.Start(Vec2{5, 5})
	sess.UpdatePosition(Vec2{150, 150})
	if sess.Hovered() != nil {
		t.Error("a rejected region must not be hovered")
	}
	sess.Stop(Vec2{150, 150})
	if dropped {
		t.Error("a rejected region must not receive the drop")
	}
	if box.Parent != s.Root() {
		t.Error("source should stay in place")
	}
	for _, k := range sink.kinds() {
		if k == EventHoverEnter || k == EventDrop {
			t.Errorf("unexpected %v event", k)
		}
	}
}

func TestScrollOnlyRegionNotDroppable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Drag.ReturnDuration = 0
	s := NewSceneWithConfig(cfg, 800, 600)
	area := NewNode("area", 200, 200)
	box := NewNode("box", 10, 10)
	box.SetPosition(500, 500)
	s.Root().AddChild(area)
	s.Root().AddChild(box)
	ri := NewRegionIndex()
	ri.TrackWith(area, nil, nil, RegionFlags{ScrollOnly: true})

	entered := false
	sess := s.MakeDraggable(box, DragConfig{Regions: ri, Handlers: DragHandlers{
		OnHoverEnter: func(*DragSession, *Region) bool { entered = true; return true },
	}})
	sess.Start(Vec2{505, 505})
	sess.UpdatePosition(Vec2{100, 100})
	sess.Stop(Vec2{100, 100})
	if entered || box.Parent != s.Root() {
		t.Error("scroll-only regions get no hover and no drop")
	}
}

func TestDragEventSequence(t *testing.T) {
	s, target, box, sess := newDropScene(t, DragHandlers{})
	sink := &recordingSink{}
	s.SetEventSink(sink)

	sess.Start(Vec2{5, 5})
	sess.UpdatePosition(Vec2{150, 150})
	sess.UpdatePosition(Vec2{600, 500})
	sess.UpdatePosition(Vec2{150, 150})
	sess.Stop(Vec2{150, 150})

	want := []EventKind{
		EventDragStart,
		EventHoverEnter, EventHoverExit, EventHoverEnter,
		EventDrop, EventHoverExit, EventDragEnd,
	}
	got := sink.kinds()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events = %v, want %v", got, want)
		}
	}
	for _, ev := range sink.events {
		if ev.Source != box.ID {
			t.Errorf("%v event Source = %d, want %d", ev.Kind, ev.Source, box.ID)
		}
		if ev.Kind == EventDrop && ev.Target != target.ID {
			t.Errorf("drop Target = %d, want %d", ev.Target, target.ID)
		}
	}
}

func TestDragReturnAnimation(t *testing.T) {
	s := NewScene(800, 600)
	box := NewNode("box", 20, 20)
	box.SetPosition(30, 40)
	s.Root().AddChild(box)
	sess := s.MakeDraggable(box, DragConfig{})

	sess.Start(Vec2{35, 45})
	sess.UpdatePosition(Vec2{300, 300})
	overlay := sess.Overlay()
	sess.Stop(Vec2{300, 300})

	if overlay.Parent == nil {
		t.Fatal("overlay should stay while returning")
	}
	// A new drag finishes the pending return first.
	if !sess.Start(Vec2{35, 45}) {
		t.Fatal("Start after Stop should succeed")
	}
	if overlay.Parent != nil {
		t.Error("previous overlay should be removed")
	}
	if overlay.X != 30 || overlay.Y != 40 {
		t.Errorf("previous overlay ended at (%v, %v), want (30, 40)", overlay.X, overlay.Y)
	}
	if s.Overlays().NumChildren() != 1 {
		t.Errorf("overlay layer has %d children, want 1", s.Overlays().NumChildren())
	}
}

func TestMakeDraggableIdempotent(t *testing.T) {
	s := NewScene(100, 100)
	n := NewNode("n", 10, 10)
	a := s.MakeDraggable(n, DragConfig{})
	b := s.MakeDraggable(n, DragConfig{})
	if a != b || s.Session(n) != a {
		t.Error("MakeDraggable should return the existing session")
	}
	if !n.Draggable {
		t.Error("node should be marked draggable")
	}
}
