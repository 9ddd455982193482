package trellis

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const defaultDragDeadZone = 4.0 // pixels

// pointerState tracks the mouse between frames. start and last are document
// coordinates; lastScreen detects movement independently of viewport scroll.
type pointerState struct {
	down       bool
	start      Vec2
	last       Vec2
	lastScreen Vec2
	session    *DragSession
	dragging   bool
}

// SetDragDeadZone sets the minimum movement in pixels before a drag starts.
func (s *Scene) SetDragDeadZone(pixels float64) {
	s.dragDeadZone = pixels
}

// Dragging returns the session driven by the pointer, or nil.
func (s *Scene) Dragging() *DragSession {
	if s.pointer.dragging {
		return s.pointer.session
	}
	return nil
}

// ScreenToDocument converts a screen position to document coordinates.
func (s *Scene) ScreenToDocument(x, y float64) Vec2 {
	return Vec2{x + s.root.ScrollX, y + s.root.ScrollY}
}

// --- Hit testing ---

// hitTest finds the topmost visible node whose box contains document point p.
// Subtrees of scrollable nodes are clipped to the node's box.
func (s *Scene) hitTest(p Vec2) *Node {
	return hitNode(s.root, p)
}

func hitNode(n *Node, p Vec2) *Node {
	if !n.Visible {
		return nil
	}
	inside := n.viewport || n.DocumentRect().Contains(p.X, p.Y)
	if !inside && canScroll(n) {
		return nil
	}
	// Reverse painter order: last child is on top.
	for i := len(n.children) - 1; i >= 0; i-- {
		if h := hitNode(n.children[i], p); h != nil {
			return h
		}
	}
	if inside && !n.viewport {
		return n
	}
	return nil
}

// pressTarget resolves the session a press at p would start. Handle regions
// take precedence; otherwise the nearest draggable ancestor-or-self of the hit
// node that has no handle.
func (s *Scene) pressTarget(p Vec2) *DragSession {
	if s.handles.Len() > 0 {
		s.handles.RecalculateAll()
		if r := s.handles.FindBeneath(p); r != nil {
			if src, ok := r.Data.(*Node); ok && src.Draggable {
				return s.sessions[src.ID]
			}
		}
	}
	for n := s.hitTest(p); n != nil; n = n.Parent {
		if sess := s.sessions[n.ID]; sess != nil && sess.handle == nil && n.Draggable {
			return sess
		}
	}
	return nil
}

// --- Input processing ---

// processInput is called from Scene.Step. Injected events take priority over
// the real mouse; one injected event is consumed per frame.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	s.processPointer(float64(mx), float64(my), pressed)
}

// processPointer runs the pointer state machine for screen position (sx, sy).
func (s *Scene) processPointer(sx, sy float64, pressed bool) {
	ps := &s.pointer
	p := s.ScreenToDocument(sx, sy)
	screen := Vec2{sx, sy}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.start = p
		ps.last = p
		ps.lastScreen = screen
		ps.session = s.pressTarget(p)
		ps.dragging = false

	case !pressed && ps.down:
		if ps.dragging {
			ps.session.Stop(p)
		}
		ps.down = false
		ps.session = nil
		ps.dragging = false

	case pressed && ps.down:
		if screen == ps.lastScreen {
			return
		}
		if !ps.dragging && ps.session != nil {
			dx := p.X - ps.start.X
			dy := p.Y - ps.start.Y
			if math.Sqrt(dx*dx+dy*dy) > s.dragDeadZone {
				ps.dragging = ps.session.Start(ps.start)
			}
		}
		if ps.dragging {
			ps.session.UpdatePosition(p)
		}
		ps.last = p
		ps.lastScreen = screen
	}
}
