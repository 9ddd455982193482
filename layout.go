package trellis

import (
	"math"
	"strconv"
	"strings"
)

// --- Geometry reads ---

// Offset returns the document position of the node's border box. Scroll
// offsets of ancestors shift their descendants; the viewport's own scroll does
// not, because document coordinates are independent of it.
func (n *Node) Offset() Vec2 {
	var x, y float64
	for c := n; c.Parent != nil; c = c.Parent {
		x += c.X
		y += c.Y
		if p := c.Parent; !p.viewport {
			x -= p.ScrollX
			y -= p.ScrollY
		}
	}
	return Vec2{x, y}
}

// OuterSize returns the border-box size, optionally including margins.
func (n *Node) OuterSize(includeMargin bool) Vec2 {
	if includeMargin {
		return Vec2{n.Width + n.Margin.Horizontal(), n.Height + n.Margin.Vertical()}
	}
	return Vec2{n.Width, n.Height}
}

// DocumentRect returns the border box in document coordinates.
func (n *Node) DocumentRect() Rect {
	o := n.Offset()
	return Rect{X: o.X, Y: o.Y, Width: n.Width, Height: n.Height}
}

// Ancestors returns the chain of parents from nearest to the root.
func (n *Node) Ancestors() []*Node {
	var out []*Node
	for p := n.Parent; p != nil; p = p.Parent {
		out = append(out, p)
	}
	return out
}

// StackingOrder parses ZIndex. ok is false for "auto", empty or malformed
// values; callers rank those below every parsed value.
func (n *Node) StackingOrder() (z int, ok bool) {
	v, err := strconv.Atoi(strings.TrimSpace(n.ZIndex))
	if err != nil {
		return 0, false
	}
	return v, true
}

// SetZIndex sets the stacking order from an integer.
func (n *Node) SetZIndex(z int) {
	n.ZIndex = strconv.Itoa(z)
}

// --- Scrolling ---

// Scroll returns the current scroll offset.
func (n *Node) Scroll() Vec2 {
	return Vec2{n.ScrollX, n.ScrollY}
}

// MaxScroll returns the largest scroll offset on each axis.
func (n *Node) MaxScroll() Vec2 {
	return Vec2{
		math.Max(0, n.ContentWidth-n.Width),
		math.Max(0, n.ContentHeight-n.Height),
	}
}

// SetScroll sets the scroll offset clamped to [0, MaxScroll].
func (n *Node) SetScroll(x, y float64) {
	m := n.MaxScroll()
	n.ScrollX = math.Max(0, math.Min(x, m.X))
	n.ScrollY = math.Max(0, math.Min(y, m.Y))
}

// ScrollBy scrolls by (dx, dy) and returns the delta actually applied after
// clamping.
func (n *Node) ScrollBy(dx, dy float64) Vec2 {
	before := n.Scroll()
	n.SetScroll(n.ScrollX+dx, n.ScrollY+dy)
	return n.Scroll().Sub(before)
}

// --- Flow layout ---

func (n *Node) markLayoutDirty() {
	if n.Layout != LayoutNone {
		n.layoutDirty = true
	}
}

// Relayout positions children according to Layout and updates the content
// size. No-op for LayoutNone.
func (n *Node) Relayout() {
	n.layoutDirty = false
	switch n.Layout {
	case LayoutColumn:
		y := n.Padding.Top
		w := 0.0
		for _, c := range n.children {
			c.X = n.Padding.Left + c.Margin.Left
			c.Y = y + c.Margin.Top
			y += c.Height + c.Margin.Vertical()
			w = math.Max(w, c.Width+c.Margin.Horizontal())
		}
		n.ContentHeight = y + n.Padding.Bottom
		n.ContentWidth = w + n.Padding.Horizontal()
	case LayoutRow:
		x := n.Padding.Left
		h := 0.0
		for _, c := range n.children {
			c.X = x + c.Margin.Left
			c.Y = n.Padding.Top + c.Margin.Top
			x += c.Width + c.Margin.Horizontal()
			h = math.Max(h, c.Height+c.Margin.Vertical())
		}
		n.ContentWidth = x + n.Padding.Right
		n.ContentHeight = h + n.Padding.Vertical()
	default:
		return
	}
	// Keep the scroll offset valid after the content shrank.
	n.SetScroll(n.ScrollX, n.ScrollY)
}

// updateLayout relayouts every dirty container in the subtree.
func updateLayout(n *Node) {
	if n.layoutDirty {
		n.Relayout()
	}
	for _, c := range n.children {
		updateLayout(c)
	}
}
