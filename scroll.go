package trellis

// CumulativeScroll sums the scroll offsets of every ancestor strictly between n
// and the root. The root (viewport) and n itself are excluded.
//
// Regions snapshot this value when their bounds are measured and compare it
// with the live value at query time, which keeps stored bounds valid under
// ancestor scrolling without re-measuring on every pointer move.
func CumulativeScroll(n *Node) Vec2 {
	var s Vec2
	for p := n.Parent; p != nil && p.Parent != nil; p = p.Parent {
		s.X += p.ScrollX
		s.Y += p.ScrollY
	}
	return s
}
