package trellis

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// outlineColor is the border drawn around every box.
var outlineColor = color.RGBA{0, 0, 0, 96}

// boxCommand is one filled box to draw, in screen coordinates.
type boxCommand struct {
	node  *Node
	rect  Rect
	clip  image.Rectangle
	color Color
}

// Draw renders the document and then the overlay layer onto screen. Each node
// is drawn as a filled box; scrollable nodes clip their subtree.
func (s *Scene) Draw(screen *ebiten.Image) {
	s.commands = s.collect(s.commands[:0], screen.Bounds())
	for i := range s.commands {
		cmd := &s.commands[i]
		sub := screen.SubImage(cmd.clip).(*ebiten.Image)
		r := cmd.rect
		vector.DrawFilledRect(sub, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), cmd.color.toRGBA(), false)
		vector.StrokeRect(sub, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), 1, outlineColor, false)
	}
}

// collect appends the draw commands for the document and the overlay layer, in
// painter order, for a screen of the given bounds.
func (s *Scene) collect(cmds []boxCommand, bounds image.Rectangle) []boxCommand {
	scroll := s.root.Scroll()
	origin := Vec2{-scroll.X, -scroll.Y}
	for _, c := range s.root.children {
		cmds = collectNode(cmds, c, origin, bounds, 1)
	}
	for _, c := range s.overlays.children {
		cmds = collectNode(cmds, c, origin, bounds, 1)
	}
	return cmds
}

// collectNode emits n, whose parent's content origin is at screen position
// origin, clipped to clip, followed by its subtree.
func collectNode(cmds []boxCommand, n *Node, origin Vec2, clip image.Rectangle, alpha float64) []boxCommand {
	if !n.Visible || n.Alpha <= 0 {
		return cmds
	}
	alpha *= n.Alpha
	x, y := origin.X+n.X, origin.Y+n.Y
	box := image.Rect(int(x), int(y), int(x+n.Width), int(y+n.Height))
	vis := box.Intersect(clip)
	if !vis.Empty() {
		c := n.Color
		c.A *= alpha
		cmds = append(cmds, boxCommand{
			node:  n,
			rect:  Rect{X: x, Y: y, Width: n.Width, Height: n.Height},
			clip:  clip,
			color: c,
		})
	}
	if len(n.children) == 0 {
		return cmds
	}
	childClip := clip
	if canScroll(n) {
		childClip = vis
		if childClip.Empty() {
			return cmds
		}
	}
	childOrigin := Vec2{x - n.ScrollX, y - n.ScrollY}
	for _, c := range n.children {
		cmds = collectNode(cmds, c, childOrigin, childClip, alpha)
	}
	return cmds
}
