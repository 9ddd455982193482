package trellis

// PlacementConfig configures an anchored popup.
type PlacementConfig struct {
	// Options overrides the scene's placement options.
	Options *PlacementOptions
	// OnPlace runs after every reposition.
	OnPlace func(p *Popup, res PlacementResult)
}

// Popup keeps an overlay node placed next to a target node. It re-places the
// overlay when the viewport is resized, when target or overlay change size,
// and when the target moves in the document (for example by scrolling).
type Popup struct {
	scene   *Scene
	overlay *Node
	target  *Node
	place   *Placement
	onPlace func(*Popup, PlacementResult)

	pointer    *Vec2
	last       PlacementResult
	lastTarget Rect
	unlisten   []func()
	attached   bool
}

// AttachPopup anchors overlay to target. A parentless overlay is added to the
// scene's overlay layer, whose coordinates are document coordinates. The
// overlay is placed immediately.
func (s *Scene) AttachPopup(overlay, target *Node, cfg PlacementConfig) *Popup {
	opts := s.config.Placement
	if cfg.Options != nil {
		opts = *cfg.Options
	}
	p := &Popup{
		scene:    s,
		overlay:  overlay,
		target:   target,
		place:    NewPlacement(opts),
		onPlace:  cfg.OnPlace,
		attached: true,
	}
	if overlay.Parent == nil {
		s.overlays.AddChild(overlay)
	}
	p.unlisten = append(p.unlisten,
		target.OnResize(func(*Node) { p.Reposition() }),
		overlay.OnResize(func(*Node) { p.Reposition() }),
	)
	s.popups = append(s.popups, p)
	p.Reposition()
	return p
}

// Overlay returns the placed node.
func (p *Popup) Overlay() *Node { return p.overlay }

// Target returns the anchor node.
func (p *Popup) Target() *Node { return p.target }

// Placement returns the placement state, including the cached pointer ratio.
func (p *Popup) Placement() *Placement { return p.place }

// Result returns the last placement.
func (p *Popup) Result() PlacementResult { return p.last }

// Attached reports whether the popup is still tracking its target.
func (p *Popup) Attached() bool { return p.attached }

// AnchorToPointer anchors the popup at pointer position pt (document
// coordinates) over the target, replacing any previous pointer anchor.
// Has no effect on the anchor unless FollowPointer is set.
func (p *Popup) AnchorToPointer(pt Vec2) {
	p.place.Reset()
	p.pointer = &pt
	p.Reposition()
}

// Reposition runs placement against the current geometry and moves the
// overlay.
func (p *Popup) Reposition() {
	if !p.attached {
		return
	}
	s := p.scene
	root := s.root
	target := p.target.DocumentRect()
	size := p.overlay.OuterSize(false)
	document := Rect{
		Width:  max(root.Width, root.ContentWidth),
		Height: max(root.Height, root.ContentHeight),
	}
	viewport := Rect{X: root.ScrollX, Y: root.ScrollY, Width: root.Width, Height: root.Height}

	res := p.place.Place(target, size, document, viewport, p.pointer)
	p.pointer = nil
	p.last = res
	p.lastTarget = target
	p.overlay.SetPosition(res.Chosen.X, res.Chosen.Y)
	logger.Debug("popup placed", "overlay", p.overlay.Name, "bias_x", res.Bias.X, "bias_y", res.Bias.Y,
		"x", res.Chosen.X, "y", res.Chosen.Y)
	if p.onPlace != nil {
		p.onPlace(p, res)
	}
}

// follow re-places the popup if its target moved since the last placement.
func (p *Popup) follow() {
	if p.target.DocumentRect() != p.lastTarget {
		p.Reposition()
	}
}

// Detach stops tracking and removes the overlay from its parent.
func (p *Popup) Detach() {
	if !p.attached {
		return
	}
	p.attached = false
	for _, fn := range p.unlisten {
		fn()
	}
	p.unlisten = nil
	p.overlay.RemoveFromParent()
	s := p.scene
	for i, q := range s.popups {
		if q == p {
			copy(s.popups[i:], s.popups[i+1:])
			s.popups[len(s.popups)-1] = nil
			s.popups = s.popups[:len(s.popups)-1]
			break
		}
	}
}
