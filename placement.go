package trellis

// Space is the room around a target on each axis. Near is toward the
// container origin (left, top), Far away from it (right, bottom). With viewport
// clipping a side partly outside the visible window loses that part, and a
// target outside the window can leave a side negative.
type Space struct {
	Near, Far Vec2
}

// Bias selects a side per axis: 0 places the overlay on the near side of the
// target, 1 on the far side.
type Bias struct {
	X, Y int
}

// Axis names a placement axis.
type Axis uint8

const (
	AxisNone Axis = iota
	AxisX
	AxisY
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return "none"
	}
}

// Offsets holds the two candidate positions per axis. Min is the near-side
// candidate, Max the far-side one.
type Offsets struct {
	X, Y Range
}

// PlacementResult is the outcome of one placement pass.
type PlacementResult struct {
	Bias    Bias
	Offsets Offsets
	// Chosen is the overlay's top-left corner in document coordinates.
	Chosen Vec2
	// Anchor is the point or rectangle the overlay was placed against.
	Anchor Rect
	// PointerAxis is the axis the arrow points along in centered style.
	PointerAxis Axis
}

// ComputeAvailableSpace measures the room between target and the edges of
// container. When clip is non-nil the part of each side lying outside clip is
// subtracted.
func ComputeAvailableSpace(target, container Rect, clip *Rect) Space {
	s := Space{
		Near: Vec2{target.X - container.X, target.Y - container.Y},
		Far: Vec2{
			container.X + container.Width - (target.X + target.Width),
			container.Y + container.Height - (target.Y + target.Height),
		},
	}
	if clip != nil {
		s.Near.X -= max(0, clip.X-container.X)
		s.Near.Y -= max(0, clip.Y-container.Y)
		s.Far.X -= max(0, (container.X+container.Width)-(clip.X+clip.Width))
		s.Far.Y -= max(0, (container.Y+container.Height)-(clip.Y+clip.Height))
	}
	return s
}

// ChooseBias picks, per axis, the side with strictly more space. Ties go to
// the near side.
func ChooseBias(s Space) Bias {
	var b Bias
	if s.Far.X > s.Near.X {
		b.X = 1
	}
	if s.Far.Y > s.Near.Y {
		b.Y = 1
	}
	return b
}

// ComputeOffsetCandidates returns, per axis, the position that puts the
// overlay's far edge against the target's near edge (Min) and the one that
// puts its near edge against the target's far edge (Max). Both leave
// PointerDelta of room for the arrow; Center pulls them in by half the
// target's size.
func ComputeOffsetCandidates(target Rect, size Vec2, opts PlacementOptions) (x, y Range) {
	cx, cy := opts.PointerDelta, opts.PointerDelta
	if opts.Center {
		cx -= target.Width / 2
		cy -= target.Height / 2
	}
	x = Range{
		Min: target.X - size.X - cx,
		Max: target.X + target.Width + cx,
	}
	y = Range{
		Min: target.Y - size.Y - cy,
		Max: target.Y + target.Height + cy,
	}
	return x, y
}

func pick(r Range, side int) float64 {
	if side == 1 {
		return r.Max
	}
	return r.Min
}

// sideSign is -1 for the near side and +1 for the far side.
func sideSign(side int) float64 {
	if side == 1 {
		return 1
	}
	return -1
}

// Placement positions one anchored overlay. It carries the pointer anchor
// ratio, which is computed once per overlay lifetime; create a new Placement
// or call Reset for a new overlay.
type Placement struct {
	Options PlacementOptions

	ratio    Vec2
	hasRatio bool
}

// NewPlacement creates a placement with the given options.
func NewPlacement(opts PlacementOptions) *Placement {
	return &Placement{Options: opts}
}

// Reset drops the cached pointer ratio.
func (pl *Placement) Reset() {
	pl.ratio = Vec2{}
	pl.hasRatio = false
}

// Ratio returns the cached pointer ratio and whether one is set.
func (pl *Placement) Ratio() (Vec2, bool) {
	return pl.ratio, pl.hasRatio
}

// Place computes where an overlay of the given size goes next to target.
// document bounds the available space; viewport is the visible window, used
// for clipping. With FollowPointer set, the first non-nil pointer fixes the
// anchor as a ratio of target's size; every later call re-expands that ratio
// against target's current rectangle.
func (pl *Placement) Place(target Rect, size Vec2, document, viewport Rect, pointer *Vec2) PlacementResult {
	o := pl.Options
	anchor := target
	if o.FollowPointer {
		if pointer != nil && !pl.hasRatio {
			pl.ratio = Vec2{ratioOf(pointer.X-target.X, target.Width), ratioOf(pointer.Y-target.Y, target.Height)}
			pl.hasRatio = true
			logger.Debug("placement anchor cached", "rx", pl.ratio.X, "ry", pl.ratio.Y)
		}
		if pl.hasRatio {
			anchor = Rect{
				X: target.X + pl.ratio.X*target.Width,
				Y: target.Y + pl.ratio.Y*target.Height,
			}
		}
	}

	var clip *Rect
	if o.ClipToViewport {
		clip = &viewport
	}
	space := ComputeAvailableSpace(anchor, document, clip)
	bias := ChooseBias(space)
	xs, ys := ComputeOffsetCandidates(anchor, size, o)
	chosen := Vec2{pick(xs, bias.X), pick(ys, bias.Y)}

	res := PlacementResult{Bias: bias, Offsets: Offsets{X: xs, Y: ys}, Anchor: anchor}
	switch o.Style {
	case StyleCentered:
		totalX := space.Near.X + space.Far.X
		totalY := space.Near.Y + space.Far.Y
		if totalX < totalY {
			res.PointerAxis = AxisX
			chosen.Y = anchor.Y + anchor.Height/2 - size.Y/2
			chosen.X += sideSign(bias.X) * o.ArrowWidth / 2
		} else {
			res.PointerAxis = AxisY
			chosen.X = anchor.X + anchor.Width/2 - size.X/2
			chosen.Y += sideSign(bias.Y) * o.ArrowHeight / 2
		}
	default:
		chosen.X += sideSign(bias.X) * o.ArrowWidth / 2
		chosen.Y += sideSign(bias.Y) * o.ArrowHeight / 2
	}
	res.Chosen = chosen
	return res
}

func ratioOf(offset, size float64) float64 {
	if size == 0 {
		return 0
	}
	return offset / size
}
