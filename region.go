package trellis

// RegionID identifies a region within one RegionIndex. IDs are insertion
// positions and stay stable because regions are never removed.
type RegionID int

// RegionFlags mark regions that take part in hit testing but are not drop
// targets.
type RegionFlags struct {
	// ScrollOnly regions drive autoscroll but never receive drops or hover
	// notifications.
	ScrollOnly bool
	// IsHandle regions mark where a press may start a drag.
	IsHandle bool
}

// Region is a tracked rectangle in document coordinates. Bounds and
// ScrollBaseline are valid as of the last recalculation; later ancestor
// scrolling is corrected at query time, resizes and reflows are not.
type Region struct {
	ID        RegionID
	Owner     *Node
	Container *Node
	Data      any

	Bounds struct {
		X, Y Range
	}
	ScrollBaseline Vec2

	RegionFlags
}

// RegionIndex is an insertion-ordered set of regions with a reverse lookup
// from element identity to region.
type RegionIndex struct {
	regions []*Region
	byOwner map[uint32]RegionID
}

// NewRegionIndex creates an empty index.
func NewRegionIndex() *RegionIndex {
	return &RegionIndex{byOwner: make(map[uint32]RegionID)}
}

// Track creates a region for owner bounded by container (owner itself when
// container is nil) and measures it immediately. Tracking an owner twice
// returns the existing region's ID; no second region is created.
func (ri *RegionIndex) Track(owner, container *Node, data any) RegionID {
	return ri.TrackWith(owner, container, data, RegionFlags{})
}

// TrackWith is Track with explicit flags.
func (ri *RegionIndex) TrackWith(owner, container *Node, data any, flags RegionFlags) RegionID {
	if id, ok := ri.byOwner[owner.ID]; ok {
		logger.Debug("region already tracked", "owner", owner.Name, "region", id)
		return id
	}
	if container == nil {
		container = owner
	}
	r := &Region{
		ID:          RegionID(len(ri.regions)),
		Owner:       owner,
		Container:   container,
		Data:        data,
		RegionFlags: flags,
	}
	ri.regions = append(ri.regions, r)
	ri.byOwner[owner.ID] = r.ID
	ri.RecalculateOne(r)
	return r.ID
}

// Region returns the region with the given ID, or nil.
func (ri *RegionIndex) Region(id RegionID) *Region {
	if id < 0 || int(id) >= len(ri.regions) {
		return nil
	}
	return ri.regions[id]
}

// Lookup returns the region owned by n, or nil.
func (ri *RegionIndex) Lookup(n *Node) *Region {
	id, ok := ri.byOwner[n.ID]
	if !ok {
		return nil
	}
	return ri.regions[id]
}

// Len returns the number of tracked regions.
func (ri *RegionIndex) Len() int {
	return len(ri.regions)
}

// Regions returns the regions in insertion order. The returned slice MUST NOT
// be mutated.
func (ri *RegionIndex) Regions() []*Region {
	return ri.regions
}

// RecalculateOne re-reads the container's offset and size and refreshes the
// scroll baseline. A viewport container measures as the visible window
// (origin at zero, viewport size).
func (ri *RegionIndex) RecalculateOne(r *Region) {
	c := r.Container
	var origin, size Vec2
	if c.viewport {
		size = Vec2{c.Width, c.Height}
	} else {
		origin = c.Offset()
		size = c.OuterSize(false)
	}
	r.Bounds.X = Range{Min: origin.X, Max: origin.X + size.X}
	r.Bounds.Y = Range{Min: origin.Y, Max: origin.Y + size.Y}
	r.ScrollBaseline = CumulativeScroll(c)
}

// RecalculateAll re-measures every region. O(n); meant for resizes, not for
// per-frame use.
func (ri *RegionIndex) RecalculateAll() {
	for _, r := range ri.regions {
		ri.RecalculateOne(r)
	}
}

// RecalculateSubset re-measures only the regions owned by the given nodes.
// Untracked nodes are ignored.
func (ri *RegionIndex) RecalculateSubset(nodes ...*Node) {
	for _, n := range nodes {
		if r := ri.Lookup(n); r != nil {
			ri.RecalculateOne(r)
		}
	}
}

// CorrectedPoint maps document point p into the coordinate space the region's
// bounds were measured in.
func (ri *RegionIndex) CorrectedPoint(r *Region, p Vec2) Vec2 {
	live := CumulativeScroll(r.Container)
	q := p.Add(live.Sub(r.ScrollBaseline))
	if r.Container.viewport {
		q = q.Sub(r.Container.Scroll())
	}
	return q
}

// contains reports whether the corrected p lies in the region's bounds.
func (ri *RegionIndex) contains(r *Region, p Vec2) bool {
	q := ri.CorrectedPoint(r, p)
	return r.Bounds.X.Contains(q.X) && r.Bounds.Y.Contains(q.Y)
}

// FindBeneath returns the topmost region containing p, skipping regions owned
// by any node in exclude. Returns nil when no region contains p.
//
// Topmost means: the deepest container wins over its ancestors; among equally
// deep containers the greatest parsed stacking order wins, with unparseable
// stacking orders ranked below all parsed ones; remaining ties go to the first
// region in insertion order.
func (ri *RegionIndex) FindBeneath(p Vec2, exclude ...*Node) *Region {
	return ri.FindBeneathFunc(p, nil, exclude...)
}

// FindBeneathFunc is FindBeneath restricted to regions for which keep returns
// true. A nil keep accepts every region.
func (ri *RegionIndex) FindBeneathFunc(p Vec2, keep func(*Region) bool, exclude ...*Node) *Region {
	var best *Region
	bestDepth := -1
	bestZ, bestParsed := 0, false

	for _, r := range ri.regions {
		if excluded(r.Owner, exclude) || !ri.contains(r, p) {
			continue
		}
		if keep != nil && !keep(r) {
			continue
		}
		depth := r.Container.Depth()
		z, parsed := r.Container.StackingOrder()
		if best == nil || depth > bestDepth ||
			(depth == bestDepth && stackedAbove(z, parsed, bestZ, bestParsed)) {
			best = r
			bestDepth = depth
			bestZ, bestParsed = z, parsed
		}
	}
	return best
}

// stackedAbove reports whether stacking order (z, ok) strictly outranks
// (bestZ, bestOK). Unparsed values never outrank anything.
func stackedAbove(z int, ok bool, bestZ int, bestOK bool) bool {
	switch {
	case !ok:
		return false
	case !bestOK:
		return true
	default:
		return z > bestZ
	}
}

func excluded(n *Node, exclude []*Node) bool {
	for _, e := range exclude {
		if e == n {
			return true
		}
	}
	return false
}
