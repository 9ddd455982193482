package trellis

// SortConfig configures a Sortable.
type SortConfig struct {
	// OnReorder runs after an item settled at its new index.
	OnReorder func(item *Node, from, to int)
	// Accept decides whether item may move to index. Default: always.
	Accept func(item *Node, index int) bool
	// Options overrides the scene's drag options for the list's items.
	Options *DragOptions
}

// Sortable reorders the children of a flow-layout list by dragging. Hovering
// an item over a sibling slides it into that sibling's index.
//
// Each target index has at most one reorder animation in flight. A request for
// a busy index is dropped. Starting an animation at another index first stops
// every other in-flight animation, so the latest request wins.
type Sortable struct {
	scene   *Scene
	list    *Node
	regions *RegionIndex
	items   []*Node
	slots   map[int]Animation
	cfg     SortConfig
}

// NewSortable makes every current child of list sortable. The list itself is
// tracked as a scroll-only region so dragging near its edges scrolls it.
func NewSortable(scene *Scene, list *Node, cfg SortConfig) *Sortable {
	so := &Sortable{
		scene:   scene,
		list:    list,
		regions: NewRegionIndex(),
		slots:   make(map[int]Animation),
		cfg:     cfg,
	}
	if list.layoutDirty {
		list.Relayout()
	}
	so.regions.TrackWith(list, nil, nil, RegionFlags{ScrollOnly: true})
	for _, c := range list.Children() {
		so.track(c)
	}
	return so
}

// Add appends item to the list and makes it sortable.
func (so *Sortable) Add(item *Node) {
	so.list.AddChild(item)
	so.list.Relayout()
	so.track(item)
}

func (so *Sortable) track(item *Node) {
	so.items = append(so.items, item)
	so.regions.Track(item, nil, item)
	so.scene.MakeDraggable(item, DragConfig{
		Regions: so.regions,
		Options: so.cfg.Options,
		Handlers: DragHandlers{
			OnHoverEnter:      so.hoverEnter,
			OnInsertElement:   func(*DragSession, *Region, Vec2) {},
			OnPositionElement: func(*DragSession, *Region, Vec2) {},
			OnDragEnd:         func(*DragSession) { so.Settle() },
		},
	})
}

// List returns the list container.
func (so *Sortable) List() *Node { return so.list }

// Regions returns the index the items are tracked in.
func (so *Sortable) Regions() *RegionIndex { return so.regions }

// Items returns the items in their settled order.
func (so *Sortable) Items() []*Node {
	out := make([]*Node, len(so.items))
	copy(out, so.items)
	return out
}

// IndexOf returns item's settled index, or -1.
func (so *Sortable) IndexOf(item *Node) int {
	for i, it := range so.items {
		if it == item {
			return i
		}
	}
	return -1
}

// Busy reports whether index has a reorder animation in flight.
func (so *Sortable) Busy(index int) bool {
	_, ok := so.slots[index]
	return ok
}

// InFlight returns the number of running reorder animations.
func (so *Sortable) InFlight() int {
	return len(so.slots)
}

// Refresh re-measures every region. Call after the list or its items resize.
func (so *Sortable) Refresh() {
	so.regions.RecalculateAll()
}

// Settle stops every in-flight animation, leaving each item at its target.
func (so *Sortable) Settle() {
	for _, a := range so.slots {
		a.Stop()
	}
}

func (so *Sortable) hoverEnter(s *DragSession, r *Region) bool {
	target, ok := r.Data.(*Node)
	if !ok {
		return false
	}
	idx := so.IndexOf(target)
	if idx < 0 {
		return false
	}
	src := s.Source()
	if idx != so.IndexOf(src) && so.cfg.Accept != nil && !so.cfg.Accept(src, idx) {
		return false
	}
	so.MoveTo(src, idx)
	return true
}

// MoveTo slides item to index. It reports whether an animation started.
func (so *Sortable) MoveTo(item *Node, index int) bool {
	if index < 0 || index >= len(so.items) {
		return false
	}
	if so.Busy(index) {
		logger.Debug("reorder dropped, slot busy", "item", item.Name, "index", index)
		return false
	}
	for k, a := range so.slots {
		if k != index {
			logger.Debug("reorder preempted", "index", k)
			a.Stop()
		}
	}
	from := so.IndexOf(item)
	if from < 0 || from == index {
		return false
	}
	if so.cfg.Accept != nil && !so.cfg.Accept(item, index) {
		return false
	}

	list := so.list
	size := item.OuterSize(true)
	shrink := newSpacer(size)
	grow := newSpacer(size)

	// shrink takes item's place, grow opens the target slot. Both are removed
	// by the animator; item is parked outside the list until completion.
	pos := list.IndexOf(item)
	list.AddChildAt(shrink, pos)
	list.RemoveChild(item)
	at := index
	if index > from {
		at = index + 1
	}
	list.AddChildAt(grow, at)
	list.Relayout()

	logger.Debug("reorder", "item", item.Name, "from", from, "to", index)
	anim := so.scene.animator.AnimateSlide(grow, shrink, func() {
		so.finish(item, from, index)
	})
	if !anim.Done() {
		so.slots[index] = anim
	}
	return true
}

func (so *Sortable) finish(item *Node, from, to int) {
	delete(so.slots, to)

	copy(so.items[from:], so.items[from+1:])
	so.items = so.items[:len(so.items)-1]
	so.items = append(so.items, nil)
	copy(so.items[to+1:], so.items[to:])
	so.items[to] = item

	so.list.AddChildAt(item, to)
	so.list.Relayout()
	so.regions.RecalculateSubset(so.items[min(from, to) : max(from, to)+1]...)

	so.scene.emit(DragEvent{Kind: EventReorder, Source: item.ID, Target: so.list.ID, Region: -1, From: from, To: to})
	if so.cfg.OnReorder != nil {
		so.cfg.OnReorder(item, from, to)
	}
}

func newSpacer(size Vec2) *Node {
	n := NewNode("spacer", size.X, size.Y)
	n.Visible = false
	return n
}
