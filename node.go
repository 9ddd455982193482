package trellis

// nodeIDCounter is a plain counter; trellis is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the element tree's only element type. A single flat struct keeps the
// geometry reads that the region engine performs on every pointer move cheap.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Box geometry. X and Y are relative to the parent's border-box origin, in
	// the parent's scrolled content space.
	X, Y          float64
	Width, Height float64
	Margin        Insets
	Padding       Insets

	// Scrolling. ContentWidth/ContentHeight bound the scroll range; a zero
	// content size means the node does not scroll on that axis.
	ScrollX, ScrollY            float64
	ContentWidth, ContentHeight float64

	// ZIndex is the stacking order as written by the host: an integer or
	// "auto". Anything that does not parse ranks lowest in hit resolution.
	ZIndex string

	// Layout positions children when not LayoutNone.
	Layout LayoutKind

	// Visibility & interaction
	Color     Color
	Alpha     float64
	Visible   bool
	Draggable bool

	// Metadata
	UserData any

	// Internal
	viewport        bool
	layoutDirty     bool
	disposed        bool
	resizeListeners []resizeListener
	nextListenerID  uint32
}

type resizeListener struct {
	id uint32
	fn func(*Node)
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.ZIndex = "auto"
}

// NewNode creates a node with the given border-box size.
func NewNode(name string, width, height float64) *Node {
	n := &Node{Name: name, Width: width, Height: height}
	nodeDefaults(n)
	return n
}

// NewContainer creates a node that lays out its children along one axis.
func NewContainer(name string, layout LayoutKind) *Node {
	n := &Node{Name: name, Layout: layout, layoutDirty: true}
	nodeDefaults(n)
	return n
}

// IsViewport reports whether n is a scene's root, i.e. the scrolling window.
func (n *Node) IsViewport() bool {
	return n.viewport
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("trellis: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("trellis: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	n.markLayoutDirty()
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("trellis: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChildAt (parent)")
		debugCheckDisposed(child, "AddChildAt (child)")
	}
	if isAncestor(child, n) {
		panic("trellis: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	if index < 0 || index > len(n.children) {
		panic("trellis: child index out of range")
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	n.markLayoutDirty()
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("trellis: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	n.markLayoutDirty()
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// IndexOf returns child's position among n's children, or -1.
func (n *Node) IndexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// SetChildIndex moves child to a new index among its siblings.
func (n *Node) SetChildIndex(child *Node, index int) {
	if child.Parent != n {
		panic("trellis: child's parent is not this node")
	}
	nc := len(n.children)
	if index < 0 || index >= nc {
		panic("trellis: child index out of range")
	}
	oldIndex := n.IndexOf(child)
	if oldIndex == index {
		return
	}
	// Shift elements to fill the gap and open the target slot.
	if oldIndex < index {
		copy(n.children[oldIndex:], n.children[oldIndex+1:index+1])
	} else {
		copy(n.children[index+1:], n.children[index:oldIndex])
	}
	n.children[index] = child
	n.markLayoutDirty()
}

// Depth returns the number of ancestors above n.
func (n *Node) Depth() int {
	d := 0
	for p := n.Parent; p != nil; p = p.Parent {
		d++
	}
	return d
}

// SetPosition sets the node's local X and Y.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
}

// SetSize resizes the border box, marks the parent's layout dirty and notifies
// resize listeners (anchored popups re-place themselves from here).
func (n *Node) SetSize(w, h float64) {
	if n.Width == w && n.Height == h {
		return
	}
	n.Width = w
	n.Height = h
	if n.Parent != nil {
		n.Parent.markLayoutDirty()
	}
	n.notifyResize()
}

// OnResize registers fn to run after SetSize changes this node. The returned
// function unregisters it.
func (n *Node) OnResize(fn func(*Node)) (remove func()) {
	n.nextListenerID++
	id := n.nextListenerID
	n.resizeListeners = append(n.resizeListeners, resizeListener{id: id, fn: fn})
	return func() {
		for i := range n.resizeListeners {
			if n.resizeListeners[i].id == id {
				copy(n.resizeListeners[i:], n.resizeListeners[i+1:])
				n.resizeListeners[len(n.resizeListeners)-1] = resizeListener{}
				n.resizeListeners = n.resizeListeners[:len(n.resizeListeners)-1]
				return
			}
		}
	}
}

func (n *Node) notifyResize() {
	for _, l := range n.resizeListeners {
		l.fn(n)
	}
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.UserData = nil
	n.resizeListeners = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node (or node itself).
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
