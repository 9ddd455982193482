package trellis

import "testing"

// --- Constructor defaults ---

func TestNewNodeDefaults(t *testing.T) {
	n := NewNode("box", 40, 20)
	assertNodeDefaults(t, n, "box")
	if n.Width != 40 || n.Height != 20 {
		t.Errorf("size = (%v, %v), want (40, 20)", n.Width, n.Height)
	}
	if n.Layout != LayoutNone {
		t.Errorf("Layout = %d, want LayoutNone", n.Layout)
	}
}

func TestNewContainerDefaults(t *testing.T) {
	n := NewContainer("list", LayoutColumn)
	assertNodeDefaults(t, n, "list")
	if n.Layout != LayoutColumn {
		t.Errorf("Layout = %d, want LayoutColumn", n.Layout)
	}
	if !n.layoutDirty {
		t.Error("new container should start with a dirty layout")
	}
}

func assertNodeDefaults(t *testing.T, n *Node, name string) {
	t.Helper()
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Name != name {
		t.Errorf("Name = %q, want %q", n.Name, name)
	}
	if n.Alpha != 1 {
		t.Errorf("Alpha = %v, want 1", n.Alpha)
	}
	if n.Color != (Color{1, 1, 1, 1}) {
		t.Errorf("Color = %v, want white", n.Color)
	}
	if !n.Visible {
		t.Error("Visible should be true")
	}
	if n.ZIndex != "auto" {
		t.Errorf("ZIndex = %q, want auto", n.ZIndex)
	}
}

// --- Unique IDs ---

func TestUniqueIDs(t *testing.T) {
	a := NewNode("a", 0, 0)
	b := NewNode("b", 0, 0)
	if a.ID == b.ID {
		t.Errorf("IDs should differ: %d == %d", a.ID, b.ID)
	}
}

// --- Tree manipulation ---

func TestAddChild(t *testing.T) {
	p := NewNode("p", 0, 0)
	c := NewNode("c", 0, 0)
	p.AddChild(c)
	if c.Parent != p {
		t.Error("child's parent should be p")
	}
	if p.NumChildren() != 1 || p.ChildAt(0) != c {
		t.Error("p should have c as its only child")
	}
}

func TestAddChildReparents(t *testing.T) {
	a := NewNode("a", 0, 0)
	b := NewNode("b", 0, 0)
	c := NewNode("c", 0, 0)
	a.AddChild(c)
	b.AddChild(c)
	if a.NumChildren() != 0 {
		t.Error("c should have been removed from a")
	}
	if c.Parent != b {
		t.Error("c's parent should be b")
	}
}

func TestAddChildNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewNode("p", 0, 0).AddChild(nil)
}

func TestAddChildCyclePanics(t *testing.T) {
	a := NewNode("a", 0, 0)
	b := NewNode("b", 0, 0)
	a.AddChild(b)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for cycle")
		}
	}()
	b.AddChild(a)
}

func TestAddChildAt(t *testing.T) {
	p := NewNode("p", 0, 0)
	a, b, c := NewNode("a", 0, 0), NewNode("b", 0, 0), NewNode("c", 0, 0)
	p.AddChild(a)
	p.AddChild(c)
	p.AddChildAt(b, 1)
	assertChildOrder(t, p, a, b, c)
}

func TestAddChildAtOutOfRangePanics(t *testing.T) {
	p := NewNode("p", 0, 0)
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	p.AddChildAt(NewNode("x", 0, 0), 2)
}

func TestRemoveChild(t *testing.T) {
	p := NewNode("p", 0, 0)
	c := NewNode("c", 0, 0)
	p.AddChild(c)
	p.RemoveChild(c)
	if c.Parent != nil || p.NumChildren() != 0 {
		t.Error("c should be detached")
	}
}

func TestRemoveChildWrongParentPanics(t *testing.T) {
	p := NewNode("p", 0, 0)
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	p.RemoveChild(NewNode("c", 0, 0))
}

func TestRemoveFromParentNoParent(t *testing.T) {
	NewNode("solo", 0, 0).RemoveFromParent()
}

func TestSetChildIndex(t *testing.T) {
	p := NewNode("p", 0, 0)
	a, b, c, d := NewNode("a", 0, 0), NewNode("b", 0, 0), NewNode("c", 0, 0), NewNode("d", 0, 0)
	for _, n := range []*Node{a, b, c, d} {
		p.AddChild(n)
	}
	p.SetChildIndex(a, 2)
	assertChildOrder(t, p, b, c, a, d)
	p.SetChildIndex(d, 0)
	assertChildOrder(t, p, d, b, c, a)
}

func TestIndexOf(t *testing.T) {
	p := NewNode("p", 0, 0)
	a, b := NewNode("a", 0, 0), NewNode("b", 0, 0)
	p.AddChild(a)
	if p.IndexOf(a) != 0 {
		t.Errorf("IndexOf(a) = %d, want 0", p.IndexOf(a))
	}
	if p.IndexOf(b) != -1 {
		t.Errorf("IndexOf(b) = %d, want -1", p.IndexOf(b))
	}
}

func TestDepth(t *testing.T) {
	a := NewNode("a", 0, 0)
	b := NewNode("b", 0, 0)
	c := NewNode("c", 0, 0)
	a.AddChild(b)
	b.AddChild(c)
	if a.Depth() != 0 || b.Depth() != 1 || c.Depth() != 2 {
		t.Errorf("depths = %d, %d, %d; want 0, 1, 2", a.Depth(), b.Depth(), c.Depth())
	}
}

// --- Resize listeners ---

func TestSetSizeNotifiesListeners(t *testing.T) {
	n := NewNode("n", 10, 10)
	calls := 0
	remove := n.OnResize(func(*Node) { calls++ })
	n.SetSize(20, 10)
	n.SetSize(20, 10) // unchanged
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	remove()
	n.SetSize(30, 10)
	if calls != 1 {
		t.Errorf("calls after remove = %d, want 1", calls)
	}
}

func TestSetSizeMarksParentLayoutDirty(t *testing.T) {
	list := NewContainer("list", LayoutColumn)
	c := NewNode("c", 10, 10)
	list.AddChild(c)
	list.Relayout()
	c.SetSize(10, 30)
	if !list.layoutDirty {
		t.Error("parent layout should be dirty after child resize")
	}
}

// --- Disposal ---

func TestDispose(t *testing.T) {
	p := NewNode("p", 0, 0)
	c := NewNode("c", 0, 0)
	gc := NewNode("gc", 0, 0)
	p.AddChild(c)
	c.AddChild(gc)
	c.Dispose()
	if !c.IsDisposed() || !gc.IsDisposed() {
		t.Error("c and gc should be disposed")
	}
	if p.NumChildren() != 0 {
		t.Error("c should be removed from p")
	}
	c.Dispose() // idempotent
}

func TestDebugDisposedPanics(t *testing.T) {
	globalDebug = true
	defer func() { globalDebug = false }()

	p := NewNode("p", 0, 0)
	c := NewNode("c", 0, 0)
	c.Dispose()
	defer func() {
		if recover() == nil {
			t.Error("expected panic adding a disposed node in debug mode")
		}
	}()
	p.AddChild(c)
}

func assertChildOrder(t *testing.T, p *Node, want ...*Node) {
	t.Helper()
	if p.NumChildren() != len(want) {
		t.Fatalf("NumChildren = %d, want %d", p.NumChildren(), len(want))
	}
	for i, w := range want {
		if got := p.ChildAt(i); got != w {
			t.Errorf("child %d = %q, want %q", i, got.Name, w.Name)
		}
	}
}
