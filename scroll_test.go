package trellis

import "testing"

func TestCumulativeScroll(t *testing.T) {
	s := NewScene(400, 300)
	s.Root().ContentHeight = 1000
	s.Root().SetScroll(0, 100)

	outer := NewNode("outer", 200, 200)
	outer.ContentWidth, outer.ContentHeight = 400, 800
	inner := NewNode("inner", 100, 100)
	inner.ContentHeight = 300
	leaf := NewNode("leaf", 10, 10)
	s.Root().AddChild(outer)
	outer.AddChild(inner)
	inner.AddChild(leaf)

	outer.SetScroll(30, 40)
	inner.SetScroll(0, 5)
	leaf.ScrollX = 99 // self is excluded

	if got := CumulativeScroll(leaf); got != (Vec2{30, 45}) {
		t.Errorf("CumulativeScroll(leaf) = %v, want (30, 45)", got)
	}
	if got := CumulativeScroll(inner); got != (Vec2{30, 40}) {
		t.Errorf("CumulativeScroll(inner) = %v, want (30, 40)", got)
	}
	if got := CumulativeScroll(outer); got != (Vec2{}) {
		t.Errorf("CumulativeScroll(outer) = %v, want zero: root scroll is excluded", got)
	}
	if got := CumulativeScroll(s.Root()); got != (Vec2{}) {
		t.Errorf("CumulativeScroll(root) = %v, want zero", got)
	}
}
