package trellis

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default node color.
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts to a premultiplied color.RGBA for submission to Ebitengine.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions, offsets, sizes, and deltas
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Origin returns the top-left corner.
func (r Rect) Origin() Vec2 { return Vec2{r.X, r.Y} }

// Size returns the width and height as a vector.
func (r Rect) Size() Vec2 { return Vec2{r.Width, r.Height} }

// Range is a closed [Min, Max] interval on one axis.
type Range struct {
	Min, Max float64
}

// Contains reports whether v lies in [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Insets holds per-edge distances (margin, padding).
type Insets struct {
	Top, Right, Bottom, Left float64
}

// Horizontal returns Left + Right.
func (i Insets) Horizontal() float64 { return i.Left + i.Right }

// Vertical returns Top + Bottom.
func (i Insets) Vertical() float64 { return i.Top + i.Bottom }

// Axes is the autoscroll axis vector. Each component is -1 (near edge),
// 0 or +1 (far edge).
type Axes struct {
	X, Y int
}

// IsZero reports whether neither axis is active.
func (a Axes) IsZero() bool { return a.X == 0 && a.Y == 0 }

// LayoutKind selects how a node positions its children.
type LayoutKind uint8

const (
	LayoutNone   LayoutKind = iota // children keep their explicit X/Y
	LayoutColumn                   // children stacked top to bottom
	LayoutRow                      // children stacked left to right
)

// EventKind identifies a drag-and-drop notification.
type EventKind uint8

const (
	EventDragStart  EventKind = iota // a session entered the Dragging phase
	EventDragMove                    // the overlay moved
	EventHoverEnter                  // an accepted region became hovered
	EventHoverExit                   // the hovered region was left
	EventDrop                        // the session resolved onto a region
	EventDragEnd                     // the session returned to Idle
	EventReorder                     // a sortable item changed index
)

var eventKindNames = [...]string{
	EventDragStart:  "drag-start",
	EventDragMove:   "drag-move",
	EventHoverEnter: "hover-enter",
	EventHoverExit:  "hover-exit",
	EventDrop:       "drop",
	EventDragEnd:    "drag-end",
	EventReorder:    "reorder",
}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "unknown"
}
