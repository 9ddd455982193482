package trellis

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// overlayZIndex keeps the overlay layer above the document when drawn.
const overlayZIndex = 1000

// Scene is the top-level object that owns the element tree, the overlay layer,
// the virtual clock, the animator, drag sessions and pointer state.
type Scene struct {
	// ScreenshotDir is the directory Screenshot writes PNG files to.
	ScreenshotDir string

	root     *Node
	overlays *Node
	sink     EventSink
	debug    bool
	config   Config

	timers   Timers
	animator Animator

	sessions map[uint32]*DragSession
	handles  *RegionIndex
	popups   []*Popup

	// Per-frame state
	commands   []boxCommand
	testRunner *TestRunner
	shots      int

	// Input state
	pointer      pointerState
	dragDeadZone float64
	injectQueue  []syntheticPointerEvent
}

// NewScene creates a scene whose root is a viewport of the given size, using
// the default configuration.
func NewScene(width, height float64) *Scene {
	return NewSceneWithConfig(DefaultConfig(), width, height)
}

// NewSceneWithConfig creates a scene with an explicit configuration.
func NewSceneWithConfig(cfg Config, width, height float64) *Scene {
	root := NewNode("viewport", width, height)
	root.viewport = true
	overlays := NewNode("overlays", 0, 0)
	overlays.SetZIndex(overlayZIndex)
	s := &Scene{
		ScreenshotDir: defaultScreenshotDir,
		root:          root,
		overlays:      overlays,
		config:        cfg,
		animator:      NewTweenAnimator(cfg.Drag),
		sessions:      make(map[uint32]*DragSession),
		handles:       NewRegionIndex(),
		dragDeadZone:  cfg.Drag.DeadZone,
	}
	if cfg.Debug {
		s.SetDebugMode(true)
	}
	return s
}

// Root returns the viewport node. Its size is the viewport size, its scroll
// is the viewport scroll and its content size is the document size.
func (s *Scene) Root() *Node {
	return s.root
}

// Overlays returns the overlay layer. Children of the layer are positioned in
// document coordinates and drawn above the document.
func (s *Scene) Overlays() *Node {
	return s.overlays
}

// Config returns the scene's configuration.
func (s *Scene) Config() Config {
	return s.config
}

// Timers returns the scene's virtual clock.
func (s *Scene) Timers() *Timers {
	return &s.timers
}

// Animator returns the animator used for overlay returns and sortable slides.
func (s *Scene) Animator() Animator {
	return s.animator
}

// SetAnimator replaces the animator. If a implements Update(dt float32), the
// scene calls it every frame.
func (s *Scene) SetAnimator(a Animator) {
	s.animator = a
}

// SetEventSink sets the optional receiver for drag events.
func (s *Scene) SetEventSink(sink EventSink) {
	s.sink = sink
}

// Popups returns the attached popups. The returned slice MUST NOT be mutated.
func (s *Scene) Popups() []*Popup {
	return s.popups
}

// SetViewportSize resizes the viewport, re-measures every region index used by
// the scene's drag sessions and re-places every popup.
func (s *Scene) SetViewportSize(width, height float64) {
	s.root.SetSize(width, height)
	s.root.SetScroll(s.root.ScrollX, s.root.ScrollY)
	s.RecalculateRegions()
	for _, p := range s.popups {
		p.Reposition()
	}
}

// RecalculateRegions re-measures every region index known to the scene.
func (s *Scene) RecalculateRegions() {
	updateLayout(s.root)
	seen := map[*RegionIndex]bool{s.handles: true}
	s.handles.RecalculateAll()
	for _, sess := range s.sessions {
		if !seen[sess.regions] {
			seen[sess.regions] = true
			sess.regions.RecalculateAll()
		}
	}
}

// Update advances the scene by one Ebitengine tick.
func (s *Scene) Update() {
	s.Step(time.Second / time.Duration(ebiten.TPS()))
}

// Step advances the scene by dt: flow layout, the attached test script,
// pointer input, timers, animations, then popups whose targets moved.
func (s *Scene) Step(dt time.Duration) {
	updateLayout(s.root)
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()
	s.timers.Advance(dt)
	if u, ok := s.animator.(interface{ Update(dt float32) }); ok {
		u.Update(float32(dt.Seconds()))
	}
	for _, p := range s.popups {
		p.follow()
	}
}

func (s *Scene) emit(ev DragEvent) {
	if s.sink != nil {
		s.sink.EmitEvent(ev)
	}
}

// newOverlay builds the floating copy of src on the overlay layer.
func (s *Scene) newOverlay(src *Node) *Node {
	o := NewNode(src.Name+"-overlay", src.Width, src.Height)
	o.Color = src.Color
	o.Alpha = src.Alpha * 0.8
	o.Padding = src.Padding
	o.UserData = src
	pos := src.Offset()
	o.SetPosition(pos.X, pos.Y)
	s.overlays.AddChild(o)
	return o
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are logged, and drag,
// autoscroll and placement decisions are logged at debug level to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
	if enabled {
		SetLogger(newDebugLogger())
	} else {
		SetLogger(nil)
	}
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool
