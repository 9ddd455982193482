package trellis

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Animation is a running animation started by an Animator.
type Animation interface {
	// Stop finishes the animation immediately: animated values jump to their
	// targets, its elements are removed synchronously and its completion
	// callback runs (if it has not already).
	Stop()
	// Done reports whether the animation has completed or been stopped.
	Done() bool
}

// Animator is the collaborator that moves overlays and slides sortable items.
// Implementations must call onComplete exactly once per animation.
type Animator interface {
	// AnimateReturn moves overlay to the document position to and removes it
	// when finished.
	AnimateReturn(overlay *Node, to Vec2, onComplete func()) Animation
	// AnimateSlide grows grow from zero to its current size and shrinks shrink
	// to zero along its parent's layout axis, removing both when finished.
	AnimateSlide(grow, shrink *Node, onComplete func()) Animation
}

// tweenAnim animates up to 4 float64 fields simultaneously.
type tweenAnim struct {
	tweens     [4]*gween.Tween
	fields     [4]*float64
	to         [4]float64
	count      int
	duration   float32
	layout     *Node   // relaid out after every write, may be nil
	remove     []*Node // detached on completion
	onComplete func()
	done       bool
}

func (a *tweenAnim) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	a.tweens[a.count] = gween.New(float32(*field), float32(to), duration, fn)
	a.fields[a.count] = field
	a.to[a.count] = to
	a.count++
}

// update advances all tweens by dt seconds and writes values to the fields.
func (a *tweenAnim) update(dt float32) {
	if a.done {
		return
	}
	allDone := true
	for i := 0; i < a.count; i++ {
		val, finished := a.tweens[i].Update(dt)
		if finished {
			// float32 tweening would otherwise leave the target off by a hair.
			*a.fields[i] = a.to[i]
			continue
		}
		*a.fields[i] = float64(val)
		allDone = false
	}
	if a.layout != nil {
		a.layout.markLayoutDirty()
	}
	if allDone {
		a.complete()
	}
}

func (a *tweenAnim) complete() {
	if a.done {
		return
	}
	a.done = true
	for _, n := range a.remove {
		if n.Parent != nil {
			layout := n.Parent
			n.RemoveFromParent()
			layout.Relayout()
		}
	}
	if a.onComplete != nil {
		a.onComplete()
	}
}

// Stop jumps every field to its target and completes.
func (a *tweenAnim) Stop() {
	if a.done {
		return
	}
	a.finishFields()
	a.complete()
}

func (a *tweenAnim) Done() bool { return a.done }

func (a *tweenAnim) finishFields() {
	for i := 0; i < a.count; i++ {
		*a.fields[i] = a.to[i]
	}
}

// TweenAnimator is the default Animator, built on gween tweens. Call Update
// once per frame; Scene.Update does this for the scene's animator.
type TweenAnimator struct {
	// ReturnDuration and SlideDuration are in seconds.
	ReturnDuration float32
	SlideDuration  float32
	// Ease is the easing function for every animation.
	Ease ease.TweenFunc

	active []*tweenAnim
}

// NewTweenAnimator creates an animator with the durations from opts.
func NewTweenAnimator(opts DragOptions) *TweenAnimator {
	return &TweenAnimator{
		ReturnDuration: opts.ReturnDuration,
		SlideDuration:  opts.SlideDuration,
		Ease:           ease.OutQuad,
	}
}

// AnimateReturn implements Animator.
func (t *TweenAnimator) AnimateReturn(overlay *Node, to Vec2, onComplete func()) Animation {
	// Overlays live on the scene's overlay layer, whose local space is the
	// document space.
	a := &tweenAnim{remove: []*Node{overlay}, onComplete: onComplete, duration: t.ReturnDuration}
	a.add(&overlay.X, to.X, t.ReturnDuration, t.Ease)
	a.add(&overlay.Y, to.Y, t.ReturnDuration, t.Ease)
	return t.start(a)
}

// AnimateSlide implements Animator.
func (t *TweenAnimator) AnimateSlide(grow, shrink *Node, onComplete func()) Animation {
	a := &tweenAnim{
		remove:     []*Node{grow, shrink},
		onComplete: onComplete,
		layout:     grow.Parent,
		duration:   t.SlideDuration,
	}
	growField, shrinkField := &grow.Height, &shrink.Height
	if grow.Parent != nil && grow.Parent.Layout == LayoutRow {
		growField, shrinkField = &grow.Width, &shrink.Width
	}
	target := *growField
	*growField = 0
	a.add(growField, target, t.SlideDuration, t.Ease)
	a.add(shrinkField, 0, t.SlideDuration, t.Ease)
	return t.start(a)
}

func (t *TweenAnimator) start(a *tweenAnim) Animation {
	if a.duration <= 0 {
		// Zero-length animations complete without waiting for a frame.
		a.finishFields()
		a.complete()
		return a
	}
	t.active = append(t.active, a)
	return a
}

// Update advances every running animation by dt seconds and drops finished
// ones. Animations started from a completion callback begin on the next call.
func (t *TweenAnimator) Update(dt float32) {
	n := len(t.active)
	for i := 0; i < n; i++ {
		t.active[i].update(dt)
	}
	live := t.active[:0]
	for _, a := range t.active {
		if !a.done {
			live = append(live, a)
		}
	}
	for i := len(live); i < len(t.active); i++ {
		t.active[i] = nil
	}
	t.active = live
}

// Running returns the number of animations still in flight.
func (t *TweenAnimator) Running() int {
	n := 0
	for _, a := range t.active {
		if !a.done {
			n++
		}
	}
	return n
}
