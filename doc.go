// Package trellis is a retained-mode interaction library for [Ebitengine].
//
// Trellis provides an element tree with a scrollable, resizable viewport, and
// on top of it drag-and-drop, sortable lists and anchored pop-up placement.
// All of these share one spatial region engine that maps pointer positions to
// tracked rectangles.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	scene := trellis.NewScene(640, 480)
//	// ... add nodes ...
//	trellis.Run(scene, trellis.RunConfig{
//		Title: "My App", Width: 640, Height: 480,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly.
//
// # Element tree
//
// Every element is a [Node]. The scene root is the viewport: its size is the
// window size, its scroll offset is the page scroll, and its content size is
// the document size. Node positions are relative to the parent's box and
// shifted by the parent's scroll offset. [Node.Offset] returns the position
// in document coordinates, which do not depend on the viewport's scroll.
//
//	list := trellis.NewContainer("list", trellis.LayoutColumn)
//	list.SetSize(200, 300)
//	scene.Root().AddChild(list)
//
// # Regions
//
// A [RegionIndex] tracks rectangles in document coordinates together with
// the ancestor scroll offset at measurement time. [RegionIndex.FindBeneath]
// corrects each region for scrolling that happened since, so scrolling never
// requires re-measuring. Resizes and reflows do: call
// [RegionIndex.RecalculateAll] or [RegionIndex.RecalculateSubset].
//
// # Drag and drop
//
// [Scene.MakeDraggable] returns a [DragSession] for a node. Pointer input (real
// or injected with [Scene.InjectDrag]) starts, moves and stops it. Hovering
// near the edge of a scrollable region starts an [AutoscrollScheduler] driven
// by the scene's virtual clock ([Timers]). Host callbacks live in
// [DragHandlers]; every slot has a default.
//
// # Sortable lists and pop-ups
//
// [NewSortable] reorders a list's children by dragging, animating each move
// with the scene's [Animator]. [Scene.AttachPopup] keeps an overlay placed
// next to a target with [Placement], re-placing it on resize, content size
// change and scroll.
//
// # Logging and configuration
//
// Trellis logs through [github.com/charmbracelet/log]; it is silent until
// [SetLogger] or [Scene.SetDebugMode] is called. [LoadConfig] reads YAML or
// TOML configuration.
//
// # Scripted input
//
// [LoadTestScript] parses a YAML or JSON list of steps (press, move, release,
// drag, wait, scroll, resize, screenshot). Attach it with
// [Scene.SetTestRunner]; one step runs per frame. [Scene.Screenshot] writes a
// PNG of the viewport plus a YAML file with the active drags to
// [Scene.ScreenshotDir], without needing a window.
//
// [Ebitengine]: https://ebitengine.org
package trellis
