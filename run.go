package trellis

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// ClearColor fills the screen before drawing. Zero leaves it black.
	ClearColor Color
	// ShowFPS prints FPS and TPS in the top-left corner.
	ShowFPS bool
	// Resizable lets the user resize the window; the viewport follows.
	Resizable bool
}

type game struct {
	scene *Scene
	cfg   RunConfig
	clear color.RGBA
}

func (g *game) Update() error {
	g.scene.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.cfg.ClearColor != (Color{}) {
		screen.Fill(g.clear)
	}
	g.scene.Draw(screen)
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

// Layout follows the outside size so the viewport tracks window resizes.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	root := g.scene.root
	w, h := float64(outsideWidth), float64(outsideHeight)
	if root.Width != w || root.Height != h {
		g.scene.SetViewportSize(w, h)
	}
	return outsideWidth, outsideHeight
}

// Run opens a window and drives scene until the window is closed.
func Run(scene *Scene, cfg RunConfig) error {
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	g := &game{scene: scene, cfg: cfg, clear: cfg.ClearColor.toRGBA()}
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("trellis: run: %w", err)
	}
	return nil
}
