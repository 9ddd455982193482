package trellis

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/image/vector"
	"gopkg.in/yaml.v3"
)

// defaultScreenshotDir is where Screenshot writes unless ScreenshotDir is set.
const defaultScreenshotDir = "screenshots"

// frameState is the drag state written next to every capture.
type frameState struct {
	Label    string      `yaml:"label"`
	Time     string      `yaml:"time"`
	Viewport viewState   `yaml:"viewport"`
	Drags    []dragState `yaml:"drags,omitempty"`
}

type viewState struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	ScrollX float64 `yaml:"scrollX"`
	ScrollY float64 `yaml:"scrollY"`
}

type dragState struct {
	Source     string     `yaml:"source"`
	Pointer    [2]float64 `yaml:"pointer,flow"`
	Axes       [2]int     `yaml:"axes,flow"`
	Hovered    string     `yaml:"hovered,omitempty"`
	Autoscroll string     `yaml:"autoscroll,omitempty"`
}

// Screenshot rasterizes the viewport as it would be drawn now and writes it
// to ScreenshotDir as NNN_label.png, with the scroll position and every
// active drag written alongside as NNN_label.yaml. It returns the PNG path.
// Captures need no graphics context, so scripted replays can take them
// headlessly.
func (s *Scene) Screenshot(label string) (string, error) {
	if err := os.MkdirAll(s.ScreenshotDir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	s.shots++
	base := filepath.Join(s.ScreenshotDir, fmt.Sprintf("%03d_%s", s.shots, sanitizeLabel(label)))

	w, h := int(math.Ceil(s.root.Width)), int(math.Ceil(s.root.Height))
	s.commands = s.collect(s.commands[:0], image.Rect(0, 0, w, h))
	if err := writePNG(base+".png", rasterize(s.commands, w, h)); err != nil {
		return "", err
	}
	data, err := yaml.Marshal(s.frameState(label))
	if err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	if err := os.WriteFile(base+".yaml", data, 0o644); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	logger.Debug("screenshot written", "path", base+".png", "drags", len(s.sessions))
	return base + ".png", nil
}

// frameState reports the viewport and every session that is dragging, in
// source ID order.
func (s *Scene) frameState(label string) frameState {
	st := frameState{
		Label: label,
		Time:  s.timers.Now().String(),
		Viewport: viewState{
			Width:   s.root.Width,
			Height:  s.root.Height,
			ScrollX: s.root.ScrollX,
			ScrollY: s.root.ScrollY,
		},
	}
	ids := make([]uint32, 0, len(s.sessions))
	for id, sess := range s.sessions {
		if sess.phase == DragDragging {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		sess := s.sessions[id]
		d := dragState{
			Source:  sess.source.Name,
			Pointer: [2]float64{sess.pointer.X, sess.pointer.Y},
			Axes:    [2]int{sess.axes.X, sess.axes.Y},
		}
		if sess.hovered != nil {
			d.Hovered = sess.hovered.Owner.Name
		}
		if c := sess.scroller.Active(); c != nil {
			d.Autoscroll = c.Name
		}
		st.Drags = append(st.Drags, d)
	}
	return st
}

// rasterize fills every command's box, clipped, onto a w x h image in
// painter order. Outlines are not drawn.
func rasterize(cmds []boxCommand, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var z vector.Rasterizer
	for i := range cmds {
		cmd := &cmds[i]
		r := cmd.rect
		x0 := math.Max(r.X, float64(cmd.clip.Min.X))
		y0 := math.Max(r.Y, float64(cmd.clip.Min.Y))
		x1 := math.Min(r.X+r.Width, float64(cmd.clip.Max.X))
		y1 := math.Min(r.Y+r.Height, float64(cmd.clip.Max.Y))
		dst := image.Rect(int(math.Floor(x0)), int(math.Floor(y0)), int(math.Ceil(x1)), int(math.Ceil(y1))).Intersect(img.Bounds())
		if dst.Empty() {
			continue
		}
		// Path in dst-local coordinates.
		ox, oy := float64(dst.Min.X), float64(dst.Min.Y)
		z.Reset(dst.Dx(), dst.Dy())
		z.MoveTo(float32(x0-ox), float32(y0-oy))
		z.LineTo(float32(x1-ox), float32(y0-oy))
		z.LineTo(float32(x1-ox), float32(y1-oy))
		z.LineTo(float32(x0-ox), float32(y1-oy))
		z.ClosePath()
		z.Draw(img, dst, image.NewUniform(cmd.color.toRGBA()), image.Point{})
	}
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("screenshot: encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel keeps letters, digits, '-' and '.', replacing anything else
// with '_'. Empty labels become "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
