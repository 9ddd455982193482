package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/trellis"
)

var demoPalette = []trellis.Color{
	{R: 0.91, G: 0.45, B: 0.38, A: 1},
	{R: 0.96, G: 0.76, B: 0.33, A: 1},
	{R: 0.45, G: 0.78, B: 0.52, A: 1},
	{R: 0.36, G: 0.62, B: 0.86, A: 1},
	{R: 0.62, G: 0.49, B: 0.85, A: 1},
}

// demo is the scene opened by the demo command.
type demo struct {
	scene    *trellis.Scene
	list     *trellis.Sortable
	zones    []*trellis.Node
	card     *trellis.Node
	tooltip  *trellis.Popup
	reorders int
}

// logSink forwards drag events to a logger at debug level.
type logSink struct {
	logger *log.Logger
}

func (s logSink) EmitEvent(ev trellis.DragEvent) {
	if ev.Kind == trellis.EventDragMove {
		return
	}
	s.logger.Debug(ev.Kind.String(), "source", ev.Source, "target", ev.Target, "x", ev.X, "y", ev.Y)
}

// buildDemo lays out a scrollable sortable list on the left, a card that can
// be dropped into either of two zones on the right, and a tooltip anchored to
// the card.
func buildDemo(cfg trellis.Config, width, height float64, items int, logger *log.Logger) *demo {
	s := trellis.NewSceneWithConfig(cfg, width, height)
	s.SetEventSink(logSink{logger: logger})
	d := &demo{scene: s}

	list := trellis.NewContainer("list", trellis.LayoutColumn)
	list.SetPosition(20, 20)
	list.SetSize(220, height-40)
	list.Padding = trellis.Insets{Top: 6, Right: 6, Bottom: 6, Left: 6}
	list.Color = trellis.Color{R: 0.18, G: 0.2, B: 0.24, A: 1}
	s.Root().AddChild(list)
	for i := 0; i < items; i++ {
		item := trellis.NewNode(fmt.Sprintf("item-%d", i+1), 208, 48)
		item.Margin = trellis.Insets{Bottom: 6}
		item.Color = demoPalette[i%len(demoPalette)]
		list.AddChild(item)
	}
	d.list = trellis.NewSortable(s, list, trellis.SortConfig{
		OnReorder: func(item *trellis.Node, from, to int) {
			d.reorders++
			logger.Info("reordered", "item", item.Name, "from", from, "to", to)
		},
	})

	zones := trellis.NewRegionIndex()
	for i := 0; i < 2; i++ {
		zone := trellis.NewNode(fmt.Sprintf("zone-%d", i+1), 240, (height-60)/2)
		zone.SetPosition(280, 20+float64(i)*((height-60)/2+20))
		zone.Padding = trellis.Insets{Top: 10, Right: 10, Bottom: 10, Left: 10}
		zone.Color = trellis.Color{R: 0.24, G: 0.27, B: 0.32, A: 1}
		s.Root().AddChild(zone)
		zones.Track(zone, nil, nil)
		d.zones = append(d.zones, zone)
	}

	d.card = trellis.NewNode("card", 120, 80)
	d.card.Color = trellis.Color{R: 0.93, G: 0.93, B: 0.9, A: 1}
	d.zones[0].AddChild(d.card)
	d.card.SetPosition(10, 10)
	s.MakeDraggable(d.card, trellis.DragConfig{
		Regions: zones,
		Handlers: trellis.DragHandlers{
			OnDrop: func(_ *trellis.DragSession, r *trellis.Region, off trellis.Vec2) {
				logger.Info("dropped card", "zone", r.Owner.Name, "x", off.X, "y", off.Y)
			},
		},
	})

	tip := trellis.NewNode("tooltip", 140, 36)
	tip.Color = trellis.Color{R: 0.1, G: 0.1, B: 0.12, A: 0.9}
	d.tooltip = s.AttachPopup(tip, d.card, trellis.PlacementConfig{})
	return d
}

// maxReplayFrames bounds a headless script replay.
const maxReplayFrames = 10000

// replay steps scene at 60 TPS until runner has executed every step.
func replay(scene *trellis.Scene, runner *trellis.TestRunner) error {
	for i := 0; i < maxReplayFrames; i++ {
		if runner.Done() {
			return nil
		}
		scene.Step(time.Second / 60)
	}
	return fmt.Errorf("demo: script still running after %d frames", maxReplayFrames)
}

func (c *CLI) demoCommand() *cobra.Command {
	var (
		width, height int
		items         int
		dump          bool
		fps           bool
		script        string
	)
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Open a window with a sortable list, drop zones and a popup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if items < 1 {
				return fmt.Errorf("demo: --items must be at least 1")
			}
			d := buildDemo(cfg, float64(width), float64(height), items, c.Logger)
			if c.Logger.GetLevel() <= log.DebugLevel {
				trellis.SetLogger(c.Logger)
			}
			var runner *trellis.TestRunner
			if script != "" {
				data, err := os.ReadFile(script)
				if err != nil {
					return fmt.Errorf("demo: %w", err)
				}
				if runner, err = trellis.LoadTestScript(data); err != nil {
					return err
				}
				d.scene.SetTestRunner(runner)
			}
			if dump {
				if runner != nil {
					if err := replay(d.scene, runner); err != nil {
						return err
					}
					c.Logger.Info("script finished", "reorders", d.reorders)
				}
				d.scene.RecalculateRegions()
				fmt.Fprint(cmd.OutOrStdout(), trellis.DumpTree(d.scene.Root()))
				return nil
			}
			c.Logger.Info("opening demo window", "width", width, "height", height, "items", items)
			return trellis.Run(d.scene, trellis.RunConfig{
				Title:      "trellis demo",
				Width:      width,
				Height:     height,
				ClearColor: trellis.Color{R: 0.12, G: 0.13, B: 0.15, A: 1},
				ShowFPS:    fps,
				Resizable:  true,
			})
		},
	}
	cmd.Flags().IntVar(&width, "width", 560, "window width")
	cmd.Flags().IntVar(&height, "height", 480, "window height")
	cmd.Flags().IntVar(&items, "items", 12, "number of sortable items")
	cmd.Flags().BoolVar(&dump, "dump", false, "print the scene tree instead of opening a window")
	cmd.Flags().BoolVar(&fps, "fps", false, "show FPS and TPS")
	cmd.Flags().StringVar(&script, "script", "", "drive the demo with a test script (YAML or JSON)")
	return cmd
}
