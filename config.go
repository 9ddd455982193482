package trellis

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DragOptions configures drag sessions and the autoscroll scheduler.
type DragOptions struct {
	// ScrollDelta is the number of pixels scrolled per autoscroll tick and axis.
	ScrollDelta float64 `yaml:"scroll_delta" toml:"scroll_delta"`
	// ScrollDelay is the wait between arming autoscroll and the first scroll.
	ScrollDelay time.Duration `yaml:"scroll_delay" toml:"scroll_delay"`
	// ScrollInterval is the wait between subsequent scroll ticks.
	ScrollInterval time.Duration `yaml:"scroll_interval" toml:"scroll_interval"`
	// EdgeThreshold is the distance from a container edge that arms autoscroll.
	EdgeThreshold float64 `yaml:"edge_threshold" toml:"edge_threshold"`
	// DeadZone is the pointer travel in pixels before a press becomes a drag.
	DeadZone float64 `yaml:"dead_zone" toml:"dead_zone"`
	// ReturnDuration is the length of the overlay return animation, in seconds.
	ReturnDuration float32 `yaml:"return_duration" toml:"return_duration"`
	// SlideDuration is the length of sortable slide animations, in seconds.
	SlideDuration float32 `yaml:"slide_duration" toml:"slide_duration"`
}

// PlacementStyle selects the post-placement adjustment for anchored overlays.
type PlacementStyle string

const (
	StyleCorner   PlacementStyle = "corner"   // arrow at a corner, nudged on both axes
	StyleCentered PlacementStyle = "centered" // arrow centered on one edge
)

// PlacementOptions configures anchored overlay placement.
type PlacementOptions struct {
	ClipToViewport bool           `yaml:"clip_to_viewport" toml:"clip_to_viewport"`
	Center         bool           `yaml:"center" toml:"center"`
	FollowPointer  bool           `yaml:"follow_pointer" toml:"follow_pointer"`
	Style          PlacementStyle `yaml:"style" toml:"style"`
	// ArrowWidth and ArrowHeight are the arrow glyph's size.
	ArrowWidth  float64 `yaml:"arrow_width" toml:"arrow_width"`
	ArrowHeight float64 `yaml:"arrow_height" toml:"arrow_height"`
	// PointerDelta is the gap left between target and overlay for the arrow.
	PointerDelta float64 `yaml:"pointer_delta" toml:"pointer_delta"`
}

// Config is the full user-editable configuration.
type Config struct {
	Drag      DragOptions      `yaml:"drag" toml:"drag"`
	Placement PlacementOptions `yaml:"placement" toml:"placement"`
	Debug     bool             `yaml:"debug" toml:"debug"`
}

// Env var names used as overrides.
const (
	EnvDebug       = "TRELLIS_DEBUG"
	EnvScrollDelta = "TRELLIS_SCROLL_DELTA"
)

// DefaultDragOptions returns the drag defaults.
func DefaultDragOptions() DragOptions {
	return DragOptions{
		ScrollDelta:    20,
		ScrollDelay:    400 * time.Millisecond,
		ScrollInterval: 50 * time.Millisecond,
		EdgeThreshold:  30,
		DeadZone:       defaultDragDeadZone,
		ReturnDuration: 0.25,
		SlideDuration:  0.15,
	}
}

// DefaultPlacementOptions returns the placement defaults.
func DefaultPlacementOptions() PlacementOptions {
	return PlacementOptions{
		ClipToViewport: true,
		Style:          StyleCorner,
		ArrowWidth:     10,
		ArrowHeight:    10,
		PointerDelta:   4,
	}
}

// DefaultConfig returns the library defaults.
func DefaultConfig() Config {
	return Config{
		Drag:      DefaultDragOptions(),
		Placement: DefaultPlacementOptions(),
	}
}

// ParseConfig decodes data in the given format ("yaml" or "toml") over the
// defaults, then applies environment overrides.
func ParseConfig(data []byte, format string) (Config, error) {
	cfg := DefaultConfig()
	switch strings.ToLower(format) {
	case "yaml", "yml", "":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse yaml config: %w", err)
		}
	case "toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("parse toml config: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("parse config: unknown format %q", format)
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a config file, picking the decoder from the extension.
// A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return ParseConfig(nil, "yaml")
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	return ParseConfig(data, format)
}

// Validate reports settings the engine cannot run with.
func (c Config) Validate() error {
	if c.Drag.ScrollDelta < 0 {
		return fmt.Errorf("config: drag.scroll_delta must not be negative")
	}
	if c.Drag.ScrollInterval <= 0 {
		return fmt.Errorf("config: drag.scroll_interval must be positive")
	}
	if c.Drag.ScrollDelay < 0 {
		return fmt.Errorf("config: drag.scroll_delay must not be negative")
	}
	switch c.Placement.Style {
	case StyleCorner, StyleCentered:
	default:
		return fmt.Errorf("config: unknown placement.style %q", c.Placement.Style)
	}
	return nil
}

// YAML renders the config as YAML.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvDebug); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvDebug, err)
		}
		c.Debug = b
	}
	if v := os.Getenv(EnvScrollDelta); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvScrollDelta, err)
		}
		c.Drag.ScrollDelta = f
	}
	return nil
}
