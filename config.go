package rondo

import (
	"errors"
	"fmt"
	"time"

	"github.com/esimov/rondo/utils"
)

// Config holds the initial state of a painting session. The toml tags let the
// command line tool read it from a configuration file.
type Config struct {
	CanvasSize     int           `toml:"canvas_size"`
	UndoLimit      int           `toml:"undo_limit"`
	RedrawInterval time.Duration `toml:"redraw_interval"`

	Brush      BrushType `toml:"brush"`
	BrushSize  int       `toml:"brush_size"`
	Opacity    int       `toml:"opacity"`
	Smoothing  float64   `toml:"smoothing"`
	SpacingPct int       `toml:"spacing"`
	Color      string    `toml:"color"`

	// Seed drives the pencil grain. Sessions with the same seed and the same
	// input produce identical pixels.
	Seed int64 `toml:"seed"`
}

// DefaultConfig returns the settings used when nothing else is specified.
func DefaultConfig() Config {
	return Config{
		CanvasSize:     720,
		UndoLimit:      20,
		RedrawInterval: DefaultRedrawInterval,
		Brush:          BrushPencil,
		BrushSize:      22,
		Opacity:        100,
		Smoothing:      0.28,
		SpacingPct:     25,
		Color:          "#222222",
		Seed:           1,
	}
}

// Validate clamps out of range brush values and reports settings that cannot
// be corrected.
func (c *Config) Validate() error {
	if c.CanvasSize < 1 {
		return fmt.Errorf("invalid canvas size %d", c.CanvasSize)
	}
	if c.UndoLimit < 1 {
		return errors.New("the undo limit should be at least 1")
	}
	if c.RedrawInterval < 0 {
		c.RedrawInterval = 0
	}
	if c.Brush > BrushFallback {
		return fmt.Errorf("invalid brush type %v", c.Brush)
	}
	if _, err := ParseHex(c.Color); err != nil {
		return err
	}
	c.BrushSize = utils.Clamp(c.BrushSize, 1, c.CanvasSize)
	c.Opacity = utils.Clamp(c.Opacity, MinOpacity, MaxOpacity)
	c.Smoothing = utils.Clamp(c.Smoothing, MinSmoothing, MaxSmoothing)
	c.SpacingPct = utils.Clamp(c.SpacingPct, MinSpacingPct, MaxSpacingPct)
	return nil
}
