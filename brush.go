package rondo

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/esimov/rondo/utils"
)

// BrushType selects how a single dab of paint is rendered.
type BrushType uint8

const (
	// BrushPencil is a soft circular dab textured with noise. It is the default brush.
	BrushPencil BrushType = iota
	// BrushImage uses a custom source image as the dab shape.
	BrushImage
	// BrushFallback is a flat colored disc with a slightly blurred edge.
	BrushFallback
)

var brushNames = [...]string{
	BrushPencil:   "pencil",
	BrushImage:    "image",
	BrushFallback: "fallback",
}

func (b BrushType) String() string {
	if int(b) < len(brushNames) {
		return brushNames[b]
	}
	return fmt.Sprintf("BrushType(%d)", b)
}

// ParseBrushType converts a brush name into a BrushType.
func ParseBrushType(s string) (BrushType, error) {
	for i, name := range brushNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return BrushType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown brush type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (b BrushType) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *BrushType) UnmarshalText(text []byte) error {
	bt, err := ParseBrushType(string(text))
	if err != nil {
		return err
	}
	*b = bt
	return nil
}

// Brush parameter limits.
const (
	MinOpacity    = 1
	MaxOpacity    = 100
	MinSmoothing  = 0.01
	MaxSmoothing  = 1.0
	MinSpacingPct = 1
	MaxSpacingPct = 100
)

// BrushSource is a decoded custom brush image. Gen identifies the load it came
// from and is part of every stamp cache key built from it.
type BrushSource struct {
	Img   *image.NRGBA
	Alpha bool // the source carries its own transparency
	Gen   uint64
}

// BrushConfig holds the parameters the stroke rasterizer reads on every stamp.
type BrushConfig struct {
	Type       BrushType
	Size       int // diameter in pixels
	Opacity    int // 1..100
	Smoothing  float64
	SpacingPct int
	Color      color.NRGBA
	Source     *BrushSource
}

// normalize clamps every field into its valid range.
func (b BrushConfig) normalize() BrushConfig {
	b.Size = utils.Max(b.Size, 1)
	b.Opacity = utils.Clamp(b.Opacity, MinOpacity, MaxOpacity)
	b.Smoothing = utils.Clamp(b.Smoothing, MinSmoothing, MaxSmoothing)
	b.SpacingPct = utils.Clamp(b.SpacingPct, MinSpacingPct, MaxSpacingPct)
	b.Color.A = 0xff
	return b
}

// alpha8 converts the 1..100 opacity into an 8 bit alpha value.
func (b BrushConfig) alpha8() uint8 {
	return uint8(math.Round(float64(utils.Clamp(b.Opacity, MinOpacity, MaxOpacity)) * 255 / 100))
}

// step returns the distance in pixels between two interpolated stamps.
// Image brushes are spaced by a percentage of their size, the other brushes
// by the smoothing factor.
func (b BrushConfig) step() float64 {
	step := float64(b.Size) * b.Smoothing
	if b.Type == BrushImage {
		step = float64(b.Size) * float64(b.SpacingPct) / 100
	}
	return utils.Max(step, 1)
}
