package rondo

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/esimov/rondo/utils"
)

// HSV is a color expressed as hue, saturation and value, each in [0, 1].
type HSV struct {
	H, S, V float64
}

// RGB converts the color to 8 bit RGB, rounding each channel.
func (c HSV) RGB() color.NRGBA {
	r, g, b := hsvToRGB(c.H, c.S, c.V)
	return color.NRGBA{
		R: uint8(math.Round(r * 255)),
		G: uint8(math.Round(g * 255)),
		B: uint8(math.Round(b * 255)),
		A: 0xff,
	}
}

// Hex returns the color as a "#rrggbb" string.
func (c HSV) Hex() string {
	rgb := c.RGB()
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

func hsvToRGB(h, s, v float64) (r, g, b float64) {
	if s == 0 {
		return v, v, v
	}
	i := math.Floor(h * 6)
	f := h*6 - i
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	switch int(i) % 6 {
	case 0:
		return v, t, p
	case 1:
		return q, v, p
	case 2:
		return p, v, t
	case 3:
		return p, q, v
	case 4:
		return t, p, v
	default:
		return v, p, q
	}
}

// RGBToHSV derives hue, saturation and value from an 8 bit color.
// Hue is meaningless for grays and is reported as 0.
func RGBToHSV(c color.NRGBA) HSV {
	r, g, b := float64(c.R)/255, float64(c.G)/255, float64(c.B)/255
	maxc := math.Max(r, math.Max(g, b))
	minc := math.Min(r, math.Min(g, b))

	v := maxc
	if maxc == minc {
		return HSV{0, 0, v}
	}
	d := maxc - minc
	s := d / maxc

	rc := (maxc - r) / d
	gc := (maxc - g) / d
	bc := (maxc - b) / d

	var h float64
	switch maxc {
	case r:
		h = bc - gc
	case g:
		h = 2 + rc - bc
	default:
		h = 4 + gc - rc
	}
	h = math.Mod(h/6, 1)
	if h < 0 {
		h++
	}
	return HSV{h, s, v}
}

// ParseHex parses "#rgb" or "#rrggbb" (the leading # is optional).
func ParseHex(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// FromHex derives the HSV triple of a hex color.
func FromHex(s string) (HSV, error) {
	c, err := ParseHex(s)
	if err != nil {
		return HSV{}, err
	}
	return RGBToHSV(c), nil
}

// ColorState is the brush color model. The HSV triples are authoritative and
// are never re-derived from their 8 bit rendering, which would make the hue
// drift whenever saturation or value approach zero.
//
// A color picker edits Pending; strokes read Committed. Only Confirm moves the
// pending color into the brush.
type ColorState struct {
	Pending   HSV
	Committed HSV
}

// NewColorState returns a state where the pending and committed colors are both c.
func NewColorState(c HSV) ColorState {
	return ColorState{Pending: c, Committed: c}
}

// SetHue changes the pending hue and leaves saturation and value alone.
func (cs *ColorState) SetHue(h float64) {
	cs.Pending.H = utils.Clamp(h, 0, 1)
}

// SetSaturationValue changes the pending saturation and value and leaves the hue alone.
func (cs *ColorState) SetSaturationValue(s, v float64) {
	cs.Pending.S = utils.Clamp(s, 0, 1)
	cs.Pending.V = utils.Clamp(v, 0, 1)
}

// Confirm copies the pending color into the committed brush color.
func (cs *ColorState) Confirm() {
	cs.Committed = cs.Pending
}

// ToHex returns the pending color as "#rrggbb", the value a picker previews.
func (cs *ColorState) ToHex() string {
	return cs.Pending.Hex()
}
