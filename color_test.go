package rondo

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColor_HexRoundTrip(t *testing.T) {
	cs := NewColorState(HSV{0, 0, 0})
	cs.SetHue(0.5)
	cs.SetSaturationValue(0.8, 0.9)

	hex := cs.ToHex()
	c, err := ParseHex(hex)
	require.NoError(t, err)

	back := RGBToHSV(c)
	assert.Equal(t, hex, back.Hex())
	assert.InDelta(t, 0.5, back.H, 0.01)
	assert.InDelta(t, 0.8, back.S, 0.01)
	assert.InDelta(t, 0.9, back.V, 0.01)
}

func TestColor_SetHueKeepsSaturationAndValue(t *testing.T) {
	cs := NewColorState(HSV{0.1, 0.4, 0.6})
	cs.SetHue(0.7)
	assert.Equal(t, HSV{0.7, 0.4, 0.6}, cs.Pending)

	cs.SetSaturationValue(0, 0)
	cs.SetHue(0.3)
	cs.SetSaturationValue(1, 1)
	assert.Equal(t, 0.3, cs.Pending.H, "hue survives a trip through black")

	cs.SetHue(4)
	cs.SetSaturationValue(-1, 2)
	assert.Equal(t, HSV{1, 0, 1}, cs.Pending)
}

func TestColor_PendingVsCommitted(t *testing.T) {
	start := HSV{0, 0, 0.2}
	cs := NewColorState(start)

	cs.SetHue(0.25)
	cs.SetSaturationValue(1, 1)
	assert.Equal(t, start, cs.Committed, "setters only touch the pending color")

	cs.Confirm()
	assert.Equal(t, cs.Pending, cs.Committed)
	assert.Equal(t, color.NRGBA{R: 128, G: 255, B: 0, A: 255}, cs.Committed.RGB())
}

func TestColor_ParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"#222222", color.NRGBA{0x22, 0x22, 0x22, 0xff}, true},
		{"ff8800", color.NRGBA{0xff, 0x88, 0x00, 0xff}, true},
		{"#fa0", color.NRGBA{0xff, 0xaa, 0x00, 0xff}, true},
		{"#12345", color.NRGBA{}, false},
		{"#gggggg", color.NRGBA{}, false},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if !tt.ok {
			assert.Error(t, err, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestColor_PrimaryConversions(t *testing.T) {
	assert.Equal(t, "#ff0000", HSV{0, 1, 1}.Hex())
	assert.Equal(t, "#ff0000", HSV{1, 1, 1}.Hex())
	assert.Equal(t, "#00ff00", HSV{1.0 / 3, 1, 1}.Hex())
	assert.Equal(t, "#0000ff", HSV{2.0 / 3, 1, 1}.Hex())
	assert.Equal(t, "#808080", HSV{0.6, 0, 0.5}.Hex())

	assert.Equal(t, HSV{0, 0, 0}, RGBToHSV(color.NRGBA{A: 255}))
}
