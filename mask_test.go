package rondo

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMask_CircleMaskHardEdge(t *testing.T) {
	m := CircleMask(9, 0)
	assert.Equal(t, image.Rect(0, 0, 9, 9), m.Rect)

	assert.Equal(t, uint8(255), m.GrayAt(4, 4).Y)
	assert.Equal(t, uint8(255), m.GrayAt(0, 4).Y)
	assert.Equal(t, uint8(255), m.GrayAt(4, 8).Y)
	assert.Equal(t, uint8(0), m.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(0), m.GrayAt(8, 8).Y)

	for _, v := range m.Pix {
		assert.Contains(t, []uint8{0, 255}, v)
	}
	// Symmetric around both axes.
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			assert.Equal(t, m.GrayAt(x, y), m.GrayAt(8-x, y))
			assert.Equal(t, m.GrayAt(x, y), m.GrayAt(x, 8-y))
		}
	}
}

func TestMask_CircleMaskBlurred(t *testing.T) {
	hard := CircleMask(30, 0)
	soft := CircleMask(30, 2)
	assert.Equal(t, hard.Rect, soft.Rect)

	assert.Greater(t, soft.GrayAt(15, 15).Y, uint8(250))
	assert.Less(t, soft.GrayAt(0, 0).Y, uint8(40))

	// The blur spreads the edge: some pixels end up strictly between 0 and 255.
	var partial int
	for _, v := range soft.Pix {
		if v > 0 && v < 255 {
			partial++
		}
	}
	assert.Greater(t, partial, 0)
}

func TestMask_TinyMasks(t *testing.T) {
	m := CircleMask(1, 0)
	assert.Equal(t, []uint8{255}, m.Pix)

	m = CircleMask(0, 0)
	assert.Equal(t, image.Rect(0, 0, 1, 1), m.Rect)
}

func TestMask_EllipseRotation(t *testing.T) {
	flat := EllipseMask(20, 10, 0, 0)
	assert.Equal(t, image.Rect(0, 0, 20, 10), flat.Rect)

	full := EllipseMask(20, 10, 0, 360)
	assert.Equal(t, flat.Pix, full.Pix)

	upright := EllipseMask(20, 10, 0, 90)
	assert.Equal(t, image.Rect(0, 0, 10, 20), upright.Rect)
	assert.Equal(t, uint8(255), upright.GrayAt(5, 10).Y)
	assert.Equal(t, uint8(0), upright.GrayAt(0, 0).Y)

	tilted := EllipseMask(20, 10, 0, 45)
	assert.Greater(t, tilted.Rect.Dx(), 10)
	assert.Greater(t, tilted.Rect.Dy(), 10)
}

func TestMask_InsideCircle(t *testing.T) {
	assert.True(t, insideCircle(50, 50, 50, 50, 50))
	assert.True(t, insideCircle(0, 50, 50, 50, 50))
	assert.False(t, insideCircle(0, 0, 50, 50, 50))
	assert.False(t, insideCircle(99, 99, 50, 50, 50))
}
