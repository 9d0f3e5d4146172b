package imop

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func grayPixel(v uint8) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, 1, 1))
	g.SetGray(0, 0, color.Gray{Y: v})
	return g
}

func TestBlend_Multiply(t *testing.T) {
	tests := []struct {
		name string
		dst  uint8
		src  uint8
		want uint8
	}{
		{"identity", 255, 128, 128},
		{"half", 128, 128, 64},
		{"zero", 0, 255, 0},
		{"white", 90, 255, 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := grayPixel(tt.dst)
			Multiply(dst, grayPixel(tt.src))
			assert.Equal(t, tt.want, dst.GrayAt(0, 0).Y)
		})
	}
}

func TestBlend_MultiplySharedArea(t *testing.T) {
	dst := image.NewGray(image.Rect(0, 0, 2, 1))
	dst.Pix = []uint8{200, 200}
	src := image.NewGray(image.Rect(0, 0, 1, 1))

	Multiply(dst, src)
	assert.Equal(t, []uint8{0, 200}, dst.Pix)
}

func TestBlend_Scale(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 3, 1))
	g.Pix = []uint8{0, 100, 220}

	Scale(g, 1.3)
	assert.Equal(t, []uint8{0, 130, 255}, g.Pix)

	Scale(g, 0.5)
	assert.Equal(t, []uint8{0, 65, 128}, g.Pix)
}
