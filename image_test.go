package rondo

import (
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImage_ImgToNRGBA(t *testing.T) {
	rect := image.Rect(-1, -1, 15, 15)
	colors := palette.Plan9
	testCases := []struct {
		name string
		img  image.Image
	}{
		{
			name: "NRGBA",
			img:  makeNRGBAImage(rect, colors),
		},
		{
			name: "YCbCr-444",
			img:  makeYCbCrImage(rect, colors, image.YCbCrSubsampleRatio444),
		},
		{
			name: "YCbCr-420",
			img:  makeYCbCrImage(rect, colors, image.YCbCrSubsampleRatio420),
		},
		{
			name: "Gray",
			img:  makeGrayImage(rect),
		},
		{
			name: "RGBA64",
			img:  image.NewRGBA64(rect),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := imgToNRGBA(tc.img)
			r := tc.img.Bounds()
			assert.Equal(t, image.Rect(0, 0, r.Dx(), r.Dy()), got.Rect)

			for y := r.Min.Y; y < r.Max.Y; y++ {
				for x := r.Min.X; x < r.Max.X; x++ {
					want := color.NRGBAModel.Convert(tc.img.At(x, y)).(color.NRGBA)
					c := got.NRGBAAt(x-r.Min.X, y-r.Min.Y)
					// YCbCr conversions may round differently by one level.
					assert.InDelta(t, want.R, c.R, 1, "red at (%d, %d)", x, y)
					assert.InDelta(t, want.G, c.G, 1, "green at (%d, %d)", x, y)
					assert.InDelta(t, want.B, c.B, 1, "blue at (%d, %d)", x, y)
					assert.Equal(t, want.A, c.A, "alpha at (%d, %d)", x, y)
				}
			}
		})
	}
}

func TestImage_ImgToNRGBADoesNotAlias(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	dst := imgToNRGBA(src)
	dst.Pix[0] = 0xff
	assert.Equal(t, uint8(0), src.Pix[0])
}

func TestImage_DecodeBrush(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "brush.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, makeGrayImage(image.Rect(0, 0, 8, 4))))
	require.NoError(t, f.Close())

	img, err := decodeBrush(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 4), img.Bounds())

	text := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(text, []byte("not an image at all"), 0o644))
	_, err = decodeBrush(text)
	assert.Error(t, err)

	_, err = decodeBrush(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}

func makeYCbCrImage(rect image.Rectangle, colors []color.Color, sr image.YCbCrSubsampleRatio) *image.YCbCr {
	img := image.NewYCbCr(rect, sr)
	j := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			iy := img.YOffset(x, y)
			ic := img.COffset(x, y)
			c := color.NRGBAModel.Convert(colors[j]).(color.NRGBA)
			img.Y[iy], img.Cb[ic], img.Cr[ic] = color.RGBToYCbCr(c.R, c.G, c.B)
			j++
		}
	}
	return img
}

func makeNRGBAImage(rect image.Rectangle, colors []color.Color) *image.NRGBA {
	img := image.NewNRGBA(rect)
	fillDrawImage(img, colors)
	return img
}

func makeGrayImage(rect image.Rectangle) *image.Gray {
	img := image.NewGray(rect)
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 7)
	}
	return img
}

func fillDrawImage(img draw.Image, colors []color.Color) {
	colorsNRGBA := make([]color.NRGBA, len(colors))
	for i, c := range colors {
		nrgba := color.NRGBAModel.Convert(c).(color.NRGBA)
		nrgba.A = uint8(i % 256)
		colorsNRGBA[i] = nrgba
	}
	rect := img.Bounds()
	i := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.Set(x, y, colorsNRGBA[i])
			i++
		}
	}
}
