// Package imop implements the source-over composition and the single channel
// operations used to build brush stamps and merge stroke layers.
// The image/draw core package only implements source-over and source, and it
// offers no way to combine two grayscale masks, which is what a textured brush needs.
package imop

import (
	"image"
	"math"
)

// Multiply blends src into dst in place over the area both images share,
// with d*s/255. Combining a noise field with a soft disc this way keeps the
// grain inside the disc.
func Multiply(dst, src *image.Gray) {
	r := dst.Bounds().Intersect(src.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		di := dst.PixOffset(r.Min.X, y)
		si := src.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x, di, si = x+1, di+1, si+1 {
			dst.Pix[di] = uint8(uint32(dst.Pix[di]) * uint32(src.Pix[si]) / 255)
		}
	}
}

// Scale multiplies every value of img by factor in place, clamping the
// result to the 0..255 range. It is the brightness enhancement applied to
// noise fields and to opacity-scaled alpha channels.
func Scale(img *image.Gray, factor float64) {
	if factor == 1 {
		return
	}
	for i, v := range img.Pix {
		f := math.Round(float64(v) * factor)
		switch {
		case f < 0:
			f = 0
		case f > 255:
			f = 255
		}
		img.Pix[i] = uint8(f)
	}
}
