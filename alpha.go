package rondo

import (
	"image"
	"math"
	"math/rand"

	"github.com/disintegration/imaging"
)

// noiseSigma is the standard deviation of the gaussian noise centered on mid gray
// that gives the pencil brush its grain.
const noiseSigma = 48.0

// alphaFromSource derives the alpha channel of an image brush. Sources with
// their own transparency keep it; opaque sources use the inverted luminance,
// so dark pixels paint and light pixels stay clear, like ink on paper.
func alphaFromSource(src *image.NRGBA, hasAlpha bool) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))

	if hasAlpha {
		for y := 0; y < b.Dy(); y++ {
			si := src.PixOffset(b.Min.X, b.Min.Y+y)
			di := dst.PixOffset(0, y)
			for x := 0; x < b.Dx(); x++ {
				dst.Pix[di+x] = src.Pix[si+x*4+3]
			}
		}
		return dst
	}
	return toGray(imaging.Invert(imaging.Grayscale(src)))
}

// noiseField returns a w×h field of gaussian noise around mid gray.
func noiseField(w, h int, rng *rand.Rand) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, w, h))
	for i := range g.Pix {
		v := math.Round(128 + rng.NormFloat64()*noiseSigma)
		switch {
		case v < 0:
			v = 0
		case v > 255:
			v = 255
		}
		g.Pix[i] = uint8(v)
	}
	return g
}

// autoContrast stretches the values of img in place so the darkest value maps
// to 0 and the lightest to 255. A flat image is left unchanged.
func autoContrast(img *image.Gray) {
	if len(img.Pix) == 0 {
		return
	}
	lo, hi := img.Pix[0], img.Pix[0]
	for _, v := range img.Pix {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		return
	}
	scale := 255 / float64(hi-lo)
	for i, v := range img.Pix {
		img.Pix[i] = uint8(math.Round(float64(v-lo) * scale))
	}
}

// hasTransparency reports whether any pixel of img is not fully opaque.
func hasTransparency(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return true
			}
		}
	}
	return false
}

// colorize fills a raster of the alpha's size with c and uses alpha as its
// alpha channel.
func colorize(alpha *image.Gray, r, g, b uint8) *image.NRGBA {
	bounds := alpha.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		si := alpha.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		di := dst.PixOffset(0, y)
		for x := 0; x < bounds.Dx(); x++ {
			dst.Pix[di+0] = r
			dst.Pix[di+1] = g
			dst.Pix[di+2] = b
			dst.Pix[di+3] = alpha.Pix[si+x]
			di += 4
		}
	}
	return dst
}
