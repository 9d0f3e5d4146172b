package rondo

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// CircleMask returns a diameter×diameter grayscale mask holding a filled circle
// inscribed in the square, 255 inside and 0 outside. When blurRadius is
// positive the mask is softened with a Gaussian blur of that standard deviation.
func CircleMask(diameter int, blurRadius float64) *image.Gray {
	return EllipseMask(diameter, diameter, blurRadius, 0)
}

// EllipseMask is the elliptical counterpart of CircleMask. A rotation that is
// not a multiple of 360 degrees turns the mask counter-clockwise and grows the
// raster so the rotated ellipse is never cropped.
func EllipseMask(width, height int, blurRadius, rotation float64) *image.Gray {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	mask := fillEllipse(width, height)

	if blurRadius > 0 {
		mask = toGray(imaging.Blur(mask, blurRadius))
	}
	if math.Mod(rotation, 360) != 0 {
		mask = toGray(imaging.Rotate(mask, rotation, color.Black))
	}
	return mask
}

// fillEllipse rasterizes the ellipse bounded by (0, 0, w-1, h-1), testing
// each pixel center against the ellipse equation.
func fillEllipse(w, h int) *image.Gray {
	mask := image.NewGray(image.Rect(0, 0, w, h))

	cx, cy := float64(w-1)/2, float64(h-1)/2
	rx, ry := math.Max(cx, 0.5), math.Max(cy, 0.5)

	for y := 0; y < h; y++ {
		dy := (float64(y) - cy) / ry
		row := mask.Pix[y*mask.Stride : y*mask.Stride+w]
		for x := range row {
			dx := (float64(x) - cx) / rx
			if dx*dx+dy*dy <= 1 {
				row[x] = 0xff
			}
		}
	}
	return mask
}

// toGray extracts the red channel of an image produced by imaging from a
// grayscale input, where the three color channels are identical.
func toGray(src *image.NRGBA) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		si := src.PixOffset(b.Min.X, b.Min.Y+y)
		di := dst.PixOffset(0, y)
		for x := 0; x < b.Dx(); x++ {
			dst.Pix[di+x] = src.Pix[si+x*4]
		}
	}
	return dst
}

// insideCircle reports whether (x, y) lies in the disc of radius r centered at (cx, cy).
func insideCircle(x, y, cx, cy, r float64) bool {
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy <= r*r
}
