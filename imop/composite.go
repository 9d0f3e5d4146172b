package imop

import (
	"image"
)

// Over composites src onto dst with the Porter-Duff source-over operator
// (Fa = 1, Fb = 1-As) inside the rectangle r, the same way image/draw aligns its
// arguments: r.Min in dst corresponds to sp in src and to mp in mask.
// The source alpha is multiplied by the mask value first, so a nil mask means
// a fully opaque one. Both images hold non-premultiplied colors; the blending
// itself runs on premultiplied values.
func Over(dst *image.NRGBA, r image.Rectangle, src *image.NRGBA, sp image.Point, mask *image.Gray, mp image.Point) {
	sd := sp.Sub(r.Min)
	md := mp.Sub(r.Min)

	r = r.Intersect(dst.Bounds())
	r = r.Intersect(src.Bounds().Sub(sd))
	if mask != nil {
		r = r.Intersect(mask.Bounds().Sub(md))
	}
	if r.Empty() {
		return
	}

	for y := r.Min.Y; y < r.Max.Y; y++ {
		di := dst.PixOffset(r.Min.X, y)
		si := src.PixOffset(r.Min.X+sd.X, y+sd.Y)
		mi := 0
		if mask != nil {
			mi = mask.PixOffset(r.Min.X+md.X, y+md.Y)
		}
		for x := r.Min.X; x < r.Max.X; x, di, si, mi = x+1, di+4, si+4, mi+1 {
			sa := uint32(src.Pix[si+3])
			if mask != nil {
				sa = sa * uint32(mask.Pix[mi]) / 255
			}
			// A transparent source leaves the backdrop untouched.
			if sa == 0 {
				continue
			}
			da := uint32(dst.Pix[di+3])
			fb := 255 - sa

			ra := (sa*255 + da*fb + 127) / 255
			if ra == 0 {
				dst.Pix[di+0] = 0
				dst.Pix[di+1] = 0
				dst.Pix[di+2] = 0
				dst.Pix[di+3] = 0
				continue
			}
			for c := 0; c < 3; c++ {
				s := uint32(src.Pix[si+c]) * sa
				d := uint32(dst.Pix[di+c]) * da
				// s and d are premultiplied colors scaled by 255; dividing the
				// blended sum by the result alpha un-premultiplies it.
				v := (s + d*fb/255 + ra/2) / ra
				if v > 255 {
					v = 255
				}
				dst.Pix[di+c] = uint8(v)
			}
			dst.Pix[di+3] = uint8(ra)
		}
	}
}

// MaskAlpha multiplies the alpha channel of img by the mask inside r.
// r.Min in img corresponds to mp in mask.
func MaskAlpha(img *image.NRGBA, r image.Rectangle, mask *image.Gray, mp image.Point) {
	md := mp.Sub(r.Min)
	r = r.Intersect(img.Bounds()).Intersect(mask.Bounds().Sub(md))

	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := img.PixOffset(r.Min.X, y)
		mi := mask.PixOffset(r.Min.X+md.X, y+md.Y)
		for x := r.Min.X; x < r.Max.X; x, i, mi = x+1, i+4, mi+1 {
			img.Pix[i+3] = uint8(uint32(img.Pix[i+3]) * uint32(mask.Pix[mi]) / 255)
		}
	}
}
