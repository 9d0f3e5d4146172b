package rondo

import (
	"image"
	"math/rand"

	"github.com/disintegration/imaging"
	"github.com/esimov/rondo/imop"
	"github.com/esimov/rondo/utils"
)

// noiseBrightness lifts the auto-contrasted noise so that most of the dab is
// covered and only the darkest grains let the paper show through.
const noiseBrightness = 1.3

// Stamper builds brush stamps. It owns the random source of the pencil grain
// and the caches that keep repeated dabs cheap.
type Stamper struct {
	rng   *rand.Rand
	masks *maskCache
	cache *StampCache
}

// NewStamper returns a Stamper whose pencil grain is derived from seed.
func NewStamper(seed int64) *Stamper {
	return &Stamper{
		rng:   rand.New(rand.NewSource(seed)),
		masks: newMaskCache(),
		cache: NewStampCache(),
	}
}

// Cache returns the image brush cache.
func (s *Stamper) Cache() *StampCache {
	return s.cache
}

// BuildStamp renders one dab of the brush. The stamp is anchored at its own
// center: the rasterizer places it so that its middle pixel lands on the
// pointer position.
func (s *Stamper) BuildStamp(b BrushConfig) *image.NRGBA {
	b = b.normalize()
	alpha := b.alpha8()
	c := b.Color

	switch b.Type {
	case BrushPencil:
		return s.pencilStamp(b.Size, alpha, c.R, c.G, c.B)
	case BrushImage:
		if b.Source != nil {
			return s.imageStamp(b.Source, b.Size, alpha, c.R, c.G, c.B)
		}
		return s.fallbackStamp(b.Size, alpha, c.R, c.G, c.B)
	case BrushFallback:
		return s.fallbackStamp(b.Size, alpha, c.R, c.G, c.B)
	}
	panic("rondo: unhandled brush type " + b.Type.String())
}

// pencilStamp multiplies a soft circular falloff with a noise field, which
// gives an organic, grainy edge instead of a hard disc.
func (s *Stamper) pencilStamp(size int, alpha, r, g, b uint8) *image.NRGBA {
	soft := s.masks.circle(size, float64(utils.Max(1, size/10)))

	noise := noiseField(soft.Rect.Dx(), soft.Rect.Dy(), s.rng)
	autoContrast(noise)
	imop.Scale(noise, noiseBrightness)

	// The noise field is a fresh raster, so it receives the product and the
	// shared soft mask stays untouched.
	imop.Multiply(noise, soft)
	if alpha < 0xff {
		imop.Scale(noise, float64(alpha)/255)
	}
	return colorize(noise, r, g, b)
}

// imageStamp resizes the brush source so its longer side equals size, derives
// its alpha and recolors it. The resized alpha is cached per size; opacity is
// applied to a copy so cached entries are never altered.
func (s *Stamper) imageStamp(src *BrushSource, size int, alpha, r, g, b uint8) *image.NRGBA {
	sw, sh := src.Img.Rect.Dx(), src.Img.Rect.Dy()
	var nw, nh int
	if sw >= sh {
		nw, nh = size, utils.Max(1, sh*size/sw)
	} else {
		nw, nh = utils.Max(1, sw*size/sh), size
	}

	mask, ok := s.cache.Get(src.Gen, nw, nh)
	if !ok {
		resized := imaging.Resize(src.Img, nw, nh, imaging.CatmullRom)
		mask = alphaFromSource(resized, src.Alpha)
		s.cache.Put(src.Gen, nw, nh, mask)
		Logger().Debug("image brush resampled", "gen", src.Gen, "width", nw, "height", nh)
	}

	if alpha < 0xff {
		scaled := image.NewGray(mask.Rect)
		copy(scaled.Pix, mask.Pix)
		imop.Scale(scaled, float64(alpha)/255)
		mask = scaled
	}
	return colorize(mask, r, g, b)
}

// fallbackStamp is a flat disc whose blurred edge is scaled by the opacity.
func (s *Stamper) fallbackStamp(size int, alpha, r, g, b uint8) *image.NRGBA {
	mask := s.masks.circle(size, float64(size/16))
	if alpha < 0xff {
		scaled := image.NewGray(mask.Rect)
		copy(scaled.Pix, mask.Pix)
		imop.Scale(scaled, float64(alpha)/255)
		mask = scaled
	}
	return colorize(mask, r, g, b)
}
