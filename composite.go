package rondo

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/esimov/rondo/imop"
)

// ComposePreview returns a new raster holding the persistent image with the
// stroke in progress drawn over it, clipped to the circle. Neither layer is
// modified.
func (s *PainterSession) ComposePreview() *image.NRGBA {
	return s.compose(true)
}

// compose merges the transient layer over a copy of the persistent image.
// Only the area touched by stamps is blended; elsewhere the transient layer
// is transparent and source-over leaves the backdrop as it is.
func (s *PainterSession) compose(clipped bool) *image.NRGBA {
	s.mustMatch(s.persistent)
	out := imaging.Clone(s.persistent)
	if s.dirty.Empty() {
		return out
	}
	var mask *image.Gray
	if clipped {
		mask = s.clip
	}
	imop.Over(out, s.dirty, s.transient, s.dirty.Min, mask, s.dirty.Min)
	return out
}

// RequestRedraw asks for the preview to be refreshed and reports whether it
// was. Unless forced, redraws closer together than the configured interval
// are dropped. When allowed, the redraw handler receives a fresh preview.
func (s *PainterSession) RequestRedraw(force bool) bool {
	if !s.throttle.Allow(force) {
		return false
	}
	if s.onRedraw != nil {
		s.onRedraw(s.ComposePreview())
	}
	return true
}

// RedrawStats returns the number of redraws performed and dropped so far.
func (s *PainterSession) RedrawStats() (drawn, skipped int) {
	return s.throttle.Stats()
}
