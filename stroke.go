package rondo

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/esimov/rondo/imop"
	"github.com/esimov/rondo/utils"
)

// insideCanvas reports whether (x, y) lies on the canvas and in its circular region.
func (s *PainterSession) insideCanvas(x, y float64) bool {
	d := float64(s.size)
	if x < 0 || y < 0 || x >= d || y >= d {
		return false
	}
	return insideCircle(x, y, d/2, d/2, d/2)
}

// OnPointerDown starts a stroke. Presses outside the circle, or while a
// stroke is already in progress, are ignored.
func (s *PainterSession) OnPointerDown(x, y float64) {
	if s.state == stateDrawing || !s.insideCanvas(x, y) {
		return
	}
	s.history.Push(imaging.Clone(s.persistent))
	s.resetTransient()

	s.state = stateDrawing
	s.stamps = 0
	s.samples = append(s.samples[:0], StrokeSample{X: x, Y: y, T: s.now()})

	s.stampAt(x, y)
	s.log().Debug("stroke started", "x", x, "y", y, "brush", s.brush.Type)
	s.RequestRedraw(true)
}

// OnPointerMove extends the stroke in progress. The position is clamped to
// the canvas; positions outside the circle are dropped without ending the stroke.
func (s *PainterSession) OnPointerMove(x, y float64) {
	if s.state != stateDrawing {
		return
	}
	edge := float64(s.size - 1)
	x, y = utils.Clamp(x, 0, edge), utils.Clamp(y, 0, edge)
	if !s.insideCanvas(x, y) {
		return
	}

	prev := s.samples[len(s.samples)-1]
	s.samples = append(s.samples, StrokeSample{X: x, Y: y, T: s.now()})

	dx, dy := x-prev.X, y-prev.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		s.stampAt(x, y)
	} else {
		n := utils.Max(1, int(dist/s.brush.step()))
		for i := 1; i <= n; i++ {
			t := float64(i) / float64(n)
			s.stampAt(prev.X+dx*t, prev.Y+dy*t)
		}
	}
	s.RequestRedraw(false)
}

// OnPointerUp ends the stroke: the transient layer is clipped to the circle
// and merged into the persistent image.
func (s *PainterSession) OnPointerUp() {
	if s.state != stateDrawing {
		return
	}
	if !s.dirty.Empty() {
		s.mustMatch(s.transient)
		imop.MaskAlpha(s.transient, s.dirty, s.clip, s.dirty.Min)
		imop.Over(s.persistent, s.dirty, s.transient, s.dirty.Min, nil, image.Point{})
	}
	s.log().Debug("stroke committed", "stamps", s.stamps, "samples", len(s.samples), "bounds", s.dirty)
	s.endStroke()
	s.RequestRedraw(true)
}

// Cancel abandons the stroke in progress without touching the persistent
// image. The snapshot pushed by the press stays in the history.
func (s *PainterSession) Cancel() {
	if s.state != stateDrawing {
		return
	}
	s.log().Debug("stroke canceled", "stamps", s.stamps)
	s.endStroke()
	s.RequestRedraw(true)
}

// endStroke returns to the idle state with an empty transient layer.
func (s *PainterSession) endStroke() {
	s.resetTransient()
	s.state = stateIdle
	s.samples = s.samples[:0]
}

// resetTransient makes the transient layer transparent again. Only the area
// touched by stamps needs clearing.
func (s *PainterSession) resetTransient() {
	r := s.dirty
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := s.transient.PixOffset(r.Min.X, y)
		clear(s.transient.Pix[i : i+r.Dx()*4])
	}
	s.dirty = image.Rectangle{}
}

// stampAt composites one brush stamp centered on (x, y) onto the transient layer.
func (s *PainterSession) stampAt(x, y float64) {
	stamp := s.stamper.BuildStamp(s.brush)
	w, h := stamp.Rect.Dx(), stamp.Rect.Dy()

	pt := image.Pt(int(x)-w/2, int(y)-h/2)
	r := image.Rectangle{Min: pt, Max: pt.Add(image.Pt(w, h))}.Intersect(s.transient.Rect)
	if r.Empty() {
		return
	}
	imop.Over(s.transient, r, stamp, r.Min.Sub(pt), nil, image.Point{})
	s.dirty = s.dirty.Union(r)
	s.stamps++
}
