package rondo

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"time"

	"github.com/disintegration/imaging"
	"github.com/esimov/rondo/utils"
	"github.com/google/uuid"
)

// ErrEmptyBrushImage is returned when a custom brush image has no pixels.
var ErrEmptyBrushImage = errors.New("the brush image is empty")

type strokeState uint8

const (
	stateIdle strokeState = iota
	stateDrawing
)

// StrokeSample is a pointer position accepted during a stroke.
type StrokeSample struct {
	X, Y float64
	T    time.Time
}

// PainterSession owns the whole state of one circular canvas: the persistent
// image, the layer holding the stroke in progress, the brush, the color and
// the undo history. Every entry point of the engine is a method on it.
//
// A session is not safe for concurrent use. Independent sessions are.
type PainterSession struct {
	id   string
	size int

	persistent *image.NRGBA
	transient  *image.NRGBA
	clip       *image.Gray

	brush   BrushConfig
	color   ColorState
	history *History
	stamper *Stamper

	throttle *Throttle
	onRedraw func(*image.NRGBA)
	now      func() time.Time

	state   strokeState
	samples []StrokeSample
	dirty   image.Rectangle // union of the stamps drawn on the transient layer
	stamps  int

	gen uint64 // brush source generation
}

// Option customizes a session.
type Option func(*PainterSession)

// WithClock replaces time.Now, which timestamps samples and drives the redraw throttle.
func WithClock(now func() time.Time) Option {
	return func(s *PainterSession) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRedrawHandler registers a function receiving a freshly composed preview
// every time a redraw is allowed.
func WithRedrawHandler(fn func(*image.NRGBA)) Option {
	return func(s *PainterSession) {
		s.onRedraw = fn
	}
}

// NewSession creates a canvas initialized to a white disc on black.
func NewSession(cfg Config, opts ...Option) (*PainterSession, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	hsv, err := FromHex(cfg.Color)
	if err != nil {
		return nil, err
	}

	s := &PainterSession{
		id:      uuid.NewString(),
		size:    cfg.CanvasSize,
		clip:    CircleMask(cfg.CanvasSize, 0),
		color:   NewColorState(hsv),
		history: NewHistory(cfg.UndoLimit),
		stamper: NewStamper(cfg.Seed),
		now:     time.Now,
	}
	s.brush = BrushConfig{
		Type:       cfg.Brush,
		Size:       cfg.BrushSize,
		Opacity:    cfg.Opacity,
		Smoothing:  cfg.Smoothing,
		SpacingPct: cfg.SpacingPct,
		Color:      hsv.RGB(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.throttle = NewThrottle(cfg.RedrawInterval, s.now)
	s.persistent = s.initialLayer()
	s.transient = image.NewNRGBA(image.Rect(0, 0, s.size, s.size))

	s.log().Debug("session created", "canvas", s.size, "brush", s.brush.Type)
	return s, nil
}

// ID returns the identifier attached to the session's log records.
func (s *PainterSession) ID() string { return s.id }

// Size returns the canvas side in pixels.
func (s *PainterSession) Size() int { return s.size }

func (s *PainterSession) log() *slog.Logger {
	return Logger().With("session", s.id)
}

// initialLayer renders the blank canvas: opaque black with an opaque white
// disc inscribed in it. Cloning the gray clip mask yields exactly that.
func (s *PainterSession) initialLayer() *image.NRGBA {
	return imaging.Clone(s.clip)
}

// mustMatch panics if img does not cover the canvas exactly.
func (s *PainterSession) mustMatch(img *image.NRGBA) {
	if img == nil || img.Rect != image.Rect(0, 0, s.size, s.size) {
		panic(fmt.Sprintf("rondo: layer size mismatch, want %dx%d", s.size, s.size))
	}
}

// Brush returns a copy of the current brush parameters.
func (s *PainterSession) Brush() BrushConfig { return s.brush }

// Color returns the pending and committed brush colors.
func (s *PainterSession) Color() ColorState { return s.color }

// Drawing reports whether a stroke is in progress.
func (s *PainterSession) Drawing() bool { return s.state == stateDrawing }

// Stamps returns the number of stamps drawn by the current or last stroke.
func (s *PainterSession) Stamps() int { return s.stamps }

// History gives access to the undo stack.
func (s *PainterSession) History() *History { return s.history }

// Stamper returns the stamp factory, mostly to inspect its cache.
func (s *PainterSession) Stamper() *Stamper { return s.stamper }

// SetBrushType selects the brush. Unknown types are ignored.
func (s *PainterSession) SetBrushType(t BrushType) {
	if t <= BrushFallback {
		s.brush.Type = t
	}
}

// SetBrushSize sets the brush diameter, clamped between one pixel and the canvas size.
func (s *PainterSession) SetBrushSize(size int) {
	s.brush.Size = utils.Clamp(size, 1, s.size)
}

// SetOpacity sets the brush opacity in percent, clamped to 1..100.
func (s *PainterSession) SetOpacity(opacity int) {
	s.brush.Opacity = utils.Clamp(opacity, MinOpacity, MaxOpacity)
}

// SetSmoothing sets the stamp spacing factor of the non image brushes.
func (s *PainterSession) SetSmoothing(f float64) {
	s.brush.Smoothing = utils.Clamp(f, MinSmoothing, MaxSmoothing)
}

// SetSpacingPercent sets the stamp spacing of the image brush, in percent of its size.
func (s *PainterSession) SetSpacingPercent(pct int) {
	s.brush.SpacingPct = utils.Clamp(pct, MinSpacingPct, MaxSpacingPct)
}

// LoadCustomBrushImage makes img the source of the image brush and selects
// that brush. Previously cached stamps are discarded.
func (s *PainterSession) LoadCustomBrushImage(img image.Image) error {
	if img == nil || img.Bounds().Empty() {
		return ErrEmptyBrushImage
	}
	s.gen++
	s.stamper.Cache().Invalidate()
	s.brush.Source = &BrushSource{
		Img:   imgToNRGBA(img),
		Alpha: hasTransparency(img),
		Gen:   s.gen,
	}
	s.brush.Type = BrushImage

	b := img.Bounds()
	s.log().Info("brush image loaded", "width", b.Dx(), "height", b.Dy(), "alpha", s.brush.Source.Alpha, "gen", s.gen)
	return nil
}

// LoadCustomBrushReader decodes a brush image from r. On failure the brush
// and the stamp cache are left untouched.
func (s *PainterSession) LoadCustomBrushReader(r io.Reader) error {
	img, err := imaging.Decode(r)
	if err != nil {
		return fmt.Errorf("could not decode the brush image: %w", err)
	}
	return s.LoadCustomBrushImage(img)
}

// LoadCustomBrushFile decodes the brush image stored at path.
func (s *PainterSession) LoadCustomBrushFile(path string) error {
	img, err := decodeBrush(path)
	if err != nil {
		return err
	}
	return s.LoadCustomBrushImage(img)
}

// SetHue changes the hue of the pending color.
func (s *PainterSession) SetHue(h float64) { s.color.SetHue(h) }

// SetSaturationValue changes the saturation and value of the pending color.
func (s *PainterSession) SetSaturationValue(sat, val float64) {
	s.color.SetSaturationValue(sat, val)
}

// ConfirmPendingColor makes the pending color the brush color.
func (s *PainterSession) ConfirmPendingColor() {
	s.color.Confirm()
	s.brush.Color = s.color.Committed.RGB()
}

// Undo restores the canvas as it was before the last stroke and abandons the
// stroke in progress. It does nothing when there is no history.
func (s *PainterSession) Undo() {
	snap, ok := s.history.Pop()
	if !ok {
		return
	}
	s.mustMatch(snap)
	s.persistent = snap
	s.endStroke()
	s.log().Debug("undo", "remaining", s.history.Len())
	s.RequestRedraw(true)
}

// Clear resets the canvas to the blank disc and empties the history.
func (s *PainterSession) Clear() {
	s.persistent = s.initialLayer()
	s.history.Reset()
	s.endStroke()
	s.log().Debug("canvas cleared")
	s.RequestRedraw(true)
}

// GetPreviewRaster returns the canvas as the user currently sees it.
func (s *PainterSession) GetPreviewRaster() *image.NRGBA {
	return s.ComposePreview()
}
