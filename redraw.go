package rondo

import "time"

// DefaultRedrawInterval bounds the preview refresh rate to 60 frames per second.
const DefaultRedrawInterval = time.Second / 60

// Throttle rate-limits redraws. A suppressed redraw is dropped rather than
// queued, so the next permitted redraw always shows the current state.
type Throttle struct {
	interval time.Duration
	now      func() time.Time
	last     time.Time
	drawn    int
	skipped  int
}

// NewThrottle returns a Throttle allowing one redraw per interval. A nil
// clock means time.Now.
func NewThrottle(interval time.Duration, clock func() time.Time) *Throttle {
	if clock == nil {
		clock = time.Now
	}
	return &Throttle{interval: interval, now: clock}
}

// Allow reports whether a redraw may happen now. Forced redraws are always
// allowed and restart the interval.
func (t *Throttle) Allow(force bool) bool {
	now := t.now()
	if !force && !t.last.IsZero() && now.Sub(t.last) < t.interval {
		t.skipped++
		return false
	}
	t.last = now
	t.drawn++
	return true
}

// Stats returns the number of permitted and suppressed redraws.
func (t *Throttle) Stats() (drawn, skipped int) {
	return t.drawn, t.skipped
}
