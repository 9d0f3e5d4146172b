package rondo

import "image"

// History is a bounded stack of persistent layer snapshots. When full, the
// oldest snapshot is evicted to make room for a new one.
type History struct {
	limit int
	snaps []*image.NRGBA
}

// NewHistory returns an empty history holding at most limit snapshots.
func NewHistory(limit int) *History {
	if limit < 1 {
		limit = 1
	}
	return &History{
		limit: limit,
		snaps: make([]*image.NRGBA, 0, limit),
	}
}

// Push appends a snapshot, evicting the oldest one first if the history is full.
func (h *History) Push(snap *image.NRGBA) {
	if len(h.snaps) >= h.limit {
		copy(h.snaps, h.snaps[1:])
		h.snaps[len(h.snaps)-1] = nil
		h.snaps = h.snaps[:len(h.snaps)-1]
	}
	h.snaps = append(h.snaps, snap)
}

// Pop removes and returns the most recent snapshot.
func (h *History) Pop() (*image.NRGBA, bool) {
	n := len(h.snaps)
	if n == 0 {
		return nil, false
	}
	snap := h.snaps[n-1]
	h.snaps[n-1] = nil
	h.snaps = h.snaps[:n-1]
	return snap, true
}

// Reset drops every snapshot.
func (h *History) Reset() {
	clear(h.snaps)
	h.snaps = h.snaps[:0]
}

// Len returns the number of stored snapshots.
func (h *History) Len() int { return len(h.snaps) }

// Cap returns the maximum number of snapshots.
func (h *History) Cap() int { return h.limit }
