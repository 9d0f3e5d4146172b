package rondo

import (
	"image"
)

type stampKey struct {
	gen  uint64
	w, h int
}

// StampCache keeps the colorless, resized alpha of image brushes so that
// consecutive dabs of the same size skip resampling. Entries are keyed by the
// brush source generation and the output size.
type StampCache struct {
	entries map[stampKey]*image.Gray
	hits    int
	misses  int
}

// NewStampCache returns an empty cache.
func NewStampCache() *StampCache {
	return &StampCache{entries: make(map[stampKey]*image.Gray)}
}

// Get looks up the alpha for the given source generation and size.
// The returned mask is shared and must not be modified.
func (c *StampCache) Get(gen uint64, w, h int) (*image.Gray, bool) {
	a, ok := c.entries[stampKey{gen, w, h}]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return a, ok
}

// Put stores an alpha mask.
func (c *StampCache) Put(gen uint64, w, h int, alpha *image.Gray) {
	c.entries[stampKey{gen, w, h}] = alpha
}

// Invalidate drops every entry.
func (c *StampCache) Invalidate() {
	clear(c.entries)
}

// Len returns the number of cached entries.
func (c *StampCache) Len() int { return len(c.entries) }

// Stats returns the number of cache hits and misses so far.
func (c *StampCache) Stats() (hits, misses int) { return c.hits, c.misses }

type maskKey struct {
	diameter int
	blur     float64
}

// maxMasks bounds the brush mask cache. A session rarely cycles through more
// brush sizes than this.
const maxMasks = 32

// maskCache memoises brush masks, which only depend on diameter and blur.
type maskCache struct {
	entries map[maskKey]*image.Gray
}

func newMaskCache() *maskCache {
	return &maskCache{entries: make(map[maskKey]*image.Gray)}
}

// circle returns the shared, read-only circle mask for the given parameters.
func (m *maskCache) circle(diameter int, blur float64) *image.Gray {
	key := maskKey{diameter, blur}
	if mask, ok := m.entries[key]; ok {
		return mask
	}
	if len(m.entries) >= maxMasks {
		clear(m.entries)
	}
	mask := CircleMask(diameter, blur)
	m.entries[key] = mask
	return mask
}
