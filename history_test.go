package rondo

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func snapshot(id uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.Pix[0] = id
	return img
}

func TestHistory_PushPop(t *testing.T) {
	h := NewHistory(3)
	_, ok := h.Pop()
	assert.False(t, ok, "pop on an empty history is a no-op")

	h.Push(snapshot(1))
	h.Push(snapshot(2))
	assert.Equal(t, 2, h.Len())

	s, ok := h.Pop()
	assert.True(t, ok)
	assert.Equal(t, uint8(2), s.Pix[0])
	assert.Equal(t, 1, h.Len())
}

func TestHistory_EvictsOldest(t *testing.T) {
	h := NewHistory(3)
	for i := uint8(1); i <= 5; i++ {
		h.Push(snapshot(i))
	}
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 3, h.Cap())

	var got []uint8
	for {
		s, ok := h.Pop()
		if !ok {
			break
		}
		got = append(got, s.Pix[0])
	}
	assert.Equal(t, []uint8{5, 4, 3}, got)
}

func TestHistory_Reset(t *testing.T) {
	h := NewHistory(0)
	assert.Equal(t, 1, h.Cap())

	h.Push(snapshot(1))
	h.Push(snapshot(2))
	assert.Equal(t, 1, h.Len())

	h.Reset()
	assert.Equal(t, 0, h.Len())
}
