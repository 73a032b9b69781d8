package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestFramebufferGeometry(t *testing.T) {
	fb := NewFramebuffer(NewBitPlane(make([]byte, DisplaySize)), DisplayWidth)

	assert.Equal(t, DisplayWidth, fb.Width())
	assert.Equal(t, DisplayHeight, fb.Height())
}

func TestFramebufferIndexOrdering(t *testing.T) {
	fb := NewFramebuffer(NewBitPlane(make([]byte, DisplaySize)), DisplayWidth)

	last := -1
	for y := 0; y < fb.Height(); y++ {
		for x := 0; x < fb.Width(); x++ {
			bit := fb.BitIndex(x, y)
			assert.True(t, bit > last)
			assert.Equal(t, last+1, bit)
			assert.Equal(t, bit/8, fb.ByteIndex(x, y))
			assert.Equal(t, fb.ByteIndex(x, y), fb.ByteIndex(x, y))
			last = bit
		}
	}
}

func TestFramebufferPixels(t *testing.T) {
	bytes := make([]byte, DisplaySize)
	fb := NewFramebuffer(NewBitPlane(bytes), DisplayWidth)

	fb.SetPixel(0, 0, true)
	fb.SetPixel(9, 1, true)
	fb.SetPixel(63, 31, true)

	assert.Equal(t, byte(0x80), bytes[0])
	assert.Equal(t, byte(0x40), bytes[9])
	assert.Equal(t, byte(0x01), bytes[255])
	assert.True(t, fb.Pixel(9, 1))
	assert.False(t, fb.Pixel(8, 1))

	fb.SetPixel(9, 1, false)
	assert.Equal(t, byte(0x00), bytes[9])
}

func TestFramebufferBadWidth(t *testing.T) {
	defer func() {
		assert.NotNil(t, recover())
	}()

	NewFramebuffer(NewBitPlane(make([]byte, 3)), 5)
}
