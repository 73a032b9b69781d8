package chip8

import (
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestBitPlaneRoundTrip(t *testing.T) {
	for b := 0; b < 256; b++ {
		for i := 0; i < 24; i++ {
			for _, v := range []bool{true, false} {
				bytes := []byte{byte(b), byte(b), byte(b)}
				plane := NewBitPlane(bytes)
				before := plane.String()

				plane.SetBit(i, v)
				assert.Equal(t, v, plane.Bit(i))

				// only bit i may differ
				after := plane.String()
				for j := range after {
					if j != i {
						assert.Equal(t, before[j], after[j])
					}
				}
			}
		}
	}
}

func TestBitPlaneMSBFirst(t *testing.T) {
	bytes := make([]byte, 2)
	plane := NewBitPlane(bytes)

	assert.Equal(t, 16, plane.Len())

	plane.SetBit(0, true)
	plane.SetBit(15, true)
	assert.Equal(t, byte(0x80), bytes[0])
	assert.Equal(t, byte(0x01), bytes[1])

	plane.SetBit(0, false)
	assert.Equal(t, byte(0x00), bytes[0])
	assert.Equal(t, "0000000000000001", plane.String())
}

func TestBitPlaneShared(t *testing.T) {
	bytes := []byte{0xA5}
	plane := NewBitPlane(bytes)

	assert.Equal(t, "10100101", plane.String())

	bytes[0] = 0xFF
	assert.Equal(t, strings.Repeat("1", 8), plane.String())
}
