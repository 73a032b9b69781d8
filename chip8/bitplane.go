package chip8

import (
	"strings"
)

/// BitPlane is a packed bit array over a byte buffer. Bits are stored MSB
/// first, so bit 0 is 0x80 of byte 0.
///
type BitPlane struct {
	bytes []byte
}

/// NewBitPlane wraps b. The plane shares b, it does not copy it.
///
func NewBitPlane(b []byte) BitPlane {
	return BitPlane{bytes: b}
}

/// Len returns the number of addressable bits.
///
func (p BitPlane) Len() int {
	return len(p.bytes) * 8
}

/// Bytes returns the underlying buffer.
///
func (p BitPlane) Bytes() []byte {
	return p.bytes
}

/// Bit returns the bit at index i.
///
func (p BitPlane) Bit(i int) bool {
	return p.bytes[i>>3]&(0x80>>uint(i&7)) != 0
}

/// SetBit sets or clears the bit at index i.
///
func (p BitPlane) SetBit(i int, v bool) {
	if v {
		p.bytes[i>>3] |= 0x80 >> uint(i&7)
	} else {
		p.bytes[i>>3] &^= 0x80 >> uint(i&7)
	}
}

/// String renders every bit as '0' or '1'.
///
func (p BitPlane) String() string {
	s := strings.Builder{}
	s.Grow(p.Len())

	for i := 0; i < p.Len(); i++ {
		if p.Bit(i) {
			s.WriteByte('1')
		} else {
			s.WriteByte('0')
		}
	}

	return s.String()
}
