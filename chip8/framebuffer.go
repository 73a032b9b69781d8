package chip8

import (
	"fmt"
)

/// Framebuffer is a 2D view over a BitPlane. Pixels are packed row-major,
/// so pixel <x,y> is bit y*width+x of the plane.
///
/// Coordinates are not wrapped or checked here, callers pass in-range values.
///
type Framebuffer struct {
	plane BitPlane
	width int
}

/// NewFramebuffer creates a framebuffer of the given width over plane. The
/// plane length must be a multiple of width.
///
func NewFramebuffer(plane BitPlane, width int) Framebuffer {
	if width <= 0 || plane.Len()%width != 0 {
		panic(fmt.Sprintf("framebuffer width %d does not divide %d bits", width, plane.Len()))
	}

	return Framebuffer{plane: plane, width: width}
}

/// Width in pixels.
///
func (fb Framebuffer) Width() int {
	return fb.width
}

/// Height in pixels.
///
func (fb Framebuffer) Height() int {
	return fb.plane.Len() / fb.width
}

/// Plane returns the underlying bit plane.
///
func (fb Framebuffer) Plane() BitPlane {
	return fb.plane
}

/// BitIndex translates <x,y> to a bit index in the plane.
///
func (fb Framebuffer) BitIndex(x, y int) int {
	return y*fb.width + x
}

/// ByteIndex translates <x,y> to the index of the byte holding that pixel.
///
func (fb Framebuffer) ByteIndex(x, y int) int {
	return fb.BitIndex(x, y) / 8
}

/// Pixel returns true if the pixel at <x,y> is set.
///
func (fb Framebuffer) Pixel(x, y int) bool {
	return fb.plane.Bit(fb.BitIndex(x, y))
}

/// SetPixel sets or clears the pixel at <x,y>.
///
func (fb Framebuffer) SetPixel(x, y int, v bool) {
	fb.plane.SetBit(fb.BitIndex(x, y), v)
}
