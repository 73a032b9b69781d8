package term

import (
	"bytes"

	"github.com/chip8vm/chip8/chip8"
)

const (
	cursorHome  = "\x1b[H"
	clearScreen = "\x1b[2J"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

// half block glyphs indexed by top<<1 | bottom
var blocks = [4]string{" ", "▄", "▀", "█"}

// Render draws fb into buf with one character per two pixel rows. The
// cursor is moved home first so successive frames overwrite each other.
func Render(buf *bytes.Buffer, fb chip8.Framebuffer) {
	buf.WriteString(cursorHome)

	for y := 0; y < fb.Height(); y += 2 {
		for x := 0; x < fb.Width(); x++ {
			i := 0
			if fb.Pixel(x, y) {
				i |= 2
			}
			if y+1 < fb.Height() && fb.Pixel(x, y+1) {
				i |= 1
			}
			buf.WriteString(blocks[i])
		}
		buf.WriteString("\r\n")
	}
}
