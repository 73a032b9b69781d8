package main

import (
	"unicode"

	"github.com/veandco/go-sdl2/sdl"
)

const (
	/// Size of a single character cell in the font texture.
	///
	GlyphWidth  = 5
	GlyphHeight = 7

	/// Horizontal advance per character when drawing text.
	///
	GlyphAdvance = 7
)

var (
	/// Texture containing a predefined font for debugging, etc.
	///
	Font *sdl.Texture

	/// Characters in the font, in texture order.
	///
	Charset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ-#[],.:/?()=+<>_!'\"*%"

	/// 5x7 glyph bitmaps, bit 4 is the leftmost column.
	///
	Glyphs = map[rune][GlyphHeight]byte{
		'0':  {0x0E, 0x11, 0x13, 0x15, 0x19, 0x11, 0x0E},
		'1':  {0x04, 0x0C, 0x04, 0x04, 0x04, 0x04, 0x0E},
		'2':  {0x0E, 0x11, 0x01, 0x02, 0x04, 0x08, 0x1F},
		'3':  {0x1F, 0x02, 0x04, 0x02, 0x01, 0x11, 0x0E},
		'4':  {0x02, 0x06, 0x0A, 0x12, 0x1F, 0x02, 0x02},
		'5':  {0x1F, 0x10, 0x1E, 0x01, 0x01, 0x11, 0x0E},
		'6':  {0x06, 0x08, 0x10, 0x1E, 0x11, 0x11, 0x0E},
		'7':  {0x1F, 0x01, 0x02, 0x04, 0x08, 0x08, 0x08},
		'8':  {0x0E, 0x11, 0x11, 0x0E, 0x11, 0x11, 0x0E},
		'9':  {0x0E, 0x11, 0x11, 0x0F, 0x01, 0x02, 0x0C},
		'A':  {0x0E, 0x11, 0x11, 0x11, 0x1F, 0x11, 0x11},
		'B':  {0x1E, 0x11, 0x11, 0x1E, 0x11, 0x11, 0x1E},
		'C':  {0x0E, 0x11, 0x10, 0x10, 0x10, 0x11, 0x0E},
		'D':  {0x1C, 0x12, 0x11, 0x11, 0x11, 0x12, 0x1C},
		'E':  {0x1F, 0x10, 0x10, 0x1E, 0x10, 0x10, 0x1F},
		'F':  {0x1F, 0x10, 0x10, 0x1E, 0x10, 0x10, 0x10},
		'G':  {0x0E, 0x11, 0x10, 0x17, 0x11, 0x11, 0x0F},
		'H':  {0x11, 0x11, 0x11, 0x1F, 0x11, 0x11, 0x11},
		'I':  {0x0E, 0x04, 0x04, 0x04, 0x04, 0x04, 0x0E},
		'J':  {0x07, 0x02, 0x02, 0x02, 0x02, 0x12, 0x0C},
		'K':  {0x11, 0x12, 0x14, 0x18, 0x14, 0x12, 0x11},
		'L':  {0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x1F},
		'M':  {0x11, 0x1B, 0x15, 0x15, 0x11, 0x11, 0x11},
		'N':  {0x11, 0x11, 0x19, 0x15, 0x13, 0x11, 0x11},
		'O':  {0x0E, 0x11, 0x11, 0x11, 0x11, 0x11, 0x0E},
		'P':  {0x1E, 0x11, 0x11, 0x1E, 0x10, 0x10, 0x10},
		'Q':  {0x0E, 0x11, 0x11, 0x11, 0x15, 0x12, 0x0D},
		'R':  {0x1E, 0x11, 0x11, 0x1E, 0x14, 0x12, 0x11},
		'S':  {0x0F, 0x10, 0x10, 0x0E, 0x01, 0x01, 0x1E},
		'T':  {0x1F, 0x04, 0x04, 0x04, 0x04, 0x04, 0x04},
		'U':  {0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x0E},
		'V':  {0x11, 0x11, 0x11, 0x11, 0x11, 0x0A, 0x04},
		'W':  {0x11, 0x11, 0x11, 0x15, 0x15, 0x15, 0x0A},
		'X':  {0x11, 0x11, 0x0A, 0x04, 0x0A, 0x11, 0x11},
		'Y':  {0x11, 0x11, 0x11, 0x0A, 0x04, 0x04, 0x04},
		'Z':  {0x1F, 0x01, 0x02, 0x04, 0x08, 0x10, 0x1F},
		'-':  {0x00, 0x00, 0x00, 0x1F, 0x00, 0x00, 0x00},
		'#':  {0x0A, 0x0A, 0x1F, 0x0A, 0x1F, 0x0A, 0x0A},
		'[':  {0x0E, 0x08, 0x08, 0x08, 0x08, 0x08, 0x0E},
		']':  {0x0E, 0x02, 0x02, 0x02, 0x02, 0x02, 0x0E},
		',':  {0x00, 0x00, 0x00, 0x00, 0x0C, 0x04, 0x08},
		'.':  {0x00, 0x00, 0x00, 0x00, 0x00, 0x0C, 0x0C},
		':':  {0x00, 0x0C, 0x0C, 0x00, 0x0C, 0x0C, 0x00},
		'/':  {0x00, 0x01, 0x02, 0x04, 0x08, 0x10, 0x00},
		'?':  {0x0E, 0x11, 0x01, 0x02, 0x04, 0x00, 0x04},
		'(':  {0x02, 0x04, 0x08, 0x08, 0x08, 0x04, 0x02},
		')':  {0x08, 0x04, 0x02, 0x02, 0x02, 0x04, 0x08},
		'=':  {0x00, 0x00, 0x1F, 0x00, 0x1F, 0x00, 0x00},
		'+':  {0x00, 0x04, 0x04, 0x1F, 0x04, 0x04, 0x00},
		'<':  {0x02, 0x04, 0x08, 0x10, 0x08, 0x04, 0x02},
		'>':  {0x08, 0x04, 0x02, 0x01, 0x02, 0x04, 0x08},
		'_':  {0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x1F},
		'!':  {0x04, 0x04, 0x04, 0x04, 0x04, 0x00, 0x04},
		'\'': {0x0C, 0x04, 0x08, 0x00, 0x00, 0x00, 0x00},
		'"':  {0x0A, 0x0A, 0x00, 0x00, 0x00, 0x00, 0x00},
		'*':  {0x00, 0x04, 0x15, 0x0E, 0x15, 0x04, 0x00},
		'%':  {0x18, 0x19, 0x02, 0x04, 0x08, 0x13, 0x03},
	}
)

/// InitFont renders every glyph into a texture once so text can be drawn
/// with texture copies.
///
func InitFont() error {
	var err error

	w := int32(len(Charset) * (GlyphWidth + 1))
	if Font, err = Renderer.CreateTexture(sdl.PIXELFORMAT_RGBA8888, sdl.TEXTUREACCESS_TARGET, w, GlyphHeight); err != nil {
		return err
	}

	// transparent background so text can overlay highlights
	if err = Font.SetBlendMode(sdl.BLENDMODE_BLEND); err != nil {
		return err
	}

	if err = Renderer.SetRenderTarget(Font); err != nil {
		return err
	}
	defer Renderer.SetRenderTarget(nil)

	Renderer.SetDrawColor(0, 0, 0, 0)
	Renderer.Clear()
	Renderer.SetDrawColor(255, 255, 255, 255)

	for i, c := range Charset {
		ox := int32(i * (GlyphWidth + 1))

		for y, row := range Glyphs[c] {
			for x := 0; x < GlyphWidth; x++ {
				if row&(0x10>>uint(x)) != 0 {
					Renderer.DrawPoint(ox+int32(x), int32(y))
				}
			}
		}
	}

	return nil
}

/// GlyphIndex returns the texture cell of c. Lower case letters use the
/// upper case glyphs; characters without a glyph return false.
///
func GlyphIndex(c rune) (int, bool) {
	c = unicode.ToUpper(c)

	for i, g := range Charset {
		if g == c {
			return i, true
		}
	}

	return 0, false
}

/// DrawText using the built-in font.
///
func DrawText(s string, x, y int) {
	src := sdl.Rect{W: GlyphWidth, H: GlyphHeight}
	dst := sdl.Rect{
		X: int32(x),
		Y: int32(y),
		W: GlyphWidth,
		H: GlyphHeight,
	}

	// loop over all the characters in the string
	for _, c := range s {
		if i, ok := GlyphIndex(c); ok {
			src.X = int32(i * (GlyphWidth + 1))

			// draw the character to the renderer
			Renderer.Copy(Font, &src, &dst)
		}

		// advance
		dst.X += GlyphAdvance
	}
}
