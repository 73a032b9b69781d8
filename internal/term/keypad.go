package term

// KeyMap maps keyboard characters to CHIP-8 keys. The layout is the
// conventional 4x4 block under the number row.
var KeyMap = map[byte]byte{
	'x': 0x0,
	'1': 0x1,
	'2': 0x2,
	'3': 0x3,
	'q': 0x4,
	'w': 0x5,
	'e': 0x6,
	'a': 0x7,
	's': 0x8,
	'd': 0x9,
	'z': 0xA,
	'c': 0xB,
	'4': 0xC,
	'r': 0xD,
	'f': 0xE,
	'v': 0xF,
}

// HoldFrames is how many frames a key stays pressed after it is typed.
// Terminals report key presses (and repeats) but never releases.
const HoldFrames = 6

// Lookup returns the CHIP-8 key for the character c, ignoring case.
func Lookup(c byte) (byte, bool) {
	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}

	key, ok := KeyMap[c]
	return key, ok
}

// Keypad emulates key releases by holding each typed key for a number of
// frames.
type Keypad struct {
	key    byte
	frames int
}

// Press holds key for the next HoldFrames frames.
func (k *Keypad) Press(key byte) {
	k.key = key
	k.frames = HoldFrames
}

// Held returns the key being held, if any.
func (k *Keypad) Held() (byte, bool) {
	return k.key, k.frames > 0
}

// Frame advances the keypad one frame. It returns true when the held key
// was released during this frame.
func (k *Keypad) Frame() bool {
	if k.frames == 0 {
		return false
	}

	k.frames--
	return k.frames == 0
}
