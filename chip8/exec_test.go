package chip8

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

type execTest struct {
	name    string
	program []uint16
	setup   func(vm *Machine)
	steps   int
	check   func(t *testing.T, vm *Machine)
}

func runExecTests(t *testing.T, tests []execTest) {
	t.Helper()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := newTestMachine(t, tt.program...)
			if tt.setup != nil {
				tt.setup(vm)
			}

			steps := tt.steps
			if steps == 0 {
				steps = len(tt.program)
			}

			for n := 0; n < steps; n++ {
				assert.NoError(t, vm.Step())
			}

			tt.check(t, vm)
		})
	}
}

func TestControlFlow(t *testing.T) {
	runExecTests(t, []execTest{
		{
			name:    "jump",
			program: []uint16{0x1345},
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, uint16(0x345), vm.PC())
			},
		},
		{
			name:    "jump to zero",
			program: []uint16{0x1000},
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, uint16(0), vm.PC())
			},
		},
		{
			name:    "machine code call jumps",
			program: []uint16{0x0300},
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, uint16(0x300), vm.PC())
				assert.Equal(t, byte(0), vm.SP())
			},
		},
		{
			name:    "jump with offset",
			program: []uint16{0x6004, 0xB300},
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, uint16(0x304), vm.PC())
			},
		},
		{
			name:    "jump with offset wraps",
			program: []uint16{0x60FF, 0xBFFF},
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, uint16(0x0FE), vm.PC())
				assert.Equal(t, "00FE -", vm.Disassemble(int(vm.PC())))
			},
		},
		{
			name:    "call",
			program: []uint16{0x2206},
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, uint16(0x206), vm.PC())
				assert.Equal(t, []uint16{0x202}, vm.Stack())
			},
		},
		{
			name:    "call and return",
			program: []uint16{0x2206, 0x6001, 0x1204, 0x00EE},
			steps:   3,
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, uint16(0x204), vm.PC())
				assert.Equal(t, byte(1), vm.V(0))
				assert.Equal(t, byte(0), vm.SP())
			},
		},
		{
			name:    "unknown opcode",
			program: []uint16{0x5001, 0x8008, 0xE000, 0xFFFF},
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, uint16(0x208), vm.PC())
				assert.Equal(t, byte(0), vm.V(0xF))
			},
		},
	})
}

func TestSkips(t *testing.T) {
	runExecTests(t, []execTest{
		{
			name:    "se taken",
			program: []uint16{0x6005, 0x3005},
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, uint16(0x206), vm.PC())
			},
		},
		{
			name:    "se not taken",
			program: []uint16{0x6005, 0x3006},
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, uint16(0x204), vm.PC())
			},
		},
		{
			name:    "sne taken",
			program: []uint16{0x6005, 0x4006},
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, uint16(0x206), vm.PC())
			},
		},
		{
			name:    "se registers",
			program: []uint16{0x6005, 0x6105, 0x5010},
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, uint16(0x208), vm.PC())
			},
		},
		{
			name:    "sne registers not taken",
			program: []uint16{0x6005, 0x6105, 0x9010},
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, uint16(0x206), vm.PC())
			},
		},
		{
			name:    "skp held",
			program: []uint16{0x6007, 0xE09E},
			setup:   func(vm *Machine) { vm.PressKey(7) },
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, uint16(0x206), vm.PC())
			},
		},
		{
			name:    "skp no key",
			program: []uint16{0x6000, 0xE09E},
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, uint16(0x204), vm.PC())
			},
		},
		{
			name:    "sknp other key",
			program: []uint16{0x6007, 0xE0A1},
			setup:   func(vm *Machine) { vm.PressKey(6) },
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, uint16(0x206), vm.PC())
			},
		},
		{
			name:    "sknp no key",
			program: []uint16{0x6000, 0xE0A1},
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, uint16(0x206), vm.PC())
			},
		},
		{
			name:    "sknp held",
			program: []uint16{0x6007, 0xE0A1},
			setup:   func(vm *Machine) { vm.PressKey(7) },
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, uint16(0x204), vm.PC())
			},
		},
	})
}

func TestArithmetic(t *testing.T) {
	runExecTests(t, []execTest{
		{
			name:    "add immediate wraps without carry",
			program: []uint16{0x60FF, 0x6F07, 0x7002},
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, byte(0x01), vm.V(0))
				assert.Equal(t, byte(0x07), vm.V(0xF))
			},
		},
		{
			name:    "copy or and xor",
			program: []uint16{0x600C, 0x610A, 0x8200, 0x8211, 0x8300, 0x8312, 0x8400, 0x8413},
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, byte(0x0E), vm.V(2))
				assert.Equal(t, byte(0x08), vm.V(3))
				assert.Equal(t, byte(0x06), vm.V(4))
			},
		},
		{
			name:    "add carry",
			program: []uint16{0x60FF, 0x6101, 0x8014},
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, byte(0x00), vm.V(0))
				assert.Equal(t, byte(1), vm.V(0xF))
			},
		},
		{
			name:    "add no carry",
			program: []uint16{0x6F01, 0x6010, 0x6120, 0x8014},
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, byte(0x30), vm.V(0))
				assert.Equal(t, byte(0), vm.V(0xF))
			},
		},
		{
			name:    "sub no borrow",
			program: []uint16{0x6005, 0x6103, 0x8015},
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, byte(2), vm.V(0))
				assert.Equal(t, byte(1), vm.V(0xF))
			},
		},
		{
			name:    "sub equal operands clears flag",
			program: []uint16{0x6F01, 0x6003, 0x6103, 0x8015},
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, byte(0), vm.V(0))
				assert.Equal(t, byte(0), vm.V(0xF))
			},
		},
		{
			name:    "sub borrow",
			program: []uint16{0x6003, 0x6105, 0x8015},
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, byte(0xFE), vm.V(0))
				assert.Equal(t, byte(0), vm.V(0xF))
			},
		},
		{
			name:    "subn no borrow",
			program: []uint16{0x6003, 0x6105, 0x8017},
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, byte(2), vm.V(0))
				assert.Equal(t, byte(1), vm.V(0xF))
			},
		},
		{
			name:    "subn equal operands clears flag",
			program: []uint16{0x6F01, 0x6009, 0x6109, 0x8017},
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, byte(0), vm.V(0))
				assert.Equal(t, byte(0), vm.V(0xF))
			},
		},
		{
			name:    "subn borrow",
			program: []uint16{0x6005, 0x6103, 0x8017},
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, byte(0xFE), vm.V(0))
				assert.Equal(t, byte(0), vm.V(0xF))
			},
		},
		{
			name:    "shr ignores vy",
			program: []uint16{0x6005, 0x61FF, 0x8016},
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, byte(0x02), vm.V(0))
				assert.Equal(t, byte(1), vm.V(0xF))
			},
		},
		{
			name:    "shl ignores vy",
			program: []uint16{0x6081, 0x6100, 0x801E},
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, byte(0x02), vm.V(0))
				assert.Equal(t, byte(1), vm.V(0xF))
			},
		},
		{
			name:    "shl no carry",
			program: []uint16{0x6F01, 0x6041, 0x800E},
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, byte(0x82), vm.V(0))
				assert.Equal(t, byte(0), vm.V(0xF))
			},
		},
		{
			name:    "result wins over flag in vf",
			program: []uint16{0x6FFF, 0x6101, 0x8F14},
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, byte(0x00), vm.V(0xF))
			},
		},
		{
			name:    "random masked to zero",
			program: []uint16{0x60FF, 0xC000},
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, byte(0), vm.V(0))
			},
		},
		{
			name:    "random masked",
			program: []uint16{0xC00F, 0xC1F0},
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, byte(0), vm.V(0)&0xF0)
				assert.Equal(t, byte(0), vm.V(1)&0x0F)
			},
		},
	})
}

func TestIndexAndMemory(t *testing.T) {
	runExecTests(t, []execTest{
		{
			name:    "set index",
			program: []uint16{0xA123},
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, uint16(0x123), vm.I())
			},
		},
		{
			name:    "add to index leaves vf",
			program: []uint16{0xA0FF, 0x6002, 0xF01E},
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, uint16(0x101), vm.I())
				assert.Equal(t, byte(0), vm.V(0xF))
			},
		},
		{
			name:    "glyph address",
			program: []uint16{0x600A, 0xF029},
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, uint16(50), vm.I())
				assert.Equal(t, Font[50:55], vm.ReadMemory(int(vm.I()), 5))
			},
		},
		{
			name:    "bcd 255",
			program: []uint16{0x60FF, 0xA300, 0xF033},
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, []byte{2, 5, 5}, vm.ReadMemory(0x300, 3))
			},
		},
		{
			name:    "bcd 0",
			program: []uint16{0x6000, 0xA300, 0xF033},
			setup:   func(vm *Machine) { vm.SetMemory(0x300, []byte{9, 9, 9}) },
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, []byte{0, 0, 0}, vm.ReadMemory(0x300, 3))
			},
		},
		{
			name:    "bcd 107",
			program: []uint16{0x606B, 0xA300, 0xF033},
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, []byte{1, 0, 7}, vm.ReadMemory(0x300, 3))
			},
		},
		{
			name:    "register dump",
			program: []uint16{0xA300, 0xF055},
			setup:   func(vm *Machine) { vm.SetV(0, 0x12); vm.SetV(1, 0x34) },
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, []byte{0x12, 0x00}, vm.ReadMemory(0x300, 2))
				assert.Equal(t, uint16(0x300), vm.I())
			},
		},
		{
			name:    "register load",
			program: []uint16{0xA300, 0xF265},
			setup:   func(vm *Machine) { vm.SetMemory(0x300, []byte{1, 2, 3, 4}) },
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, byte(1), vm.V(0))
				assert.Equal(t, byte(2), vm.V(1))
				assert.Equal(t, byte(3), vm.V(2))
				assert.Equal(t, byte(0), vm.V(3))
				assert.Equal(t, uint16(0x300), vm.I())
			},
		},
		{
			name:    "timers",
			program: []uint16{0x6009, 0xF015, 0xF118, 0xF207},
			setup: func(vm *Machine) {
				vm.SetTimerCycle(100)
				vm.SetV(1, 4)
			},
			check: func(t *testing.T, vm *Machine) {
				assert.Equal(t, byte(9), vm.DT())
				assert.Equal(t, byte(4), vm.ST())
				assert.Equal(t, byte(9), vm.V(2))
			},
		},
	})
}

func TestAwaitKey(t *testing.T) {
	vm := newTestMachine(t, 0xF30A, 0x6401)

	for n := 0; n < 5; n++ {
		assert.NoError(t, vm.Step())
		assert.Equal(t, uint16(0x200), vm.PC())
	}

	vm.PressKey(7)
	assert.NoError(t, vm.Step())
	assert.Equal(t, uint16(0x202), vm.PC())
	assert.Equal(t, byte(7), vm.V(3))

	// the key is still held afterwards
	key, held := vm.Key()
	assert.True(t, held)
	assert.Equal(t, byte(7), key)
}

func TestStackErrors(t *testing.T) {
	vm := newTestMachine(t, 0x00EE)

	err := vm.Step()
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.Equal(t, uint16(0x200), vm.PC())

	// a subroutine calling itself overflows after 16 calls
	vm = newTestMachine(t, 0x2200)
	for n := 0; n < 16; n++ {
		assert.NoError(t, vm.Step())
	}

	err = vm.Step()
	assert.True(t, errors.Is(err, ErrStackOverflow))
	assert.Equal(t, byte(StackSize), vm.SP())
	assert.Equal(t, uint16(0x200), vm.PC())
}

// spriteProgram draws the 2-row sprite at 0x300 at <x,y> twice.
func spriteProgram(x, y byte) []uint16 {
	return []uint16{
		0x6000 | uint16(x),
		0x6100 | uint16(y),
		0xA300,
		0xD012,
		0xD012,
	}
}

func TestDrawTwiceRestores(t *testing.T) {
	vm := newTestMachine(t, spriteProgram(10, 3)...)
	vm.SetMemory(0x300, []byte{0xA5, 0x3C})
	vm.FillMemory(DisplayOffset+3*8, 0x81, 8)

	before := vm.ReadMemory(DisplayOffset, DisplaySize)

	for n := 0; n < 4; n++ {
		assert.NoError(t, vm.Step())
	}

	first := vm.V(0xF)
	assert.Equal(t, byte(1), first)
	assert.True(t, vm.Display().Pixel(10, 3))
	assert.False(t, vm.Display().Pixel(11, 3))
	assert.True(t, vm.Display().Pixel(12, 3))

	assert.NoError(t, vm.Step())
	assert.Equal(t, byte(1), vm.V(0xF))
	assert.Equal(t, before, vm.ReadMemory(DisplayOffset, DisplaySize))
}

func TestDrawCollisionFlag(t *testing.T) {
	vm := newTestMachine(t, spriteProgram(0, 0)...)
	vm.SetMemory(0x300, []byte{0xF0, 0x90})

	for n := 0; n < 4; n++ {
		assert.NoError(t, vm.Step())
	}
	assert.Equal(t, byte(0), vm.V(0xF))
	assert.Equal(t, []byte{0xF0}, vm.ReadMemory(DisplayOffset, 1))
	assert.Equal(t, []byte{0x90}, vm.ReadMemory(DisplayOffset+8, 1))

	assert.NoError(t, vm.Step())
	assert.Equal(t, byte(1), vm.V(0xF))
	assert.Equal(t, make([]byte, DisplaySize), vm.ReadMemory(DisplayOffset, DisplaySize))
}

func TestDrawWraps(t *testing.T) {
	vm := newTestMachine(t, spriteProgram(62, 31)...)
	vm.SetMemory(0x300, []byte{0xFF, 0x81})

	events := record(vm)
	for n := 0; n < 4; n++ {
		assert.NoError(t, vm.Step())
	}

	fb := vm.Display()
	for _, x := range []int{62, 63, 0, 1, 2, 3, 4, 5} {
		assert.True(t, fb.Pixel(x, 31))
	}
	assert.False(t, fb.Pixel(6, 31))
	assert.False(t, fb.Pixel(61, 31))

	// second row wraps to the top of the display
	assert.True(t, fb.Pixel(62, 0))
	assert.False(t, fb.Pixel(63, 0))
	assert.True(t, fb.Pixel(5, 0))

	var rows []Event
	var updates []Event
	for _, e := range *events {
		switch {
		case e.Kind == MemoryChanged && e.Offset >= DisplayOffset:
			rows = append(rows, e)
		case e.Kind == DisplayUpdated:
			updates = append(updates, e)
		}
	}

	assert.Equal(t, []Event{
		{Kind: MemoryChanged, Offset: DisplayOffset + 31*8, Length: 8},
		{Kind: MemoryChanged, Offset: DisplayOffset, Length: 8},
	}, rows)
	assert.Equal(t, []Event{{Kind: DisplayUpdated, X: 62, Y: 31, Height: 2}}, updates)
}

func TestDrawRowEvents(t *testing.T) {
	vm := newTestMachine(t, 0x600C, 0x6102, 0xA000, 0xD011)

	events := record(vm)
	for n := 0; n < 4; n++ {
		assert.NoError(t, vm.Step())
	}

	var rows []Event
	for _, e := range *events {
		if e.Kind == MemoryChanged {
			rows = append(rows, e)
		}
	}

	// x=12 spans bytes 1 and 2 of row 2
	assert.Equal(t, []Event{{Kind: MemoryChanged, Offset: DisplayOffset + 2*8 + 1, Length: 2}}, rows)
}

func TestDrawLargeCoordinatesWrap(t *testing.T) {
	vm := newTestMachine(t, 0x6048, 0x6125, 0xA000, 0xD011)

	for n := 0; n < 4; n++ {
		assert.NoError(t, vm.Step())
	}

	// 0x48 = 72 -> 8, 0x25 = 37 -> 5; glyph 0 top row is 0xF0
	fb := vm.Display()
	assert.True(t, fb.Pixel(8, 5))
	assert.True(t, fb.Pixel(11, 5))
	assert.False(t, fb.Pixel(12, 5))
}

func TestClearThenDraw(t *testing.T) {
	vm := newTestMachine(t, 0x00E0, 0xD015)
	vm.FillMemory(DisplayOffset, 0xFF, DisplaySize)

	var beforeDraw []byte
	cleared := false
	vm.Subscribe(ObserverFunc(func(e Event) {
		switch e.Kind {
		case DisplayCleared:
			cleared = true
		case Stepped:
			if vm.Fetch() == 0xD015 {
				beforeDraw = vm.ReadMemory(DisplayOffset, DisplaySize)
			}
		}
	}))

	assert.NoError(t, vm.Step())
	assert.NoError(t, vm.Step())

	assert.True(t, cleared)
	assert.Equal(t, make([]byte, DisplaySize), beforeDraw)
}

func TestRandomUsesSource(t *testing.T) {
	vm := newTestMachine(t, 0xC0FF, 0xC1FF)
	assert.NoError(t, vm.Step())
	assert.NoError(t, vm.Step())

	src := rand.New(rand.NewSource(1))
	assert.Equal(t, byte(src.Intn(256)), vm.V(0))
	assert.Equal(t, byte(src.Intn(256)), vm.V(1))

	vm.SetRand(rand.New(rand.NewSource(1)))
	vm.SetPC(ProgramOffset)
	assert.NoError(t, vm.Step())
	assert.Equal(t, byte(rand.New(rand.NewSource(1)).Intn(256)), vm.V(0))
}
