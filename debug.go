package main

import (
	"fmt"

	"github.com/chip8vm/chip8/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

/// Number of instructions shown in the disassembly panel.
///
const ListingSize = 16

var (
	/// Current debug window address.
	///
	Address uint16
)

/// Snapshot is a copy of the machine state taken once per frame, so the
/// panels can be drawn without holding the clock.
///
type Snapshot struct {
	V      [16]byte
	I, PC  uint16
	SP     byte
	DT, ST byte
	Key    byte
	Held   bool
	Stack  []uint16

	/// Listing starts at Address.
	///
	Listing []string

	/// Video is a copy of display memory, nil if it has not changed.
	///
	Video []byte

	/// Registers changed by the last instruction.
	///
	Marks RegisterMarks

	/// Memory panel page starting at MemoryAddress and its change marks.
	///
	MemoryAddress int
	Memory        []byte
	MemoryMarks   []bool
}

/// TakeSnapshot copies everything the window shows out of vm. Must be
/// called while holding the clock.
///
func TakeSnapshot(vm *chip8.Machine) Snapshot {
	s := Snapshot{
		I:     vm.I(),
		PC:    vm.PC(),
		SP:    vm.SP(),
		DT:    vm.DT(),
		ST:    vm.ST(),
		Stack: vm.Stack(),
	}

	for x := range s.V {
		s.V[x] = vm.V(x)
	}

	s.Key, s.Held = vm.Key()

	// keep the listing still while the program counter is within it
	if s.PC < Address || s.PC >= Address+ListingSize*2 || (Address^s.PC)&1 == 1 {
		if s.PC < 2 {
			Address = s.PC
		} else {
			Address = s.PC - 2
		}
	}

	s.Listing = vm.Listing(int(Address), ListingSize)

	if MemoryFollow && Changes.Last >= 0 {
		MemoryAddress = FollowAddress(Changes.Last)
	}

	s.Marks = Changes.RegisterMarks
	s.MemoryAddress = MemoryAddress
	s.Memory = vm.ReadMemory(MemoryAddress, MemoryPage)
	s.MemoryMarks = Changes.MemoryMarks(MemoryAddress, MemoryPage)

	if Dirty {
		s.Video = vm.ReadMemory(chip8.DisplayOffset, chip8.DisplaySize)
		Dirty = false
	}

	return s
}

/// Show the HELP text in the log.
///
func DebugHelp() {
	Messages.Logln("Virtual keys:")
	Messages.Log("  1-2-3-4")
	Messages.Log("  Q-W-E-R")
	Messages.Log("  A-S-D-F")
	Messages.Log("  Z-X-C-V")
	Messages.Logln("Emulation keys:")
	Messages.Log("  ESC      - Quit")
	Messages.Log("  BS       - Reset (+CTRL paused)")
	Messages.Log("  UP/DOWN  - Scroll log")
	Messages.Log("  HOME/END - Scroll log")
	Messages.Log("  F1       - Help")
	Messages.Log("  F2       - Reload program")
	Messages.Log("  F3       - Open program")
	Messages.Log("  F5/SPACE - Pause")
	Messages.Log("  F6/F10   - Step")
	Messages.Log("  F7       - Memory follows writes")
	Messages.Log("  F8       - Page memory (+SHIFT back)")
}

/// DebugAssembly renders the disassembled instructions around
/// the CHIP-8 program counter.
///
func DebugAssembly(s *Snapshot, paused bool, x, y int) {
	for i, line := range s.Listing {
		if Address+uint16(i*2) == s.PC {
			if paused {
				Renderer.SetDrawColor(176, 32, 57, 255)
			} else {
				Renderer.SetDrawColor(57, 102, 176, 255)
			}

			// highlight the current instruction
			Renderer.FillRect(&sdl.Rect{
				X: int32(x),
				Y: int32(y+i*10) - 1,
				W: 196,
				H: 9,
			})
		}

		DrawText(line, x, y+i*10)
	}
}

/// Show the current value of all the CHIP-8 registers.
///
func DebugRegisters(s *Snapshot, x, y int) {
	for i := 0; i < 16; i++ {
		if s.Marks.V[i] {
			Highlight(x, y+i*10, 9)
		}
		DrawText(fmt.Sprintf("V%X - #%02X", i, s.V[i]), x, y+i*10)
	}

	// shift over for the other registers
	x += 70

	// mark the registers changed by the last instruction
	for _, m := range []struct {
		changed bool
		line    int
		width   int
	}{
		{s.Marks.PC, 0, 10},
		{s.Marks.SP, 1, 8},
		{s.Marks.I, 3, 10},
		{s.Marks.DT, 5, 8},
		{s.Marks.ST, 6, 8},
	} {
		if m.changed {
			Highlight(x, y+m.line*10, m.width)
		}
	}

	DrawText(fmt.Sprintf("PC - #%04X", s.PC), x, y)
	DrawText(fmt.Sprintf("SP - #%02X", s.SP), x, y+10)
	DrawText(fmt.Sprintf("I  - #%04X", s.I), x, y+30)
	DrawText(fmt.Sprintf("DT - #%02X", s.DT), x, y+50)
	DrawText(fmt.Sprintf("ST - #%02X", s.ST), x, y+60)

	if s.Held {
		DrawText(fmt.Sprintf("K  - %X", s.Key), x, y+80)
	} else {
		DrawText("K  - -", x, y+80)
	}

	// most recent return address
	if n := len(s.Stack); n > 0 {
		DrawText(fmt.Sprintf("RET - #%04X", s.Stack[n-1]), x, y+100)
	}
}

/// Show the current log text.
///
func DebugLog(x, y, lines int) {
	for _, line := range Messages.Window(lines) {
		DrawText(line, x, y)

		// advance to the next line
		y += 10
	}
}
