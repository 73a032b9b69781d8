package main

import (
	"fmt"

	"github.com/chip8vm/chip8/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

/// Size of the memory panel: bytes per row and visible rows.
///
const (
	MemoryColumns = 16
	MemoryRows    = 8
	MemoryPage    = MemoryColumns * MemoryRows
)

var (
	/// Changes marks everything the current instruction modified.
	///
	Changes = NewChangeSet()

	/// First address shown in the memory panel.
	///
	MemoryAddress int

	/// When set the memory panel scrolls to the most recent write.
	///
	MemoryFollow = true
)

/// RegisterMarks flags the registers written since the last step.
///
type RegisterMarks struct {
	V                 [16]bool
	I, PC, SP, DT, ST bool
}

/// ChangeSet observes a machine and records which registers and memory
/// cells changed since the last Stepped event. Like any observer it may
/// only be read while holding the clock.
///
type ChangeSet struct {
	RegisterMarks

	/// Last is the most recently written address, -1 if nothing was
	/// written since the last step.
	///
	Last int

	memory [chip8.MemorySize]bool
	marked []int
}

/// NewChangeSet returns an empty change set.
///
func NewChangeSet() *ChangeSet {
	return &ChangeSet{Last: -1}
}

/// Notify implements chip8.Observer.
///
func (c *ChangeSet) Notify(e chip8.Event) {
	switch e.Kind {
	case chip8.Stepped:
		c.Clear()
	case chip8.MemoryChanged:
		for n := 0; n < e.Length; n++ {
			c.mark(e.Offset + n)
		}
		c.Last = e.Offset
	case chip8.RegisterChanged:
		switch e.Register {
		case chip8.RegV:
			c.V[e.Index] = true
		case chip8.RegI:
			c.I = true
		case chip8.RegPC:
			c.PC = true
		case chip8.RegSP:
			c.SP = true
		case chip8.RegDT:
			c.DT = true
		case chip8.RegST:
			c.ST = true
		}
	}
}

func (c *ChangeSet) mark(addr int) {
	addr &= chip8.MemorySize - 1

	if !c.memory[addr] {
		c.memory[addr] = true
		c.marked = append(c.marked, addr)
	}
}

/// Clear every mark.
///
func (c *ChangeSet) Clear() {
	for _, addr := range c.marked {
		c.memory[addr] = false
	}

	c.marked = c.marked[:0]
	c.RegisterMarks = RegisterMarks{}
	c.Last = -1
}

/// Memory is true if addr was written since the last step.
///
func (c *ChangeSet) Memory(addr int) bool {
	return c.memory[addr&(chip8.MemorySize-1)]
}

/// MemoryMarks returns the marks of length cells starting at addr.
///
func (c *ChangeSet) MemoryMarks(addr, length int) []bool {
	marks := make([]bool, length)
	for n := range marks {
		marks[n] = c.Memory(addr + n)
	}

	return marks
}

/// FollowAddress returns the first address of a page that shows addr
/// in its middle row.
///
func FollowAddress(addr int) int {
	row := addr/MemoryColumns - MemoryRows/2

	if last := chip8.MemorySize/MemoryColumns - MemoryRows; row > last {
		row = last
	}
	if row < 0 {
		row = 0
	}

	return row * MemoryColumns
}

/// ScrollMemory moves the memory panel by whole pages, wrapping around the
/// address space, and stops it following writes.
///
func ScrollMemory(pages int) {
	MemoryFollow = false
	MemoryAddress = ((MemoryAddress+pages*MemoryPage)%chip8.MemorySize + chip8.MemorySize) % chip8.MemorySize
}

/// Highlight the background of a line of text width characters wide.
///
func Highlight(x, y, width int) {
	Renderer.SetDrawColor(112, 92, 36, 255)
	Renderer.FillRect(&sdl.Rect{
		X: int32(x) - 1,
		Y: int32(y) - 1,
		W: int32(width*GlyphAdvance) + 1,
		H: 9,
	})
}

/// DebugMemory shows a hex dump of the memory panel page, highlighting
/// the cells written by the last instruction.
///
func DebugMemory(s *Snapshot, x, y int) {
	for row := 0; row < MemoryRows; row++ {
		addr := s.MemoryAddress + row*MemoryColumns
		ry := y + row*10

		DrawText(fmt.Sprintf("%03X", addr), x, ry)

		for col := 0; col < MemoryColumns; col++ {
			n := row*MemoryColumns + col
			cx := x + (4+col*3)*GlyphAdvance

			if s.MemoryMarks[n] {
				Highlight(cx, ry, 2)
			}

			DrawText(fmt.Sprintf("%02X", s.Memory[n]), cx, ry)
		}
	}
}
