package chip8

import (
	"fmt"
	"strings"
)

/// Instruction is a single entry of the decode table.
///
type Instruction struct {
	/// Mask selects the opcode bits that identify the instruction and
	/// Match is the value those bits must have.
	///
	Mask  uint16
	Match uint16

	/// Pattern is the conventional opcode notation, e.g. "8XY4".
	///
	Pattern string

	/// Name is the assembly mnemonic, e.g. "ADD".
	///
	Name string

	/// operands formats the operand list for the mnemonic.
	///
	operands func(op Opcode) string

	/// exec runs the instruction. When jump is false the caller advances
	/// the program counter to the next instruction, otherwise to next.
	///
	exec func(vm *Machine, op Opcode) (next uint16, jump bool, err error)
}

/// Matches returns true if op decodes to this instruction.
///
func (in *Instruction) Matches(op Opcode) bool {
	return uint16(op)&in.Mask == in.Match
}

/// Mnemonic renders op as assembly, e.g. "ADD    V3, V4".
///
func (in *Instruction) Mnemonic(op Opcode) string {
	if in.operands == nil {
		return in.Name
	}

	return fmt.Sprintf("%-6s %s", in.Name, in.operands(op))
}

/// Execute runs the instruction against vm.
///
func (in *Instruction) Execute(vm *Machine, op Opcode) (uint16, bool, error) {
	return in.exec(vm, op)
}

/// operand formatters
///
func fmtAddr(op Opcode) string { return fmt.Sprintf("#%03X", op.NNN()) }
func fmtXNN(op Opcode) string  { return fmt.Sprintf("V%X, #%02X", op.X(), op.NN()) }
func fmtXY(op Opcode) string   { return fmt.Sprintf("V%X, V%X", op.X(), op.Y()) }
func fmtX(op Opcode) string    { return fmt.Sprintf("V%X", op.X()) }

func fmtConst(s string) func(Opcode) string {
	return func(op Opcode) string {
		return strings.ReplaceAll(s, "X", fmt.Sprintf("%X", op.X()))
	}
}

/// instructions is the decode table. It is searched in order and the
/// first match wins, so full 16-bit matches come before the 4-bit class
/// match they overlap with (00E0 and 00EE before 0NNN).
///
var instructions = []Instruction{
	{0xFFFF, 0x00E0, "00E0", "CLS", nil, (*Machine).cls},
	{0xFFFF, 0x00EE, "00EE", "RET", nil, (*Machine).ret},
	{0xF000, 0x0000, "0NNN", "SYS", fmtAddr, (*Machine).sys},
	{0xF000, 0x1000, "1NNN", "JP", fmtAddr, (*Machine).jump},
	{0xF000, 0x2000, "2NNN", "CALL", fmtAddr, (*Machine).call},
	{0xF000, 0x3000, "3XNN", "SE", fmtXNN, (*Machine).skipIf},
	{0xF000, 0x4000, "4XNN", "SNE", fmtXNN, (*Machine).skipIfNot},
	{0xF00F, 0x5000, "5XY0", "SE", fmtXY, (*Machine).skipIfXY},
	{0xF000, 0x6000, "6XNN", "LD", fmtXNN, (*Machine).loadX},
	{0xF000, 0x7000, "7XNN", "ADD", fmtXNN, (*Machine).addX},
	{0xF00F, 0x8000, "8XY0", "LD", fmtXY, (*Machine).loadXY},
	{0xF00F, 0x8001, "8XY1", "OR", fmtXY, (*Machine).or},
	{0xF00F, 0x8002, "8XY2", "AND", fmtXY, (*Machine).and},
	{0xF00F, 0x8003, "8XY3", "XOR", fmtXY, (*Machine).xor},
	{0xF00F, 0x8004, "8XY4", "ADD", fmtXY, (*Machine).addXY},
	{0xF00F, 0x8005, "8XY5", "SUB", fmtXY, (*Machine).subXY},
	{0xF00F, 0x8006, "8XY6", "SHR", fmtX, (*Machine).shr},
	{0xF00F, 0x8007, "8XY7", "SUBN", fmtXY, (*Machine).subYX},
	{0xF00F, 0x800E, "8XYE", "SHL", fmtX, (*Machine).shl},
	{0xF00F, 0x9000, "9XY0", "SNE", fmtXY, (*Machine).skipIfNotXY},
	{0xF000, 0xA000, "ANNN", "LD", func(op Opcode) string { return "I, " + fmtAddr(op) }, (*Machine).loadI},
	{0xF000, 0xB000, "BNNN", "JP", func(op Opcode) string { return "V0, " + fmtAddr(op) }, (*Machine).jumpV0},
	{0xF000, 0xC000, "CXNN", "RND", fmtXNN, (*Machine).random},
	{0xF000, 0xD000, "DXYN", "DRW", func(op Opcode) string { return fmt.Sprintf("V%X, V%X, %d", op.X(), op.Y(), op.N()) }, (*Machine).drw},
	{0xF0FF, 0xE09E, "EX9E", "SKP", fmtX, (*Machine).skipIfPressed},
	{0xF0FF, 0xE0A1, "EXA1", "SKNP", fmtX, (*Machine).skipIfNotPressed},
	{0xF0FF, 0xF007, "FX07", "LD", fmtConst("VX, DT"), (*Machine).loadXDT},
	{0xF0FF, 0xF00A, "FX0A", "LD", fmtConst("VX, K"), (*Machine).loadXK},
	{0xF0FF, 0xF015, "FX15", "LD", fmtConst("DT, VX"), (*Machine).loadDTX},
	{0xF0FF, 0xF018, "FX18", "LD", fmtConst("ST, VX"), (*Machine).loadSTX},
	{0xF0FF, 0xF01E, "FX1E", "ADD", fmtConst("I, VX"), (*Machine).addIX},
	{0xF0FF, 0xF029, "FX29", "LD", fmtConst("F, VX"), (*Machine).loadF},
	{0xF0FF, 0xF033, "FX33", "LD", fmtConst("B, VX"), (*Machine).loadB},
	{0xF0FF, 0xF055, "FX55", "LD", fmtConst("[I], VX"), (*Machine).saveRegs},
	{0xF0FF, 0xF065, "FX65", "LD", fmtConst("VX, [I]"), (*Machine).loadRegs},
}

/// Instructions returns a copy of the decode table in priority order.
///
func Instructions() []Instruction {
	return append([]Instruction(nil), instructions...)
}

/// Decode finds the instruction for op. Unknown opcodes return false.
///
func Decode(op Opcode) (*Instruction, bool) {
	for i := range instructions {
		if instructions[i].Matches(op) {
			return &instructions[i], true
		}
	}

	return nil, false
}

/// Mnemonic renders op as assembly, or "??" if it does not decode.
///
func Mnemonic(op Opcode) string {
	if in, ok := Decode(op); ok {
		return in.Mnemonic(op)
	}

	return "??"
}
