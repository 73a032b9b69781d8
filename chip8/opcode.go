package chip8

/// Opcode is a 16-bit CHIP-8 instruction word, fetched big-endian.
///
type Opcode uint16

/// X is the register operand in bits 8-11.
///
func (op Opcode) X() int { return int(op&0x0F00) >> 8 }

/// Y is the register operand in bits 4-7.
///
func (op Opcode) Y() int { return int(op&0x00F0) >> 4 }

/// N is the nibble literal in bits 0-3.
///
func (op Opcode) N() byte { return byte(op & 0x000F) }

/// NN is the byte literal in bits 0-7.
///
func (op Opcode) NN() byte { return byte(op & 0x00FF) }

/// NNN is the 12-bit address literal.
///
func (op Opcode) NNN() uint16 { return uint16(op & 0x0FFF) }
