package chip8

/// Instruction implementations. Each returns the next program counter and
/// true when it transfers control, or false to fall through to NextPC.
///

/// clear the video display memory.
///
func (vm *Machine) cls(_ Opcode) (uint16, bool, error) {
	vm.ClearDisplay()
	return 0, false, nil
}

/// return from subroutine.
///
func (vm *Machine) ret(_ Opcode) (uint16, bool, error) {
	address, err := vm.PopStack()
	if err != nil {
		return 0, false, err
	}

	return address, true, nil
}

/// system call an RCA 1802 routine. Machine code isn't supported, so
/// this behaves like a jump.
///
func (vm *Machine) sys(op Opcode) (uint16, bool, error) {
	return op.NNN(), true, nil
}

/// jump to address.
///
func (vm *Machine) jump(op Opcode) (uint16, bool, error) {
	return op.NNN(), true, nil
}

/// call a subroutine at address.
///
func (vm *Machine) call(op Opcode) (uint16, bool, error) {
	if err := vm.PushStack(vm.NextPC()); err != nil {
		return 0, false, err
	}

	return op.NNN(), true, nil
}

/// skip returns SkipPC when cond holds.
///
func (vm *Machine) skip(cond bool) (uint16, bool, error) {
	if cond {
		return vm.SkipPC(), true, nil
	}

	return 0, false, nil
}

/// skip next instruction if vx == n.
///
func (vm *Machine) skipIf(op Opcode) (uint16, bool, error) {
	return vm.skip(vm.v[op.X()] == op.NN())
}

/// skip next instruction if vx != n.
///
func (vm *Machine) skipIfNot(op Opcode) (uint16, bool, error) {
	return vm.skip(vm.v[op.X()] != op.NN())
}

/// skip next instruction if vx == vy.
///
func (vm *Machine) skipIfXY(op Opcode) (uint16, bool, error) {
	return vm.skip(vm.v[op.X()] == vm.v[op.Y()])
}

/// skip next instruction if vx != vy.
///
func (vm *Machine) skipIfNotXY(op Opcode) (uint16, bool, error) {
	return vm.skip(vm.v[op.X()] != vm.v[op.Y()])
}

/// skip next instruction if the held key is vx.
///
func (vm *Machine) skipIfPressed(op Opcode) (uint16, bool, error) {
	key, held := vm.Key()
	return vm.skip(held && key == vm.v[op.X()])
}

/// skip next instruction if the held key isn't vx.
///
func (vm *Machine) skipIfNotPressed(op Opcode) (uint16, bool, error) {
	key, held := vm.Key()
	return vm.skip(!held || key != vm.v[op.X()])
}

/// load n into vx.
///
func (vm *Machine) loadX(op Opcode) (uint16, bool, error) {
	vm.SetV(op.X(), op.NN())
	return 0, false, nil
}

/// add n to vx, carry is unaffected.
///
func (vm *Machine) addX(op Opcode) (uint16, bool, error) {
	vm.SetV(op.X(), vm.v[op.X()]+op.NN())
	return 0, false, nil
}

/// load vy into vx.
///
func (vm *Machine) loadXY(op Opcode) (uint16, bool, error) {
	vm.SetV(op.X(), vm.v[op.Y()])
	return 0, false, nil
}

/// or vx with vy into vx.
///
func (vm *Machine) or(op Opcode) (uint16, bool, error) {
	vm.SetV(op.X(), vm.v[op.X()]|vm.v[op.Y()])
	return 0, false, nil
}

/// and vx with vy into vx.
///
func (vm *Machine) and(op Opcode) (uint16, bool, error) {
	vm.SetV(op.X(), vm.v[op.X()]&vm.v[op.Y()])
	return 0, false, nil
}

/// xor vx with vy into vx.
///
func (vm *Machine) xor(op Opcode) (uint16, bool, error) {
	vm.SetV(op.X(), vm.v[op.X()]^vm.v[op.Y()])
	return 0, false, nil
}

/// flag converts a condition to the VF value.
///
func flag(cond bool) byte {
	if cond {
		return 1
	}

	return 0
}

/// add vy to vx and set carry.
///
func (vm *Machine) addXY(op Opcode) (uint16, bool, error) {
	sum := int(vm.v[op.X()]) + int(vm.v[op.Y()])

	vm.SetV(0xF, flag(sum > 0xFF))
	vm.SetV(op.X(), byte(sum))

	return 0, false, nil
}

/// subtract vy from vx. VF is set only when the difference is positive,
/// so equal operands clear it.
///
func (vm *Machine) subXY(op Opcode) (uint16, bool, error) {
	diff := int(vm.v[op.X()]) - int(vm.v[op.Y()])

	vm.SetV(0xF, flag(diff > 0))
	vm.SetV(op.X(), byte(diff))

	return 0, false, nil
}

/// subtract vx from vy and store in vx. Same flag rule as subXY.
///
func (vm *Machine) subYX(op Opcode) (uint16, bool, error) {
	diff := int(vm.v[op.Y()]) - int(vm.v[op.X()])

	vm.SetV(0xF, flag(diff > 0))
	vm.SetV(op.X(), byte(diff))

	return 0, false, nil
}

/// shr vx 1 bit, set carry to LSB of vx before shift. vy is ignored.
///
func (vm *Machine) shr(op Opcode) (uint16, bool, error) {
	x := vm.v[op.X()]

	vm.SetV(0xF, x&1)
	vm.SetV(op.X(), x>>1)

	return 0, false, nil
}

/// shl vx 1 bit, set carry to MSB of vx before shift. vy is ignored.
///
func (vm *Machine) shl(op Opcode) (uint16, bool, error) {
	x := vm.v[op.X()]

	vm.SetV(0xF, x>>7)
	vm.SetV(op.X(), x<<1)

	return 0, false, nil
}

/// load address register.
///
func (vm *Machine) loadI(op Opcode) (uint16, bool, error) {
	vm.SetI(op.NNN())
	return 0, false, nil
}

/// jump to address + v0.
///
func (vm *Machine) jumpV0(op Opcode) (uint16, bool, error) {
	return uint16(vm.v[0]) + op.NNN(), true, nil
}

/// load a random number & n into vx.
///
func (vm *Machine) random(op Opcode) (uint16, bool, error) {
	vm.SetV(op.X(), byte(vm.rnd.Intn(256))&op.NN())
	return 0, false, nil
}

/// draw an 8xN sprite at I to video memory at vx, vy. Every pixel wraps
/// around the display independently. VF is set if any set pixel was
/// turned off.
///
func (vm *Machine) drw(op Opcode) (uint16, bool, error) {
	x := int(vm.v[op.X()])
	y := int(vm.v[op.Y()])
	n := int(op.N())

	collision := false

	for row := 0; row < n; row++ {
		py := (y + row) % DisplayHeight
		sprite := vm.Byte(int(vm.i) + row)

		for col := 0; col < 8; col++ {
			px := (x + col) % DisplayWidth
			prev := vm.display.Pixel(px, py)
			bit := sprite&(0x80>>uint(col)) != 0

			vm.display.SetPixel(px, py, prev != bit)

			if prev && bit {
				collision = true
			}
		}

		vm.rowChanged(x%DisplayWidth, py)
	}

	vm.SetV(0xF, flag(collision))
	vm.events.emit(Event{Kind: DisplayUpdated, X: x, Y: y, Height: n})

	return 0, false, nil
}

/// rowChanged emits the memory event for a sprite row starting at x. A
/// row that wraps horizontally reports the whole display line.
///
func (vm *Machine) rowChanged(x, y int) {
	if x+8 > DisplayWidth {
		begin := vm.display.ByteIndex(0, y)
		vm.memoryChanged(DisplayOffset+begin, DisplayWidth/8)
		return
	}

	begin := vm.display.ByteIndex(x, y)
	end := vm.display.ByteIndex(x+7, y)

	vm.memoryChanged(DisplayOffset+begin, end-begin+1)
}

/// load delay timer into vx.
///
func (vm *Machine) loadXDT(op Opcode) (uint16, bool, error) {
	vm.SetV(op.X(), vm.dt)
	return 0, false, nil
}

/// load vx with the held key. With no key held the instruction is run
/// again next step, it never blocks the caller.
///
func (vm *Machine) loadXK(op Opcode) (uint16, bool, error) {
	key, held := vm.Key()
	if !held {
		return vm.pc, true, nil
	}

	vm.SetV(op.X(), key)

	return 0, false, nil
}

/// load vx into delay timer.
///
func (vm *Machine) loadDTX(op Opcode) (uint16, bool, error) {
	vm.SetDT(vm.v[op.X()])
	return 0, false, nil
}

/// load vx into sound timer.
///
func (vm *Machine) loadSTX(op Opcode) (uint16, bool, error) {
	vm.SetST(vm.v[op.X()])
	return 0, false, nil
}

/// add vx to i, VF is unaffected.
///
func (vm *Machine) addIX(op Opcode) (uint16, bool, error) {
	vm.SetI(vm.i + uint16(vm.v[op.X()]))
	return 0, false, nil
}

/// load font sprite for vx into I.
///
func (vm *Machine) loadF(op Opcode) (uint16, bool, error) {
	vm.SetI(FontOffset + uint16(vm.v[op.X()])*GlyphSize)
	return 0, false, nil
}

/// store the BCD of vx at I, I+1 and I+2.
///
func (vm *Machine) loadB(op Opcode) (uint16, bool, error) {
	n := vm.v[op.X()]
	i := int(vm.i)

	vm.memory[i&(MemorySize-1)] = n / 100
	vm.memory[(i+1)&(MemorySize-1)] = n / 10 % 10
	vm.memory[(i+2)&(MemorySize-1)] = n % 10
	vm.memoryChanged(i, 3)

	return 0, false, nil
}

/// save registers v0..vx to I.
///
func (vm *Machine) saveRegs(op Opcode) (uint16, bool, error) {
	vm.RegDump(op.X())
	return 0, false, nil
}

/// load registers v0..vx from I.
///
func (vm *Machine) loadRegs(op Opcode) (uint16, bool, error) {
	vm.RegLoad(op.X())
	return 0, false, nil
}
