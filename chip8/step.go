package chip8

import (
	"fmt"
)

/// Fetch the 16-bit instruction at the program counter.
///
func (vm *Machine) Fetch() Opcode {
	return Opcode(vm.Word(int(vm.pc)))
}

/// Step the CHIP-8 virtual machine a single instruction, then tick the
/// timers every timerCycle instructions.
///
/// Opcodes that don't decode are skipped. If the instruction fails (stack
/// overflow or underflow) the error is returned and the program counter
/// still points at it.
///
func (vm *Machine) Step() error {
	vm.events.emit(Event{Kind: Stepped})

	op := vm.Fetch()
	next := vm.NextPC()

	if in, ok := Decode(op); ok {
		address, jump, err := in.Execute(vm, op)
		if err != nil {
			return fmt.Errorf("%04X %04X %s: %w", vm.pc, uint16(op), in.Name, err)
		}

		if jump {
			next = address
		}
	}

	// jumps and skips wrap around the address space
	vm.SetPC(next & (MemorySize - 1))

	vm.cycle = (vm.cycle + 1) % vm.timerCycle
	if vm.cycle == 0 {
		if vm.dt != 0 {
			vm.SetDT(vm.dt - 1)
		}

		if vm.st != 0 {
			vm.SetST(vm.st - 1)
		}
	}

	return nil
}
