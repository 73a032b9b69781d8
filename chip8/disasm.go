package chip8

import "fmt"

/// Disassemble the CHIP-8 instruction at address i.
///
func (vm *Machine) Disassemble(i int) string {
	if i < 0 || i >= MemorySize-1 {
		return ""
	}

	// fetch the instruction at this location
	inst := Opcode(vm.Word(i))

	// end of program memory?
	if inst == 0 {
		return fmt.Sprintf("%04X -", i)
	}

	return fmt.Sprintf("%04X - %s", i, Mnemonic(inst))
}

/// Listing disassembles count instructions starting at address.
///
func (vm *Machine) Listing(address, count int) []string {
	lines := make([]string, 0, count)

	for n := 0; n < count; n++ {
		if s := vm.Disassemble(address + n*2); s != "" {
			lines = append(lines, s)
		}
	}

	return lines
}
