package chip8

import (
	"fmt"
	"math/rand"
	"time"
)

/// Memory map of the CHIP-8. The first 512 bytes hold the font glyphs,
/// programs are loaded at 0x200, the call stack lives just below the
/// display and the display itself is the last 256 bytes.
///
const (
	MemorySize = 0x1000

	FontOffset = 0x000

	ProgramOffset = 0x200
	ProgramEnd    = 0xEBF
	ProgramSize   = ProgramEnd - ProgramOffset + 1

	StackOffset = 0xEA0
	StackSize   = 16 * 2

	DisplayOffset = 0xF00
	DisplayEnd    = 0xFFF
	DisplaySize   = DisplayEnd - DisplayOffset + 1
	DisplayWidth  = 64
	DisplayHeight = 32

	/// Instructions executed per timer decrement.
	///
	TimerCycle = 2

	/// Instructions executed per second by a free-running Clock.
	///
	InstructionRate = 200
)

/// Machine is the CHIP-8 virtual machine state: memory, registers and
/// the framebuffer, which is a view over the display region of memory.
///
/// Every mutation goes through a setter so that subscribed observers see
/// a consistent picture of the machine.
///
type Machine struct {
	/// Memory addressable by CHIP-8.
	///
	memory [MemorySize]byte

	/// Display is a 64x32 view over memory[DisplayOffset:].
	///
	display Framebuffer

	/// V are the 16 virtual registers. VF doubles as the flag register.
	///
	v [16]byte

	/// I is the address register.
	///
	i uint16

	/// PC is the program counter.
	///
	pc uint16

	/// SP is the byte offset of the next free stack cell from StackOffset.
	///
	sp byte

	/// Delay and sound timer registers, decremented every timerCycle steps.
	///
	dt byte
	st byte

	/// cycle counts instructions since the last timer decrement.
	///
	cycle      int
	timerCycle int

	/// key is the currently held key, only valid when held is true.
	///
	key  byte
	held bool

	/// rnd is the source of the RND instruction.
	///
	rnd *rand.Rand

	events bus
}

/// New returns a zeroed CHIP-8 virtual machine with the font loaded.
///
func New() *Machine {
	vm := &Machine{
		timerCycle: TimerCycle,
		rnd:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	vm.display = NewFramebuffer(NewBitPlane(vm.memory[DisplayOffset:]), DisplayWidth)

	// font glyphs live at the start of interpreter memory
	copy(vm.memory[FontOffset:], Font[:])

	return vm
}

/// Reset the machine to its freshly created state. Observers stay
/// subscribed and are told about every cleared register.
///
func (vm *Machine) Reset() {
	vm.FillMemory(0, 0, MemorySize)
	vm.ClearDisplay()
	vm.SetMemory(FontOffset, Font[:])

	for i := range vm.v {
		vm.SetV(i, 0)
	}

	vm.SetI(0)
	vm.SetSP(0)
	vm.SetPC(0)
	vm.SetDT(0)
	vm.SetST(0)

	vm.cycle = 0
	vm.held = false
}

/// Load a program image into the program region and point PC at it.
///
func (vm *Machine) Load(program []byte) error {
	if len(program) > ProgramSize {
		return fmt.Errorf("program size %d larger than %d available: %w", len(program), ProgramSize, ErrProgramTooLarge)
	}

	vm.SetMemory(ProgramOffset, program)
	vm.SetPC(ProgramOffset)

	return nil
}

/// Subscribe an observer to machine events. The returned function removes
/// it again.
///
func (vm *Machine) Subscribe(o Observer) (unsubscribe func()) {
	return vm.events.subscribe(o)
}

/// SetRand replaces the random source used by RND.
///
func (vm *Machine) SetRand(rnd *rand.Rand) {
	vm.rnd = rnd
}

/// SetTimerCycle sets how many instructions pass between timer decrements.
///
func (vm *Machine) SetTimerCycle(n int) {
	if n < 1 {
		n = 1
	}

	vm.timerCycle = n
	vm.cycle %= n
}

/// V returns register Vx.
///
func (vm *Machine) V(x int) byte { return vm.v[x] }

/// I returns the address register.
///
func (vm *Machine) I() uint16 { return vm.i }

/// PC returns the program counter.
///
func (vm *Machine) PC() uint16 { return vm.pc }

/// SP returns the stack pointer.
///
func (vm *Machine) SP() byte { return vm.sp }

/// DT returns the delay timer.
///
func (vm *Machine) DT() byte { return vm.dt }

/// ST returns the sound timer.
///
func (vm *Machine) ST() byte { return vm.st }

/// Display returns the framebuffer view over display memory.
///
func (vm *Machine) Display() Framebuffer { return vm.display }

/// Byte returns the memory byte at addr, wrapped into the address space.
///
func (vm *Machine) Byte(addr int) byte {
	return vm.memory[addr&(MemorySize-1)]
}

/// Word returns the big-endian 16-bit value at addr.
///
func (vm *Machine) Word(addr int) uint16 {
	return uint16(vm.Byte(addr))<<8 | uint16(vm.Byte(addr+1))
}

/// ReadMemory returns a copy of length bytes starting at offset.
///
func (vm *Machine) ReadMemory(offset, length int) []byte {
	b := make([]byte, length)
	for n := range b {
		b[n] = vm.Byte(offset + n)
	}

	return b
}

/// SetMemory copies data into memory at offset.
///
func (vm *Machine) SetMemory(offset int, data []byte) {
	for n, b := range data {
		vm.memory[(offset+n)&(MemorySize-1)] = b
	}

	vm.memoryChanged(offset, len(data))
}

/// FillMemory writes value to length bytes starting at offset.
///
func (vm *Machine) FillMemory(offset int, value byte, length int) {
	for n := 0; n < length; n++ {
		vm.memory[(offset+n)&(MemorySize-1)] = value
	}

	vm.memoryChanged(offset, length)
}

/// memoryChanged emits the event for a write, splitting ranges that wrap
/// past the end of memory.
///
func (vm *Machine) memoryChanged(offset, length int) {
	if length <= 0 {
		return
	}

	offset &= MemorySize - 1

	if offset+length > MemorySize {
		head := MemorySize - offset

		vm.events.emit(Event{Kind: MemoryChanged, Offset: offset, Length: head})
		vm.events.emit(Event{Kind: MemoryChanged, Offset: 0, Length: length - head})
		return
	}

	vm.events.emit(Event{Kind: MemoryChanged, Offset: offset, Length: length})
}

func (vm *Machine) registerChanged(r Register, index int) {
	vm.events.emit(Event{Kind: RegisterChanged, Register: r, Index: index})
}

/// SetV sets register Vx.
///
func (vm *Machine) SetV(x int, value byte) {
	vm.v[x] = value
	vm.registerChanged(RegV, x)
}

/// SetI sets the address register.
///
func (vm *Machine) SetI(address uint16) {
	vm.i = address
	vm.registerChanged(RegI, 0)
}

/// SetPC sets the program counter.
///
func (vm *Machine) SetPC(address uint16) {
	vm.pc = address
	vm.registerChanged(RegPC, 0)
}

/// SetSP sets the stack pointer.
///
func (vm *Machine) SetSP(offset byte) {
	vm.sp = offset
	vm.registerChanged(RegSP, 0)
}

/// SetDT sets the delay timer.
///
func (vm *Machine) SetDT(value byte) {
	vm.dt = value
	vm.registerChanged(RegDT, 0)
}

/// SetST sets the sound timer.
///
func (vm *Machine) SetST(value byte) {
	vm.st = value
	vm.registerChanged(RegST, 0)
}

/// RegDump stores V0..Vn (inclusive) to memory at I. I is unchanged.
///
func (vm *Machine) RegDump(n int) {
	for x := 0; x <= n; x++ {
		vm.memory[(int(vm.i)+x)&(MemorySize-1)] = vm.v[x]
	}

	vm.memoryChanged(int(vm.i), n+1)
}

/// RegLoad fills V0..Vn (inclusive) from memory at I. I is unchanged.
///
func (vm *Machine) RegLoad(n int) {
	for x := 0; x <= n; x++ {
		vm.SetV(x, vm.Byte(int(vm.i)+x))
	}
}

/// NextPC is the address of the following instruction.
///
func (vm *Machine) NextPC() uint16 {
	return vm.pc + 2
}

/// SkipPC is the address after skipping the following instruction.
///
func (vm *Machine) SkipPC() uint16 {
	return vm.pc + 4
}

/// PushStack pushes a return address onto the call stack.
///
func (vm *Machine) PushStack(address uint16) error {
	if vm.sp >= StackSize {
		return fmt.Errorf("push %04X: %w", address, ErrStackOverflow)
	}

	offset := StackOffset + int(vm.sp)

	vm.memory[offset] = byte(address >> 8)
	vm.memory[offset+1] = byte(address)
	vm.memoryChanged(offset, 2)

	vm.SetSP(vm.sp + 2)

	return nil
}

/// PopStack pops a return address from the call stack, zeroing its cell.
///
func (vm *Machine) PopStack() (uint16, error) {
	if vm.sp == 0 {
		return 0, ErrStackUnderflow
	}

	vm.SetSP(vm.sp - 2)

	offset := StackOffset + int(vm.sp)
	address := vm.Word(offset)

	vm.memory[offset] = 0
	vm.memory[offset+1] = 0
	vm.memoryChanged(offset, 2)

	return address, nil
}

/// Stack returns the return addresses currently on the stack, oldest first.
///
func (vm *Machine) Stack() []uint16 {
	stack := make([]uint16, 0, vm.sp/2)
	for offset := 0; offset < int(vm.sp); offset += 2 {
		stack = append(stack, vm.Word(StackOffset+offset))
	}

	return stack
}

/// ClearDisplay zeroes display memory.
///
func (vm *Machine) ClearDisplay() {
	vm.FillMemory(DisplayOffset, 0, DisplaySize)
	vm.events.emit(Event{Kind: DisplayCleared})
}

/// PressKey emulates a CHIP-8 key being held. Keys above 0xF are ignored.
///
func (vm *Machine) PressKey(key byte) {
	if key < 16 {
		vm.key = key
		vm.held = true
	}
}

/// ReleaseKey clears the held key.
///
func (vm *Machine) ReleaseKey() {
	vm.held = false
}

/// Key returns the held key, if any.
///
func (vm *Machine) Key() (byte, bool) {
	return vm.key, vm.held
}
