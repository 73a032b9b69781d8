package chip8

import (
	"github.com/retroenv/retrogolib/log"
)

/// Trace subscribes an observer that logs every instruction at debug level
/// just before it executes.
///
func Trace(vm *Machine, logger *log.Logger) (unsubscribe func()) {
	return vm.Subscribe(ObserverFunc(func(e Event) {
		if e.Kind != Stepped {
			return
		}

		op := vm.Fetch()
		logger.Debug("Step",
			log.Hex("pc", vm.pc),
			log.Hex("opcode", uint16(op)),
			log.String("instruction", Mnemonic(op)))
	}))
}
