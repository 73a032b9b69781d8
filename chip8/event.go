package chip8

import (
	"fmt"
)

/// EventKind identifies what changed in the machine.
///
type EventKind int

/// List of event kinds.
///
const (
	/// MemoryChanged: Offset and Length describe the written range.
	///
	MemoryChanged EventKind = iota

	/// RegisterChanged: Register names the register, Index is set for V.
	///
	RegisterChanged

	/// DisplayCleared is raised by CLS.
	///
	DisplayCleared

	/// DisplayUpdated: X, Y and Height describe the sprite just drawn.
	///
	DisplayUpdated

	/// Stepped is raised once per instruction, before it executes.
	///
	Stepped
)

func (k EventKind) String() string {
	switch k {
	case MemoryChanged:
		return "memory"
	case RegisterChanged:
		return "register"
	case DisplayCleared:
		return "clear"
	case DisplayUpdated:
		return "display"
	case Stepped:
		return "step"
	}

	return fmt.Sprintf("EventKind(%d)", int(k))
}

/// Register names a register in RegisterChanged events.
///
type Register int

/// List of registers.
///
const (
	RegV Register = iota
	RegI
	RegPC
	RegSP
	RegDT
	RegST
)

func (r Register) String() string {
	switch r {
	case RegV:
		return "v"
	case RegI:
		return "i"
	case RegPC:
		return "pc"
	case RegSP:
		return "sp"
	case RegDT:
		return "dt"
	case RegST:
		return "st"
	}

	return fmt.Sprintf("Register(%d)", int(r))
}

/// Event is the payload delivered to observers. Which fields are meaningful
/// depends on Kind.
///
type Event struct {
	Kind EventKind

	Offset int
	Length int

	Register Register
	Index    int

	X      int
	Y      int
	Height int
}

func (e Event) String() string {
	switch e.Kind {
	case MemoryChanged:
		return fmt.Sprintf("memory %04X+%d", e.Offset, e.Length)
	case RegisterChanged:
		if e.Register == RegV {
			return fmt.Sprintf("register v%X", e.Index)
		}
		return fmt.Sprintf("register %s", e.Register)
	case DisplayUpdated:
		return fmt.Sprintf("display %d,%d h=%d", e.X, e.Y, e.Height)
	}

	return e.Kind.String()
}

/// Observer receives machine events. Notify is called synchronously from
/// whatever goroutine is mutating the machine, so it must not call back into
/// the Clock.
///
type Observer interface {
	Notify(e Event)
}

/// ObserverFunc adapts a function to the Observer interface.
///
type ObserverFunc func(e Event)

/// Notify implements the Observer interface.
///
func (f ObserverFunc) Notify(e Event) {
	f(e)
}

/// bus fans events out to subscribed observers in subscription order.
///
type bus struct {
	observers []*subscription
}

type subscription struct {
	o Observer
}

func (b *bus) subscribe(o Observer) func() {
	s := &subscription{o: o}
	b.observers = append(b.observers, s)

	return func() {
		for i, other := range b.observers {
			if other == s {
				b.observers = append(b.observers[:i:i], b.observers[i+1:]...)
				return
			}
		}
	}
}

func (b *bus) emit(e Event) {
	for _, s := range b.observers {
		s.o.Notify(e)
	}
}
