// Package term runs a CHIP-8 machine inside a text terminal. The display is
// drawn with Unicode half blocks and the keypad is read from raw input.
package term

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/chip8vm/chip8/chip8"
	"github.com/retroenv/retrogolib/log"
)

const (
	frameRate = 60

	keyEscape = 0x1b
	keyCtrlC  = 0x03
)

// Host renders a machine to out and feeds it keys read from in. All machine
// access goes through the clock.
type Host struct {
	clock  *chip8.Clock
	logger *log.Logger

	in  io.Reader
	out io.Writer

	keypad Keypad

	// dirty is only touched while holding the clock
	dirty bool
	frame bytes.Buffer
}

// NewHost creates a terminal host. in is expected to already be in raw mode.
func NewHost(clock *chip8.Clock, logger *log.Logger, in io.Reader, out io.Writer) *Host {
	return &Host{
		clock:  clock,
		logger: logger,
		in:     in,
		out:    out,
	}
}

// Run draws frames until ctx is done, Escape is typed, input ends or the
// machine halts. The clock is not started or stopped here.
func (h *Host) Run(ctx context.Context) error {
	var unsubscribe func()
	h.clock.Do(func(vm *chip8.Machine) {
		unsubscribe = vm.Subscribe(chip8.ObserverFunc(func(e chip8.Event) {
			if e.Kind == chip8.DisplayCleared || e.Kind == chip8.DisplayUpdated {
				h.dirty = true
			}
		}))
		h.dirty = true
	})
	defer h.clock.Do(func(*chip8.Machine) { unsubscribe() })

	if _, err := io.WriteString(h.out, hideCursor+clearScreen); err != nil {
		return fmt.Errorf("writing to terminal: %w", err)
	}
	defer func() { _, _ = io.WriteString(h.out, showCursor) }()

	input := make(chan byte)
	go readInput(ctx, h.in, input)

	ticker := time.NewTicker(time.Second / frameRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case c, ok := <-input:
			if !ok || c == keyEscape || c == keyCtrlC {
				h.logger.Debug("Terminal input closed")
				return nil
			}
			h.press(c)

		case <-ticker.C:
			if err := h.clock.Err(); err != nil {
				return fmt.Errorf("machine halted: %w", err)
			}
			if err := h.refresh(); err != nil {
				return err
			}
		}
	}
}

func (h *Host) press(c byte) {
	key, ok := Lookup(c)
	if !ok {
		return
	}

	h.keypad.Press(key)
	h.clock.Do(func(vm *chip8.Machine) {
		vm.PressKey(key)
	})
}

func (h *Host) refresh() error {
	release := h.keypad.Frame()

	h.frame.Reset()
	h.clock.Do(func(vm *chip8.Machine) {
		if release {
			vm.ReleaseKey()
		}

		if h.dirty {
			Render(&h.frame, vm.Display())
			h.dirty = false
		}
	})

	if h.frame.Len() == 0 {
		return nil
	}

	if _, err := h.out.Write(h.frame.Bytes()); err != nil {
		return fmt.Errorf("writing to terminal: %w", err)
	}
	return nil
}

func readInput(ctx context.Context, r io.Reader, input chan<- byte) {
	defer close(input)

	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			select {
			case input <- buf[0]:
			case <-ctx.Done():
				return
			}
		}
		if err != nil {
			return
		}
	}
}
