package main

import (
	"errors"

	"github.com/chip8vm/chip8/chip8"
	"github.com/retroenv/retrogolib/log"
	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// Mapping of modern keyboard to CHIP-8 keys.
	///
	KeyMap = map[sdl.Scancode]byte{
		sdl.SCANCODE_X: 0x0,
		sdl.SCANCODE_1: 0x1,
		sdl.SCANCODE_2: 0x2,
		sdl.SCANCODE_3: 0x3,
		sdl.SCANCODE_Q: 0x4,
		sdl.SCANCODE_W: 0x5,
		sdl.SCANCODE_E: 0x6,
		sdl.SCANCODE_A: 0x7,
		sdl.SCANCODE_S: 0x8,
		sdl.SCANCODE_D: 0x9,
		sdl.SCANCODE_Z: 0xA,
		sdl.SCANCODE_C: 0xB,
		sdl.SCANCODE_4: 0xC,
		sdl.SCANCODE_R: 0xD,
		sdl.SCANCODE_F: 0xE,
		sdl.SCANCODE_V: 0xF,
	}
)

/// ProcessEvents from SDL and map keys to the CHIP-8 VM. Returns false
/// once the user quits.
///
func ProcessEvents() bool {
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch ev := e.(type) {
		case *sdl.QuitEvent:
			return false
		case *sdl.KeyboardEvent:
			if ev.Type == sdl.KEYUP {
				if key, ok := KeyMap[ev.Keysym.Scancode]; ok {
					ReleaseKey(key)
				}
				continue
			}

			if key, ok := KeyMap[ev.Keysym.Scancode]; ok {
				if ev.Repeat == 0 {
					Clock.Do(func(vm *chip8.Machine) {
						vm.PressKey(key)
					})
				}
				continue
			}

			switch ev.Keysym.Scancode {
			case sdl.SCANCODE_ESCAPE:
				return false
			case sdl.SCANCODE_BACKSPACE:
				// holding control during reset will reboot paused
				Reset(ev.Keysym.Mod&sdl.KMOD_CTRL != 0)
			case sdl.SCANCODE_UP, sdl.SCANCODE_PAGEUP:
				Messages.ScrollUp()
			case sdl.SCANCODE_DOWN, sdl.SCANCODE_PAGEDOWN:
				Messages.ScrollDown(Layout.LogLines)
			case sdl.SCANCODE_HOME:
				Messages.Home()
			case sdl.SCANCODE_END:
				Messages.End()
			case sdl.SCANCODE_F1:
				DebugHelp()
			case sdl.SCANCODE_F2:
				if File != "" {
					if err := Load(File, Paused()); err != nil {
						Logln("Reload failed", err.Error())
					}
				}
			case sdl.SCANCODE_F3:
				LoadDialog()
			case sdl.SCANCODE_F5, sdl.SCANCODE_SPACE:
				TogglePause()
			case sdl.SCANCODE_F6, sdl.SCANCODE_F10:
				if Paused() {
					if err := Clock.Step(); err != nil {
						Logln("Step failed", err.Error())
					}
				}
			case sdl.SCANCODE_F7:
				MemoryFollow = true
			case sdl.SCANCODE_F8:
				if ev.Keysym.Mod&sdl.KMOD_SHIFT != 0 {
					ScrollMemory(-1)
				} else {
					ScrollMemory(1)
				}
			}
		}
	}

	return true
}

/// ReleaseKey releases key if it is the one held by the VM.
///
func ReleaseKey(key byte) {
	Clock.Do(func(vm *chip8.Machine) {
		if held, ok := vm.Key(); ok && held == key {
			vm.ReleaseKey()
		}
	})
}

/// LoadDialog asks for a program file and loads it.
///
func LoadDialog() {
	file, err := dialog.File().Filter("CHIP-8 program", "ch8", "c8").Filter("All files", "*").Title("Open program").Load()
	if err != nil {
		if !errors.Is(err, dialog.ErrCancelled) {
			Logger.Error("Open dialog failed", log.Err(err))
		}
		return
	}

	if err := Load(file, false); err != nil {
		Logln("Loading failed", err.Error())
	}
}
