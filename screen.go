package main

import (
	"github.com/chip8vm/chip8/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// Render target holding the CHIP-8 display.
	///
	Screen *sdl.Texture

	/// Dirty is set whenever the machine clears or draws to the display. It
	/// is only accessed while holding the clock.
	///
	Dirty = true
)

/// InitScreen creates the render target for the CHIP-8 video memory.
///
func InitScreen() error {
	var err error

	// create a render target for the display
	Screen, err = Renderer.CreateTexture(sdl.PIXELFORMAT_RGB888, sdl.TEXTUREACCESS_TARGET, chip8.DisplayWidth, chip8.DisplayHeight)

	return err
}

/// WatchDisplay subscribes to display changes of vm so the screen texture
/// is only redrawn when needed. Must be called while holding the clock.
///
func WatchDisplay(vm *chip8.Machine) func() {
	return vm.Subscribe(chip8.ObserverFunc(func(e chip8.Event) {
		switch e.Kind {
		case chip8.DisplayCleared, chip8.DisplayUpdated:
			Dirty = true
		}
	}))
}

/// RefreshScreen with a copy of the CHIP-8 video memory.
///
func RefreshScreen(video []byte) error {
	if err := Renderer.SetRenderTarget(Screen); err != nil {
		return err
	}

	// the background color for the screen
	Renderer.SetDrawColor(143, 145, 133, 255)
	Renderer.Clear()

	// set the pixel color
	Renderer.SetDrawColor(17, 29, 43, 255)

	fb := chip8.NewFramebuffer(chip8.NewBitPlane(video), chip8.DisplayWidth)

	// draw all the pixels
	for y := 0; y < fb.Height(); y++ {
		for x := 0; x < fb.Width(); x++ {
			if fb.Pixel(x, y) {
				Renderer.DrawPoint(int32(x), int32(y))
			}
		}
	}

	// restore the render target
	return Renderer.SetRenderTarget(nil)
}

/// CopyScreen to the render target.
///
func CopyScreen(x, y, w, h int32) {
	src := sdl.Rect{
		W: chip8.DisplayWidth,
		H: chip8.DisplayHeight,
	}

	// stretch the render target to fit
	Renderer.Copy(Screen, &src, &sdl.Rect{X: x, Y: y, W: w, H: h})
}
