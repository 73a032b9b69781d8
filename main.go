package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"time"

	"github.com/chip8vm/chip8/chip8"
	"github.com/chip8vm/chip8/internal/config"
	"github.com/chip8vm/chip8/internal/sound"
	"github.com/chip8vm/chip8/internal/statsview"
	"github.com/chip8vm/chip8/internal/term"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// The CHIP-8 virtual machine and the clock driving it. After the
	/// clock is created all access to VM goes through it.
	///
	VM    *chip8.Machine
	Clock *chip8.Clock

	/// The SDL Window and Renderer.
	///
	Window   *sdl.Window
	Renderer *sdl.Renderer

	/// Console logger and the log shown in the window.
	///
	Logger   *log.Logger
	Messages = NewLogView(30)

	/// Position and size of every panel in the window.
	///
	Layout WindowLayout

	/// The program file currently loaded and its contents.
	///
	File    string
	Program []byte

	/// Context the clock runs under, cancelled on interrupt.
	///
	AppContext = context.Background()

	/// Errors that halted the clock, delivered to the main thread.
	///
	Halted = make(chan error, 1)
)

/// WindowLayout positions the panels of the window for a display scale.
///
type WindowLayout struct {
	Width, Height int32
	Scale         int32

	/// Display panel.
	///
	ScreenX, ScreenY, ScreenW, ScreenH int32

	/// Disassembly panel, right of the display.
	///
	AsmX, AsmY int32

	/// Register panel and log panel, below the display.
	///
	RegX, RegY int32
	LogX, LogY int32
	LogLines   int

	/// Memory panel, below the registers.
	///
	MemX, MemY int32
}

/// NewWindowLayout arranges the panels around a display scaled by scale.
///
func NewWindowLayout(scale int) WindowLayout {
	l := WindowLayout{Scale: int32(scale)}

	l.ScreenX, l.ScreenY = 10, 10
	l.ScreenW = chip8.DisplayWidth * l.Scale
	l.ScreenH = chip8.DisplayHeight * l.Scale

	l.AsmX, l.AsmY = l.ScreenX+l.ScreenW+14, 14

	// below the display, at least tall enough for the register panel
	l.RegX, l.RegY = 14, l.ScreenY+l.ScreenH+14
	l.LogX, l.LogY = l.RegX+160, l.RegY

	l.Width = l.AsmX + 210
	if l.Width < 550 {
		l.Width = 550
	}
	if panel := int32(ListingSize*10 + 8); l.ScreenH < panel {
		l.RegY += panel - l.ScreenH
		l.LogY = l.RegY
	}

	l.LogLines = 16

	l.MemX, l.MemY = l.RegX, l.RegY+174
	l.Height = l.MemY + MemoryRows*10 + 10

	return l
}

func init() {
	runtime.LockOSThread()
}

func main() {
	os.Exit(run())
}

func run() int {
	opts, err := config.ParseFlags(os.Args[1:])
	Logger = config.CreateLogger(opts.Debug, opts.Quiet)
	if err != nil {
		var usageErr *config.UsageError
		if errors.As(err, &usageErr) {
			Logger.Error(err.Error())
			usageErr.ShowUsage(os.Stderr)
		} else {
			Logger.Error("Invalid options", log.Err(err))
		}
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	AppContext = ctx

	// create a new CHIP-8 virtual machine, must happen early!
	VM = chip8.New()
	VM.SetTimerCycle(opts.TimerCycle)

	if opts.Debug {
		chip8.Trace(VM, Logger)
	}

	Clock = chip8.NewClock(VM, Logger, chip8.WithRate(opts.Rate), chip8.OnHalt(func(err error) {
		select {
		case Halted <- err:
		default:
		}
	}))

	if opts.Stats != "" {
		if err := statsview.Launch(Logger, opts.Stats); err != nil {
			Logger.Warn("Stats server unavailable", log.Err(err))
		}
	}

	if opts.WAV != "" {
		recorder := sound.NewRecorder(opts.WAV, Logger)
		VM.Subscribe(recorder.Observe(VM))

		recording, cancel := context.WithCancel(ctx)
		go recorder.Run(recording)

		defer func() {
			cancel()
			if err := recorder.Close(); err != nil {
				Logger.Error("Saving audio failed", log.Err(err))
			}
		}()
	}

	if opts.Term {
		err = runTerminal(ctx, opts)
	} else {
		err = runWindow(ctx, opts)
	}

	if stopErr := Clock.Stop(); stopErr != nil {
		Logger.Debug("Clock halted", log.Err(stopErr))
	}

	if err != nil {
		Logger.Error("Emulation failed", log.Err(err))
		return 1
	}
	return 0
}

/// runTerminal runs the program in the terminal until quit.
///
func runTerminal(ctx context.Context, opts config.Options) error {
	if err := Load(opts.ROM, opts.Paused); err != nil {
		return err
	}

	restore, err := term.EnterRaw(int(os.Stdin.Fd()))
	if err != nil {
		return err
	}
	defer func() {
		if err := restore(); err != nil {
			Logger.Error("Restoring terminal failed", log.Err(err))
		}
	}()

	host := term.NewHost(Clock, Logger, os.Stdin, os.Stdout)
	return host.Run(ctx)
}

/// runWindow opens the debugger window and runs until it is closed.
///
func runWindow(ctx context.Context, opts config.Options) error {
	var err error

	// initialize SDL
	if err = sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return fmt.Errorf("initializing SDL: %w", err)
	}
	defer sdl.Quit()

	Layout = NewWindowLayout(opts.Scale)
	Messages.width = int(Layout.Width-Layout.LogX-10) / GlyphAdvance

	// create the main window and renderer
	if Window, Renderer, err = sdl.CreateWindowAndRenderer(Layout.Width, Layout.Height, sdl.WINDOW_SHOWN); err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	defer Window.Destroy()
	defer Renderer.Destroy()

	// set the title
	Window.SetTitle("CHIP-8")

	// initialize subsystems
	if err = InitScreen(); err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err = InitFont(); err != nil {
		return fmt.Errorf("creating font: %w", err)
	}
	if err = InitAudio(); err != nil {
		Logger.Warn("Audio unavailable", log.Err(err))
	}
	defer CloseAudio()

	Clock.Do(func(vm *chip8.Machine) {
		WatchDisplay(vm)
		vm.Subscribe(Changes)
	})

	DebugHelp()

	if opts.ROM != "" {
		if err := Load(opts.ROM, opts.Paused); err != nil {
			Logln("Loading failed", err.Error())
		}
	} else {
		Messages.Logln("Press F3 to open a program")
	}

	// refresh rate
	video := time.NewTicker(time.Second / 60)
	defer video.Stop()

	// loop until window closed or user quit
	for ProcessEvents() {
		select {
		case <-ctx.Done():
			return nil
		case err := <-Halted:
			Logln("Execution halted", err.Error())
		case <-video.C:
			if err := Refresh(); err != nil {
				return err
			}
		}
	}

	return nil
}

/// Load a program file into the VM, resetting it first. Unless paused is
/// true the clock is (re)started.
///
func Load(file string, paused bool) error {
	program, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading program: %w", err)
	}

	if err = Boot(program, paused); err != nil {
		return fmt.Errorf("loading %s: %w", file, err)
	}

	File = file
	Program = program

	Logln("Loaded "+filepath.Base(file), fmt.Sprintf("%d bytes", len(program)))
	return nil
}

/// Boot stops the clock, resets the VM and loads program into it.
///
func Boot(program []byte, paused bool) error {
	if err := Clock.Stop(); err != nil {
		Logger.Debug("Previous run halted", log.Err(err))
	}

	var err error
	Clock.Do(func(vm *chip8.Machine) {
		vm.Reset()
		err = vm.Load(program)
	})
	if err != nil {
		return err
	}

	if paused {
		return nil
	}
	return Clock.Start(AppContext)
}

/// Reset the VM and reload the current program.
///
func Reset(paused bool) {
	if Program == nil {
		return
	}

	if err := Boot(Program, paused); err != nil {
		Logln("Reset failed", err.Error())
		return
	}

	Logln("Reset")
}

/// Paused is true while the clock is not running.
///
func Paused() bool {
	return !Clock.Running()
}

/// TogglePause stops or restarts the clock.
///
func TogglePause() {
	if Program == nil {
		return
	}

	if !Paused() {
		if err := Clock.Stop(); err != nil {
			Logger.Debug("Clock halted", log.Err(err))
		}
		Logln("Paused")
		return
	}

	if err := Clock.Start(AppContext); err != nil {
		Logln("Resume failed", err.Error())
		return
	}
	Logln("Running")
}

/// Refresh draws a new frame from a snapshot of the VM.
///
func Refresh() error {
	var s Snapshot
	Clock.Do(func(vm *chip8.Machine) {
		s = TakeSnapshot(vm)
	})

	UpdateAudio(s.ST)

	Renderer.SetDrawColor(32, 42, 53, 255)
	Renderer.Clear()

	l := Layout

	// frame various portions of the app
	Frame(l.ScreenX-2, l.ScreenY-2, l.ScreenW+4, l.ScreenH+4)
	Frame(l.AsmX-4, l.AsmY-4, 204, ListingSize*10+6)
	Frame(l.RegX-4, l.RegY-4, 150, 164)
	Frame(l.LogX-4, l.LogY-4, l.Width-l.LogX-6, 164)
	Frame(l.MemX-4, l.MemY-4, l.Width-l.MemX-6, MemoryRows*10+6)

	// update the video screen when it changed and copy it
	if s.Video != nil {
		if err := RefreshScreen(s.Video); err != nil {
			return fmt.Errorf("drawing screen: %w", err)
		}
	}
	CopyScreen(l.ScreenX, l.ScreenY, l.ScreenW, l.ScreenH)

	// debug assembly, virtual registers and log
	DebugAssembly(&s, Paused(), int(l.AsmX), int(l.AsmY))
	DebugRegisters(&s, int(l.RegX), int(l.RegY))
	DebugLog(int(l.LogX), int(l.LogY), l.LogLines)
	DebugMemory(&s, int(l.MemX), int(l.MemY))

	// show the new frame
	Renderer.Present()

	return nil
}

/// Frame draws a sunken border around a panel.
///
func Frame(x, y, w, h int32) {
	Renderer.SetDrawColor(0, 0, 0, 255)
	Renderer.DrawLine(x, y, x+w, y)
	Renderer.DrawLine(x, y, x, y+h)

	// highlight
	Renderer.SetDrawColor(95, 112, 120, 255)
	Renderer.DrawLine(x+w, y, x+w, y+h)
	Renderer.DrawLine(x, y+h, x+w, y+h)
}
