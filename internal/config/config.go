// Package config handles application configuration and setup
package config

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

const (
	defaultRate       = 200
	defaultTimerCycle = 2
	defaultScale      = 5

	maxRate = 1000000
)

var errInvalidOption = errors.New("invalid option")

// Options contains the emulator options that can be set from the command line.
type Options struct {
	ROM string // path of the program to load at start, optional for the window host

	Rate       int // instructions per second
	TimerCycle int // instructions per timer decrement
	Scale      int // window pixels per CHIP-8 pixel

	Term   bool // run in the terminal instead of a window
	Paused bool // start paused

	Debug bool
	Quiet bool

	WAV   string // record the sound timer to this WAV file
	Stats string // address to serve runtime statistics on
}

// Default returns the options used when no flags are given.
func Default() Options {
	return Options{
		Rate:       defaultRate,
		TimerCycle: defaultTimerCycle,
		Scale:      defaultScale,
	}
}

// Validate checks that all numeric options are in range.
func (o Options) Validate() error {
	if o.Rate < 1 || o.Rate > maxRate {
		return fmt.Errorf("%w: rate %d not in 1..%d", errInvalidOption, o.Rate, maxRate)
	}
	if o.TimerCycle < 1 {
		return fmt.Errorf("%w: timer cycle %d must be at least 1", errInvalidOption, o.TimerCycle)
	}
	if o.Scale < 1 {
		return fmt.Errorf("%w: scale %d must be at least 1", errInvalidOption, o.Scale)
	}
	if o.Term && o.ROM == "" {
		return fmt.Errorf("%w: terminal mode needs a program to run", errInvalidOption)
	}
	return nil
}

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
