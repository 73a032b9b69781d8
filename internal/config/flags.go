package config

import (
	"flag"
	"fmt"
	"io"
)

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the command line usage to w.
func (e *UsageError) ShowUsage(w io.Writer) {
	_, _ = fmt.Fprintf(w, "usage: chip8 [options] [program.ch8]\n\n")
	if e.flags != nil {
		e.flags.SetOutput(w)
		e.flags.PrintDefaults()
	}
	_, _ = fmt.Fprintln(w)
}

// ParseFlags parses the command line arguments, without the program name,
// and returns validated options.
func ParseFlags(args []string) (Options, error) {
	flags := flag.NewFlagSet("chip8", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	opts := Default()
	readOptionFlags(flags, &opts)

	if err := flags.Parse(args); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}

	rest := flags.Args()
	switch len(rest) {
	case 0:
	case 1:
		opts.ROM = rest[0]
	default:
		return opts, &UsageError{
			flags: flags,
			msg:   fmt.Sprintf("unexpected argument %s after program file", rest[1]),
		}
	}

	if err := opts.Validate(); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}

	return opts, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *Options) {
	flags.IntVar(&opts.Rate, "rate", defaultRate, "instructions executed per second")
	flags.IntVar(&opts.TimerCycle, "timer-cycle", defaultTimerCycle, "instructions executed per delay and sound timer tick")
	flags.IntVar(&opts.Scale, "scale", defaultScale, "window pixels per display pixel")
	flags.BoolVar(&opts.Term, "term", false, "run in the terminal instead of opening a window")
	flags.BoolVar(&opts.Paused, "paused", false, "start with emulation paused")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.StringVar(&opts.WAV, "wav", "", "record the sound timer to the given WAV file")
	flags.StringVar(&opts.Stats, "stats", "", "serve runtime statistics on the given address, e.g. localhost:18066")
}
