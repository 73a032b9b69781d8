package chip8

import (
	"context"
	"sync"
	"time"

	"github.com/retroenv/retrogolib/log"
)

/// Clock drives a Machine. It can single step, or free-run at a fixed
/// instruction rate on its own goroutine until stopped.
///
/// All access to the machine while a clock exists should go through Do (or
/// Step), which serialises it with instruction execution.
///
type Clock struct {
	mu     sync.Mutex
	vm     *Machine
	logger *log.Logger

	/// instructions per second when free-running
	///
	rate int

	running bool
	cancel  context.CancelFunc
	done    chan struct{}

	/// err is the error that halted the last run
	///
	err    error
	onHalt func(error)
}

/// ClockOption configures a Clock.
///
type ClockOption func(*Clock)

/// WithRate sets the free-running instruction rate, in instructions per
/// second.
///
func WithRate(rate int) ClockOption {
	return func(c *Clock) {
		if rate > 0 {
			c.rate = rate
		}
	}
}

/// OnHalt registers f to be called from the clock goroutine when execution
/// halts because of an error. f may call Stop.
///
func OnHalt(f func(error)) ClockOption {
	return func(c *Clock) {
		c.onHalt = f
	}
}

/// NewClock creates a stopped clock for vm.
///
func NewClock(vm *Machine, logger *log.Logger, opts ...ClockOption) *Clock {
	c := &Clock{
		vm:     vm,
		logger: logger,
		rate:   InstructionRate,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

/// Rate returns the free-running instruction rate.
///
func (c *Clock) Rate() int {
	return c.rate
}

/// Running returns true while the clock is free-running.
///
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.running
}

/// Err returns the error that halted the most recent run, if any.
///
func (c *Clock) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.err
}

/// Do runs f with exclusive access to the machine.
///
func (c *Clock) Do(f func(vm *Machine)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f(c.vm)
}

/// Step executes a single instruction. The clock must be stopped.
///
func (c *Clock) Step() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return ErrRunning
	}

	return c.vm.Step()
}

/// Start free-running the machine until ctx is done, Stop is called or an
/// instruction fails.
///
func (c *Clock) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return ErrRunning
	}

	ctx, cancel := context.WithCancel(ctx)

	c.running = true
	c.cancel = cancel
	c.done = make(chan struct{})
	c.err = nil

	go c.run(ctx, c.done)

	c.logger.Debug("Clock started", log.Int("rate", c.rate))

	return nil
}

/// Stop the clock and wait for the running goroutine to exit. The machine
/// is left exactly as the last executed instruction left it. The returned
/// error is the one that halted execution, if any.
///
func (c *Clock) Stop() error {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.mu.Unlock()

	if done == nil {
		return c.Err()
	}

	cancel()
	<-done

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancel = nil
	c.done = nil

	c.logger.Debug("Clock stopped")

	return c.err
}

func (c *Clock) run(ctx context.Context, done chan struct{}) {
	err := c.loop(ctx)

	c.mu.Lock()
	c.running = false
	c.err = err
	onHalt := c.onHalt
	c.mu.Unlock()

	close(done)

	if err != nil {
		c.logger.Error("Execution halted", log.Err(err))

		if onHalt != nil {
			onHalt(err)
		}
	}
}

func (c *Clock) loop(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(c.rate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := c.tick(); err != nil {
				return err
			}
		}
	}
}

func (c *Clock) tick() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.vm.Step()
}
