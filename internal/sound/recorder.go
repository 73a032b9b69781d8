package sound

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/chip8vm/chip8/chip8"
	"github.com/retroenv/retrogolib/log"
	"github.com/youpy/go-wav"
)

var errNoSamples = errors.New("nothing recorded")

// Recorder captures the sound timer of a machine as audio. It is buffered
// in memory in its entirety and written to disk on Close.
type Recorder struct {
	mu       sync.Mutex
	filename string
	logger   *log.Logger

	tone    *Tone
	playing bool
	buffer  []wav.Sample
}

// NewRecorder creates a recorder that writes to filename when closed.
func NewRecorder(filename string, logger *log.Logger) *Recorder {
	return &Recorder{
		filename: filename,
		logger:   logger,
		tone:     NewTone(Frequency),
	}
}

// Observe returns an observer that tracks the sound timer of vm. It reads
// vm from within the notification so it must be subscribed to vm itself.
func (r *Recorder) Observe(vm *chip8.Machine) chip8.Observer {
	return chip8.ObserverFunc(func(e chip8.Event) {
		if e.Kind != chip8.RegisterChanged || e.Register != chip8.RegST {
			return
		}

		r.SetPlaying(vm.ST() > 0)
	})
}

// SetPlaying turns the recorded tone on or off.
func (r *Recorder) SetPlaying(on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.playing = on
}

// Frame appends one frame of audio, the tone if the sound timer is active
// and silence otherwise.
func (r *Recorder) Frame() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.tone.Frame(r.playing) {
		s := wav.Sample{}
		s.Values[0] = int(b)
		r.buffer = append(r.buffer, s)
	}
}

// Len returns the number of samples recorded.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.buffer)
}

// Run appends a frame FrameRate times a second until ctx is done.
func (r *Recorder) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second / FrameRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Frame()
		}
	}
}

// Close writes everything recorded to the WAV file.
func (r *Recorder) Close() (rerr error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.buffer) == 0 {
		return fmt.Errorf("wav %s: %w", r.filename, errNoSamples)
	}

	f, err := os.Create(r.filename)
	if err != nil {
		return fmt.Errorf("creating wav file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("closing wav file: %w", err)
		}
	}()

	enc := wav.NewWriter(f, uint32(len(r.buffer)), 1, SampleRate, 8)
	if enc == nil {
		return fmt.Errorf("wav %s: bad parameters for wav encoding", r.filename)
	}

	r.logger.Info("Writing audio", log.String("file", r.filename), log.Int("samples", len(r.buffer)))

	if err := enc.WriteSamples(r.buffer); err != nil {
		return fmt.Errorf("writing wav samples: %w", err)
	}

	return nil
}
