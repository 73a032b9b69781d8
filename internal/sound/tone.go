// Package sound generates the CHIP-8 buzzer tone and records it to WAV files.
package sound

const (
	// SampleRate is the rate of all generated audio, in samples per second.
	SampleRate = 6000

	// FrameRate is the number of audio frames generated per second.
	FrameRate = 60

	// FrameSamples is the number of samples in a single frame.
	FrameSamples = SampleRate / FrameRate

	// Frequency of the buzzer in Hz.
	Frequency = 500

	// Silence is the unsigned 8-bit sample value of no sound.
	Silence = 0x80

	amplitude = 0x40
)

// Tone is a square wave generator producing unsigned 8-bit mono samples.
// The phase is kept between calls so consecutive frames join without clicks.
type Tone struct {
	period int
	phase  int
}

// NewTone creates a square wave of the given frequency at SampleRate.
func NewTone(frequency int) *Tone {
	period := SampleRate / frequency
	if period < 2 {
		period = 2
	}

	return &Tone{period: period}
}

// Fill buf with the next samples of the wave.
func (t *Tone) Fill(buf []byte) {
	for i := range buf {
		if t.phase < t.period/2 {
			buf[i] = Silence + amplitude
		} else {
			buf[i] = Silence - amplitude
		}

		t.phase = (t.phase + 1) % t.period
	}
}

// Frame returns one frame of samples, the tone when on is true, silence
// otherwise.
func (t *Tone) Frame(on bool) []byte {
	buf := make([]byte, FrameSamples)

	if on {
		t.Fill(buf)
	} else {
		Quiet(buf)
	}

	return buf
}

// Quiet fills buf with silence.
func Quiet(buf []byte) {
	for i := range buf {
		buf[i] = Silence
	}
}
