package main

import (
	"github.com/chip8vm/chip8/internal/sound"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// Audio device playing the buzzer, zero if audio is unavailable.
	///
	AudioDevice sdl.AudioDeviceID

	/// Square wave generator for the buzzer.
	///
	Buzzer = sound.NewTone(sound.Frequency)
)

/// Initialize an audio device for the CHIP-8 virtual machine.
///
func InitAudio() error {
	spec := &sdl.AudioSpec{
		Freq:     sound.SampleRate,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  256,
	}

	dev, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		return err
	}

	// start playing, nothing is heard until samples are queued
	sdl.PauseAudioDevice(dev, false)
	AudioDevice = dev

	return nil
}

/// UpdateAudio keeps the buzzer queued while the sound timer is active.
/// Once it stops the queue drains to silence.
///
func UpdateAudio(st byte) {
	if AudioDevice == 0 || st == 0 {
		return
	}

	// keep about two frames of audio queued
	if sdl.GetQueuedAudioSize(AudioDevice) < 2*sound.FrameSamples {
		if err := sdl.QueueAudio(AudioDevice, Buzzer.Frame(true)); err != nil {
			Logger.Warn("Queueing audio failed", log.Err(err))
		}
	}
}

/// CloseAudio releases the audio device.
///
func CloseAudio() {
	if AudioDevice != 0 {
		sdl.CloseAudioDevice(AudioDevice)
		AudioDevice = 0
	}
}
