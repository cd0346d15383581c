package sdl

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
)

const (
	audioFreq = 44100
	toneHz    = 440
	amplitude = 24

	// One frame's worth of mono unsigned 8-bit samples.
	samplesPerFrame = audioFreq / 60
)

// setupAudio opens a mono 8-bit audio device for the beeper.
func (io *IO) setupAudio() error {
	spec := &sdl.AudioSpec{
		Freq:     audioFreq,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  1024,
	}
	dev, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		return fmt.Errorf("opening audio device: %w", err)
	}
	io.audio = dev
	sdl.PauseAudioDevice(dev, false)
	return nil
}

// pumpAudio queues one frame of square wave while the sound timer is
// nonzero. A zero timer queues nothing, which lets the device drain to
// silence.
func (io *IO) pumpAudio() {
	if io.audio == 0 || io.vm.SoundTimer() == 0 {
		return
	}

	// Cap the backlog so a long tone does not outlive its timer.
	if sdl.GetQueuedAudioSize(io.audio) > samplesPerFrame*2 {
		return
	}

	buf := make([]byte, samplesPerFrame)
	period := audioFreq / toneHz
	for i := range buf {
		if (i/(period/2))%2 == 0 {
			buf[i] = 128 + amplitude
		} else {
			buf[i] = 128 - amplitude
		}
	}
	// Queueing is best effort, a dropped frame is just a click.
	_ = sdl.QueueAudio(io.audio, buf)
}
