package audio

import (
	"github.com/lixenwraith/pigpen/constant"
)

// Stream is the audio device callback expressed as a beep.Streamer
// Each pull renders music first, layers the mixer's one-shots on top and widens
// the result to the device format
type Stream struct {
	music   MusicFunc
	mixer   *Mixer
	scratch []float32
}

// NewStream creates the bridge; music may be nil for effects only
func NewStream(music MusicFunc, mixer *Mixer) *Stream {
	return &Stream{
		music:   music,
		mixer:   mixer,
		scratch: make([]float32, constant.AudioScratchFrames*Channels),
	}
}

// Stream fills samples; larger requests than the scratch are rendered in chunks
// so the audio goroutine never allocates
func (s *Stream) Stream(samples [][2]float64) (n int, ok bool) {
	maxFrames := len(s.scratch) / Channels

	for off := 0; off < len(samples); {
		frames := min(len(samples)-off, maxFrames)
		buf := s.scratch[:frames*Channels]
		clear(buf)

		if s.music != nil {
			s.music(buf, frames)
		}
		if s.mixer != nil {
			s.mixer.Mix(buf, frames)
		}

		for i := 0; i < frames; i++ {
			samples[off+i][0] = float64(buf[2*i])
			samples[off+i][1] = float64(buf[2*i+1])
		}
		off += frames
	}
	return len(samples), true
}

// Err implements beep.Streamer
func (s *Stream) Err() error {
	return nil
}
