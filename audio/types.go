package audio

import "github.com/lixenwraith/pigpen/constant"

// SoundType identifies a synthesized one-shot effect
type SoundType int

const (
	SoundJump SoundType = iota // Player leaves the ground
	SoundLand                  // Any object touches down hard
	SoundBump                  // Player collides with a minion
	SoundOink                  // Mouse click, king taunt
	soundTypeCount
)

func (s SoundType) String() string {
	names := [...]string{"jump", "land", "bump", "oink"}
	if s >= 0 && int(s) < len(names) {
		return names[s]
	}
	return "unknown"
}

// Fixed output format: interleaved stereo float32
const (
	SampleRate = constant.AudioSampleRate
	Channels   = constant.AudioChannels
)

// MusicFunc writes frames stereo frames of music into out, overwriting it
// Runs on the audio goroutine before one-shots are mixed on top
type MusicFunc func(out []float32, frames int)
