package audio

import (
	"time"

	"github.com/lixenwraith/pigpen/constant"
)

// Config holds audio tuning; the config package fills it from file, env and flags
type Config struct {
	Enabled        bool
	MasterVolume   float64
	MusicVolume    float64
	EffectVolumes  map[SoundType]float64
	BPM            int
	MaxVoices      int // 0 = unbounded
	BufferDuration time.Duration
}

// DefaultConfig returns the built-in audio settings
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		MasterVolume: 0.8,
		MusicVolume:  constant.MusicDefaultVolume,
		EffectVolumes: map[SoundType]float64{
			SoundJump: 0.6,
			SoundLand: 0.8,
			SoundBump: 0.7,
			SoundOink: 1.0,
		},
		BPM:            constant.MusicDefaultBPM,
		BufferDuration: constant.AudioBufferDuration,
	}
}
