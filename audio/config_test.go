package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/pigpen/constant"
)

// TestDefaultConfig verifies default configuration
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 0.8, cfg.MasterVolume)
	assert.Equal(t, constant.MusicDefaultVolume, cfg.MusicVolume)
	assert.Equal(t, constant.MusicDefaultBPM, cfg.BPM)
	assert.Zero(t, cfg.MaxVoices, "voices are unbounded unless capped")
	assert.Equal(t, constant.AudioBufferDuration, cfg.BufferDuration)

	expected := map[SoundType]float64{
		SoundJump: 0.6,
		SoundLand: 0.8,
		SoundBump: 0.7,
		SoundOink: 1.0,
	}
	assert.Equal(t, expected, cfg.EffectVolumes)
}

// TestDefaultConfigIndependent verifies callers cannot alias the defaults
func TestDefaultConfigIndependent(t *testing.T) {
	a := DefaultConfig()
	a.EffectVolumes[SoundJump] = 0

	b := DefaultConfig()
	assert.Equal(t, 0.6, b.EffectVolumes[SoundJump])
}
