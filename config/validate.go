package config

import (
	"github.com/samber/oops"

	"github.com/lixenwraith/pigpen/constant"
)

// Validate checks ranges; failures wrap ErrInvalid
func (c Config) Validate() error {
	errb := oops.In("config").Code("CONFIG_INVALID")

	switch {
	case c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 1:
		return errb.With("master_volume", c.Audio.MasterVolume).Wrapf(ErrInvalid, "master volume out of range")
	case c.Audio.MusicVolume < 0 || c.Audio.MusicVolume > 1:
		return errb.With("music_volume", c.Audio.MusicVolume).Wrapf(ErrInvalid, "music volume out of range")
	case c.Audio.BPM < constant.MusicMinBPM || c.Audio.BPM > constant.MusicMaxBPM:
		return errb.With("bpm", c.Audio.BPM).Wrapf(ErrInvalid, "bpm out of range")
	case c.Audio.MaxVoices < 0:
		return errb.With("max_voices", c.Audio.MaxVoices).Wrapf(ErrInvalid, "negative voice cap")
	case c.Audio.BufferDuration <= 0:
		return errb.With("buffer", c.Audio.BufferDuration.String()).Wrapf(ErrInvalid, "audio buffer must be positive")
	case c.Sim.Step <= 0:
		return errb.With("step", c.Sim.Step.String()).Wrapf(ErrInvalid, "simulation step must be positive")
	case c.Sim.MaxCatchUp < 0:
		return errb.With("max_catch_up", c.Sim.MaxCatchUp).Wrapf(ErrInvalid, "negative catch-up cap")
	case c.Sim.Refresh <= 0:
		return errb.With("refresh", c.Sim.Refresh.String()).Wrapf(ErrInvalid, "refresh must be positive")
	case c.Log.Format != "text" && c.Log.Format != "json":
		return errb.With("format", c.Log.Format).Wrapf(ErrInvalid, "unknown log format")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errb.With("level", c.Log.Level).Wrapf(ErrInvalid, "unknown log level")
	}
	return nil
}
