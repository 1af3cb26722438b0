// Package config loads runtime settings in layers: built-in defaults, an
// optional YAML file, PIGPEN_* environment variables, then changed CLI flags
package config

import (
	"errors"
	"time"

	"github.com/lixenwraith/pigpen/audio"
	"github.com/lixenwraith/pigpen/constant"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

// EnvPrefix namespaces environment overrides
const EnvPrefix = "PIGPEN_"

// Config is the full runtime configuration
type Config struct {
	Audio   AudioConfig   `koanf:"audio" envPrefix:"AUDIO_"`
	Sim     SimConfig     `koanf:"sim" envPrefix:"SIM_"`
	Log     LogConfig     `koanf:"log" envPrefix:"LOG_"`
	Metrics MetricsConfig `koanf:"metrics" envPrefix:"METRICS_"`
}

// AudioConfig controls the device, music and one-shot mixer
type AudioConfig struct {
	Enabled        bool          `koanf:"enabled" env:"ENABLED"`
	MasterVolume   float64       `koanf:"master_volume" env:"MASTER_VOLUME"`
	MusicVolume    float64       `koanf:"music_volume" env:"MUSIC_VOLUME"`
	BPM            int           `koanf:"bpm" env:"BPM"`
	MaxVoices      int           `koanf:"max_voices" env:"MAX_VOICES"`
	BufferDuration time.Duration `koanf:"buffer" env:"BUFFER"`
	Seed           int64         `koanf:"seed" env:"SEED"`
}

// SimConfig controls the fixed-step loop
type SimConfig struct {
	Step       time.Duration `koanf:"step" env:"STEP"`
	MaxCatchUp int           `koanf:"max_catch_up" env:"MAX_CATCH_UP"`
	Refresh    time.Duration `koanf:"refresh" env:"REFRESH"`
}

// LogConfig selects the log sink; the terminal owns stdout so logs go to a file
type LogConfig struct {
	Format string `koanf:"format" env:"FORMAT"`
	Level  string `koanf:"level" env:"LEVEL"`
	File   string `koanf:"file" env:"FILE"`
}

// MetricsConfig enables the observability listener when Addr is set
type MetricsConfig struct {
	Addr string `koanf:"addr" env:"ADDR"`
}

// Default returns the built-in configuration
func Default() Config {
	ac := audio.DefaultConfig()
	return Config{
		Audio: AudioConfig{
			Enabled:        ac.Enabled,
			MasterVolume:   ac.MasterVolume,
			MusicVolume:    ac.MusicVolume,
			BPM:            ac.BPM,
			MaxVoices:      ac.MaxVoices,
			BufferDuration: ac.BufferDuration,
			Seed:           1,
		},
		Sim: SimConfig{
			Step:       constant.SimulationStep,
			MaxCatchUp: constant.MaxCatchUpSteps,
			Refresh:    constant.FrameUpdateInterval,
		},
		Log: LogConfig{
			Format: "text",
			Level:  "info",
			File:   "pigpen.log",
		},
	}
}

// AudioSettings converts to the audio package's config, keeping default
// per-effect volumes
func (c Config) AudioSettings() audio.Config {
	ac := audio.DefaultConfig()
	ac.Enabled = c.Audio.Enabled
	ac.MasterVolume = c.Audio.MasterVolume
	ac.MusicVolume = c.Audio.MusicVolume
	ac.BPM = c.Audio.BPM
	ac.MaxVoices = c.Audio.MaxVoices
	ac.BufferDuration = c.Audio.BufferDuration
	return ac
}
