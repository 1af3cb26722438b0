package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// flagKeys maps CLI flag names to config keys
var flagKeys = map[string]string{
	"audio":         "audio.enabled",
	"master-volume": "audio.master_volume",
	"music-volume":  "audio.music_volume",
	"bpm":           "audio.bpm",
	"max-voices":    "audio.max_voices",
	"audio-buffer":  "audio.buffer",
	"seed":          "audio.seed",
	"step":          "sim.step",
	"max-catch-up":  "sim.max_catch_up",
	"refresh":       "sim.refresh",
	"log-format":    "log.format",
	"log-level":     "log.level",
	"log-file":      "log.file",
	"metrics-addr":  "metrics.addr",
}

// RegisterFlags adds the overridable settings to fs with default values
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.Bool("audio", d.Audio.Enabled, "enable audio output")
	fs.Float64("master-volume", d.Audio.MasterVolume, "effect master volume (0-1)")
	fs.Float64("music-volume", d.Audio.MusicVolume, "music volume (0-1)")
	fs.Int("bpm", d.Audio.BPM, "music tempo")
	fs.Int("max-voices", d.Audio.MaxVoices, "cap on simultaneous sound effects, 0 for no cap")
	fs.Duration("audio-buffer", d.Audio.BufferDuration, "audio device buffer length")
	fs.Int64("seed", d.Audio.Seed, "seed for synthesized noise and minion behaviour")
	fs.Duration("step", d.Sim.Step, "fixed simulation step")
	fs.Int("max-catch-up", d.Sim.MaxCatchUp, "max simulation steps per frame")
	fs.Duration("refresh", d.Sim.Refresh, "frame interval")
	fs.String("log-format", d.Log.Format, "log format (text|json)")
	fs.String("log-level", d.Log.Level, "log level (debug|info|warn|error)")
	fs.String("log-file", d.Log.File, "log file, empty to discard logs")
	fs.String("metrics-addr", d.Metrics.Addr, "serve /metrics and health checks on this address")
}

// Load builds the configuration from defaults, the YAML file at path (skipped
// when empty), PIGPEN_* env vars and the flags changed on fs (may be nil)
func Load(path string, fs *pflag.FlagSet) (Config, error) {
	errb := oops.In("config")
	cfg := Default()

	if path != "" {
		k := koanf.New(".")
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, errb.With("path", path).Wrapf(err, "load config file")
		}
		if err := k.Unmarshal("", &cfg); err != nil {
			return Config{}, errb.With("path", path).Wrapf(err, "decode config file")
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, errb.Wrapf(err, "parse environment")
	}

	if fs != nil {
		k := koanf.New(".")
		provider := posflag.ProviderWithFlag(fs, ".", nil, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(fs, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return Config{}, errb.Wrapf(err, "load flags")
		}
		if err := k.Unmarshal("", &cfg); err != nil {
			return Config{}, errb.Wrapf(err, "decode flags")
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
