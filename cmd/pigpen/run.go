package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/lixenwraith/pigpen/audio"
	"github.com/lixenwraith/pigpen/config"
	"github.com/lixenwraith/pigpen/game"
	"github.com/lixenwraith/pigpen/logging"
	"github.com/lixenwraith/pigpen/observability"
	"github.com/lixenwraith/pigpen/physics"
	"github.com/lixenwraith/pigpen/platform"
)

// errFatal is returned after the fatal path ran with a non-exiting Exit
var errFatal = errors.New("fatal error reported")

// device is the audio output as seen by the entry point
type device interface {
	Close()
}

// runDeps are the process-level collaborators, swapped out in tests
type runDeps struct {
	newScreen   func() (tcell.Screen, error)
	openSpeaker func(src beep.Streamer, buffer time.Duration) (device, error)
	stderr      io.Writer
	exit        func(int)
}

func defaultDeps() runDeps {
	return runDeps{
		newScreen: tcell.NewScreen,
		openSpeaker: func(src beep.Streamer, buffer time.Duration) (device, error) {
			return platform.OpenSpeaker(src, buffer)
		},
		stderr: os.Stderr,
		exit:   os.Exit,
	}
}

func runGame(cmd *cobra.Command, deps runDeps) error {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		cmd.PrintErrln("config:", err)
		return err
	}

	logOut, closeLog, err := logging.OpenFile(cfg.Log.File)
	if err != nil {
		cmd.PrintErrln("log:", err)
		return err
	}
	defer closeLog()

	logger := logging.Setup("pigpen", version, logging.Options{
		Format: cfg.Log.Format,
		Level:  cfg.Log.Level,
	}, logOut)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return run(ctx, cfg, logger, deps)
}

// run wires the platform, audio and game, then blocks in the terminal loop
func run(ctx context.Context, cfg config.Config, logger *slog.Logger, deps runDeps) error {
	ctx, span := otel.Tracer("github.com/lixenwraith/pigpen/cmd").Start(ctx, "pigpen.run")
	defer span.End()

	screen, err := deps.newScreen()
	if err != nil {
		fatal := &platform.Fatal{Logger: logger, Stderr: deps.stderr, Exit: deps.exit}
		fatal.Error("screen: " + err.Error())
		return errFatal
	}

	term := platform.NewTerminal(screen, platform.TerminalOptions{
		Refresh: cfg.Sim.Refresh,
		Logger:  logger,
	})
	defer term.Fini()

	fatal := &platform.Fatal{
		Logger:   logger,
		Finalize: term.Fini,
		Stderr:   deps.stderr,
		Exit:     deps.exit,
	}
	defer fatal.Recover()

	ac := cfg.AudioSettings()
	mixer, bank, music, err := newAudio(ac, cfg.Audio.Seed)
	if err != nil {
		logging.LogError(ctx, logger, "music setup failed", err)
		fatal.Error(err.Error())
		return errFatal
	}

	g := game.New(game.Options{
		Canvas:   term,
		Host:     fatal,
		Mixer:    mixer,
		Bank:     bank,
		Music:    music,
		Timestep: physics.NewTimestep(cfg.Sim.Step, cfg.Sim.MaxCatchUp),
		Seed:     cfg.Audio.Seed,
		Logger:   logger,
	})

	if ac.Enabled {
		spk, err := deps.openSpeaker(audio.NewStream(g.MusicCallback, mixer), ac.BufferDuration)
		if err != nil {
			logging.LogError(ctx, logger, "audio device init failed", err)
			fatal.Error(err.Error())
			return errFatal
		}
		defer spk.Close()
	}

	var ready atomic.Bool
	if cfg.Metrics.Addr != "" {
		srv := observability.NewServer(cfg.Metrics.Addr, ready.Load, logger)
		if mixer != nil {
			audio.RegisterMetrics(srv.Registry(), mixer)
		}
		physics.RegisterMetrics(srv.Registry(), g.Timestep())

		errCh, err := srv.Start()
		if err != nil {
			logging.LogError(ctx, logger, "metrics server not started", err)
		} else {
			fatal.Go(func() {
				for err := range errCh {
					logging.LogError(ctx, logger, "metrics server failed", err)
				}
			})
			defer func() {
				stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				if err := srv.Stop(stopCtx); err != nil {
					logging.LogError(ctx, logger, "metrics server stop", err)
				}
			}()
		}
	}

	logger.InfoContext(ctx, "starting",
		"audio", ac.Enabled,
		"step", cfg.Sim.Step.String(),
		"max_voices", ac.MaxVoices)
	span.AddEvent("ready")
	ready.Store(true)

	if err := term.Run(ctx, g); err != nil {
		logging.LogError(ctx, logger, "terminal failed", err)
		fatal.Error(err.Error())
		return errFatal
	}

	var st audio.Stats
	if mixer != nil {
		st = mixer.Stats()
	}
	logger.InfoContext(ctx, "stopped",
		"steps", g.Steps(),
		"dropped_steps", g.Timestep().Dropped(),
		"voices_played", st.Played,
		"voices_evicted", st.Evicted)
	return nil
}

// newAudio builds the mixer, effect bank and music when audio is enabled
// With audio off no stream drains a mixer, so all three are nil
func newAudio(ac audio.Config, seed int64) (*audio.Mixer, *audio.Bank, *audio.Music, error) {
	if !ac.Enabled {
		return nil, nil, nil, nil
	}

	music, err := audio.NewMusic(ac)
	if err != nil {
		return nil, nil, nil, err
	}
	bank := audio.NewBank(ac, seed)
	bank.Preload()
	return audio.NewMixer(ac.MaxVoices), bank, music, nil
}
