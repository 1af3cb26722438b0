// Package game is the arcade core driven by the platform adapter: a fixed-step
// pig pen with a player, a king and wandering minions
package game

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/lixenwraith/pigpen/audio"
	"github.com/lixenwraith/pigpen/constant"
	"github.com/lixenwraith/pigpen/physics"
	"github.com/lixenwraith/pigpen/platform"
)

const volumeStep = 0.05

// Options wires the game to its collaborators
type Options struct {
	Canvas platform.Canvas
	Host   platform.Host

	Mixer *audio.Mixer
	Bank  *audio.Bank
	Music *audio.Music // nil plays no music

	Timestep *physics.Timestep // nil uses SimulationStep and MaxCatchUpSteps
	Rules    *physics.Rules    // nil uses physics.DefaultRules
	Seed     int64
	Logger   *slog.Logger
}

// Game implements platform.Handler
type Game struct {
	canvas platform.Canvas
	host   platform.Host
	mixer  *audio.Mixer
	bank   *audio.Bank
	music  *audio.Music
	log    *slog.Logger
	tracer trace.Tracer

	rules    physics.Rules
	roster   physics.Roster
	timestep *physics.Timestep
	rng      *rand.Rand

	player int
	king   int

	// Input state, simulation goroutine only
	left, right, jump bool
	paused            bool
	mouseX, mouseY    int

	// Per-slot contact state from the previous step
	grounded [constant.RosterSize]bool
	touching [constant.RosterSize]bool

	steps uint64
}

// New creates a game; call order is driven by the platform adapter
func New(opts Options) *Game {
	g := &Game{
		canvas:   opts.Canvas,
		host:     opts.Host,
		mixer:    opts.Mixer,
		bank:     opts.Bank,
		music:    opts.Music,
		log:      opts.Logger,
		tracer:   otel.Tracer("github.com/lixenwraith/pigpen/game"),
		rules:    physics.DefaultRules,
		timestep: opts.Timestep,
		rng:      rand.New(rand.NewSource(opts.Seed)),
		player:   -1,
		king:     -1,
		mouseX:   -1,
		mouseY:   -1,
	}
	if opts.Rules != nil {
		g.rules = *opts.Rules
	}
	if g.timestep == nil {
		g.timestep = physics.NewTimestep(constant.SimulationStep, constant.MaxCatchUpSteps)
	}
	if g.log == nil {
		g.log = slog.Default()
	}
	g.log = g.log.With("component", "game")
	return g
}

// OnSetup populates the pen
func (g *Game) OnSetup() {
	_, span := g.tracer.Start(context.Background(), "game.setup")
	defer span.End()

	g.player = g.spawn(physics.TypePlayer,
		constant.WorldWidth/4, constant.GroundLevel-constant.PlayerHeight,
		constant.PlayerWidth, constant.PlayerHeight)
	g.king = g.spawn(physics.TypeKing,
		constant.WorldWidth*3/4-constant.KingWidth/2, constant.GroundLevel-constant.KingHeight,
		constant.KingWidth, constant.KingHeight)

	for i := 0; i < constant.MinionCount; i++ {
		x := constant.WorldWidth*3/8 + float32(i)*constant.MinionWidth*1.6
		y := float32(20 + 8*(i%3))
		g.spawn(physics.TypeMinion, x, y, constant.MinionWidth, constant.MinionHeight)
	}

	span.SetAttributes(attribute.Int("objects", g.roster.Len()))
	g.log.Info("pen ready",
		"objects", g.roster.Len(),
		"step", g.timestep.Step().String(),
		"music", g.music != nil)
}

// spawn places a sized object, reporting a full roster as fatal
func (g *Game) spawn(t physics.ObjectType, x, y, w, h float32) int {
	o := physics.NewObject(t, x, y)
	o.SetSize(w, h)

	slot, ok := g.roster.Spawn(o)
	if !ok {
		g.host.Error(fmt.Sprintf("roster full spawning %s", t))
		return -1
	}
	g.grounded[slot] = g.rules.Ground > 0 && y+h >= g.rules.Ground
	return slot
}

// OnUpdate runs the fixed steps owed since the last refresh, then draws at the
// interpolated positions
func (g *Game) OnUpdate(width, height int, seconds float64) {
	steps, frac := g.timestep.Advance(seconds)
	if g.paused {
		steps, frac = 0, 0
	}
	for i := 0; i < steps; i++ {
		g.step()
	}
	g.draw(width, height, frac)
}

// step advances the simulation by one fixed step
func (g *Game) step() {
	if p := g.roster.At(g.player); p != nil && p.Valid() {
		g.steer(p)
	}
	g.roster.Each(func(_ int, o *physics.Object) {
		if o.Type() == physics.TypeMinion {
			g.wander(o)
		}
	})

	g.roster.Update(&g.rules)

	g.roster.Each(func(slot int, o *physics.Object) {
		if physics.Landed(g.grounded[slot], o) && o.Type() != physics.TypeMinion {
			g.play(audio.SoundLand)
		}
		g.grounded[slot] = o.OnGround()
	})
	g.collide()
	g.steps++
}

// steer applies held input to the player
func (g *Game) steer(p *physics.Object) {
	var ax float32
	if g.left {
		ax -= constant.MoveForce
	}
	if g.right {
		ax += constant.MoveForce
	}

	vx := p.VelocityX()
	switch {
	case ax != 0:
		target := min(max(vx+ax, -constant.MaxRunSpeed), constant.MaxRunSpeed)
		p.ApplyForce(target-vx, 0)
	case p.OnGround():
		p.ApplyForce(vx*(constant.GroundDrag-1), 0)
	}

	if g.jump && p.OnGround() {
		p.ApplyForce(0, constant.JumpForce)
		g.play(audio.SoundJump)
	}
}

// wander makes grounded minions slow down and occasionally hop
func (g *Game) wander(o *physics.Object) {
	if !o.OnGround() {
		return
	}
	o.ApplyForce(o.VelocityX()*(constant.GroundDrag-1), 0)
	if g.rng.Intn(45) == 0 {
		dir := float32(1)
		if g.rng.Intn(2) == 0 {
			dir = -1
		}
		o.ApplyForce(dir*constant.MinionRunForce, constant.MinionHopForce)
	}
}

// collide reacts to the player starting to touch a minion or the king
func (g *Game) collide() {
	p := g.roster.At(g.player)
	if p == nil || !p.Valid() {
		return
	}

	g.roster.Each(func(slot int, o *physics.Object) {
		if slot == g.player {
			return
		}
		hit := physics.Overlaps(p, o)
		if hit && !g.touching[slot] {
			switch o.Type() {
			case physics.TypeMinion:
				dir := float32(1)
				if o.X() < p.X() {
					dir = -1
				}
				o.ApplyForce(dir*constant.BumpImpulse, constant.MinionHopForce/2)
				p.ApplyForce(-dir*constant.BumpImpulse/2, 0)
				g.play(audio.SoundBump)
			case physics.TypeKing:
				g.play(audio.SoundOink)
			}
		}
		g.touching[slot] = hit
	})
}

// play queues a one-shot; a game built without audio stays silent
func (g *Game) play(st audio.SoundType) {
	if g.mixer == nil || g.bank == nil {
		return
	}
	g.mixer.Play(g.bank.Get(st))
}

// OnKey maps held keys to movement and presses to toggles
func (g *Game) OnKey(code platform.KeyCode, pressed bool) {
	switch code {
	case platform.KeyLeft, platform.KeyCode('a'):
		g.left = pressed
	case platform.KeyRight, platform.KeyCode('d'):
		g.right = pressed
	case platform.KeySpace, platform.KeyUp, platform.KeyCode('w'):
		g.jump = pressed
	case platform.KeyCode('m'):
		if pressed && g.music != nil {
			audible := g.music.ToggleMute()
			g.log.Debug("music toggled", "audible", audible)
		}
	case platform.KeyCode('p'):
		if pressed {
			g.setPaused(!g.paused)
		}
	case platform.KeyEscape:
		if pressed {
			g.setPaused(false)
		}
	}
}

func (g *Game) setPaused(paused bool) {
	if g.paused == paused {
		return
	}
	g.paused = paused
	g.log.Debug("pause", "paused", paused, "steps", g.steps)
}

// OnText has no bindings; keys arrive through OnKey
func (g *Game) OnText(r rune) {}

// OnMouseButton oinks on a left click
func (g *Game) OnMouseButton(index int, pressed bool) {
	if index == 0 && pressed {
		g.play(audio.SoundOink)
	}
}

// OnMouseMove tracks the pointer cell for the cursor marker
func (g *Game) OnMouseMove(x, y int) {
	g.mouseX, g.mouseY = x, y
}

// OnMouseWheel nudges the music volume
func (g *Game) OnMouseWheel(dx, dy float64) {
	if g.music == nil || dy == 0 {
		return
	}
	g.music.SetVolume(g.music.Volume() + dy*volumeStep)
}

// MusicCallback renders music on the audio goroutine
func (g *Game) MusicCallback(out []float32, frames int) {
	if g.music != nil {
		g.music.Fill(out, frames)
		return
	}
	clear(out[:min(2*max(frames, 0), len(out))])
}

// Paused reports whether the simulation is frozen
func (g *Game) Paused() bool {
	return g.paused
}

// Steps returns the fixed steps simulated so far
func (g *Game) Steps() uint64 {
	return g.steps
}

// Timestep exposes the accumulator for metrics registration
func (g *Game) Timestep() *physics.Timestep {
	return g.timestep
}

