package game

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/pigpen/audio"
	"github.com/lixenwraith/pigpen/constant"
	"github.com/lixenwraith/pigpen/physics"
	"github.com/lixenwraith/pigpen/platform"
)

// Binary-exact step so accumulated clock values never round down
const testStep = 125 * time.Millisecond

type cell struct {
	r rune
	c platform.Color
}

type fakeCanvas struct {
	w, h   int
	cells  map[[2]int]cell
	texts  []string
	clears int
}

func newFakeCanvas(w, h int) *fakeCanvas {
	return &fakeCanvas{w: w, h: h, cells: make(map[[2]int]cell)}
}

func (c *fakeCanvas) Size() (int, int) { return c.w, c.h }

func (c *fakeCanvas) Clear() {
	c.clears++
	clear(c.cells)
	c.texts = nil
}

func (c *fakeCanvas) Plot(x, y int, r rune, col platform.Color) {
	c.cells[[2]int{x, y}] = cell{r, col}
}

func (c *fakeCanvas) Print(x, y int, s string, col platform.Color) {
	c.texts = append(c.texts, s)
}

type fakeHost struct{ errors []string }

func (h *fakeHost) Error(msg string) { h.errors = append(h.errors, msg) }

type harness struct {
	game   *Game
	canvas *fakeCanvas
	host   *fakeHost
	mixer  *audio.Mixer
	music  *audio.Music
	now    float64
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	music, err := audio.NewMusic(audio.DefaultConfig())
	require.NoError(t, err)

	h := &harness{
		canvas: newFakeCanvas(80, 24),
		host:   &fakeHost{},
		mixer:  audio.NewMixer(0),
		music:  music,
	}
	h.game = New(Options{
		Canvas:   h.canvas,
		Host:     h.host,
		Mixer:    h.mixer,
		Bank:     audio.NewBank(audio.DefaultConfig(), 1),
		Music:    music,
		Timestep: physics.NewTimestep(testStep, constant.MaxCatchUpSteps),
		Seed:     1,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	h.game.OnSetup()
	h.game.OnUpdate(80, 24, 0) // prime the clock
	return h
}

// advance runs n fixed steps through the public update path
func (h *harness) advance(n int) {
	for i := 0; i < n; i++ {
		h.now += testStep.Seconds()
		h.game.OnUpdate(h.canvas.w, h.canvas.h, h.now)
	}
}

// clearMinions removes random wandering from tests that track sounds
func (h *harness) clearMinions() {
	h.game.roster.Each(func(slot int, o *physics.Object) {
		if o.Type() == physics.TypeMinion {
			h.game.roster.Free(slot)
		}
	})
}

func (h *harness) player() *physics.Object {
	return h.game.roster.At(h.game.player)
}

func (h *harness) played() uint64 {
	return h.mixer.Stats().Played
}

func TestSetupPopulatesPen(t *testing.T) {
	h := newHarness(t)

	counts := map[physics.ObjectType]int{}
	h.game.roster.Each(func(_ int, o *physics.Object) {
		counts[o.Type()]++
		assert.Positive(t, o.Width())
		assert.Positive(t, o.Height())
	})
	assert.Equal(t, 1, counts[physics.TypePlayer])
	assert.Equal(t, 1, counts[physics.TypeKing])
	assert.Equal(t, constant.MinionCount, counts[physics.TypeMinion])
	assert.Empty(t, h.host.errors)

	p := h.player()
	assert.Equal(t, float32(constant.GroundLevel-constant.PlayerHeight), p.Y())
}

func TestUpdateRunsFixedSteps(t *testing.T) {
	h := newHarness(t)
	assert.Zero(t, h.game.Steps(), "priming update runs no steps")

	h.advance(3)
	assert.Equal(t, uint64(3), h.game.Steps())

	// Two steps owed at once
	h.now += 2 * testStep.Seconds()
	h.game.OnUpdate(80, 24, h.now)
	assert.Equal(t, uint64(5), h.game.Steps())

	// Sub-step refresh draws without stepping
	h.now += testStep.Seconds() / 2
	h.game.OnUpdate(80, 24, h.now)
	assert.Equal(t, uint64(5), h.game.Steps())
}

func TestRestingObjectsLandSilently(t *testing.T) {
	h := newHarness(t)
	h.clearMinions()

	h.advance(10)
	assert.Zero(t, h.played(), "objects spawned on the ground do not land")
	assert.True(t, h.player().OnGround())
	assert.Zero(t, h.player().VelocityY())
}

func TestPlayerRunsAndStops(t *testing.T) {
	h := newHarness(t)
	h.clearMinions()
	x0 := h.player().X()

	h.game.OnKey(platform.KeyRight, true)
	h.advance(10)
	assert.Greater(t, h.player().X(), x0)
	assert.InDelta(t, constant.MaxRunSpeed, h.player().VelocityX(), 1e-5, "run speed is capped")

	h.game.OnKey(platform.KeyRight, false)
	h.advance(40)
	assert.InDelta(t, 0, h.player().VelocityX(), 0.01, "ground drag stops the player")

	h.game.OnKey(platform.KeyCode('a'), true)
	h.advance(1)
	assert.Negative(t, h.player().VelocityX())
}

func TestJumpAndLandPlaySounds(t *testing.T) {
	h := newHarness(t)
	h.clearMinions()
	h.advance(1) // ground contact is known after the first step
	require.Zero(t, h.played())

	h.game.OnKey(platform.KeySpace, true)
	h.advance(1)
	h.game.OnKey(platform.KeySpace, false)

	assert.Equal(t, uint64(1), h.played(), "jump")
	assert.False(t, h.player().OnGround())
	assert.Negative(t, h.player().VelocityY())

	h.advance(60)
	assert.True(t, h.player().OnGround())
	assert.Equal(t, uint64(2), h.played(), "jump then land")
}

func TestSilentWithoutMixer(t *testing.T) {
	canvas := newFakeCanvas(80, 24)
	host := &fakeHost{}
	g := New(Options{
		Canvas:   canvas,
		Host:     host,
		Timestep: physics.NewTimestep(testStep, constant.MaxCatchUpSteps),
		Seed:     1,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	g.OnSetup()

	now := 0.0
	g.OnUpdate(80, 24, now)
	g.OnKey(platform.KeySpace, true)
	g.OnMouseButton(0, true)
	for i := 0; i < 60; i++ {
		now += testStep.Seconds()
		g.OnUpdate(80, 24, now)
	}

	assert.Empty(t, host.errors)
	assert.Positive(t, g.Steps())

	out := []float32{1, 1, 1, 1}
	g.MusicCallback(out, 2)
	assert.Equal(t, make([]float32, 4), out)
}

func TestJumpRequiresGround(t *testing.T) {
	h := newHarness(t)
	h.clearMinions()
	h.advance(1)

	h.game.OnKey(platform.KeyCode('w'), true)
	h.advance(3)
	// Holding the key mid-air does not jump again
	assert.Equal(t, uint64(1), h.played())
}

func TestBumpingMinion(t *testing.T) {
	h := newHarness(t)
	h.clearMinions()
	p := h.player()

	m := physics.NewObject(physics.TypeMinion, p.X()+2, p.Y())
	m.SetSize(constant.MinionWidth, constant.MinionHeight)
	slot, ok := h.game.roster.Spawn(m)
	require.True(t, ok)

	h.advance(1)
	assert.Equal(t, uint64(1), h.played(), "bump")
	assert.Positive(t, h.game.roster.At(slot).VelocityX(), "minion is pushed away")
	assert.Negative(t, h.player().VelocityX(), "player recoils")

	// Staying in contact does not re-trigger
	played := h.played()
	h.game.touching[slot] = true
	h.game.collide()
	assert.Equal(t, played, h.played())
}

func TestPauseFreezesSimulation(t *testing.T) {
	h := newHarness(t)

	h.game.OnKey(platform.KeyCode('p'), true)
	h.game.OnKey(platform.KeyCode('p'), false)
	require.True(t, h.game.Paused())

	h.advance(5)
	assert.Zero(t, h.game.Steps())
	assert.Contains(t, h.canvas.texts, "PAUSED")

	// Escape resumes; the time spent paused is not replayed
	h.game.OnKey(platform.KeyEscape, true)
	assert.False(t, h.game.Paused())
	h.advance(1)
	assert.Equal(t, uint64(1), h.game.Steps())
	assert.NotContains(t, h.canvas.texts, "PAUSED")
}

func TestMouseAndMusicControls(t *testing.T) {
	h := newHarness(t)
	h.clearMinions()

	h.game.OnMouseButton(0, true)
	h.game.OnMouseButton(0, false)
	h.game.OnMouseButton(1, true)
	assert.Equal(t, uint64(1), h.played(), "left click oinks")

	vol := h.music.Volume()
	h.game.OnMouseWheel(0, 1)
	assert.InDelta(t, vol+volumeStep, h.music.Volume(), 1e-9)
	h.game.OnMouseWheel(0, -2)
	assert.InDelta(t, vol-volumeStep, h.music.Volume(), 1e-9)

	h.game.OnKey(platform.KeyCode('m'), true)
	assert.True(t, h.music.IsMuted())
	h.game.OnKey(platform.KeyCode('m'), false)
	assert.True(t, h.music.IsMuted(), "release does not toggle")
	h.game.OnKey(platform.KeyCode('m'), true)
	assert.False(t, h.music.IsMuted())
}

func TestDrawPlacesObjects(t *testing.T) {
	h := newHarness(t)
	h.game.OnMouseMove(5, 5)
	h.advance(1)

	p := h.player()
	sx := float32(80) / constant.WorldWidth
	sy := float32(24) / constant.WorldHeight
	got, ok := h.canvas.cells[[2]int{int(p.X() * sx), int(p.Y() * sy)}]
	require.True(t, ok, "player cell drawn")
	assert.Equal(t, platform.ColorPink, got.c)

	k := h.game.roster.At(h.game.king)
	got = h.canvas.cells[[2]int{int(k.X()*sx) + 1, int(k.Y()*sy) + 1}]
	assert.Equal(t, platform.ColorGold, got.c)

	assert.Equal(t, cell{'+', platform.ColorWhite}, h.canvas.cells[[2]int{5, 5}])
	assert.Equal(t, platform.ColorBrown, h.canvas.cells[[2]int{0, 23}].c, "ground")
	require.NotEmpty(t, h.canvas.texts)
	assert.True(t, strings.HasPrefix(h.canvas.texts[0], "music 25%"))
}

func TestDrawInterpolates(t *testing.T) {
	o := physics.NewObject(physics.TypePlayer, 10, 10)
	o.SetSize(4, 4)
	o.ApplyForce(8, -8)

	x0, y0, x1, y1 := cellRect(&o, 0.5, 1, 1)
	assert.Equal(t, [4]int{14, 6, 18, 10}, [4]int{x0, y0, x1, y1})

	// Objects smaller than a cell still take one
	x0, y0, x1, y1 = cellRect(&o, 0, 0.01, 0.01)
	assert.Equal(t, [4]int{0, 0, 1, 1}, [4]int{x0, y0, x1, y1})
}

func TestMusicCallback(t *testing.T) {
	h := newHarness(t)
	out := make([]float32, 64)
	h.game.MusicCallback(out, 32)

	silent := New(Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	out = []float32{1, 1, 1, 1, 1, 1}
	silent.MusicCallback(out, 2)
	assert.Equal(t, []float32{0, 0, 0, 0, 1, 1}, out)

	silent.MusicCallback(out, 100)
	assert.Equal(t, make([]float32, 6), out)
}
