package physics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimestepPrimesOnFirstAdvance(t *testing.T) {
	ts := NewTimestep(500*time.Millisecond, 0)

	steps, frac := ts.Advance(100)
	assert.Zero(t, steps)
	assert.Zero(t, frac)
}

func TestTimestepStepsAndFraction(t *testing.T) {
	ts := NewTimestep(500*time.Millisecond, 0)
	ts.Advance(0)

	tests := []struct {
		now       float64
		wantSteps int
		wantFrac  float32
	}{
		{0.25, 0, 0.5},
		{1.25, 2, 0.5},
		{1.5, 1, 0},
		{1.5, 0, 0},
		{1.625, 0, 0.25},
	}

	for _, tt := range tests {
		steps, frac := ts.Advance(tt.now)
		assert.Equal(t, tt.wantSteps, steps, "now=%v", tt.now)
		assert.Equal(t, tt.wantFrac, frac, "now=%v", tt.now)
	}
}

func TestTimestepCatchUpCap(t *testing.T) {
	ts := NewTimestep(500*time.Millisecond, 3)
	ts.Advance(0)

	steps, frac := ts.Advance(5.25) // 10 steps pending
	assert.Equal(t, 3, steps)
	assert.Equal(t, float32(0.5), frac)
	assert.Equal(t, uint64(7), ts.Dropped())

	// Dropped time is forgotten, not replayed
	steps, _ = ts.Advance(5.5)
	assert.Equal(t, 1, steps)
}

func TestTimestepIgnoresClockGoingBackwards(t *testing.T) {
	ts := NewTimestep(500*time.Millisecond, 0)
	ts.Advance(10)

	steps, frac := ts.Advance(9)
	assert.Zero(t, steps)
	assert.Zero(t, frac)

	steps, _ = ts.Advance(9.5)
	assert.Equal(t, 1, steps)
}

func TestTimestepReset(t *testing.T) {
	ts := NewTimestep(500*time.Millisecond, 0)
	ts.Advance(0)
	ts.Advance(0.25)

	ts.Reset()
	steps, frac := ts.Advance(50)
	assert.Zero(t, steps)
	assert.Zero(t, frac)

	steps, _ = ts.Advance(50.5)
	assert.Equal(t, 1, steps)
}

func TestTimestepDefaults(t *testing.T) {
	ts := NewTimestep(0, 0)
	assert.Equal(t, (time.Second / 30).Round(time.Microsecond), ts.Step().Round(time.Microsecond))
}
