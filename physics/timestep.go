package physics

import (
	"sync/atomic"
	"time"
)

// Timestep converts variable refresh timing into whole fixed steps plus a
// leftover fraction used for render interpolation
type Timestep struct {
	step     float64 // seconds
	maxSteps int

	last   float64
	acc    float64
	primed bool

	// Read by the metrics collector from another goroutine
	dropped atomic.Uint64
}

// NewTimestep creates an accumulator for steps of the given length
// maxSteps caps catch-up per Advance, 0 disables the cap
func NewTimestep(step time.Duration, maxSteps int) *Timestep {
	if step <= 0 {
		step = time.Second / 30
	}
	return &Timestep{
		step:     step.Seconds(),
		maxSteps: maxSteps,
	}
}

// Advance consumes wall time up to now (seconds) and returns the number of
// fixed steps to run and the fraction of a step left over
// The first call only primes the clock
func (t *Timestep) Advance(now float64) (steps int, frac float32) {
	if !t.primed {
		t.last = now
		t.primed = true
		return 0, 0
	}

	elapsed := now - t.last
	t.last = now
	if elapsed > 0 {
		t.acc += elapsed
	}

	steps = int(t.acc / t.step)
	t.acc -= float64(steps) * t.step
	if t.acc < 0 {
		t.acc = 0
	}

	// Spiral-of-death guard: run at most maxSteps, forget the rest
	if t.maxSteps > 0 && steps > t.maxSteps {
		t.dropped.Add(uint64(steps - t.maxSteps))
		steps = t.maxSteps
	}

	return steps, float32(t.acc / t.step)
}

// Reset forgets accumulated time, next Advance primes again
func (t *Timestep) Reset() {
	t.primed = false
	t.acc = 0
}

// Step returns the fixed step length
func (t *Timestep) Step() time.Duration {
	return time.Duration(t.step * float64(time.Second))
}

// Dropped returns the total steps discarded by the catch-up cap
func (t *Timestep) Dropped() uint64 {
	return t.dropped.Load()
}
