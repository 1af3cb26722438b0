package audio

import (
	"math/rand"
	"sync"
)

// Bank stores synthesized effect buffers scaled by master and per-effect volume
type Bank struct {
	mu    sync.RWMutex
	store [soundTypeCount]Buffer
	ready [soundTypeCount]bool

	gain [soundTypeCount]float32
	rng  *rand.Rand
}

// NewBank creates a bank; buffers are generated on first Get or by Preload
// seed fixes the noise content so builds are reproducible
func NewBank(cfg Config, seed int64) *Bank {
	b := &Bank{rng: rand.New(rand.NewSource(seed))}
	for st := SoundType(0); st < soundTypeCount; st++ {
		vol := cfg.MasterVolume
		if ev, ok := cfg.EffectVolumes[st]; ok {
			vol *= ev
		}
		b.gain[st] = float32(vol)
	}
	return b
}

// Get returns the cached buffer, generating it on demand
// Unknown types return an empty buffer, which the mixer ignores
func (b *Bank) Get(st SoundType) Buffer {
	if st < 0 || st >= soundTypeCount {
		return Buffer{}
	}

	b.mu.RLock()
	if b.ready[st] {
		buf := b.store[st]
		b.mu.RUnlock()
		return buf
	}
	b.mu.RUnlock()

	// Generate and cache
	b.mu.Lock()
	defer b.mu.Unlock()

	// Double-check after acquiring write lock
	if b.ready[st] {
		return b.store[st]
	}

	samples := generateSound(st, b.rng)
	scale(samples, b.gain[st])
	b.store[st] = NewBuffer(samples)
	b.ready[st] = true
	return b.store[st]
}

// Preload generates every effect up front so gameplay never pays for synthesis
func (b *Bank) Preload() {
	for st := SoundType(0); st < soundTypeCount; st++ {
		b.Get(st)
	}
}
