package audio

import (
	"math"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/samber/oops"

	"github.com/lixenwraith/pigpen/constant"
)

// Minor pentatonic over two octaves, semitones above the root
var scaleSemitones = [...]float64{0, 3, 5, 7, 10, 12, 15}

// Patterns index into the scale; -1 is a rest
var (
	leadPattern = []int{0, 2, 4, 2, 5, -1, 4, 3, 0, 2, 4, 6, 5, 4, 3, -1}
	bassPattern = []int{0, -1, 0, -1, 3, -1, 3, -1, 2, -1, 2, -1, 1, -1, 3, -1}
)

// Music is a procedural two-voice loop: a sine lead and a sine bass gated by a
// step sequencer, mixed and run through a volume stage
// Fill runs on the audio goroutine; setters are safe from any goroutine
type Music struct {
	out     beep.Streamer
	volume  *effects.Volume
	scratch [][2]float64

	stepFrames atomic.Int64
	bpm        atomic.Int32
	vol        atomic.Uint64 // float64 bits
	muted      atomic.Bool
}

// NewMusic builds the tone bank and sequencers; nothing is allocated after this
func NewMusic(cfg Config) (*Music, error) {
	m := &Music{
		scratch: make([][2]float64, 512),
	}
	m.SetBPM(cfg.BPM)
	m.SetVolume(cfg.MusicVolume)

	sr := beep.SampleRate(SampleRate)
	lead := make([]beep.Streamer, len(scaleSemitones))
	bass := make([]beep.Streamer, len(scaleSemitones))
	for i, semi := range scaleSemitones {
		freq := constant.MusicRootFreq * math.Pow(2, semi/12)

		tone, err := generators.SineTone(sr, freq)
		if err != nil {
			return nil, oops.In("audio").With("freq", freq).Wrapf(err, "lead tone")
		}
		lead[i] = tone

		low, err := generators.SineTone(sr, freq/2)
		if err != nil {
			return nil, oops.In("audio").With("freq", freq/2).Wrapf(err, "bass tone")
		}
		bass[i] = low
	}

	m.volume = &effects.Volume{
		Streamer: &layer{
			top:    newSequencer(lead, leadPattern, 0.35, &m.stepFrames),
			bottom: newSequencer(bass, bassPattern, 0.5, &m.stepFrames),
			tmp:    make([][2]float64, len(m.scratch)),
		},
		Base: 2,
	}
	m.out = m.volume
	return m, nil
}

// Fill overwrites the first frames stereo frames of out with the next slice of music
func (m *Music) Fill(out []float32, frames int) {
	if frames > len(out)/2 {
		frames = len(out) / 2
	}
	if frames <= 0 {
		return
	}
	if m.muted.Load() {
		clear(out[:2*frames])
		return
	}

	// math.Log2(0) is -Inf, zero volume goes silent instead
	if vol := m.Volume(); vol <= 0 {
		m.volume.Silent = true
	} else {
		m.volume.Silent = false
		m.volume.Volume = math.Log2(vol)
	}

	for off := 0; off < frames; {
		c := min(frames-off, len(m.scratch))
		buf := m.scratch[:c]
		m.out.Stream(buf)
		for i, s := range buf {
			out[2*(off+i)] = float32(s[0])
			out[2*(off+i)+1] = float32(s[1])
		}
		off += c
	}
}

// SetBPM changes tempo from the next step boundary
func (m *Music) SetBPM(bpm int) {
	if bpm < constant.MusicMinBPM {
		bpm = constant.MusicMinBPM
	} else if bpm > constant.MusicMaxBPM {
		bpm = constant.MusicMaxBPM
	}
	m.bpm.Store(int32(bpm))
	m.stepFrames.Store(int64(SampleRate * 60 / (bpm * constant.MusicStepsPerBeat)))
}

// BPM returns the current tempo
func (m *Music) BPM() int {
	return int(m.bpm.Load())
}

// SetVolume sets music volume (0.0-1.0)
func (m *Music) SetVolume(vol float64) {
	if vol < 0 {
		vol = 0
	} else if vol > 1 {
		vol = 1
	}
	m.vol.Store(math.Float64bits(vol))
}

// Volume returns music volume (0.0-1.0)
func (m *Music) Volume() float64 {
	return math.Float64frombits(m.vol.Load())
}

// ToggleMute toggles mute state, returns true if now audible
func (m *Music) ToggleMute() bool {
	for {
		was := m.muted.Load()
		if m.muted.CompareAndSwap(was, !was) {
			return was
		}
	}
}

// IsMuted returns current mute state
func (m *Music) IsMuted() bool {
	return m.muted.Load()
}

// layer sums two endless streamers through a preallocated scratch
type layer struct {
	top, bottom beep.Streamer
	tmp         [][2]float64
}

func (l *layer) Stream(samples [][2]float64) (n int, ok bool) {
	for off := 0; off < len(samples); {
		c := min(len(samples)-off, len(l.tmp))
		dst := samples[off : off+c]
		l.top.Stream(dst)
		l.bottom.Stream(l.tmp[:c])
		for i := range dst {
			dst[i][0] += l.tmp[i][0]
			dst[i][1] += l.tmp[i][1]
		}
		off += c
	}
	return len(samples), true
}

func (l *layer) Err() error { return nil }

// sequencer gates a bank of continuous tones by a looping step pattern
type sequencer struct {
	tones      []beep.Streamer
	pattern    []int
	gain       float64
	stepFrames *atomic.Int64

	attack  int
	release int

	step   int
	pos    int // frame within current step
	length int // current step length, latched at step start
}

func newSequencer(tones []beep.Streamer, pattern []int, gain float64, stepFrames *atomic.Int64) *sequencer {
	return &sequencer{
		tones:      tones,
		pattern:    pattern,
		gain:       gain,
		stepFrames: stepFrames,
		attack:     durationToSamples(constant.MusicNoteAttack),
		release:    durationToSamples(constant.MusicNoteRelease),
		length:     int(stepFrames.Load()),
	}
}

func (s *sequencer) Stream(samples [][2]float64) (n int, ok bool) {
	for i := 0; i < len(samples); {
		if s.pos >= s.length {
			s.pos = 0
			s.step = (s.step + 1) % len(s.pattern)
			s.length = int(s.stepFrames.Load())
		}

		run := min(len(samples)-i, s.length-s.pos)
		chunk := samples[i : i+run]

		degree := s.pattern[s.step]
		if degree < 0 {
			clear(chunk)
		} else {
			s.tones[degree].Stream(chunk)
			for j := range chunk {
				g := s.envelope(s.pos+j) * s.gain
				chunk[j][0] *= g
				chunk[j][1] *= g
			}
		}

		s.pos += run
		i += run
	}
	return len(samples), true
}

func (s *sequencer) Err() error { return nil }

// envelope shapes a note: linear attack from the step start, linear release to the step end
func (s *sequencer) envelope(p int) float64 {
	vol := 1.0
	if s.attack > 0 && p < s.attack {
		vol = float64(p) / float64(s.attack)
	}
	if tail := s.length - p; s.release > 0 && tail < s.release {
		if r := float64(tail) / float64(s.release); r < vol {
			vol = r
		}
	}
	return vol
}
