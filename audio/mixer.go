package audio

import (
	"sync/atomic"
)

// voice tracks one playing instance of a buffer
type voice struct {
	buf  Buffer
	pos  int
	next *voice
}

// Stats are lifetime voice counters
type Stats struct {
	Played   uint64
	Finished uint64
	Evicted  uint64
}

// Mixer layers one-shot buffers onto an interleaved stereo output block
// Play may be called from any goroutine; Mix must only be called from the audio goroutine
type Mixer struct {
	maxVoices int

	// Lock-free handoff: Play pushes, Mix takes the whole stack with one swap
	pending atomic.Pointer[voice]

	// Accessed only by the mix goroutine, oldest first
	head, tail *voice
	count      int

	active   atomic.Int64
	played   atomic.Uint64
	finished atomic.Uint64
	evicted  atomic.Uint64
}

// NewMixer creates a mixer; maxVoices > 0 evicts the oldest voices beyond the
// limit, 0 leaves the voice count unbounded
func NewMixer(maxVoices int) *Mixer {
	if maxVoices < 0 {
		maxVoices = 0
	}
	return &Mixer{maxVoices: maxVoices}
}

// Play queues a new instance of b starting at its first frame
// The same buffer may be playing any number of times at once
func (m *Mixer) Play(b Buffer) {
	if b.Empty() {
		return
	}

	v := &voice{buf: b}
	for {
		head := m.pending.Load()
		v.next = head
		if m.pending.CompareAndSwap(head, v) {
			break
		}
	}
	m.played.Add(1)
}

// Mix adds up to frames frames of every active voice into out
// out holds interleaved stereo frames and is never overwritten or clipped
// Finished voices are dropped. Mix does not allocate or block
func (m *Mixer) Mix(out []float32, frames int) {
	m.adopt()

	if frames > len(out)/2 {
		frames = len(out) / 2
	}
	if frames <= 0 || m.head == nil {
		return
	}

	var prev *voice
	for v := m.head; v != nil; {
		next := v.next

		remaining := len(v.buf.samples) - v.pos
		n := min(remaining, frames)
		src := v.buf.samples[v.pos : v.pos+n]
		for i, s := range src {
			out[2*i] += s
			out[2*i+1] += s
		}
		v.pos += n

		if v.pos == len(v.buf.samples) {
			m.unlink(prev, v)
			m.finished.Add(1)
		} else {
			prev = v
		}
		v = next
	}

	m.active.Store(int64(m.count))
}

// adopt moves queued voices to the tail of the active list in play order
func (m *Mixer) adopt() {
	list := m.pending.Swap(nil)
	if list == nil {
		return
	}

	// Stack is newest first; reverse in place
	var rev *voice
	for list != nil {
		next := list.next
		list.next = rev
		rev = list
		list = next
	}

	for v := rev; v != nil; {
		next := v.next
		v.next = nil
		if m.tail == nil {
			m.head = v
		} else {
			m.tail.next = v
		}
		m.tail = v
		m.count++
		v = next
	}

	for m.maxVoices > 0 && m.count > m.maxVoices {
		m.unlink(nil, m.head)
		m.evicted.Add(1)
	}

	m.active.Store(int64(m.count))
}

// unlink removes v, whose predecessor is prev (nil for head)
func (m *Mixer) unlink(prev, v *voice) {
	if prev == nil {
		m.head = v.next
	} else {
		prev.next = v.next
	}
	if m.tail == v {
		m.tail = prev
	}
	v.next = nil
	m.count--
}

// Active returns the voice count as of the last Mix
func (m *Mixer) Active() int {
	return int(m.active.Load())
}

// Stats returns lifetime counters
func (m *Mixer) Stats() Stats {
	return Stats{
		Played:   m.played.Load(),
		Finished: m.finished.Load(),
		Evicted:  m.evicted.Load(),
	}
}
