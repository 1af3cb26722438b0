package audio

import "time"

// Buffer is an immutable mono sample block at SampleRate
// One frame is one sample; the mixer duplicates it to both channels
type Buffer struct {
	samples []float32
}

// NewBuffer wraps samples without copying; the caller must not modify them afterwards
func NewBuffer(samples []float32) Buffer {
	return Buffer{samples: samples}
}

// Frames returns the number of mono frames
func (b Buffer) Frames() int {
	return len(b.samples)
}

// Duration returns the playback length at SampleRate
func (b Buffer) Duration() time.Duration {
	return time.Duration(len(b.samples)) * time.Second / SampleRate
}

// Empty reports a zero-length buffer
func (b Buffer) Empty() bool {
	return len(b.samples) == 0
}
