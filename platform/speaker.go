package platform

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/samber/oops"

	"github.com/lixenwraith/pigpen/constant"
)

// Speaker owns the process-wide audio device and the one stream it plays
type Speaker struct {
	ctrl      *beep.Ctrl
	closeOnce sync.Once
}

// OpenSpeaker initializes the device at the fixed output rate with a buffer of
// bufferDur and starts pulling src from the device goroutine
func OpenSpeaker(src beep.Streamer, bufferDur time.Duration) (*Speaker, error) {
	if bufferDur <= 0 {
		bufferDur = constant.AudioBufferDuration
	}

	sr := beep.SampleRate(constant.AudioSampleRate)
	if err := speaker.Init(sr, sr.N(bufferDur)); err != nil {
		return nil, oops.In("platform").
			With("sample_rate", int(sr), "buffer", bufferDur.String()).
			Wrapf(err, "audio device init")
	}

	ctrl := &beep.Ctrl{Streamer: src}
	speaker.Play(ctrl)
	return &Speaker{ctrl: ctrl}, nil
}

// Close detaches the stream and releases the device
func (s *Speaker) Close() {
	s.closeOnce.Do(func() {
		speaker.Clear()
		speaker.Close()
	})
}
