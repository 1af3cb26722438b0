package audio

import (
	"github.com/prometheus/client_golang/prometheus"
)

// RegisterMetrics exposes mixer counters on reg
// Values are read from the mixer's atomics at scrape time so the audio
// goroutine never touches prometheus
func RegisterMetrics(reg prometheus.Registerer, m *Mixer) {
	reg.MustRegister(
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "pigpen_audio_voices_played_total",
			Help: "Total number of one-shot voices queued for playback",
		}, func() float64 { return float64(m.Stats().Played) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "pigpen_audio_voices_finished_total",
			Help: "Total number of one-shot voices played to completion",
		}, func() float64 { return float64(m.Stats().Finished) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "pigpen_audio_voices_evicted_total",
			Help: "Total number of one-shot voices dropped by the voice cap",
		}, func() float64 { return float64(m.Stats().Evicted) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "pigpen_audio_voices_active",
			Help: "Voices owned by the mixer as of the last mix",
		}, func() float64 { return float64(m.Active()) }),
	)
}
