package physics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// RegisterMetrics exposes simulation counters on reg
func RegisterMetrics(reg prometheus.Registerer, ts *Timestep) {
	reg.MustRegister(
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "pigpen_physics_steps_dropped_total",
			Help: "Fixed steps discarded by the catch-up cap",
		}, func() float64 { return float64(ts.Dropped()) }),
	)
}
