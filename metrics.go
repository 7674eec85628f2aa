package libemit

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the prometheus collectors fed by an emitter. A nil *Metrics records nothing.
// Event names are used as label values, so keep the set of names bounded.
type Metrics struct {
	dispatches *prometheus.CounterVec
	failures   *prometheus.CounterVec
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "emitter",
			Name:      "dispatches_total",
			Help:      "Number of dispatches per event, split by whether any listener fired.",
		}, []string{"event", "fired"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "emitter",
			Name:      "listener_failures_total",
			Help:      "Number of listener failures captured during dispatch.",
		}, []string{"event"}),
	}
}

// Register adds the collectors to reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.dispatches, m.failures} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) observeDispatch(event string, fired bool) {
	if m == nil {
		return
	}
	m.dispatches.WithLabelValues(event, strconv.FormatBool(fired)).Inc()
}

func (m *Metrics) observeFailure(event string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(event).Inc()
}
