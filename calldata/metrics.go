package calldata

import (
	"github.com/NethermindEth/expectations/core"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts encoded and skipped calls per kind. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	Encoded *prometheus.CounterVec
	Skipped *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Encoded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "expectations",
			Subsystem: "calls",
			Name:      "encoded_total",
			Help:      "Number of calls encoded into call data.",
		}, []string{"kind"}),
		Skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "expectations",
			Subsystem: "calls",
			Name:      "skipped_total",
			Help:      "Number of calls that produce no call data.",
		}, []string{"kind"}),
	}
	for _, c := range []prometheus.Collector{m.Encoded, m.Skipped} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) encoded(kind core.Kind) {
	if m != nil {
		m.Encoded.WithLabelValues(kind.String()).Inc()
	}
}

func (m *Metrics) skipped(kind core.Kind) {
	if m != nil {
		m.Skipped.WithLabelValues(kind.String()).Inc()
	}
}
