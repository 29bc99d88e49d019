package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics counts aggregates the database has durably accepted.
type StoreMetrics struct {
	committed *prometheus.CounterVec
}

func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}
	committed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "aggregates_committed_total",
		Help: "Aggregates written by committed units of work, by kind.",
	}, []string{"kind"})
	reg.MustRegister(committed)
	return &StoreMetrics{committed: committed}
}

func (m *StoreMetrics) IncCommitted(kind string) {
	if m == nil || m.committed == nil {
		return
	}
	m.committed.WithLabelValues(normalizeLabel(kind)).Inc()
}
