package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests          *prometheus.CounterVec
	CounterMutations         *prometheus.CounterVec
	CounterPersistenceErrors *prometheus.CounterVec
	CounterRejectedFeedback  prometheus.Counter

	// gauges
	GaugeLogEntries prometheus.Gauge
}

func NewTestManager() *Manager {
	return NewManager("coachlog", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("coachlog", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	return &Manager{
		CounterRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request",
			Help:      "The total number of incoming requests",
		}, []string{"method", "status"}),
		CounterMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "session_mutations",
			Help:      "The total number of applied session mutations",
		}, []string{"op"}),
		CounterPersistenceErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "persistence_errors",
			Help:      "The total number of swallowed blob load/save failures",
		}, []string{"op"}),
		CounterRejectedFeedback: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "rejected_feedback",
			Help:      "The total number of feedback submissions without text or video",
		}),
		GaugeLogEntries: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "log_entries",
			Help:      "Current number of set log entries in the session",
		}),
	}
}
