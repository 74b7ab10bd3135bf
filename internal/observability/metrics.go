package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "midcrack"

// Metrics holds the per-process operation counters. Each instance owns its
// registry so tests and repeated runs never collide.
type Metrics struct {
	registry *prometheus.Registry

	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	bytes      *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Operations run, by mode and result.",
			},
			[]string{"mode", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Operation duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"mode"},
		),
		bytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bytes_total",
				Help:      "Artifact bytes read and written.",
			},
			[]string{"mode", "direction"},
		),
	}
	m.registry.MustRegister(m.operations, m.duration, m.bytes)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) RecordOperation(mode string, duration time.Duration, inBytes, outBytes int, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.operations.WithLabelValues(mode, result).Inc()
	m.duration.WithLabelValues(mode).Observe(duration.Seconds())
	m.bytes.WithLabelValues(mode, "in").Add(float64(inBytes))
	m.bytes.WithLabelValues(mode, "out").Add(float64(outBytes))
}

// WriteTextfile dumps the registry in the text exposition format, for the
// node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
