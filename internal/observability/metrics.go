package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for a conversion run. The tool is a
// one-shot batch process, so metrics live on a dedicated registry and are
// exported through the node exporter textfile collector rather than an HTTP
// endpoint.
type Metrics struct {
	RowsRead       prometheus.Counter
	RecordsEmitted prometheus.Counter
	RowsDropped    prometheus.Counter

	LastRunTimestamp prometheus.Gauge
	LastRunDuration  prometheus.Gauge

	registry *prometheus.Registry
}

// NewMetrics creates and registers all conversion metrics on a fresh
// registry. A fresh registry per Metrics value also keeps tests free of
// "already registered" panics.
func NewMetrics() *Metrics {
	m := &Metrics{
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lead_etl",
			Name:      "rows_read_total",
			Help:      "Total rows read from the source export.",
		}),
		RecordsEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lead_etl",
			Name:      "records_emitted_total",
			Help:      "Total normalized records written to the artifact.",
		}),
		RowsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lead_etl",
			Name:      "rows_dropped_total",
			Help:      "Total source rows dropped for having no PWSID.",
		}),
		LastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lead_etl",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last completed conversion.",
		}),
		LastRunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lead_etl",
			Name:      "last_run_duration_seconds",
			Help:      "Duration of the last completed conversion.",
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.RowsRead,
		m.RecordsEmitted,
		m.RowsDropped,
		m.LastRunTimestamp,
		m.LastRunDuration,
	)

	return m
}

// WriteTextfile dumps the registry in the Prometheus text format for the
// textfile collector. The write is atomic (temp file plus rename) inside the
// prometheus client.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
