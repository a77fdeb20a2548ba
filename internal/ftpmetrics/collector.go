// Package ftpmetrics exposes Prometheus instrumentation for the FTP
// server: active session gauges, per-verb command counters, transfer
// byte counters, and transfer duration histograms.
package ftpmetrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "goftpd"
	subsystem = "ftp"
)

const (
	labelVerb = "verb"
	labelDir  = "direction"
)

// Collector holds all FTP server Prometheus metrics.
type Collector struct {
	// Sessions tracks the number of currently registered control
	// connections.
	Sessions prometheus.Gauge

	// CommandsTotal counts dispatched commands per verb.
	CommandsTotal *prometheus.CounterVec

	// BytesTransferred counts payload bytes moved over data connections,
	// labeled by direction ("retr", "stor" or "list").
	BytesTransferred *prometheus.CounterVec

	// TransferDuration observes how long RETR/STOR/LIST transfers take to
	// complete, labeled by verb.
	TransferDuration *prometheus.HistogramVec
}

// NewCollector creates a Collector with all FTP metrics registered against
// reg. If reg is nil, prometheus.DefaultRegisterer is used.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := newMetrics()

	reg.MustRegister(
		c.Sessions,
		c.CommandsTotal,
		c.BytesTransferred,
		c.TransferDuration,
	)

	return c
}

func newMetrics() *Collector {
	return &Collector{
		Sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "sessions",
			Help:      "Number of currently registered control connections.",
		}),

		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "commands_total",
			Help:      "Total commands dispatched, labeled by verb.",
		}, []string{labelVerb}),

		BytesTransferred: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "bytes_transferred_total",
			Help:      "Total payload bytes moved over data connections.",
		}, []string{labelDir}),

		TransferDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "transfer_duration_seconds",
			Help:      "Duration of RETR/STOR/LIST transfers.",
			Buckets:   prometheus.DefBuckets,
		}, []string{labelVerb}),
	}
}

// RegisterSession increments the active sessions gauge.
func (c *Collector) RegisterSession() {
	c.Sessions.Inc()
}

// UnregisterSession decrements the active sessions gauge.
func (c *Collector) UnregisterSession() {
	c.Sessions.Dec()
}

// IncCommand increments the command counter for verb.
func (c *Collector) IncCommand(verb string) {
	c.CommandsTotal.WithLabelValues(verb).Inc()
}

// AddBytesTransferred adds n bytes to the counter for direction ("retr",
// "stor" or "list").
func (c *Collector) AddBytesTransferred(direction string, n float64) {
	c.BytesTransferred.WithLabelValues(direction).Add(n)
}

// ObserveTransferDuration records how long a verb's transfer took.
func (c *Collector) ObserveTransferDuration(verb string, seconds float64) {
	c.TransferDuration.WithLabelValues(verb).Observe(seconds)
}
