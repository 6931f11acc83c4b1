// Package metrics wires the agent's counters and gauges into
// github.com/prometheus/client_golang — the teacher's own metrics
// dependency (cmd/snmpsim-api/metrics.go), repurposed here for a single
// long-running agent instead of a multi-lab simulator.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every instrument the agent loop and probe registry record
// against. A *Metrics may be nil — agent.Agent checks before every call, so
// callers that don't need metrics (e.g. tests) can pass nil instead of
// building a registry; --metrics-addr separately controls whether a
// non-nil instance's registry is ever served over HTTP (SPEC_FULL.md §6.3).
type Metrics struct {
	registry *prometheus.Registry

	packetsTotal     *prometheus.CounterVec
	decodeFailures   prometheus.Counter
	probeErrorsTotal *prometheus.CounterVec
	refreshDuration  prometheus.Histogram
	storeSize        prometheus.Gauge
}

// New builds a fresh, unregistered-with-the-default-registry Metrics
// instance bound to its own registry, so tests can construct one per case
// without colliding on prometheus's global registerer.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		packetsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "suntd_packets_total",
			Help: "Total SNMP request PDUs handled, by PDU type.",
		}, []string{"pdu_type"}),
		decodeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "suntd_decode_failures_total",
			Help: "Total datagrams dropped because they failed to decode as an SNMP PDU.",
		}),
		probeErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "suntd_probe_errors_total",
			Help: "Total probe errors, by probe name.",
		}, []string{"probe"}),
		refreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "suntd_refresh_duration_seconds",
			Help:    "Wall-clock time to run every probe in one refresh cycle.",
			Buckets: prometheus.DefBuckets,
		}),
		storeSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "suntd_store_size",
			Help: "Number of OIDs held by the most recent store snapshot.",
		}),
	}

	reg.MustRegister(m.packetsTotal, m.decodeFailures, m.probeErrorsTotal, m.refreshDuration, m.storeSize)
	return m
}

// Handler returns the promhttp handler serving this instance's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordPacket records one handled PDU of the given type.
func (m *Metrics) RecordPacket(pduType string) {
	m.packetsTotal.WithLabelValues(pduType).Inc()
}

// RecordDecodeFailure records one dropped, undecodable datagram.
func (m *Metrics) RecordDecodeFailure() {
	m.decodeFailures.Inc()
}

// RecordProbeError records one failing probe by name.
func (m *Metrics) RecordProbeError(probeName string) {
	m.probeErrorsTotal.WithLabelValues(probeName).Inc()
}

// ObserveRefresh records how long one refresh cycle took and the resulting
// store size.
func (m *Metrics) ObserveRefresh(seconds float64, storeSize int) {
	m.refreshDuration.Observe(seconds)
	m.storeSize.Set(float64(storeSize))
}
