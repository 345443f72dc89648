package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains the collectors exported by the beacon.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	SPARQLDuration *prometheus.HistogramVec
	PubMedBatches  *prometheus.CounterVec
	HTTPRequests   *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SPARQLDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "rhea_beacon",
				Subsystem: "sparql",
				Name:      "query_duration_seconds",
				Help:      "SPARQL query round-trip duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"status"},
		),

		PubMedBatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rhea_beacon",
				Subsystem: "pubmed",
				Name:      "batches_total",
				Help:      "Total number of PubMed summary batches requested",
			},
			[]string{"status"},
		),

		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rhea_beacon",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests served",
			},
			[]string{"route", "code"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.SPARQLDuration, m.PubMedBatches, m.HTTPRequests)
	}
	return m
}

// ObserveSPARQL records one SPARQL round trip.
func (m *Metrics) ObserveSPARQL(status string, d time.Duration) {
	if m == nil {
		return
	}
	m.SPARQLDuration.WithLabelValues(status).Observe(d.Seconds())
}

// CountPubMedBatch records one PubMed batch outcome.
func (m *Metrics) CountPubMedBatch(status string) {
	if m == nil {
		return
	}
	m.PubMedBatches.WithLabelValues(status).Inc()
}

// CountHTTPRequest records one served HTTP request.
func (m *Metrics) CountHTTPRequest(route string, code int) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}
