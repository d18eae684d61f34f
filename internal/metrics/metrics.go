package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the extraction service.
type Metrics struct {
	ExtractionsAccepted prometheus.Counter
	ExtractionsRejected *prometheus.CounterVec
	DuplicatesDetected  prometheus.Counter
	OrientationSelected *prometheus.CounterVec
	ExtractLatency      prometheus.Histogram
	EndpointLatency     *prometheus.HistogramVec
}

// New creates and registers all metrics on the default registerer.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers on reg; tests pass a fresh registry to avoid duplicate
// registration panics.
func NewWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ExtractionsAccepted: f.NewCounter(prometheus.CounterOpts{
			Name: "idcard_extractions_accepted_total",
			Help: "Total number of extractions accepted and persisted",
		}),
		ExtractionsRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "idcard_extractions_rejected_total",
			Help: "Total number of rejected extractions, labeled by reason",
		}, []string{"reason"}),
		DuplicatesDetected: f.NewCounter(prometheus.CounterOpts{
			Name: "idcard_duplicates_detected_total",
			Help: "Total number of submissions refused by the duplicate gate",
		}),
		OrientationSelected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "idcard_orientation_selected_total",
			Help: "Winning rotation angle of the OCR orientation retry",
		}, []string{"angle"}),
		ExtractLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "idcard_extract_latency_seconds",
			Help:    "End-to-end latency of one extraction request",
			Buckets: prometheus.DefBuckets,
		}),
		EndpointLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "idcard_endpoint_latency_seconds",
			Help:    "Latency of HTTP endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
}

func (m *Metrics) IncrementAccepted() {
	m.ExtractionsAccepted.Inc()
}

func (m *Metrics) IncrementRejected(reason string) {
	m.ExtractionsRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncrementDuplicates() {
	m.DuplicatesDetected.Inc()
}

func (m *Metrics) IncrementOrientation(angle string) {
	m.OrientationSelected.WithLabelValues(angle).Inc()
}

// ObserveExtractLatency records the end-to-end extraction latency.
func (m *Metrics) ObserveExtractLatency(durationSeconds float64) {
	m.ExtractLatency.Observe(durationSeconds)
}

// ObserveEndpointLatency records the latency for a given endpoint.
func (m *Metrics) ObserveEndpointLatency(endpoint string, durationSeconds float64) {
	m.EndpointLatency.WithLabelValues(endpoint).Observe(durationSeconds)
}
