package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for portfolio_optimizations_total.
const (
	OutcomeSuccess  = "success"
	OutcomeInvalid  = "invalid"
	OutcomeTooLarge = "too_large"
	OutcomeError    = "error"
)

// Transport labels.
const (
	TransportHTTP = "http"
	TransportNATS = "nats"
)

// Recorder owns the optimizer collectors.
type Recorder struct {
	optimizations *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	itemCount     prometheus.Histogram
	selectedCount prometheus.Histogram
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		optimizations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portfolio_optimizations_total",
				Help: "Optimization requests by transport and outcome",
			},
			[]string{"transport", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "portfolio_optimization_duration_seconds",
				Help:    "Time spent validating and solving a request",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"transport"},
		),
		itemCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "portfolio_request_items",
				Help:    "Candidate items per solved request",
				Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
			},
		),
		selectedCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "portfolio_selected_items",
				Help:    "Items selected per solved request",
				Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
			},
		),
	}
	reg.MustRegister(r.optimizations, r.duration, r.itemCount, r.selectedCount)
	return r
}

// ObserveRequest records one request outcome and its latency.
func (r *Recorder) ObserveRequest(transport, outcome string, d time.Duration) {
	r.optimizations.WithLabelValues(transport, outcome).Inc()
	r.duration.WithLabelValues(transport).Observe(d.Seconds())
}

// ObserveSolution records the size of a solved request.
func (r *Recorder) ObserveSolution(items, selected int) {
	r.itemCount.Observe(float64(items))
	r.selectedCount.Observe(float64(selected))
}
