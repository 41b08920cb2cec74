package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "rain"

// Metrics holds the Prometheus collectors for the HTTP surface and the
// prediction facade.
type Metrics struct {
	HTTPRequests        *prometheus.CounterVec   // labels: method, route, status
	HTTPRequestDuration *prometheus.HistogramVec // labels: method, route
	HTTPActiveRequests  prometheus.Gauge

	Predictions        *prometheus.CounterVec // labels: outcome={success,schema_mismatch,inference_error}
	PredictionDuration prometheus.Histogram
	ModelTrees         prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		HTTPActiveRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_active_requests",
			Help:      "Requests currently being served.",
		}),
		Predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Prediction calls by outcome.",
		}, []string{"outcome"}),
		PredictionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "prediction_duration_seconds",
			Help:      "Time spent validating and scoring one feature vector.",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		}),
		ModelTrees: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_trees",
			Help:      "Number of trees in the loaded forest, 0 when no model is loaded.",
		}),
	}

	reg.MustRegister(
		m.HTTPRequests,
		m.HTTPRequestDuration,
		m.HTTPActiveRequests,
		m.Predictions,
		m.PredictionDuration,
		m.ModelTrees,
	)

	return m
}

// RecordPrediction implements service.MetricsRecorder.
func (m *Metrics) RecordPrediction(outcome string, duration time.Duration) {
	m.Predictions.WithLabelValues(outcome).Inc()
	m.PredictionDuration.Observe(duration.Seconds())
}
