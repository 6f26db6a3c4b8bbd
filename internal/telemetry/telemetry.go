// Package telemetry provides OpenTelemetry instrumentation for the
// complaint triage service. It exports Prometheus metrics and provides
// tracing capabilities.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "complaint-triage"

// Metrics holds all service Prometheus metrics.
type Metrics struct {
	// Classifier metrics
	PredictionsTotal   *prometheus.CounterVec
	PredictionDuration prometheus.Histogram
	EmptyPredictions   prometheus.Counter

	// Lifecycle metrics
	ComplaintsCreated  prometheus.Counter
	TransitionsTotal   *prometheus.CounterVec
	TransitionFailures *prometheus.CounterVec

	// Chatbot metrics
	ChatMessages     prometheus.Counter
	ChatbotFallbacks prometheus.Counter
}

// Provider wraps telemetry providers.
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics.
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	m := &Metrics{}

	m.PredictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "triage_predictions_total",
		Help: "Total category predictions by predicted category",
	}, []string{"category"})
	m.PredictionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "triage_prediction_duration_seconds",
		Help:    "Time spent encoding and scoring one description",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
	})
	m.EmptyPredictions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "triage_predictions_empty_total",
		Help: "Predictions resolved by the zero-vector default category",
	})

	m.ComplaintsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "triage_complaints_created_total",
		Help: "Complaints created (entering pending)",
	})
	m.TransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "triage_transitions_total",
		Help: "Successful status transitions by target status",
	}, []string{"target"})
	m.TransitionFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "triage_transition_failures_total",
		Help: "Rejected transition attempts by reason (unauthorized, invalid_transition)",
	}, []string{"reason"})

	m.ChatMessages = promauto.NewCounter(prometheus.CounterOpts{
		Name: "triage_chat_messages_total",
		Help: "Chatbot messages relayed",
	})
	m.ChatbotFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "triage_chatbot_fallbacks_total",
		Help: "Chatbot calls degraded to the fixed fallback response",
	})

	return m
}
