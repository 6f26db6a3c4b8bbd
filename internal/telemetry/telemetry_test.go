package telemetry

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The default registry allows each metric name once per process, so every
// test shares this provider.
var provider = NewProvider()

func TestMetricsRegistered(t *testing.T) {
	m := provider.Metrics
	require.NotNil(t, m)

	m.PredictionsTotal.WithLabelValues("network").Inc()
	m.PredictionsTotal.WithLabelValues("network").Inc()
	assert.Equal(t, 2.0, testutil.ToFloat64(m.PredictionsTotal.WithLabelValues("network")))

	m.ComplaintsCreated.Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ComplaintsCreated))

	m.TransitionsTotal.WithLabelValues("approved").Inc()
	m.TransitionFailures.WithLabelValues("unauthorized").Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TransitionFailures.WithLabelValues("unauthorized")))

	m.ChatMessages.Inc()
	m.ChatbotFallbacks.Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ChatbotFallbacks))
}

func TestHandlerServesMetrics(t *testing.T) {
	provider.Metrics.PredictionsTotal.WithLabelValues("technical").Inc()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	provider.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "triage_predictions_total")
}

func TestTracerAvailable(t *testing.T) {
	assert.NotNil(t, provider.Tracer)
}
