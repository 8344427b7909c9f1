package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsMiddlewareRecordsServiceLabel(t *testing.T) {
	RegisterMetrics("test-service")

	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	found := false
	for _, mf := range families {
		if mf.GetName() != "http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == "service" && label.GetValue() == "test-service" {
					found = true
				}
			}
		}
	}
	assert.True(t, found, "request counter must carry the service label")
}

func TestMetricsMiddlewareSkipsMetricsEndpoint(t *testing.T) {
	RegisterMetrics("test-service")

	called := false
	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.True(t, called)
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "/api/reports/:id/reviews", normalizePath("/api/reports/64f1a2b3c4d5e6f7a8b9c0d1/reviews"))
	assert.Equal(t, "/health", normalizePath("/health"))
}
