package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrument(t *testing.T) {
	m := NewServerMetrics("api")

	handler := m.Instrument("cart", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest("POST", "/cart/items", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Requests.WithLabelValues("cart", "201")))
}

func TestInstrument_DefaultsTo200(t *testing.T) {
	m := NewServerMetrics("api")

	handler := m.Instrument("healthz", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// handler writes nothing explicitly
	}))

	req := httptest.NewRequest("GET", "/healthz", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.Requests.WithLabelValues("healthz", "200")))
}

func TestMetricsEndpoint(t *testing.T) {
	m := NewServerMetrics("api")
	m.Requests.WithLabelValues("cart", "200").Inc()

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "plantstore_api_http_requests_total")
}

func TestSeparateInstancesDoNotCollide(t *testing.T) {
	// Two instances must be constructible in one process.
	a := NewServerMetrics("api")
	b := NewServerMetrics("api")
	a.Requests.WithLabelValues("cart", "200").Inc()
	assert.Equal(t, float64(0), testutil.ToFloat64(b.Requests.WithLabelValues("cart", "200")))
}
