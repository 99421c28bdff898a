package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/ordercalc/internal/metrics"
)

func serve(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var out map[string]any
	if rr.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	}
	return rr, out
}

func TestHealthz(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	router := NewRouter(WithHealth(NewHealthHandlers(
		WithHealthStart(start, "1.2.3"),
		WithHealthClock(func() time.Time { return start.Add(30 * time.Second) }),
	)))

	rr, body := serve(t, router, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "30s", body["uptime"])
	assert.Equal(t, "1.2.3", body["version"])
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	router := NewRouter()

	rr, body := serve(t, router, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "route_not_found", body["error"])
	assert.NotEmpty(t, body["request_id"])

	rr, body = serve(t, router, http.MethodDelete, "/api/v1/regions", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "method_not_allowed", body["error"])
}

func TestMetricsEndpointAndMiddleware(t *testing.T) {
	m := metrics.NewServerMetrics("ordercalc", prometheus.NewRegistry())
	router := NewRouter(WithMetrics(m))

	rr, _ := serve(t, router, http.MethodGet, "/api/v1/orders/quote?numItems=10&pricePerItem=50&regionCode=AUK", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Requests.WithLabelValues("/api/v1/orders/quote", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Quotes.WithLabelValues("AUK", "0")))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	out := httptest.NewRecorder()
	router.ServeHTTP(out, req)
	require.Equal(t, http.StatusOK, out.Code)
	assert.Contains(t, out.Body.String(), "ordercalc_quotes_total")
}

func TestNoMetricsEndpointWithoutMetrics(t *testing.T) {
	rr, _ := serve(t, NewRouter(), http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
