package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xtding233/ordercalc/internal/pricing"
)

type ServerMetrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
	Quotes    *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewServerMetrics registers the server collectors on reg. A nil reg means a
// fresh private registry.
func NewServerMetrics(namespace string, reg *prometheus.Registry) *ServerMetrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of requests by handler and status.",
	}, []string{"handler", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_ms",
		Help:      "Request latency in milliseconds.",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	}, []string{"handler"})
	quotes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quotes_total",
		Help:      "Orders priced, by region and discount tier percentage.",
	}, []string{"region", "discount_tier"})

	reg.MustRegister(requests, latency, quotes)
	return &ServerMetrics{Requests: requests, LatencyMS: latency, Quotes: quotes, gatherer: reg}
}

// Observe records one finished request.
func (m *ServerMetrics) Observe(handler, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(handler, status).Inc()
	m.LatencyMS.WithLabelValues(handler).Observe(float64(d) / float64(time.Millisecond))
}

// ObserveQuote counts a priced order. Unknown regions are grouped under "other"
// to keep label cardinality bounded.
func (m *ServerMetrics) ObserveQuote(regionCode string, c pricing.OrderCalculation) {
	if m == nil {
		return
	}
	region := "other"
	if r, ok := pricing.LookupTaxRate(regionCode); ok {
		region = r.Code
	}
	m.Quotes.WithLabelValues(region, strconv.FormatFloat(c.DiscountPercentage, 'f', -1, 64)).Inc()
}

// Middleware records request counts and latency keyed by chi route pattern.
func (m *ServerMetrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		handler := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				handler = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.Observe(handler, strconv.Itoa(status), time.Since(start))
	})
}

// Handler exposes the registry in Prometheus text format.
func (m *ServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
