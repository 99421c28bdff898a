package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/xtding233/ordercalc/internal/metrics"
	"github.com/xtding233/ordercalc/internal/platform/httpx"
	"github.com/xtding233/ordercalc/internal/platform/observability"
)

type routerConfig struct {
	basePath      string
	timeout       time.Duration
	logger        *zap.Logger
	metrics       *metrics.ServerMetrics
	defaultRegion string
	health        *HealthHandlers
}

// Option customises the router configuration before construction.
type Option func(*routerConfig)

const (
	defaultAPIPrefix  = "/api/v1"
	defaultTimeout    = 60 * time.Second
	errorNotFoundCode = "route_not_found"
)

// WithLogger sets the access logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *routerConfig) { c.logger = l }
}

// WithMetrics enables request metrics and the /metrics endpoint.
func WithMetrics(m *metrics.ServerMetrics) Option {
	return func(c *routerConfig) { c.metrics = m }
}

// WithDefaultRegion sets the region used when a quote names none.
func WithDefaultRegion(code string) Option {
	return func(c *routerConfig) {
		if code != "" {
			c.defaultRegion = code
		}
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *routerConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHealth replaces the health handlers.
func WithHealth(h *HealthHandlers) Option {
	return func(c *routerConfig) { c.health = h }
}

// NewRouter constructs the chi router with shared middleware and all routes.
func NewRouter(opts ...Option) chi.Router {
	cfg := routerConfig{
		basePath: defaultAPIPrefix,
		timeout:  defaultTimeout,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.health == nil {
		cfg.health = NewHealthHandlers()
	}

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Timeout(cfg.timeout),
		observability.RequestLogger(cfg.logger),
	)
	if cfg.metrics != nil {
		r.Use(cfg.metrics.Middleware)
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		httpx.WriteError(req.Context(), w, httpx.NewError(errorNotFoundCode, fmt.Sprintf("no route for %s", req.URL.Path), http.StatusNotFound))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		httpx.WriteError(req.Context(), w, httpx.NewError("method_not_allowed", fmt.Sprintf("method %s not allowed on %s", req.Method, req.URL.Path), http.StatusMethodNotAllowed))
	})

	r.Get("/healthz", cfg.health.Healthz)
	if cfg.metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.metrics.Handler())
	}

	pricingHandlers := NewPricingHandlers(cfg.defaultRegion, cfg.metrics)
	r.Route(cfg.basePath, func(api chi.Router) {
		api.Get("/discount-tiers", pricingHandlers.ListDiscountTiers)
		api.Get("/regions", pricingHandlers.ListRegions)
		api.Get("/regions/{code}", pricingHandlers.GetRegion)
		api.Post("/orders/quote", pricingHandlers.QuoteJSON)
		api.Get("/orders/quote", pricingHandlers.QuoteQuery)
	})

	return r
}
