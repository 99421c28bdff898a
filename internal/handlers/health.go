package handlers

import (
	"net/http"
	"time"

	"github.com/xtding233/ordercalc/internal/platform/httpx"
)

// HealthHandlers serves liveness checks.
type HealthHandlers struct {
	startedAt time.Time
	version   string
	now       func() time.Time
}

// HealthOption customises HealthHandlers.
type HealthOption func(*HealthHandlers)

// WithHealthClock overrides the clock used for uptime.
func WithHealthClock(now func() time.Time) HealthOption {
	return func(h *HealthHandlers) {
		if now != nil {
			h.now = now
		}
	}
}

// WithHealthStart sets the process start time and version.
func WithHealthStart(startedAt time.Time, version string) HealthOption {
	return func(h *HealthHandlers) {
		h.startedAt = startedAt
		h.version = version
	}
}

// NewHealthHandlers builds health handlers.
func NewHealthHandlers(opts ...HealthOption) *HealthHandlers {
	h := &HealthHandlers{now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	if h.startedAt.IsZero() {
		h.startedAt = h.now()
	}
	return h
}

// Healthz responds with a simple status payload for monitoring.
func (h *HealthHandlers) Healthz(w http.ResponseWriter, r *http.Request) {
	now := h.now().UTC()
	payload := map[string]any{
		"status":    "ok",
		"uptime":    now.Sub(h.startedAt).String(),
		"timestamp": now.Format(time.RFC3339),
	}
	if h.version != "" {
		payload["version"] = h.version
	}
	httpx.WriteJSON(w, http.StatusOK, payload)
}
