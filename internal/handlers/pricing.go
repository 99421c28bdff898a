package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xtding233/ordercalc/internal/calculator"
	"github.com/xtding233/ordercalc/internal/display"
	"github.com/xtding233/ordercalc/internal/metrics"
	"github.com/xtding233/ordercalc/internal/platform/httpx"
	"github.com/xtding233/ordercalc/internal/platform/observability"
	"github.com/xtding233/ordercalc/internal/pricing"
)

const maxQuoteBody = 1 << 16

// PricingHandlers serves the table listings and order quotes.
type PricingHandlers struct {
	defaultRegion string
	metrics       *metrics.ServerMetrics
}

// NewPricingHandlers builds pricing handlers. m may be nil.
func NewPricingHandlers(defaultRegion string, m *metrics.ServerMetrics) *PricingHandlers {
	if defaultRegion == "" {
		defaultRegion = calculator.DefaultRegion
	}
	return &PricingHandlers{defaultRegion: defaultRegion, metrics: m}
}

type tierPayload struct {
	Threshold  float64 `json:"threshold"`
	Percentage float64 `json:"percentage"`
	Label      string  `json:"label"`
}

type regionPayload struct {
	Code  string  `json:"code"`
	Rate  float64 `json:"rate"`
	Label string  `json:"label"`
}

type quoteResponse struct {
	Result  pricing.OrderCalculation `json:"result"`
	Display []display.Line           `json:"display"`
}

// quoteRequest accepts numbers or the strings a form would submit.
type quoteRequest struct {
	NumItems     flexString `json:"numItems"`
	PricePerItem flexString `json:"pricePerItem"`
	RegionCode   *string    `json:"regionCode"` // nil when the field is absent
}

type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// ListDiscountTiers returns the discount table, highest threshold first.
func (h *PricingHandlers) ListDiscountTiers(w http.ResponseWriter, r *http.Request) {
	tiers := pricing.DiscountTiers()
	out := make([]tierPayload, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, tierPayload{Threshold: t.Threshold, Percentage: t.Percentage, Label: display.TierLabel(t)})
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"tiers": out})
}

// ListRegions returns every known region and its tax rate.
func (h *PricingHandlers) ListRegions(w http.ResponseWriter, r *http.Request) {
	rates := pricing.TaxRates()
	out := make([]regionPayload, 0, len(rates))
	for _, rate := range rates {
		out = append(out, toRegionPayload(rate))
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"regions": out})
}

// GetRegion returns one region's tax rate.
func (h *PricingHandlers) GetRegion(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	rate, ok := pricing.LookupTaxRate(code)
	if !ok {
		httpx.WriteError(r.Context(), w, httpx.NewError("region_not_found", "unknown region code "+strconv.Quote(code), http.StatusNotFound))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toRegionPayload(rate))
}

// QuoteJSON prices an order posted as JSON.
func (h *PricingHandlers) QuoteJSON(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxQuoteBody))
	if err := dec.Decode(&req); err != nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_json", "request body must be a JSON object", http.StatusBadRequest))
		return
	}
	region := h.defaultRegion
	if req.RegionCode != nil {
		region = *req.RegionCode
	}
	h.quote(w, r, calculator.Form{
		NumItems:     string(req.NumItems),
		PricePerItem: string(req.PricePerItem),
		RegionCode:   region,
	})
}

// QuoteQuery prices an order given as query parameters.
func (h *PricingHandlers) QuoteQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	region := h.defaultRegion
	if q.Has("regionCode") {
		region = q.Get("regionCode")
	}
	h.quote(w, r, calculator.Form{
		NumItems:     q.Get("numItems"),
		PricePerItem: q.Get("pricePerItem"),
		RegionCode:   region,
	})
}

func (h *PricingHandlers) quote(w http.ResponseWriter, r *http.Request, form calculator.Form) {
	logger := observability.FromContext(r.Context())

	res, err := calculator.Calculate(form)
	if err != nil {
		switch {
		case errors.Is(err, calculator.ErrInvalidInput):
			logger.Debug("quote rejected", zap.String("num_items", form.NumItems), zap.String("price_per_item", form.PricePerItem))
			httpx.WriteError(r.Context(), w, httpx.NewError("invalid_input", err.Error(), http.StatusBadRequest))
			return
		case errors.Is(err, calculator.ErrOutOfRange):
			logger.Info("quote out of range", zap.String("num_items", form.NumItems), zap.String("price_per_item", form.PricePerItem))
			httpx.WriteError(r.Context(), w, httpx.NewError("result_out_of_range", err.Error(), http.StatusUnprocessableEntity))
			return
		}
		logger.Error("quote failed", zap.Error(err))
		httpx.WriteError(r.Context(), w, httpx.NewError("internal", "internal error", http.StatusInternalServerError))
		return
	}

	h.metrics.ObserveQuote(form.RegionCode, res)
	logger.Debug("quote computed",
		zap.String("region", form.RegionCode),
		zap.Float64("subtotal", res.Subtotal),
		zap.Float64("total", res.Total),
	)
	httpx.WriteJSON(w, http.StatusOK, quoteResponse{Result: res, Display: display.Breakdown(res)})
}

func toRegionPayload(r pricing.TaxRate) regionPayload {
	return regionPayload{Code: r.Code, Rate: r.Rate, Label: r.Code + " (" + display.Percent(r.Rate) + ")"}
}
