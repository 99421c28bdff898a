package httpx

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(context.Background(), rr, NewError("invalid_input", "bad\nthing ", http.StatusBadRequest).
		WithDetails(map[string]any{"field": "numItems"}))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "invalid_input", body["error"])
	assert.Equal(t, "bad thing", body["message"])
	assert.Equal(t, float64(400), body["status"])
	assert.Equal(t, "numItems", body["field"])
	assert.NotContains(t, body, "request_id")
}

func TestNewErrorDefaultsStatusAndTruncates(t *testing.T) {
	e := NewError(strings.Repeat("c", 100), "m", 0)
	assert.Equal(t, http.StatusInternalServerError, e.Status)
	assert.Len(t, e.Code, 80)
}

func TestWriteJSONUnencodableValue(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSON(rr, http.StatusOK, map[string]any{"total": math.Inf(1), "tax": math.NaN()})

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "internal", body["error"])
	assert.Equal(t, float64(500), body["status"])
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSON(rr, http.StatusCreated, map[string]any{"total": 500})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"total":500}`, rr.Body.String())
}
