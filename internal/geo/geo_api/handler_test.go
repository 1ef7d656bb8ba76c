package geo_api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tangokultura/internal/geo"
	"tangokultura/internal/geo/geo_api"
	"tangokultura/internal/logger"
)

func TestCountyFromPosition(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"address":{"county":"Oslo"}}`))
	}))
	defer server.Close()

	log := logger.NewLogger()
	resolver := geo.NewResolver(server.URL, server.Client(), nil, time.Minute, log)
	handler := geo_api.NewHandler(resolver, log)

	req := httptest.NewRequest(http.MethodGet, "/api/geo/county?lat=59.91&lon=10.75", nil)
	w := httptest.NewRecorder()
	handler.CountyFromPosition(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"county":"Oslo"}`, w.Body.String())
}

func TestCountyFromPositionMissingParams(t *testing.T) {
	log := logger.NewLogger()
	resolver := geo.NewResolver("http://localhost:1", http.DefaultClient, nil, time.Minute, log)
	handler := geo_api.NewHandler(resolver, log)

	req := httptest.NewRequest(http.MethodGet, "/api/geo/county", nil)
	w := httptest.NewRecorder()
	handler.CountyFromPosition(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
