package geo_api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"tangokultura/internal/geo"
	"tangokultura/internal/logger"
)

type Handler struct {
	Resolver *geo.Resolver
	Logger   *logger.Logger
}

func NewHandler(resolver *geo.Resolver, log *logger.Logger) *Handler {
	return &Handler{
		Resolver: resolver,
		Logger:   log,
	}
}

// CountyFromPosition handles GET /api/geo/county?lat=&lon=. It always
// responds 200 with a county name; resolution failures yield "Unknown" so
// the client can fall back to manual selection.
func (h *Handler) CountyFromPosition(w http.ResponseWriter, r *http.Request) {
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		http.Error(w, "lat and lon query parameters are required", http.StatusBadRequest)
		return
	}

	countyName := h.Resolver.CountyFor(r.Context(), lat, lon)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"county": countyName})
}
