package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"tangokultura/internal/county"
	"tangokultura/internal/logger"
)

// Cache is the small slice of the Redis API the resolver needs.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Resolver turns coordinates into a county name via Nominatim reverse
// geocoding. Results are cached by rounded coordinates so repeated visitors
// from the same area never hit the geocoder twice.
type Resolver struct {
	BaseURL    string
	HTTPClient *http.Client
	Cache      Cache
	CacheTTL   time.Duration
	Logger     *logger.Logger
}

func NewResolver(baseURL string, client *http.Client, cache Cache, ttl time.Duration, log *logger.Logger) *Resolver {
	return &Resolver{
		BaseURL:    baseURL,
		HTTPClient: client,
		Cache:      cache,
		CacheTTL:   ttl,
		Logger:     log,
	}
}

type nominatimResponse struct {
	Address struct {
		County       string `json:"county"`
		Municipality string `json:"municipality"`
		State        string `json:"state"`
	} `json:"address"`
}

// CountyFor resolves lat/lon to a county name. Failures degrade to Unknown
// rather than erroring: the caller falls back to manual county selection.
func (r *Resolver) CountyFor(ctx context.Context, lat, lon float64) string {
	// Two decimals is roughly 1km, plenty for county granularity.
	cacheKey := fmt.Sprintf("geo_county:%.2f:%.2f", lat, lon)

	if r.Cache != nil {
		if cached, err := r.Cache.Get(ctx, cacheKey); err == nil && cached != "" {
			return cached
		}
	}

	resolved, err := r.lookup(ctx, lat, lon)
	if err != nil {
		r.Logger.Warn("GEO", fmt.Sprintf("Reverse geocoding failed for %.4f,%.4f: %v", lat, lon, err))
		return county.Unknown
	}

	if r.Cache != nil {
		if err := r.Cache.Set(ctx, cacheKey, resolved, r.CacheTTL); err != nil {
			r.Logger.Warn("GEO", fmt.Sprintf("Failed to cache county for %s: %v", cacheKey, err))
		}
	}

	return resolved
}

func (r *Resolver) lookup(ctx context.Context, lat, lon float64) (string, error) {
	u, err := url.Parse(r.BaseURL + "/reverse")
	if err != nil {
		return "", fmt.Errorf("invalid geocoder URL: %w", err)
	}

	q := u.Query()
	q.Set("format", "json")
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lon))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "tango-kultura/1.0")

	resp, err := r.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var parsed nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode geocoder response: %w", err)
	}

	// Priority mirrors the client: county > municipality > state > Unknown.
	switch {
	case parsed.Address.County != "":
		return parsed.Address.County, nil
	case parsed.Address.Municipality != "":
		return parsed.Address.Municipality, nil
	case parsed.Address.State != "":
		return parsed.Address.State, nil
	default:
		return county.Unknown, nil
	}
}
