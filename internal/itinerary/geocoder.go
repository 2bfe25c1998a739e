package itinerary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mex/internal/config"
	"mex/internal/middleware"
	"mex/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	geocodeTimeout  = 10 * time.Second
	geocodeCacheTTL = 24 * time.Hour
)

// Geocoder resolves location names to coordinates through a Google-style
// geocoding REST API, with a Redis read-through cache. Lookup failures are
// not errors; the itinerary simply ships without coordinates for that block.
type Geocoder struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	cache      *redis.Client
}

// NewGeocoder builds a Geocoder from configuration. The cache client may be
// nil, in which case every lookup goes to the upstream service.
func NewGeocoder(cfg *config.Config, cache *redis.Client) *Geocoder {
	return &Geocoder{
		httpClient: &http.Client{Timeout: geocodeTimeout},
		baseURL:    strings.TrimSuffix(cfg.GeocodingBaseURL, "/"),
		apiKey:     cfg.GeocodingAPIKey,
		cache:      cache,
	}
}

// NewGeocoderWithClient is used by tests to point at a stub server.
func NewGeocoderWithClient(client *http.Client, baseURL, apiKey string, cache *redis.Client) *Geocoder {
	return &Geocoder{httpClient: client, baseURL: strings.TrimSuffix(baseURL, "/"), apiKey: apiKey, cache: cache}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location models.LatLng `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves "<locationName>, <destination>" to coordinates. Returns
// nil (with no error) when the location cannot be resolved.
func (g *Geocoder) Geocode(ctx context.Context, locationName, destination string) *models.LatLng {
	if strings.TrimSpace(locationName) == "" {
		return nil
	}
	address := fmt.Sprintf("%s, %s", locationName, destination)
	cacheKey := "geocode:" + strings.ToLower(address)

	if g.cache != nil {
		cached, err := g.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			middleware.GeocodeLookups.WithLabelValues("cache_hit").Inc()
			var coords models.LatLng
			if json.Unmarshal([]byte(cached), &coords) == nil {
				return &coords
			}
		}
	}

	coords := g.lookup(ctx, address)
	if coords == nil {
		middleware.GeocodeLookups.WithLabelValues("failure").Inc()
		return nil
	}
	middleware.GeocodeLookups.WithLabelValues("success").Inc()

	if g.cache != nil {
		if encoded, err := json.Marshal(coords); err == nil {
			g.cache.Set(ctx, cacheKey, encoded, geocodeCacheTTL)
		}
	}
	return coords
}

func (g *Geocoder) lookup(ctx context.Context, address string) *models.LatLng {
	endpoint := fmt.Sprintf("%s/maps/api/geocode/json?address=%s&key=%s",
		g.baseURL, url.QueryEscape(address), g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "Geocode lookup failed",
			slog.String("address", address),
			slog.String("error", err.Error()))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		middleware.Logger.WarnContext(ctx, "Geocode lookup returned unexpected status",
			slog.String("address", address),
			slog.Int("status", resp.StatusCode))
		return nil
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil
	}
	if decoded.Status != "OK" || len(decoded.Results) == 0 {
		return nil
	}
	location := decoded.Results[0].Geometry.Location
	return &location
}
