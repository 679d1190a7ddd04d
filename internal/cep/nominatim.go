package cep

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/huum-shop/storefront-api/internal/geo"
	"github.com/huum-shop/storefront-api/internal/obs"
	"github.com/huum-shop/storefront-api/internal/resilience"
)

// Geocoder resolves a free-text address query into candidate coordinates.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]geo.Coordinate, error)
}

// NominatimClient queries the OpenStreetMap Nominatim search API. The
// service requires a distinguishing User-Agent on every request.
type NominatimClient struct {
	BaseURL   string
	UserAgent string
	HTTP      resilience.HTTPClient
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Search returns up to one coordinate per matching place. An empty slice
// means the query produced no results; errors wrap ErrLookupFailed.
func (c NominatimClient) Search(ctx context.Context, query string) ([]geo.Coordinate, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "1")
	endpoint := fmt.Sprintf("%s/search?%s", strings.TrimRight(c.BaseURL, "/"), q.Encode())

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	start := time.Now()
	resp, err := c.HTTP.Do(ctx, req)
	obs.UpstreamLatency.WithLabelValues("nominatim").Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: nominatim status %d", ErrLookupFailed, resp.StatusCode)
	}
	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("%w: decode nominatim response: %v", ErrLookupFailed, err)
	}

	coords := make([]geo.Coordinate, 0, len(results))
	for _, r := range results {
		lat, latErr := strconv.ParseFloat(r.Lat, 64)
		lng, lngErr := strconv.ParseFloat(r.Lon, 64)
		if latErr != nil || lngErr != nil {
			continue
		}
		coords = append(coords, geo.Coordinate{Lat: lat, Lng: lng})
	}
	return coords, nil
}
