package cep

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/huum-shop/storefront-api/internal/geo"
	"github.com/huum-shop/storefront-api/internal/obs"
)

// Resolver turns postal codes into addresses and coordinates. It owns the
// coordinate cache exclusively; address lookups are always fresh. The
// resolver never retries a failed upstream call.
type Resolver struct {
	Lookup    AddressLookup
	Geocoder  Geocoder
	Cache     *CoordCache
	Centroids map[string]geo.Coordinate
	Log       zerolog.Logger
}

// Resolve fetches the address record for a postal code.
func (r *Resolver) Resolve(ctx context.Context, raw string) (Address, error) {
	if r == nil || r.Lookup == nil {
		return Address{}, errors.New("cep: resolver not configured")
	}
	code, err := Normalize(raw)
	if err != nil {
		return Address{}, err
	}
	return r.Lookup.Lookup(ctx, code)
}

// Coordinates resolves a postal code to a geographic coordinate: cache, then
// live geocoding on the full resolved address, then the static city-centroid
// table. Successful resolutions are cached by normalized code.
func (r *Resolver) Coordinates(ctx context.Context, raw string) (geo.Coordinate, error) {
	if r == nil || r.Lookup == nil || r.Geocoder == nil {
		return geo.Coordinate{}, errors.New("cep: resolver not configured")
	}
	code, err := Normalize(raw)
	if err != nil {
		return geo.Coordinate{}, err
	}
	if r.Cache != nil {
		if coord, ok := r.Cache.Get(code); ok {
			obs.GeocodeCacheTotal.WithLabelValues("hit").Inc()
			return coord, nil
		}
	}
	obs.GeocodeCacheTotal.WithLabelValues("miss").Inc()

	addr, err := r.Lookup.Lookup(ctx, code)
	if err != nil {
		return geo.Coordinate{}, err
	}

	query := fmt.Sprintf("%s, %s, %s, %s, Brasil", addr.Street, addr.Neighborhood, addr.City, addr.State)
	results, err := r.Geocoder.Search(ctx, query)
	if err != nil {
		return geo.Coordinate{}, err
	}
	if len(results) > 0 {
		coord := results[0]
		r.cachePut(code, coord)
		return coord, nil
	}

	if coord, ok := centroidFor(r.Centroids, addr.City); ok {
		r.Log.Debug().Str("cep", code).Str("city", addr.City).Msg("geocode fell back to city centroid")
		r.cachePut(code, coord)
		return coord, nil
	}
	return geo.Coordinate{}, ErrGeocodeUnavailable
}

func (r *Resolver) cachePut(code string, coord geo.Coordinate) {
	if r.Cache != nil {
		r.Cache.Put(code, coord)
	}
}
