package cep

import (
	"strings"

	"github.com/huum-shop/storefront-api/internal/geo"
)

// DefaultCentroids holds approximate centre coordinates for the cities of
// the Recife metropolitan region, used when live geocoding yields nothing.
func DefaultCentroids() map[string]geo.Coordinate {
	return map[string]geo.Coordinate{
		"Recife":                  {Lat: -8.0476, Lng: -34.8770},
		"Jaboatão dos Guararapes": {Lat: -8.1130, Lng: -35.0147},
		"Camaragibe":              {Lat: -8.0241, Lng: -34.9786},
		"São Lourenço da Mata":    {Lat: -8.0011, Lng: -35.0197},
		"Moreno":                  {Lat: -8.1193, Lng: -35.0897},
	}
}

// centroidFor matches a city name against the table: exact match first, then
// case-insensitive substring containment in either direction.
func centroidFor(centroids map[string]geo.Coordinate, city string) (geo.Coordinate, bool) {
	trimmed := strings.TrimSpace(city)
	if coord, ok := centroids[trimmed]; ok {
		return coord, true
	}
	lower := strings.ToLower(trimmed)
	if lower == "" {
		return geo.Coordinate{}, false
	}
	for name, coord := range centroids {
		nameLower := strings.ToLower(name)
		if strings.Contains(nameLower, lower) || strings.Contains(lower, nameLower) {
			return coord, true
		}
	}
	return geo.Coordinate{}, false
}
