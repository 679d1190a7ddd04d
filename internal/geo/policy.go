package geo

import (
	"math"
	"strings"
)

// DeliveryDays bounds the estimated delivery window in business days.
type DeliveryDays struct {
	Min int
	Max int
}

// Policy holds the delivery-area and pricing rules for a single origin.
// All fields are plain configuration; the methods are pure.
type Policy struct {
	Origin             Coordinate
	BasePrice          Money
	PerKmRate          Money
	MaxRadiusKm        float64
	FreeShippingMin    Money
	DeliveryDays       DeliveryDays
	AllowedCities      []string
	OutsideAreaMessage string
}

// Price computes the shipping price for a distance in kilometres. Distances
// under one kilometre are charged the base price only; everything else is
// base plus the per-km rate, rounded to the nearest centavo.
func (p Policy) Price(distanceKm float64) Money {
	if distanceKm < 1 {
		return p.BasePrice
	}
	return Money(math.Round(float64(p.BasePrice) + distanceKm*float64(p.PerKmRate)))
}

// WithinRadius reports whether the distance falls inside the delivery radius.
func (p Policy) WithinRadius(distanceKm float64) bool {
	return distanceKm <= p.MaxRadiusKm
}

// CityServed reports whether the city is on the delivery allow-list. The
// comparison trims whitespace and lowercases both sides; it is an exact
// match, never a substring one.
func (p Policy) CityServed(city string) bool {
	normalized := strings.ToLower(strings.TrimSpace(city))
	for _, allowed := range p.AllowedCities {
		if strings.ToLower(strings.TrimSpace(allowed)) == normalized {
			return true
		}
	}
	return false
}

// FreeShipping reports whether the basket subtotal qualifies for free delivery.
func (p Policy) FreeShipping(subtotal Money) bool {
	return subtotal >= p.FreeShippingMin
}

// EstimatedDays returns the delivery estimate for a distance: nearby
// addresses get the lower bound, everything else the upper.
func (p Policy) EstimatedDays(distanceKm float64) int {
	if distanceKm < 10 {
		return p.DeliveryDays.Min
	}
	return p.DeliveryDays.Max
}
