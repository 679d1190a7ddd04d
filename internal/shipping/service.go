package shipping

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/huum-shop/storefront-api/internal/cep"
	"github.com/huum-shop/storefront-api/internal/geo"
	"github.com/huum-shop/storefront-api/internal/obs"
)

// ErrOutsideServiceArea is returned when either the resolved city is not on
// the allow-list or the computed distance exceeds the delivery radius. The
// user-facing message lives on the configured policy.
var ErrOutsideServiceArea = errors.New("address outside the delivery area")

// Option is a single priced delivery alternative.
type Option struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         geo.Money `json:"price"`
	EstimatedDays int       `json:"estimatedDays"`
	Carrier       string    `json:"carrier"`
}

// Calculation is the result of a quote: a ranked option list where index 0
// is the cheapest and the default selection.
type Calculation struct {
	ZipCode string   `json:"zipCode"`
	Options []Option `json:"options"`
}

// Resolver is the subset of the postal-code resolver the service needs.
type Resolver interface {
	Resolve(ctx context.Context, raw string) (cep.Address, error)
	Coordinates(ctx context.Context, raw string) (geo.Coordinate, error)
}

// Service computes delivery quotes for a postal code and basket.
type Service struct {
	Resolver Resolver
	Policy   geo.Policy
	Carrier  string
	Log      zerolog.Logger
}

// Quote calculates the shipping options for a normalized basket. unitPrices
// carries one entry per unit: a line item with quantity N contributes N
// entries, expanded by the caller. The checks run in a fixed order and stop
// at the first failure; the city allow-list is verified before any distance
// is computed, and both it and the radius must hold.
func (s *Service) Quote(ctx context.Context, zip string, unitPrices []geo.Money) (Calculation, error) {
	if s == nil || s.Resolver == nil {
		return Calculation{}, errors.New("shipping service not configured")
	}
	code, err := cep.Normalize(zip)
	if err != nil {
		return Calculation{}, s.fail("invalid_format", err)
	}
	addr, err := s.Resolver.Resolve(ctx, code)
	if err != nil {
		return Calculation{}, s.fail(resultFor(err), err)
	}
	if !s.Policy.CityServed(addr.City) {
		s.Log.Info().Str("cep", code).Str("city", addr.City).Msg("quote rejected: city not served")
		return Calculation{}, s.fail("outside_area", ErrOutsideServiceArea)
	}
	coord, err := s.Resolver.Coordinates(ctx, code)
	if err != nil {
		return Calculation{}, s.fail(resultFor(err), err)
	}

	distance := geo.DistanceKm(s.Policy.Origin, coord)
	if !s.Policy.WithinRadius(distance) {
		s.Log.Info().Str("cep", code).Float64("distance_km", distance).Msg("quote rejected: outside radius")
		return Calculation{}, s.fail("outside_area", ErrOutsideServiceArea)
	}

	var subtotal geo.Money
	for _, price := range unitPrices {
		subtotal += price
	}

	option := s.buildOption(addr.City, distance, subtotal)
	obs.QuoteTotal.WithLabelValues("ok").Inc()
	return Calculation{ZipCode: code, Options: []Option{option}}, nil
}

func (s *Service) buildOption(city string, distance float64, subtotal geo.Money) Option {
	if s.Policy.FreeShipping(subtotal) {
		return Option{
			ID:            "standard",
			Name:          "Frete Grátis",
			Description:   fmt.Sprintf("%s - Compras acima de %s", city, geo.FormatBRL(s.Policy.FreeShippingMin)),
			Price:         0,
			EstimatedDays: s.Policy.EstimatedDays(distance),
			Carrier:       s.Carrier,
		}
	}
	return Option{
		ID:            "standard",
		Name:          "Entrega Padrão",
		Description:   fmt.Sprintf("%s - %.2f km", city, distance),
		Price:         s.Policy.Price(distance),
		EstimatedDays: s.Policy.EstimatedDays(distance),
		Carrier:       s.Carrier,
	}
}

func (s *Service) fail(result string, err error) error {
	obs.QuoteTotal.WithLabelValues(result).Inc()
	return err
}

func resultFor(err error) string {
	switch {
	case errors.Is(err, cep.ErrNotFound):
		return "not_found"
	case errors.Is(err, cep.ErrGeocodeUnavailable):
		return "geocode_unavailable"
	case errors.Is(err, cep.ErrInvalidFormat):
		return "invalid_format"
	default:
		return "lookup_failed"
	}
}
