package cep

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidFormat is returned when a postal code does not normalize to 8 digits.
	ErrInvalidFormat = errors.New("postal code must have 8 digits")
	// ErrNotFound is returned when the upstream lookup reports an unknown postal code.
	ErrNotFound = errors.New("postal code not found")
	// ErrGeocodeUnavailable is returned when no coordinate could be resolved for a postal code.
	ErrGeocodeUnavailable = errors.New("no coordinates available for postal code")
	// ErrLookupFailed wraps unexpected network or decoding failures from either upstream.
	ErrLookupFailed = errors.New("postal code lookup failed")
)

// Address is the structured record an 8-digit postal code resolves to.
type Address struct {
	PostalCode   string `json:"postalCode"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// Normalize strips every non-digit character and validates that exactly 8
// digits remain. It never touches the network.
func Normalize(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if len(cleaned) != 8 {
		return "", ErrInvalidFormat
	}
	return cleaned, nil
}
