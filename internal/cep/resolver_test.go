package cep_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/huum-shop/storefront-api/internal/cep"
	"github.com/huum-shop/storefront-api/internal/geo"
)

type stubLookup struct {
	calls int
	addr  cep.Address
	err   error
}

func (s *stubLookup) Lookup(_ context.Context, code string) (cep.Address, error) {
	s.calls++
	if s.err != nil {
		return cep.Address{}, s.err
	}
	addr := s.addr
	addr.PostalCode = code
	return addr, nil
}

type stubGeocoder struct {
	calls   int
	results []geo.Coordinate
	err     error
}

func (s *stubGeocoder) Search(context.Context, string) ([]geo.Coordinate, error) {
	s.calls++
	return s.results, s.err
}

func jaboataoAddress() cep.Address {
	return cep.Address{
		Street:       "Avenida Barreto de Menezes",
		Neighborhood: "Centro",
		City:         "Jaboatão dos Guararapes",
		State:        "PE",
	}
}

func newResolver(lookup *stubLookup, geocoder *stubGeocoder) *cep.Resolver {
	return &cep.Resolver{
		Lookup:    lookup,
		Geocoder:  geocoder,
		Cache:     cep.NewCoordCache(),
		Centroids: cep.DefaultCentroids(),
		Log:       zerolog.Nop(),
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	code, err := cep.Normalize("54.100-060")
	require.NoError(t, err)
	require.Equal(t, "54100060", code)

	for _, raw := range []string{"123", "", "5410006", "541000601", "abcdefgh"} {
		_, err := cep.Normalize(raw)
		require.ErrorIs(t, err, cep.ErrInvalidFormat, "input %q", raw)
	}
}

func TestResolveInvalidFormatSkipsNetwork(t *testing.T) {
	t.Parallel()

	lookup := &stubLookup{addr: jaboataoAddress()}
	r := newResolver(lookup, &stubGeocoder{})

	_, err := r.Resolve(context.Background(), "123")
	require.ErrorIs(t, err, cep.ErrInvalidFormat)
	require.Zero(t, lookup.calls)
}

func TestCoordinatesUsesFirstGeocodeResult(t *testing.T) {
	t.Parallel()

	want := geo.Coordinate{Lat: -8.1130, Lng: -35.0147}
	lookup := &stubLookup{addr: jaboataoAddress()}
	geocoder := &stubGeocoder{results: []geo.Coordinate{want, {Lat: 1, Lng: 1}}}
	r := newResolver(lookup, geocoder)

	got, err := r.Coordinates(context.Background(), "54100-060")
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestCoordinatesCachedAfterFirstResolution(t *testing.T) {
	t.Parallel()

	lookup := &stubLookup{addr: jaboataoAddress()}
	geocoder := &stubGeocoder{results: []geo.Coordinate{{Lat: -8.1130, Lng: -35.0147}}}
	r := newResolver(lookup, geocoder)

	first, err := r.Coordinates(context.Background(), "54100060")
	require.NoError(t, err)
	require.Equal(t, 1, lookup.calls)
	require.Equal(t, 1, geocoder.calls)

	second, err := r.Coordinates(context.Background(), "54100060")
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, lookup.calls, "cache hit must not touch the address lookup")
	require.Equal(t, 1, geocoder.calls, "cache hit must not touch the geocoder")
}

func TestCoordinatesFallsBackToCentroid(t *testing.T) {
	t.Parallel()

	lookup := &stubLookup{addr: jaboataoAddress()}
	geocoder := &stubGeocoder{results: nil}
	r := newResolver(lookup, geocoder)

	got, err := r.Coordinates(context.Background(), "54100060")
	require.NoError(t, err)
	require.Equal(t, geo.Coordinate{Lat: -8.1130, Lng: -35.0147}, got)
}

func TestCoordinatesCentroidSubstringMatch(t *testing.T) {
	t.Parallel()

	addr := jaboataoAddress()
	addr.City = "jaboatão"
	lookup := &stubLookup{addr: addr}
	r := newResolver(lookup, &stubGeocoder{})

	got, err := r.Coordinates(context.Background(), "54100060")
	require.NoError(t, err)
	require.Equal(t, geo.Coordinate{Lat: -8.1130, Lng: -35.0147}, got)
}

func TestCoordinatesUnknownCity(t *testing.T) {
	t.Parallel()

	addr := jaboataoAddress()
	addr.City = "Porto Alegre"
	lookup := &stubLookup{addr: addr}
	r := newResolver(lookup, &stubGeocoder{})

	_, err := r.Coordinates(context.Background(), "90000000")
	require.ErrorIs(t, err, cep.ErrGeocodeUnavailable)
}

func TestCoordinatesPropagatesLookupErrors(t *testing.T) {
	t.Parallel()

	lookup := &stubLookup{err: cep.ErrNotFound}
	r := newResolver(lookup, &stubGeocoder{})

	_, err := r.Coordinates(context.Background(), "54100060")
	require.ErrorIs(t, err, cep.ErrNotFound)
}
