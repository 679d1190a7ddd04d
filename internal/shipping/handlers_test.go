package shipping_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/huum-shop/storefront-api/internal/cep"
	"github.com/huum-shop/storefront-api/internal/geo"
	"github.com/huum-shop/storefront-api/internal/shipping"
)

type stubBasket struct {
	prices []geo.Money
}

func (s stubBasket) UnitPrices() []geo.Money { return s.prices }

type recordingZip struct {
	zip string
}

func (r *recordingZip) SetLastZip(_ context.Context, zip string) error {
	r.zip = zip
	return nil
}

type stubLookup struct {
	addr cep.Address
	err  error
}

func (s stubLookup) Lookup(context.Context, string) (cep.Address, error) {
	return s.addr, s.err
}

func newQuoteHandler(resolver *stubResolver, basket stubBasket, zip *recordingZip) *shipping.Handler {
	svc := &shipping.Service{
		Resolver: resolver,
		Policy:   testPolicy(),
		Carrier:  "Huum",
		Log:      zerolog.Nop(),
	}
	return &shipping.Handler{Svc: svc, Basket: basket, LastZip: zip}
}

func TestQuoteEndpoint(t *testing.T) {
	t.Parallel()

	resolver := &stubResolver{
		addr:  cep.Address{PostalCode: "50030230", City: "Recife", State: "PE"},
		coord: geo.Coordinate{Lat: -8.0578, Lng: -34.8829},
	}
	zip := &recordingZip{}
	h := newQuoteHandler(resolver, stubBasket{prices: []geo.Money{5000}}, zip)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/shipping/quote", strings.NewReader(`{"zipCode":"50030-230"}`))
	rec := httptest.NewRecorder()
	h.Quote(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data shipping.Calculation `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "50030230", resp.Data.ZipCode)
	require.Len(t, resp.Data.Options, 1)
	require.Equal(t, "Entrega Padrão", resp.Data.Options[0].Name)
	require.Equal(t, "50030230", zip.zip)
}

func TestQuoteEndpointErrorMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		resolver   *stubResolver
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "invalid format",
			resolver:   &stubResolver{},
			body:       `{"zipCode":"123"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_FORMAT",
		},
		{
			name:       "unknown cep",
			resolver:   &stubResolver{resolveErr: cep.ErrNotFound},
			body:       `{"zipCode":"99999999"}`,
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "city not served",
			resolver:   &stubResolver{addr: cep.Address{PostalCode: "01001000", City: "São Paulo", State: "SP"}},
			body:       `{"zipCode":"01001000"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "OUTSIDE_AREA",
		},
		{
			name: "geocode unavailable",
			resolver: &stubResolver{
				addr:     cep.Address{PostalCode: "50030230", City: "Recife", State: "PE"},
				coordErr: cep.ErrGeocodeUnavailable,
			},
			body:       `{"zipCode":"50030230"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "GEOCODE_UNAVAILABLE",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h := newQuoteHandler(tc.resolver, stubBasket{prices: []geo.Money{5000}}, &recordingZip{})
			req := httptest.NewRequest(http.MethodPost, "/api/v1/shipping/quote", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			h.Quote(rec, req)

			require.Equal(t, tc.wantStatus, rec.Code)
			require.Contains(t, rec.Body.String(), tc.wantCode)
		})
	}
}

func TestGetAddressEndpoint(t *testing.T) {
	t.Parallel()

	h := newQuoteHandler(&stubResolver{}, stubBasket{}, &recordingZip{})
	h.Lookup = stubLookup{addr: cep.Address{
		PostalCode:   "54100060",
		Street:       "Rua Barão de Lucena",
		Neighborhood: "Centro",
		City:         "Jaboatão dos Guararapes",
		State:        "PE",
	}}

	router := chi.NewRouter()
	router.Get("/api/v1/shipping/cep/{code}", h.GetAddress)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shipping/cep/54100-060", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Jaboatão dos Guararapes")
}

func TestGetAddressInvalidCode(t *testing.T) {
	t.Parallel()

	h := newQuoteHandler(&stubResolver{}, stubBasket{}, &recordingZip{})
	h.Lookup = stubLookup{}

	router := chi.NewRouter()
	router.Get("/api/v1/shipping/cep/{code}", h.GetAddress)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shipping/cep/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "INVALID_FORMAT")
}
