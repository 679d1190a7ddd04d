package shipping

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/huum-shop/storefront-api/internal/cep"
	"github.com/huum-shop/storefront-api/internal/common"
	"github.com/huum-shop/storefront-api/internal/geo"
)

// BasketSource exposes the expanded per-unit price list of the current cart.
type BasketSource interface {
	UnitPrices() []geo.Money
}

// ZipRecorder remembers the last postal code that produced a valid quote.
type ZipRecorder interface {
	SetLastZip(ctx context.Context, zip string) error
}

// Handler exposes HTTP endpoints for quoting and address lookup.
type Handler struct {
	Svc     *Service
	Basket  BasketSource
	LastZip ZipRecorder
	Lookup  cep.AddressLookup
}

type quoteRequest struct {
	ZipCode string `json:"zipCode"`
}

// Quote calculates shipping options for the current cart contents.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "shipping service not configured", nil)
		return
	}
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	var prices []geo.Money
	if h.Basket != nil {
		prices = h.Basket.UnitPrices()
	}
	calc, err := h.Svc.Quote(r.Context(), req.ZipCode, prices)
	if err != nil {
		h.writeQuoteError(w, err)
		return
	}
	if h.LastZip != nil {
		if err := h.LastZip.SetLastZip(r.Context(), calc.ZipCode); err != nil {
			h.Svc.Log.Warn().Err(err).Msg("persist last zip code")
		}
	}
	common.JSONData(w, http.StatusOK, calc)
}

// GetAddress returns the structured address for a postal code, used to
// pre-fill the checkout form. Always a fresh lookup.
func (h *Handler) GetAddress(w http.ResponseWriter, r *http.Request) {
	if h.Lookup == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "address lookup not configured", nil)
		return
	}
	code, err := cep.Normalize(chi.URLParam(r, "code"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "INVALID_FORMAT", "CEP inválido", nil)
		return
	}
	addr, err := h.Lookup.Lookup(r.Context(), code)
	if err != nil {
		h.writeQuoteError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, addr)
}

func (h *Handler) writeQuoteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cep.ErrInvalidFormat):
		common.JSONError(w, http.StatusBadRequest, "INVALID_FORMAT", "CEP inválido", nil)
	case errors.Is(err, cep.ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "CEP não encontrado", nil)
	case errors.Is(err, ErrOutsideServiceArea):
		common.JSONError(w, http.StatusUnprocessableEntity, "OUTSIDE_AREA", h.Svc.Policy.OutsideAreaMessage, nil)
	case errors.Is(err, cep.ErrGeocodeUnavailable):
		common.JSONError(w, http.StatusUnprocessableEntity, "GEOCODE_UNAVAILABLE", "Não foi possível obter localização do CEP", nil)
	default:
		common.JSONError(w, http.StatusBadGateway, "LOOKUP_FAILED", "Erro ao calcular frete", nil)
	}
}
