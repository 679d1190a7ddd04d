package cart

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/huum-shop/storefront-api/internal/cep"
	"github.com/huum-shop/storefront-api/internal/common"
	"github.com/huum-shop/storefront-api/internal/shipping"
)

// ProductSource resolves catalog products for cart mutations.
type ProductSource interface {
	ProductByID(id string) (Product, bool)
}

// ProductSourceFunc adapts a function to the ProductSource interface.
type ProductSourceFunc func(id string) (Product, bool)

// ProductByID calls the wrapped function.
func (f ProductSourceFunc) ProductByID(id string) (Product, bool) { return f(id) }

// Handler exposes the cart HTTP endpoints.
type Handler struct {
	Mgr                *Manager
	Catalog            ProductSource
	OutsideAreaMessage string
}

type cartView struct {
	Items           []LineItem `json:"items"`
	Totals          Totals     `json:"totals"`
	ItemCount       int        `json:"itemCount"`
	IsQuoted        bool       `json:"isQuoted"`
	LastZipCode     string     `json:"lastZipCode,omitempty"`
	IsRecalculating bool       `json:"isRecalculating"`
}

func (h *Handler) view() cartView {
	return cartView{
		Items:           h.Mgr.Items(),
		Totals:          h.Mgr.Totals(),
		ItemCount:       h.Mgr.ItemCount(),
		IsQuoted:        h.Mgr.IsQuoted(),
		LastZipCode:     h.Mgr.LastZip(),
		IsRecalculating: h.Mgr.IsRecalculating(),
	}
}

// Get returns the current cart contents, totals and shipping context.
func (h *Handler) Get(w http.ResponseWriter, _ *http.Request) {
	common.JSONData(w, http.StatusOK, h.view())
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// AddItem adds a catalog product to the cart.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}
	if h.Catalog == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog not configured", nil)
		return
	}
	product, ok := h.Catalog.ProductByID(req.ProductID)
	if !ok {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
		return
	}
	if err := h.Mgr.AddItem(r.Context(), product, req.Quantity); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	common.JSONData(w, http.StatusOK, h.view())
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SetQuantity overwrites the quantity of a line item; zero removes it.
func (h *Handler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	productID := chi.URLParam(r, "productId")
	if err := h.Mgr.SetQuantity(r.Context(), productID, req.Quantity); err != nil {
		if errors.Is(err, ErrNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "item not in cart", nil)
			return
		}
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	common.JSONData(w, http.StatusOK, h.view())
}

// RemoveItem deletes a line item.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if err := h.Mgr.RemoveItem(r.Context(), productID); err != nil {
		if errors.Is(err, ErrNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "item not in cart", nil)
			return
		}
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	common.JSONData(w, http.StatusOK, h.view())
}

type applyQuoteRequest struct {
	ZipCode  string `json:"zipCode"`
	OptionID string `json:"optionId"`
}

// ApplyQuote fetches a fresh quote for the postal code and commits the
// selected option into the cart totals.
func (h *Handler) ApplyQuote(w http.ResponseWriter, r *http.Request) {
	var req applyQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	calc, err := h.Mgr.ApplyQuote(r.Context(), req.ZipCode, req.OptionID)
	if err != nil {
		h.writeQuoteError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, map[string]any{
		"quote": calc,
		"cart":  h.view(),
	})
}

// Clear empties the cart.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	h.Mgr.Clear(r.Context())
	common.JSONData(w, http.StatusOK, h.view())
}

func (h *Handler) writeQuoteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cep.ErrInvalidFormat):
		common.JSONError(w, http.StatusBadRequest, "INVALID_FORMAT", "CEP inválido", nil)
	case errors.Is(err, cep.ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "CEP não encontrado", nil)
	case errors.Is(err, shipping.ErrOutsideServiceArea):
		msg := h.OutsideAreaMessage
		if msg == "" {
			msg = err.Error()
		}
		common.JSONError(w, http.StatusUnprocessableEntity, "OUTSIDE_AREA", msg, nil)
	case errors.Is(err, cep.ErrGeocodeUnavailable):
		common.JSONError(w, http.StatusUnprocessableEntity, "GEOCODE_UNAVAILABLE", "Não foi possível obter localização do CEP", nil)
	default:
		common.JSONError(w, http.StatusBadGateway, "LOOKUP_FAILED", "Erro ao calcular frete", nil)
	}
}
