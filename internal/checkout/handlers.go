package checkout

import (
	"encoding/json"
	"net/http"

	validator "github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/huum-shop/storefront-api/internal/address"
	"github.com/huum-shop/storefront-api/internal/cart"
	"github.com/huum-shop/storefront-api/internal/cep"
	"github.com/huum-shop/storefront-api/internal/common"
)

// Handler exposes the checkout hand-off endpoint.
type Handler struct {
	Svc       *Service
	Cart      *cart.Manager
	Addresses *address.Store
	Lookup    cep.AddressLookup
	Validate  *validator.Validate
	Log       zerolog.Logger
}

// Submit finalizes the order: it renders the order summary, produces the
// WhatsApp hand-off link, remembers the address for the next purchase and
// empties the cart. Shipping must have been quoted first.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var order Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if err := h.Validate.Struct(order); err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid order", err.Error())
		return
	}

	// Street data is refreshed from the postal code when possible; the
	// customer-entered value only survives when the upstream has none.
	if h.Lookup != nil {
		if addr, err := h.Lookup.Lookup(r.Context(), order.ZipCode); err == nil {
			if addr.Street != "" {
				order.Street = addr.Street
			}
			if addr.Neighborhood != "" {
				order.Neighborhood = addr.Neighborhood
			}
			if addr.City != "" {
				order.City = addr.City
			}
			if addr.State != "" {
				order.State = addr.State
			}
		} else {
			h.Log.Warn().Err(err).Str("cep", order.ZipCode).Msg("refresh checkout address")
		}
	}

	items := h.Cart.Items()
	if len(items) == 0 {
		common.JSONError(w, http.StatusUnprocessableEntity, "EMPTY_CART", "carrinho vazio", nil)
		return
	}
	if !h.Cart.IsQuoted() {
		common.JSONError(w, http.StatusUnprocessableEntity, "SHIPPING_NOT_QUOTED", "calcule o frete antes de finalizar", nil)
		return
	}

	message := h.Svc.Summary(order, items, h.Cart.Totals().Total)
	receipt := Receipt{
		Reference:   NewReference(),
		WhatsAppURL: h.Svc.Link(message),
		Message:     message,
	}

	if h.Addresses != nil {
		form := address.Form{
			FullName:   order.FullName,
			Email:      order.Email,
			Phone:      order.Phone,
			CEP:        order.ZipCode,
			Number:     order.Number,
			Complement: order.Complement,
		}
		if err := h.Addresses.Save(r.Context(), order.ZipCode, form); err != nil {
			h.Log.Warn().Err(err).Str("cep", order.ZipCode).Msg("save checkout address")
		}
	}

	h.Cart.Clear(r.Context())
	h.Log.Info().Str("reference", receipt.Reference).Int("items", len(items)).Msg("order handed off")

	common.JSONData(w, http.StatusOK, receipt)
}
