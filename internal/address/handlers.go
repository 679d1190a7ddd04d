package address

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"

	"github.com/huum-shop/storefront-api/internal/cep"
	"github.com/huum-shop/storefront-api/internal/common"
)

// Handler exposes the saved-address endpoints used to pre-fill checkout.
type Handler struct {
	Store    *Store
	Validate *validator.Validate
}

// Get returns the saved form for a postal code, if any.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	code, err := cep.Normalize(chi.URLParam(r, "code"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "INVALID_FORMAT", "CEP inválido", nil)
		return
	}
	form, err := h.Store.Get(r.Context(), code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "endereço não encontrado", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load address", nil)
		return
	}
	common.JSONData(w, http.StatusOK, form)
}

// Save validates and upserts a form under its postal code.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	var form Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	code, err := cep.Normalize(form.CEP)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "INVALID_FORMAT", "CEP inválido", nil)
		return
	}
	form.CEP = code
	if err := h.Validate.Struct(form); err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid address", err.Error())
		return
	}
	if err := h.Store.Save(r.Context(), code, form); err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to save address", nil)
		return
	}
	common.JSONData(w, http.StatusOK, form)
}

// LastZip returns the most recently quoted postal code.
func (h *Handler) LastZip(w http.ResponseWriter, r *http.Request) {
	zip, err := h.Store.LastZip(r.Context())
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load postal code", nil)
		return
	}
	common.JSONData(w, http.StatusOK, map[string]string{"zipCode": zip})
}
