package catalog

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/huum-shop/storefront-api/internal/common"
)

// Handler exposes the public catalog endpoints.
type Handler struct {
	Svc *Service
}

// List handles GET /products with an optional category filter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	products := h.Svc.List(r.URL.Query().Get("category"))
	common.JSONData(w, http.StatusOK, products)
}

// Categories handles GET /categories.
func (h *Handler) Categories(w http.ResponseWriter, _ *http.Request) {
	common.JSONData(w, http.StatusOK, h.Svc.Categories())
}

// GetBySlug handles GET /products/{slug}.
func (h *Handler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	p, err := h.Svc.BySlug(chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load product", nil)
		return
	}
	common.JSONData(w, http.StatusOK, p)
}
