package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-shop-keeper/internal/utils"
	"github.com/MKhiriev/go-shop-keeper/models"
)

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := productFilterFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	products, err := h.services.CatalogService.ListProducts(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, products, http.StatusOK)
}

// productFilterFromQuery reads the category, featured and available filters.
// Empty parameters are not applied.
func productFilterFromQuery(r *http.Request) (models.ProductFilter, error) {
	query := r.URL.Query()
	var filter models.ProductFilter

	if category := query.Get("category"); category != "" {
		filter.Category = &category
	}

	for name, dst := range map[string]**bool{
		"featured":  &filter.Featured,
		"available": &filter.Available,
	} {
		raw := query.Get(name)
		if raw == "" {
			continue
		}
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return models.ProductFilter{}, ErrInvalidQueryParam
		}
		*dst = &value
	}

	return filter, nil
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.services.CatalogService.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, product, http.StatusOK)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var in models.ProductInput
	if !decodeBody(w, r, &in) {
		return
	}

	product, err := h.services.CatalogService.CreateProduct(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, product, http.StatusCreated)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var in models.ProductInput
	if !decodeBody(w, r, &in) {
		return
	}

	product, err := h.services.CatalogService.UpdateProduct(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, product, http.StatusOK)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.services.CatalogService.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "product deleted"}, http.StatusOK)
}

func (h *Handler) requestImageUpload(w http.ResponseWriter, r *http.Request) {
	var req models.ImageUploadRequest
	if !decodeBody(w, r, &req) {
		return
	}

	upload, err := h.services.CatalogService.RequestImageUpload(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, upload, http.StatusOK)
}
