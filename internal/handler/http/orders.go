package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-shop-keeper/internal/utils"
	"github.com/MKhiriev/go-shop-keeper/models"
)

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var in models.OrderInput
	if !decodeBody(w, r, &in) {
		return
	}

	order, err := h.services.OrderService.PlaceOrder(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, order, http.StatusCreated)
}

// listMyOrders lists the orders of the authenticated caller.
func (h *Handler) listMyOrders(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.UserFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrEmptyAuthorizationHeader)
		return
	}

	h.writeUserOrders(w, r, user.ID)
}

func (h *Handler) listUserOrders(w http.ResponseWriter, r *http.Request) {
	h.writeUserOrders(w, r, chi.URLParam(r, "id"))
}

func (h *Handler) writeUserOrders(w http.ResponseWriter, r *http.Request, userID string) {
	orders, err := h.services.OrderService.ListUserOrders(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, orders, http.StatusOK)
}

func (h *Handler) listAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.services.OrderService.ListAllOrders(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, orders, http.StatusOK)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	status := models.OrderStatus(r.URL.Query().Get("status"))

	if err := h.services.OrderService.UpdateOrderStatus(r.Context(), chi.URLParam(r, "id"), status); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "order status updated"}, http.StatusOK)
}
