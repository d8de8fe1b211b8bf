package http

import (
	"net/http"

	"github.com/MKhiriev/go-shop-keeper/internal/utils"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	health := h.services.HealthService.Check(r.Context())

	status := http.StatusOK
	if !health.OK {
		status = http.StatusServiceUnavailable
	}

	utils.WriteJSON(w, health, status)
}
