package http

import (
	"net/http"

	"github.com/MKhiriev/go-shop-keeper/internal/utils"
	"github.com/MKhiriev/go-shop-keeper/models"
)

func (h *Handler) submitContact(w http.ResponseWriter, r *http.Request) {
	var in models.ContactInput
	if !decodeBody(w, r, &in) {
		return
	}

	contact, err := h.services.ContactService.SubmitContact(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, contact, http.StatusCreated)
}

func (h *Handler) listContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.services.ContactService.ListContacts(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, contacts, http.StatusOK)
}
