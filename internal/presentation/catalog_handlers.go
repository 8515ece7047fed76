package presentation

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/RaikyD/stitch-storefront/internal/auth"
	"github.com/RaikyD/stitch-storefront/internal/domain"
	"github.com/RaikyD/stitch-storefront/internal/presentation/helpers"
)

// ListBoutiques defaults to the draft's pincode, then the remembered one.
func (h *Handler) ListBoutiques(w http.ResponseWriter, r *http.Request) {
	pin := strings.TrimSpace(r.URL.Query().Get("pincode"))
	if pin == "" {
		pin = domain.Deref(h.checkout.Order(draftOf(r)).DeliveryPincode)
	}
	if pin == "" {
		pin = auth.FromContext(r.Context()).Prefs.Pincode
	}
	list, err := h.catalog.Boutiques(r.Context(), pin)
	if err != nil {
		writeError(w, r, err, "/boutiques")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, nonNil(list))
}

func (h *Handler) GetBoutique(w http.ResponseWriter, r *http.Request) {
	b, err := h.catalog.Boutique(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "/boutiques")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, b)
}

func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	list, err := h.catalog.Services(r.Context())
	if err != nil {
		writeError(w, r, err, "/")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, nonNil(list))
}

func (h *Handler) ListStyles(w http.ResponseWriter, r *http.Request) {
	list, err := h.catalog.PredesignedStyles(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "/")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, nonNil(list))
}

func (h *Handler) ListMaterials(w http.ResponseWriter, r *http.Request) {
	list, err := h.catalog.Materials(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "/")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, nonNil(list))
}

// nonNil keeps empty results encoded as [] rather than null.
func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
