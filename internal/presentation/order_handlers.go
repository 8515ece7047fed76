package presentation

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/RaikyD/stitch-storefront/internal/application"
	"github.com/RaikyD/stitch-storefront/internal/auth"
	"github.com/RaikyD/stitch-storefront/internal/domain"
	"github.com/RaikyD/stitch-storefront/internal/flow"
	"github.com/RaikyD/stitch-storefront/internal/logger"
	"github.com/RaikyD/stitch-storefront/internal/presentation/helpers"
)

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, h.checkout.Order(draftOf(r)))
}

func (h *Handler) PatchOrder(w http.ResponseWriter, r *http.Request) {
	var p domain.Patch
	if err := helpers.DecodeJSON(r.Body, &p); err != nil {
		badRequest(w, err)
		return
	}
	o, err := h.checkout.Update(draftOf(r), p)
	if err != nil {
		writeError(w, r, err, "/")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, o)
}

// ResetOrder discards the draft, as on cancellation.
func (h *Handler) ResetOrder(w http.ResponseWriter, r *http.Request) {
	h.checkout.Reset(draftOf(r))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) StepStatus(w http.ResponseWriter, r *http.Request) {
	step, ok := flow.ParseStep(chi.URLParam(r, "step"))
	if !ok {
		helpers.HttpError(w, http.StatusNotFound, "unknown step")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, h.checkout.Status(draftOf(r), step, routeOf(r)))
}

func (h *Handler) SubmitStep(w http.ResponseWriter, r *http.Request) {
	step, ok := flow.ParseStep(chi.URLParam(r, "step"))
	if !ok {
		helpers.HttpError(w, http.StatusNotFound, "unknown step")
		return
	}
	var in application.StepInput
	if err := helpers.DecodeJSON(r.Body, &in); err != nil && !errors.Is(err, helpers.ErrEmptyBody) {
		badRequest(w, err)
		return
	}

	st := auth.FromContext(r.Context())
	route := routeOf(r)
	res, err := h.checkout.Submit(r.Context(), application.StepRequest{
		Step:  step,
		Draft: draftOf(r),
		Token: st.Token,
		User:  st.User,
		Route: route,
		Input: in,
	})
	if err != nil {
		writeError(w, r, err, flow.Resolve(route, step))
		return
	}

	if step == flow.StepAddress {
		h.rememberLocation(w, r, res.Order)
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

// rememberLocation mirrors the draft's pincode and selected address into the
// long-lived prefs.
func (h *Handler) rememberLocation(w http.ResponseWriter, r *http.Request, o domain.OrderDetails) {
	st := auth.FromContext(r.Context())
	st.Prefs.Pincode = domain.Deref(o.DeliveryPincode)
	st.Prefs.SelectedAddressID = domain.Deref(o.SelectedAddressID)
	if err := h.sessions.Save(w, r, st); err != nil {
		logger.Warn("save prefs failed", "err", err)
	}
}

type pincodeBody struct {
	Pincode string `json:"pincode"`
	// Source is "manual" or "geolocation"; both behave the same.
	Source string `json:"source,omitempty"`
}

func (h *Handler) SetPincode(w http.ResponseWriter, r *http.Request) {
	var body pincodeBody
	if err := helpers.DecodeJSON(r.Body, &body); err != nil {
		badRequest(w, err)
		return
	}
	o, err := h.checkout.SetPincode(draftOf(r), body.Pincode)
	if err != nil {
		writeError(w, r, err, "/address")
		return
	}
	h.rememberLocation(w, r, o)
	helpers.WriteJSON(w, http.StatusOK, o)
}

type dateBody struct {
	Date string `json:"date"`
}

type slotBody struct {
	Slot string `json:"slot"`
}

func (h *Handler) SelectVisitDate(w http.ResponseWriter, r *http.Request) {
	var body dateBody
	if err := helpers.DecodeJSON(r.Body, &body); err != nil {
		badRequest(w, err)
		return
	}
	h.writeOrder(w, r)(h.checkout.SelectVisitDate(draftOf(r), strings.TrimSpace(body.Date)))
}

func (h *Handler) SelectVisitSlot(w http.ResponseWriter, r *http.Request) {
	var body slotBody
	if err := helpers.DecodeJSON(r.Body, &body); err != nil {
		badRequest(w, err)
		return
	}
	h.writeOrder(w, r)(h.checkout.SelectVisitSlot(draftOf(r), body.Slot))
}

func (h *Handler) SelectPickupDate(w http.ResponseWriter, r *http.Request) {
	var body dateBody
	if err := helpers.DecodeJSON(r.Body, &body); err != nil {
		badRequest(w, err)
		return
	}
	h.writeOrder(w, r)(h.checkout.SelectPickupDate(draftOf(r), strings.TrimSpace(body.Date)))
}

func (h *Handler) SelectPickupSlot(w http.ResponseWriter, r *http.Request) {
	var body slotBody
	if err := helpers.DecodeJSON(r.Body, &body); err != nil {
		badRequest(w, err)
		return
	}
	h.writeOrder(w, r)(h.checkout.SelectPickupSlot(draftOf(r), body.Slot))
}

func (h *Handler) writeOrder(w http.ResponseWriter, r *http.Request) func(domain.OrderDetails, error) {
	return func(o domain.OrderDetails, err error) {
		if err != nil {
			writeError(w, r, err, "/")
			return
		}
		helpers.WriteJSON(w, http.StatusOK, o)
	}
}

func (h *Handler) ListSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := flow.AvailableSlots(r.URL.Query().Get("date"), h.now())
	if err != nil {
		writeError(w, r, flow.FieldErrors{"date": "Invalid date"}, "/")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, slots)
}

func (h *Handler) ListDates(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, flow.SelectableDates(h.now()))
}

// GetPlacedOrder serves a placed order to the user who placed it.
func (h *Handler) GetPlacedOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	po, err := h.archive.GetByID(r.Context(), id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		writeError(w, r, err, "/")
		return
	}
	// someone else's order looks exactly like a missing one
	st := auth.FromContext(r.Context())
	if err != nil || st.User == nil || po.UserID != st.User.ID {
		helpers.HttpError(w, http.StatusNotFound, "order not found")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, po)
}
