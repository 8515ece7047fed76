package presentation

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/RaikyD/stitch-storefront/internal/auth"
	"github.com/RaikyD/stitch-storefront/internal/domain"
	"github.com/RaikyD/stitch-storefront/internal/flow"
	"github.com/RaikyD/stitch-storefront/internal/logger"
	"github.com/RaikyD/stitch-storefront/internal/presentation/helpers"
)

type verifyBody struct {
	IDToken string `json:"idToken"`
}

// Verify exchanges the OTP provider's id token for a session.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	var body verifyBody
	if err := helpers.DecodeJSON(r.Body, &body); err != nil {
		badRequest(w, err)
		return
	}
	if strings.TrimSpace(body.IDToken) == "" {
		writeError(w, r, flow.FieldErrors{"idToken": "is required"}, "/")
		return
	}
	user, token, err := h.account.Verify(r.Context(), body.IDToken)
	if err != nil {
		writeError(w, r, err, "/")
		return
	}

	st := auth.FromContext(r.Context())
	st.Session = auth.Session{User: &user, Token: token}
	if err := h.sessions.Save(w, r, st); err != nil {
		logger.Error("save session failed", "err", err)
		helpers.HttpError(w, http.StatusInternalServerError, "could not start session")
		return
	}
	logger.Info("user signed in", "user", user.ID)
	helpers.WriteJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	st := auth.FromContext(r.Context())
	if st.Token != "" {
		h.book.Forget(st.Token)
	}
	if err := h.sessions.Logout(w, r); err != nil {
		logger.Warn("logout failed", "err", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	st := auth.FromContext(r.Context())
	active := st.Active(h.now())
	body := map[string]any{
		"authenticated": active,
		"prefs":         st.Prefs,
	}
	if active {
		body["user"] = st.User
	}
	helpers.WriteJSON(w, http.StatusOK, body)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var p domain.ProfileUpdate
	if err := helpers.DecodeJSON(r.Body, &p); err != nil {
		badRequest(w, err)
		return
	}
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	if errs := flow.ValidateStruct(p); len(errs) > 0 {
		writeError(w, r, errs, "/profile")
		return
	}

	st := auth.FromContext(r.Context())
	user, err := h.account.UpdateProfile(r.Context(), st.Token, p)
	if err != nil {
		writeError(w, r, err, "/profile")
		return
	}
	if user.ID == "" {
		user = *st.User
		user.Name, user.Email = p.Name, p.Email
	}
	st.User = &user
	if err := h.sessions.Save(w, r, st); err != nil {
		logger.Warn("save session failed", "err", err)
	}
	helpers.WriteJSON(w, http.StatusOK, user)
}

func (h *Handler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	st := auth.FromContext(r.Context())
	list, err := h.book.List(r.Context(), st.Token)
	if err != nil {
		writeError(w, r, err, "/addresses")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]any{
		"addresses":         list,
		"selectedAddressId": st.Prefs.SelectedAddressID,
	})
}

func (h *Handler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	var a domain.Address
	if err := helpers.DecodeJSON(r.Body, &a); err != nil {
		badRequest(w, err)
		return
	}
	created, err := h.book.Create(r.Context(), auth.FromContext(r.Context()).Token, a)
	if err != nil {
		writeError(w, r, err, "/addresses")
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	var a domain.Address
	if err := helpers.DecodeJSON(r.Body, &a); err != nil {
		badRequest(w, err)
		return
	}
	a.ID = chi.URLParam(r, "id")
	updated, err := h.book.Update(r.Context(), auth.FromContext(r.Context()).Token, a)
	if err != nil {
		writeError(w, r, err, "/addresses")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, updated)
}

// DeleteAddress also drops the address from prefs and the draft when it was
// the selected one.
func (h *Handler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	st := auth.FromContext(r.Context())
	if err := h.book.Delete(r.Context(), st.Token, id); err != nil {
		writeError(w, r, err, "/addresses")
		return
	}
	h.checkout.ForgetAddress(draftOf(r), id)
	if st.Prefs.SelectedAddressID == id {
		st.Prefs.SelectedAddressID = ""
		if err := h.sessions.Save(w, r, st); err != nil {
			logger.Warn("save prefs failed", "err", err)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SetDefaultAddress(w http.ResponseWriter, r *http.Request) {
	list, err := h.book.SetDefault(r.Context(), auth.FromContext(r.Context()).Token, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "/addresses")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, list)
}
