package presentation

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/RaikyD/stitch-storefront/internal/application"
	"github.com/RaikyD/stitch-storefront/internal/auth"
	"github.com/RaikyD/stitch-storefront/internal/flow"
)

type Handler struct {
	checkout *application.Checkout
	catalog  application.Catalog
	book     *application.AddressBook
	account  application.AccountAPI
	archive  *application.OrdersService
	sessions *auth.Holder
	now      func() time.Time
}

func NewHandler(
	checkout *application.Checkout,
	catalog application.Catalog,
	book *application.AddressBook,
	account application.AccountAPI,
	archive *application.OrdersService,
	sessions *auth.Holder,
) *Handler {
	return &Handler{
		checkout: checkout,
		catalog:  catalog,
		book:     book,
		account:  account,
		archive:  archive,
		sessions: sessions,
		now:      time.Now,
	}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Use(h.sessions.Middleware)

		r.Get("/order", h.GetOrder)
		r.Patch("/order", h.PatchOrder)
		r.Delete("/order", h.ResetOrder)

		r.Get("/steps/{step}", h.StepStatus)
		r.Post("/steps/{step}", h.SubmitStep)
		r.Get("/boutique/{boutiqueID}/service/{serviceID}/steps/{step}", h.StepStatus)
		r.Post("/boutique/{boutiqueID}/service/{serviceID}/steps/{step}", h.SubmitStep)

		r.Post("/location/pincode", h.SetPincode)
		r.Post("/measurements/date", h.SelectVisitDate)
		r.Post("/measurements/slot", h.SelectVisitSlot)
		r.Post("/schedule/date", h.SelectPickupDate)
		r.Post("/schedule/slot", h.SelectPickupSlot)
		r.Get("/schedule/slots", h.ListSlots)
		r.Get("/schedule/dates", h.ListDates)

		r.Get("/boutiques", h.ListBoutiques)
		r.Get("/boutiques/{id}", h.GetBoutique)
		r.Get("/services", h.ListServices)
		r.Get("/services/{id}/predesigned-styles", h.ListStyles)
		r.Get("/services/{id}/materials", h.ListMaterials)

		r.Post("/auth/verify", h.Verify)
		r.Post("/auth/logout", h.Logout)
		r.Get("/auth/session", h.Session)

		r.Group(func(r chi.Router) {
			r.Use(h.sessions.RequireAuth)
			r.Get("/addresses", h.ListAddresses)
			r.Post("/addresses", h.CreateAddress)
			r.Put("/addresses/{id}", h.UpdateAddress)
			r.Delete("/addresses/{id}", h.DeleteAddress)
			r.Put("/addresses/{id}/default", h.SetDefaultAddress)
			r.Put("/profile", h.UpdateProfile)
			r.Get("/orders/{id}", h.GetPlacedOrder)
		})
	})
}

func routeOf(r *http.Request) flow.RouteParams {
	return flow.RouteParams{
		BoutiqueID: chi.URLParam(r, "boutiqueID"),
		ServiceID:  chi.URLParam(r, "serviceID"),
	}
}

func draftOf(r *http.Request) string {
	return auth.DraftFromContext(r.Context())
}
