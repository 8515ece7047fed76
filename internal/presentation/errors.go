package presentation

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/RaikyD/stitch-storefront/internal/application"
	"github.com/RaikyD/stitch-storefront/internal/auth"
	"github.com/RaikyD/stitch-storefront/internal/backend"
	"github.com/RaikyD/stitch-storefront/internal/domain"
	"github.com/RaikyD/stitch-storefront/internal/flow"
	"github.com/RaikyD/stitch-storefront/internal/logger"
	"github.com/RaikyD/stitch-storefront/internal/presentation/helpers"
)

// writeError maps service errors onto the JSON error contract the pages use.
// login is where an unauthenticated caller should go afterwards.
func writeError(w http.ResponseWriter, r *http.Request, err error, login string) {
	var (
		fe flow.FieldErrors
		nr *application.NotReadyError
		ae *backend.APIError
		ue *url.Error
	)
	switch {
	case errors.As(err, &fe):
		helpers.WriteJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation failed",
			"fields": fe,
		})
	case errors.As(err, &nr):
		helpers.WriteJSON(w, http.StatusConflict, map[string]string{
			"error":    nr.Cause.Error(),
			"redirect": nr.Redirect,
		})
	case errors.Is(err, application.ErrUnauthenticated):
		helpers.WriteJSON(w, http.StatusUnauthorized, map[string]string{
			"error": "authentication required",
			"login": auth.LoginURL(login),
		})
	case errors.Is(err, domain.ErrNotFound):
		helpers.HttpError(w, http.StatusNotFound, "not found")
	case errors.As(err, &ae):
		if ae.Status == http.StatusUnauthorized {
			helpers.WriteJSON(w, http.StatusUnauthorized, map[string]string{
				"error": ae.Message,
				"login": auth.LoginURL(login),
			})
			return
		}
		logger.Warn("backend call failed", "path", r.URL.Path, "status", ae.Status, "err", ae.Message)
		helpers.HttpError(w, http.StatusBadGateway, ae.Message)
	case errors.As(err, &ue):
		logger.Warn("backend unreachable", "path", r.URL.Path, "err", err)
		helpers.HttpError(w, http.StatusBadGateway, "The service is unavailable right now. Please try again.")
	default:
		logger.Error("request failed", "path", r.URL.Path, "err", err)
		helpers.HttpError(w, http.StatusInternalServerError, "internal error")
	}
}

func badRequest(w http.ResponseWriter, err error) {
	helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
}
