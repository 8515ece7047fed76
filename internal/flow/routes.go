package flow

import (
	"net/url"
	"strings"

	"github.com/RaikyD/stitch-storefront/internal/domain"
)

// RouteParams are the optional ids embedded in nested storefront routes.
type RouteParams struct {
	BoutiqueID string
	ServiceID  string
}

// Nested reports whether both ids are present; one alone does not count.
func (p RouteParams) Nested() bool {
	return strings.TrimSpace(p.BoutiqueID) != "" && strings.TrimSpace(p.ServiceID) != ""
}

// Resolve returns the canonical path of step for the current route shape:
// /boutique/{b}/service/{s}/{step} when both ids are known, /{step} otherwise.
func Resolve(p RouteParams, step Step) string {
	if p.Nested() {
		return "/boutique/" + url.PathEscape(p.BoutiqueID) +
			"/service/" + url.PathEscape(p.ServiceID) +
			"/" + string(step)
	}
	return "/" + string(step)
}

// ParamsOf derives route params from the chosen boutique and service.
func ParamsOf(o domain.OrderDetails) RouteParams {
	var p RouteParams
	if o.Boutique != nil {
		p.BoutiqueID = o.Boutique.ID
	}
	if o.Service != nil {
		p.ServiceID = o.Service.ID
	}
	return p
}
