package backend

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/RaikyD/stitch-storefront/internal/domain"
)

// Boutiques lists boutiques serving pincode. An empty pincode lists all.
func (c *Client) Boutiques(ctx context.Context, pincode string) ([]domain.Boutique, error) {
	var q url.Values
	if p := strings.TrimSpace(pincode); p != "" {
		q = url.Values{"pincode": {p}}
	}
	var raw []rawBoutique
	if err := c.do(ctx, http.MethodGet, "/boutiques", q, "", nil, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.Boutique, 0, len(raw))
	for _, r := range raw {
		out = append(out, r.canonical())
	}
	return out, nil
}

func (c *Client) Boutique(ctx context.Context, id string) (domain.Boutique, error) {
	var raw rawBoutique
	if err := c.do(ctx, http.MethodGet, "/boutiques/"+url.PathEscape(id), nil, "", nil, &raw); err != nil {
		return domain.Boutique{}, notFound(err)
	}
	if raw.value() == "" {
		return domain.Boutique{}, domain.ErrNotFound
	}
	return raw.canonical(), nil
}

func (c *Client) Services(ctx context.Context) ([]domain.Service, error) {
	var raw []rawService
	if err := c.do(ctx, http.MethodGet, "/services", nil, "", nil, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.Service, 0, len(raw))
	for _, r := range raw {
		out = append(out, r.canonical())
	}
	return out, nil
}

func (c *Client) PredesignedStyles(ctx context.Context, serviceID string) ([]domain.Style, error) {
	var raw []rawStyle
	path := "/services/" + url.PathEscape(serviceID) + "/predesigned-styles"
	if err := c.do(ctx, http.MethodGet, path, nil, "", nil, &raw); err != nil {
		return nil, notFound(err)
	}
	out := make([]domain.Style, 0, len(raw))
	for _, r := range raw {
		out = append(out, r.canonical())
	}
	return out, nil
}

func (c *Client) Materials(ctx context.Context, serviceID string) ([]domain.Material, error) {
	var raw []rawMaterial
	path := "/services/" + url.PathEscape(serviceID) + "/materials"
	if err := c.do(ctx, http.MethodGet, path, nil, "", nil, &raw); err != nil {
		return nil, notFound(err)
	}
	out := make([]domain.Material, 0, len(raw))
	for _, r := range raw {
		out = append(out, r.canonical())
	}
	return out, nil
}

// notFound maps a 404 to domain.ErrNotFound while keeping the api message.
func notFound(err error) error {
	if StatusOf(err) == http.StatusNotFound {
		return errors.Join(domain.ErrNotFound, err)
	}
	return err
}
