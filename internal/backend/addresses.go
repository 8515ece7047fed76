package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/RaikyD/stitch-storefront/internal/domain"
)

func (c *Client) Addresses(ctx context.Context, token string) ([]domain.Address, error) {
	var raw []rawAddress
	if err := c.do(ctx, http.MethodGet, "/users/addresses", nil, token, nil, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.Address, 0, len(raw))
	for _, r := range raw {
		out = append(out, r.canonical())
	}
	return out, nil
}

func (c *Client) CreateAddress(ctx context.Context, token string, a domain.Address) (domain.Address, error) {
	a.ID = ""
	var raw rawAddress
	if err := c.do(ctx, http.MethodPost, "/users/addresses", nil, token, a, &raw); err != nil {
		return domain.Address{}, err
	}
	return raw.canonical(), nil
}

func (c *Client) UpdateAddress(ctx context.Context, token string, a domain.Address) (domain.Address, error) {
	var raw rawAddress
	if err := c.do(ctx, http.MethodPut, "/users/addresses/"+url.PathEscape(a.ID), nil, token, a, &raw); err != nil {
		return domain.Address{}, notFound(err)
	}
	out := raw.canonical()
	if out.ID == "" {
		out = a
	}
	return out, nil
}

func (c *Client) DeleteAddress(ctx context.Context, token, id string) error {
	return notFound(c.do(ctx, http.MethodDelete, "/users/addresses/"+url.PathEscape(id), nil, token, nil, nil))
}

func (c *Client) SetDefaultAddress(ctx context.Context, token, id string) error {
	path := "/users/addresses/" + url.PathEscape(id) + "/default"
	return notFound(c.do(ctx, http.MethodPut, path, nil, token, nil, nil))
}
