package backend

import (
	"context"
	"net/http"

	"github.com/RaikyD/stitch-storefront/internal/domain"
)

type verifyResponse struct {
	Token       string   `json:"token"`
	AccessToken string   `json:"accessToken"`
	User        *rawUser `json:"user"`
}

// Verify exchanges the OTP provider's id token for a backend session token.
func (c *Client) Verify(ctx context.Context, idToken string) (domain.User, string, error) {
	var res verifyResponse
	body := map[string]string{"idToken": idToken}
	if err := c.do(ctx, http.MethodPost, "/auth/verify", nil, "", body, &res); err != nil {
		return domain.User{}, "", err
	}
	token := res.Token
	if token == "" {
		token = res.AccessToken
	}
	if token == "" || res.User == nil {
		return domain.User{}, "", &APIError{Status: http.StatusBadGateway, Message: "verification response without token or user"}
	}
	return res.User.canonical(), token, nil
}

func (c *Client) UpdateProfile(ctx context.Context, token string, p domain.ProfileUpdate) (domain.User, error) {
	var raw rawUser
	if err := c.do(ctx, http.MethodPut, "/users/profile", nil, token, p, &raw); err != nil {
		return domain.User{}, err
	}
	return raw.canonical(), nil
}
