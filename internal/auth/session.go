package auth

import (
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/RaikyD/stitch-storefront/internal/domain"
)

// Session is the signed-in identity. Token is the backend bearer token.
type Session struct {
	User  *domain.User `json:"user,omitempty"`
	Token string       `json:"-"`
}

func (s Session) IsAuthenticated() bool { return s.User != nil }

// Expired reports whether Token is a JWT whose exp claim is in the past.
// The signature is not checked here; the backend does that on every call.
// Opaque tokens never expire on this side.
func (s Session) Expired(now time.Time) bool {
	if s.Token == "" {
		return false
	}
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(s.Token, claims); err != nil {
		return false
	}
	var exp int64
	switch v := claims["exp"].(type) {
	case float64:
		exp = int64(v)
	case int64:
		exp = v
	default:
		return false
	}
	return now.Unix() >= exp
}

// Active is an authenticated session whose token is still usable.
func (s Session) Active(now time.Time) bool {
	return s.IsAuthenticated() && !s.Expired(now)
}

// Prefs are the client-local choices that outlive an order draft.
type Prefs struct {
	Pincode           string `json:"pincode,omitempty"`
	SelectedAddressID string `json:"selectedAddressId,omitempty"`
}

// State is everything persisted in the session cookie.
type State struct {
	Session
	Prefs Prefs `json:"prefs"`
}
