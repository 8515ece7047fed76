package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/RaikyD/stitch-storefront/internal/domain"
	"github.com/RaikyD/stitch-storefront/internal/logger"
)

const (
	sessionCookie = "stitch_session"
	draftCookie   = "stitch_draft"

	keyUserID    = "user_id"
	keyUserPhone = "user_phone"
	keyUserName  = "user_name"
	keyUserEmail = "user_email"
	keyToken     = "token"
	keyPincode   = "pincode"
	keyAddressID = "address_id"
	keyDraftID   = "draft_id"
)

// Holder persists State in a signed cookie and hands each request its draft id.
type Holder struct {
	store *sessions.CookieStore
	now   func() time.Time
}

func NewHolder(key []byte, secure bool) *Holder {
	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   30 * 24 * 3600,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Holder{store: store, now: time.Now}
}

// Load reads the cookie state. A missing or tampered cookie yields a zero State.
func (h *Holder) Load(r *http.Request) State {
	sess, err := h.store.Get(r, sessionCookie)
	if err != nil {
		logger.Debug("session cookie rejected", "err", err)
	}
	var st State
	str := func(k string) string { s, _ := sess.Values[k].(string); return s }

	if id := str(keyUserID); id != "" {
		st.User = &domain.User{ID: id, Phone: str(keyUserPhone), Name: str(keyUserName), Email: str(keyUserEmail)}
		st.Token = str(keyToken)
	}
	st.Prefs = Prefs{Pincode: str(keyPincode), SelectedAddressID: str(keyAddressID)}
	return st
}

// Save writes st to the cookie, replacing whatever was there.
func (h *Holder) Save(w http.ResponseWriter, r *http.Request, st State) error {
	sess, _ := h.store.Get(r, sessionCookie)
	sess.Values = map[any]any{}
	if st.User != nil {
		sess.Values[keyUserID] = st.User.ID
		sess.Values[keyUserPhone] = st.User.Phone
		sess.Values[keyUserName] = st.User.Name
		sess.Values[keyUserEmail] = st.User.Email
		sess.Values[keyToken] = st.Token
	}
	if st.Prefs.Pincode != "" {
		sess.Values[keyPincode] = st.Prefs.Pincode
	}
	if st.Prefs.SelectedAddressID != "" {
		sess.Values[keyAddressID] = st.Prefs.SelectedAddressID
	}
	if err := sess.Save(r, w); err != nil {
		return err
	}
	if cur := fromContext(r.Context()); cur != nil {
		*cur = st
	}
	return nil
}

// Logout drops the identity and keeps prefs.
func (h *Holder) Logout(w http.ResponseWriter, r *http.Request) error {
	st := FromContext(r.Context())
	if fromContext(r.Context()) == nil {
		st = h.Load(r)
	}
	st.Session = Session{}
	return h.Save(w, r, st)
}

// draftID returns the browsing-session draft id, issuing one when absent.
// The cookie has no MaxAge so the draft dies with the browser session.
func (h *Holder) draftID(w http.ResponseWriter, r *http.Request) string {
	sess, _ := h.store.Get(r, draftCookie)
	if id, ok := sess.Values[keyDraftID].(string); ok && id != "" {
		return id
	}
	id := uuid.NewString()
	sess.Values[keyDraftID] = id
	sess.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   h.store.Options.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if err := sess.Save(r, w); err != nil {
		logger.Warn("draft cookie save failed", "err", err)
	}
	return id
}

type ctxKey int

const (
	stateKey ctxKey = iota
	draftKey
)

// Middleware resolves the cookie state and draft id once per request.
func (h *Holder) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := h.Load(r)
		draft := h.draftID(w, r)
		ctx := context.WithValue(r.Context(), stateKey, &st)
		ctx = context.WithValue(ctx, draftKey, draft)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func fromContext(ctx context.Context) *State {
	st, _ := ctx.Value(stateKey).(*State)
	return st
}

// FromContext returns the state resolved by Middleware, or a zero State.
func FromContext(ctx context.Context) State {
	if st := fromContext(ctx); st != nil {
		return *st
	}
	return State{}
}

func DraftFromContext(ctx context.Context) string {
	id, _ := ctx.Value(draftKey).(string)
	return id
}

// RequireAuth gates protected routes. Page navigations are redirected to the
// login page with the attempted path; API calls get a 401 naming it.
func (h *Holder) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := FromContext(r.Context())
		if fromContext(r.Context()) == nil {
			st = h.Load(r)
		}
		if st.Active(h.now()) {
			next.ServeHTTP(w, r)
			return
		}
		if st.IsAuthenticated() {
			logger.Info("session token expired", "user", st.User.ID)
			if err := h.Logout(w, r); err != nil {
				logger.Warn("logout after expiry failed", "err", err)
			}
		}

		login := LoginURL(r.URL.RequestURI())
		if wantsJSON(r) {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error": "authentication required",
				"login": login,
			})
			return
		}
		http.Redirect(w, r, login, http.StatusSeeOther)
	})
}

func LoginURL(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		next = "/"
	}
	return "/login?next=" + url.QueryEscape(next)
}

func wantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
