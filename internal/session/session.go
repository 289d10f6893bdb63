// internal/session/session.go
//
// Cookie lifecycles for signed-in users and the admin store picker.
//
// Context
//   Two cookies live here:
//
//     session_token     – HS256 token minted by auth.TokenService.  HttpOnly.
//     current_store_id  – opaque store id chosen in the admin UI.  Only the
//                         admin handlers read it; host routing never does.
//
//   Reader turns an inbound request into *auth.Session.  It prefers the
//   cookie and falls back to an “Authorization: Bearer” header so API
//   clients work without cookies.  A missing or invalid token reads as
//   signed out; verification failures are logged at debug level only.
//
//------------------------------------------------------------------------------

package session

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yanizio/shopfront/internal/auth"
)

const (
	TokenCookie        = "session_token"
	CurrentStoreCookie = "current_store_id"

	currentStoreMaxAge = 30 * 24 * time.Hour
)

// Login sets the session cookie for token, valid for ttl.
func Login(w http.ResponseWriter, r *http.Request, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl / time.Second),
	})
}

// Logout clears the session cookie.
func Logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// SetCurrentStore remembers the admin's selected store.
func SetCurrentStore(w http.ResponseWriter, r *http.Request, storeID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CurrentStoreCookie,
		Value:    storeID,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(currentStoreMaxAge / time.Second),
	})
}

// ClearCurrentStore forgets the selection.
func ClearCurrentStore(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:   CurrentStoreCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}

// CurrentStore returns the selected store id, if any.
func CurrentStore(r *http.Request) (string, bool) {
	c, err := r.Cookie(CurrentStoreCookie)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// Reader decodes the caller's session from a request.
type Reader struct {
	Tokens auth.TokenService
}

// Read returns the verified session or nil when signed out.
func (rd Reader) Read(r *http.Request) *auth.Session {
	raw := tokenFrom(r)
	if raw == "" || rd.Tokens == nil {
		return nil
	}
	sess, err := rd.Tokens.Verify(raw)
	if err != nil {
		zap.L().Debug("session token rejected", zap.Error(err))
		return nil
	}
	return sess
}

func tokenFrom(r *http.Request) string {
	if c, err := r.Cookie(TokenCookie); err == nil && c.Value != "" {
		return c.Value
	}
	fields := strings.Fields(r.Header.Get("Authorization"))
	if len(fields) == 2 && strings.EqualFold(fields[0], "Bearer") {
		return fields[1]
	}
	return ""
}
