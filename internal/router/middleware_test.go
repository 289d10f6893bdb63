package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yanizio/shopfront/internal/auth"
)

// fixedSessions returns the same session for every request.
type fixedSessions struct{ s *auth.Session }

func (f fixedSessions) Read(*http.Request) *auth.Session { return f.s }

func newHandler(s *auth.Session, seen *http.Request) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen = *r
		w.WriteHeader(http.StatusOK)
	})
	return Middleware(Options{
		BaseDomain: func() string { return base },
		Sessions:   fixedSessions{s},
	})(next)
}

func TestMiddleware_RewriteKeepsQueryAndCookie(t *testing.T) {
	var seen http.Request
	h := newHandler(nil, &seen)

	req := httptest.NewRequest(http.MethodGet, "http://shop.example.com/products/42?preview=1&color=red", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if seen.URL.Path != "/storefront/products/42" {
		t.Fatalf("path = %q", seen.URL.Path)
	}
	if seen.URL.RawQuery != "preview=1&color=red" {
		t.Fatalf("query = %q", seen.URL.RawQuery)
	}
	if seen.RequestURI != "/storefront/products/42?preview=1&color=red" {
		t.Fatalf("request uri = %q", seen.RequestURI)
	}
	if req.URL.Path != "/products/42" {
		t.Fatalf("original request mutated: %q", req.URL.Path)
	}

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != PreviewCookieName || cookies[0].Value != "1" {
		t.Fatalf("cookies = %+v, want sf_preview=1", cookies)
	}
}

func TestMiddleware_RootRewrite(t *testing.T) {
	var seen http.Request
	h := newHandler(nil, &seen)

	req := httptest.NewRequest(http.MethodGet, "http://mystore.com/", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	if seen.URL.Path != "/storefront" {
		t.Fatalf("path = %q, want /storefront", seen.URL.Path)
	}
}

func TestMiddleware_BaseDomainPassThrough(t *testing.T) {
	var seen http.Request
	h := newHandler(nil, &seen)

	req := httptest.NewRequest(http.MethodGet, "http://example.com/pricing?preview=clear", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if seen.URL.Path != "/pricing" {
		t.Fatalf("path = %q, want untouched", seen.URL.Path)
	}
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("cookies = %+v, want cleared preview", cookies)
	}
}

func TestMiddleware_SuperAdminForbidden(t *testing.T) {
	var seen http.Request
	h := newHandler(&auth.Session{UserID: "u1", Role: auth.RoleStoreOwner}, &seen)

	req := httptest.NewRequest(http.MethodGet, "http://example.com/api/super-admin/stores", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("content type = %q", ct)
	}
	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body) != 1 || body["error"] != "Forbidden" {
		t.Fatalf("body = %v, want {error: Forbidden}", body)
	}
	if seen.URL != nil {
		t.Fatal("next handler ran for a forbidden request")
	}
}

func TestMiddleware_AdminRedirectsToSignIn(t *testing.T) {
	var seen http.Request
	h := newHandler(&auth.Session{UserID: "u9", Role: auth.RoleCustomer}, &seen)

	req := httptest.NewRequest(http.MethodGet, "http://example.com/admin", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusTemporaryRedirect {
		t.Fatalf("status = %d, want 307", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/signin?callbackUrl=%2Fadmin" {
		t.Fatalf("location = %q", loc)
	}
}

func TestMiddleware_SessionOnContext(t *testing.T) {
	var seen http.Request
	h := newHandler(&auth.Session{UserID: "u1", Role: auth.RoleStaff}, &seen)

	req := httptest.NewRequest(http.MethodGet, "http://example.com/admin/products", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	s, ok := auth.FromContext(seen.Context())
	if !ok || s.UserID != "u1" {
		t.Fatalf("session on context = %+v, %v", s, ok)
	}
}

func TestMiddleware_MissingHost(t *testing.T) {
	var seen http.Request
	h := newHandler(nil, &seen)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = ""
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK || seen.URL.Path != "/storefront" {
		t.Fatalf("status=%d path=%q, want rewrite to /storefront", rr.Code, seen.URL.Path)
	}
}
