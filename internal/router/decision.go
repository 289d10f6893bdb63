// internal/router/decision.go
//
// Per-request routing decision.
//
// Context
// -------
// Decide is a pure function of (host, path, query, session, base domain).
// It never touches the network or the database, so every branch is unit-
// testable without an HTTP server.  Middleware (middleware.go) applies the
// result to a real request.
//
// Evaluation order
// ----------------
//  1. Platform paths (/admin, /api/, /signin) skip tenant rewriting.
//  2. Other paths: base host → pass; tenant subdomain or custom domain →
//     rewrite to /storefront + path.
//  3. /api/super-admin needs role SUPER_ADMIN (401 signed out, 403 otherwise).
//  4. ?preview=… sets or clears the sf_preview cookie on pass and rewrite.
//  5. /admin needs an admin role; failures redirect to /signin.
//
// Notes
// -----
//   - Denials carry no cookie ops.
//   - Unresolvable tenants are not the router's concern.  The storefront
//     renderer 404s.
package router

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/yanizio/shopfront/internal/auth"
	"github.com/yanizio/shopfront/internal/tenant"
)

const (
	StorefrontPrefix = "/storefront"
	SignInPath       = "/signin"

	superAdminAPIPrefix = "/api/super-admin"
	adminPrefix         = "/admin"
)

// platformPrefixes are served by the platform app, never by a storefront.
var platformPrefixes = []string{adminPrefix, "/api/", SignInPath}

// Outcome is the terminal state of a decision.
type Outcome int

const (
	OutcomePass Outcome = iota
	OutcomeRewrite
	OutcomeForbidden
	OutcomeUnauthorized
	OutcomeSignIn
)

func (o Outcome) String() string {
	switch o {
	case OutcomePass:
		return "pass"
	case OutcomeRewrite:
		return "rewrite"
	case OutcomeForbidden:
		return "forbidden"
	case OutcomeUnauthorized:
		return "unauthorized"
	case OutcomeSignIn:
		return "signin"
	}
	return "unknown"
}

// Input is everything Decide looks at.
type Input struct {
	Host       string        // raw Host header, may be empty
	Path       string        // URL path
	RawQuery   string        // URL query, without “?”
	RequestURI string        // original request URI, used as sign-in callback
	BaseDomain string        // resolved platform base domain
	Session    *auth.Session // nil when signed out
}

// Decision is what Middleware applies.
type Decision struct {
	Outcome     Outcome
	Platform    bool                  // path is a platform path
	Host        tenant.Classification // zero for platform paths
	RewritePath string                // set for OutcomeRewrite
	Cookies     []*http.Cookie        // applied on pass and rewrite only
	Status      int                   // set for denials
	Error       string                // JSON error message for API denials
	Location    string                // set for OutcomeSignIn
}

// Decide runs the routing state machine for one request.
func Decide(in Input) Decision {
	d := Decision{Outcome: OutcomePass, Platform: IsPlatformPath(in.Path)}

	// Tenant rewrite.
	if !d.Platform {
		d.Host = tenant.Classify(in.Host, in.BaseDomain)
		if d.Host.Kind != tenant.KindBase {
			d.Outcome = OutcomeRewrite
			d.RewritePath = StorefrontPath(in.Path)
		}
	}

	// Super-admin API namespace needs the exact role.
	if strings.HasPrefix(in.Path, superAdminAPIPrefix) {
		switch {
		case in.Session == nil:
			return deny(OutcomeUnauthorized, http.StatusUnauthorized, "Unauthorized")
		case !in.Session.HasRole(auth.RoleSuperAdmin):
			return deny(OutcomeForbidden, http.StatusForbidden, "Forbidden")
		}
	}

	// Admin pages need an admin role.  Checked before cookie ops so a
	// redirect never carries them.
	if strings.HasPrefix(in.Path, adminPrefix) && !in.Session.IsAdmin() {
		return Decision{
			Outcome:  OutcomeSignIn,
			Platform: true,
			Status:   http.StatusTemporaryRedirect,
			Location: SignInURL(in.RequestURI),
		}
	}

	// Preview cookie rides on whatever response is being produced.
	if c := PreviewCookie(in.RawQuery); c != nil {
		d.Cookies = append(d.Cookies, c)
	}
	return d
}

// IsPlatformPath reports whether path bypasses tenant rewriting.
func IsPlatformPath(path string) bool {
	for _, p := range platformPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// StorefrontPath maps a tenant path onto the internal render path.  “/”
// becomes “/storefront” with no trailing slash.
func StorefrontPath(path string) string {
	if path == "" || path == "/" {
		return StorefrontPrefix
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return StorefrontPrefix + path
}

// SignInURL builds the sign-in redirect for a denied admin request.
func SignInURL(callback string) string {
	if callback == "" {
		return SignInPath
	}
	return SignInPath + "?callbackUrl=" + url.QueryEscape(callback)
}

func deny(o Outcome, status int, msg string) Decision {
	return Decision{Outcome: o, Platform: true, Status: status, Error: msg}
}
