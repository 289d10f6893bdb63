// Package middleware holds small, composable HTTP wrappers.
package middleware

import (
	"net/http"
	"strings"

	"github.com/yanizio/shopfront/internal/tenant"
)

// HealthPath is never redirected so plain-HTTP probes keep working.
const HealthPath = "/api/healthz"

// ForceHTTPS returns a wrapper that 308-redirects plain HTTP to the HTTPS
// version of the same URL.  Requests already on TLS (directly or via a
// proxy's X-Forwarded-Proto), requests for localhost, and the health probe
// pass through.  When enabled is false the wrapper is a no-op.
func ForceHTTPS(enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if IsHTTPS(r) || r.URL.Path == HealthPath || isLocal(r.Host) {
				next.ServeHTTP(w, r)
				return
			}
			target := "https://" + r.Host + r.URL.RequestURI()
			http.Redirect(w, r, target, http.StatusPermanentRedirect)
		})
	}
}

// IsHTTPS reports whether the client reached us over TLS.
func IsHTTPS(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

func isLocal(host string) bool {
	h := tenant.NormalizeHost(host)
	return h == "localhost" || strings.HasSuffix(h, ".localhost") || h == "127.0.0.1"
}
