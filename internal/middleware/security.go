// internal/middleware/security.go
//
// Security-header middleware.
//
// Defaults applied to every response:
//
//   • Content-Security-Policy   –  self-only policy
//   • X-Frame-Options           –  click-jacking defence
//   • X-Content-Type-Options    –  MIME-sniffing defence
//   • Referrer-Policy           –  drops path/query from Referer
//   • Permissions-Policy        –  disables powerful features
//   • Strict-Transport-Security –  HTTPS requests only
//
// Notes
// -----
// • Headers are seeded before next runs.  Handlers that need a different
//   value call Header().Set and win.
// • Storefronts on custom domains get the same headers as the platform.

package middleware

import "net/http"

const (
	hsts = "max-age=63072000; includeSubDomains"
	csp  = "default-src 'self'; img-src 'self' data:; object-src 'none'; " +
		"base-uri 'self'; frame-ancestors 'none'"
)

var defaultHeaders = [][2]string{
	{"Content-Security-Policy", csp},
	{"X-Frame-Options", "DENY"},
	{"X-Content-Type-Options", "nosniff"},
	{"Referrer-Policy", "strict-origin-when-cross-origin"},
	{"Permissions-Policy", "geolocation=(), microphone=(), camera=()"},
}

// Security sets security headers for every response.
func Security(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		for _, kv := range defaultHeaders {
			if h.Get(kv[0]) == "" {
				h.Set(kv[0], kv[1])
			}
		}
		if IsHTTPS(r) && h.Get("Strict-Transport-Security") == "" {
			h.Set("Strict-Transport-Security", hsts)
		}
		next.ServeHTTP(w, r)
	})
}
