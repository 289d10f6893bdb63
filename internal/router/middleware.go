// internal/router/middleware.go
//
// net/http adapter around Decide.
//
// Workflow
// --------
//  1. Read the session once and attach it to the request context.
//  2. Build Input from the request and run Decide.
//  3. Denials: write JSON (API) or a redirect (pages) and stop.
//  4. Otherwise set cookie ops, rewrite the URL when asked, and call next.
//
// The handler never panics on odd input: an empty Host is a valid Input.
package router

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/yanizio/shopfront/internal/auth"
	"github.com/yanizio/shopfront/internal/metrics"
)

// SessionReader decodes the caller's session, or nil when signed out.
type SessionReader interface {
	Read(r *http.Request) *auth.Session
}

// Options wires the middleware's collaborators.
type Options struct {
	BaseDomain func() string // usually tenant.MemoBaseDomain(tenant.OSEnv{})
	Sessions   SessionReader
}

// Middleware returns the host-routing middleware.
func Middleware(opts Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sess *auth.Session
			if opts.Sessions != nil {
				sess = opts.Sessions.Read(r)
			}
			if sess != nil {
				r = r.WithContext(auth.WithSession(r.Context(), sess))
			}

			d := Decide(Input{
				Host:       r.Host,
				Path:       r.URL.Path,
				RawQuery:   r.URL.RawQuery,
				RequestURI: r.URL.RequestURI(),
				BaseDomain: opts.BaseDomain(),
				Session:    sess,
			})
			record(r, d)

			switch d.Outcome {
			case OutcomeForbidden, OutcomeUnauthorized:
				writeJSONError(w, d.Status, d.Error)
				return
			case OutcomeSignIn:
				http.Redirect(w, r, d.Location, d.Status)
				return
			}

			for _, c := range d.Cookies {
				http.SetCookie(w, c)
			}
			if d.Outcome == OutcomeRewrite {
				r = rewrite(r, d.RewritePath)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// rewrite returns a shallow copy of r routed to path.  The query string is
// left untouched.
func rewrite(r *http.Request, path string) *http.Request {
	r2 := r.WithContext(r.Context())
	u := *r.URL
	if u.RawPath != "" {
		u.RawPath = StorefrontPath(u.RawPath)
	}
	u.Path = path
	r2.URL = &u
	r2.RequestURI = u.RequestURI()
	return r2
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func record(r *http.Request, d Decision) {
	metrics.RouterDecisionsTotal.WithLabelValues(d.Outcome.String()).Inc()
	if !d.Platform {
		metrics.HostKindTotal.WithLabelValues(d.Host.Kind.String()).Inc()
	}
	for _, c := range d.Cookies {
		action := "set"
		if c.MaxAge < 0 {
			action = "clear"
		}
		metrics.PreviewCookieTotal.WithLabelValues(action).Inc()
	}

	if ce := zap.L().Check(zap.DebugLevel, "route decision"); ce != nil {
		ce.Write(
			zap.String("host", r.Host),
			zap.String("path", r.URL.Path),
			zap.String("outcome", d.Outcome.String()),
			zap.String("kind", d.Host.Kind.String()),
			zap.String("slug", d.Host.Slug),
			zap.String("rewrite", d.RewritePath),
		)
	}
}
