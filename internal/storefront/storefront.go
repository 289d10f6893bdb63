// internal/storefront/storefront.go
//
// Storefront renderer, the target of host rewrites.
//
// Context
// -------
// The router rewrites tenant traffic to /storefront/<path>.  This handler
// works out which store the request belongs to and renders it:
//
//  1. Tenant subdomain → slug lookup on the extracted slug only.
//  2. Any other host → store.Resolver.FindByHost(normalised host): custom
//     domain first, slug second.
//  3. No match, a nil record, or a persistence error → 404.
//
// Concurrent requests for the same key share one lookup through
// singleflight; slug and host keys never share a flight.  Nothing is cached
// between requests.
//
// Notes
// -----
//   - Preview mode is on when the request carries sf_preview=1, or when the
//     current request's ?preview=… just turned it on.
package storefront

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/yanizio/shopfront/internal/metrics"
	"github.com/yanizio/shopfront/internal/router"
	"github.com/yanizio/shopfront/internal/store"
	"github.com/yanizio/shopfront/internal/tenant"
)

// SlugFinder looks a store up by its slug.
type SlugFinder interface {
	BySlug(ctx context.Context, slug string) (*store.Record, error)
}

// HostResolver finds the store for a full host.
type HostResolver interface {
	FindByHost(ctx context.Context, host string) (*store.Record, error)
}

// Handler renders storefront pages.
type Handler struct {
	slugs      SlugFinder
	hosts      HostResolver
	baseDomain func() string
	sfg        singleflight.Group
	tpl        *template.Template
}

// New returns a Handler that resolves subdomains through slugs and every
// other host through hosts.
func New(slugs SlugFinder, hosts HostResolver, baseDomain func() string) *Handler {
	return &Handler{
		slugs:      slugs,
		hosts:      hosts,
		baseDomain: baseDomain,
		tpl:        pageTemplate,
	}
}

// Routes mounts the renderer; callers attach it at router.StorefrontPrefix.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.serve)
	r.Get("/*", h.serve)
	return r
}

// LookupKey returns the key the storefront resolves host by.  bySlug is
// true when host is a tenant subdomain and key is its slug; otherwise key is
// the normalised host.
func LookupKey(host, base string) (key string, bySlug bool) {
	if slug, ok := tenant.ExtractSlug(host, base); ok {
		return slug, true
	}
	return tenant.NormalizeHost(host), false
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request) {
	key, bySlug := LookupKey(r.Host, h.baseDomain())
	if key == "" {
		h.notFound(w, r, key)
		return
	}

	rec, err := h.find(r.Context(), key, bySlug)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			zap.L().Error("storefront lookup", zap.String("key", key), zap.Error(err))
		}
		h.notFound(w, r, key)
		return
	}

	data := page{
		Store:   rec.Identity(),
		Name:    rec.Name,
		Path:    subPath(r.URL.Path),
		Preview: previewOn(r),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tpl.Execute(w, data); err != nil {
		zap.L().Error("storefront render", zap.String("store", rec.ID), zap.Error(err))
	}
}

func (h *Handler) find(ctx context.Context, key string, bySlug bool) (*store.Record, error) {
	// The shared lookup must outlive whichever caller started it.
	ctx = context.WithoutCancel(ctx)

	flight, lookup := "host:"+key, h.hosts.FindByHost
	if bySlug {
		flight, lookup = "slug:"+key, h.bySlug
	}
	v, err, _ := h.sfg.Do(flight, func() (any, error) {
		return lookup(ctx, key)
	})
	if err != nil {
		return nil, err
	}
	rec, _ := v.(*store.Record)
	if rec == nil {
		return nil, store.ErrNotFound
	}
	return rec, nil
}

func (h *Handler) bySlug(ctx context.Context, slug string) (*store.Record, error) {
	rec, err := h.slugs.BySlug(ctx, slug)
	switch {
	case err == nil && rec != nil:
		metrics.StoreLookupTotal.WithLabelValues("slug", "hit").Inc()
	case err == nil, errors.Is(err, store.ErrNotFound):
		metrics.StoreLookupTotal.WithLabelValues("slug", "miss").Inc()
	default:
		metrics.StoreLookupTotal.WithLabelValues("slug", "error").Inc()
	}
	return rec, err
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request, key string) {
	metrics.StorefrontNotFoundTotal.Inc()
	zap.L().Debug("storefront not found", zap.String("host", r.Host), zap.String("key", key))
	http.NotFound(w, r)
}

// subPath strips the rewrite prefix so templates see the visitor's path.
func subPath(p string) string {
	p = strings.TrimPrefix(p, router.StorefrontPrefix)
	if p == "" {
		return "/"
	}
	return p
}

func previewOn(r *http.Request) bool {
	if c := router.PreviewCookie(r.URL.RawQuery); c != nil {
		return c.Value == "1"
	}
	return router.PreviewEnabled(r)
}

type page struct {
	Store   store.Identity
	Name    string
	Path    string
	Preview bool
}

var pageTemplate = template.Must(template.New("storefront").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{ if .Name }}{{ .Name }}{{ else }}{{ .Store.Slug }}{{ end }}</title>
</head>
<body data-store-id="{{ .Store.ID }}" data-path="{{ .Path }}">
{{ if .Preview }}<div class="preview-banner">Preview mode: showing unpublished changes.</div>{{ end }}
<main>
<h1>{{ if .Name }}{{ .Name }}{{ else }}{{ .Store.Slug }}{{ end }}</h1>
</main>
</body>
</html>
`))
