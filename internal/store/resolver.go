// internal/store/resolver.go
//
// Host → store resolution.
//
// Context
// -------
// A store is reachable by its custom domain or by its slug.  FindByHost
// walks an ordered chain of lookups and stops at the first hit:
//
//  1. custom_domain = host
//  2. slug          = host
//
// The order decides which store wins when one store's custom domain equals
// another store's slug, so the chain is strictly sequential.  Do not fan
// these queries out concurrently.
//
// Notes
// -----
//   - No normalisation happens here.  Callers pass an already-normalised
//     host or an already-extracted slug.
//   - No caching, retries, or timeouts.  Errors propagate to the caller,
//     which maps them to a not-found response.
package store

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/yanizio/shopfront/internal/metrics"
)

// Finder is the persistence collaborator consumed by Resolver.  Both methods
// return ErrNotFound on no match.
type Finder interface {
	ByCustomDomain(ctx context.Context, domain string) (*Record, error)
	BySlug(ctx context.Context, slug string) (*Record, error)
}

// Lookup is one named step in the resolution chain.
type Lookup struct {
	Name string
	Find func(ctx context.Context, key string) (*Record, error)
}

// Resolver tries its lookups in order.
type Resolver struct {
	chain []Lookup
}

// NewResolver builds the canonical chain: custom domain first, slug second.
func NewResolver(f Finder) *Resolver {
	return &Resolver{chain: []Lookup{
		{Name: "custom_domain", Find: f.ByCustomDomain},
		{Name: "slug", Find: f.BySlug},
	}}
}

// FindByHost returns the first store any lookup yields for host.  It returns
// ErrNotFound when every lookup misses, or the first non-ErrNotFound error.
func (r *Resolver) FindByHost(ctx context.Context, host string) (*Record, error) {
	for _, l := range r.chain {
		rec, err := l.Find(ctx, host)
		switch {
		case err == nil && rec != nil:
			metrics.StoreLookupTotal.WithLabelValues(l.Name, "hit").Inc()
			return rec, nil
		case err == nil, errors.Is(err, ErrNotFound):
			metrics.StoreLookupTotal.WithLabelValues(l.Name, "miss").Inc()
		default:
			metrics.StoreLookupTotal.WithLabelValues(l.Name, "error").Inc()
			zap.L().Warn("store lookup failed",
				zap.String("strategy", l.Name),
				zap.String("key", host),
				zap.Error(err))
			return nil, err
		}
	}
	return nil, ErrNotFound
}
