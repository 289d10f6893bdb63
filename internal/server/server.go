// internal/server/server.go
//
// HTTP server helpers with hardened timeouts and graceful shutdown.
//
//   • ReadTimeout   – abort slow-loris headers
//   • WriteTimeout  – cap total response time
//   • IdleTimeout   – close keep-alives on idle clients
//
// Zero values in config fall back to 10 s, 15 s, and 60 s.

package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yanizio/shopfront/internal/config"
)

const (
	defaultRead     = 10 * time.Second
	defaultWrite    = 15 * time.Second
	defaultIdle     = 60 * time.Second
	shutdownTimeout = 20 * time.Second
)

// New constructs an *http.Server for addr using the timeouts in c.
func New(addr string, c config.HTTP, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: orDefault(c.ReadTimeout, defaultRead),
		ReadTimeout:       orDefault(c.ReadTimeout, defaultRead),
		WriteTimeout:      orDefault(c.WriteTimeout, defaultWrite),
		IdleTimeout:       orDefault(c.IdleTimeout, defaultIdle),
	}
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

// Run serves every server until ctx ends or one of them fails, then shuts
// all of them down.
func Run(ctx context.Context, servers ...*http.Server) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, srv := range servers {
		g.Go(func() error {
			zap.S().Infow("listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(sctx); err != nil {
				errs = append(errs, err)
			}
		}
		zap.S().Infow("servers stopped")
		return errors.Join(errs...)
	})

	return g.Wait()
}
