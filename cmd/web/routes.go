package main

import (
	"context"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/yanizio/shopfront/internal/config"
	"github.com/yanizio/shopfront/internal/router"
)

// newRootHandler mounts the storefront at the rewrite prefix and the
// platform routes at "/", behind the host router.
func newRootHandler(front, platform http.Handler, opts router.Options) http.Handler {
	mux := chi.NewRouter()
	mux.Use(chimw.RequestID, chimw.RealIP, chimw.Recoverer)
	mux.Mount(router.StorefrontPrefix, front)
	mux.Mount("/", platform)
	return router.Middleware(opts)(mux)
}

// watchReload reloads config on every signal until ctx ends.  apply sees
// each config that loads and validates; a failed reload keeps the old one.
func watchReload(ctx context.Context, sig <-chan os.Signal, apply func(*config.Config)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sig:
			cfg, err := config.Reload(ctx)
			if err != nil {
				zap.S().Errorw("config reload failed, keeping previous", "err", err)
				continue
			}
			apply(cfg)
		}
	}
}
