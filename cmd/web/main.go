// cmd/web/main.go
//
// shopfront – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load env vars (host-wide file → .env fallback).
//
//  2. Load config (defaults → conf/global.yaml → SHOP_ env), resolving
//     vault: references through the Vault client when enabled.
//
//  3. Start the daily rotating logger and, when an OTLP endpoint is set,
//     the trace exporter.
//
//  4. Open the platform database (mysql or pgx).
//
//  5. Build the request pipeline:
//
//     otelhttp → Security → ForceHTTPS → host router → chi mux
//                                             │
//               /storefront/*  ← rewritten tenant traffic
//               /admin, /api/*, /signin  ← platform routes
//
//  6. Serve the app and the Prometheus listener until SIGINT or SIGTERM.
//     SIGHUP reloads config; only the log level applies without a restart.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/yanizio/shopfront/internal/acl"
	"github.com/yanizio/shopfront/internal/admin"
	"github.com/yanizio/shopfront/internal/auth"
	"github.com/yanizio/shopfront/internal/config"
	"github.com/yanizio/shopfront/internal/database"
	"github.com/yanizio/shopfront/internal/logger"
	"github.com/yanizio/shopfront/internal/middleware"
	"github.com/yanizio/shopfront/internal/router"
	"github.com/yanizio/shopfront/internal/server"
	"github.com/yanizio/shopfront/internal/session"
	"github.com/yanizio/shopfront/internal/store"
	"github.com/yanizio/shopfront/internal/storefront"
	"github.com/yanizio/shopfront/internal/tenant"
	"github.com/yanizio/shopfront/internal/tracing"
	"github.com/yanizio/shopfront/internal/vault"
)

const serverEnvPath = "/usr/local/etc/shopfront/global.env"

// loadEnv prefers the host-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

func init() { loadEnv() }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Console logger until config tells us where the file logger lives.
	boot, _ := zap.NewDevelopment()
	zap.ReplaceGlobals(boot)

	//
	// ── 1.  Config + secrets ─────────────────────────────────────────────
	//
	cfg, err := config.Load(ctx, func(ctx context.Context, v config.Vault) (config.SecretResolver, error) {
		return vault.New(ctx, v.TTL)
	})
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logOut, err := logger.New(cfg.Paths.Root, logger.RunningInTTY(), cfg.Log.Level)
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer logOut.Sync()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go watchReload(ctx, hup, func(next *config.Config) {
		if err := logger.SetLevel(next.Log.Level); err != nil {
			logOut.Warnw("log level not applied", "level", next.Log.Level, "err", err)
		}
		logOut.Infow("config reloaded", "log_level", next.Log.Level)
	})

	shutdownTracing, err := tracing.Setup(ctx, "shopfront")
	if err != nil {
		logOut.Warnw("tracing setup failed, continuing without export", "err", err)
	}
	defer shutdownTracing(context.WithoutCancel(ctx))

	//
	// ── 2.  Platform DB ──────────────────────────────────────────────────
	//
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		logOut.Fatalw("connect platform DB", "driver", cfg.Database.Driver, "err", err)
	}
	defer db.Close()

	repo := store.NewRepository(db)
	if active, err := repo.AllActive(ctx); err == nil {
		logOut.Infow("platform DB online", "active_stores", len(active))
	} else {
		logOut.Warnw("platform DB online, store count failed", "err", err)
	}

	//
	// ── 3.  Identity ─────────────────────────────────────────────────────
	//
	tokens, err := auth.NewHS256Service(cfg.Session.Secret, cfg.Session.Issuer, cfg.Session.TTL)
	if err != nil {
		logOut.Fatalw("session tokens", "err", err)
	}
	baseDomain := tenant.MemoBaseDomain(tenant.OSEnv{})
	logOut.Infow("platform base domain", "base", baseDomain())

	//
	// ── 4.  Routes ───────────────────────────────────────────────────────
	//
	front := storefront.New(repo, store.NewResolver(repo), baseDomain)
	platform := &admin.Handler{
		Stores: repo,
		CanManage: func(ctx context.Context, sess *auth.Session, storeID string) (bool, error) {
			return acl.CanManageStore(ctx, db, sess, storeID)
		},
		MemberOf: func(ctx context.Context, userID string) ([]string, error) {
			return acl.MemberStores(ctx, db, userID)
		},
	}

	root := newRootHandler(front.Routes(), platform.Routes(), router.Options{
		BaseDomain: baseDomain,
		Sessions:   session.Reader{Tokens: tokens},
	})
	root = middleware.ForceHTTPS(cfg.HTTP.ForceHTTPS)(root)
	root = middleware.Security(root)
	root = otelhttp.NewHandler(root, "shopfront")

	//
	// ── 5.  Serve ────────────────────────────────────────────────────────
	//
	servers := []*http.Server{server.New(cfg.HTTP.ListenAddr, cfg.HTTP, root)}
	if cfg.HTTP.MetricsAddr != "" {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())
		servers = append(servers, server.New(cfg.HTTP.MetricsAddr, cfg.HTTP, metricsMux))
	}

	if err := server.Run(ctx, servers...); err != nil {
		logOut.Fatalw("http server", "err", err)
	}
}
