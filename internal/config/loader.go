// internal/config/loader.go
//
// Configuration loader.
//
/*
Context
--------
`Load()` builds one immutable `Config` struct from built-in defaults plus
three layers (highest precedence last):

  1. Optional `<root>/conf/.env`.
  2. Optional `<root>/conf/global.yaml`.
  3. Environment variables prefixed `SHOP_`, where `__` maps to “.”
     (e.g., `SHOP_HTTP__LISTEN_ADDR → http.listen_addr`).

Secret references (`vault:<mount>/<path>#<key>`) anywhere in the merged
tree are resolved through the SecretOpener before unmarshalling.  The
result is validated and cached in an `atomic.Pointer` for lock-free reads.
`Reload()` repeats the whole pass; cmd/web triggers it on SIGHUP.

Instrumentation
---------------
  • DEBUG – root discovery, YAML read.
  • ERROR – YAML parse, env overlay, secret, unmarshal, validation failures.
  • INFO  – final “config loaded” with key highlights.
  • Logs use `zap.S()` so early boot issues reach the bootstrap console.
*/
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

// EnvPrefix marks environment overrides.
const EnvPrefix = "SHOP_"

// SecretPrefix marks a value that lives in Vault.
const SecretPrefix = "vault:"

// SecretResolver turns a vault: reference into its value.
type SecretResolver interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

// SecretOpener builds a resolver from the merged vault section once Load
// knows Vault is enabled.
type SecretOpener func(ctx context.Context, v Vault) (SecretResolver, error)

var (
	current    atomic.Pointer[Config]
	lastOpener atomic.Pointer[SecretOpener]
)

var defaults = map[string]any{
	"http.listen_addr":   ":8080",
	"http.read_timeout":  "15s",
	"http.write_timeout": "30s",
	"http.idle_timeout":  "120s",
	"database.driver":    "mysql",
	"database.max_open":  15,
	"database.max_idle":  5,
	"session.issuer":     "shopfront",
	"session.ttl":        "24h",
	"vault.ttl":          "5m",
	"log.level":          "info",
}

/*──────────────────────────── root discovery ───────────────────────────────*/

// rootDir resolves SHOP_ROOT or climbs directories until a conf/ directory
// holding global.yaml is found.  Falls back to the executable layout.
func rootDir() string {
	if r := os.Getenv(EnvPrefix + "ROOT"); r != "" {
		return r
	}

	wd, _ := os.Getwd()
	dir := wd
	for {
		if _, err := os.Stat(filepath.Join(dir, "conf", "global.yaml")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	exe, _ := os.Executable()
	if filepath.Base(filepath.Dir(exe)) == "bin" {
		return filepath.Dir(filepath.Dir(exe))
	}
	return wd
}

/*─────────────────────────────── loader ───────────────────────────────────*/

// Load merges every layer, resolves secrets, validates, and caches Config.
// open may be nil when no vault: references are expected.
func Load(ctx context.Context, open SecretOpener) (*Config, error) {
	root := rootDir()
	zap.S().Debugw("config root resolved", "root", root)

	_ = godotenv.Load(filepath.Join(root, "conf", ".env"))

	k := koanf.New(".")
	for key, val := range defaults {
		_ = k.Set(key, val)
	}

	yamlPath := filepath.Join(root, "conf", "global.yaml")
	if _, err := os.Stat(yamlPath); err == nil {
		if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
			zap.S().Errorw("config yaml load failed", "file", yamlPath, "err", err)
			return nil, err
		}
		zap.S().Debugw("config yaml loaded", "file", yamlPath)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		zap.S().Errorw("config env overlay failed", "err", err)
		return nil, err
	}

	if err := resolveSecrets(ctx, k, open); err != nil {
		zap.S().Errorw("config secret resolution failed", "err", err)
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		zap.S().Errorw("config unmarshal failed", "err", err)
		return nil, err
	}

	cfg.Paths.Root = root
	if err := validateStruct(&cfg); err != nil {
		zap.S().Errorw("config validation failed", "err", err)
		return nil, err
	}

	current.Store(&cfg)
	lastOpener.Store(&open)
	zap.S().Infow("config loaded",
		"listen_addr", cfg.HTTP.ListenAddr,
		"metrics_addr", cfg.HTTP.MetricsAddr,
		"force_https", cfg.HTTP.ForceHTTPS,
		"db_driver", cfg.Database.Driver,
		"vault", cfg.Vault.Enabled,
		"root", cfg.Paths.Root,
	)
	return &cfg, nil
}

// envKey maps SHOP_HTTP__LISTEN_ADDR to http.listen_addr.
func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	return strings.ToLower(strings.ReplaceAll(s, "__", "."))
}

// resolveSecrets swaps every vault: string in k for its secret.
func resolveSecrets(ctx context.Context, k *koanf.Koanf, open SecretOpener) error {
	var refs []string
	for key, val := range k.All() {
		if s, ok := val.(string); ok && strings.HasPrefix(s, SecretPrefix) {
			refs = append(refs, key)
		}
	}
	if len(refs) == 0 {
		return nil
	}
	sort.Strings(refs)

	if !k.Bool("vault.enabled") {
		return fmt.Errorf("%s holds a vault reference but vault.enabled is false", refs[0])
	}
	if open == nil {
		return errors.New("vault references present but no secret opener supplied")
	}

	var vs Vault
	if err := k.Unmarshal("vault", &vs); err != nil {
		return fmt.Errorf("vault section: %w", err)
	}
	sec, err := open(ctx, vs)
	if err != nil {
		return fmt.Errorf("open secrets: %w", err)
	}
	for _, key := range refs {
		val, err := sec.Resolve(ctx, k.String(key))
		if err != nil {
			return fmt.Errorf("resolve %s: %w", key, err)
		}
		if err := k.Set(key, val); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
	}
	zap.S().Debugw("config secrets resolved", "count", len(refs))
	return nil
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

// Get returns the most recently loaded Config, or nil before Load.
func Get() *Config { return current.Load() }

// Reload runs Load again with the opener of the previous successful load.
// On failure the previous Config stays current.
func Reload(ctx context.Context) (*Config, error) {
	var open SecretOpener
	if p := lastOpener.Load(); p != nil {
		open = *p
	}
	return Load(ctx, open)
}
