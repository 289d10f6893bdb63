// internal/tenant/basedomain.go
//
// Platform base-domain resolution.
//
// Context
// -------
// Tenant subdomains are minted under one root domain (e.g. “example.com”).
// The value comes from two settings, highest precedence first:
//
//  1. PLATFORM_BASE_DOMAIN         – server only.
//  2. PUBLIC_PLATFORM_BASE_DOMAIN  – mirror exposed to browser bundles.
//
// When neither is set the platform runs on “localhost”.  Operators often
// paste a full origin, so a leading scheme and a trailing port are removed.
//
// Notes
// -----
//   - BaseDomain reads its Env on every call; MemoBaseDomain pins the value
//     once per boot for the request path.
//   - Env is an interface so tests never touch process state.
package tenant

import (
	"os"
	"strings"
	"sync"
)

// Setting names consulted by BaseDomain.
const (
	EnvBaseDomain       = "PLATFORM_BASE_DOMAIN"
	EnvPublicBaseDomain = "PUBLIC_PLATFORM_BASE_DOMAIN"
	DefaultBaseDomain   = "localhost"
)

// Env is the configuration source consulted for the base domain.
type Env interface {
	Getenv(key string) string
}

// OSEnv binds Env to the process environment.
type OSEnv struct{}

func (OSEnv) Getenv(key string) string { return os.Getenv(key) }

// MapEnv is a fixed Env, handy for tests and tooling.
type MapEnv map[string]string

func (m MapEnv) Getenv(key string) string { return m[key] }

// BaseDomain resolves the platform root domain from env.
func BaseDomain(env Env) string {
	raw := env.Getenv(EnvBaseDomain)
	if raw == "" {
		raw = env.Getenv(EnvPublicBaseDomain)
	}
	if raw == "" {
		return DefaultBaseDomain
	}
	return cleanDomain(raw)
}

// MemoBaseDomain returns a func that resolves BaseDomain(env) on first use
// and serves the cached value afterwards.
func MemoBaseDomain(env Env) func() string {
	var (
		once sync.Once
		base string
	)
	return func() string {
		once.Do(func() { base = BaseDomain(env) })
		return base
	}
}

// cleanDomain drops an http(s) scheme and a trailing :port.
func cleanDomain(s string) string {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "https://"):
		s = strings.TrimPrefix(s, "https://")
	case strings.HasPrefix(s, "http://"):
		s = strings.TrimPrefix(s, "http://")
	}
	return stripPort(s)
}
