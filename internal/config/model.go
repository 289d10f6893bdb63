// internal/config/model.go
//
// Typed configuration model for shopfront.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                          – dotenv values,
//   • `conf/global.yaml`                       – optional static file,
//   • `SHOP_`-prefixed environment overrides   – highest precedence.
//
// String values of the form `vault:<mount>/<path>#<key>` are swapped for
// the secret before unmarshalling, so the model only ever holds plain
// strings.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`.
//   • The platform base domain is deliberately absent.  It is read from the
//     process environment on every request by internal/tenant.
//   • `Paths` is filled at runtime; YAML must not try to set it.

package config

import "time"

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr   string        `koanf:"listen_addr"   validate:"required,hostname_port"`
	MetricsAddr  string        `koanf:"metrics_addr"  validate:"omitempty,hostname_port"`
	ForceHTTPS   bool          `koanf:"force_https"`
	ReadTimeout  time.Duration `koanf:"read_timeout"  validate:"gte=0"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"gte=0"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"  validate:"gte=0"`
}

//
// Database section
//

// Database selects the driver and connection string.
//
// `DSN` may carry one `%s` verb; `Password` (usually a vault: reference)
// is spliced into it at open time so credentials stay out of YAML.
type Database struct {
	Driver   string `koanf:"driver"   validate:"required,oneof=mysql pgx"`
	DSN      string `koanf:"dsn"      validate:"required,dsn_template"`
	Password string `koanf:"password"`
	MaxOpen  int    `koanf:"max_open" validate:"gte=0"`
	MaxIdle  int    `koanf:"max_idle" validate:"gte=0"`
}

//
// Session section
//

// Session configures the signed session token.
type Session struct {
	Secret string        `koanf:"secret" validate:"required,min=32"`
	Issuer string        `koanf:"issuer" validate:"required"`
	TTL    time.Duration `koanf:"ttl"    validate:"gt=0"`
}

//
// Vault section
//

// Vault toggles secret resolution.  Address and token come from the
// standard VAULT_ADDR and VAULT_TOKEN variables.
type Vault struct {
	Enabled bool          `koanf:"enabled"`
	TTL     time.Duration `koanf:"ttl" validate:"gte=0"`
}

//
// Log section
//

// Log sets the minimum level written by internal/logger.
type Log struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime.
type Paths struct {
	Root string // SHOP_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Database Database `koanf:"database"`
	Session  Session  `koanf:"session"`
	Vault    Vault    `koanf:"vault"`
	Log      Log      `koanf:"log"`
	Paths    Paths    `koanf:"-"`
}
