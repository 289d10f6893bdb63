// internal/config/validator.go
//
// Thin wrapper around go-playground/validator.
//
// Context
// -------
// `Load` calls `validateStruct` right after it unmarshals the merged Koanf
// tree.  Any failure aborts startup so the binary never runs with partial
// configuration.
//
// Custom rules
// ------------
//   dsn_template – the DSN holds at most one `%s` password slot.

package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

//
// validator instance (package-level singleton)
//

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	_ = val.RegisterValidation("dsn_template", func(fl validator.FieldLevel) bool {
		return validDSNTemplate(fl.Field().String())
	})
	return val
}

func validDSNTemplate(dsn string) bool {
	return strings.Count(dsn, "%s") <= 1
}

//
// public API
//

// validateStruct returns the first validation error, or nil on success.
func validateStruct(c *Config) error {
	return v.Struct(c)
}
