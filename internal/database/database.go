// Package database centralises sqlx connection helpers.  Two drivers are
// registered: go-sql-driver/mysql ("mysql", also MariaDB) and the pgx
// stdlib adapter ("pgx", PostgreSQL).  Repositories write “?” placeholders
// and call db.Rebind, so either driver works without query changes.
//
// Public entry points:
//
//	Open(ctx, cfg.Database)            – pool from config, password spliced.
//	OpenWithOptions(ctx, driver, dsn, maxOpen, maxIdle)
//
// Both helpers Ping the database before returning so callers can fail fast
// during bootstrap.  Callers should Close() the returned *sqlx.DB.
package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/yanizio/shopfront/internal/config"
)

// Open builds the pool described by c.  Zero pool sizes fall back to
// 15 open and 5 idle.
func Open(ctx context.Context, c config.Database) (*sqlx.DB, error) {
	maxOpen, maxIdle := c.MaxOpen, c.MaxIdle
	if maxOpen == 0 {
		maxOpen = 15
	}
	if maxIdle == 0 {
		maxIdle = 5
	}
	return OpenWithOptions(ctx, c.Driver, DSN(c), maxOpen, maxIdle)
}

// DSN fills the template's %s slot with the password, if there is one.
func DSN(c config.Database) string {
	if strings.Contains(c.DSN, "%s") {
		return fmt.Sprintf(c.DSN, c.Password)
	}
	return c.DSN
}

// OpenWithOptions lets callers pick the driver and tune pool sizes.
func OpenWithOptions(ctx context.Context, driver, dsn string, maxOpen, maxIdle int) (*sqlx.DB, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, nil
}
