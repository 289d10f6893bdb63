// internal/store/repository.go
//
// Store-table query helpers.
//
// Context
// -------
// These functions give read-only access to the **store** table:
//
//   - ByCustomDomain – first step of host resolution.
//   - BySlug         – second step of host resolution.
//   - ByID           – admin API (current-store selection).
//   - AllActive      – super-admin listings.
//
// Workflow
// --------
//  1. Callers supply a *sqlx.DB already connected to the platform database.
//  2. Each helper executes exactly one parameterised SELECT.
//  3. Queries are written with “?” and rebound for the active driver, so the
//     same text serves MySQL and PostgreSQL (pgx).
//  4. sql.ErrNoRows becomes ErrNotFound; other errors are wrapped.
//
// Notes
// -----
//   - Column list matches the fields in Record; update both together.
//   - Host lookups skip suspended and deleted rows at SQL level.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when no active store matches a lookup.
var ErrNotFound = errors.New("store not found")

const selectColumns = `
        SELECT id, slug, custom_domain, name,
               suspended_at, deleted_at, created_at, updated_at
        FROM   store`

// Repository is the sqlx-backed persistence collaborator.
type Repository struct {
	db *sqlx.DB
}

// NewRepository wraps db.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// ByCustomDomain returns the first active store whose custom_domain equals
// domain.
func (r *Repository) ByCustomDomain(ctx context.Context, domain string) (*Record, error) {
	const q = selectColumns + `
        WHERE  custom_domain = ?
          AND  suspended_at IS NULL
          AND  deleted_at   IS NULL
        LIMIT  1`
	return r.get(ctx, q, domain)
}

// BySlug returns the active store whose slug equals slug.
func (r *Repository) BySlug(ctx context.Context, slug string) (*Record, error) {
	const q = selectColumns + `
        WHERE  slug = ?
          AND  suspended_at IS NULL
          AND  deleted_at   IS NULL
        LIMIT  1`
	return r.get(ctx, q, slug)
}

// ByID returns a store by primary key, including suspended rows.  Deleted
// rows are hidden.
func (r *Repository) ByID(ctx context.Context, id string) (*Record, error) {
	const q = selectColumns + `
        WHERE  id = ?
          AND  deleted_at IS NULL
        LIMIT  1`
	return r.get(ctx, q, id)
}

// AllActive returns every store that is neither suspended nor deleted,
// ordered by slug.
func (r *Repository) AllActive(ctx context.Context) ([]Record, error) {
	const q = selectColumns + `
        WHERE  suspended_at IS NULL
          AND  deleted_at   IS NULL
        ORDER  BY slug`
	rows := make([]Record, 0, 16)
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(q)); err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	return rows, nil
}

func (r *Repository) get(ctx context.Context, q string, arg any) (*Record, error) {
	var rec Record
	if err := r.db.GetContext(ctx, &rec, r.db.Rebind(q), arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query store %q: %w", arg, err)
	}
	return &rec, nil
}
