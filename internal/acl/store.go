// internal/acl/store.go
//
// Per-store access checks.
//
// Context
// -------
// Store owners and staff are attached to stores through one table:
//
//	store_member (store_id, user_id, role)
//
// SUPER_ADMIN sees every store and never hits the table.  CUSTOMER never
// manages a store.  Everyone else needs a membership row.
//
// Notes
// -----
//   - Queries use “?” and are rebound for the active driver.
package acl

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/yanizio/shopfront/internal/auth"
)

// CanManageStore reports whether sess may act on storeID in the admin UI.
func CanManageStore(ctx context.Context, db *sqlx.DB, sess *auth.Session, storeID string) (bool, error) {
	switch {
	case sess == nil, storeID == "":
		return false, nil
	case sess.Role == auth.RoleSuperAdmin:
		return true, nil
	case !sess.IsAdmin():
		return false, nil
	}

	const q = `SELECT 1
                 FROM store_member
                WHERE store_id = ? AND user_id = ?
                LIMIT 1`

	var dummy int
	err := db.QueryRowContext(ctx, db.Rebind(q), storeID, sess.UserID).Scan(&dummy)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// MemberStores returns the ids of stores userID belongs to.
func MemberStores(ctx context.Context, db *sqlx.DB, userID string) ([]string, error) {
	const q = `SELECT store_id FROM store_member WHERE user_id = ? ORDER BY store_id`

	ids := make([]string, 0, 4)
	if err := db.SelectContext(ctx, &ids, db.Rebind(q), userID); err != nil {
		return nil, err
	}
	return ids, nil
}
