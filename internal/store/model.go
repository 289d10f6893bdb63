// internal/store/model.go
//
// `store` table row model.
//
// Schema reference
//
//	CREATE TABLE store (
//	    id             VARCHAR(32)   PRIMARY KEY,
//	    slug           VARCHAR(63)   NOT NULL UNIQUE,
//	    custom_domain  VARCHAR(253)  NULL UNIQUE,
//	    name           VARCHAR(256)  NOT NULL DEFAULT '',
//	    suspended_at   TIMESTAMP NULL,
//	    deleted_at     TIMESTAMP NULL,
//	    created_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
//	    updated_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
//	);
//
// Notes
// -----
//   - CustomDomain is nullable; a nil pointer means the store is reachable
//     only through its subdomain.
//   - Pure data model for sqlx scans.  No behaviour beyond Identity.
package store

import "time"

// Record mirrors one row in the `store` table.
type Record struct {
	ID           string     `db:"id"            json:"id"`
	Slug         string     `db:"slug"          json:"slug"`
	CustomDomain *string    `db:"custom_domain" json:"customDomain"`
	Name         string     `db:"name"          json:"name"`
	SuspendedAt  *time.Time `db:"suspended_at"  json:"suspendedAt,omitempty"`
	DeletedAt    *time.Time `db:"deleted_at"    json:"deletedAt,omitempty"`
	CreatedAt    time.Time  `db:"created_at"    json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at"    json:"updatedAt"`
}

// Identity is the projection the routing layer cares about.
type Identity struct {
	ID           string  `json:"id"`
	Slug         string  `json:"slug"`
	CustomDomain *string `json:"customDomain"`
}

// Identity projects r onto {id, slug, customDomain}.
func (r *Record) Identity() Identity {
	return Identity{ID: r.ID, Slug: r.Slug, CustomDomain: r.CustomDomain}
}
