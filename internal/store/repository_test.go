// internal/store/repository_test.go
//
// Unit-tests for the store query helpers using sqlmock.
//
// Run: go test ./internal/store -v

package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

var storeCols = []string{
	"id", "slug", "custom_domain", "name",
	"suspended_at", "deleted_at", "created_at", "updated_at",
}

func newMockRepo(t *testing.T, driver string) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRepository(sqlx.NewDb(db, driver)), mock
}

func TestByCustomDomain(t *testing.T) {
	repo, mock := newMockRepo(t, "mysql")
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE custom_domain = ? AND suspended_at IS NULL`)).
		WithArgs("mystore.com").
		WillReturnRows(sqlmock.NewRows(storeCols).
			AddRow("s1", "mystore", "mystore.com", "My Store", nil, nil, now, now))

	rec, err := repo.ByCustomDomain(context.Background(), "mystore.com")
	if err != nil {
		t.Fatalf("ByCustomDomain error: %v", err)
	}
	if rec.ID != "s1" || rec.CustomDomain == nil || *rec.CustomDomain != "mystore.com" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestBySlug_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t, "mysql")

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE slug = ?`)).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(storeCols))

	_, err := repo.BySlug(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestBySlug_NullCustomDomain(t *testing.T) {
	repo, mock := newMockRepo(t, "mysql")
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE slug = ?`)).
		WithArgs("my-shop").
		WillReturnRows(sqlmock.NewRows(storeCols).
			AddRow("s2", "my-shop", nil, "", nil, nil, now, now))

	rec, err := repo.BySlug(context.Background(), "my-shop")
	if err != nil {
		t.Fatalf("BySlug error: %v", err)
	}
	if rec.CustomDomain != nil {
		t.Fatalf("custom domain = %q, want nil", *rec.CustomDomain)
	}
}

func TestBySlug_DriverError(t *testing.T) {
	repo, mock := newMockRepo(t, "mysql")
	boom := errors.New("bad connection")

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE slug = ?`)).
		WithArgs("x").
		WillReturnError(boom)

	_, err := repo.BySlug(context.Background(), "x")
	if !errors.Is(err, boom) || errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want wrapped driver error", err)
	}
}

func TestByCustomDomain_PostgresBindvars(t *testing.T) {
	repo, mock := newMockRepo(t, "pgx")
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE custom_domain = $1`)).
		WithArgs("mystore.com").
		WillReturnRows(sqlmock.NewRows(storeCols).
			AddRow("s1", "mystore", "mystore.com", "", nil, nil, now, now))

	if _, err := repo.ByCustomDomain(context.Background(), "mystore.com"); err != nil {
		t.Fatalf("ByCustomDomain error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestAllActive(t *testing.T) {
	repo, mock := newMockRepo(t, "mysql")
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY slug`)).
		WillReturnRows(sqlmock.NewRows(storeCols).
			AddRow("s1", "alpha", nil, "Alpha", nil, nil, now, now).
			AddRow("s2", "beta", "beta.shop", "Beta", nil, nil, now, now))

	got, err := repo.AllActive(context.Background())
	if err != nil {
		t.Fatalf("AllActive error: %v", err)
	}
	if len(got) != 2 || got[0].Slug != "alpha" || got[1].Slug != "beta" {
		t.Fatalf("unexpected result: %#v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}
