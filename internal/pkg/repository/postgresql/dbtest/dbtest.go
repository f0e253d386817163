// Package dbtest opens migrated in-memory databases for repository and
// router tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"staffattendance/backend/internal/auth"
	"staffattendance/backend/internal/commands"
	"staffattendance/backend/internal/pkg/repository/postgresql"
)

// NewDatabase returns a fresh, migrated sqlite database that is closed when
// the test ends.
func NewDatabase(t *testing.T) *postgresql.Database {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_fk=1"
	db, err := postgresql.NewSQLite(dsn, false)
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := commands.MigrateUP(context.Background(), db); err != nil {
		t.Fatalf("migrating database: %v", err)
	}

	return db
}

// Admin is a context carrying admin claims.
func Admin() context.Context {
	return As(auth.RoleAdmin, "")
}

// As returns a context carrying claims for role, linked to staffID.
func As(role, staffID string) context.Context {
	return auth.WithClaims(context.Background(), auth.Claims{
		UserId:   1,
		Username: role,
		Role:     role,
		StaffID:  staffID,
	})
}
