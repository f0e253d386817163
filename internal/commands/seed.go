package commands

import (
	"context"

	"github.com/pkg/errors"

	"staffattendance/backend/internal/auth"
	"staffattendance/backend/internal/entity"
	"staffattendance/backend/internal/pkg/repository/postgresql"
)

// SeedAdmin creates the first admin login unless the username is taken.
func SeedAdmin(ctx context.Context, db *postgresql.Database, username, password string) error {
	if username == "" || password == "" {
		return errors.New("seed admin: username and password are required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = db.NewInsert().
		Model(&entity.User{Username: username, Password: hash, Role: auth.RoleAdmin}).
		On("CONFLICT (username) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "seeding admin")
	}

	return nil
}
