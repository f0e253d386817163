package commands

import (
	"context"
	"database/sql"
	"log"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"staffattendance/backend/internal/entity"
	"staffattendance/backend/internal/pkg/repository/postgresql"
)

// Scheme is one forward migration. Tables are created through bun so the same
// list runs against postgres and sqlite.
type Scheme struct {
	Index       int
	Description string
	Apply       func(ctx context.Context, db bun.IDB) error
}

var scheme = []Scheme{
	{
		Index:       1,
		Description: "Create table: staff.",
		Apply: func(ctx context.Context, db bun.IDB) error {
			_, err := db.NewCreateTable().Model((*entity.Staff)(nil)).IfNotExists().Exec(ctx)
			return err
		},
	},
	{
		Index:       2,
		Description: "Create table: users.",
		Apply: func(ctx context.Context, db bun.IDB) error {
			_, err := db.NewCreateTable().Model((*entity.User)(nil)).
				IfNotExists().
				ForeignKey(`("staff_id") REFERENCES "staff" ("id") ON DELETE CASCADE`).
				Exec(ctx)
			return err
		},
	},
	{
		Index:       3,
		Description: "Create table: holidays.",
		Apply: func(ctx context.Context, db bun.IDB) error {
			_, err := db.NewCreateTable().Model((*entity.Holiday)(nil)).IfNotExists().Exec(ctx)
			return err
		},
	},
	{
		Index:       4,
		Description: "Create table: attendance.",
		Apply: func(ctx context.Context, db bun.IDB) error {
			_, err := db.NewCreateTable().Model((*entity.Attendance)(nil)).
				IfNotExists().
				ColumnExpr("CONSTRAINT attendance_status_check CHECK (status IN (?))", bun.In(entity.Statuses())).
				ForeignKey(`("staff_id") REFERENCES "staff" ("id") ON DELETE CASCADE`).
				Exec(ctx)
			return err
		},
	},
	{
		Index:       5,
		Description: "Create index: attendance work_day.",
		Apply: func(ctx context.Context, db bun.IDB) error {
			_, err := db.NewCreateIndex().Model((*entity.Attendance)(nil)).
				Index("attendance_work_day_idx").
				Column("work_day").
				IfNotExists().
				Exec(ctx)
			return err
		},
	},
	{
		Index:       6,
		Description: "Create index: users staff_id.",
		Apply: func(ctx context.Context, db bun.IDB) error {
			_, err := db.NewCreateIndex().Model((*entity.User)(nil)).
				Index("users_staff_id_idx").
				Column("staff_id").
				IfNotExists().
				Exec(ctx)
			return err
		},
	},
}

// MigrateUP applies every scheme above the stored version. A failed step is
// recorded as dirty and retried first on the next start.
func MigrateUP(ctx context.Context, db *postgresql.Database) error {
	if _, err := db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS schema_migrations (version integer not null, dirty boolean not null, error text)`); err != nil {
		return errors.Wrap(err, "creating schema_migrations")
	}

	var (
		version int
		dirty   bool
		er      sql.NullString
	)
	err := db.QueryRowContext(ctx, "SELECT version, dirty, error FROM schema_migrations").Scan(&version, &dirty, &er)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err = db.ExecContext(ctx, `INSERT INTO schema_migrations (version, dirty) VALUES (0, ?)`, false); err != nil {
			return errors.Wrap(err, "initializing schema_migrations")
		}
	case err != nil:
		return errors.Wrap(err, "reading schema_migrations")
	}

	if dirty {
		log.Printf("migrate: retrying dirty version %d (last error: %s)", version, er.String)
		// The failed step is retried below.
		version--
	}

	for _, s := range scheme {
		if s.Index <= version {
			continue
		}

		if err := s.Apply(ctx, db); err != nil {
			if _, uerr := db.ExecContext(ctx,
				`UPDATE schema_migrations SET error = ?, version = ?, dirty = ?`, err.Error(), s.Index, true); uerr != nil {
				return errors.Wrap(uerr, "recording migration failure")
			}
			return errors.Wrapf(err, "migrate version %d (%s)", s.Index, s.Description)
		}

		if _, err := db.ExecContext(ctx,
			`UPDATE schema_migrations SET version = ?, dirty = ?, error = NULL`, s.Index, false); err != nil {
			return errors.Wrap(err, "updating schema_migrations")
		}
		log.Printf("migrate: applied %d %s", s.Index, s.Description)
	}

	return nil
}
