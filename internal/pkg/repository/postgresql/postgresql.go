// Package postgresql opens the bun database shared by every repository and
// holds the access checks repositories run before touching data.
package postgresql

import (
	"context"
	"database/sql"
	"net"
	"net/http"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	_ "github.com/mattn/go-sqlite3"

	"staffattendance/backend/foundation/web"
	"staffattendance/backend/internal/auth"
	"staffattendance/backend/internal/pkg/config"
)

type Database struct {
	*bun.DB
}

// Open connects with the configured driver.
func Open(cfg config.DB) (*Database, error) {
	switch cfg.Driver {
	case "postgres":
		return NewPostgres(cfg)
	case "sqlite":
		return NewSQLite("file:"+cfg.SQLitePath+"?cache=shared&_fk=1&_busy_timeout=5000", cfg.Debug)
	}
	return nil, errors.Errorf("unknown database driver %q", cfg.Driver)
}

func NewPostgres(cfg config.DB) (*Database, error) {
	connector := pgdriver.NewConnector(
		pgdriver.WithAddr(net.JoinHostPort(cfg.Host, cfg.Port)),
		pgdriver.WithUser(cfg.User),
		pgdriver.WithPassword(cfg.Password),
		pgdriver.WithDatabase(cfg.Name),
		pgdriver.WithInsecure(cfg.DisableTLS),
		pgdriver.WithApplicationName("staff-attendance"),
	)

	sqldb := sql.OpenDB(connector)
	db := bun.NewDB(sqldb, pgdialect.New())
	addDebugHook(db, cfg.Debug)

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "connecting to postgres")
	}

	return &Database{DB: db}, nil
}

// NewSQLite opens an embedded database. sqlite serializes writers, so the
// pool is kept to a single connection.
func NewSQLite(dsn string, debug bool) (*Database, error) {
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "opening sqlite")
	}
	sqldb.SetMaxOpenConns(1)
	sqldb.SetMaxIdleConns(1)
	sqldb.SetConnMaxLifetime(0)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	addDebugHook(db, debug)

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "connecting to sqlite")
	}

	return &Database{DB: db}, nil
}

func addDebugHook(db *bun.DB, debug bool) {
	db.AddQueryHook(bundebug.NewQueryHook(
		bundebug.WithEnabled(debug),
		bundebug.WithVerbose(debug),
		bundebug.FromEnv("BUNDEBUG"),
	))
}

// IsPostgres reports whether row locks (SELECT ... FOR UPDATE) are available.
func (d Database) IsPostgres() bool {
	return d.Dialect().Name() == dialect.PG
}

// CheckClaims returns the caller's claims, failing with 401 when there is no
// session and 403 when roles are given and the caller holds none of them.
func (d Database) CheckClaims(ctx context.Context, roles ...string) (auth.Claims, error) {
	claims, ok := auth.FromContext(ctx)
	if !ok {
		return auth.Claims{}, web.NewRequestError(errors.New("authentication required"), http.StatusUnauthorized)
	}

	if len(roles) > 0 && !claims.Authorized(roles...) {
		return auth.Claims{}, web.NewRequestError(errors.New("attempted action is not allowed"), http.StatusForbidden)
	}

	return claims, nil
}

// ValidateStruct fails with 400 when any of the named fields is empty.
func (d Database) ValidateStruct(s interface{}, fields ...string) error {
	return web.Required(s, fields...)
}
