package holiday

import (
	"context"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"staffattendance/backend/foundation/web"
	"staffattendance/backend/internal/auth"
	"staffattendance/backend/internal/entity"
	"staffattendance/backend/internal/pkg/repository/postgresql"
	"staffattendance/backend/internal/repository/postgres"
	"staffattendance/backend/internal/service/calendar"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) GetList(ctx context.Context) ([]entity.Holiday, error) {
	if _, err := r.CheckClaims(ctx); err != nil {
		return nil, err
	}

	list := make([]entity.Holiday, 0)
	if err := r.NewSelect().Model(&list).OrderExpr("holiday_date ASC").Scan(ctx); err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting holidays"), http.StatusInternalServerError)
	}

	return list, nil
}

// GetRange lists holidays in from..to inclusive, ordered by date.
func (r Repository) GetRange(ctx context.Context, from, to string) ([]entity.Holiday, error) {
	if _, err := r.CheckClaims(ctx); err != nil {
		return nil, err
	}

	from, err := calendar.Parse(from)
	if err != nil {
		return nil, web.NewRequestError(err, http.StatusBadRequest)
	}
	to, err = calendar.Parse(to)
	if err != nil {
		return nil, web.NewRequestError(err, http.StatusBadRequest)
	}

	return ListRange(ctx, r.DB, from, to)
}

// Create declares a holiday, replacing the name of an existing one, and
// marks every current staff member as on holiday for that date. Staff added
// later pick the date up when it is next read.
func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "Date"); err != nil {
		return CreateResponse{}, err
	}

	day, err := calendar.Parse(*request.Date)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(err, http.StatusBadRequest)
	}

	response := CreateResponse{Holiday: entity.Holiday{Date: day}}
	if request.Name != nil {
		response.Name = strings.TrimSpace(*request.Name)
	}

	err = r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().
			Model(&response.Holiday).
			On("CONFLICT (holiday_date) DO UPDATE").
			Set("name = EXCLUDED.name").
			Exec(ctx)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "creating holiday"), http.StatusInternalServerError)
		}

		response.Marked, err = postgres.FillDay(ctx, tx, day, entity.StatusHoliday, true, nil)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "marking staff on holiday"), http.StatusInternalServerError)
		}

		return nil
	})
	if err != nil {
		return CreateResponse{}, err
	}

	return response, nil
}

// Delete removes the declaration only. Attendance rows already marked as
// holiday for that date stay as they are.
func (r Repository) Delete(ctx context.Context, request DeleteRequest) error {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "Date"); err != nil {
		return err
	}

	day, err := calendar.Parse(*request.Date)
	if err != nil {
		return web.NewRequestError(err, http.StatusBadRequest)
	}

	res, err := r.NewDelete().Model((*entity.Holiday)(nil)).Where("holiday_date = ?", day).Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "deleting holiday"), http.StatusInternalServerError)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return web.NewRequestError(errors.Wrapf(postgres.ErrNotFound, "holiday %s", day), http.StatusNotFound)
	}

	return nil
}

// =============================================================================

// IsHoliday checks the calendar inside db, which may be a transaction.
func IsHoliday(ctx context.Context, db bun.IDB, day string) (bool, error) {
	return db.NewSelect().Model((*entity.Holiday)(nil)).Where("holiday_date = ?", day).Exists(ctx)
}

// ListRange reads holidays in from..to inside db, which may be a transaction.
func ListRange(ctx context.Context, db bun.IDB, from, to string) ([]entity.Holiday, error) {
	list := make([]entity.Holiday, 0)
	err := db.NewSelect().
		Model(&list).
		Where("holiday_date >= ?", from).
		Where("holiday_date <= ?", to).
		OrderExpr("holiday_date ASC").
		Scan(ctx)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting holidays"), http.StatusInternalServerError)
	}
	return list, nil
}
