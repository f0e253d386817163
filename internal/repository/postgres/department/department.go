package department

import (
	"context"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"staffattendance/backend/foundation/web"
	"staffattendance/backend/internal/entity"
	"staffattendance/backend/internal/pkg/repository/postgresql"
)

// Repository reads departments. They are free text on the roster rather
// than a table of their own.
type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]GetListResponse, 0)
	q := r.NewSelect().
		Model((*entity.Staff)(nil)).
		ColumnExpr("department").
		ColumnExpr("count(*) AS staff_count").
		Where("department <> ''").
		GroupExpr("department").
		OrderExpr("department ASC")

	if filter.Search != nil {
		q.Where("LOWER(department) LIKE ?", "%"+strings.ToLower(strings.TrimSpace(*filter.Search))+"%")
	}

	if err = q.Scan(ctx, &list); err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting departments"), http.StatusInternalServerError)
	}

	return list, nil
}
