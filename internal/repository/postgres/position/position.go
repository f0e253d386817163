package position

import (
	"context"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"staffattendance/backend/foundation/web"
	"staffattendance/backend/internal/entity"
	"staffattendance/backend/internal/pkg/repository/postgresql"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// GetList returns the positions held on the roster, optionally within one
// department, with how many staff hold each.
func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, error) {
	if _, err := r.CheckClaims(ctx); err != nil {
		return nil, err
	}

	list := make([]GetListResponse, 0)
	q := r.NewSelect().
		Model((*entity.Staff)(nil)).
		ColumnExpr("position").
		ColumnExpr("count(*) AS staff_count").
		Where("position <> ''")

	if filter.Department != nil {
		q.Where("department = ?", strings.TrimSpace(*filter.Department))
	}
	if filter.Search != nil {
		q.Where("LOWER(position) LIKE ?", "%"+strings.ToLower(strings.TrimSpace(*filter.Search))+"%")
	}

	err := q.GroupExpr("position").OrderExpr("position ASC").Scan(ctx, &list)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting positions"), http.StatusInternalServerError)
	}

	return list, nil
}
