package department

import (
	"context"

	"staffattendance/backend/internal/repository/postgres/department"
)

type Department interface {
	GetList(ctx context.Context, filter department.Filter) ([]department.GetListResponse, error)
}
