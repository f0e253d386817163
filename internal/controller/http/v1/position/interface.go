package position

import (
	"context"

	"staffattendance/backend/internal/repository/postgres/position"
)

type Position interface {
	GetList(ctx context.Context, filter position.Filter) ([]position.GetListResponse, error)
}
