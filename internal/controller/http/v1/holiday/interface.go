package holiday

import (
	"context"

	"staffattendance/backend/internal/entity"
	"staffattendance/backend/internal/repository/postgres/holiday"
)

type Holiday interface {
	GetList(ctx context.Context) ([]entity.Holiday, error)
	GetRange(ctx context.Context, from, to string) ([]entity.Holiday, error)
	Create(ctx context.Context, request holiday.CreateRequest) (holiday.CreateResponse, error)
	Delete(ctx context.Context, request holiday.DeleteRequest) error
}
