package staff

import (
	"context"

	"staffattendance/backend/internal/entity"
	"staffattendance/backend/internal/repository/postgres/department"
	"staffattendance/backend/internal/repository/postgres/staff"
)

type Staff interface {
	GetList(ctx context.Context, filter staff.Filter) ([]entity.Staff, error)
	GetDetailById(ctx context.Context, id string) (entity.Staff, error)
	Create(ctx context.Context, request staff.CreateRequest) (staff.CreateResponse, error)
	UpdateColumns(ctx context.Context, request staff.UpdateRequest) (entity.Staff, error)
	Delete(ctx context.Context, id string) (staff.DeleteResponse, error)
	Import(ctx context.Context, rows []staff.CreateRequest) (staff.ImportResponse, error)
	Badges(ctx context.Context, id *string) ([]entity.Staff, error)
}

type Department interface {
	GetList(ctx context.Context, filter department.Filter) ([]department.GetListResponse, error)
}

type Sessions interface {
	RevokeUser(ctx context.Context, userID int64) error
}
