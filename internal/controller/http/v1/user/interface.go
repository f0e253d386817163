package user

import (
	"context"

	"staffattendance/backend/internal/repository/postgres/user"
)

type User interface {
	GetDetailById(ctx context.Context, id int64) (user.GetDetailByIdResponse, error)
	Create(ctx context.Context, request user.CreateRequest) (user.CreateResponse, error)
	ChangePassword(ctx context.Context, request user.ChangePasswordRequest) error
	ResetPassword(ctx context.Context, request user.ResetPasswordRequest) error
}

type Sessions interface {
	RevokeUser(ctx context.Context, userID int64) error
}
