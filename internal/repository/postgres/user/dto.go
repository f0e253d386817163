package user

import "staffattendance/backend/internal/entity"

type SignInRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type GetDetailByIdResponse struct {
	ID       int64         `json:"id"`
	Username string        `json:"username"`
	Role     string        `json:"role"`
	StaffID  *string       `json:"staff_id"`
	Staff    *entity.Staff `json:"staff,omitempty"`
}

type CreateRequest struct {
	Username *string `json:"username" form:"username"`
	Password *string `json:"password" form:"password" validate:"omitempty,min=6"`
	Role     *string `json:"role"     form:"role"`
}

type CreateResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type ChangePasswordRequest struct {
	CurrentPassword *string `json:"current_password" form:"current_password"`
	NewPassword     *string `json:"new_password"     form:"new_password" validate:"omitempty,min=6"`
}

type ResetPasswordRequest struct {
	UserID *int64 `json:"user_id" form:"user_id"`
}
