package user

import (
	"context"
	"database/sql"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"staffattendance/backend/foundation/web"
	"staffattendance/backend/internal/auth"
	"staffattendance/backend/internal/entity"
	"staffattendance/backend/internal/pkg/repository/postgresql"
	"staffattendance/backend/internal/repository/postgres"
)

const minPasswordLength = 6

type Repository struct {
	*postgresql.Database
	defaultPassword string
}

// NewRepository returns the login store. defaultPassword is what an admin
// reset sets.
func NewRepository(database *postgresql.Database, defaultPassword string) *Repository {
	return &Repository{Database: database, defaultPassword: defaultPassword}
}

// GetByUsername is used by sign-in, before any session exists.
func (r Repository) GetByUsername(ctx context.Context, username string) (entity.User, error) {
	var detail entity.User

	err := r.NewSelect().Model(&detail).Where("username = ?", strings.ToLower(strings.TrimSpace(username))).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.User{}, web.NewRequestError(errors.New("invalid username or password"), http.StatusUnauthorized)
	}
	if err != nil {
		return entity.User{}, web.NewRequestError(errors.Wrap(err, "selecting user"), http.StatusInternalServerError)
	}

	return detail, nil
}

// GetDetailById returns a login with its staff record. Only admins may read
// other accounts.
func (r Repository) GetDetailById(ctx context.Context, id int64) (GetDetailByIdResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return GetDetailByIdResponse{}, err
	}
	if claims.UserId != id && !claims.Authorized(auth.RoleAdmin) {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.New("attempted action is not allowed"), http.StatusForbidden)
	}

	var detail entity.User
	err = r.NewSelect().Model(&detail).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrapf(postgres.ErrNotFound, "user %d", id), http.StatusNotFound)
	}
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "selecting user"), http.StatusInternalServerError)
	}

	response := GetDetailByIdResponse{
		ID:       detail.ID,
		Username: detail.Username,
		Role:     detail.Role,
		StaffID:  detail.StaffID,
	}

	if detail.StaffID != nil {
		var staff entity.Staff
		err = r.NewSelect().Model(&staff).Where("id = ?", *detail.StaffID).Scan(ctx)
		switch {
		case err == nil:
			response.Staff = &staff
		case !errors.Is(err, sql.ErrNoRows):
			return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "selecting user staff"), http.StatusInternalServerError)
		}
	}

	return response, nil
}

// Create adds an admin or manager login. Employee logins come with their
// staff record.
func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "Username", "Password", "Role"); err != nil {
		return CreateResponse{}, err
	}

	role := strings.ToLower(strings.TrimSpace(*request.Role))
	if role != auth.RoleAdmin && role != auth.RoleManager {
		return CreateResponse{}, web.NewRequestError(errors.Errorf("role must be %s or %s", auth.RoleAdmin, auth.RoleManager), http.StatusBadRequest)
	}
	if len(*request.Password) < minPasswordLength {
		return CreateResponse{}, web.NewRequestError(errors.Errorf("password must be at least %d characters", minPasswordLength), http.StatusBadRequest)
	}

	hash, err := auth.HashPassword(*request.Password)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(err, http.StatusInternalServerError)
	}

	detail := entity.User{
		Username: strings.ToLower(strings.TrimSpace(*request.Username)),
		Password: hash,
		Role:     role,
	}

	if _, err = r.NewInsert().Model(&detail).Exec(ctx); err != nil {
		if postgres.IsUniqueViolation(err) {
			return CreateResponse{}, web.NewRequestError(errors.Wrapf(postgres.ErrDuplicate, "username %s", detail.Username), http.StatusConflict)
		}
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating user"), http.StatusInternalServerError)
	}

	return CreateResponse{ID: detail.ID, Username: detail.Username, Role: detail.Role}, nil
}

// ChangePassword replaces the caller's own password after checking the
// current one.
func (r Repository) ChangePassword(ctx context.Context, request ChangePasswordRequest) error {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "CurrentPassword", "NewPassword"); err != nil {
		return err
	}
	if len(*request.NewPassword) < minPasswordLength {
		return web.NewRequestError(errors.Errorf("password must be at least %d characters", minPasswordLength), http.StatusBadRequest)
	}

	var detail entity.User
	err = r.NewSelect().Model(&detail).Where("id = ?", claims.UserId).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return web.NewRequestError(errors.Wrap(postgres.ErrNotFound, "user"), http.StatusNotFound)
	}
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "selecting user"), http.StatusInternalServerError)
	}

	if !auth.CheckPassword(detail.Password, *request.CurrentPassword) {
		return web.NewRequestError(errors.New("current password is incorrect"), http.StatusBadRequest)
	}

	return r.setPassword(ctx, detail.ID, *request.NewPassword)
}

// ResetPassword sets the default password on any account.
func (r Repository) ResetPassword(ctx context.Context, request ResetPasswordRequest) error {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "UserID"); err != nil {
		return err
	}

	return r.setPassword(ctx, *request.UserID, r.defaultPassword)
}

func (r Repository) setPassword(ctx context.Context, id int64, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	res, err := r.NewUpdate().Model((*entity.User)(nil)).Set("password = ?", hash).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating password"), http.StatusInternalServerError)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return web.NewRequestError(errors.Wrapf(postgres.ErrNotFound, "user %d", id), http.StatusNotFound)
	}

	return nil
}
