package user

import (
	"net/http"

	"github.com/pkg/errors"

	"staffattendance/backend/foundation/web"
	"staffattendance/backend/internal/auth"
	"staffattendance/backend/internal/repository/postgres/user"
)

type Controller struct {
	user     User
	sessions Sessions
}

func NewController(user User, sessions Sessions) *Controller {
	return &Controller{user: user, sessions: sessions}
}

func (uc Controller) Me(c *web.Context) error {
	claims, ok := auth.FromContext(c.Ctx)
	if !ok {
		return c.RespondError(web.NewRequestError(errors.New("authentication required"), http.StatusUnauthorized))
	}

	response, err := uc.user.GetDetailById(c.Ctx, claims.UserId)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":    response,
		"success": true,
	}, http.StatusOK)
}

func (uc Controller) ChangePassword(c *web.Context) error {
	var request user.ChangePasswordRequest

	if err := c.BindFunc(&request, "CurrentPassword", "NewPassword"); err != nil {
		return c.RespondError(err)
	}

	if err := uc.user.ChangePassword(c.Ctx, request); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"success": true,
	}, http.StatusOK)
}

// ResetUserPassword puts the account back on the default password and ends
// its open sessions.
func (uc Controller) ResetUserPassword(c *web.Context) error {
	var request user.ResetPasswordRequest

	if err := c.BindFunc(&request, "UserID"); err != nil {
		return c.RespondError(err)
	}

	if err := uc.user.ResetPassword(c.Ctx, request); err != nil {
		return c.RespondError(err)
	}

	if err := uc.sessions.RevokeUser(c.Ctx, *request.UserID); err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "revoking sessions"), http.StatusInternalServerError))
	}

	return c.Respond(map[string]interface{}{
		"success": true,
	}, http.StatusOK)
}

func (uc Controller) CreateUser(c *web.Context) error {
	var request user.CreateRequest

	if err := c.BindFunc(&request, "Username", "Password", "Role"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.user.Create(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":    response,
		"success": true,
	}, http.StatusCreated)
}
