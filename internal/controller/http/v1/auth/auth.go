package auth

import (
	"net/http"

	"github.com/pkg/errors"

	"staffattendance/backend/foundation/web"
	"staffattendance/backend/internal/auth"
	"staffattendance/backend/internal/repository/postgres/user"
)

type Controller struct {
	user       User
	auth       *auth.Auth
	cookieName string
}

func NewController(user User, a *auth.Auth, cookieName string) *Controller {
	return &Controller{user: user, auth: a, cookieName: cookieName}
}

func (uc Controller) SignIn(c *web.Context) error {
	var data user.SignInRequest

	err := c.BindFunc(&data, "Username", "Password")
	if err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.user.GetByUsername(c.Ctx, data.Username)
	if err != nil {
		return c.RespondError(err)
	}

	if !auth.CheckPassword(detail.Password, data.Password) {
		return c.RespondError(web.NewRequestError(errors.New("invalid username or password"), http.StatusUnauthorized))
	}

	var staffID string
	if detail.StaffID != nil {
		staffID = *detail.StaffID
	}

	token, claims, err := uc.auth.NewSession(c.Ctx, detail.ID, detail.Username, detail.Role, staffID)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "creating session"), http.StatusInternalServerError))
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(uc.cookieName, token, int(uc.auth.TTL().Seconds()), "/", "", c.Request.TLS != nil, true)

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"token":      token,
			"expires_at": claims.ExpiresAt,
			"user": map[string]interface{}{
				"id":       detail.ID,
				"username": detail.Username,
				"role":     detail.Role,
				"staff_id": detail.StaffID,
			},
		},
		"success": true,
	}, http.StatusOK)
}

// Logout revokes the current session and clears the cookie.
func (uc Controller) Logout(c *web.Context) error {
	claims, ok := auth.FromContext(c.Ctx)
	if !ok {
		return c.RespondError(web.NewRequestError(errors.New("authentication required"), http.StatusUnauthorized))
	}

	if err := uc.auth.Logout(c.Ctx, claims); err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "ending session"), http.StatusInternalServerError))
	}

	c.SetCookie(uc.cookieName, "", -1, "/", "", c.Request.TLS != nil, true)

	return c.Respond(map[string]interface{}{
		"success": true,
	}, http.StatusOK)
}
