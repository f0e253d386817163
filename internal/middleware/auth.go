package middleware

import (
	"errors"
	"net/http"
	"strings"

	"staffattendance/backend/foundation/web"
	"staffattendance/backend/internal/auth"
)

// Authenticate validates the session token and stores its claims in the
// request context. The token is read from "Authorization: Bearer <token>",
// or from the session cookie when the header is absent. When roles are given
// the caller must hold one of them.
func Authenticate(a *auth.Auth, cookieName string, role ...string) web.Middleware {
	// This is the actual middleware function to be executed.
	m := func(handler web.Handler) web.Handler {

		// Create the handler that will be attached in the middleware chain.
		h := func(c *web.Context) error {
			token, err := tokenFrom(c, cookieName)
			if err != nil {
				return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
			}

			// Validate the token is signed by us and the session is alive.
			claims, err := a.ValidateToken(c.Ctx, token)
			if err != nil {
				return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
			}

			if len(role) > 0 && !claims.Authorized(role...) {
				return c.RespondError(web.NewRequestError(errors.New("attempted action is not allowed"), http.StatusForbidden))
			}

			// Add claims to the context so that they can be retrieved later.
			c.Ctx = auth.WithClaims(c.Ctx, claims)

			return handler(c)
		}

		return h
	}

	return m
}

func tokenFrom(c *web.Context, cookieName string) (string, error) {
	if authStr := c.Request.Header.Get("authorization"); authStr != "" {
		parts := strings.Split(authStr, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return "", errors.New("expected authorization header format: Bearer <token>")
		}
		return parts[1], nil
	}

	if cookieName != "" {
		if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
			return cookie, nil
		}
	}

	return "", errors.New("authentication required")
}
