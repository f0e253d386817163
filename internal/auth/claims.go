package auth

import (
	"context"

	"github.com/dgrijalva/jwt-go"
)

const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

type ctxKey int

// Key is used to store/retrieve Claims from a context.Context.
const Key ctxKey = 1

// Claims is the authenticated session carried by the token. The standard
// Id claim holds the session id.
type Claims struct {
	jwt.StandardClaims
	UserId   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	StaffID  string `json:"staff_id,omitempty"`
}

// Authorized returns true if the claims hold at least one of the roles.
func (c Claims) Authorized(roles ...string) bool {
	for _, role := range roles {
		if c.Role == role {
			return true
		}
	}
	return false
}

// Scope returns the staff id an employee is restricted to, and false for
// roles that may see every staff member.
func (c Claims) Scope() (string, bool) {
	if c.Role == RoleEmployee {
		return c.StaffID, true
	}
	return "", false
}

// FromContext returns the claims stored by the authentication middleware.
func FromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(Key).(Claims)
	return claims, ok
}

// WithClaims stores claims in ctx.
func WithClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, Key, claims)
}
