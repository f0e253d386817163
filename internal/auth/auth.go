// Package auth issues and validates session tokens and holds the role model
// used by the access-control gate.
package auth

import (
	"context"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidToken is returned for tokens that fail signature, expiry or
// session checks.
var ErrInvalidToken = errors.New("invalid or expired session")

// Auth signs tokens and checks them against the session store.
type Auth struct {
	key      []byte
	ttl      time.Duration
	sessions SessionStore
	now      func() time.Time
}

func New(key string, ttl time.Duration, sessions SessionStore) (*Auth, error) {
	if key == "" {
		return nil, errors.New("auth: signing key is empty")
	}
	if ttl <= 0 {
		return nil, errors.New("auth: session ttl must be positive")
	}
	if sessions == nil {
		sessions = NewMemoryStore()
	}

	return &Auth{
		key:      []byte(key),
		ttl:      ttl,
		sessions: sessions,
		now:      time.Now,
	}, nil
}

// TTL is the lifetime of new sessions.
func (a *Auth) TTL() time.Duration {
	return a.ttl
}

// NewSession stores a session for the account and returns its signed token.
func (a *Auth) NewSession(ctx context.Context, userID int64, username, role, staffID string) (string, Claims, error) {
	now := a.now()
	sess := Session{
		ID:       uuid.NewString(),
		UserID:   userID,
		Username: username,
		Role:     role,
		StaffID:  staffID,
		Expires:  now.Add(a.ttl),
	}

	if err := a.sessions.Save(ctx, sess); err != nil {
		return "", Claims{}, err
	}

	claims := Claims{
		StandardClaims: jwt.StandardClaims{
			Id:        sess.ID,
			Subject:   username,
			IssuedAt:  now.Unix(),
			ExpiresAt: sess.Expires.Unix(),
		},
		UserId:   userID,
		Username: username,
		Role:     role,
		StaffID:  staffID,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.key)
	if err != nil {
		return "", Claims{}, errors.Wrap(err, "signing token")
	}

	return token, claims, nil
}

// ValidateToken checks the signature and expiry, then confirms the session
// was not revoked. Role and staff id are taken from the stored session.
func (a *Auth) ValidateToken(ctx context.Context, tokenStr string) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.key, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	sess, err := a.sessions.Get(ctx, claims.Id)
	if errors.Is(err, ErrSessionNotFound) {
		return Claims{}, ErrInvalidToken
	}
	if err != nil {
		return Claims{}, err
	}

	claims.UserId = sess.UserID
	claims.Username = sess.Username
	claims.Role = sess.Role
	claims.StaffID = sess.StaffID

	return claims, nil
}

// Logout revokes the session behind claims.
func (a *Auth) Logout(ctx context.Context, claims Claims) error {
	return a.sessions.Delete(ctx, claims.Id)
}

// RevokeUser ends every session of the account.
func (a *Auth) RevokeUser(ctx context.Context, userID int64) error {
	return a.sessions.DeleteByUser(ctx, userID)
}

// =============================================================================

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "hashing password")
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
