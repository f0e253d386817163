package auth

import (
	"context"
	"testing"
	"time"
)

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	a, err := New("test-key", time.Hour, NewMemoryStore())
	if err != nil {
		t.Fatalf("new auth: %v", err)
	}

	token, _, err := a.NewSession(ctx, 7, "e1", RoleEmployee, "E1")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	claims, err := a.ValidateToken(ctx, token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.Role != RoleEmployee || claims.StaffID != "E1" || claims.UserId != 7 {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if err := a.Logout(ctx, claims); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := a.ValidateToken(ctx, token); err != ErrInvalidToken {
		t.Fatalf("expected revoked token, got %v", err)
	}
}

func TestRevokeUserEndsAllSessions(t *testing.T) {
	ctx := context.Background()
	a, err := New("test-key", time.Hour, nil)
	if err != nil {
		t.Fatalf("new auth: %v", err)
	}

	first, _, _ := a.NewSession(ctx, 3, "e3", RoleEmployee, "E3")
	second, _, _ := a.NewSession(ctx, 3, "e3", RoleEmployee, "E3")
	other, _, _ := a.NewSession(ctx, 4, "e4", RoleEmployee, "E4")

	if err := a.RevokeUser(ctx, 3); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	for _, tok := range []string{first, second} {
		if _, err := a.ValidateToken(ctx, tok); err == nil {
			t.Fatalf("expected token of revoked user to fail")
		}
	}
	if _, err := a.ValidateToken(ctx, other); err != nil {
		t.Fatalf("other user should stay signed in: %v", err)
	}
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	issuer, _ := New("key-one", time.Hour, store)
	verifier, _ := New("key-two", time.Hour, store)

	token, _, err := issuer.NewSession(ctx, 1, "admin", RoleAdmin, "")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if _, err := verifier.ValidateToken(ctx, token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	if err := store.Save(ctx, Session{ID: "s1", UserID: 1, Expires: now.Add(time.Minute)}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := store.Get(ctx, "s1"); err != nil {
		t.Fatalf("get live session: %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := store.Get(ctx, "s1"); err != ErrSessionNotFound {
		t.Fatalf("expected expired session, got %v", err)
	}
}

func TestMemoryStoreSavePrunesExpired(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	for _, id := range []string{"s1", "s2"} {
		if err := store.Save(ctx, Session{ID: id, UserID: 1, Expires: now.Add(time.Minute)}); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}
	if err := store.Save(ctx, Session{ID: "s3", UserID: 2, Expires: now.Add(time.Hour)}); err != nil {
		t.Fatalf("save s3: %v", err)
	}

	now = now.Add(2 * time.Minute)
	if err := store.Save(ctx, Session{ID: "s4", UserID: 3, Expires: now.Add(time.Hour)}); err != nil {
		t.Fatalf("save s4: %v", err)
	}

	if len(store.sessions) != 2 {
		t.Fatalf("expected only live sessions kept, got %d: %v", len(store.sessions), store.sessions)
	}
	for _, id := range []string{"s3", "s4"} {
		if _, ok := store.sessions[id]; !ok {
			t.Fatalf("live session %s was pruned", id)
		}
	}
}

func TestClaimsScope(t *testing.T) {
	if id, ok := (Claims{Role: RoleEmployee, StaffID: "E1"}).Scope(); !ok || id != "E1" {
		t.Fatalf("employee should be scoped to E1, got %q %v", id, ok)
	}
	for _, role := range []string{RoleAdmin, RoleManager} {
		if _, ok := (Claims{Role: role}).Scope(); ok {
			t.Fatalf("%s should not be scoped", role)
		}
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("sam123456")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword(hash, "sam123456") {
		t.Fatalf("expected password to match")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatalf("expected wrong password to fail")
	}
}
