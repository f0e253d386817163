package user

import (
	"context"
	"net/http"
	"testing"

	"staffattendance/backend/foundation/web"
	"staffattendance/backend/internal/auth"
	"staffattendance/backend/internal/entity"
	"staffattendance/backend/internal/pkg/repository/postgresql/dbtest"
)

func strptr(s string) *string { return &s }

func TestCreateAndLookup(t *testing.T) {
	repo := NewRepository(dbtest.NewDatabase(t), "sam123456")
	admin := dbtest.Admin()

	created, err := repo.Create(admin, CreateRequest{Username: strptr("Boss"), Password: strptr("secret1"), Role: strptr("manager")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Username != "boss" || created.ID == 0 {
		t.Fatalf("unexpected user %+v", created)
	}

	found, err := repo.GetByUsername(context.Background(), "BOSS")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !auth.CheckPassword(found.Password, "secret1") {
		t.Fatalf("stored password does not match")
	}

	if _, err := repo.GetByUsername(context.Background(), "ghost"); web.StatusOf(err) != http.StatusUnauthorized {
		t.Fatalf("expected 401 for an unknown user, got %v", err)
	}

	tests := []struct {
		name   string
		req    CreateRequest
		status int
	}{
		{"duplicate", CreateRequest{Username: strptr("boss"), Password: strptr("secret1"), Role: strptr("admin")}, http.StatusConflict},
		{"employee role", CreateRequest{Username: strptr("emp"), Password: strptr("secret1"), Role: strptr("employee")}, http.StatusBadRequest},
		{"short password", CreateRequest{Username: strptr("new"), Password: strptr("abc"), Role: strptr("admin")}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := repo.Create(admin, tt.req); err == nil || web.StatusOf(err) != tt.status {
				t.Fatalf("expected %d, got %v", tt.status, err)
			}
		})
	}
}

func TestPasswords(t *testing.T) {
	db := dbtest.NewDatabase(t)
	repo := NewRepository(db, "sam123456")
	ctx := context.Background()

	staffID := "E1"
	if _, err := db.NewInsert().Model(&entity.Staff{ID: staffID, Name: "Ann"}).Exec(ctx); err != nil {
		t.Fatalf("insert staff: %v", err)
	}
	hash, _ := auth.HashPassword("sam123456")
	login := entity.User{Username: "e1", Password: hash, Role: auth.RoleEmployee, StaffID: &staffID}
	if _, err := db.NewInsert().Model(&login).Exec(ctx); err != nil {
		t.Fatalf("insert user: %v", err)
	}

	self := auth.WithClaims(ctx, auth.Claims{UserId: login.ID, Username: "e1", Role: auth.RoleEmployee, StaffID: staffID})

	err := repo.ChangePassword(self, ChangePasswordRequest{CurrentPassword: strptr("wrong"), NewPassword: strptr("newpass1")})
	if web.StatusOf(err) != http.StatusBadRequest {
		t.Fatalf("expected 400 for a wrong current password, got %v", err)
	}
	if err := repo.ChangePassword(self, ChangePasswordRequest{CurrentPassword: strptr("sam123456"), NewPassword: strptr("newpass1")}); err != nil {
		t.Fatalf("change password: %v", err)
	}

	me, err := repo.GetDetailById(self, login.ID)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if me.Staff == nil || me.Staff.Name != "Ann" {
		t.Fatalf("expected linked staff, got %+v", me)
	}

	if err := repo.ResetPassword(self, ResetPasswordRequest{UserID: &login.ID}); web.StatusOf(err) != http.StatusForbidden {
		t.Fatalf("only admins reset passwords, got %v", err)
	}
	if err := repo.ResetPassword(dbtest.Admin(), ResetPasswordRequest{UserID: &login.ID}); err != nil {
		t.Fatalf("reset: %v", err)
	}
	found, err := repo.GetByUsername(ctx, "e1")
	if err != nil || !auth.CheckPassword(found.Password, "sam123456") {
		t.Fatalf("expected the default password back, got %v", err)
	}

	missing := int64(999)
	if err := repo.ResetPassword(dbtest.Admin(), ResetPasswordRequest{UserID: &missing}); web.StatusOf(err) != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}
