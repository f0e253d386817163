package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewConfigDefaultsAndYAMLOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := []byte(`
db:
  driver: sqlite
  sqlite_path: /tmp/attendance-test.db
auth:
  jwt_key: secret
  session_ttl: 2h
seed:
  admin_password: changeme
`)
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ATTENDANCE_CONFIG_FILE", path)

	cfg, err := NewConfig(nil)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}

	if cfg.DB.Driver != "sqlite" || cfg.DB.SQLitePath != "/tmp/attendance-test.db" {
		t.Fatalf("yaml values not applied: %+v", cfg.DB)
	}
	if cfg.Auth.SessionTTL != 2*time.Hour {
		t.Fatalf("expected 2h session ttl, got %v", cfg.Auth.SessionTTL)
	}
	if cfg.Web.Address != "0.0.0.0:3000" {
		t.Fatalf("expected default address, got %q", cfg.Web.Address)
	}
	if cfg.Seed.DefaultStaffPassword != "sam123456" {
		t.Fatalf("expected default staff password, got %q", cfg.Seed.DefaultStaffPassword)
	}
}

func TestValidateRejectsIncompletePostgres(t *testing.T) {
	c := Config{
		DB:   DB{Driver: "postgres", Host: "localhost", Name: "attendance"},
		Auth: Auth{JWTKey: "k"},
		Seed: Seed{AdminPassword: "p"},
	}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected missing user/password to fail")
	}

	c.DB.Driver = "mysql"
	if err := c.Validate(); err == nil {
		t.Fatalf("expected unknown driver to fail")
	}
}
