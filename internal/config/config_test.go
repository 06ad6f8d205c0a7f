package config

import (
	"os"
	"path/filepath"
	"testing"
)

const testConfig = `
server:
  address: 127.0.0.1
  port: 9090
  mode: release

database:
  path: /tmp/test.db

jwt:
  secret: test-secret
  issuer: fintrack-test
  expire_hours: 12

auth:
  admin_login: root
  bcrypt_cost: 10
`

// Load is once-guarded, so a single test exercises it end to end.
func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(testConfig), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.JWT.Secret != "test-secret" {
		t.Errorf("JWT.Secret = %q, want test-secret", cfg.JWT.Secret)
	}
	if cfg.JWT.ExpireHours != 12 {
		t.Errorf("JWT.ExpireHours = %d, want 12", cfg.JWT.ExpireHours)
	}
	if cfg.Auth.AdminLogin != "root" {
		t.Errorf("Auth.AdminLogin = %q, want root", cfg.Auth.AdminLogin)
	}
	if cfg.Auth.BcryptCost != 10 {
		t.Errorf("Auth.BcryptCost = %d, want 10", cfg.Auth.BcryptCost)
	}

	if Get() != cfg {
		t.Error("Get() should return the loaded config")
	}
}
