package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
auth:
  jwt_secret: a-very-long-test-secret
jobs:
  generate_weeks_ahead: 2
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Database.Name != "tgr_ops" {
		t.Errorf("expected default db name tgr_ops, got %s", cfg.Database.Name)
	}
	if cfg.Auth.AccessTokenTTL != 15*time.Minute {
		t.Errorf("expected access ttl 15m, got %s", cfg.Auth.AccessTokenTTL)
	}
	if cfg.Jobs.GenerateWeeksAhead != 2 {
		t.Errorf("expected generate_weeks_ahead 2, got %d", cfg.Jobs.GenerateWeeksAhead)
	}
	if cfg.Inventory.CacheTTL != 5*time.Minute {
		t.Errorf("expected inventory cache ttl 5m, got %s", cfg.Inventory.CacheTTL)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: a-very-long-test-secret
`)
	t.Setenv("TGR_SERVER_PORT", "7070")
	t.Setenv("TGR_AUTH_JWT_SECRET", "secret-from-environment")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("expected port 7070 from env, got %d", cfg.Server.Port)
	}
	if cfg.Auth.JWTSecret != "secret-from-environment" {
		t.Errorf("expected jwt secret from env, got %s", cfg.Auth.JWTSecret)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 8080\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for empty jwt secret")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"short secret", func(c *Config) { c.Auth.JWTSecret = "short" }, true},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, true},
		{"too many weeks", func(c *Config) { c.Jobs.GenerateWeeksAhead = 13 }, true},
		{"jobs with valid specs", func(c *Config) {
			c.Jobs.Enabled = true
			c.Jobs.DutyRotationCron = "0 6 * * 1"
			c.Jobs.ScheduleGenerationCron = "30 3 * * *"
		}, false},
		{"bad duty cron", func(c *Config) {
			c.Jobs.Enabled = true
			c.Jobs.DutyRotationCron = "every monday"
			c.Jobs.ScheduleGenerationCron = "30 3 * * *"
		}, true},
		{"disabled jobs skip cron check", func(c *Config) { c.Jobs.DutyRotationCron = "nonsense" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Server: ServerConfig{Port: 8080},
				Auth:   AuthConfig{JWTSecret: "0123456789abcdef"},
				Jobs:   JobsConfig{GenerateWeeksAhead: 4},
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{
		Host: "db", Port: 5432, User: "u", Password: "p",
		Name: "n", SSLMode: "disable", Timezone: "UTC",
	}
	want := "host=db port=5432 user=u password=p dbname=n sslmode=disable TimeZone=UTC"
	if got := c.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
