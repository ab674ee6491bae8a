package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadReadsFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[app]
port = 8081

[database]
driver = "postgres"
host = "db.internal"
port = 5432
user = "warbler"
password = "secret"
db = "warbler"
params = "sslmode=disable"

[redis]
enabled = true
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.App.Port != 9090 {
		t.Errorf("App.Port = %d, want env override 9090", cfg.App.Port)
	}
	if cfg.Database.Driver != DriverPostgres {
		t.Errorf("Database.Driver = %q, want %q", cfg.Database.Driver, DriverPostgres)
	}
	if cfg.Redis.Enabled {
		t.Error("Redis.Enabled = true, want env override false")
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("CORS.AllowedOrigins = %v", cfg.CORS.AllowedOrigins)
	}

	want := "host=db.internal port=5432 user=warbler password=secret dbname=warbler sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestDSN(t *testing.T) {
	cfg := Default()
	if got, want := cfg.DSN(), "root:@tcp(127.0.0.1:3306)/warbler?parseTime=true&loc=Local&charset=utf8mb4"; got != want {
		t.Errorf("mysql DSN() = %q, want %q", got, want)
	}

	cfg.Database.Driver = DriverSQLite
	cfg.Database.Path = "file::memory:"
	if got := cfg.DSN(); got != "file::memory:" {
		t.Errorf("sqlite DSN() = %q", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "oracle" }, wantErr: true},
		{name: "bad port", mutate: func(c *Config) { c.App.Port = 0 }, wantErr: true},
		{name: "empty session name", mutate: func(c *Config) { c.Auth.SessionName = "" }, wantErr: true},
		{name: "default secrets in prod", mutate: func(c *Config) { c.App.Env = "prod" }, wantErr: true},
		{name: "custom secrets in prod", mutate: func(c *Config) {
			c.App.Env = "prod"
			c.Auth.SessionSecret = "s3ss10n"
			c.Auth.JWTSecret = "t0k3n"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
